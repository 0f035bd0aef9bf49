package http_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orangecat-xyz/orangecat-api/internal/application/usecase"
	"github.com/orangecat-xyz/orangecat-api/internal/domain/entity"
	apphttp "github.com/orangecat-xyz/orangecat-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type stubProjectRepo struct {
	projects map[string]*entity.Project
}

func (r *stubProjectRepo) Create(p *entity.Project) error { r.projects[p.ID] = p; return nil }
func (r *stubProjectRepo) GetByID(id string) (*entity.Project, error) {
	return r.projects[id], nil
}
func (r *stubProjectRepo) GetBySlug(slug string) (*entity.Project, error) {
	for _, p := range r.projects {
		if p.Slug == slug {
			return p, nil
		}
	}
	return nil, nil
}
func (r *stubProjectRepo) Update(p *entity.Project) error { r.projects[p.ID] = p; return nil }
func (r *stubProjectRepo) ListByActor(string, int, int) ([]*entity.Project, int, error) {
	return nil, 0, nil
}
func (r *stubProjectRepo) ListPublic(int, int) ([]*entity.Project, int, error) {
	return nil, 0, nil
}
func (r *stubProjectRepo) Delete(id string) error { delete(r.projects, id); return nil }

type stubTimelineRepo struct{}

func (stubTimelineRepo) Create(*entity.TimelineEvent) error { return nil }
func (stubTimelineRepo) ListByActor(string, int, int) ([]*entity.TimelineEvent, int, error) {
	return nil, 0, nil
}
func (stubTimelineRepo) ListFeed(string, int, int) ([]*entity.TimelineEvent, int, error) {
	return nil, 0, nil
}

// buildProjectApp monta la ruta PATCH /projects/:id/status como en el router
// real, con un proyecto pre-sembrado en el estado indicado.
func buildProjectApp(status entity.Status) *fiber.App {
	now := time.Now()
	repo := &stubProjectRepo{projects: map[string]*entity.Project{
		"proj-1": {
			ID:        "proj-1",
			ActorID:   testActorID,
			Slug:      "proyecto-de-prueba",
			Title:     "Proyecto de prueba",
			Status:    status,
			CreatedAt: now,
			UpdatedAt: now,
		},
	}}
	handler := apphttp.NewProjectHandler(usecase.NewProjectUseCase(repo, stubTimelineRepo{}))

	app := fiber.New()
	app.Patch("/projects/:id/status", apphttp.AuthMiddleware(testJWTSecret), handler.ChangeStatus)
	return app
}

func patchStatus(t *testing.T, app *fiber.App, id, status string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPatch, "/projects/"+id+"/status",
		strings.NewReader(`{"status":"`+status+`"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", tokenForRole(t, "user"))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests ChangeStatus
// ──────────────────────────────────────────────────────────────────────────────

func TestProjectChangeStatus_TransicionValida_Retorna200(t *testing.T) {
	app := buildProjectApp(entity.StatusDraft)
	resp := patchStatus(t, app, "proj-1", "active")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// Una transición ilegal del ciclo de vida es un conflicto de estado, no un
// error de entrada.
func TestProjectChangeStatus_TransicionIlegal_Retorna409(t *testing.T) {
	app := buildProjectApp(entity.StatusDeleted)
	resp := patchStatus(t, app, "proj-1", "active")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusConflict, resp.StatusCode,
		"una transición inválida debe responder 409")

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "INVALID_TRANSITION")
}

func TestProjectChangeStatus_EstadoDesconocido_Retorna400(t *testing.T) {
	app := buildProjectApp(entity.StatusDraft)
	resp := patchStatus(t, app, "proj-1", "volando")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
