package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orangecat-xyz/orangecat-api/internal/application/dto"
	"github.com/orangecat-xyz/orangecat-api/internal/domain"
	"github.com/orangecat-xyz/orangecat-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeProjectRepo struct {
	projects map[string]*entity.Project
}

func newFakeProjectRepo() *fakeProjectRepo {
	return &fakeProjectRepo{projects: make(map[string]*entity.Project)}
}

func (r *fakeProjectRepo) Create(p *entity.Project) error { r.projects[p.ID] = p; return nil }
func (r *fakeProjectRepo) GetByID(id string) (*entity.Project, error) {
	return r.projects[id], nil
}
func (r *fakeProjectRepo) GetBySlug(slug string) (*entity.Project, error) {
	for _, p := range r.projects {
		if p.Slug == slug {
			return p, nil
		}
	}
	return nil, nil
}
func (r *fakeProjectRepo) Update(p *entity.Project) error { r.projects[p.ID] = p; return nil }
func (r *fakeProjectRepo) ListByActor(actorID string, limit, offset int) ([]*entity.Project, int, error) {
	var out []*entity.Project
	for _, p := range r.projects {
		if p.ActorID == actorID {
			out = append(out, p)
		}
	}
	return out, len(out), nil
}
func (r *fakeProjectRepo) ListPublic(limit, offset int) ([]*entity.Project, int, error) {
	var out []*entity.Project
	for _, p := range r.projects {
		if p.Status == entity.StatusActive {
			out = append(out, p)
		}
	}
	return out, len(out), nil
}
func (r *fakeProjectRepo) Delete(id string) error { delete(r.projects, id); return nil }

const projectOwner = "actor-dueno"

func newProjectFixture() (*ProjectUseCase, *fakeTimeline) {
	timeline := &fakeTimeline{}
	return NewProjectUseCase(newFakeProjectRepo(), timeline), timeline
}

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestProjectCreate_NaceEnDraftConSlug(t *testing.T) {
	uc, timeline := newProjectFixture()

	out, err := uc.Create(projectOwner, dto.CreateProjectRequest{
		Title:    "Nodo Bitcoin para la Comuna 13",
		GoalSats: 2_000_000,
	})
	require.NoError(t, err)

	assert.Equal(t, "nodo-bitcoin-para-la-comuna-13", out.Slug)
	assert.Equal(t, string(entity.StatusDraft), out.Status)
	assert.Equal(t, int64(0), out.RaisedSats, "lo recaudado siempre inicia en cero")

	require.Len(t, timeline.events, 1)
	assert.Equal(t, entity.EventEntityCreated, timeline.events[0].EventType)
}

// Un título repetido produce un slug distinto con sufijo del ID.
func TestProjectCreate_SlugDuplicado_AgregaSufijo(t *testing.T) {
	uc, _ := newProjectFixture()

	first, err := uc.Create(projectOwner, dto.CreateProjectRequest{Title: "Huerta Comunitaria"})
	require.NoError(t, err)
	second, err := uc.Create(projectOwner, dto.CreateProjectRequest{Title: "Huerta Comunitaria"})
	require.NoError(t, err)

	assert.Equal(t, "huerta-comunitaria", first.Slug)
	assert.NotEqual(t, first.Slug, second.Slug)
	assert.Contains(t, second.Slug, "huerta-comunitaria-")
}

func TestProjectCreate_EntradasInvalidas(t *testing.T) {
	uc, _ := newProjectFixture()

	_, err := uc.Create(projectOwner, dto.CreateProjectRequest{Title: ""})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(projectOwner, dto.CreateProjectRequest{Title: "Meta negativa", GoalSats: -1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Ciclo de vida
// ──────────────────────────────────────────────────────────────────────────────

func TestProjectChangeStatus_TransicionesValidas(t *testing.T) {
	uc, timeline := newProjectFixture()

	created, err := uc.Create(projectOwner, dto.CreateProjectRequest{Title: "Biblioteca"})
	require.NoError(t, err)

	out, err := uc.ChangeStatus(projectOwner, created.ID, "active")
	require.NoError(t, err)
	assert.Equal(t, string(entity.StatusActive), out.Status)

	// Activar publica un evento en el timeline además del de creación.
	require.Len(t, timeline.events, 2)
	assert.Equal(t, entity.EventEntityActivated, timeline.events[1].EventType)

	out, err = uc.ChangeStatus(projectOwner, created.ID, "archived")
	require.NoError(t, err)
	assert.Equal(t, string(entity.StatusArchived), out.Status)

	// Un archivado puede reactivarse.
	_, err = uc.ChangeStatus(projectOwner, created.ID, "active")
	assert.NoError(t, err)
}

func TestProjectChangeStatus_TransicionInvalida(t *testing.T) {
	uc, _ := newProjectFixture()

	created, err := uc.Create(projectOwner, dto.CreateProjectRequest{Title: "Efímero"})
	require.NoError(t, err)

	_, err = uc.ChangeStatus(projectOwner, created.ID, "deleted")
	require.NoError(t, err)

	// deleted es terminal.
	_, err = uc.ChangeStatus(projectOwner, created.ID, "active")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestProjectChangeStatus_Validaciones(t *testing.T) {
	uc, _ := newProjectFixture()

	created, err := uc.Create(projectOwner, dto.CreateProjectRequest{Title: "Ajeno"})
	require.NoError(t, err)

	_, err = uc.ChangeStatus("actor-extrano", created.ID, "active")
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = uc.ChangeStatus(projectOwner, created.ID, "volando")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	out, err := uc.ChangeStatus(projectOwner, "no-existe", "active")
	require.NoError(t, err)
	assert.Nil(t, out)
}

// ──────────────────────────────────────────────────────────────────────────────
// Update / Delete / listados
// ──────────────────────────────────────────────────────────────────────────────

func TestProjectUpdate_SoloElDueno(t *testing.T) {
	uc, _ := newProjectFixture()

	created, err := uc.Create(projectOwner, dto.CreateProjectRequest{Title: "Original", GoalSats: 1000})
	require.NoError(t, err)

	title := "Renombrado"
	goal := int64(5000)
	out, err := uc.Update(projectOwner, created.ID, dto.UpdateProjectRequest{Title: &title, GoalSats: &goal})
	require.NoError(t, err)
	assert.Equal(t, "Renombrado", out.Title)
	assert.Equal(t, int64(5000), out.GoalSats)
	assert.Equal(t, created.Slug, out.Slug, "renombrar no cambia el slug")

	_, err = uc.Update("actor-extrano", created.ID, dto.UpdateProjectRequest{Title: &title})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	negative := int64(-5)
	_, err = uc.Update(projectOwner, created.ID, dto.UpdateProjectRequest{GoalSats: &negative})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProjectListPublic_SoloActivos(t *testing.T) {
	uc, _ := newProjectFixture()

	active, err := uc.Create(projectOwner, dto.CreateProjectRequest{Title: "Visible"})
	require.NoError(t, err)
	_, err = uc.ChangeStatus(projectOwner, active.ID, "active")
	require.NoError(t, err)

	_, err = uc.Create(projectOwner, dto.CreateProjectRequest{Title: "Borrador"})
	require.NoError(t, err)

	list, total, err := uc.ListPublic(dto.PageRequest{Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, list, 1)
	assert.Equal(t, "Visible", list[0].Title)

	mine, total, err := uc.ListByActor(projectOwner, dto.PageRequest{Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Len(t, mine, 2)
}

func TestProjectDelete_Validaciones(t *testing.T) {
	uc, _ := newProjectFixture()

	created, err := uc.Create(projectOwner, dto.CreateProjectRequest{Title: "Temporal"})
	require.NoError(t, err)

	assert.ErrorIs(t, uc.Delete("actor-extrano", created.ID), domain.ErrForbidden)
	assert.ErrorIs(t, uc.Delete(projectOwner, "no-existe"), domain.ErrNotFound)

	require.NoError(t, uc.Delete(projectOwner, created.ID))
	out, err := uc.GetByID(created.ID)
	require.NoError(t, err)
	assert.Nil(t, out)
}
