package usecase

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/orangecat-xyz/orangecat-api/internal/application/dto"
	"github.com/orangecat-xyz/orangecat-api/internal/domain"
	"github.com/orangecat-xyz/orangecat-api/internal/domain/entity"
	"github.com/orangecat-xyz/orangecat-api/internal/domain/repository"
	"github.com/orangecat-xyz/orangecat-api/pkg/slug"
)

// ProjectUseCase casos de uso CRUD para proyectos de crowdfunding.
// RaisedSats se actualiza solo desde el tracker on-chain, nunca por Update.
type ProjectUseCase struct {
	repo     repository.ProjectRepository
	timeline repository.TimelineRepository
}

// NewProjectUseCase construye el caso de uso.
func NewProjectUseCase(repo repository.ProjectRepository, timeline repository.TimelineRepository) *ProjectUseCase {
	return &ProjectUseCase{repo: repo, timeline: timeline}
}

// Create crea un proyecto en draft. El slug sale del título; si ya existe se
// le añade un sufijo corto del ID.
func (uc *ProjectUseCase) Create(actorID string, in dto.CreateProjectRequest) (*dto.ProjectResponse, error) {
	if in.Title == "" || in.GoalSats < 0 {
		return nil, domain.ErrInvalidInput
	}
	id := uuid.New().String()
	s := slug.Make(in.Title)
	if s == "" {
		s = id[:8]
	}
	if existing, _ := uc.repo.GetBySlug(s); existing != nil {
		s = fmt.Sprintf("%s-%s", s, id[:8])
	}
	now := time.Now()
	project := &entity.Project{
		ID:             id,
		ActorID:        actorID,
		Slug:           s,
		Title:          in.Title,
		Description:    in.Description,
		GoalSats:       in.GoalSats,
		BitcoinAddress: in.BitcoinAddress,
		Status:         entity.StatusDraft,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.repo.Create(project); err != nil {
		return nil, err
	}
	recordEvent(uc.timeline, actorID, entity.EventEntityCreated, "project", project.ID, project.Title)
	return toProjectResponse(project), nil
}

// GetByID obtiene un proyecto por ID.
func (uc *ProjectUseCase) GetByID(id string) (*dto.ProjectResponse, error) {
	project, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	return toProjectResponse(project), nil
}

// GetBySlug obtiene un proyecto por slug (página pública).
func (uc *ProjectUseCase) GetBySlug(s string) (*dto.ProjectResponse, error) {
	project, err := uc.repo.GetBySlug(slug.Make(s))
	if err != nil {
		return nil, err
	}
	return toProjectResponse(project), nil
}

// Update actualiza un proyecto del actor. Devuelve ErrForbidden si el caller
// no es el dueño.
func (uc *ProjectUseCase) Update(actorID, id string, in dto.UpdateProjectRequest) (*dto.ProjectResponse, error) {
	project, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, nil
	}
	if project.ActorID != actorID {
		return nil, domain.ErrForbidden
	}
	if in.Title != nil {
		project.Title = *in.Title
	}
	if in.Description != nil {
		project.Description = *in.Description
	}
	if in.GoalSats != nil {
		if *in.GoalSats < 0 {
			return nil, domain.ErrInvalidInput
		}
		project.GoalSats = *in.GoalSats
	}
	if in.BitcoinAddress != nil {
		project.BitcoinAddress = *in.BitcoinAddress
	}
	project.UpdatedAt = time.Now()
	if err := uc.repo.Update(project); err != nil {
		return nil, err
	}
	return toProjectResponse(project), nil
}

// ChangeStatus aplica una transición del ciclo de vida (draft→active→…).
func (uc *ProjectUseCase) ChangeStatus(actorID, id, status string) (*dto.ProjectResponse, error) {
	to, ok := entity.ParseStatus(status)
	if !ok {
		return nil, domain.ErrInvalidInput
	}
	project, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, nil
	}
	if project.ActorID != actorID {
		return nil, domain.ErrForbidden
	}
	if !project.Status.CanTransition(to) {
		return nil, domain.ErrInvalidTransition
	}
	project.Status = to
	project.UpdatedAt = time.Now()
	if err := uc.repo.Update(project); err != nil {
		return nil, err
	}
	if to == entity.StatusActive {
		recordEvent(uc.timeline, actorID, entity.EventEntityActivated, "project", project.ID, project.Title)
	}
	return toProjectResponse(project), nil
}

// ListByActor lista los proyectos de un actor con paginación.
func (uc *ProjectUseCase) ListByActor(actorID string, page dto.PageRequest) ([]dto.ProjectResponse, int, error) {
	list, total, err := uc.repo.ListByActor(actorID, page.Limit, page.Offset)
	if err != nil {
		return nil, 0, err
	}
	return toProjectList(list), total, nil
}

// ListPublic lista proyectos activos (descubrimiento).
func (uc *ProjectUseCase) ListPublic(page dto.PageRequest) ([]dto.ProjectResponse, int, error) {
	list, total, err := uc.repo.ListPublic(page.Limit, page.Offset)
	if err != nil {
		return nil, 0, err
	}
	return toProjectList(list), total, nil
}

// Delete elimina un proyecto del actor.
func (uc *ProjectUseCase) Delete(actorID, id string) error {
	project, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if project == nil {
		return domain.ErrNotFound
	}
	if project.ActorID != actorID {
		return domain.ErrForbidden
	}
	return uc.repo.Delete(id)
}

func toProjectResponse(p *entity.Project) *dto.ProjectResponse {
	if p == nil {
		return nil
	}
	return &dto.ProjectResponse{
		ID:             p.ID,
		ActorID:        p.ActorID,
		Slug:           p.Slug,
		Title:          p.Title,
		Description:    p.Description,
		GoalSats:       p.GoalSats,
		RaisedSats:     p.RaisedSats,
		BitcoinAddress: p.BitcoinAddress,
		Status:         string(p.Status),
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

func toProjectList(list []*entity.Project) []dto.ProjectResponse {
	items := make([]dto.ProjectResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProjectResponse(p))
	}
	return items
}
