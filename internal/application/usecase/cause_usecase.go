package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/orangecat-xyz/orangecat-api/internal/application/dto"
	"github.com/orangecat-xyz/orangecat-api/internal/domain"
	"github.com/orangecat-xyz/orangecat-api/internal/domain/entity"
	"github.com/orangecat-xyz/orangecat-api/internal/domain/repository"
)

// CauseUseCase casos de uso CRUD para causas benéficas (user_causes).
type CauseUseCase struct {
	repo     repository.CauseRepository
	timeline repository.TimelineRepository
}

// NewCauseUseCase construye el caso de uso.
func NewCauseUseCase(repo repository.CauseRepository, timeline repository.TimelineRepository) *CauseUseCase {
	return &CauseUseCase{repo: repo, timeline: timeline}
}

// Create crea una causa en draft.
func (uc *CauseUseCase) Create(actorID string, in dto.CreateCauseRequest) (*dto.CauseResponse, error) {
	if in.Title == "" || in.GoalSats < 0 {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	cause := &entity.Cause{
		ID:          uuid.New().String(),
		ActorID:     actorID,
		Title:       in.Title,
		Description: in.Description,
		GoalSats:    in.GoalSats,
		Status:      entity.StatusDraft,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(cause); err != nil {
		return nil, err
	}
	recordEvent(uc.timeline, actorID, entity.EventEntityCreated, "cause", cause.ID, cause.Title)
	return toCauseResponse(cause), nil
}

// GetByID obtiene una causa por ID.
func (uc *CauseUseCase) GetByID(id string) (*dto.CauseResponse, error) {
	cause, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	return toCauseResponse(cause), nil
}

// Update actualiza una causa del actor.
func (uc *CauseUseCase) Update(actorID, id string, in dto.UpdateCauseRequest) (*dto.CauseResponse, error) {
	cause, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if cause == nil {
		return nil, nil
	}
	if cause.ActorID != actorID {
		return nil, domain.ErrForbidden
	}
	if in.Title != nil {
		cause.Title = *in.Title
	}
	if in.Description != nil {
		cause.Description = *in.Description
	}
	if in.GoalSats != nil {
		if *in.GoalSats < 0 {
			return nil, domain.ErrInvalidInput
		}
		cause.GoalSats = *in.GoalSats
	}
	cause.UpdatedAt = time.Now()
	if err := uc.repo.Update(cause); err != nil {
		return nil, err
	}
	return toCauseResponse(cause), nil
}

// ChangeStatus aplica una transición del ciclo de vida.
func (uc *CauseUseCase) ChangeStatus(actorID, id, status string) (*dto.CauseResponse, error) {
	to, ok := entity.ParseStatus(status)
	if !ok {
		return nil, domain.ErrInvalidInput
	}
	cause, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if cause == nil {
		return nil, nil
	}
	if cause.ActorID != actorID {
		return nil, domain.ErrForbidden
	}
	if !cause.Status.CanTransition(to) {
		return nil, domain.ErrInvalidTransition
	}
	cause.Status = to
	cause.UpdatedAt = time.Now()
	if err := uc.repo.Update(cause); err != nil {
		return nil, err
	}
	return toCauseResponse(cause), nil
}

// ListByActor lista causas de un actor.
func (uc *CauseUseCase) ListByActor(actorID string, page dto.PageRequest) ([]dto.CauseResponse, int, error) {
	list, total, err := uc.repo.ListByActor(actorID, page.Limit, page.Offset)
	if err != nil {
		return nil, 0, err
	}
	return toCauseList(list), total, nil
}

// ListPublic lista causas activas.
func (uc *CauseUseCase) ListPublic(page dto.PageRequest) ([]dto.CauseResponse, int, error) {
	list, total, err := uc.repo.ListPublic(page.Limit, page.Offset)
	if err != nil {
		return nil, 0, err
	}
	return toCauseList(list), total, nil
}

// Delete elimina una causa del actor.
func (uc *CauseUseCase) Delete(actorID, id string) error {
	cause, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if cause == nil {
		return domain.ErrNotFound
	}
	if cause.ActorID != actorID {
		return domain.ErrForbidden
	}
	return uc.repo.Delete(id)
}

func toCauseResponse(c *entity.Cause) *dto.CauseResponse {
	if c == nil {
		return nil
	}
	return &dto.CauseResponse{
		ID:          c.ID,
		ActorID:     c.ActorID,
		Title:       c.Title,
		Description: c.Description,
		GoalSats:    c.GoalSats,
		RaisedSats:  c.RaisedSats,
		Status:      string(c.Status),
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func toCauseList(list []*entity.Cause) []dto.CauseResponse {
	items := make([]dto.CauseResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toCauseResponse(c))
	}
	return items
}
