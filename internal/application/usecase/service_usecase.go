package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/orangecat-xyz/orangecat-api/internal/application/dto"
	"github.com/orangecat-xyz/orangecat-api/internal/domain"
	"github.com/orangecat-xyz/orangecat-api/internal/domain/entity"
	"github.com/orangecat-xyz/orangecat-api/internal/domain/repository"
)

// ServiceUseCase casos de uso CRUD para servicios agendables (user_services).
type ServiceUseCase struct {
	repo     repository.ServiceRepository
	timeline repository.TimelineRepository
}

// NewServiceUseCase construye el caso de uso.
func NewServiceUseCase(repo repository.ServiceRepository, timeline repository.TimelineRepository) *ServiceUseCase {
	return &ServiceUseCase{repo: repo, timeline: timeline}
}

// Create crea un servicio en draft. La duración por defecto es 60 minutos.
func (uc *ServiceUseCase) Create(actorID string, in dto.CreateServiceRequest) (*dto.ServiceResponse, error) {
	if in.Title == "" || in.HourlyRateSats < 0 || in.DurationMinutes < 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.DurationMinutes == 0 {
		in.DurationMinutes = 60
	}
	now := time.Now()
	svc := &entity.Service{
		ID:              uuid.New().String(),
		ActorID:         actorID,
		Title:           in.Title,
		Description:     in.Description,
		HourlyRateSats:  in.HourlyRateSats,
		DurationMinutes: in.DurationMinutes,
		Status:          entity.StatusDraft,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.repo.Create(svc); err != nil {
		return nil, err
	}
	recordEvent(uc.timeline, actorID, entity.EventEntityCreated, "service", svc.ID, svc.Title)
	return toServiceResponse(svc), nil
}

// GetByID obtiene un servicio por ID.
func (uc *ServiceUseCase) GetByID(id string) (*dto.ServiceResponse, error) {
	svc, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	return toServiceResponse(svc), nil
}

// Update actualiza un servicio del actor.
func (uc *ServiceUseCase) Update(actorID, id string, in dto.UpdateServiceRequest) (*dto.ServiceResponse, error) {
	svc, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if svc == nil {
		return nil, nil
	}
	if svc.ActorID != actorID {
		return nil, domain.ErrForbidden
	}
	if in.Title != nil {
		svc.Title = *in.Title
	}
	if in.Description != nil {
		svc.Description = *in.Description
	}
	if in.HourlyRateSats != nil {
		if *in.HourlyRateSats < 0 {
			return nil, domain.ErrInvalidInput
		}
		svc.HourlyRateSats = *in.HourlyRateSats
	}
	if in.DurationMinutes != nil {
		if *in.DurationMinutes <= 0 {
			return nil, domain.ErrInvalidInput
		}
		svc.DurationMinutes = *in.DurationMinutes
	}
	svc.UpdatedAt = time.Now()
	if err := uc.repo.Update(svc); err != nil {
		return nil, err
	}
	return toServiceResponse(svc), nil
}

// ChangeStatus aplica una transición del ciclo de vida.
func (uc *ServiceUseCase) ChangeStatus(actorID, id, status string) (*dto.ServiceResponse, error) {
	to, ok := entity.ParseStatus(status)
	if !ok {
		return nil, domain.ErrInvalidInput
	}
	svc, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if svc == nil {
		return nil, nil
	}
	if svc.ActorID != actorID {
		return nil, domain.ErrForbidden
	}
	if !svc.Status.CanTransition(to) {
		return nil, domain.ErrInvalidTransition
	}
	svc.Status = to
	svc.UpdatedAt = time.Now()
	if err := uc.repo.Update(svc); err != nil {
		return nil, err
	}
	return toServiceResponse(svc), nil
}

// ListByActor lista servicios de un actor.
func (uc *ServiceUseCase) ListByActor(actorID string, page dto.PageRequest) ([]dto.ServiceResponse, int, error) {
	list, total, err := uc.repo.ListByActor(actorID, page.Limit, page.Offset)
	if err != nil {
		return nil, 0, err
	}
	return toServiceList(list), total, nil
}

// ListPublic lista servicios activos.
func (uc *ServiceUseCase) ListPublic(page dto.PageRequest) ([]dto.ServiceResponse, int, error) {
	list, total, err := uc.repo.ListPublic(page.Limit, page.Offset)
	if err != nil {
		return nil, 0, err
	}
	return toServiceList(list), total, nil
}

// Delete elimina un servicio del actor.
func (uc *ServiceUseCase) Delete(actorID, id string) error {
	svc, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if svc == nil {
		return domain.ErrNotFound
	}
	if svc.ActorID != actorID {
		return domain.ErrForbidden
	}
	return uc.repo.Delete(id)
}

func toServiceResponse(s *entity.Service) *dto.ServiceResponse {
	if s == nil {
		return nil
	}
	return &dto.ServiceResponse{
		ID:              s.ID,
		ActorID:         s.ActorID,
		Title:           s.Title,
		Description:     s.Description,
		HourlyRateSats:  s.HourlyRateSats,
		DurationMinutes: s.DurationMinutes,
		Status:          string(s.Status),
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

func toServiceList(list []*entity.Service) []dto.ServiceResponse {
	items := make([]dto.ServiceResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toServiceResponse(s))
	}
	return items
}
