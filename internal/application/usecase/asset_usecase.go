package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/orangecat-xyz/orangecat-api/internal/application/dto"
	"github.com/orangecat-xyz/orangecat-api/internal/domain"
	"github.com/orangecat-xyz/orangecat-api/internal/domain/entity"
	"github.com/orangecat-xyz/orangecat-api/internal/domain/repository"
)

// AssetUseCase casos de uso CRUD para assets rentables.
type AssetUseCase struct {
	repo     repository.AssetRepository
	timeline repository.TimelineRepository
}

// NewAssetUseCase construye el caso de uso.
func NewAssetUseCase(repo repository.AssetRepository, timeline repository.TimelineRepository) *AssetUseCase {
	return &AssetUseCase{repo: repo, timeline: timeline}
}

// Create crea un asset en draft. El período por defecto es daily.
func (uc *AssetUseCase) Create(actorID string, in dto.CreateAssetRequest) (*dto.AssetResponse, error) {
	if in.Title == "" || in.RentalPriceSats < 0 {
		return nil, domain.ErrInvalidInput
	}
	period := entity.PeriodDaily
	if in.RentalPeriod != "" {
		p, ok := entity.ParsePeriodType(in.RentalPeriod)
		if !ok {
			return nil, domain.ErrInvalidInput
		}
		period = p
	}
	now := time.Now()
	asset := &entity.Asset{
		ID:              uuid.New().String(),
		ActorID:         actorID,
		Title:           in.Title,
		Description:     in.Description,
		RentalPriceSats: in.RentalPriceSats,
		RentalPeriod:    period,
		Status:          entity.StatusDraft,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.repo.Create(asset); err != nil {
		return nil, err
	}
	recordEvent(uc.timeline, actorID, entity.EventEntityCreated, "asset", asset.ID, asset.Title)
	return toAssetResponse(asset), nil
}

// GetByID obtiene un asset por ID.
func (uc *AssetUseCase) GetByID(id string) (*dto.AssetResponse, error) {
	asset, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	return toAssetResponse(asset), nil
}

// Update actualiza un asset del actor.
func (uc *AssetUseCase) Update(actorID, id string, in dto.UpdateAssetRequest) (*dto.AssetResponse, error) {
	asset, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if asset == nil {
		return nil, nil
	}
	if asset.ActorID != actorID {
		return nil, domain.ErrForbidden
	}
	if in.Title != nil {
		asset.Title = *in.Title
	}
	if in.Description != nil {
		asset.Description = *in.Description
	}
	if in.RentalPriceSats != nil {
		if *in.RentalPriceSats < 0 {
			return nil, domain.ErrInvalidInput
		}
		asset.RentalPriceSats = *in.RentalPriceSats
	}
	if in.RentalPeriod != nil {
		p, ok := entity.ParsePeriodType(*in.RentalPeriod)
		if !ok {
			return nil, domain.ErrInvalidInput
		}
		asset.RentalPeriod = p
	}
	asset.UpdatedAt = time.Now()
	if err := uc.repo.Update(asset); err != nil {
		return nil, err
	}
	return toAssetResponse(asset), nil
}

// ChangeStatus aplica una transición del ciclo de vida.
func (uc *AssetUseCase) ChangeStatus(actorID, id, status string) (*dto.AssetResponse, error) {
	to, ok := entity.ParseStatus(status)
	if !ok {
		return nil, domain.ErrInvalidInput
	}
	asset, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if asset == nil {
		return nil, nil
	}
	if asset.ActorID != actorID {
		return nil, domain.ErrForbidden
	}
	if !asset.Status.CanTransition(to) {
		return nil, domain.ErrInvalidTransition
	}
	asset.Status = to
	asset.UpdatedAt = time.Now()
	if err := uc.repo.Update(asset); err != nil {
		return nil, err
	}
	return toAssetResponse(asset), nil
}

// ListByActor lista assets de un actor.
func (uc *AssetUseCase) ListByActor(actorID string, page dto.PageRequest) ([]dto.AssetResponse, int, error) {
	list, total, err := uc.repo.ListByActor(actorID, page.Limit, page.Offset)
	if err != nil {
		return nil, 0, err
	}
	return toAssetList(list), total, nil
}

// ListPublic lista assets activos.
func (uc *AssetUseCase) ListPublic(page dto.PageRequest) ([]dto.AssetResponse, int, error) {
	list, total, err := uc.repo.ListPublic(page.Limit, page.Offset)
	if err != nil {
		return nil, 0, err
	}
	return toAssetList(list), total, nil
}

// Delete elimina un asset del actor.
func (uc *AssetUseCase) Delete(actorID, id string) error {
	asset, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if asset == nil {
		return domain.ErrNotFound
	}
	if asset.ActorID != actorID {
		return domain.ErrForbidden
	}
	return uc.repo.Delete(id)
}

func toAssetResponse(a *entity.Asset) *dto.AssetResponse {
	if a == nil {
		return nil
	}
	return &dto.AssetResponse{
		ID:              a.ID,
		ActorID:         a.ActorID,
		Title:           a.Title,
		Description:     a.Description,
		RentalPriceSats: a.RentalPriceSats,
		RentalPeriod:    string(a.RentalPeriod),
		Status:          string(a.Status),
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}

func toAssetList(list []*entity.Asset) []dto.AssetResponse {
	items := make([]dto.AssetResponse, 0, len(list))
	for _, a := range list {
		items = append(items, *toAssetResponse(a))
	}
	return items
}
