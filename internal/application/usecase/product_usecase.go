package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/orangecat-xyz/orangecat-api/internal/application/dto"
	"github.com/orangecat-xyz/orangecat-api/internal/domain"
	"github.com/orangecat-xyz/orangecat-api/internal/domain/entity"
	"github.com/orangecat-xyz/orangecat-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos (user_products).
type ProductUseCase struct {
	repo     repository.ProductRepository
	timeline repository.TimelineRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, timeline repository.TimelineRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo, timeline: timeline}
}

// Create crea un producto en draft.
func (uc *ProductUseCase) Create(actorID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Title == "" || in.PriceSats < 0 || in.Stock < 0 {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		ActorID:     actorID,
		Title:       in.Title,
		Description: in.Description,
		PriceSats:   in.PriceSats,
		Stock:       in.Stock,
		Status:      entity.StatusDraft,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	recordEvent(uc.timeline, actorID, entity.EventEntityCreated, "product", product.ID, product.Title)
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Update actualiza un producto del actor.
func (uc *ProductUseCase) Update(actorID, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	if product.ActorID != actorID {
		return nil, domain.ErrForbidden
	}
	if in.Title != nil {
		product.Title = *in.Title
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.PriceSats != nil {
		if *in.PriceSats < 0 {
			return nil, domain.ErrInvalidInput
		}
		product.PriceSats = *in.PriceSats
	}
	if in.Stock != nil {
		if *in.Stock < 0 {
			return nil, domain.ErrInvalidInput
		}
		product.Stock = *in.Stock
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// ChangeStatus aplica una transición del ciclo de vida.
func (uc *ProductUseCase) ChangeStatus(actorID, id, status string) (*dto.ProductResponse, error) {
	to, ok := entity.ParseStatus(status)
	if !ok {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	if product.ActorID != actorID {
		return nil, domain.ErrForbidden
	}
	if !product.Status.CanTransition(to) {
		return nil, domain.ErrInvalidTransition
	}
	product.Status = to
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// ListByActor lista productos de un actor.
func (uc *ProductUseCase) ListByActor(actorID string, page dto.PageRequest) ([]dto.ProductResponse, int, error) {
	list, total, err := uc.repo.ListByActor(actorID, page.Limit, page.Offset)
	if err != nil {
		return nil, 0, err
	}
	return toProductList(list), total, nil
}

// ListPublic lista productos activos.
func (uc *ProductUseCase) ListPublic(page dto.PageRequest) ([]dto.ProductResponse, int, error) {
	list, total, err := uc.repo.ListPublic(page.Limit, page.Offset)
	if err != nil {
		return nil, 0, err
	}
	return toProductList(list), total, nil
}

// Delete elimina un producto del actor.
func (uc *ProductUseCase) Delete(actorID, id string) error {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	if product.ActorID != actorID {
		return domain.ErrForbidden
	}
	return uc.repo.Delete(id)
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:          p.ID,
		ActorID:     p.ActorID,
		Title:       p.Title,
		Description: p.Description,
		PriceSats:   p.PriceSats,
		Stock:       p.Stock,
		Status:      string(p.Status),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func toProductList(list []*entity.Product) []dto.ProductResponse {
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return items
}
