package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/orangecat-xyz/orangecat-api/internal/application/dto"
	"github.com/orangecat-xyz/orangecat-api/internal/domain"
	"github.com/orangecat-xyz/orangecat-api/internal/domain/entity"
	"github.com/orangecat-xyz/orangecat-api/internal/domain/repository"
)

// WishlistUseCase casos de uso para listas de deseos e items. Los items se
// validan contra el registro de entidades y la tabla que éste indica.
type WishlistUseCase struct {
	repo    repository.WishlistRepository
	refRepo repository.EntityRefRepository
}

// NewWishlistUseCase construye el caso de uso.
func NewWishlistUseCase(repo repository.WishlistRepository, refRepo repository.EntityRefRepository) *WishlistUseCase {
	return &WishlistUseCase{repo: repo, refRepo: refRepo}
}

// Create crea una lista en draft.
func (uc *WishlistUseCase) Create(actorID string, in dto.CreateWishlistRequest) (*dto.WishlistResponse, error) {
	if in.Title == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	w := &entity.Wishlist{
		ID:          uuid.New().String(),
		ActorID:     actorID,
		Title:       in.Title,
		Description: in.Description,
		Status:      entity.StatusDraft,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(w); err != nil {
		return nil, err
	}
	return toWishlistResponse(w, nil), nil
}

// GetByID obtiene una lista con sus items.
func (uc *WishlistUseCase) GetByID(id string) (*dto.WishlistResponse, error) {
	w, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, nil
	}
	items, err := uc.repo.ListItems(w.ID)
	if err != nil {
		return nil, err
	}
	return toWishlistResponse(w, items), nil
}

// Update actualiza título/descripción de una lista del actor.
func (uc *WishlistUseCase) Update(actorID, id string, in dto.UpdateWishlistRequest) (*dto.WishlistResponse, error) {
	w, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, nil
	}
	if w.ActorID != actorID {
		return nil, domain.ErrForbidden
	}
	if in.Title != nil {
		w.Title = *in.Title
	}
	if in.Description != nil {
		w.Description = *in.Description
	}
	w.UpdatedAt = time.Now()
	if err := uc.repo.Update(w); err != nil {
		return nil, err
	}
	return toWishlistResponse(w, nil), nil
}

// ChangeStatus aplica una transición del ciclo de vida.
func (uc *WishlistUseCase) ChangeStatus(actorID, id, status string) (*dto.WishlistResponse, error) {
	to, ok := entity.ParseStatus(status)
	if !ok {
		return nil, domain.ErrInvalidInput
	}
	w, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, nil
	}
	if w.ActorID != actorID {
		return nil, domain.ErrForbidden
	}
	if !w.Status.CanTransition(to) {
		return nil, domain.ErrInvalidTransition
	}
	w.Status = to
	w.UpdatedAt = time.Now()
	if err := uc.repo.Update(w); err != nil {
		return nil, err
	}
	return toWishlistResponse(w, nil), nil
}

// ListByActor lista las listas de un actor.
func (uc *WishlistUseCase) ListByActor(actorID string, page dto.PageRequest) ([]dto.WishlistResponse, int, error) {
	list, total, err := uc.repo.ListByActor(actorID, page.Limit, page.Offset)
	if err != nil {
		return nil, 0, err
	}
	items := make([]dto.WishlistResponse, 0, len(list))
	for _, w := range list {
		items = append(items, *toWishlistResponse(w, nil))
	}
	return items, total, nil
}

// Delete elimina una lista del actor.
func (uc *WishlistUseCase) Delete(actorID, id string) error {
	w, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if w == nil {
		return domain.ErrNotFound
	}
	if w.ActorID != actorID {
		return domain.ErrForbidden
	}
	return uc.repo.Delete(id)
}

// AddItem añade una referencia del registro a la lista del actor.
// Valida el tipo contra el registro y la existencia de la fila referenciada.
func (uc *WishlistUseCase) AddItem(actorID, wishlistID string, in dto.AddWishlistItemRequest) (*dto.WishlistItemResponse, error) {
	if !entity.IsRegisteredEntity(in.EntityType) {
		return nil, domain.ErrUnknownEntity
	}
	if in.EntityID == "" {
		return nil, domain.ErrInvalidInput
	}
	w, err := uc.repo.GetByID(wishlistID)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, domain.ErrNotFound
	}
	if w.ActorID != actorID {
		return nil, domain.ErrForbidden
	}
	exists, err := uc.refRepo.Exists(in.EntityType, in.EntityID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrNotFound
	}
	item := &entity.WishlistItem{
		ID:         uuid.New().String(),
		WishlistID: wishlistID,
		EntityType: in.EntityType,
		EntityID:   in.EntityID,
		Note:       in.Note,
		CreatedAt:  time.Now(),
	}
	if err := uc.repo.AddItem(item); err != nil {
		return nil, err
	}
	return toWishlistItemResponse(item), nil
}

// RemoveItem quita un item de la lista del actor.
func (uc *WishlistUseCase) RemoveItem(actorID, wishlistID, itemID string) error {
	w, err := uc.repo.GetByID(wishlistID)
	if err != nil {
		return err
	}
	if w == nil {
		return domain.ErrNotFound
	}
	if w.ActorID != actorID {
		return domain.ErrForbidden
	}
	return uc.repo.RemoveItem(wishlistID, itemID)
}

func toWishlistItemResponse(i *entity.WishlistItem) *dto.WishlistItemResponse {
	return &dto.WishlistItemResponse{
		ID:         i.ID,
		EntityType: i.EntityType,
		EntityID:   i.EntityID,
		Note:       i.Note,
		CreatedAt:  i.CreatedAt,
	}
}

func toWishlistResponse(w *entity.Wishlist, items []*entity.WishlistItem) *dto.WishlistResponse {
	if w == nil {
		return nil
	}
	resp := &dto.WishlistResponse{
		ID:          w.ID,
		ActorID:     w.ActorID,
		Title:       w.Title,
		Description: w.Description,
		Status:      string(w.Status),
		CreatedAt:   w.CreatedAt,
		UpdatedAt:   w.UpdatedAt,
	}
	for _, i := range items {
		resp.Items = append(resp.Items, *toWishlistItemResponse(i))
	}
	return resp
}
