package repository

import "github.com/orangecat-xyz/orangecat-api/internal/domain/entity"

// WishlistRepository puerto de persistencia para Wishlist y sus items.
type WishlistRepository interface {
	Create(w *entity.Wishlist) error
	GetByID(id string) (*entity.Wishlist, error)
	Update(w *entity.Wishlist) error
	ListByActor(actorID string, limit, offset int) ([]*entity.Wishlist, int, error)
	Delete(id string) error

	AddItem(item *entity.WishlistItem) error
	ListItems(wishlistID string) ([]*entity.WishlistItem, error)
	RemoveItem(wishlistID, itemID string) error
}
