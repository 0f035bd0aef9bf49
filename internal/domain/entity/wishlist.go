package entity

import "time"

// Wishlist lista de deseos de un actor; los items referencian entidades del
// registro por tipo+id.
type Wishlist struct {
	ID          string
	ActorID     string
	Title       string
	Description string
	Status      Status
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// WishlistItem referencia a una entidad del registro dentro de una lista.
type WishlistItem struct {
	ID         string
	WishlistID string
	EntityType string
	EntityID   string
	Note       string
	CreatedAt  time.Time
}
