package dto

import "time"

// CreateWishlistRequest entrada para crear una lista de deseos.
type CreateWishlistRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// UpdateWishlistRequest entrada para actualizar una lista.
type UpdateWishlistRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

// AddWishlistItemRequest entrada para añadir un item (referencia del registro).
type AddWishlistItemRequest struct {
	EntityType string `json:"entity_type"`
	EntityID   string `json:"entity_id"`
	Note       string `json:"note"`
}

// WishlistItemResponse salida de un item.
type WishlistItemResponse struct {
	ID         string    `json:"id"`
	EntityType string    `json:"entity_type"`
	EntityID   string    `json:"entity_id"`
	Note       string    `json:"note"`
	CreatedAt  time.Time `json:"created_at"`
}

// WishlistResponse salida de una lista, con items si se pidieron.
type WishlistResponse struct {
	ID          string                 `json:"id"`
	ActorID     string                 `json:"actor_id"`
	Title       string                 `json:"title"`
	Description string                 `json:"description"`
	Status      string                 `json:"status"`
	Items       []WishlistItemResponse `json:"items,omitempty"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
}
