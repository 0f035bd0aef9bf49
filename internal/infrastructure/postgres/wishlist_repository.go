package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/orangecat-xyz/orangecat-api/internal/domain"
	"github.com/orangecat-xyz/orangecat-api/internal/domain/entity"
	"github.com/orangecat-xyz/orangecat-api/internal/domain/repository"
)

var _ repository.WishlistRepository = (*WishlistRepo)(nil)

// WishlistRepo implementación de WishlistRepository sobre PostgreSQL.
type WishlistRepo struct {
	q Querier
}

// NewWishlistRepository construye el adaptador. Pasar pool o tx (Querier).
func NewWishlistRepository(q Querier) *WishlistRepo {
	return &WishlistRepo{q: q}
}

// Create persiste una nueva lista de deseos.
func (r *WishlistRepo) Create(w *entity.Wishlist) error {
	query := `
		INSERT INTO wishlists (id, actor_id, title, description, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		w.ID, w.ActorID, w.Title, w.Description, w.Status, w.CreatedAt, w.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert wishlist: %w", err)
	}
	return nil
}

// GetByID obtiene una lista por ID.
func (r *WishlistRepo) GetByID(id string) (*entity.Wishlist, error) {
	query := `
		SELECT id, actor_id, title, description, status, created_at, updated_at
		FROM wishlists WHERE id = $1`
	var w entity.Wishlist
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&w.ID, &w.ActorID, &w.Title, &w.Description, &w.Status, &w.CreatedAt, &w.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get wishlist: %w", err)
	}
	return &w, nil
}

// Update actualiza una lista existente.
func (r *WishlistRepo) Update(w *entity.Wishlist) error {
	query := `
		UPDATE wishlists SET title = $2, description = $3, status = $4, updated_at = $5
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		w.ID, w.Title, w.Description, w.Status, w.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update wishlist: %w", err)
	}
	return nil
}

// ListByActor lista las listas de un actor con paginación y total.
func (r *WishlistRepo) ListByActor(actorID string, limit, offset int) ([]*entity.Wishlist, int, error) {
	var total int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM wishlists WHERE actor_id = $1 AND status <> 'deleted'`, actorID).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count wishlists: %w", err)
	}

	query := `
		SELECT id, actor_id, title, description, status, created_at, updated_at
		FROM wishlists WHERE actor_id = $1 AND status <> 'deleted'
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, actorID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list wishlists: %w", err)
	}
	defer rows.Close()

	var list []*entity.Wishlist
	for rows.Next() {
		var w entity.Wishlist
		if err := rows.Scan(&w.ID, &w.ActorID, &w.Title, &w.Description, &w.Status, &w.CreatedAt, &w.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan wishlist: %w", err)
		}
		list = append(list, &w)
	}
	return list, total, rows.Err()
}

// Delete marca la lista como eliminada.
func (r *WishlistRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE wishlists SET status = 'deleted', updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete wishlist: %w", err)
	}
	return nil
}

// AddItem agrega un item a la lista (único por lista+tipo+id).
func (r *WishlistRepo) AddItem(item *entity.WishlistItem) error {
	query := `
		INSERT INTO wishlist_items (id, wishlist_id, entity_type, entity_id, note, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.WishlistID, item.EntityType, item.EntityID, item.Note, item.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert wishlist item: %w", err)
	}
	return nil
}

// ListItems lista los items de una lista.
func (r *WishlistRepo) ListItems(wishlistID string) ([]*entity.WishlistItem, error) {
	query := `
		SELECT id, wishlist_id, entity_type, entity_id, note, created_at
		FROM wishlist_items WHERE wishlist_id = $1 ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, wishlistID)
	if err != nil {
		return nil, fmt.Errorf("list wishlist items: %w", err)
	}
	defer rows.Close()

	var list []*entity.WishlistItem
	for rows.Next() {
		var it entity.WishlistItem
		if err := rows.Scan(&it.ID, &it.WishlistID, &it.EntityType, &it.EntityID, &it.Note, &it.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan wishlist item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

// RemoveItem elimina un item de la lista.
func (r *WishlistRepo) RemoveItem(wishlistID, itemID string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM wishlist_items WHERE wishlist_id = $1 AND id = $2`, wishlistID, itemID)
	if err != nil {
		return fmt.Errorf("delete wishlist item: %w", err)
	}
	return nil
}
