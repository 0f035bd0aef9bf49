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

var _ repository.AssetRepository = (*AssetRepo)(nil)

// AssetRepo implementación de AssetRepository sobre PostgreSQL.
type AssetRepo struct {
	q Querier
}

// NewAssetRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAssetRepository(q Querier) *AssetRepo {
	return &AssetRepo{q: q}
}

const assetColumns = `id, actor_id, title, description, rental_price_sats, rental_period, status, created_at, updated_at`

// Create persiste un nuevo asset.
func (r *AssetRepo) Create(a *entity.Asset) error {
	query := `
		INSERT INTO assets (` + assetColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		a.ID, a.ActorID, a.Title, a.Description, a.RentalPriceSats, a.RentalPeriod, a.Status, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert asset: %w", err)
	}
	return nil
}

// GetByID obtiene un asset por ID.
func (r *AssetRepo) GetByID(id string) (*entity.Asset, error) {
	query := `SELECT ` + assetColumns + ` FROM assets WHERE id = $1`
	var a entity.Asset
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&a.ID, &a.ActorID, &a.Title, &a.Description, &a.RentalPriceSats, &a.RentalPeriod,
		&a.Status, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get asset: %w", err)
	}
	return &a, nil
}

// Update actualiza un asset existente.
func (r *AssetRepo) Update(a *entity.Asset) error {
	query := `
		UPDATE assets SET title = $2, description = $3, rental_price_sats = $4,
			rental_period = $5, status = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		a.ID, a.Title, a.Description, a.RentalPriceSats, a.RentalPeriod, a.Status, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update asset: %w", err)
	}
	return nil
}

// ListByActor lista los assets de un actor con paginación y total.
func (r *AssetRepo) ListByActor(actorID string, limit, offset int) ([]*entity.Asset, int, error) {
	return r.list("actor_id = $1 AND status <> 'deleted'", []any{actorID}, limit, offset)
}

// ListPublic lista assets activos.
func (r *AssetRepo) ListPublic(limit, offset int) ([]*entity.Asset, int, error) {
	return r.list("status = 'active'", nil, limit, offset)
}

func (r *AssetRepo) list(where string, args []any, limit, offset int) ([]*entity.Asset, int, error) {
	var total int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM assets WHERE `+where, args...).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count assets: %w", err)
	}

	n := len(args)
	query := fmt.Sprintf(`SELECT %s FROM assets WHERE %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		assetColumns, where, n+1, n+2)
	rows, err := r.q.Query(context.Background(), query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("list assets: %w", err)
	}
	defer rows.Close()

	var list []*entity.Asset
	for rows.Next() {
		var a entity.Asset
		if err := rows.Scan(&a.ID, &a.ActorID, &a.Title, &a.Description, &a.RentalPriceSats,
			&a.RentalPeriod, &a.Status, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan asset: %w", err)
		}
		list = append(list, &a)
	}
	return list, total, rows.Err()
}

// Delete marca el asset como eliminado.
func (r *AssetRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE assets SET status = 'deleted', updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete asset: %w", err)
	}
	return nil
}
