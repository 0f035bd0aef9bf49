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

var _ repository.CauseRepository = (*CauseRepo)(nil)

// CauseRepo implementación de CauseRepository sobre PostgreSQL (tabla user_causes).
type CauseRepo struct {
	q Querier
}

// NewCauseRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCauseRepository(q Querier) *CauseRepo {
	return &CauseRepo{q: q}
}

const causeColumns = `id, actor_id, title, description, goal_sats, raised_sats, status, created_at, updated_at`

// Create persiste una nueva causa.
func (r *CauseRepo) Create(c *entity.Cause) error {
	query := `
		INSERT INTO user_causes (` + causeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		c.ID, c.ActorID, c.Title, c.Description, c.GoalSats, c.RaisedSats, c.Status, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert cause: %w", err)
	}
	return nil
}

// GetByID obtiene una causa por ID.
func (r *CauseRepo) GetByID(id string) (*entity.Cause, error) {
	query := `SELECT ` + causeColumns + ` FROM user_causes WHERE id = $1`
	var c entity.Cause
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&c.ID, &c.ActorID, &c.Title, &c.Description, &c.GoalSats, &c.RaisedSats,
		&c.Status, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cause: %w", err)
	}
	return &c, nil
}

// Update actualiza una causa existente.
func (r *CauseRepo) Update(c *entity.Cause) error {
	query := `
		UPDATE user_causes SET title = $2, description = $3, goal_sats = $4,
			raised_sats = $5, status = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		c.ID, c.Title, c.Description, c.GoalSats, c.RaisedSats, c.Status, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update cause: %w", err)
	}
	return nil
}

// ListByActor lista las causas de un actor con paginación y total.
func (r *CauseRepo) ListByActor(actorID string, limit, offset int) ([]*entity.Cause, int, error) {
	return r.list("actor_id = $1 AND status <> 'deleted'", []any{actorID}, limit, offset)
}

// ListPublic lista causas activas.
func (r *CauseRepo) ListPublic(limit, offset int) ([]*entity.Cause, int, error) {
	return r.list("status = 'active'", nil, limit, offset)
}

func (r *CauseRepo) list(where string, args []any, limit, offset int) ([]*entity.Cause, int, error) {
	var total int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM user_causes WHERE `+where, args...).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count causes: %w", err)
	}

	n := len(args)
	query := fmt.Sprintf(`SELECT %s FROM user_causes WHERE %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		causeColumns, where, n+1, n+2)
	rows, err := r.q.Query(context.Background(), query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("list causes: %w", err)
	}
	defer rows.Close()

	var list []*entity.Cause
	for rows.Next() {
		var c entity.Cause
		if err := rows.Scan(&c.ID, &c.ActorID, &c.Title, &c.Description, &c.GoalSats,
			&c.RaisedSats, &c.Status, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan cause: %w", err)
		}
		list = append(list, &c)
	}
	return list, total, rows.Err()
}

// Delete marca la causa como eliminada.
func (r *CauseRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE user_causes SET status = 'deleted', updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete cause: %w", err)
	}
	return nil
}
