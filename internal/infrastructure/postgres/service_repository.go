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

var _ repository.ServiceRepository = (*ServiceRepo)(nil)

// ServiceRepo implementación de ServiceRepository sobre PostgreSQL (tabla user_services).
type ServiceRepo struct {
	q Querier
}

// NewServiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewServiceRepository(q Querier) *ServiceRepo {
	return &ServiceRepo{q: q}
}

const serviceColumns = `id, actor_id, title, description, hourly_rate_sats, duration_minutes, status, created_at, updated_at`

// Create persiste un nuevo servicio.
func (r *ServiceRepo) Create(s *entity.Service) error {
	query := `
		INSERT INTO user_services (` + serviceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		s.ID, s.ActorID, s.Title, s.Description, s.HourlyRateSats, s.DurationMinutes, s.Status, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert service: %w", err)
	}
	return nil
}

// GetByID obtiene un servicio por ID.
func (r *ServiceRepo) GetByID(id string) (*entity.Service, error) {
	query := `SELECT ` + serviceColumns + ` FROM user_services WHERE id = $1`
	var s entity.Service
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&s.ID, &s.ActorID, &s.Title, &s.Description, &s.HourlyRateSats, &s.DurationMinutes,
		&s.Status, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get service: %w", err)
	}
	return &s, nil
}

// Update actualiza un servicio existente.
func (r *ServiceRepo) Update(s *entity.Service) error {
	query := `
		UPDATE user_services SET title = $2, description = $3, hourly_rate_sats = $4,
			duration_minutes = $5, status = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		s.ID, s.Title, s.Description, s.HourlyRateSats, s.DurationMinutes, s.Status, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update service: %w", err)
	}
	return nil
}

// ListByActor lista los servicios de un actor con paginación y total.
func (r *ServiceRepo) ListByActor(actorID string, limit, offset int) ([]*entity.Service, int, error) {
	return r.list("actor_id = $1 AND status <> 'deleted'", []any{actorID}, limit, offset)
}

// ListPublic lista servicios activos.
func (r *ServiceRepo) ListPublic(limit, offset int) ([]*entity.Service, int, error) {
	return r.list("status = 'active'", nil, limit, offset)
}

func (r *ServiceRepo) list(where string, args []any, limit, offset int) ([]*entity.Service, int, error) {
	var total int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM user_services WHERE `+where, args...).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count services: %w", err)
	}

	n := len(args)
	query := fmt.Sprintf(`SELECT %s FROM user_services WHERE %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		serviceColumns, where, n+1, n+2)
	rows, err := r.q.Query(context.Background(), query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("list services: %w", err)
	}
	defer rows.Close()

	var list []*entity.Service
	for rows.Next() {
		var s entity.Service
		if err := rows.Scan(&s.ID, &s.ActorID, &s.Title, &s.Description, &s.HourlyRateSats,
			&s.DurationMinutes, &s.Status, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan service: %w", err)
		}
		list = append(list, &s)
	}
	return list, total, rows.Err()
}

// Delete marca el servicio como eliminado.
func (r *ServiceRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE user_services SET status = 'deleted', updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete service: %w", err)
	}
	return nil
}
