package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/orangecat-xyz/orangecat-api/internal/domain/entity"
	"github.com/orangecat-xyz/orangecat-api/internal/domain/repository"
)

var _ repository.BookingRepository = (*BookingRepo)(nil)

// BookingRepo implementación de BookingRepository sobre PostgreSQL.
type BookingRepo struct {
	q Querier
}

// NewBookingRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBookingRepository(q Querier) *BookingRepo {
	return &BookingRepo{q: q}
}

const bookingColumns = `id, entity_type, entity_id, booker_actor_id, starts_at, ends_at, status, created_at`

// Create persiste una nueva reserva.
func (r *BookingRepo) Create(b *entity.Booking) error {
	query := `
		INSERT INTO bookings (` + bookingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		b.ID, b.EntityType, b.EntityID, b.BookerActorID, b.StartsAt, b.EndsAt, b.Status, b.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert booking: %w", err)
	}
	return nil
}

// GetByID obtiene una reserva por ID.
func (r *BookingRepo) GetByID(id string) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`
	var b entity.Booking
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&b.ID, &b.EntityType, &b.EntityID, &b.BookerActorID, &b.StartsAt, &b.EndsAt, &b.Status, &b.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get booking: %w", err)
	}
	return &b, nil
}

// ListOverlapping devuelve reservas no canceladas de la entidad cuyo intervalo
// semiabierto se solapa con [from, to).
func (r *BookingRepo) ListOverlapping(entityType, entityID string, from, to time.Time) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + ` FROM bookings
		WHERE entity_type = $1 AND entity_id = $2 AND status <> 'cancelled'
			AND starts_at < $4 AND $3 < ends_at
		ORDER BY starts_at`
	rows, err := r.q.Query(context.Background(), query, entityType, entityID, from, to)
	if err != nil {
		return nil, fmt.Errorf("list overlapping bookings: %w", err)
	}
	defer rows.Close()

	var list []*entity.Booking
	for rows.Next() {
		var b entity.Booking
		if err := rows.Scan(&b.ID, &b.EntityType, &b.EntityID, &b.BookerActorID, &b.StartsAt,
			&b.EndsAt, &b.Status, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		list = append(list, &b)
	}
	return list, rows.Err()
}

// ListByBooker lista las reservas hechas por un actor.
func (r *BookingRepo) ListByBooker(actorID string, limit, offset int) ([]*entity.Booking, int, error) {
	var total int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM bookings WHERE booker_actor_id = $1`, actorID).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count bookings: %w", err)
	}

	query := `
		SELECT ` + bookingColumns + ` FROM bookings
		WHERE booker_actor_id = $1 ORDER BY starts_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, actorID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	var list []*entity.Booking
	for rows.Next() {
		var b entity.Booking
		if err := rows.Scan(&b.ID, &b.EntityType, &b.EntityID, &b.BookerActorID, &b.StartsAt,
			&b.EndsAt, &b.Status, &b.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan booking: %w", err)
		}
		list = append(list, &b)
	}
	return list, total, rows.Err()
}

// UpdateStatus cambia el estado de una reserva.
func (r *BookingRepo) UpdateStatus(id, status string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE bookings SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update booking status: %w", err)
	}
	return nil
}
