package repository

import (
	"time"

	"github.com/orangecat-xyz/orangecat-api/internal/domain/entity"
)

// BookingRepository puerto de persistencia para Booking.
type BookingRepository interface {
	Create(b *entity.Booking) error
	GetByID(id string) (*entity.Booking, error)
	// ListOverlapping devuelve reservas no canceladas de la entidad cuyo
	// intervalo se solapa con [from, to).
	ListOverlapping(entityType, entityID string, from, to time.Time) ([]*entity.Booking, error)
	ListByBooker(actorID string, limit, offset int) ([]*entity.Booking, int, error)
	UpdateStatus(id, status string) error
}
