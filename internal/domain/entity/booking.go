package entity

import "time"

// PeriodType granularidad de renta o agenda.
type PeriodType string

const (
	PeriodHourly  PeriodType = "hourly"
	PeriodDaily   PeriodType = "daily"
	PeriodWeekly  PeriodType = "weekly"
	PeriodMonthly PeriodType = "monthly"
)

// ParsePeriodType valida el string de entrada.
func ParsePeriodType(s string) (PeriodType, bool) {
	switch PeriodType(s) {
	case PeriodHourly, PeriodDaily, PeriodWeekly, PeriodMonthly:
		return PeriodType(s), true
	}
	return "", false
}

// Duration devuelve la duración de un slot del período.
// Para monthly se usan 30 días (convención del calendario de rentas).
func (p PeriodType) Duration() time.Duration {
	switch p {
	case PeriodHourly:
		return time.Hour
	case PeriodDaily:
		return 24 * time.Hour
	case PeriodWeekly:
		return 7 * 24 * time.Hour
	case PeriodMonthly:
		return 30 * 24 * time.Hour
	}
	return 0
}

// Estados de una reserva. Las canceladas no bloquean disponibilidad.
const (
	BookingPending   = "pending"
	BookingConfirmed = "confirmed"
	BookingCancelled = "cancelled"
)

// Booking reserva de un asset (renta) o un service (cita).
// El intervalo es semiabierto: [StartsAt, EndsAt).
type Booking struct {
	ID            string
	EntityType    string // "asset" | "service"
	EntityID      string
	BookerActorID string
	StartsAt      time.Time
	EndsAt        time.Time
	Status        string
	CreatedAt     time.Time
}

// Overlaps indica si dos intervalos semiabiertos se solapan.
func (b *Booking) Overlaps(from, to time.Time) bool {
	return b.StartsAt.Before(to) && from.Before(b.EndsAt)
}
