package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product artículo en venta de un actor (tabla user_products).
type Product struct {
	ID          string
	ActorID     string
	Title       string
	Description string
	PriceSats   int64
	Stock       int
	Status      Status
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Service servicio agendable por citas (tabla user_services).
// DurationMinutes define el tamaño del slot; la tarifa es por hora.
type Service struct {
	ID              string
	ActorID         string
	Title           string
	Description     string
	HourlyRateSats  int64
	DurationMinutes int
	Status          Status
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Loan solicitud de préstamo con colateral opcional (referencia a un Asset).
// InterestRate es tasa anual en porcentaje (decimal para no perder precisión).
type Loan struct {
	ID                string
	ActorID           string
	Title             string
	Description       string
	PrincipalSats     int64
	InterestRate      decimal.Decimal
	TermMonths        int
	CollateralAssetID *string
	Status            Status
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Asset bien físico rentable por períodos (hourly/daily/weekly/monthly).
type Asset struct {
	ID              string
	ActorID         string
	Title           string
	Description     string
	RentalPriceSats int64 // precio por período
	RentalPeriod    PeriodType
	Status          Status
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Cause causa benéfica con meta de recaudo (tabla user_causes).
type Cause struct {
	ID          string
	ActorID     string
	Title       string
	Description string
	GoalSats    int64
	RaisedSats  int64
	Status      Status
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
