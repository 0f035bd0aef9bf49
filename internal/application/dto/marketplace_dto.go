package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ── Products ──────────────────────────────────────────────────────────────────

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	PriceSats   int64  `json:"price_sats"`
	Stock       int    `json:"stock"`
}

// UpdateProductRequest entrada para actualizar un producto.
type UpdateProductRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	PriceSats   *int64  `json:"price_sats"`
	Stock       *int    `json:"stock"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID          string    `json:"id"`
	ActorID     string    `json:"actor_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	PriceSats   int64     `json:"price_sats"`
	Stock       int       `json:"stock"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ── Services ──────────────────────────────────────────────────────────────────

// CreateServiceRequest entrada para crear un servicio agendable.
type CreateServiceRequest struct {
	Title           string `json:"title"`
	Description     string `json:"description"`
	HourlyRateSats  int64  `json:"hourly_rate_sats"`
	DurationMinutes int    `json:"duration_minutes"`
}

// UpdateServiceRequest entrada para actualizar un servicio.
type UpdateServiceRequest struct {
	Title           *string `json:"title"`
	Description     *string `json:"description"`
	HourlyRateSats  *int64  `json:"hourly_rate_sats"`
	DurationMinutes *int    `json:"duration_minutes"`
}

// ServiceResponse salida de un servicio.
type ServiceResponse struct {
	ID              string    `json:"id"`
	ActorID         string    `json:"actor_id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	HourlyRateSats  int64     `json:"hourly_rate_sats"`
	DurationMinutes int       `json:"duration_minutes"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// ── Loans ─────────────────────────────────────────────────────────────────────

// CreateLoanRequest entrada para crear una solicitud de préstamo.
type CreateLoanRequest struct {
	Title             string          `json:"title"`
	Description       string          `json:"description"`
	PrincipalSats     int64           `json:"principal_sats"`
	InterestRate      decimal.Decimal `json:"interest_rate"`
	TermMonths        int             `json:"term_months"`
	CollateralAssetID *string         `json:"collateral_asset_id"`
}

// UpdateLoanRequest entrada para actualizar un préstamo.
type UpdateLoanRequest struct {
	Title             *string          `json:"title"`
	Description       *string          `json:"description"`
	PrincipalSats     *int64           `json:"principal_sats"`
	InterestRate      *decimal.Decimal `json:"interest_rate"`
	TermMonths        *int             `json:"term_months"`
	CollateralAssetID *string          `json:"collateral_asset_id"`
}

// LoanResponse salida de un préstamo.
type LoanResponse struct {
	ID                string          `json:"id"`
	ActorID           string          `json:"actor_id"`
	Title             string          `json:"title"`
	Description       string          `json:"description"`
	PrincipalSats     int64           `json:"principal_sats"`
	InterestRate      decimal.Decimal `json:"interest_rate"`
	TermMonths        int             `json:"term_months"`
	CollateralAssetID *string         `json:"collateral_asset_id"`
	Status            string          `json:"status"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// ── Assets ────────────────────────────────────────────────────────────────────

// CreateAssetRequest entrada para crear un asset rentable.
type CreateAssetRequest struct {
	Title           string `json:"title"`
	Description     string `json:"description"`
	RentalPriceSats int64  `json:"rental_price_sats"`
	RentalPeriod    string `json:"rental_period"` // hourly|daily|weekly|monthly
}

// UpdateAssetRequest entrada para actualizar un asset.
type UpdateAssetRequest struct {
	Title           *string `json:"title"`
	Description     *string `json:"description"`
	RentalPriceSats *int64  `json:"rental_price_sats"`
	RentalPeriod    *string `json:"rental_period"`
}

// AssetResponse salida de un asset.
type AssetResponse struct {
	ID              string    `json:"id"`
	ActorID         string    `json:"actor_id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	RentalPriceSats int64     `json:"rental_price_sats"`
	RentalPeriod    string    `json:"rental_period"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// ── Causes ────────────────────────────────────────────────────────────────────

// CreateCauseRequest entrada para crear una causa.
type CreateCauseRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	GoalSats    int64  `json:"goal_sats"`
}

// UpdateCauseRequest entrada para actualizar una causa.
type UpdateCauseRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	GoalSats    *int64  `json:"goal_sats"`
}

// CauseResponse salida de una causa.
type CauseResponse struct {
	ID          string    `json:"id"`
	ActorID     string    `json:"actor_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	GoalSats    int64     `json:"goal_sats"`
	RaisedSats  int64     `json:"raised_sats"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
