package dto

import "time"

// AvailabilityRequest consulta de disponibilidad de un asset o service.
type AvailabilityRequest struct {
	EntityType string    `json:"entity_type"` // asset | service
	EntityID   string    `json:"entity_id"`
	From       time.Time `json:"from"`
	To         time.Time `json:"to"`
	Period     string    `json:"period"` // hourly|daily|weekly|monthly; vacío = período propio de la entidad
}

// Slot franja calculada, libre u ocupada.
type Slot struct {
	StartsAt time.Time `json:"starts_at"`
	EndsAt   time.Time `json:"ends_at"`
	Free     bool      `json:"free"`
}

// AvailabilityResponse franjas del rango solicitado.
type AvailabilityResponse struct {
	EntityType string `json:"entity_type"`
	EntityID   string `json:"entity_id"`
	Period     string `json:"period"`
	Slots      []Slot `json:"slots"`
	FreeCount  int    `json:"free_count"`
}

// CreateBookingRequest entrada para reservar.
type CreateBookingRequest struct {
	EntityType string    `json:"entity_type"`
	EntityID   string    `json:"entity_id"`
	StartsAt   time.Time `json:"starts_at"`
	EndsAt     time.Time `json:"ends_at"`
}

// BookingResponse salida de una reserva.
type BookingResponse struct {
	ID            string    `json:"id"`
	EntityType    string    `json:"entity_type"`
	EntityID      string    `json:"entity_id"`
	BookerActorID string    `json:"booker_actor_id"`
	StartsAt      time.Time `json:"starts_at"`
	EndsAt        time.Time `json:"ends_at"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}
