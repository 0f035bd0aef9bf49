package dto

import "time"

// CreateProjectRequest entrada para crear un proyecto (nace en draft).
type CreateProjectRequest struct {
	Title          string `json:"title"`
	Description    string `json:"description"`
	GoalSats       int64  `json:"goal_sats"`
	BitcoinAddress string `json:"bitcoin_address"`
}

// UpdateProjectRequest entrada para actualizar un proyecto.
type UpdateProjectRequest struct {
	Title          *string `json:"title"`
	Description    *string `json:"description"`
	GoalSats       *int64  `json:"goal_sats"`
	BitcoinAddress *string `json:"bitcoin_address"`
}

// ProjectResponse salida de un proyecto.
type ProjectResponse struct {
	ID             string    `json:"id"`
	ActorID        string    `json:"actor_id"`
	Slug           string    `json:"slug"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	GoalSats       int64     `json:"goal_sats"`
	RaisedSats     int64     `json:"raised_sats"`
	BitcoinAddress string    `json:"bitcoin_address"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// StatusRequest cambio de estado del ciclo de vida.
type StatusRequest struct {
	Status string `json:"status"`
}
