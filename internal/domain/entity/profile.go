package entity

import "time"

// Roles de usuario para autorización (viajan en el JWT).
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Tipos de actor: un actor representa a la parte que actúa sobre una entidad
// (indirección de propiedad: usuario u organización).
const (
	ActorKindUser         = "user"
	ActorKindOrganization = "organization"
)

// Profile cuenta de usuario. Username es único global y se normaliza a slug.
type Profile struct {
	ID           string
	Email        string
	PasswordHash string
	Username     string
	DisplayName  string
	Bio          string
	AvatarURL    string
	Role         string // RoleUser | RoleAdmin
	Status       string // active | suspended
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Actor parte actuante sobre las entidades. Exactamente uno de ProfileID u
// OrganizationID está presente según Kind.
type Actor struct {
	ID             string
	Kind           string // ActorKindUser | ActorKindOrganization
	ProfileID      *string
	OrganizationID *string
	Name           string
	CreatedAt      time.Time
}
