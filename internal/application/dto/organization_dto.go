package dto

import "time"

// CreateOrganizationRequest entrada para crear una organización.
type CreateOrganizationRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// UpdateOrganizationRequest entrada para actualizar una organización.
type UpdateOrganizationRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// OrganizationResponse salida de una organización.
type OrganizationResponse struct {
	ID             string    `json:"id"`
	ActorID        string    `json:"actor_id"`
	FounderActorID string    `json:"founder_actor_id"`
	Slug           string    `json:"slug"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// CreateGroupRequest entrada para crear un grupo.
type CreateGroupRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// GroupResponse salida de un grupo.
type GroupResponse struct {
	ID             string    `json:"id"`
	OrganizationID string    `json:"organization_id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	CreatedAt      time.Time `json:"created_at"`
}

// AddMemberRequest entrada para añadir un miembro a un grupo.
type AddMemberRequest struct {
	ActorID string `json:"actor_id"`
	Role    string `json:"role"`
}

// MemberResponse salida de una membresía.
type MemberResponse struct {
	ID       string    `json:"id"`
	GroupID  string    `json:"group_id"`
	ActorID  string    `json:"actor_id"`
	Role     string    `json:"role"`
	JoinedAt time.Time `json:"joined_at"`
}

// CreateProposalRequest entrada para crear una propuesta.
type CreateProposalRequest struct {
	Title    string     `json:"title"`
	Body     string     `json:"body"`
	ClosesAt *time.Time `json:"closes_at"`
}

// VoteRequest entrada para votar una propuesta.
type VoteRequest struct {
	Choice string `json:"choice"` // yes | no | abstain
}

// ProposalResponse salida de una propuesta con su conteo.
type ProposalResponse struct {
	ID            string    `json:"id"`
	GroupID       string    `json:"group_id"`
	AuthorActorID string    `json:"author_actor_id"`
	Title         string    `json:"title"`
	Body          string    `json:"body"`
	Status        string    `json:"status"`
	Votes         VoteTally `json:"votes"`
	CreatedAt     time.Time `json:"created_at"`
	ClosesAt      time.Time `json:"closes_at"`
}

// VoteTally conteo de votos.
type VoteTally struct {
	Yes     int `json:"yes"`
	No      int `json:"no"`
	Abstain int `json:"abstain"`
}
