package entity

import "time"

// Organization entidad colectiva. Tiene su propio Actor (Kind=organization)
// para poder poseer proyectos, assets, etc. igual que un usuario.
type Organization struct {
	ID             string
	ActorID        string // actor propio de la organización
	FounderActorID string // actor del usuario que la creó
	Slug           string
	Name           string
	Description    string
	Status         Status
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Group grupo de trabajo dentro de una organización.
type Group struct {
	ID             string
	OrganizationID string
	Name           string
	Description    string
	CreatedAt      time.Time
}

// Roles dentro de un grupo.
const (
	GroupRoleMember = "member"
	GroupRoleAdmin  = "admin"
)

// GroupMember membresía (única por grupo+actor).
type GroupMember struct {
	ID       string
	GroupID  string
	ActorID  string
	Role     string
	JoinedAt time.Time
}

// Estados de una propuesta.
const (
	ProposalOpen   = "open"
	ProposalClosed = "closed"
)

// Opciones de voto.
const (
	VoteYes     = "yes"
	VoteNo      = "no"
	VoteAbstain = "abstain"
)

// Proposal propuesta sometida a votación dentro de un grupo.
type Proposal struct {
	ID            string
	GroupID       string
	AuthorActorID string
	Title         string
	Body          string
	Status        string
	CreatedAt     time.Time
	ClosesAt      time.Time
}

// ProposalVote voto de un actor (único por propuesta+actor).
type ProposalVote struct {
	ID         string
	ProposalID string
	ActorID    string
	Choice     string
	CreatedAt  time.Time
}

// VoteTally conteo agregado de votos de una propuesta.
type VoteTally struct {
	Yes     int
	No      int
	Abstain int
}
