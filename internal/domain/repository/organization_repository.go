package repository

import "github.com/orangecat-xyz/orangecat-api/internal/domain/entity"

// OrganizationRepository puerto de persistencia para Organization.
type OrganizationRepository interface {
	Create(o *entity.Organization) error
	GetByID(id string) (*entity.Organization, error)
	GetBySlug(slug string) (*entity.Organization, error)
	Update(o *entity.Organization) error
	List(limit, offset int) ([]*entity.Organization, int, error)
	Delete(id string) error
}

// GroupRepository puerto de persistencia para Group, membresías y propuestas.
type GroupRepository interface {
	Create(g *entity.Group) error
	GetByID(id string) (*entity.Group, error)
	ListByOrganization(orgID string, limit, offset int) ([]*entity.Group, int, error)
	Delete(id string) error

	AddMember(m *entity.GroupMember) error
	GetMember(groupID, actorID string) (*entity.GroupMember, error)
	ListMembers(groupID string) ([]*entity.GroupMember, error)
	RemoveMember(groupID, actorID string) error

	CreateProposal(p *entity.Proposal) error
	GetProposal(id string) (*entity.Proposal, error)
	ListProposals(groupID string, limit, offset int) ([]*entity.Proposal, int, error)
	UpdateProposalStatus(id, status string) error
	CastVote(v *entity.ProposalVote) error
	TallyVotes(proposalID string) (*entity.VoteTally, error)
}
