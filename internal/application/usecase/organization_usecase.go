package usecase

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/orangecat-xyz/orangecat-api/internal/application/dto"
	"github.com/orangecat-xyz/orangecat-api/internal/domain"
	"github.com/orangecat-xyz/orangecat-api/internal/domain/entity"
	"github.com/orangecat-xyz/orangecat-api/internal/domain/repository"
	"github.com/orangecat-xyz/orangecat-api/pkg/slug"
)

// OrganizationUseCase casos de uso de organizaciones, grupos, membresías y
// propuestas. Crear una organización crea también su Actor (Kind=organization)
// para que pueda poseer entidades igual que un usuario.
type OrganizationUseCase struct {
	repo      repository.OrganizationRepository
	groupRepo repository.GroupRepository
	actorRepo repository.ActorRepository
	timeline  repository.TimelineRepository
}

// NewOrganizationUseCase construye el caso de uso.
func NewOrganizationUseCase(
	repo repository.OrganizationRepository,
	groupRepo repository.GroupRepository,
	actorRepo repository.ActorRepository,
	timeline repository.TimelineRepository,
) *OrganizationUseCase {
	return &OrganizationUseCase{repo: repo, groupRepo: groupRepo, actorRepo: actorRepo, timeline: timeline}
}

// Create crea la organización y su actor propio.
func (uc *OrganizationUseCase) Create(founderActorID string, in dto.CreateOrganizationRequest) (*dto.OrganizationResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	id := uuid.New().String()
	s := slug.Make(in.Name)
	if s == "" {
		s = id[:8]
	}
	if existing, _ := uc.repo.GetBySlug(s); existing != nil {
		s = fmt.Sprintf("%s-%s", s, id[:8])
	}
	now := time.Now()

	actor := &entity.Actor{
		ID:             uuid.New().String(),
		Kind:           entity.ActorKindOrganization,
		OrganizationID: &id,
		Name:           in.Name,
		CreatedAt:      now,
	}
	if err := uc.actorRepo.Create(actor); err != nil {
		return nil, err
	}

	org := &entity.Organization{
		ID:             id,
		ActorID:        actor.ID,
		FounderActorID: founderActorID,
		Slug:           s,
		Name:           in.Name,
		Description:    in.Description,
		Status:         entity.StatusActive,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.repo.Create(org); err != nil {
		return nil, err
	}
	recordEvent(uc.timeline, founderActorID, entity.EventEntityCreated, "organization", org.ID, org.Name)
	return toOrganizationResponse(org), nil
}

// GetByID obtiene una organización por ID.
func (uc *OrganizationUseCase) GetByID(id string) (*dto.OrganizationResponse, error) {
	org, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	return toOrganizationResponse(org), nil
}

// Update actualiza una organización; solo el fundador puede hacerlo.
func (uc *OrganizationUseCase) Update(callerActorID, id string, in dto.UpdateOrganizationRequest) (*dto.OrganizationResponse, error) {
	org, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if org == nil {
		return nil, nil
	}
	if org.FounderActorID != callerActorID {
		return nil, domain.ErrForbidden
	}
	if in.Name != nil {
		org.Name = *in.Name
	}
	if in.Description != nil {
		org.Description = *in.Description
	}
	org.UpdatedAt = time.Now()
	if err := uc.repo.Update(org); err != nil {
		return nil, err
	}
	return toOrganizationResponse(org), nil
}

// List lista organizaciones.
func (uc *OrganizationUseCase) List(page dto.PageRequest) ([]dto.OrganizationResponse, int, error) {
	list, total, err := uc.repo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, 0, err
	}
	items := make([]dto.OrganizationResponse, 0, len(list))
	for _, o := range list {
		items = append(items, *toOrganizationResponse(o))
	}
	return items, total, nil
}

// CreateGroup crea un grupo; solo el fundador de la organización.
// El creador queda como admin del grupo.
func (uc *OrganizationUseCase) CreateGroup(callerActorID, orgID string, in dto.CreateGroupRequest) (*dto.GroupResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	org, err := uc.repo.GetByID(orgID)
	if err != nil {
		return nil, err
	}
	if org == nil {
		return nil, domain.ErrNotFound
	}
	if org.FounderActorID != callerActorID {
		return nil, domain.ErrForbidden
	}
	g := &entity.Group{
		ID:             uuid.New().String(),
		OrganizationID: orgID,
		Name:           in.Name,
		Description:    in.Description,
		CreatedAt:      time.Now(),
	}
	if err := uc.groupRepo.Create(g); err != nil {
		return nil, err
	}
	_ = uc.groupRepo.AddMember(&entity.GroupMember{
		ID:       uuid.New().String(),
		GroupID:  g.ID,
		ActorID:  callerActorID,
		Role:     entity.GroupRoleAdmin,
		JoinedAt: time.Now(),
	})
	return toGroupResponse(g), nil
}

// ListGroups lista los grupos de una organización.
func (uc *OrganizationUseCase) ListGroups(orgID string, page dto.PageRequest) ([]dto.GroupResponse, int, error) {
	list, total, err := uc.groupRepo.ListByOrganization(orgID, page.Limit, page.Offset)
	if err != nil {
		return nil, 0, err
	}
	items := make([]dto.GroupResponse, 0, len(list))
	for _, g := range list {
		items = append(items, *toGroupResponse(g))
	}
	return items, total, nil
}

// AddMember añade un miembro; requiere que el caller sea admin del grupo.
func (uc *OrganizationUseCase) AddMember(callerActorID, groupID string, in dto.AddMemberRequest) (*dto.MemberResponse, error) {
	if in.ActorID == "" {
		return nil, domain.ErrInvalidInput
	}
	role := in.Role
	if role == "" {
		role = entity.GroupRoleMember
	}
	if role != entity.GroupRoleMember && role != entity.GroupRoleAdmin {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.requireGroupAdmin(callerActorID, groupID); err != nil {
		return nil, err
	}
	if target, _ := uc.actorRepo.GetByID(in.ActorID); target == nil {
		return nil, domain.ErrNotFound
	}
	m := &entity.GroupMember{
		ID:       uuid.New().String(),
		GroupID:  groupID,
		ActorID:  in.ActorID,
		Role:     role,
		JoinedAt: time.Now(),
	}
	if err := uc.groupRepo.AddMember(m); err != nil {
		return nil, err
	}
	return toMemberResponse(m), nil
}

// ListMembers lista los miembros de un grupo.
func (uc *OrganizationUseCase) ListMembers(groupID string) ([]dto.MemberResponse, error) {
	list, err := uc.groupRepo.ListMembers(groupID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MemberResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *toMemberResponse(m))
	}
	return items, nil
}

// RemoveMember quita un miembro; admin del grupo o el propio miembro.
func (uc *OrganizationUseCase) RemoveMember(callerActorID, groupID, actorID string) error {
	if callerActorID != actorID {
		if err := uc.requireGroupAdmin(callerActorID, groupID); err != nil {
			return err
		}
	}
	return uc.groupRepo.RemoveMember(groupID, actorID)
}

// CreateProposal crea una propuesta; requiere membresía del grupo.
// Si no viene ClosesAt se cierra en 7 días.
func (uc *OrganizationUseCase) CreateProposal(callerActorID, groupID string, in dto.CreateProposalRequest) (*dto.ProposalResponse, error) {
	if in.Title == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.requireMembership(callerActorID, groupID); err != nil {
		return nil, err
	}
	now := time.Now()
	closes := now.Add(7 * 24 * time.Hour)
	if in.ClosesAt != nil {
		if in.ClosesAt.Before(now) {
			return nil, domain.ErrInvalidInput
		}
		closes = *in.ClosesAt
	}
	p := &entity.Proposal{
		ID:            uuid.New().String(),
		GroupID:       groupID,
		AuthorActorID: callerActorID,
		Title:         in.Title,
		Body:          in.Body,
		Status:        entity.ProposalOpen,
		CreatedAt:     now,
		ClosesAt:      closes,
	}
	if err := uc.groupRepo.CreateProposal(p); err != nil {
		return nil, err
	}
	return toProposalResponse(p, &entity.VoteTally{}), nil
}

// GetProposal devuelve una propuesta con su conteo de votos.
func (uc *OrganizationUseCase) GetProposal(id string) (*dto.ProposalResponse, error) {
	p, err := uc.groupRepo.GetProposal(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, nil
	}
	tally, err := uc.groupRepo.TallyVotes(p.ID)
	if err != nil {
		return nil, err
	}
	return toProposalResponse(p, tally), nil
}

// ListProposals lista propuestas de un grupo con sus conteos.
func (uc *OrganizationUseCase) ListProposals(groupID string, page dto.PageRequest) ([]dto.ProposalResponse, int, error) {
	list, total, err := uc.groupRepo.ListProposals(groupID, page.Limit, page.Offset)
	if err != nil {
		return nil, 0, err
	}
	items := make([]dto.ProposalResponse, 0, len(list))
	for _, p := range list {
		tally, err := uc.groupRepo.TallyVotes(p.ID)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, *toProposalResponse(p, tally))
	}
	return items, total, nil
}

// Vote registra el voto del caller: un voto por actor (el duplicado viene de
// la constraint única y se mapea a ErrDuplicate). Requiere membresía y que la
// propuesta siga abierta.
func (uc *OrganizationUseCase) Vote(callerActorID, proposalID string, in dto.VoteRequest) (*dto.ProposalResponse, error) {
	if in.Choice != entity.VoteYes && in.Choice != entity.VoteNo && in.Choice != entity.VoteAbstain {
		return nil, domain.ErrInvalidInput
	}
	p, err := uc.groupRepo.GetProposal(proposalID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	if p.Status != entity.ProposalOpen || time.Now().After(p.ClosesAt) {
		return nil, domain.ErrConflict
	}
	if err := uc.requireMembership(callerActorID, p.GroupID); err != nil {
		return nil, err
	}
	v := &entity.ProposalVote{
		ID:         uuid.New().String(),
		ProposalID: proposalID,
		ActorID:    callerActorID,
		Choice:     in.Choice,
		CreatedAt:  time.Now(),
	}
	if err := uc.groupRepo.CastVote(v); err != nil {
		return nil, err
	}
	tally, err := uc.groupRepo.TallyVotes(proposalID)
	if err != nil {
		return nil, err
	}
	return toProposalResponse(p, tally), nil
}

func (uc *OrganizationUseCase) requireMembership(actorID, groupID string) error {
	m, err := uc.groupRepo.GetMember(groupID, actorID)
	if err != nil {
		return err
	}
	if m == nil {
		return domain.ErrForbidden
	}
	return nil
}

func (uc *OrganizationUseCase) requireGroupAdmin(actorID, groupID string) error {
	m, err := uc.groupRepo.GetMember(groupID, actorID)
	if err != nil {
		return err
	}
	if m == nil || m.Role != entity.GroupRoleAdmin {
		return domain.ErrForbidden
	}
	return nil
}

func toOrganizationResponse(o *entity.Organization) *dto.OrganizationResponse {
	if o == nil {
		return nil
	}
	return &dto.OrganizationResponse{
		ID:             o.ID,
		ActorID:        o.ActorID,
		FounderActorID: o.FounderActorID,
		Slug:           o.Slug,
		Name:           o.Name,
		Description:    o.Description,
		Status:         string(o.Status),
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.UpdatedAt,
	}
}

func toGroupResponse(g *entity.Group) *dto.GroupResponse {
	return &dto.GroupResponse{
		ID:             g.ID,
		OrganizationID: g.OrganizationID,
		Name:           g.Name,
		Description:    g.Description,
		CreatedAt:      g.CreatedAt,
	}
}

func toMemberResponse(m *entity.GroupMember) *dto.MemberResponse {
	return &dto.MemberResponse{
		ID:       m.ID,
		GroupID:  m.GroupID,
		ActorID:  m.ActorID,
		Role:     m.Role,
		JoinedAt: m.JoinedAt,
	}
}

func toProposalResponse(p *entity.Proposal, tally *entity.VoteTally) *dto.ProposalResponse {
	resp := &dto.ProposalResponse{
		ID:            p.ID,
		GroupID:       p.GroupID,
		AuthorActorID: p.AuthorActorID,
		Title:         p.Title,
		Body:          p.Body,
		Status:        p.Status,
		CreatedAt:     p.CreatedAt,
		ClosesAt:      p.ClosesAt,
	}
	if tally != nil {
		resp.Votes = dto.VoteTally{Yes: tally.Yes, No: tally.No, Abstain: tally.Abstain}
	}
	return resp
}
