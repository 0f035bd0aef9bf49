package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orangecat-xyz/orangecat-api/internal/application/dto"
	"github.com/orangecat-xyz/orangecat-api/internal/domain"
	"github.com/orangecat-xyz/orangecat-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeOrgRepo struct {
	orgs map[string]*entity.Organization
}

func newFakeOrgRepo() *fakeOrgRepo {
	return &fakeOrgRepo{orgs: make(map[string]*entity.Organization)}
}

func (r *fakeOrgRepo) Create(o *entity.Organization) error { r.orgs[o.ID] = o; return nil }
func (r *fakeOrgRepo) GetByID(id string) (*entity.Organization, error) {
	return r.orgs[id], nil
}
func (r *fakeOrgRepo) GetBySlug(slug string) (*entity.Organization, error) {
	for _, o := range r.orgs {
		if o.Slug == slug {
			return o, nil
		}
	}
	return nil, nil
}
func (r *fakeOrgRepo) Update(o *entity.Organization) error { r.orgs[o.ID] = o; return nil }
func (r *fakeOrgRepo) List(int, int) ([]*entity.Organization, int, error) {
	var out []*entity.Organization
	for _, o := range r.orgs {
		out = append(out, o)
	}
	return out, len(out), nil
}
func (r *fakeOrgRepo) Delete(id string) error { delete(r.orgs, id); return nil }

type memberKey struct{ groupID, actorID string }

type fakeGroupRepo struct {
	groups    map[string]*entity.Group
	members   map[memberKey]*entity.GroupMember
	proposals map[string]*entity.Proposal
	votes     map[string][]*entity.ProposalVote // proposalID → votos
}

func newFakeGroupRepo() *fakeGroupRepo {
	return &fakeGroupRepo{
		groups:    make(map[string]*entity.Group),
		members:   make(map[memberKey]*entity.GroupMember),
		proposals: make(map[string]*entity.Proposal),
		votes:     make(map[string][]*entity.ProposalVote),
	}
}

func (r *fakeGroupRepo) Create(g *entity.Group) error             { r.groups[g.ID] = g; return nil }
func (r *fakeGroupRepo) GetByID(id string) (*entity.Group, error) { return r.groups[id], nil }
func (r *fakeGroupRepo) ListByOrganization(string, int, int) ([]*entity.Group, int, error) {
	return nil, 0, nil
}
func (r *fakeGroupRepo) Delete(id string) error { delete(r.groups, id); return nil }

func (r *fakeGroupRepo) AddMember(m *entity.GroupMember) error {
	k := memberKey{m.GroupID, m.ActorID}
	if _, ok := r.members[k]; ok {
		return domain.ErrDuplicate
	}
	r.members[k] = m
	return nil
}
func (r *fakeGroupRepo) GetMember(groupID, actorID string) (*entity.GroupMember, error) {
	return r.members[memberKey{groupID, actorID}], nil
}
func (r *fakeGroupRepo) ListMembers(groupID string) ([]*entity.GroupMember, error) {
	var out []*entity.GroupMember
	for k, m := range r.members {
		if k.groupID == groupID {
			out = append(out, m)
		}
	}
	return out, nil
}
func (r *fakeGroupRepo) RemoveMember(groupID, actorID string) error {
	delete(r.members, memberKey{groupID, actorID})
	return nil
}

func (r *fakeGroupRepo) CreateProposal(p *entity.Proposal) error { r.proposals[p.ID] = p; return nil }
func (r *fakeGroupRepo) GetProposal(id string) (*entity.Proposal, error) {
	return r.proposals[id], nil
}
func (r *fakeGroupRepo) ListProposals(string, int, int) ([]*entity.Proposal, int, error) {
	return nil, 0, nil
}
func (r *fakeGroupRepo) UpdateProposalStatus(id, status string) error {
	if p, ok := r.proposals[id]; ok {
		p.Status = status
	}
	return nil
}
func (r *fakeGroupRepo) CastVote(v *entity.ProposalVote) error {
	for _, existing := range r.votes[v.ProposalID] {
		if existing.ActorID == v.ActorID {
			return domain.ErrDuplicate
		}
	}
	r.votes[v.ProposalID] = append(r.votes[v.ProposalID], v)
	return nil
}
func (r *fakeGroupRepo) TallyVotes(proposalID string) (*entity.VoteTally, error) {
	tally := &entity.VoteTally{}
	for _, v := range r.votes[proposalID] {
		switch v.Choice {
		case entity.VoteYes:
			tally.Yes++
		case entity.VoteNo:
			tally.No++
		case entity.VoteAbstain:
			tally.Abstain++
		}
	}
	return tally, nil
}

type fakeActorRepo struct {
	actors map[string]*entity.Actor
}

func newFakeActorRepo() *fakeActorRepo {
	return &fakeActorRepo{actors: make(map[string]*entity.Actor)}
}

func (r *fakeActorRepo) Create(a *entity.Actor) error             { r.actors[a.ID] = a; return nil }
func (r *fakeActorRepo) GetByID(id string) (*entity.Actor, error) { return r.actors[id], nil }
func (r *fakeActorRepo) GetByProfile(profileID string) (*entity.Actor, error) {
	for _, a := range r.actors {
		if a.ProfileID != nil && *a.ProfileID == profileID {
			return a, nil
		}
	}
	return nil, nil
}

type fakeTimeline struct {
	events []*entity.TimelineEvent
}

func (r *fakeTimeline) Create(e *entity.TimelineEvent) error {
	r.events = append(r.events, e)
	return nil
}
func (r *fakeTimeline) ListByActor(actorID string, limit, offset int) ([]*entity.TimelineEvent, int, error) {
	var out []*entity.TimelineEvent
	for _, e := range r.events {
		if e.ActorID == actorID {
			out = append(out, e)
		}
	}
	return out, len(out), nil
}
func (r *fakeTimeline) ListFeed(string, int, int) ([]*entity.TimelineEvent, int, error) {
	return nil, 0, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

const (
	founderActor = "actor-founder"
	memberActor  = "actor-member"
	strangeActor = "actor-stranger"
)

type orgFixture struct {
	uc        *OrganizationUseCase
	groupRepo *fakeGroupRepo
	actorRepo *fakeActorRepo
}

func newOrgFixture(t *testing.T) *orgFixture {
	t.Helper()
	groupRepo := newFakeGroupRepo()
	actorRepo := newFakeActorRepo()
	for _, id := range []string{founderActor, memberActor, strangeActor} {
		require.NoError(t, actorRepo.Create(&entity.Actor{ID: id, Kind: entity.ActorKindUser, Name: id}))
	}
	uc := NewOrganizationUseCase(newFakeOrgRepo(), groupRepo, actorRepo, &fakeTimeline{})
	return &orgFixture{uc: uc, groupRepo: groupRepo, actorRepo: actorRepo}
}

// createOrgWithGroup crea organización + grupo y agrega memberActor al grupo.
func (f *orgFixture) createOrgWithGroup(t *testing.T) *dto.GroupResponse {
	t.Helper()
	org, err := f.uc.Create(founderActor, dto.CreateOrganizationRequest{Name: "Hackerspace Medellín"})
	require.NoError(t, err)

	g, err := f.uc.CreateGroup(founderActor, org.ID, dto.CreateGroupRequest{Name: "Núcleo"})
	require.NoError(t, err)

	_, err = f.uc.AddMember(founderActor, g.ID, dto.AddMemberRequest{ActorID: memberActor})
	require.NoError(t, err)
	return g
}

// ──────────────────────────────────────────────────────────────────────────────
// Organizaciones y grupos
// ──────────────────────────────────────────────────────────────────────────────

// Crear una organización crea también su actor propio.
func TestOrganizationCreate_CreaActorPropio(t *testing.T) {
	f := newOrgFixture(t)

	out, err := f.uc.Create(founderActor, dto.CreateOrganizationRequest{Name: "Hackerspace Medellín"})
	require.NoError(t, err)

	assert.Equal(t, "hackerspace-medellin", out.Slug)
	assert.Equal(t, founderActor, out.FounderActorID)

	actor, err := f.actorRepo.GetByID(out.ActorID)
	require.NoError(t, err)
	require.NotNil(t, actor)
	assert.Equal(t, entity.ActorKindOrganization, actor.Kind)
}

// Slug repetido recibe sufijo en vez de fallar.
func TestOrganizationCreate_SlugDuplicado_RecibeSufijo(t *testing.T) {
	f := newOrgFixture(t)

	a, err := f.uc.Create(founderActor, dto.CreateOrganizationRequest{Name: "Mismo Nombre"})
	require.NoError(t, err)
	b, err := f.uc.Create(founderActor, dto.CreateOrganizationRequest{Name: "Mismo Nombre"})
	require.NoError(t, err)

	assert.NotEqual(t, a.Slug, b.Slug)
	assert.Contains(t, b.Slug, "mismo-nombre")
}

// El creador del grupo queda como admin.
func TestCreateGroup_CreadorQuedaComoAdmin(t *testing.T) {
	f := newOrgFixture(t)
	g := f.createOrgWithGroup(t)

	m, err := f.groupRepo.GetMember(g.ID, founderActor)
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, entity.GroupRoleAdmin, m.Role)
}

func TestCreateGroup_SoloElFundador(t *testing.T) {
	f := newOrgFixture(t)
	org, err := f.uc.Create(founderActor, dto.CreateOrganizationRequest{Name: "Org"})
	require.NoError(t, err)

	_, err = f.uc.CreateGroup(strangeActor, org.ID, dto.CreateGroupRequest{Name: "Intruso"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestAddMember_RequiereAdminDelGrupo(t *testing.T) {
	f := newOrgFixture(t)
	g := f.createOrgWithGroup(t)

	// memberActor es member, no admin.
	_, err := f.uc.AddMember(memberActor, g.ID, dto.AddMemberRequest{ActorID: strangeActor})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// Un miembro puede salirse por sí mismo; quitar a otro exige admin.
func TestRemoveMember_PropioOAdmin(t *testing.T) {
	f := newOrgFixture(t)
	g := f.createOrgWithGroup(t)

	err := f.uc.RemoveMember(memberActor, g.ID, strangeActor)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	require.NoError(t, f.uc.RemoveMember(memberActor, g.ID, memberActor))
	m, _ := f.groupRepo.GetMember(g.ID, memberActor)
	assert.Nil(t, m)
}

// ──────────────────────────────────────────────────────────────────────────────
// Propuestas y votos
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateProposal_RequiereMembresia(t *testing.T) {
	f := newOrgFixture(t)
	g := f.createOrgWithGroup(t)

	_, err := f.uc.CreateProposal(strangeActor, g.ID, dto.CreateProposalRequest{Title: "Propuesta"})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	p, err := f.uc.CreateProposal(memberActor, g.ID, dto.CreateProposalRequest{Title: "Propuesta"})
	require.NoError(t, err)
	assert.Equal(t, entity.ProposalOpen, p.Status)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), p.ClosesAt, time.Minute,
		"sin fecha de cierre se usa la ventana de 7 días")
}

func TestVote_ConteoYDuplicado(t *testing.T) {
	f := newOrgFixture(t)
	g := f.createOrgWithGroup(t)

	p, err := f.uc.CreateProposal(memberActor, g.ID, dto.CreateProposalRequest{Title: "Comprar nodo"})
	require.NoError(t, err)

	out, err := f.uc.Vote(memberActor, p.ID, dto.VoteRequest{Choice: entity.VoteYes})
	require.NoError(t, err)
	assert.Equal(t, 1, out.Votes.Yes)

	out, err = f.uc.Vote(founderActor, p.ID, dto.VoteRequest{Choice: entity.VoteNo})
	require.NoError(t, err)
	assert.Equal(t, 1, out.Votes.Yes)
	assert.Equal(t, 1, out.Votes.No)

	// Un voto por actor: el segundo del mismo actor es duplicado.
	_, err = f.uc.Vote(memberActor, p.ID, dto.VoteRequest{Choice: entity.VoteNo})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestVote_Validaciones(t *testing.T) {
	f := newOrgFixture(t)
	g := f.createOrgWithGroup(t)

	p, err := f.uc.CreateProposal(memberActor, g.ID, dto.CreateProposalRequest{Title: "Propuesta"})
	require.NoError(t, err)

	_, err = f.uc.Vote(memberActor, p.ID, dto.VoteRequest{Choice: "quizás"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "opción de voto desconocida")

	_, err = f.uc.Vote(strangeActor, p.ID, dto.VoteRequest{Choice: entity.VoteYes})
	assert.ErrorIs(t, err, domain.ErrForbidden, "votar exige membresía")

	_, err = f.uc.Vote(memberActor, "no-existe", dto.VoteRequest{Choice: entity.VoteYes})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Una propuesta vencida no acepta votos aunque siga open.
func TestVote_PropuestaVencida_RetornaConflicto(t *testing.T) {
	f := newOrgFixture(t)
	g := f.createOrgWithGroup(t)

	p, err := f.uc.CreateProposal(memberActor, g.ID, dto.CreateProposalRequest{Title: "Vieja"})
	require.NoError(t, err)
	f.groupRepo.proposals[p.ID].ClosesAt = time.Now().Add(-time.Hour)

	_, err = f.uc.Vote(memberActor, p.ID, dto.VoteRequest{Choice: entity.VoteYes})
	assert.ErrorIs(t, err, domain.ErrConflict)
}
