package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/orangecat-xyz/orangecat-api/internal/domain"
	"github.com/orangecat-xyz/orangecat-api/internal/domain/entity"
	"github.com/orangecat-xyz/orangecat-api/internal/domain/repository"
)

var _ repository.OrganizationRepository = (*OrganizationRepo)(nil)

// OrganizationRepo implementación de OrganizationRepository sobre PostgreSQL.
type OrganizationRepo struct {
	q Querier
}

// NewOrganizationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrganizationRepository(q Querier) *OrganizationRepo {
	return &OrganizationRepo{q: q}
}

const orgColumns = `id, actor_id, founder_actor_id, slug, name, description, status, created_at, updated_at`

// Create persiste una nueva organización.
func (r *OrganizationRepo) Create(o *entity.Organization) error {
	query := `
		INSERT INTO organizations (` + orgColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		o.ID, o.ActorID, o.FounderActorID, o.Slug, o.Name, o.Description, o.Status, o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert organization: %w", err)
	}
	return nil
}

// GetByID obtiene una organización por ID.
func (r *OrganizationRepo) GetByID(id string) (*entity.Organization, error) {
	return r.getBy("id = $1", id)
}

// GetBySlug obtiene una organización por slug.
func (r *OrganizationRepo) GetBySlug(slug string) (*entity.Organization, error) {
	return r.getBy("slug = $1", slug)
}

func (r *OrganizationRepo) getBy(where string, arg any) (*entity.Organization, error) {
	query := `SELECT ` + orgColumns + ` FROM organizations WHERE ` + where
	var o entity.Organization
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&o.ID, &o.ActorID, &o.FounderActorID, &o.Slug, &o.Name, &o.Description,
		&o.Status, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get organization: %w", err)
	}
	return &o, nil
}

// Update actualiza una organización existente.
func (r *OrganizationRepo) Update(o *entity.Organization) error {
	query := `
		UPDATE organizations SET name = $2, description = $3, status = $4, updated_at = $5
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		o.ID, o.Name, o.Description, o.Status, o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update organization: %w", err)
	}
	return nil
}

// List lista organizaciones no eliminadas con paginación y total.
func (r *OrganizationRepo) List(limit, offset int) ([]*entity.Organization, int, error) {
	var total int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM organizations WHERE status <> 'deleted'`).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count organizations: %w", err)
	}

	query := `SELECT ` + orgColumns + ` FROM organizations WHERE status <> 'deleted'
		ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list organizations: %w", err)
	}
	defer rows.Close()

	var list []*entity.Organization
	for rows.Next() {
		var o entity.Organization
		if err := rows.Scan(&o.ID, &o.ActorID, &o.FounderActorID, &o.Slug, &o.Name, &o.Description,
			&o.Status, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan organization: %w", err)
		}
		list = append(list, &o)
	}
	return list, total, rows.Err()
}

// Delete marca la organización como eliminada.
func (r *OrganizationRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE organizations SET status = 'deleted', updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete organization: %w", err)
	}
	return nil
}

var _ repository.GroupRepository = (*GroupRepo)(nil)

// GroupRepo implementación de GroupRepository sobre PostgreSQL: grupos,
// membresías, propuestas y votos.
type GroupRepo struct {
	q Querier
}

// NewGroupRepository construye el adaptador. Pasar pool o tx (Querier).
func NewGroupRepository(q Querier) *GroupRepo {
	return &GroupRepo{q: q}
}

// Create persiste un nuevo grupo.
func (r *GroupRepo) Create(g *entity.Group) error {
	query := `
		INSERT INTO org_groups (id, organization_id, name, description, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		g.ID, g.OrganizationID, g.Name, g.Description, g.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert group: %w", err)
	}
	return nil
}

// GetByID obtiene un grupo por ID.
func (r *GroupRepo) GetByID(id string) (*entity.Group, error) {
	query := `
		SELECT id, organization_id, name, description, created_at
		FROM org_groups WHERE id = $1`
	var g entity.Group
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&g.ID, &g.OrganizationID, &g.Name, &g.Description, &g.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get group: %w", err)
	}
	return &g, nil
}

// ListByOrganization lista los grupos de una organización.
func (r *GroupRepo) ListByOrganization(orgID string, limit, offset int) ([]*entity.Group, int, error) {
	var total int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM org_groups WHERE organization_id = $1`, orgID).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count groups: %w", err)
	}

	query := `
		SELECT id, organization_id, name, description, created_at
		FROM org_groups WHERE organization_id = $1 ORDER BY created_at LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, orgID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list groups: %w", err)
	}
	defer rows.Close()

	var list []*entity.Group
	for rows.Next() {
		var g entity.Group
		if err := rows.Scan(&g.ID, &g.OrganizationID, &g.Name, &g.Description, &g.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan group: %w", err)
		}
		list = append(list, &g)
	}
	return list, total, rows.Err()
}

// Delete elimina un grupo.
func (r *GroupRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM org_groups WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete group: %w", err)
	}
	return nil
}

// AddMember agrega una membresía (única por grupo+actor).
func (r *GroupRepo) AddMember(m *entity.GroupMember) error {
	query := `
		INSERT INTO group_members (id, group_id, actor_id, role, joined_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.GroupID, m.ActorID, m.Role, m.JoinedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert group member: %w", err)
	}
	return nil
}

// GetMember obtiene la membresía de un actor en un grupo.
func (r *GroupRepo) GetMember(groupID, actorID string) (*entity.GroupMember, error) {
	query := `
		SELECT id, group_id, actor_id, role, joined_at
		FROM group_members WHERE group_id = $1 AND actor_id = $2`
	var m entity.GroupMember
	err := r.q.QueryRow(context.Background(), query, groupID, actorID).Scan(
		&m.ID, &m.GroupID, &m.ActorID, &m.Role, &m.JoinedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get group member: %w", err)
	}
	return &m, nil
}

// ListMembers lista las membresías de un grupo.
func (r *GroupRepo) ListMembers(groupID string) ([]*entity.GroupMember, error) {
	query := `
		SELECT id, group_id, actor_id, role, joined_at
		FROM group_members WHERE group_id = $1 ORDER BY joined_at`
	rows, err := r.q.Query(context.Background(), query, groupID)
	if err != nil {
		return nil, fmt.Errorf("list group members: %w", err)
	}
	defer rows.Close()

	var list []*entity.GroupMember
	for rows.Next() {
		var m entity.GroupMember
		if err := rows.Scan(&m.ID, &m.GroupID, &m.ActorID, &m.Role, &m.JoinedAt); err != nil {
			return nil, fmt.Errorf("scan group member: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// RemoveMember elimina la membresía de un actor en un grupo.
func (r *GroupRepo) RemoveMember(groupID, actorID string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM group_members WHERE group_id = $1 AND actor_id = $2`, groupID, actorID)
	if err != nil {
		return fmt.Errorf("delete group member: %w", err)
	}
	return nil
}

// CreateProposal persiste una nueva propuesta.
func (r *GroupRepo) CreateProposal(p *entity.Proposal) error {
	query := `
		INSERT INTO proposals (id, group_id, author_actor_id, title, body, status, created_at, closes_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.GroupID, p.AuthorActorID, p.Title, p.Body, p.Status, p.CreatedAt, p.ClosesAt,
	)
	if err != nil {
		return fmt.Errorf("insert proposal: %w", err)
	}
	return nil
}

// GetProposal obtiene una propuesta por ID.
func (r *GroupRepo) GetProposal(id string) (*entity.Proposal, error) {
	query := `
		SELECT id, group_id, author_actor_id, title, body, status, created_at, closes_at
		FROM proposals WHERE id = $1`
	var p entity.Proposal
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.GroupID, &p.AuthorActorID, &p.Title, &p.Body, &p.Status, &p.CreatedAt, &p.ClosesAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get proposal: %w", err)
	}
	return &p, nil
}

// ListProposals lista las propuestas de un grupo.
func (r *GroupRepo) ListProposals(groupID string, limit, offset int) ([]*entity.Proposal, int, error) {
	var total int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM proposals WHERE group_id = $1`, groupID).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count proposals: %w", err)
	}

	query := `
		SELECT id, group_id, author_actor_id, title, body, status, created_at, closes_at
		FROM proposals WHERE group_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, groupID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list proposals: %w", err)
	}
	defer rows.Close()

	var list []*entity.Proposal
	for rows.Next() {
		var p entity.Proposal
		if err := rows.Scan(&p.ID, &p.GroupID, &p.AuthorActorID, &p.Title, &p.Body, &p.Status,
			&p.CreatedAt, &p.ClosesAt); err != nil {
			return nil, 0, fmt.Errorf("scan proposal: %w", err)
		}
		list = append(list, &p)
	}
	return list, total, rows.Err()
}

// UpdateProposalStatus cambia el estado de una propuesta.
func (r *GroupRepo) UpdateProposalStatus(id, status string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE proposals SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update proposal status: %w", err)
	}
	return nil
}

// CastVote registra un voto (único por propuesta+actor).
func (r *GroupRepo) CastVote(v *entity.ProposalVote) error {
	query := `
		INSERT INTO proposal_votes (id, proposal_id, actor_id, choice, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		v.ID, v.ProposalID, v.ActorID, v.Choice, v.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert vote: %w", err)
	}
	return nil
}

// TallyVotes cuenta los votos de una propuesta por opción.
func (r *GroupRepo) TallyVotes(proposalID string) (*entity.VoteTally, error) {
	query := `
		SELECT
			COUNT(*) FILTER (WHERE choice = 'yes'),
			COUNT(*) FILTER (WHERE choice = 'no'),
			COUNT(*) FILTER (WHERE choice = 'abstain')
		FROM proposal_votes WHERE proposal_id = $1`
	var t entity.VoteTally
	err := r.q.QueryRow(context.Background(), query, proposalID).Scan(&t.Yes, &t.No, &t.Abstain)
	if err != nil {
		return nil, fmt.Errorf("tally votes: %w", err)
	}
	return &t, nil
}
