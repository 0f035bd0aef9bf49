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

var _ repository.ProjectRepository = (*ProjectRepo)(nil)

// ProjectRepo implementación de ProjectRepository sobre PostgreSQL (usable con pool o tx).
type ProjectRepo struct {
	q Querier
}

// NewProjectRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProjectRepository(q Querier) *ProjectRepo {
	return &ProjectRepo{q: q}
}

const projectColumns = `id, actor_id, slug, title, description, goal_sats, raised_sats, bitcoin_address, status, created_at, updated_at`

// Create persiste un nuevo proyecto.
func (r *ProjectRepo) Create(p *entity.Project) error {
	query := `
		INSERT INTO projects (` + projectColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.ActorID, p.Slug, p.Title, p.Description, p.GoalSats, p.RaisedSats,
		p.BitcoinAddress, p.Status, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert project: %w", err)
	}
	return nil
}

// GetByID obtiene un proyecto por ID.
func (r *ProjectRepo) GetByID(id string) (*entity.Project, error) {
	return r.getBy("id = $1", id)
}

// GetBySlug obtiene un proyecto por slug.
func (r *ProjectRepo) GetBySlug(slug string) (*entity.Project, error) {
	return r.getBy("slug = $1", slug)
}

func (r *ProjectRepo) getBy(where string, arg any) (*entity.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE ` + where
	var p entity.Project
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&p.ID, &p.ActorID, &p.Slug, &p.Title, &p.Description, &p.GoalSats, &p.RaisedSats,
		&p.BitcoinAddress, &p.Status, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get project: %w", err)
	}
	return &p, nil
}

// Update actualiza un proyecto existente.
func (r *ProjectRepo) Update(p *entity.Project) error {
	query := `
		UPDATE projects SET slug = $2, title = $3, description = $4, goal_sats = $5,
			raised_sats = $6, bitcoin_address = $7, status = $8, updated_at = $9
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.Slug, p.Title, p.Description, p.GoalSats, p.RaisedSats,
		p.BitcoinAddress, p.Status, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update project: %w", err)
	}
	return nil
}

// ListByActor lista los proyectos de un actor con paginación y total.
func (r *ProjectRepo) ListByActor(actorID string, limit, offset int) ([]*entity.Project, int, error) {
	return r.list("actor_id = $1 AND status <> 'deleted'", []any{actorID}, limit, offset)
}

// ListPublic lista proyectos activos con paginación y total.
func (r *ProjectRepo) ListPublic(limit, offset int) ([]*entity.Project, int, error) {
	return r.list("status = 'active'", nil, limit, offset)
}

func (r *ProjectRepo) list(where string, args []any, limit, offset int) ([]*entity.Project, int, error) {
	var total int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM projects WHERE `+where, args...).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count projects: %w", err)
	}

	n := len(args)
	query := fmt.Sprintf(`SELECT %s FROM projects WHERE %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		projectColumns, where, n+1, n+2)
	rows, err := r.q.Query(context.Background(), query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	var list []*entity.Project
	for rows.Next() {
		var p entity.Project
		if err := rows.Scan(&p.ID, &p.ActorID, &p.Slug, &p.Title, &p.Description, &p.GoalSats,
			&p.RaisedSats, &p.BitcoinAddress, &p.Status, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan project: %w", err)
		}
		list = append(list, &p)
	}
	return list, total, rows.Err()
}

// Delete marca el proyecto como eliminado (borrado lógico).
func (r *ProjectRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE projects SET status = 'deleted', updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	return nil
}
