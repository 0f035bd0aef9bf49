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

var _ repository.ProfileRepository = (*ProfileRepo)(nil)

// ProfileRepo implementación de ProfileRepository sobre PostgreSQL (usable con pool o tx).
type ProfileRepo struct {
	q Querier
}

// NewProfileRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProfileRepository(q Querier) *ProfileRepo {
	return &ProfileRepo{q: q}
}

// Create persiste un nuevo perfil.
func (r *ProfileRepo) Create(p *entity.Profile) error {
	query := `
		INSERT INTO profiles (id, email, password_hash, username, display_name, bio, avatar_url, role, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.Email, p.PasswordHash, p.Username, p.DisplayName, p.Bio, p.AvatarURL,
		p.Role, p.Status, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert profile: %w", err)
	}
	return nil
}

// GetByID obtiene un perfil por ID.
func (r *ProfileRepo) GetByID(id string) (*entity.Profile, error) {
	return r.getBy("id = $1", id)
}

// GetByEmail obtiene un perfil por email.
func (r *ProfileRepo) GetByEmail(email string) (*entity.Profile, error) {
	return r.getBy("email = $1", email)
}

// GetByUsername obtiene un perfil por username.
func (r *ProfileRepo) GetByUsername(username string) (*entity.Profile, error) {
	return r.getBy("username = $1", username)
}

func (r *ProfileRepo) getBy(where string, arg any) (*entity.Profile, error) {
	query := `
		SELECT id, email, password_hash, username, display_name, bio, avatar_url, role, status, created_at, updated_at
		FROM profiles WHERE ` + where
	var p entity.Profile
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&p.ID, &p.Email, &p.PasswordHash, &p.Username, &p.DisplayName, &p.Bio, &p.AvatarURL,
		&p.Role, &p.Status, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return &p, nil
}

// Update actualiza un perfil existente.
func (r *ProfileRepo) Update(p *entity.Profile) error {
	query := `
		UPDATE profiles SET display_name = $2, bio = $3, avatar_url = $4, status = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.DisplayName, p.Bio, p.AvatarURL, p.Status, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	return nil
}

var _ repository.ActorRepository = (*ActorRepo)(nil)

// ActorRepo implementación de ActorRepository sobre PostgreSQL.
type ActorRepo struct {
	q Querier
}

// NewActorRepository construye el adaptador. Pasar pool o tx (Querier).
func NewActorRepository(q Querier) *ActorRepo {
	return &ActorRepo{q: q}
}

// Create persiste un nuevo actor.
func (r *ActorRepo) Create(a *entity.Actor) error {
	query := `
		INSERT INTO actors (id, kind, profile_id, organization_id, name, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		a.ID, a.Kind, a.ProfileID, a.OrganizationID, a.Name, a.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert actor: %w", err)
	}
	return nil
}

// GetByID obtiene un actor por ID.
func (r *ActorRepo) GetByID(id string) (*entity.Actor, error) {
	return r.getBy("id = $1", id)
}

// GetByProfile obtiene el actor de un perfil.
func (r *ActorRepo) GetByProfile(profileID string) (*entity.Actor, error) {
	return r.getBy("profile_id = $1", profileID)
}

func (r *ActorRepo) getBy(where string, arg any) (*entity.Actor, error) {
	query := `
		SELECT id, kind, profile_id, organization_id, name, created_at
		FROM actors WHERE ` + where
	var a entity.Actor
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&a.ID, &a.Kind, &a.ProfileID, &a.OrganizationID, &a.Name, &a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get actor: %w", err)
	}
	return &a, nil
}
