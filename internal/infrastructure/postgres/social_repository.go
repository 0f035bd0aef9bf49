package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/orangecat-xyz/orangecat-api/internal/domain"
	"github.com/orangecat-xyz/orangecat-api/internal/domain/entity"
	"github.com/orangecat-xyz/orangecat-api/internal/domain/repository"
)

var _ repository.FollowRepository = (*FollowRepo)(nil)

// FollowRepo implementación de FollowRepository sobre PostgreSQL.
type FollowRepo struct {
	q Querier
}

// NewFollowRepository construye el adaptador. Pasar pool o tx (Querier).
func NewFollowRepository(q Querier) *FollowRepo {
	return &FollowRepo{q: q}
}

// Create persiste la relación seguidor → seguido (única por par).
func (r *FollowRepo) Create(f *entity.Follow) error {
	query := `
		INSERT INTO follows (id, follower_actor_id, followed_actor_id, created_at)
		VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(context.Background(), query,
		f.ID, f.FollowerActorID, f.FollowedActorID, f.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert follow: %w", err)
	}
	return nil
}

// Delete elimina la relación; sin filas afectadas no es error.
func (r *FollowRepo) Delete(followerActorID, followedActorID string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM follows WHERE follower_actor_id = $1 AND followed_actor_id = $2`,
		followerActorID, followedActorID)
	if err != nil {
		return fmt.Errorf("delete follow: %w", err)
	}
	return nil
}

// Exists verifica si existe la relación.
func (r *FollowRepo) Exists(followerActorID, followedActorID string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS (SELECT 1 FROM follows WHERE follower_actor_id = $1 AND followed_actor_id = $2)`,
		followerActorID, followedActorID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check follow: %w", err)
	}
	return exists, nil
}

// ListFollowers lista quiénes siguen a un actor.
func (r *FollowRepo) ListFollowers(actorID string, limit, offset int) ([]*entity.Follow, int, error) {
	return r.list("followed_actor_id = $1", actorID, limit, offset)
}

// ListFollowing lista a quiénes sigue un actor.
func (r *FollowRepo) ListFollowing(actorID string, limit, offset int) ([]*entity.Follow, int, error) {
	return r.list("follower_actor_id = $1", actorID, limit, offset)
}

func (r *FollowRepo) list(where, actorID string, limit, offset int) ([]*entity.Follow, int, error) {
	var total int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM follows WHERE `+where, actorID).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count follows: %w", err)
	}

	query := `
		SELECT id, follower_actor_id, followed_actor_id, created_at
		FROM follows WHERE ` + where + ` ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, actorID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list follows: %w", err)
	}
	defer rows.Close()

	var list []*entity.Follow
	for rows.Next() {
		var f entity.Follow
		if err := rows.Scan(&f.ID, &f.FollowerActorID, &f.FollowedActorID, &f.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan follow: %w", err)
		}
		list = append(list, &f)
	}
	return list, total, rows.Err()
}

var _ repository.TimelineRepository = (*TimelineRepo)(nil)

// TimelineRepo implementación de TimelineRepository sobre PostgreSQL.
type TimelineRepo struct {
	q Querier
}

// NewTimelineRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTimelineRepository(q Querier) *TimelineRepo {
	return &TimelineRepo{q: q}
}

// Create persiste un evento de timeline.
func (r *TimelineRepo) Create(e *entity.TimelineEvent) error {
	query := `
		INSERT INTO timeline_events (id, actor_id, event_type, entity_type, entity_id, title, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		e.ID, e.ActorID, e.EventType, e.EntityType, e.EntityID, e.Title, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert timeline event: %w", err)
	}
	return nil
}

// ListByActor lista los eventos de un actor, más recientes primero.
func (r *TimelineRepo) ListByActor(actorID string, limit, offset int) ([]*entity.TimelineEvent, int, error) {
	var total int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM timeline_events WHERE actor_id = $1`, actorID).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count timeline events: %w", err)
	}

	query := `
		SELECT id, actor_id, event_type, entity_type, entity_id, title, created_at
		FROM timeline_events WHERE actor_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, actorID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list timeline events: %w", err)
	}
	defer rows.Close()
	return scanTimeline(rows, total)
}

// ListFeed lista los eventos de los actores seguidos por followerActorID.
func (r *TimelineRepo) ListFeed(followerActorID string, limit, offset int) ([]*entity.TimelineEvent, int, error) {
	var total int
	err := r.q.QueryRow(context.Background(), `
		SELECT COUNT(*) FROM timeline_events e
		JOIN follows f ON f.followed_actor_id = e.actor_id
		WHERE f.follower_actor_id = $1`, followerActorID).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count feed: %w", err)
	}

	query := `
		SELECT e.id, e.actor_id, e.event_type, e.entity_type, e.entity_id, e.title, e.created_at
		FROM timeline_events e
		JOIN follows f ON f.followed_actor_id = e.actor_id
		WHERE f.follower_actor_id = $1
		ORDER BY e.created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, followerActorID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list feed: %w", err)
	}
	defer rows.Close()
	return scanTimeline(rows, total)
}

func scanTimeline(rows pgx.Rows, total int) ([]*entity.TimelineEvent, int, error) {
	var list []*entity.TimelineEvent
	for rows.Next() {
		var e entity.TimelineEvent
		if err := rows.Scan(&e.ID, &e.ActorID, &e.EventType, &e.EntityType, &e.EntityID, &e.Title, &e.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan timeline event: %w", err)
		}
		list = append(list, &e)
	}
	return list, total, rows.Err()
}
