package repository

import "github.com/orangecat-xyz/orangecat-api/internal/domain/entity"

// FollowRepository puerto de persistencia para Follow.
type FollowRepository interface {
	Create(f *entity.Follow) error
	Delete(followerActorID, followedActorID string) error
	Exists(followerActorID, followedActorID string) (bool, error)
	ListFollowers(actorID string, limit, offset int) ([]*entity.Follow, int, error)
	ListFollowing(actorID string, limit, offset int) ([]*entity.Follow, int, error)
}

// TimelineRepository puerto de persistencia para TimelineEvent.
type TimelineRepository interface {
	Create(e *entity.TimelineEvent) error
	ListByActor(actorID string, limit, offset int) ([]*entity.TimelineEvent, int, error)
	// ListFeed devuelve los eventos de los actores seguidos por followerActorID,
	// más recientes primero.
	ListFeed(followerActorID string, limit, offset int) ([]*entity.TimelineEvent, int, error)
}
