package dto

import "time"

// FollowRequest entrada para seguir a un actor.
type FollowRequest struct {
	ActorID string `json:"actor_id"`
}

// FollowResponse salida de una relación de seguimiento.
type FollowResponse struct {
	ID              string    `json:"id"`
	FollowerActorID string    `json:"follower_actor_id"`
	FollowedActorID string    `json:"followed_actor_id"`
	CreatedAt       time.Time `json:"created_at"`
}

// TimelineEventResponse salida de un evento de timeline.
type TimelineEventResponse struct {
	ID         string    `json:"id"`
	ActorID    string    `json:"actor_id"`
	EventType  string    `json:"event_type"`
	EntityType string    `json:"entity_type"`
	EntityID   string    `json:"entity_id"`
	Title      string    `json:"title"`
	CreatedAt  time.Time `json:"created_at"`
}
