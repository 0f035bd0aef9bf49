package entity

import "time"

// Follow relación seguidor → seguido entre actores (única por par).
type Follow struct {
	ID              string
	FollowerActorID string
	FollowedActorID string
	CreatedAt       time.Time
}

// Tipos de evento de timeline.
const (
	EventEntityCreated    = "entity_created"
	EventEntityActivated  = "entity_activated"
	EventPaymentInitiated = "payment_initiated"
)

// TimelineEvent evento público de la actividad de un actor; el feed de un
// usuario se compone de los eventos de los actores que sigue.
type TimelineEvent struct {
	ID         string
	ActorID    string
	EventType  string
	EntityType string
	EntityID   string
	Title      string
	CreatedAt  time.Time
}
