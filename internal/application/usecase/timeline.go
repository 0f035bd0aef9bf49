package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/orangecat-xyz/orangecat-api/internal/domain/entity"
	"github.com/orangecat-xyz/orangecat-api/internal/domain/repository"
)

// recordEvent publica un evento de timeline en modo best-effort: la escritura
// del feed nunca debe tumbar la operación principal.
func recordEvent(repo repository.TimelineRepository, actorID, eventType, entityType, entityID, title string) {
	if repo == nil {
		return
	}
	err := repo.Create(&entity.TimelineEvent{
		ID:         uuid.New().String(),
		ActorID:    actorID,
		EventType:  eventType,
		EntityType: entityType,
		EntityID:   entityID,
		Title:      title,
		CreatedAt:  time.Now(),
	})
	if err != nil {
		log.Warn().Err(err).Str("actor_id", actorID).Str("event_type", eventType).
			Msg("no se pudo registrar el evento de timeline")
	}
}
