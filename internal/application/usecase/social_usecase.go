package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/orangecat-xyz/orangecat-api/internal/application/dto"
	"github.com/orangecat-xyz/orangecat-api/internal/domain"
	"github.com/orangecat-xyz/orangecat-api/internal/domain/entity"
	"github.com/orangecat-xyz/orangecat-api/internal/domain/repository"
)

// SocialUseCase seguimiento entre actores y lectura del timeline/feed.
type SocialUseCase struct {
	followRepo repository.FollowRepository
	timeline   repository.TimelineRepository
	actorRepo  repository.ActorRepository
}

// NewSocialUseCase construye el caso de uso.
func NewSocialUseCase(
	followRepo repository.FollowRepository,
	timeline repository.TimelineRepository,
	actorRepo repository.ActorRepository,
) *SocialUseCase {
	return &SocialUseCase{followRepo: followRepo, timeline: timeline, actorRepo: actorRepo}
}

// Follow crea la relación seguidor → seguido. Seguirse a sí mismo es inválido
// y el par duplicado viene como ErrDuplicate desde la constraint única.
func (uc *SocialUseCase) Follow(followerActorID string, in dto.FollowRequest) (*dto.FollowResponse, error) {
	if in.ActorID == "" || in.ActorID == followerActorID {
		return nil, domain.ErrInvalidInput
	}
	target, err := uc.actorRepo.GetByID(in.ActorID)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, domain.ErrNotFound
	}
	f := &entity.Follow{
		ID:              uuid.New().String(),
		FollowerActorID: followerActorID,
		FollowedActorID: in.ActorID,
		CreatedAt:       time.Now(),
	}
	if err := uc.followRepo.Create(f); err != nil {
		return nil, err
	}
	return toFollowResponse(f), nil
}

// Unfollow elimina la relación si existe; si no existe es idempotente.
func (uc *SocialUseCase) Unfollow(followerActorID, followedActorID string) error {
	if followedActorID == "" {
		return domain.ErrInvalidInput
	}
	return uc.followRepo.Delete(followerActorID, followedActorID)
}

// ListFollowers lista quiénes siguen a un actor.
func (uc *SocialUseCase) ListFollowers(actorID string, page dto.PageRequest) ([]dto.FollowResponse, int, error) {
	list, total, err := uc.followRepo.ListFollowers(actorID, page.Limit, page.Offset)
	if err != nil {
		return nil, 0, err
	}
	return toFollowList(list), total, nil
}

// ListFollowing lista a quiénes sigue un actor.
func (uc *SocialUseCase) ListFollowing(actorID string, page dto.PageRequest) ([]dto.FollowResponse, int, error) {
	list, total, err := uc.followRepo.ListFollowing(actorID, page.Limit, page.Offset)
	if err != nil {
		return nil, 0, err
	}
	return toFollowList(list), total, nil
}

// Feed devuelve los eventos de los actores seguidos, más recientes primero.
func (uc *SocialUseCase) Feed(followerActorID string, page dto.PageRequest) ([]dto.TimelineEventResponse, int, error) {
	list, total, err := uc.timeline.ListFeed(followerActorID, page.Limit, page.Offset)
	if err != nil {
		return nil, 0, err
	}
	return toTimelineList(list), total, nil
}

// ActorTimeline devuelve la actividad pública de un actor.
func (uc *SocialUseCase) ActorTimeline(actorID string, page dto.PageRequest) ([]dto.TimelineEventResponse, int, error) {
	list, total, err := uc.timeline.ListByActor(actorID, page.Limit, page.Offset)
	if err != nil {
		return nil, 0, err
	}
	return toTimelineList(list), total, nil
}

// ActorName devuelve el nombre visible de un actor (título del feed RSS).
func (uc *SocialUseCase) ActorName(actorID string) (string, error) {
	actor, err := uc.actorRepo.GetByID(actorID)
	if err != nil {
		return "", err
	}
	if actor == nil {
		return "", domain.ErrNotFound
	}
	return actor.Name, nil
}

func toFollowResponse(f *entity.Follow) *dto.FollowResponse {
	return &dto.FollowResponse{
		ID:              f.ID,
		FollowerActorID: f.FollowerActorID,
		FollowedActorID: f.FollowedActorID,
		CreatedAt:       f.CreatedAt,
	}
}

func toFollowList(list []*entity.Follow) []dto.FollowResponse {
	items := make([]dto.FollowResponse, 0, len(list))
	for _, f := range list {
		items = append(items, *toFollowResponse(f))
	}
	return items
}

func toTimelineList(list []*entity.TimelineEvent) []dto.TimelineEventResponse {
	items := make([]dto.TimelineEventResponse, 0, len(list))
	for _, e := range list {
		items = append(items, dto.TimelineEventResponse{
			ID:         e.ID,
			ActorID:    e.ActorID,
			EventType:  e.EventType,
			EntityType: e.EntityType,
			EntityID:   e.EntityID,
			Title:      e.Title,
			CreatedAt:  e.CreatedAt,
		})
	}
	return items
}
