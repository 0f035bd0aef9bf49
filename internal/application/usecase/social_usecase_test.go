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

type followKey struct{ follower, followed string }

type fakeFollowRepo struct {
	follows map[followKey]*entity.Follow
}

func newFakeFollowRepo() *fakeFollowRepo {
	return &fakeFollowRepo{follows: make(map[followKey]*entity.Follow)}
}

func (r *fakeFollowRepo) Create(f *entity.Follow) error {
	k := followKey{f.FollowerActorID, f.FollowedActorID}
	if _, ok := r.follows[k]; ok {
		return domain.ErrDuplicate
	}
	r.follows[k] = f
	return nil
}

func (r *fakeFollowRepo) Delete(followerActorID, followedActorID string) error {
	delete(r.follows, followKey{followerActorID, followedActorID})
	return nil
}

func (r *fakeFollowRepo) Exists(followerActorID, followedActorID string) (bool, error) {
	_, ok := r.follows[followKey{followerActorID, followedActorID}]
	return ok, nil
}

func (r *fakeFollowRepo) ListFollowers(actorID string, limit, offset int) ([]*entity.Follow, int, error) {
	var out []*entity.Follow
	for k, f := range r.follows {
		if k.followed == actorID {
			out = append(out, f)
		}
	}
	return out, len(out), nil
}

func (r *fakeFollowRepo) ListFollowing(actorID string, limit, offset int) ([]*entity.Follow, int, error) {
	var out []*entity.Follow
	for k, f := range r.follows {
		if k.follower == actorID {
			out = append(out, f)
		}
	}
	return out, len(out), nil
}

func newSocialFixture(t *testing.T) (*SocialUseCase, *fakeFollowRepo, *fakeTimeline) {
	t.Helper()
	followRepo := newFakeFollowRepo()
	timeline := &fakeTimeline{}
	actorRepo := newFakeActorRepo()
	require.NoError(t, actorRepo.Create(&entity.Actor{ID: "actor-a", Kind: entity.ActorKindUser, Name: "Alicia"}))
	require.NoError(t, actorRepo.Create(&entity.Actor{ID: "actor-b", Kind: entity.ActorKindUser, Name: "Berta"}))
	return NewSocialUseCase(followRepo, timeline, actorRepo), followRepo, timeline
}

func TestFollow(t *testing.T) {
	uc, repo, _ := newSocialFixture(t)

	out, err := uc.Follow("actor-a", dto.FollowRequest{ActorID: "actor-b"})
	require.NoError(t, err)
	assert.Equal(t, "actor-a", out.FollowerActorID)
	assert.Equal(t, "actor-b", out.FollowedActorID)

	ok, _ := repo.Exists("actor-a", "actor-b")
	assert.True(t, ok)
}

func TestFollow_Errores(t *testing.T) {
	uc, _, _ := newSocialFixture(t)

	_, err := uc.Follow("actor-a", dto.FollowRequest{ActorID: "actor-a"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "seguirse a sí mismo")

	_, err = uc.Follow("actor-a", dto.FollowRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "actor vacío")

	_, err = uc.Follow("actor-a", dto.FollowRequest{ActorID: "fantasma"})
	assert.ErrorIs(t, err, domain.ErrNotFound, "el seguido debe existir")

	_, err = uc.Follow("actor-a", dto.FollowRequest{ActorID: "actor-b"})
	require.NoError(t, err)
	_, err = uc.Follow("actor-a", dto.FollowRequest{ActorID: "actor-b"})
	assert.ErrorIs(t, err, domain.ErrDuplicate, "el par es único")
}

// Unfollow es idempotente: quitar algo que no existe no es error.
func TestUnfollow_Idempotente(t *testing.T) {
	uc, repo, _ := newSocialFixture(t)

	_, err := uc.Follow("actor-a", dto.FollowRequest{ActorID: "actor-b"})
	require.NoError(t, err)

	require.NoError(t, uc.Unfollow("actor-a", "actor-b"))
	ok, _ := repo.Exists("actor-a", "actor-b")
	assert.False(t, ok)

	assert.NoError(t, uc.Unfollow("actor-a", "actor-b"))
}

func TestActorTimeline(t *testing.T) {
	uc, _, timeline := newSocialFixture(t)
	require.NoError(t, timeline.Create(&entity.TimelineEvent{
		ID:        "ev-1",
		ActorID:   "actor-b",
		EventType: entity.EventEntityCreated,
		Title:     "Nodo Lightning comunitario",
		CreatedAt: time.Now(),
	}))

	page := dto.PageRequest{Limit: 20}
	items, total, err := uc.ActorTimeline("actor-b", page)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, items, 1)
	assert.Equal(t, "Nodo Lightning comunitario", items[0].Title)
}

func TestActorName(t *testing.T) {
	uc, _, _ := newSocialFixture(t)

	name, err := uc.ActorName("actor-a")
	require.NoError(t, err)
	assert.Equal(t, "Alicia", name)

	_, err = uc.ActorName("fantasma")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
