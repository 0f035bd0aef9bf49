package feeds

import (
	"testing"
	"time"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orangecat-xyz/orangecat-api/internal/application/dto"
)

func TestBuildActorFeed(t *testing.T) {
	b := NewRSSBuilder("https://orangecat.xyz/")
	events := []dto.TimelineEventResponse{
		{
			ID:         "ev-1",
			ActorID:    "actor-1",
			EventType:  "entity_created",
			EntityType: "project",
			EntityID:   "proj-1",
			Title:      "Nodo Lightning comunitario",
			CreatedAt:  time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC),
		},
		{
			ID:        "ev-2",
			ActorID:   "actor-1",
			EventType: "payment_initiated",
			CreatedAt: time.Date(2026, 2, 2, 11, 0, 0, 0, time.UTC),
		},
	}

	out, err := b.BuildActorFeed("actor-1", "Alicia", events)
	require.NoError(t, err)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(out), "la salida debe ser XML válido")

	channel := doc.FindElement("/rss/channel")
	require.NotNil(t, channel)
	assert.Equal(t, "OrangeCat · Alicia", channel.SelectElement("title").Text())
	assert.Equal(t, "https://orangecat.xyz/api/v1/actors/actor-1/timeline",
		channel.SelectElement("link").Text(), "el slash final del baseURL se normaliza")

	items := channel.SelectElements("item")
	require.Len(t, items, 2)

	assert.Equal(t, "Nodo Lightning comunitario", items[0].SelectElement("title").Text())
	assert.Equal(t, "https://orangecat.xyz/api/v1/projects/proj-1", items[0].SelectElement("link").Text())
	assert.Equal(t, "ev-1", items[0].SelectElement("guid").Text())
	assert.Equal(t, "entity_created", items[0].SelectElement("category").Text())

	// Sin título se usa el tipo de evento; sin entidad el link cae al base.
	assert.Equal(t, "payment_initiated", items[1].SelectElement("title").Text())
	assert.Equal(t, "https://orangecat.xyz", items[1].SelectElement("link").Text())
}

func TestBuildActorFeed_SinEventos(t *testing.T) {
	b := NewRSSBuilder("https://orangecat.xyz")

	out, err := b.BuildActorFeed("actor-1", "Alicia", nil)
	require.NoError(t, err)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(out))
	assert.Empty(t, doc.FindElements("/rss/channel/item"))
}
