// Package feeds genera el feed RSS 2.0 público del timeline de un actor.
package feeds

import (
	"fmt"
	"strings"
	"time"

	"github.com/beevik/etree"

	"github.com/orangecat-xyz/orangecat-api/internal/application/dto"
)

// RSSBuilder arma el documento XML del feed. baseURL es la URL pública de la
// API, usada para los links de cada ítem.
type RSSBuilder struct {
	baseURL string
}

// NewRSSBuilder crea el builder.
func NewRSSBuilder(baseURL string) *RSSBuilder {
	return &RSSBuilder{baseURL: strings.TrimRight(baseURL, "/")}
}

// BuildActorFeed serializa el timeline de un actor como RSS 2.0.
func (b *RSSBuilder) BuildActorFeed(actorID, actorName string, events []dto.TimelineEventResponse) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	rss := doc.CreateElement("rss")
	rss.CreateAttr("version", "2.0")

	channel := rss.CreateElement("channel")
	channel.CreateElement("title").SetText(fmt.Sprintf("OrangeCat · %s", actorName))
	channel.CreateElement("link").SetText(b.baseURL + "/api/v1/actors/" + actorID + "/timeline")
	channel.CreateElement("description").SetText(fmt.Sprintf("Actividad reciente de %s en OrangeCat", actorName))
	channel.CreateElement("language").SetText("es")
	channel.CreateElement("lastBuildDate").SetText(time.Now().UTC().Format(time.RFC1123Z))

	for _, ev := range events {
		item := channel.CreateElement("item")
		item.CreateElement("title").SetText(itemTitle(ev))
		item.CreateElement("link").SetText(b.itemLink(ev))
		item.CreateElement("guid").SetText(ev.ID)
		item.CreateElement("category").SetText(ev.EventType)
		item.CreateElement("pubDate").SetText(ev.CreatedAt.UTC().Format(time.RFC1123Z))
	}

	doc.Indent(2)
	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("feeds: serializar RSS: %w", err)
	}
	return out, nil
}

// itemTitle usa el título del evento y cae al tipo cuando falta.
func itemTitle(ev dto.TimelineEventResponse) string {
	if ev.Title != "" {
		return ev.Title
	}
	return ev.EventType
}

// itemLink apunta al recurso que originó el evento.
func (b *RSSBuilder) itemLink(ev dto.TimelineEventResponse) string {
	if ev.EntityType == "" || ev.EntityID == "" {
		return b.baseURL
	}
	return fmt.Sprintf("%s/api/v1/%ss/%s", b.baseURL, ev.EntityType, ev.EntityID)
}
