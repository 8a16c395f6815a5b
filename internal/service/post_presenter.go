package service

import (
	"context"

	"blog-publishing-be/internal/dto"
	"blog-publishing-be/internal/entity"
	"blog-publishing-be/internal/pkg/logger"
	"blog-publishing-be/pkg/events"
)

const (
	defaultPage  = 1
	defaultLimit = 10

	// previousSlugKey is set on events for a post whose slug changed.
	previousSlugKey = "previous_slug"
)

// EventPublisher is satisfied by the NATS publisher.
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

func toPostSummary(p *entity.Post) *dto.PostSummaryResponse {
	return &dto.PostSummaryResponse{
		Id:            p.Id,
		Title:         p.Title,
		Slug:          p.Slug,
		Summary:       p.Summary,
		CategoryId:    p.CategoryId,
		CoverImageUrl: p.CoverImageUrl,
		IsPublished:   p.IsPublished,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func toPostSummaries(posts []*entity.Post) []*dto.PostSummaryResponse {
	out := make([]*dto.PostSummaryResponse, len(posts))
	for i, p := range posts {
		out[i] = toPostSummary(p)
	}
	return out
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = defaultPage
	}
	if limit < 1 {
		limit = defaultLimit
	}
	return page, limit
}

// publishEvent never fails the request: events are auxiliary.
func publishEvent(ctx context.Context, pub EventPublisher, log logger.ILogger, module string, evt events.Event) {
	if pub == nil {
		return
	}
	if err := pub.Publish(ctx, evt); err != nil {
		log.Warn(module, "Failed to publish event", map[string]interface{}{
			"type":  evt.EventType(),
			"error": err.Error(),
		})
	}
}
