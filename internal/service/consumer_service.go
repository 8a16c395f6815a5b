package service

import (
	"context"
	"encoding/json"
	"time"

	"blog-publishing-be/internal/dto"
	"blog-publishing-be/internal/pkg/logger"
	"blog-publishing-be/internal/repository/specification"
	"blog-publishing-be/internal/repository/unitofwork"
	"blog-publishing-be/pkg/render"

	"github.com/ThreeDotsLabs/watermill/message"
)

const consumerModule = "SummaryConsumer"

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService fills in the summary of freshly committed posts that were saved without one.
type consumerService struct {
	subscriber message.Subscriber
	topicName  string
	uowFactory unitofwork.RepositoryFactory
	renderer   *render.Renderer
	excerpter  *render.Excerpter
	logger     logger.ILogger
}

func NewConsumerService(
	subscriber message.Subscriber,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	renderer *render.Renderer,
	excerpter *render.Excerpter,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		subscriber: subscriber,
		topicName:  topicName,
		uowFactory: uowFactory,
		renderer:   renderer,
		excerpter:  excerpter,
		logger:     log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishPostSummaryMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error(consumerModule, "Failed to unmarshal message", map[string]interface{}{"error": err.Error()})
		msg.Ack()
		return
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	post, err := uow.PostRepository().FindOne(ctx, specification.ByID{ID: payload.PostId})
	if err != nil {
		cs.logger.Error(consumerModule, "Failed to load post", map[string]interface{}{"post_id": payload.PostId, "error": err.Error()})
		msg.Nack()
		return
	}
	if post == nil || post.Summary != "" {
		// Deleted since, or an editor wrote a summary in the meantime.
		msg.Ack()
		return
	}
	if post.ContentErr != nil {
		cs.logger.Warn(consumerModule, "Skipping summary for undecodable content", map[string]interface{}{"post_id": post.Id, "error": post.ContentErr.Error()})
		msg.Ack()
		return
	}

	html, err := cs.renderer.Render(post.Content)
	if err != nil {
		cs.logger.Warn(consumerModule, "Skipping summary for unrenderable content", map[string]interface{}{"post_id": post.Id, "error": err.Error()})
		msg.Ack()
		return
	}

	summary := cs.excerpter.Excerpt(html, render.SummaryLength)
	if summary == "" {
		msg.Ack()
		return
	}

	now := time.Now()
	post.Summary = summary
	post.UpdatedAt = &now
	if err := uow.PostRepository().Update(ctx, post); err != nil {
		cs.logger.Error(consumerModule, "Failed to save summary", map[string]interface{}{"post_id": post.Id, "error": err.Error()})
		msg.Nack()
		return
	}

	cs.logger.Info(consumerModule, "Summary derived", map[string]interface{}{"post_id": post.Id, "length": len([]rune(summary))})
	msg.Ack()
}
