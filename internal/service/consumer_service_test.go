package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"blog-publishing-be/internal/dto"
	"blog-publishing-be/internal/entity"
	"blog-publishing-be/internal/pkg/logger"
	"blog-publishing-be/pkg/block"
	"blog-publishing-be/pkg/render"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newConsumer(db *fakeDB) *consumerService {
	return NewConsumerService(
		gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{}),
		"POST_SUMMARY",
		db,
		render.New(),
		render.NewExcerpter(),
		logger.NewNopLogger(),
	).(*consumerService)
}

func summaryMessage(t *testing.T, postId uuid.UUID) *message.Message {
	payload, err := json.Marshal(dto.PublishPostSummaryMessage{PostId: postId})
	require.NoError(t, err)
	return message.NewMessage(watermill.NewUUID(), payload)
}

func acked(msg *message.Message) bool {
	select {
	case <-msg.Acked():
		return true
	default:
		return false
	}
}

func TestConsumerDerivesMissingSummary(t *testing.T) {
	db := newFakeDB()
	id := uuid.New()
	db.insert(entity.Post{
		Id:        id,
		Title:     "Post",
		Slug:      "post",
		Content:   mustFinalize(t, block.NewHeading(2, "Title"), block.NewParagraph("Hello <b>bold</b> world")),
		CreatedAt: time.Now(),
	})

	msg := summaryMessage(t, id)
	newConsumer(db).processMessage(context.Background(), msg)

	assert.True(t, acked(msg))
	post, _ := db.get(id)
	assert.Equal(t, "Title Hello bold world", post.Summary)
}

func TestConsumerKeepsEditorSummary(t *testing.T) {
	db := newFakeDB()
	id := uuid.New()
	db.insert(entity.Post{
		Id:        id,
		Slug:      "post",
		Summary:   "written by hand",
		Content:   mustFinalize(t, block.NewParagraph("body")),
		CreatedAt: time.Now(),
	})

	msg := summaryMessage(t, id)
	newConsumer(db).processMessage(context.Background(), msg)

	assert.True(t, acked(msg))
	post, _ := db.get(id)
	assert.Equal(t, "written by hand", post.Summary)
}

func TestConsumerAcksUnusableMessages(t *testing.T) {
	db := newFakeDB()
	consumer := newConsumer(db)

	garbage := message.NewMessage(watermill.NewUUID(), []byte("{"))
	consumer.processMessage(context.Background(), garbage)
	assert.True(t, acked(garbage))

	missing := summaryMessage(t, uuid.New())
	consumer.processMessage(context.Background(), missing)
	assert.True(t, acked(missing))
}
