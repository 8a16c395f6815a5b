package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"blog-publishing-be/internal/dto"
	"blog-publishing-be/internal/entity"
	"blog-publishing-be/internal/pkg/logger"
	"blog-publishing-be/internal/repository/cache"
	"blog-publishing-be/internal/repository/memory"
	"blog-publishing-be/pkg/asset"
	"blog-publishing-be/pkg/block"
	"blog-publishing-be/pkg/draft"
	"blog-publishing-be/pkg/events"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type draftFixture struct {
	db      *fakeDB
	store   *fakeAssetStore
	drafts  *memory.DraftRepository
	cache   *cache.MemoryRenderCache
	queue   *fakePublisher
	events  *fakeEventPublisher
	service IDraftService
}

func newDraftFixture() *draftFixture {
	f := &draftFixture{
		db:     newFakeDB(),
		store:  newFakeAssetStore(),
		drafts: memory.NewDraftRepository(time.Hour),
		cache:  cache.NewMemoryRenderCache(time.Hour),
		queue:  &fakePublisher{},
		events: &fakeEventPublisher{},
	}
	f.service = NewDraftService(
		f.db,
		f.drafts,
		asset.NewResolver(f.store),
		f.cache,
		f.queue,
		f.events,
		logger.NewNopLogger(),
	)
	return f
}

func TestDraftServiceCommitNewPost(t *testing.T) {
	f := newDraftFixture()
	ctx := context.Background()

	opened, err := f.service.Open(ctx, &dto.OpenDraftRequest{})
	require.NoError(t, err)
	assert.Nil(t, opened.PostId)

	staged, err := f.service.Stage(ctx, opened.Id, "cat.png", []byte("meow"))
	require.NoError(t, err)
	_, err = f.service.Stage(ctx, opened.Id, "unused.png", []byte("nobody"))
	require.NoError(t, err)

	_, err = f.service.SetBlocks(ctx, opened.Id, block.NewDraft(
		block.NewHeading(2, "Cats"),
		block.NewLocalImage(staged.TemporaryId, "cat.png", "a cat"),
	))
	require.NoError(t, err)

	res, err := f.service.Commit(ctx, opened.Id, &dto.CommitDraftRequest{Title: "All About Cats", IsPublished: true})
	require.NoError(t, err)

	assert.Equal(t, "all-about-cats", res.Slug)
	require.Len(t, res.Uploaded, 1)
	assert.Equal(t, "https://cdn.test/cat.png", res.Uploaded[0].Url)
	assert.Zero(t, f.store.count("unused.png"))

	post, ok := f.db.get(res.PostId)
	require.True(t, ok)
	ref, ok := post.Content.Blocks()[1].Asset()
	require.True(t, ok)
	assert.Equal(t, block.RemoteAsset{URL: "https://cdn.test/cat.png"}, ref)

	require.Len(t, f.db.records, 1)
	assert.Equal(t, opened.Id, f.db.records[0].DraftId)
	assert.Equal(t, int64(4), f.db.records[0].Size)
	assert.Equal(t, 1, f.db.commits)

	require.Len(t, f.queue.payloads, 1)
	var msg dto.PublishPostSummaryMessage
	require.NoError(t, json.Unmarshal(f.queue.payloads[0], &msg))
	assert.Equal(t, res.PostId, msg.PostId)

	evt := f.events.last()
	require.NotNil(t, evt)
	assert.Equal(t, events.PostCommitted, evt.EventType())
	assert.Equal(t, "all-about-cats", events.StringField(evt, "slug"))

	_, err = f.service.Show(ctx, opened.Id)
	assert.ErrorIs(t, err, ErrDraftNotFound)
}

func TestDraftServiceCommitRejectsTakenSlug(t *testing.T) {
	f := newDraftFixture()
	ctx := context.Background()
	f.db.insert(entity.Post{Id: uuid.New(), Title: "Taken", Slug: "taken", CreatedAt: time.Now()})

	opened, err := f.service.Open(ctx, &dto.OpenDraftRequest{})
	require.NoError(t, err)

	_, err = f.service.Commit(ctx, opened.Id, &dto.CommitDraftRequest{Title: "Taken"})
	assert.ErrorIs(t, err, ErrSlugTaken)

	_, err = f.service.Show(ctx, opened.Id)
	assert.NoError(t, err)
}

func TestDraftServiceCommitRetryAfterUploadFailure(t *testing.T) {
	f := newDraftFixture()
	ctx := context.Background()
	f.store.setFailing("b.png", true)

	opened, err := f.service.Open(ctx, &dto.OpenDraftRequest{})
	require.NoError(t, err)
	a, err := f.service.Stage(ctx, opened.Id, "a.png", []byte("a"))
	require.NoError(t, err)
	b, err := f.service.Stage(ctx, opened.Id, "b.png", []byte("b"))
	require.NoError(t, err)
	_, err = f.service.SetBlocks(ctx, opened.Id, block.NewDraft(
		block.NewLocalImage(a.TemporaryId, "a.png", ""),
		block.NewLocalImage(b.TemporaryId, "b.png", ""),
	))
	require.NoError(t, err)

	req := &dto.CommitDraftRequest{Title: "Two images"}
	_, err = f.service.Commit(ctx, opened.Id, req)

	var commitErr *draft.CommitError
	require.ErrorAs(t, err, &commitErr)
	require.Len(t, commitErr.UploadErrors, 1)
	assert.Equal(t, b.TemporaryId, commitErr.UploadErrors[0].TemporaryID)
	assert.Empty(t, f.db.posts)

	shown, err := f.service.Show(ctx, opened.Id)
	require.NoError(t, err)
	assert.Len(t, shown.Staged, 2)
	assert.Equal(t, "https://cdn.test/a.png", shown.Resolved[a.TemporaryId])

	f.store.setFailing("b.png", false)
	res, err := f.service.Commit(ctx, opened.Id, req)
	require.NoError(t, err)

	assert.Equal(t, 1, f.store.count("a.png"))
	assert.Equal(t, 2, f.store.count("b.png"))
	assert.Len(t, res.Uploaded, 2)
	assert.Len(t, f.db.records, 2)
}

func TestDraftServiceEditExistingPost(t *testing.T) {
	f := newDraftFixture()
	ctx := context.Background()

	doc, err := block.Finalize([]block.Block{block.NewParagraph("old text")})
	require.NoError(t, err)
	postId := uuid.New()
	f.db.insert(entity.Post{
		Id:        postId,
		Title:     "Old",
		Slug:      "old",
		Summary:   "kept",
		Content:   doc,
		CreatedAt: time.Now(),
	})
	require.NoError(t, f.cache.Set(ctx, "old", "<p>old text</p>"))

	opened, err := f.service.Open(ctx, &dto.OpenDraftRequest{PostId: &postId})
	require.NoError(t, err)
	assert.Equal(t, &postId, opened.PostId)
	assert.Contains(t, string(opened.Content), "old text")

	_, err = f.service.SetBlocks(ctx, opened.Id, block.NewDraft(block.NewParagraph("new text")))
	require.NoError(t, err)

	res, err := f.service.Commit(ctx, opened.Id, &dto.CommitDraftRequest{Title: "New", Slug: "new", Summary: "kept"})
	require.NoError(t, err)
	assert.Equal(t, postId, res.PostId)

	post, _ := f.db.get(postId)
	assert.Equal(t, "new", post.Slug)
	assert.True(t, post.Content.Equal(mustFinalize(t, block.NewParagraph("new text"))))

	_, cached, _ := f.cache.Get(ctx, "old")
	assert.False(t, cached)
	assert.Empty(t, f.queue.payloads)
	assert.Equal(t, "old", events.StringField(f.events.last(), previousSlugKey))
}

func TestDraftServiceOpenMissingPost(t *testing.T) {
	f := newDraftFixture()
	missing := uuid.New()

	_, err := f.service.Open(context.Background(), &dto.OpenDraftRequest{PostId: &missing})
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestDraftServicePersistFailureKeepsDraft(t *testing.T) {
	f := newDraftFixture()
	ctx := context.Background()
	f.db.saveDocErr = errors.New("connection reset")

	opened, err := f.service.Open(ctx, &dto.OpenDraftRequest{})
	require.NoError(t, err)
	_, err = f.service.SetBlocks(ctx, opened.Id, block.NewDraft(block.NewParagraph("hi")))
	require.NoError(t, err)

	_, err = f.service.Commit(ctx, opened.Id, &dto.CommitDraftRequest{Title: "Hi"})

	var persistErr *draft.PersistError
	require.ErrorAs(t, err, &persistErr)
	assert.Equal(t, 1, f.db.rollbacks)
	_, err = f.service.Show(ctx, opened.Id)
	assert.NoError(t, err)
}

func TestDraftServiceDiscard(t *testing.T) {
	f := newDraftFixture()
	ctx := context.Background()

	opened, err := f.service.Open(ctx, &dto.OpenDraftRequest{})
	require.NoError(t, err)
	require.NoError(t, f.service.Discard(ctx, opened.Id))

	_, err = f.service.Stage(ctx, opened.Id, "a.png", []byte("a"))
	assert.ErrorIs(t, err, ErrDraftNotFound)
	assert.ErrorIs(t, f.service.Discard(ctx, opened.Id), ErrDraftNotFound)
}

func TestDraftServiceSetBlocksRejectsInvalidDraft(t *testing.T) {
	f := newDraftFixture()
	ctx := context.Background()

	opened, err := f.service.Open(ctx, &dto.OpenDraftRequest{})
	require.NoError(t, err)

	_, err = f.service.SetBlocks(ctx, opened.Id, block.NewDraft(block.NewHeading(9, "too deep")))

	var structural *block.StructuralError
	assert.ErrorAs(t, err, &structural)
}

func mustFinalize(t *testing.T, blocks ...block.Block) block.Finalized {
	t.Helper()
	doc, err := block.Finalize(blocks)
	require.NoError(t, err)
	return doc
}
