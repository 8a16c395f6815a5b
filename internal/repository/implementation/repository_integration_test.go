package implementation_test

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"blog-publishing-be/internal/entity"
	"blog-publishing-be/internal/model"
	"blog-publishing-be/internal/repository/implementation"
	"blog-publishing-be/internal/repository/specification"
	"blog-publishing-be/internal/repository/unitofwork"
	"blog-publishing-be/pkg/block"
	"blog-publishing-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepositoriesAgainstPostgres(t *testing.T) {
	if err := godotenv.Load("../../../.env"); err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn, "warn")
	require.NoError(t, err)
	require.NoError(t, gormDB.AutoMigrate(&model.Post{}, &model.AssetRecord{}, &model.Page{}))

	ctx := context.Background()
	uowFactory := unitofwork.NewRepositoryFactory(gormDB)

	post := &entity.Post{
		Id:          uuid.New(),
		Title:       "Integration Post",
		Slug:        "integration-post-" + uuid.NewString()[:8],
		IsPublished: true,
		CreatedAt:   time.Now(),
	}
	t.Cleanup(func() {
		gormDB.Unscoped().Where("post_id = ?", post.Id).Delete(&model.AssetRecord{})
		gormDB.Unscoped().Where("id = ?", post.Id).Delete(&model.Post{})
	})

	t.Run("commit writes post, document and asset records together", func(t *testing.T) {
		doc, err := block.Finalize([]block.Block{
			block.NewHeading(2, "Hello"),
			block.NewRemoteImage("https://cdn.test/cat.png", "cat"),
		})
		require.NoError(t, err)

		uow := uowFactory.NewUnitOfWork(ctx)
		require.NoError(t, uow.Begin(ctx))
		defer uow.Rollback()

		require.NoError(t, uow.PostRepository().Create(ctx, post))
		require.NoError(t, uow.DocumentStore().Save(ctx, post.Id, doc))
		require.NoError(t, uow.AssetRecordRepository().CreateBatch(ctx, []*entity.AssetRecord{{
			Id:          uuid.New(),
			PostId:      post.Id,
			DraftId:     "integration",
			TemporaryId: "tmp-1",
			Name:        "cat.png",
			Url:         "https://cdn.test/cat.png",
			Size:        3,
			CreatedAt:   time.Now(),
		}}))
		require.NoError(t, uow.Commit())

		loaded, err := uowFactory.NewUnitOfWork(ctx).DocumentStore().Load(ctx, post.Id)
		require.NoError(t, err)
		assert.True(t, doc.Equal(loaded))

		records, err := uowFactory.NewUnitOfWork(ctx).AssetRecordRepository().FindAll(ctx, specification.ByPostID{PostID: post.Id})
		require.NoError(t, err)
		assert.Len(t, records, 1)
	})

	t.Run("rollback leaves nothing behind", func(t *testing.T) {
		orphan := &entity.Post{Id: uuid.New(), Title: "Orphan", Slug: "orphan-" + uuid.NewString()[:8], CreatedAt: time.Now()}

		uow := uowFactory.NewUnitOfWork(ctx)
		require.NoError(t, uow.Begin(ctx))
		require.NoError(t, uow.PostRepository().Create(ctx, orphan))
		require.NoError(t, uow.Rollback())

		found, err := uowFactory.NewUnitOfWork(ctx).PostRepository().FindOne(ctx, specification.BySlug{Slug: orphan.Slug})
		require.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("find by slug", func(t *testing.T) {
		found, err := uowFactory.NewUnitOfWork(ctx).PostRepository().FindOne(ctx, specification.BySlug{Slug: post.Slug}, specification.Published{})
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, post.Id, found.Id)
		assert.NoError(t, found.ContentErr)
		assert.Equal(t, 2, found.Content.Len())
	})

	t.Run("page save replaces content", func(t *testing.T) {
		key := "integration-" + uuid.NewString()[:8]
		t.Cleanup(func() {
			gormDB.Where("key = ?", key).Delete(&model.Page{})
		})

		pages := uowFactory.NewUnitOfWork(ctx).PageRepository()
		missing, err := pages.FindByKey(ctx, key)
		require.NoError(t, err)
		assert.Nil(t, missing)

		first, err := block.Finalize([]block.Block{block.NewParagraph("first")})
		require.NoError(t, err)
		_, err = pages.Save(ctx, key, first)
		require.NoError(t, err)

		second, err := block.Finalize([]block.Block{block.NewParagraph("second"), block.NewDelimiter()})
		require.NoError(t, err)
		_, err = pages.Save(ctx, key, second)
		require.NoError(t, err)

		found, err := pages.FindByKey(ctx, key)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.NoError(t, found.ContentErr)
		assert.True(t, second.Equal(found.Content))
	})

	t.Run("missing document", func(t *testing.T) {
		_, err := uowFactory.NewUnitOfWork(ctx).DocumentStore().Load(ctx, uuid.New())
		assert.ErrorIs(t, err, implementation.ErrDocumentNotFound)
	})
}
