// Command seed writes a sample post through a draft session and the local asset store.
package main

import (
	"context"
	"os"
	"time"

	"blog-publishing-be/internal/config"
	"blog-publishing-be/internal/entity"
	"blog-publishing-be/internal/repository/specification"
	"blog-publishing-be/internal/repository/unitofwork"
	"blog-publishing-be/pkg/asset"
	"blog-publishing-be/pkg/asset/local"
	"blog-publishing-be/pkg/block"
	"blog-publishing-be/pkg/database"
	"blog-publishing-be/pkg/draft"
	"blog-publishing-be/pkg/render"

	"github.com/fatih/color"
	"github.com/google/uuid"
)

const seedSlug = "welcome-to-the-blog"

// A 1x1 transparent PNG.
var samplePNG = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a, 0x00, 0x00, 0x00, 0x0d, 0x49, 0x48, 0x44, 0x52,
	0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01, 0x08, 0x06, 0x00, 0x00, 0x00, 0x1f, 0x15, 0xc4,
	0x89, 0x00, 0x00, 0x00, 0x0d, 0x49, 0x44, 0x41, 0x54, 0x78, 0x9c, 0x63, 0x00, 0x01, 0x00, 0x00,
	0x05, 0x00, 0x01, 0x0d, 0x0a, 0x2d, 0xb4, 0x00, 0x00, 0x00, 0x00, 0x49, 0x45, 0x4e, 0x44, 0xae,
	0x42, 0x60, 0x82,
}

func fail(format string, args ...interface{}) {
	color.Red(format, args...)
	os.Exit(1)
}

func main() {
	ctx := context.Background()
	cfg := config.Load()
	if cfg.Database.Connection == "" {
		fail("DB_CONNECTION_STRING is not set")
	}

	color.Cyan("🚀 Seeding sample post %q\n", seedSlug)

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection, cfg.Database.LogLevel)
	if err != nil {
		fail("Failed to connect to database: %v", err)
	}
	uowFactory := unitofwork.NewRepositoryFactory(db)

	existing, err := uowFactory.NewUnitOfWork(ctx).PostRepository().FindOne(ctx, specification.BySlug{Slug: seedSlug})
	if err != nil {
		fail("Failed to look up slug: %v", err)
	}
	if existing != nil {
		color.Yellow("Post %s already exists, nothing to do", existing.Id)
		return
	}

	store, err := local.NewStore(cfg.Assets.UploadDir, cfg.App.BaseURL, cfg.Assets.PublicBaseURL)
	if err != nil {
		fail("Failed to open upload dir: %v", err)
	}
	resolver := asset.NewResolver(store, asset.WithConcurrency(cfg.Assets.UploadConcurrency))

	color.Yellow("\n1. Staging assets")
	session := draft.New(uuid.NewString(), resolver)
	pixel, err := session.Stage(samplePNG, "pixel.png")
	if err != nil {
		fail("Stage failed: %v", err)
	}
	color.Green("Staged pixel.png as %s", pixel)

	color.Yellow("\n2. Writing blocks")
	err = session.SetBlocks(block.NewDraft(
		block.NewHeading(2, "Welcome"),
		block.NewParagraph("This post was written by <b>cmd/seed</b> to exercise the <i>whole</i> pipeline."),
		block.NewLocalImage(pixel, "pixel.png", "A very small image"),
		block.NewList(block.ListChecklist,
			block.CheckItem("stage an asset", true),
			block.CheckItem("commit the draft", true),
			block.CheckItem("read it on the public page", false),
		),
		block.NewQuote("Ship small, ship often.", "Someone"),
		block.NewCode("go run ./cmd/seed"),
		block.NewTable([]string{"kind", "count"}, []string{"image", "1"}),
		block.NewDelimiter(),
	))
	if err != nil {
		fail("SetBlocks rejected the document: %v", err)
	}

	color.Yellow("\n3. Committing")
	post := &entity.Post{
		Id:          uuid.New(),
		Title:       "Welcome to the blog",
		Slug:        seedSlug,
		IsPublished: true,
		CreatedAt:   time.Now(),
	}
	persist := func(ctx context.Context, doc block.Finalized) error {
		html, err := render.New().Render(doc)
		if err != nil {
			return err
		}
		post.Summary = render.NewExcerpter().Excerpt(html, render.SummaryLength)

		tx := uowFactory.NewUnitOfWork(ctx)
		if err := tx.Begin(ctx); err != nil {
			return err
		}
		defer tx.Rollback()

		if err := tx.PostRepository().Create(ctx, post); err != nil {
			return err
		}
		if err := tx.DocumentStore().Save(ctx, post.Id, doc); err != nil {
			return err
		}

		uploads := session.Uploads()
		records := make([]*entity.AssetRecord, len(uploads))
		for i, u := range uploads {
			records[i] = &entity.AssetRecord{
				Id:          uuid.New(),
				PostId:      post.Id,
				DraftId:     session.ID(),
				TemporaryId: u.TemporaryID,
				Name:        u.Name,
				Url:         u.URL,
				Size:        int64(u.Size),
				CreatedAt:   post.CreatedAt,
			}
		}
		if len(records) > 0 {
			if err := tx.AssetRecordRepository().CreateBatch(ctx, records); err != nil {
				return err
			}
		}
		return tx.Commit()
	}

	if _, err := session.Commit(ctx, persist); err != nil {
		fail("Commit failed: %v", err)
	}
	for _, u := range session.Uploads() {
		color.White("  uploaded %s -> %s", u.TemporaryID, u.URL)
	}

	color.Green("\n✅ Seeded post %s (%s)", post.Id, post.Slug)
	color.Green("Summary: %s", post.Summary)
}
