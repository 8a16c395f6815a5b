package implementation

import (
	"context"
	"testing"
	"time"

	"blog-publishing-be/internal/entity"
	"blog-publishing-be/pkg/block"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/utils/tests"
)

func TestPostUpdateLeavesContentAlone(t *testing.T) {
	db, err := gorm.Open(tests.DummyDialector{}, &gorm.Config{DryRun: true})
	require.NoError(t, err)

	var updateSQL string
	err = db.Callback().Update().After("gorm:update").Register("test:capture_sql", func(tx *gorm.DB) {
		updateSQL = tx.Statement.SQL.String()
	})
	require.NoError(t, err)

	doc, err := block.Finalize([]block.Block{block.NewParagraph("stale copy")})
	require.NoError(t, err)
	now := time.Now()
	post := &entity.Post{
		Id:        uuid.New(),
		Title:     "Renamed",
		Slug:      "renamed",
		Content:   doc,
		CreatedAt: now,
		UpdatedAt: &now,
	}

	require.NoError(t, NewPostRepository(db).Update(context.Background(), post))

	assert.Contains(t, updateSQL, "UPDATE `posts` SET")
	assert.Contains(t, updateSQL, "`title`=")
	assert.Contains(t, updateSQL, "`is_published`=")
	assert.NotContains(t, updateSQL, "content")
	assert.NotContains(t, updateSQL, "created_at")
}
