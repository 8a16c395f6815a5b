package memory

import (
	"testing"
	"time"

	"blog-publishing-be/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDraftRepository(t *testing.T) {
	repo := NewDraftRepository(time.Hour)
	repo.Save(&entity.Draft{Id: "d1"})

	got, ok := repo.Get("d1")
	require.True(t, ok)
	assert.Equal(t, "d1", got.Id)
	assert.Equal(t, 1, repo.Count())

	repo.Delete("d1")
	_, ok = repo.Get("d1")
	assert.False(t, ok)
}

func TestDraftRepositoryExpires(t *testing.T) {
	repo := NewDraftRepository(20 * time.Millisecond)
	repo.Save(&entity.Draft{Id: "d1"})

	time.Sleep(50 * time.Millisecond)

	_, ok := repo.Get("d1")
	assert.False(t, ok)
}
