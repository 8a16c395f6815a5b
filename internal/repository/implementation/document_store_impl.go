package implementation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"blog-publishing-be/internal/model"
	"blog-publishing-be/internal/repository/contract"
	"blog-publishing-be/pkg/block"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var ErrDocumentNotFound = errors.New("document not found")

// DocumentStoreImpl reads and writes the content column of posts.
type DocumentStoreImpl struct {
	db *gorm.DB
}

func NewDocumentStore(db *gorm.DB) contract.DocumentStore {
	return &DocumentStoreImpl{db: db}
}

func (s *DocumentStoreImpl) Load(ctx context.Context, documentId uuid.UUID) (block.Finalized, error) {
	var m model.Post
	err := s.db.WithContext(ctx).Select("id", "content").Where("id = ?", documentId).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return block.Finalized{}, ErrDocumentNotFound
		}
		return block.Finalized{}, err
	}

	var doc block.Finalized
	if err := json.Unmarshal(m.Content, &doc); err != nil {
		return block.Finalized{}, fmt.Errorf("decode document %s: %w", documentId, err)
	}
	return doc, nil
}

func (s *DocumentStoreImpl) Save(ctx context.Context, documentId uuid.UUID, doc block.Finalized) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	res := s.db.WithContext(ctx).Model(&model.Post{}).Where("id = ?", documentId).Update("content", datatypes.JSON(data))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrDocumentNotFound
	}
	return nil
}
