package implementation

import (
	"context"
	"errors"

	"blog-publishing-be/internal/entity"
	"blog-publishing-be/internal/mapper"
	"blog-publishing-be/internal/model"
	"blog-publishing-be/internal/repository/contract"
	"blog-publishing-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PostRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.PostMapper
}

func NewPostRepository(db *gorm.DB) contract.PostRepository {
	return &PostRepositoryImpl{
		db:     db,
		mapper: mapper.NewPostMapper(),
	}
}

func applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *PostRepositoryImpl) Create(ctx context.Context, post *entity.Post) error {
	m, err := r.mapper.ToModel(post)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*post = *r.mapper.ToEntity(m)
	return nil
}

// postMetadataColumns are the columns Update writes. Content belongs to the
// DocumentStore and is never written back from a loaded post.
var postMetadataColumns = []string{
	"title",
	"slug",
	"summary",
	"is_published",
	"category_id",
	"cover_image_url",
	"updated_at",
}

func (r *PostRepositoryImpl) Update(ctx context.Context, post *entity.Post) error {
	m, err := r.mapper.ToModel(post)
	if err != nil {
		return err
	}
	res := r.db.WithContext(ctx).
		Model(&model.Post{}).
		Where("id = ?", post.Id).
		Select(postMetadataColumns).
		Updates(m)
	if res.Error != nil {
		return res.Error
	}
	if !m.UpdatedAt.IsZero() {
		updatedAt := m.UpdatedAt
		post.UpdatedAt = &updatedAt
	}
	return nil
}

func (r *PostRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Post{}, id).Error
}

func (r *PostRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Post, error) {
	var m model.Post
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *PostRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Post, error) {
	var models []*model.Post
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *PostRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := applySpecifications(r.db.WithContext(ctx).Model(&model.Post{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
