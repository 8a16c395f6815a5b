package service

import (
	"context"
	"fmt"
	"time"

	"blog-publishing-be/internal/dto"
	"blog-publishing-be/internal/pkg/logger"
	"blog-publishing-be/internal/repository/cache"
	"blog-publishing-be/internal/repository/specification"
	"blog-publishing-be/internal/repository/unitofwork"
	"blog-publishing-be/pkg/asset"
	"blog-publishing-be/pkg/events"

	"github.com/google/uuid"
)

const postModule = "PostService"

type IPostService interface {
	List(ctx context.Context, req *dto.ListPostsRequest) (*dto.PostListResponse, error)
	Show(ctx context.Context, id uuid.UUID) (*dto.PostDetailResponse, error)
	Update(ctx context.Context, req *dto.UpdatePostRequest) (*dto.PostSummaryResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	UploadCover(ctx context.Context, name string, payload []byte) (*dto.UploadCoverResponse, error)
}

type postService struct {
	uowFactory     unitofwork.RepositoryFactory
	assetStore     asset.Store
	renderCache    cache.RenderCache
	eventPublisher EventPublisher
	logger         logger.ILogger
}

func NewPostService(
	uowFactory unitofwork.RepositoryFactory,
	assetStore asset.Store,
	renderCache cache.RenderCache,
	eventPublisher EventPublisher,
	log logger.ILogger,
) IPostService {
	return &postService{
		uowFactory:     uowFactory,
		assetStore:     assetStore,
		renderCache:    renderCache,
		eventPublisher: eventPublisher,
		logger:         log,
	}
}

func (s *postService) List(ctx context.Context, req *dto.ListPostsRequest) (*dto.PostListResponse, error) {
	page, limit := normalizePage(req.Page, req.Limit)
	uow := s.uowFactory.NewUnitOfWork(ctx)

	filters := []specification.Specification{specification.PostTitleSearch{Query: req.Search}}
	if req.CategoryId != nil {
		filters = append(filters, specification.ByCategoryID{CategoryID: *req.CategoryId})
	}

	total, err := uow.PostRepository().Count(ctx, filters...)
	if err != nil {
		return nil, err
	}

	posts, err := uow.PostRepository().FindAll(ctx, append(filters,
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: (page - 1) * limit},
	)...)
	if err != nil {
		return nil, err
	}

	return &dto.PostListResponse{
		Data:  toPostSummaries(posts),
		Total: total,
		Page:  page,
		Limit: limit,
	}, nil
}

func (s *postService) Show(ctx context.Context, id uuid.UUID) (*dto.PostDetailResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	post, err := uow.PostRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	res := &dto.PostDetailResponse{PostSummaryResponse: *toPostSummary(post)}
	if post.ContentErr != nil {
		s.logger.Warn(postModule, "Stored content could not be decoded", map[string]interface{}{
			"post_id": post.Id,
			"error":   post.ContentErr.Error(),
		})
	} else {
		res.Content = post.Content
	}
	return res, nil
}

func (s *postService) Update(ctx context.Context, req *dto.UpdatePostRequest) (*dto.PostSummaryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	post, err := uow.PostRepository().FindOne(ctx, specification.ByID{ID: req.Id})
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	slug := req.Slug
	if slug == "" {
		slug = post.Slug
	}
	if err := ensureSlugFree(ctx, uow, slug, &post.Id); err != nil {
		return nil, err
	}

	oldSlug := post.Slug
	now := time.Now()
	post.Title = req.Title
	post.Slug = slug
	post.Summary = req.Summary
	post.CategoryId = req.CategoryId
	post.CoverImageUrl = req.CoverImageUrl
	post.IsPublished = req.IsPublished
	post.UpdatedAt = &now

	if err := uow.PostRepository().Update(ctx, post); err != nil {
		return nil, err
	}

	s.invalidate(ctx, oldSlug, post.Slug)
	evt := events.NewPostEvent(events.PostUpdated, post.Id.String(), post.Slug)
	evt.Data[previousSlugKey] = oldSlug
	publishEvent(ctx, s.eventPublisher, s.logger, postModule, evt)

	return toPostSummary(post), nil
}

func (s *postService) Delete(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	post, err := uow.PostRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return err
	}
	if post == nil {
		return ErrPostNotFound
	}

	if err := uow.PostRepository().Delete(ctx, id); err != nil {
		return err
	}

	s.invalidate(ctx, post.Slug)
	publishEvent(ctx, s.eventPublisher, s.logger, postModule, events.NewPostEvent(events.PostDeleted, post.Id.String(), post.Slug))
	s.logger.Info(postModule, "Post deleted", map[string]interface{}{"post_id": id, "slug": post.Slug})
	return nil
}

// UploadCover sends a cover image straight to the asset store; covers never live in a draft.
func (s *postService) UploadCover(ctx context.Context, name string, payload []byte) (*dto.UploadCoverResponse, error) {
	if len(payload) == 0 {
		return nil, ErrEmptyFile
	}
	coverName := fmt.Sprintf("cover_%d_%s", time.Now().Unix(), name)
	url, err := asset.Upload(ctx, s.assetStore, coverName, payload)
	if err != nil {
		s.logger.Error(postModule, "Cover upload failed", map[string]interface{}{"name": coverName, "error": err.Error()})
		return nil, err
	}
	return &dto.UploadCoverResponse{Url: url}, nil
}

func (s *postService) invalidate(ctx context.Context, slugs ...string) {
	if err := s.renderCache.Delete(ctx, slugs...); err != nil {
		s.logger.Warn(postModule, "Failed to invalidate render cache", map[string]interface{}{
			"slugs": slugs,
			"error": err.Error(),
		})
	}
}

// ensureSlugFree fails with ErrSlugTaken when another live post uses slug.
func ensureSlugFree(ctx context.Context, uow unitofwork.UnitOfWork, slug string, self *uuid.UUID) error {
	existing, err := uow.PostRepository().FindOne(ctx, specification.BySlug{Slug: slug})
	if err != nil {
		return err
	}
	if existing != nil && (self == nil || existing.Id != *self) {
		return ErrSlugTaken
	}
	return nil
}
