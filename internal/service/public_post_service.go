package service

import (
	"context"

	"blog-publishing-be/internal/dto"
	"blog-publishing-be/internal/entity"
	"blog-publishing-be/internal/pkg/logger"
	"blog-publishing-be/internal/repository/cache"
	"blog-publishing-be/internal/repository/specification"
	"blog-publishing-be/internal/repository/unitofwork"
	"blog-publishing-be/pkg/block"
	"blog-publishing-be/pkg/events"
	"blog-publishing-be/pkg/render"
)

const (
	publicPostModule   = "PublicPostService"
	defaultRandomLimit = 6
)

type IPublicPostService interface {
	List(ctx context.Context, req *dto.ListPostsRequest) (*dto.PostListResponse, error)
	Random(ctx context.Context, req *dto.RandomPostsRequest) ([]*dto.PostSummaryResponse, error)
	ShowBySlug(ctx context.Context, slug string) (*dto.PublicPostResponse, error)
	HandleEvent(ctx context.Context, evt events.Event) error
}

type publicPostService struct {
	uowFactory  unitofwork.RepositoryFactory
	renderer    *render.Renderer
	renderCache cache.RenderCache
	logger      logger.ILogger
}

func NewPublicPostService(
	uowFactory unitofwork.RepositoryFactory,
	renderer *render.Renderer,
	renderCache cache.RenderCache,
	log logger.ILogger,
) IPublicPostService {
	return &publicPostService{
		uowFactory:  uowFactory,
		renderer:    renderer,
		renderCache: renderCache,
		logger:      log,
	}
}

// List returns published posts, newest first, optionally within one category.
func (s *publicPostService) List(ctx context.Context, req *dto.ListPostsRequest) (*dto.PostListResponse, error) {
	page, limit := normalizePage(req.Page, req.Limit)
	uow := s.uowFactory.NewUnitOfWork(ctx)

	filters := []specification.Specification{
		specification.Published{},
		specification.PostTitleSearch{Query: req.Search},
	}
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

// Random picks related posts from one category, leaving out the post being read.
func (s *publicPostService) Random(ctx context.Context, req *dto.RandomPostsRequest) ([]*dto.PostSummaryResponse, error) {
	limit := req.Limit
	if limit < 1 {
		limit = defaultRandomLimit
	}
	uow := s.uowFactory.NewUnitOfWork(ctx)
	posts, err := uow.PostRepository().FindAll(ctx,
		specification.Published{},
		specification.ByCategoryID{CategoryID: req.CategoryId},
		specification.ExcludeSlug{Slug: req.ExcludeSlug},
		specification.RandomOrder{},
		specification.Pagination{Limit: limit},
	)
	if err != nil {
		return nil, err
	}
	return toPostSummaries(posts), nil
}

func (s *publicPostService) ShowBySlug(ctx context.Context, slug string) (*dto.PublicPostResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	post, err := uow.PostRepository().FindOne(ctx, specification.BySlug{Slug: slug}, specification.Published{})
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	res := &dto.PublicPostResponse{
		PostSummaryResponse: *toPostSummary(post),
		Html:                s.html(ctx, post),
	}

	if post.CategoryId != nil {
		prev, err := uow.PostRepository().FindOne(ctx,
			specification.Published{},
			specification.ByCategoryID{CategoryID: *post.CategoryId},
			specification.CreatedBefore{At: post.CreatedAt},
			specification.OrderBy{Field: "created_at", Desc: true},
		)
		if err != nil {
			return nil, err
		}
		next, err := uow.PostRepository().FindOne(ctx,
			specification.Published{},
			specification.ByCategoryID{CategoryID: *post.CategoryId},
			specification.CreatedAfter{At: post.CreatedAt},
			specification.OrderBy{Field: "created_at"},
		)
		if err != nil {
			return nil, err
		}
		res.Prev = toPostLink(prev)
		res.Next = toPostLink(next)
	}

	return res, nil
}

func (s *publicPostService) html(ctx context.Context, post *entity.Post) string {
	return cachedHTML(ctx, htmlSource{
		cache:      s.renderCache,
		renderer:   s.renderer,
		logger:     s.logger,
		module:     publicPostModule,
		key:        post.Slug,
		doc:        post.Content,
		contentErr: post.ContentErr,
	})
}

// htmlSource is one stored document and the render cache entry it is served from.
type htmlSource struct {
	cache      cache.RenderCache
	renderer   *render.Renderer
	logger     logger.ILogger
	module     string
	key        string
	doc        block.Finalized
	contentErr error
}

// cachedHTML serves rendered content from the cache when it can. A document that fails to
// render is shown as unavailable and is never cached, so a fix shows up at once.
func cachedHTML(ctx context.Context, src htmlSource) string {
	cached, ok, err := src.cache.Get(ctx, src.key)
	if err != nil {
		src.logger.Warn(src.module, "Render cache read failed", map[string]interface{}{"key": src.key, "error": err.Error()})
	}
	if ok {
		return cached
	}

	if src.contentErr != nil {
		src.logger.Error(src.module, "Stored content could not be decoded", map[string]interface{}{
			"key":   src.key,
			"error": src.contentErr.Error(),
		})
		return render.Unavailable
	}

	out, err := src.renderer.RenderOrFallback(src.doc)
	if err != nil {
		src.logger.Error(src.module, "Failed to render document", map[string]interface{}{
			"key":   src.key,
			"error": err.Error(),
		})
		return out
	}

	if err := src.cache.Set(ctx, src.key, out); err != nil {
		src.logger.Warn(src.module, "Render cache write failed", map[string]interface{}{"key": src.key, "error": err.Error()})
	}
	return out
}

// HandleEvent drops cached HTML for posts and pages changed on any instance.
func (s *publicPostService) HandleEvent(ctx context.Context, evt events.Event) error {
	switch evt.EventType() {
	case events.PostCommitted, events.PostUpdated, events.PostDeleted:
	case events.PageUpdated:
		if key := events.StringField(evt, "page"); key != "" {
			return s.renderCache.Delete(ctx, pageCacheKey(key))
		}
		return nil
	default:
		return nil
	}

	var slugs []string
	for _, key := range []string{"slug", previousSlugKey} {
		if slug := events.StringField(evt, key); slug != "" {
			slugs = append(slugs, slug)
		}
	}
	if len(slugs) == 0 {
		return nil
	}
	return s.renderCache.Delete(ctx, slugs...)
}

func toPostLink(p *entity.Post) *dto.PostLinkResponse {
	if p == nil {
		return nil
	}
	return &dto.PostLinkResponse{Title: p.Title, Slug: p.Slug}
}
