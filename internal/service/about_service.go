package service

import (
	"context"
	"time"

	"blog-publishing-be/internal/dto"
	"blog-publishing-be/internal/entity"
	"blog-publishing-be/internal/pkg/logger"
	"blog-publishing-be/internal/repository/cache"
	"blog-publishing-be/internal/repository/memory"
	"blog-publishing-be/internal/repository/unitofwork"
	"blog-publishing-be/pkg/asset"
	"blog-publishing-be/pkg/block"
	"blog-publishing-be/pkg/draft"
	"blog-publishing-be/pkg/events"
	"blog-publishing-be/pkg/render"

	"github.com/google/uuid"
)

const aboutModule = "AboutService"

// pageCacheKey keeps page entries apart from post slugs in the render cache.
func pageCacheKey(key string) string {
	return "page:" + key
}

// IAboutService edits and serves the about page. Its drafts share the draft store and
// routes with posts; only opening and committing differ.
type IAboutService interface {
	Show(ctx context.Context) (*dto.AboutResponse, error)
	OpenDraft(ctx context.Context) (*dto.DraftResponse, error)
	Commit(ctx context.Context, draftId string) (*dto.CommitAboutResponse, error)
	ShowPublic(ctx context.Context) (*dto.PublicAboutResponse, error)
}

type aboutService struct {
	uowFactory     unitofwork.RepositoryFactory
	drafts         *memory.DraftRepository
	resolver       *asset.Resolver
	renderer       *render.Renderer
	renderCache    cache.RenderCache
	eventPublisher EventPublisher
	logger         logger.ILogger
}

func NewAboutService(
	uowFactory unitofwork.RepositoryFactory,
	drafts *memory.DraftRepository,
	resolver *asset.Resolver,
	renderer *render.Renderer,
	renderCache cache.RenderCache,
	eventPublisher EventPublisher,
	log logger.ILogger,
) IAboutService {
	return &aboutService{
		uowFactory:     uowFactory,
		drafts:         drafts,
		resolver:       resolver,
		renderer:       renderer,
		renderCache:    renderCache,
		eventPublisher: eventPublisher,
		logger:         log,
	}
}

// Show returns the stored document, or an empty one before the first commit.
func (s *aboutService) Show(ctx context.Context) (*dto.AboutResponse, error) {
	page, err := s.uowFactory.NewUnitOfWork(ctx).PageRepository().FindByKey(ctx, entity.AboutPageKey)
	if err != nil {
		return nil, err
	}
	if page == nil {
		return &dto.AboutResponse{Content: block.Finalized{}}, nil
	}

	res := &dto.AboutResponse{UpdatedAt: &page.UpdatedAt}
	if page.ContentErr != nil {
		s.logger.Warn(aboutModule, "Stored content could not be decoded", map[string]interface{}{
			"page":  page.Key,
			"error": page.ContentErr.Error(),
		})
	} else {
		res.Content = page.Content
	}
	return res, nil
}

// OpenDraft starts a draft over the stored page. Content that no longer decodes is
// replaced by an empty draft so the page can be rewritten.
func (s *aboutService) OpenDraft(ctx context.Context) (*dto.DraftResponse, error) {
	page, err := s.uowFactory.NewUnitOfWork(ctx).PageRepository().FindByKey(ctx, entity.AboutPageKey)
	if err != nil {
		return nil, err
	}

	id := uuid.NewString()
	d := &entity.Draft{Id: id, PageKey: entity.AboutPageKey, OpenedAt: time.Now()}
	switch {
	case page == nil:
		d.Session = draft.New(id, s.resolver)
	case page.ContentErr != nil:
		s.logger.Warn(aboutModule, "Opening an empty draft over undecodable content", map[string]interface{}{
			"page":  page.Key,
			"error": page.ContentErr.Error(),
		})
		d.Session = draft.New(id, s.resolver)
	default:
		d.Session = draft.Open(id, s.resolver, page.Content)
	}

	s.drafts.Save(d)
	s.logger.Info(aboutModule, "Draft opened", map[string]interface{}{"draft_id": id, "page": d.PageKey})
	return toDraftResponse(d)
}

// Commit uploads the draft's images and replaces the page content. A successful
// commit ends the draft.
func (s *aboutService) Commit(ctx context.Context, draftId string) (*dto.CommitAboutResponse, error) {
	d, ok := s.drafts.Get(draftId)
	if !ok {
		return nil, ErrDraftNotFound
	}
	if d.PageKey != entity.AboutPageKey {
		return nil, ErrNotPageDraft
	}

	var page *entity.Page
	persist := func(ctx context.Context, doc block.Finalized) error {
		tx := s.uowFactory.NewUnitOfWork(ctx)
		if err := tx.Begin(ctx); err != nil {
			return err
		}
		defer tx.Rollback()

		saved, err := tx.PageRepository().Save(ctx, d.PageKey, doc)
		if err != nil {
			return err
		}
		if err := tx.Commit(); err != nil {
			return err
		}
		page = saved
		return nil
	}

	if _, err := d.Session.Commit(ctx, persist); err != nil {
		s.logger.Warn(aboutModule, "Commit failed", map[string]interface{}{"draft_id": draftId, "error": err.Error()})
		return nil, err
	}
	s.drafts.Delete(draftId)

	if err := s.renderCache.Delete(ctx, pageCacheKey(page.Key)); err != nil {
		s.logger.Warn(aboutModule, "Failed to invalidate render cache", map[string]interface{}{"page": page.Key, "error": err.Error()})
	}
	publishEvent(ctx, s.eventPublisher, s.logger, aboutModule, events.NewPageEvent(events.PageUpdated, page.Key))

	uploads := d.Session.Uploads()
	res := &dto.CommitAboutResponse{
		UpdatedAt: page.UpdatedAt,
		Uploaded:  make([]*dto.UploadedAssetResponse, len(uploads)),
	}
	for i, u := range uploads {
		res.Uploaded[i] = &dto.UploadedAssetResponse{TemporaryId: u.TemporaryID, Url: u.URL}
		s.logger.Info(aboutModule, "Asset uploaded", map[string]interface{}{
			"draft_id":     draftId,
			"temporary_id": u.TemporaryID,
			"name":         u.Name,
			"url":          u.URL,
			"size":         u.Size,
		})
	}

	s.logger.Info(aboutModule, "Draft committed", map[string]interface{}{
		"draft_id": draftId,
		"page":     page.Key,
		"uploads":  len(uploads),
	})
	return res, nil
}

func (s *aboutService) ShowPublic(ctx context.Context) (*dto.PublicAboutResponse, error) {
	page, err := s.uowFactory.NewUnitOfWork(ctx).PageRepository().FindByKey(ctx, entity.AboutPageKey)
	if err != nil {
		return nil, err
	}
	if page == nil {
		return nil, ErrPageNotFound
	}

	html := cachedHTML(ctx, htmlSource{
		cache:      s.renderCache,
		renderer:   s.renderer,
		logger:     s.logger,
		module:     aboutModule,
		key:        pageCacheKey(page.Key),
		doc:        page.Content,
		contentErr: page.ContentErr,
	})
	return &dto.PublicAboutResponse{Html: html, UpdatedAt: page.UpdatedAt}, nil
}
