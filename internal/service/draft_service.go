package service

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"blog-publishing-be/internal/dto"
	"blog-publishing-be/internal/entity"
	"blog-publishing-be/internal/pkg/logger"
	"blog-publishing-be/internal/repository/cache"
	"blog-publishing-be/internal/repository/memory"
	"blog-publishing-be/internal/repository/specification"
	"blog-publishing-be/internal/repository/unitofwork"
	"blog-publishing-be/pkg/asset"
	"blog-publishing-be/pkg/block"
	"blog-publishing-be/pkg/draft"
	"blog-publishing-be/pkg/events"

	"github.com/google/uuid"
)

const draftModule = "DraftService"

type IDraftService interface {
	Open(ctx context.Context, req *dto.OpenDraftRequest) (*dto.DraftResponse, error)
	Show(ctx context.Context, id string) (*dto.DraftResponse, error)
	Stage(ctx context.Context, id string, name string, payload []byte) (*dto.StageAssetResponse, error)
	SetBlocks(ctx context.Context, id string, doc block.Draft) (*dto.DraftResponse, error)
	Commit(ctx context.Context, id string, req *dto.CommitDraftRequest) (*dto.CommitDraftResponse, error)
	Discard(ctx context.Context, id string) error
}

type draftService struct {
	uowFactory       unitofwork.RepositoryFactory
	drafts           *memory.DraftRepository
	resolver         *asset.Resolver
	renderCache      cache.RenderCache
	publisherService IPublisherService
	eventPublisher   EventPublisher
	logger           logger.ILogger
}

func NewDraftService(
	uowFactory unitofwork.RepositoryFactory,
	drafts *memory.DraftRepository,
	resolver *asset.Resolver,
	renderCache cache.RenderCache,
	publisherService IPublisherService,
	eventPublisher EventPublisher,
	log logger.ILogger,
) IDraftService {
	return &draftService{
		uowFactory:       uowFactory,
		drafts:           drafts,
		resolver:         resolver,
		renderCache:      renderCache,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
		logger:           log,
	}
}

// Open starts an empty draft, or a draft over the stored content of an existing post.
func (s *draftService) Open(ctx context.Context, req *dto.OpenDraftRequest) (*dto.DraftResponse, error) {
	id := uuid.NewString()
	d := &entity.Draft{Id: id, OpenedAt: time.Now()}

	if req.PostId == nil {
		d.Session = draft.New(id, s.resolver)
	} else {
		uow := s.uowFactory.NewUnitOfWork(ctx)
		post, err := uow.PostRepository().FindOne(ctx, specification.ByID{ID: *req.PostId})
		if err != nil {
			return nil, err
		}
		if post == nil {
			return nil, ErrPostNotFound
		}
		doc, err := uow.DocumentStore().Load(ctx, post.Id)
		if err != nil {
			return nil, err
		}
		postId := post.Id
		d.PostId = &postId
		d.Session = draft.Open(id, s.resolver, doc)
	}

	s.drafts.Save(d)
	s.logger.Info(draftModule, "Draft opened", map[string]interface{}{"draft_id": id, "post_id": d.PostId})
	return toDraftResponse(d)
}

func (s *draftService) Show(ctx context.Context, id string) (*dto.DraftResponse, error) {
	d, err := s.get(id)
	if err != nil {
		return nil, err
	}
	return toDraftResponse(d)
}

func (s *draftService) Stage(ctx context.Context, id string, name string, payload []byte) (*dto.StageAssetResponse, error) {
	d, err := s.get(id)
	if err != nil {
		return nil, err
	}
	tempId, err := d.Session.Stage(payload, name)
	if err != nil {
		return nil, err
	}
	return &dto.StageAssetResponse{TemporaryId: tempId, Name: name}, nil
}

func (s *draftService) SetBlocks(ctx context.Context, id string, doc block.Draft) (*dto.DraftResponse, error) {
	d, err := s.get(id)
	if err != nil {
		return nil, err
	}
	if err := d.Session.SetBlocks(doc); err != nil {
		return nil, err
	}
	return toDraftResponse(d)
}

// Commit uploads the draft's images, then writes post metadata, content and the
// upload audit rows in one transaction. A successful commit ends the draft.
func (s *draftService) Commit(ctx context.Context, id string, req *dto.CommitDraftRequest) (*dto.CommitDraftResponse, error) {
	d, err := s.get(id)
	if err != nil {
		return nil, err
	}
	if d.PageKey != "" {
		return nil, ErrPageDraft
	}

	slug := req.Slug
	if slug == "" {
		slug = slugify(req.Title)
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := ensureSlugFree(ctx, uow, slug, d.PostId); err != nil {
		return nil, err
	}

	var post *entity.Post
	if d.PostId != nil {
		post, err = uow.PostRepository().FindOne(ctx, specification.ByID{ID: *d.PostId})
		if err != nil {
			return nil, err
		}
		if post == nil {
			return nil, ErrPostNotFound
		}
	}

	var oldSlug string
	persist := func(ctx context.Context, doc block.Finalized) error {
		tx := s.uowFactory.NewUnitOfWork(ctx)
		if err := tx.Begin(ctx); err != nil {
			return err
		}
		defer tx.Rollback()

		now := time.Now()
		if post == nil {
			post = &entity.Post{Id: uuid.New(), CreatedAt: now}
			applyCommitMetadata(post, req, slug)
			if err := tx.PostRepository().Create(ctx, post); err != nil {
				return err
			}
		} else {
			oldSlug = post.Slug
			applyCommitMetadata(post, req, slug)
			post.UpdatedAt = &now
			if err := tx.PostRepository().Update(ctx, post); err != nil {
				return err
			}
		}

		if err := tx.DocumentStore().Save(ctx, post.Id, doc); err != nil {
			return err
		}
		post.Content = doc

		if records := assetRecords(post.Id, d.Id, d.Session.Uploads(), now); len(records) > 0 {
			if err := tx.AssetRecordRepository().CreateBatch(ctx, records); err != nil {
				return err
			}
		}

		return tx.Commit()
	}

	if _, err := d.Session.Commit(ctx, persist); err != nil {
		s.logger.Warn(draftModule, "Commit failed", map[string]interface{}{"draft_id": id, "error": err.Error()})
		return nil, err
	}
	s.drafts.Delete(id)

	if post.Summary == "" {
		s.queueSummary(ctx, post.Id)
	}

	slugs := []string{post.Slug}
	if oldSlug != "" && oldSlug != post.Slug {
		slugs = append(slugs, oldSlug)
	}
	if err := s.renderCache.Delete(ctx, slugs...); err != nil {
		s.logger.Warn(draftModule, "Failed to invalidate render cache", map[string]interface{}{"slugs": slugs, "error": err.Error()})
	}

	evt := events.NewPostEvent(events.PostCommitted, post.Id.String(), post.Slug)
	if oldSlug != "" {
		evt.Data[previousSlugKey] = oldSlug
	}
	publishEvent(ctx, s.eventPublisher, s.logger, draftModule, evt)

	uploads := d.Session.Uploads()
	res := &dto.CommitDraftResponse{
		PostId:   post.Id,
		Slug:     post.Slug,
		Uploaded: make([]*dto.UploadedAssetResponse, len(uploads)),
	}
	for i, u := range uploads {
		res.Uploaded[i] = &dto.UploadedAssetResponse{TemporaryId: u.TemporaryID, Url: u.URL}
	}

	s.logger.Info(draftModule, "Draft committed", map[string]interface{}{
		"draft_id": id,
		"post_id":  post.Id,
		"slug":     post.Slug,
		"uploads":  len(uploads),
	})
	return res, nil
}

func (s *draftService) Discard(ctx context.Context, id string) error {
	d, err := s.get(id)
	if err != nil {
		return err
	}
	d.Session.Discard()
	s.drafts.Delete(id)
	s.logger.Info(draftModule, "Draft discarded", map[string]interface{}{"draft_id": id})
	return nil
}

func (s *draftService) get(id string) (*entity.Draft, error) {
	d, ok := s.drafts.Get(id)
	if !ok {
		return nil, ErrDraftNotFound
	}
	return d, nil
}

func (s *draftService) queueSummary(ctx context.Context, postId uuid.UUID) {
	payload, err := json.Marshal(dto.PublishPostSummaryMessage{PostId: postId})
	if err == nil {
		err = s.publisherService.Publish(ctx, payload)
	}
	if err != nil {
		s.logger.Warn(draftModule, "Failed to queue summary", map[string]interface{}{"post_id": postId, "error": err.Error()})
	}
}

func applyCommitMetadata(post *entity.Post, req *dto.CommitDraftRequest, slug string) {
	post.Title = req.Title
	post.Slug = slug
	post.Summary = req.Summary
	post.CategoryId = req.CategoryId
	post.CoverImageUrl = req.CoverImageUrl
	post.IsPublished = req.IsPublished
}

func assetRecords(postId uuid.UUID, draftId string, uploads []asset.Uploaded, at time.Time) []*entity.AssetRecord {
	records := make([]*entity.AssetRecord, len(uploads))
	for i, u := range uploads {
		records[i] = &entity.AssetRecord{
			Id:          uuid.New(),
			PostId:      postId,
			DraftId:     draftId,
			TemporaryId: u.TemporaryID,
			Name:        u.Name,
			Url:         u.URL,
			Size:        int64(u.Size),
			CreatedAt:   at,
		}
	}
	return records
}

func toDraftResponse(d *entity.Draft) (*dto.DraftResponse, error) {
	content, err := json.Marshal(d.Session.Draft())
	if err != nil {
		return nil, err
	}

	staged := d.Session.Staged()
	ids := make([]string, 0, len(staged))
	for tempId := range staged {
		ids = append(ids, tempId)
	}
	sort.Strings(ids)

	res := &dto.DraftResponse{
		Id:       d.Id,
		PostId:   d.PostId,
		PageKey:  d.PageKey,
		Content:  content,
		Staged:   make([]*dto.StagedAssetResponse, len(ids)),
		Resolved: d.Session.Resolved(),
		OpenedAt: d.OpenedAt,
	}
	for i, tempId := range ids {
		res.Staged[i] = &dto.StagedAssetResponse{
			TemporaryId: tempId,
			Name:        staged[tempId].Name,
			Size:        len(staged[tempId].Payload),
		}
	}
	return res, nil
}
