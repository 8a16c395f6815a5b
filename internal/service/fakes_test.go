package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"blog-publishing-be/internal/entity"
	"blog-publishing-be/internal/repository/contract"
	"blog-publishing-be/internal/repository/specification"
	"blog-publishing-be/internal/repository/unitofwork"
	"blog-publishing-be/pkg/asset"
	"blog-publishing-be/pkg/block"
	"blog-publishing-be/pkg/events"

	"github.com/google/uuid"
)

// fakeDB stands in for Postgres. It understands the specifications the services use.
type fakeDB struct {
	mu         sync.Mutex
	posts      map[uuid.UUID]entity.Post
	pages      map[string]entity.Page
	records    []*entity.AssetRecord
	saveDocErr error
	onFind     func()
	commits    int
	rollbacks  int
	openedTxs  int
}

func newFakeDB() *fakeDB {
	return &fakeDB{posts: map[uuid.UUID]entity.Post{}, pages: map[string]entity.Page{}}
}

func (db *fakeDB) insert(p entity.Post) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.posts[p.Id] = p
}

func (db *fakeDB) get(id uuid.UUID) (entity.Post, bool) {
	db.mu.Lock()
	defer db.mu.Unlock()
	p, ok := db.posts[id]
	return p, ok
}

func (db *fakeDB) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &fakeUow{db: db}
}

type fakeUow struct {
	db   *fakeDB
	inTx bool
}

func (u *fakeUow) Begin(ctx context.Context) error {
	u.db.mu.Lock()
	defer u.db.mu.Unlock()
	u.inTx = true
	u.db.openedTxs++
	return nil
}

func (u *fakeUow) Commit() error {
	if !u.inTx {
		return errors.New("no transaction to commit")
	}
	u.db.mu.Lock()
	defer u.db.mu.Unlock()
	u.inTx = false
	u.db.commits++
	return nil
}

func (u *fakeUow) Rollback() error {
	if !u.inTx {
		return errors.New("no transaction to rollback")
	}
	u.db.mu.Lock()
	defer u.db.mu.Unlock()
	u.inTx = false
	u.db.rollbacks++
	return nil
}

func (u *fakeUow) PostRepository() contract.PostRepository {
	return &fakePostRepo{db: u.db}
}

func (u *fakeUow) AssetRecordRepository() contract.AssetRecordRepository {
	return &fakeAssetRecordRepo{db: u.db}
}

func (u *fakeUow) DocumentStore() contract.DocumentStore {
	return &fakeDocumentStore{db: u.db}
}

func (u *fakeUow) PageRepository() contract.PageRepository {
	return &fakePageRepo{db: u.db}
}

type fakePostRepo struct {
	db *fakeDB
}

func (r *fakePostRepo) Create(ctx context.Context, post *entity.Post) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, p := range r.db.posts {
		if p.Slug == post.Slug {
			return fmt.Errorf("duplicate slug %q", post.Slug)
		}
	}
	r.db.posts[post.Id] = *post
	return nil
}

// Update writes metadata only; the stored document is left as it is.
func (r *fakePostRepo) Update(ctx context.Context, post *entity.Post) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	stored, ok := r.db.posts[post.Id]
	if !ok {
		return nil
	}
	next := *post
	next.Content = stored.Content
	next.ContentErr = stored.ContentErr
	r.db.posts[post.Id] = next
	return nil
}

func (r *fakePostRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	delete(r.db.posts, id)
	return nil
}

func (r *fakePostRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Post, error) {
	posts := r.query(specs)
	if r.db.onFind != nil {
		r.db.onFind()
	}
	if len(posts) == 0 {
		return nil, nil
	}
	return posts[0], nil
}

func (r *fakePostRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Post, error) {
	return r.query(specs), nil
}

func (r *fakePostRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(r.query(specs))), nil
}

func (r *fakePostRepo) query(specs []specification.Specification) []*entity.Post {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	var out []*entity.Post
	for _, p := range r.db.posts {
		p := p
		if matchesAll(&p, specs) {
			out = append(out, &p)
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	limit, offset := -1, 0
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.OrderBy:
			if s.Desc {
				sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
			}
		case specification.Pagination:
			if s.Limit > 0 {
				limit = s.Limit
			}
			offset = s.Offset
		}
	}
	if offset > len(out) {
		offset = len(out)
	}
	out = out[offset:]
	if limit >= 0 && limit < len(out) {
		out = out[:limit]
	}
	return out
}

func matchesAll(p *entity.Post, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if p.Id != s.ID {
				return false
			}
		case specification.BySlug:
			if p.Slug != s.Slug {
				return false
			}
		case specification.ExcludeSlug:
			if s.Slug != "" && p.Slug == s.Slug {
				return false
			}
		case specification.Published:
			if !p.IsPublished {
				return false
			}
		case specification.ByCategoryID:
			if p.CategoryId == nil || *p.CategoryId != s.CategoryID {
				return false
			}
		case specification.PostTitleSearch:
			if !strings.Contains(strings.ToLower(p.Title), strings.ToLower(s.Query)) {
				return false
			}
		case specification.CreatedBefore:
			if !p.CreatedAt.Before(s.At) {
				return false
			}
		case specification.CreatedAfter:
			if !p.CreatedAt.After(s.At) {
				return false
			}
		}
	}
	return true
}

type fakeAssetRecordRepo struct {
	db *fakeDB
}

func (r *fakeAssetRecordRepo) CreateBatch(ctx context.Context, records []*entity.AssetRecord) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	r.db.records = append(r.db.records, records...)
	return nil
}

func (r *fakeAssetRecordRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.AssetRecord, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	return append([]*entity.AssetRecord(nil), r.db.records...), nil
}

type fakeDocumentStore struct {
	db *fakeDB
}

func (s *fakeDocumentStore) Load(ctx context.Context, id uuid.UUID) (block.Finalized, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	p, ok := s.db.posts[id]
	if !ok {
		return block.Finalized{}, errors.New("document not found")
	}
	return p.Content, nil
}

func (s *fakeDocumentStore) Save(ctx context.Context, id uuid.UUID, doc block.Finalized) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if s.db.saveDocErr != nil {
		return s.db.saveDocErr
	}
	p, ok := s.db.posts[id]
	if !ok {
		return errors.New("document not found")
	}
	p.Content = doc
	s.db.posts[id] = p
	return nil
}

type fakePageRepo struct {
	db *fakeDB
}

func (r *fakePageRepo) FindByKey(ctx context.Context, key string) (*entity.Page, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	p, ok := r.db.pages[key]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *fakePageRepo) Save(ctx context.Context, key string, doc block.Finalized) (*entity.Page, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if r.db.saveDocErr != nil {
		return nil, r.db.saveDocErr
	}
	p := entity.Page{Key: key, Content: doc, UpdatedAt: time.Now()}
	r.db.pages[key] = p
	return &p, nil
}

// fakeAssetStore hands out CDN URLs and can be told to fail for a file name.
type fakeAssetStore struct {
	mu      sync.Mutex
	calls   map[string]int
	failing map[string]bool
}

func newFakeAssetStore() *fakeAssetStore {
	return &fakeAssetStore{calls: map[string]int{}, failing: map[string]bool{}}
}

func (s *fakeAssetStore) RequestUploadTarget(ctx context.Context, name string) (asset.UploadTarget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls[name]++
	if s.failing[name] {
		return asset.UploadTarget{}, errors.New("store unavailable")
	}
	return asset.UploadTarget{UploadURL: "https://upload.test/" + name, PublicURL: "https://cdn.test/" + name}, nil
}

func (s *fakeAssetStore) PutBinary(ctx context.Context, uploadURL string, payload []byte) error {
	return nil
}

func (s *fakeAssetStore) setFailing(name string, failing bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failing[name] = failing
}

func (s *fakeAssetStore) count(name string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[name]
}

type fakePublisher struct {
	mu       sync.Mutex
	payloads [][]byte
}

func (p *fakePublisher) Publish(ctx context.Context, payload []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.payloads = append(p.payloads, payload)
	return nil
}

type fakeEventPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *fakeEventPublisher) Publish(ctx context.Context, evt events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, evt)
	return nil
}

func (p *fakeEventPublisher) last() events.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.events) == 0 {
		return nil
	}
	return p.events[len(p.events)-1]
}
