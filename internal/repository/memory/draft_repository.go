package memory

import (
	"time"

	"blog-publishing-be/internal/entity"

	"github.com/patrickmn/go-cache"
)

// DraftRepository keeps open draft sessions in process memory. Sessions expire after
// ttl without access; an expired session drops its staged payloads with it.
type DraftRepository struct {
	cache *cache.Cache
	ttl   time.Duration
}

func NewDraftRepository(ttl time.Duration) *DraftRepository {
	return &DraftRepository{
		cache: cache.New(ttl, 10*time.Minute),
		ttl:   ttl,
	}
}

func (r *DraftRepository) Save(d *entity.Draft) {
	r.cache.Set(d.Id, d, cache.DefaultExpiration)
}

// Get returns the draft and extends its lifetime.
func (r *DraftRepository) Get(id string) (*entity.Draft, bool) {
	x, found := r.cache.Get(id)
	if !found {
		return nil, false
	}
	d := x.(*entity.Draft)
	r.cache.Set(id, d, cache.DefaultExpiration)
	return d, true
}

func (r *DraftRepository) Delete(id string) {
	r.cache.Delete(id)
}

func (r *DraftRepository) Count() int {
	return r.cache.ItemCount()
}
