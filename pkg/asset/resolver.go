package asset

import (
	"context"
	"sort"
	"sync"

	"blog-publishing-be/pkg/block"

	"golang.org/x/sync/errgroup"
)

const DefaultConcurrency = 4

// Uploaded records one asset this resolver sent to the store.
type Uploaded struct {
	TemporaryID string
	Name        string
	URL         string
	Size        int
}

// Result is the outcome of one Resolve call.
//
// Blocks is the full input sequence with every resolvable image rewritten to a
// RemoteAsset; blocks whose asset failed are returned untouched. Resolved holds
// every temporary id that now has a URL (cache hits included) and Errors names
// each failed id once, sorted by id.
type Result struct {
	Blocks   []block.Block
	Resolved map[string]string
	Uploaded []Uploaded
	Errors   []UploadError
}

// Resolver turns local asset references into remote ones.
type Resolver struct {
	store       Store
	concurrency int
}

type Option func(*Resolver)

// WithConcurrency bounds the number of uploads in flight.
func WithConcurrency(n int) Option {
	return func(r *Resolver) {
		if n > 0 {
			r.concurrency = n
		}
	}
}

func NewResolver(store Store, opts ...Option) *Resolver {
	r := &Resolver{store: store, concurrency: DefaultConcurrency}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Store returns the asset store uploads go to.
func (r *Resolver) Store() Store {
	return r.store
}

// Resolve uploads each distinct temporary id referenced by blocks at most once and
// rewrites the references. Ids already present in cache are not uploaded again, and
// staged entries nobody references are ignored. Neither staged nor cache is modified.
// The call returns after every attempted upload has settled.
func (r *Resolver) Resolve(ctx context.Context, blocks []block.Block, staged StagedSet, cache map[string]string) (Result, error) {
	refs := block.LocalRefs(blocks)

	resolved := make(map[string]string, len(refs))
	var pending []string
	for _, ref := range refs {
		if url, ok := cache[ref.TemporaryID]; ok {
			resolved[ref.TemporaryID] = url
			continue
		}
		if _, ok := staged[ref.TemporaryID]; !ok {
			return Result{}, &DanglingReferenceError{TemporaryID: ref.TemporaryID}
		}
		pending = append(pending, ref.TemporaryID)
	}

	var (
		mu       sync.Mutex
		uploaded []Uploaded
		failed   []UploadError
	)
	g := new(errgroup.Group)
	g.SetLimit(r.concurrency)
	for _, id := range pending {
		item := staged[id]
		g.Go(func() error {
			url, err := Upload(ctx, r.store, item.Name, item.Payload)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failed = append(failed, UploadError{TemporaryID: id, Cause: err})
				return nil
			}
			resolved[id] = url
			uploaded = append(uploaded, Uploaded{TemporaryID: id, Name: item.Name, URL: url, Size: len(item.Payload)})
			return nil
		})
	}
	// Upload failures are collected above, never returned through the group.
	_ = g.Wait()

	sort.Slice(failed, func(i, j int) bool { return failed[i].TemporaryID < failed[j].TemporaryID })
	sort.Slice(uploaded, func(i, j int) bool { return uploaded[i].TemporaryID < uploaded[j].TemporaryID })

	return Result{
		Blocks:   Rewrite(blocks, resolved),
		Resolved: resolved,
		Uploaded: uploaded,
		Errors:   failed,
	}, nil
}

// Rewrite replaces local image references found in mapping with remote ones.
// The output depends only on blocks and mapping.
func Rewrite(blocks []block.Block, mapping map[string]string) []block.Block {
	out := make([]block.Block, len(blocks))
	for i, b := range blocks {
		out[i] = b
		img, ok := b.Body.(block.Image)
		if !ok {
			continue
		}
		local, ok := img.Asset.(block.LocalAsset)
		if !ok {
			continue
		}
		if url, ok := mapping[local.TemporaryID]; ok {
			img.Asset = block.RemoteAsset{URL: url}
			out[i] = b.WithBody(img)
		}
	}
	return out
}

// Prune keeps only the staged entries some block references.
func Prune(staged StagedSet, blocks []block.Block) StagedSet {
	out := make(StagedSet)
	for _, ref := range block.LocalRefs(blocks) {
		if item, ok := staged[ref.TemporaryID]; ok {
			out[ref.TemporaryID] = item
		}
	}
	return out
}
