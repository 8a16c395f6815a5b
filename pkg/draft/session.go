package draft

import (
	"context"
	"fmt"
	"sync"

	"blog-publishing-be/pkg/asset"
	"blog-publishing-be/pkg/block"
)

// PersistFunc stores a finalized document. It runs once per successful commit.
type PersistFunc func(ctx context.Context, doc block.Finalized) error

// Session is one editing session over a draft document. It owns the staged payloads
// and the temporary-id to URL cache built up by earlier commit attempts.
//
// A Session is safe for concurrent use. While a commit runs, Stage and SetBlocks
// fail with ErrCommitInProgress; only Discard is accepted.
type Session struct {
	id       string
	resolver *asset.Resolver

	mu         sync.Mutex
	draft      block.Draft
	staged     asset.StagedSet
	resolved   map[string]string
	uploads    []asset.Uploaded
	seq        int
	committing bool
	closed     bool
	discarded  bool
}

// New opens an empty session.
func New(id string, resolver *asset.Resolver) *Session {
	return &Session{
		id:       id,
		resolver: resolver,
		staged:   asset.StagedSet{},
		resolved: map[string]string{},
	}
}

// Open starts a session editing an existing document.
func Open(id string, resolver *asset.Resolver, doc block.Finalized) *Session {
	s := New(id, resolver)
	s.draft = doc.Reopen()
	return s
}

func (s *Session) ID() string {
	return s.id
}

// Stage records payload under a fresh temporary id, unique within this session.
func (s *Session) Stage(payload []byte, name string) (string, error) {
	if len(payload) == 0 {
		return "", ErrEmptyPayload
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.editable(); err != nil {
		return "", err
	}
	s.seq++
	id := fmt.Sprintf("local-%d", s.seq)
	s.staged[id] = asset.Staged{Name: name, Payload: payload}
	return id, nil
}

// SetBlocks replaces the working draft. An invalid draft is rejected and the
// previous one kept.
func (s *Session) SetBlocks(d block.Draft) error {
	if err := d.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.editable(); err != nil {
		return err
	}
	s.draft = d
	return nil
}

func (s *Session) Draft() block.Draft {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft
}

// Staged returns a copy of the staged payloads.
func (s *Session) Staged() asset.StagedSet {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.staged.Clone()
}

// Resolved returns a copy of the uploads already completed in this session.
func (s *Session) Resolved() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]string, len(s.resolved))
	for id, url := range s.resolved {
		out[id] = url
	}
	return out
}

// Uploads lists every asset sent to the store by this session.
func (s *Session) Uploads() []asset.Uploaded {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]asset.Uploaded(nil), s.uploads...)
}

func (s *Session) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed || s.discarded
}

// Discard drops staged payloads and ends the session. An in-flight commit
// finishes its uploads but does not persist.
func (s *Session) Discard() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.discarded = true
	s.staged = asset.StagedSet{}
}

// Commit uploads referenced payloads, finalizes the draft and hands it to persist.
//
// On an upload failure the session is left as it was, except that successful
// uploads are remembered so a retry does not send them again. On success the staged
// payloads are released and the session is closed.
func (s *Session) Commit(ctx context.Context, persist PersistFunc) (block.Finalized, error) {
	s.mu.Lock()
	if err := s.usable(); err != nil {
		s.mu.Unlock()
		return block.Finalized{}, err
	}
	if s.committing {
		s.mu.Unlock()
		return block.Finalized{}, ErrCommitInProgress
	}
	s.committing = true
	d := s.draft
	blocks := d.Blocks()
	staged := asset.Prune(s.staged, blocks)
	cache := make(map[string]string, len(s.resolved))
	for id, url := range s.resolved {
		cache[id] = url
	}
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.committing = false
		s.mu.Unlock()
	}()

	if err := d.Validate(); err != nil {
		return block.Finalized{}, err
	}

	res, err := s.resolver.Resolve(ctx, blocks, staged, cache)
	if err != nil {
		return block.Finalized{}, err
	}

	s.mu.Lock()
	if s.discarded {
		s.mu.Unlock()
		return block.Finalized{}, ErrSessionDiscarded
	}
	for id, url := range res.Resolved {
		s.resolved[id] = url
	}
	s.uploads = append(s.uploads, res.Uploaded...)
	s.mu.Unlock()

	if len(res.Errors) > 0 {
		return block.Finalized{}, &CommitError{UploadErrors: res.Errors}
	}

	doc, err := block.Finalize(res.Blocks)
	if err != nil {
		return block.Finalized{}, err
	}

	if persist != nil {
		if err := persist(ctx, doc); err != nil {
			return block.Finalized{}, &PersistError{Err: err}
		}
	}

	s.mu.Lock()
	s.staged = asset.StagedSet{}
	s.draft = doc.Reopen()
	s.closed = true
	s.mu.Unlock()
	return doc, nil
}

func (s *Session) editable() error {
	if err := s.usable(); err != nil {
		return err
	}
	if s.committing {
		return ErrCommitInProgress
	}
	return nil
}

func (s *Session) usable() error {
	if s.discarded {
		return ErrSessionDiscarded
	}
	if s.closed {
		return ErrSessionClosed
	}
	return nil
}
