package asset

import (
	"context"
	"fmt"
)

// UploadTarget is where a payload is sent and where readers will find it afterwards.
type UploadTarget struct {
	UploadURL string `json:"uploadUrl"`
	PublicURL string `json:"imageUrl"`
}

// Store is the external asset store. Implementations apply their own per-request timeout.
type Store interface {
	RequestUploadTarget(ctx context.Context, name string) (UploadTarget, error)
	PutBinary(ctx context.Context, uploadURL string, payload []byte) error
}

// Staged is a payload waiting for upload.
type Staged struct {
	Name    string
	Payload []byte
}

// StagedSet maps temporary ids to staged payloads.
type StagedSet map[string]Staged

// Clone returns a shallow copy; payload bytes are shared and never written to.
func (s StagedSet) Clone() StagedSet {
	out := make(StagedSet, len(s))
	for id, staged := range s {
		out[id] = staged
	}
	return out
}

// Upload sends one payload through the two-step store protocol and returns its public URL.
func Upload(ctx context.Context, store Store, name string, payload []byte) (string, error) {
	target, err := store.RequestUploadTarget(ctx, name)
	if err != nil {
		return "", fmt.Errorf("request upload target: %w", err)
	}
	if err := store.PutBinary(ctx, target.UploadURL, payload); err != nil {
		return "", fmt.Errorf("put binary: %w", err)
	}
	return target.PublicURL, nil
}
