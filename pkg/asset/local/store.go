package local

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"blog-publishing-be/pkg/asset"

	"github.com/google/uuid"
)

// ObjectRoute is the path the upload controller serves PUT requests on.
const ObjectRoute = "/api/upload/v1/object/"

// PublicRoute is the static prefix uploaded files are served from.
const PublicRoute = "/uploads/"

var (
	ErrInvalidKey = errors.New("invalid object key")

	unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)
	keyPattern  = regexp.MustCompile(`^[0-9a-f-]{36}_[A-Za-z0-9._-]+$`)
)

// Store keeps uploaded objects on the local disk and hands out URLs pointing back
// at this service.
type Store struct {
	dir        string
	uploadBase string
	publicBase string
}

func NewStore(dir, uploadBase, publicBase string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Store{
		dir:        dir,
		uploadBase: strings.TrimRight(uploadBase, "/"),
		publicBase: strings.TrimRight(publicBase, "/"),
	}, nil
}

func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) RequestUploadTarget(ctx context.Context, name string) (asset.UploadTarget, error) {
	if err := ctx.Err(); err != nil {
		return asset.UploadTarget{}, err
	}
	key := NewKey(name)
	return asset.UploadTarget{
		UploadURL: s.uploadBase + ObjectRoute + key,
		PublicURL: s.publicBase + PublicRoute + key,
	}, nil
}

func (s *Store) PutBinary(ctx context.Context, uploadURL string, payload []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	u, err := url.Parse(uploadURL)
	if err != nil {
		return fmt.Errorf("parse upload url: %w", err)
	}
	return s.WriteObject(path.Base(u.Path), payload)
}

// WriteObject stores payload under key. Keys are only those issued by RequestUploadTarget.
func (s *Store) WriteObject(key string, payload []byte) error {
	if !ValidKey(key) {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	if err := os.WriteFile(filepath.Join(s.dir, key), payload, 0o644); err != nil {
		return fmt.Errorf("write object: %w", err)
	}
	return nil
}

// NewKey builds a collision-free object key that keeps a readable form of name.
func NewKey(name string) string {
	return uuid.NewString() + "_" + SanitizeName(name)
}

func SanitizeName(name string) string {
	base := path.Base(strings.ReplaceAll(name, "\\", "/"))
	clean := strings.Trim(unsafeChars.ReplaceAllString(base, "_"), "._")
	if clean == "" {
		return "file"
	}
	return clean
}

func ValidKey(key string) bool {
	return keyPattern.MatchString(key) && !strings.Contains(key, "..")
}
