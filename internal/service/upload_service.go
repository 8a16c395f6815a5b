package service

import (
	"context"
	"errors"
	"fmt"

	"blog-publishing-be/internal/dto"
	"blog-publishing-be/internal/pkg/logger"
	"blog-publishing-be/internal/pkg/serverutils"
	"blog-publishing-be/pkg/asset"
	"blog-publishing-be/pkg/asset/local"
)

const uploadModule = "UploadService"

// IUploadService is the asset store protocol served over HTTP, for editors that
// upload directly instead of staging into a draft.
type IUploadService interface {
	RequestUploadURL(ctx context.Context, req *dto.UploadUrlRequest) (*dto.UploadUrlResponse, error)
	PutObject(ctx context.Context, key string, payload []byte) error
}

type uploadService struct {
	store   asset.Store
	objects *local.Store
	logger  logger.ILogger
}

// NewUploadService takes the disk store separately; it is nil when assets go to a
// remote store, and object uploads are then refused.
func NewUploadService(store asset.Store, objects *local.Store, log logger.ILogger) IUploadService {
	return &uploadService{
		store:   store,
		objects: objects,
		logger:  log,
	}
}

func (s *uploadService) RequestUploadURL(ctx context.Context, req *dto.UploadUrlRequest) (*dto.UploadUrlResponse, error) {
	target, err := s.store.RequestUploadTarget(ctx, req.Filename)
	if err != nil {
		s.logger.Error(uploadModule, "Failed to issue upload target", map[string]interface{}{"filename": req.Filename, "error": err.Error()})
		return nil, err
	}
	return &dto.UploadUrlResponse{UploadUrl: target.UploadURL, ImageUrl: target.PublicURL}, nil
}

func (s *uploadService) PutObject(ctx context.Context, key string, payload []byte) error {
	if s.objects == nil {
		return ErrUploadUnsupported
	}
	if len(payload) == 0 {
		return ErrEmptyFile
	}
	if err := s.objects.WriteObject(key, payload); err != nil {
		if errors.Is(err, local.ErrInvalidKey) {
			return fmt.Errorf("%w: %v", serverutils.ErrBadRequest, err)
		}
		return err
	}
	s.logger.Debug(uploadModule, "Object stored", map[string]interface{}{"key": key, "size": len(payload)})
	return nil
}
