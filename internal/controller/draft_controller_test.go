package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"blog-publishing-be/internal/dto"
	"blog-publishing-be/internal/pkg/serverutils"
	"blog-publishing-be/internal/service"
	"blog-publishing-be/pkg/asset"
	"blog-publishing-be/pkg/block"
	"blog-publishing-be/pkg/draft"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubDraftService struct {
	staged    []byte
	stageName string
	blocks    block.Draft
	commitErr error
}

func (s *stubDraftService) Open(ctx context.Context, req *dto.OpenDraftRequest) (*dto.DraftResponse, error) {
	return &dto.DraftResponse{Id: "d1", PostId: req.PostId}, nil
}

func (s *stubDraftService) Show(ctx context.Context, id string) (*dto.DraftResponse, error) {
	if id != "d1" {
		return nil, service.ErrDraftNotFound
	}
	return &dto.DraftResponse{Id: id}, nil
}

func (s *stubDraftService) Stage(ctx context.Context, id string, name string, payload []byte) (*dto.StageAssetResponse, error) {
	s.staged = payload
	s.stageName = name
	return &dto.StageAssetResponse{TemporaryId: "local-1", Name: name}, nil
}

func (s *stubDraftService) SetBlocks(ctx context.Context, id string, doc block.Draft) (*dto.DraftResponse, error) {
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	s.blocks = doc
	return &dto.DraftResponse{Id: id}, nil
}

func (s *stubDraftService) Commit(ctx context.Context, id string, req *dto.CommitDraftRequest) (*dto.CommitDraftResponse, error) {
	if s.commitErr != nil {
		return nil, s.commitErr
	}
	return &dto.CommitDraftResponse{PostId: uuid.New(), Slug: "hello"}, nil
}

func (s *stubDraftService) Discard(ctx context.Context, id string) error {
	return nil
}

func passThrough(ctx *fiber.Ctx) error {
	return ctx.Next()
}

func newTestApp(register func(r fiber.Router)) *fiber.App {
	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware())
	register(app.Group("/api"))
	return app
}

func decodeBody(t *testing.T, resp *http.Response) serverutils.BaseResponse[json.RawMessage] {
	t.Helper()
	defer resp.Body.Close()
	var body serverutils.BaseResponse[json.RawMessage]
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &body), string(data))
	return body
}

func TestDraftControllerStage(t *testing.T) {
	svc := &stubDraftService{}
	app := newTestApp(NewDraftController(svc, passThrough).RegisterRoutes)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", "cat.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("meow"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/draft/v1/d1/assets", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Equal(t, "meow", string(svc.staged))
	assert.Equal(t, "cat.png", svc.stageName)
	assert.JSONEq(t, `{"temporary_id":"local-1","name":"cat.png"}`, string(decodeBody(t, resp).Data))
}

func TestDraftControllerStageWithoutFile(t *testing.T) {
	app := newTestApp(NewDraftController(&stubDraftService{}, passThrough).RegisterRoutes)

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/api/draft/v1/d1/assets", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestDraftControllerSetBlocks(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		status int
	}{
		{
			name:   "valid document",
			body:   `{"blocks":[{"type":"paragraph","data":{"text":"hi"}},{"type":"image","data":{"file":{"tempId":"local-1","name":"cat.png"}}}]}`,
			status: fiber.StatusOK,
		},
		{
			name:   "unknown block type",
			body:   `{"blocks":[{"type":"warning","data":{}}]}`,
			status: fiber.StatusBadRequest,
		},
		{
			name:   "malformed json",
			body:   `{"blocks":[`,
			status: fiber.StatusBadRequest,
		},
		{
			name:   "heading out of range",
			body:   `{"blocks":[{"type":"header","data":{"text":"x","level":6}}]}`,
			status: fiber.StatusUnprocessableEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubDraftService{}
			app := newTestApp(NewDraftController(svc, passThrough).RegisterRoutes)

			req := httptest.NewRequest(http.MethodPut, "/api/draft/v1/d1/blocks", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}

func TestDraftControllerCommitErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		body   string
		status int
	}{
		{
			name:   "missing title",
			body:   `{}`,
			status: fiber.StatusBadRequest,
		},
		{
			name: "upload failure",
			err: &draft.CommitError{UploadErrors: []asset.UploadError{
				{TemporaryID: "local-2", Cause: assert.AnError},
			}},
			body:   `{"title":"Hello"}`,
			status: fiber.StatusBadGateway,
		},
		{
			name:   "dangling reference",
			err:    &asset.DanglingReferenceError{TemporaryID: "local-9"},
			body:   `{"title":"Hello"}`,
			status: fiber.StatusConflict,
		},
		{
			name:   "slug taken",
			err:    service.ErrSlugTaken,
			body:   `{"title":"Hello"}`,
			status: fiber.StatusConflict,
		},
		{
			name:   "draft gone",
			err:    service.ErrDraftNotFound,
			body:   `{"title":"Hello"}`,
			status: fiber.StatusNotFound,
		},
		{
			name:   "committed",
			body:   `{"title":"Hello"}`,
			status: fiber.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(NewDraftController(&stubDraftService{commitErr: tt.err}, passThrough).RegisterRoutes)

			req := httptest.NewRequest(http.MethodPost, "/api/draft/v1/d1/commit", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}

func TestDraftControllerCommitReportsFailedUploads(t *testing.T) {
	svc := &stubDraftService{commitErr: &draft.CommitError{UploadErrors: []asset.UploadError{
		{TemporaryID: "local-2", Cause: assert.AnError},
	}}}
	app := newTestApp(NewDraftController(svc, passThrough).RegisterRoutes)

	req := httptest.NewRequest(http.MethodPost, "/api/draft/v1/d1/commit", bytes.NewBufferString(`{"title":"Hello"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)

	var body struct {
		Success bool `json:"success"`
		Errors  []struct {
			TemporaryId string `json:"temporary_id"`
		} `json:"errors"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.False(t, body.Success)
	require.Len(t, body.Errors, 1)
	assert.Equal(t, "local-2", body.Errors[0].TemporaryId)
}

func TestDraftControllerShowMissing(t *testing.T) {
	app := newTestApp(NewDraftController(&stubDraftService{}, passThrough).RegisterRoutes)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/draft/v1/nope", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestDraftRoutesRequireToken(t *testing.T) {
	app := newTestApp(NewDraftController(&stubDraftService{}, serverutils.NewJwtMiddleware("secret")).RegisterRoutes)

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/api/draft/v1", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
