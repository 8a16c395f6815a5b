package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"blog-publishing-be/internal/dto"
	"blog-publishing-be/internal/service"
	"blog-publishing-be/pkg/events"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPublicPostService struct {
	lastList   *dto.ListPostsRequest
	lastRandom *dto.RandomPostsRequest
}

func (s *stubPublicPostService) List(ctx context.Context, req *dto.ListPostsRequest) (*dto.PostListResponse, error) {
	s.lastList = req
	return &dto.PostListResponse{Page: 1, Limit: 10}, nil
}

func (s *stubPublicPostService) Random(ctx context.Context, req *dto.RandomPostsRequest) ([]*dto.PostSummaryResponse, error) {
	s.lastRandom = req
	return []*dto.PostSummaryResponse{}, nil
}

func (s *stubPublicPostService) ShowBySlug(ctx context.Context, slug string) (*dto.PublicPostResponse, error) {
	if slug != "hello" {
		return nil, service.ErrPostNotFound
	}
	return &dto.PublicPostResponse{Html: "<p>hi</p>"}, nil
}

func (s *stubPublicPostService) HandleEvent(ctx context.Context, evt events.Event) error {
	return nil
}

func TestPublicPostControllerShow(t *testing.T) {
	app := newTestApp(NewPublicPostController(&stubPublicPostService{}).RegisterRoutes)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/public/post/v1/hello", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	var post dto.PublicPostResponse
	require.NoError(t, json.Unmarshal(decodeBody(t, resp).Data, &post))
	assert.Equal(t, "<p>hi</p>", post.Html)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/public/post/v1/missing", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestPublicPostControllerListByCategory(t *testing.T) {
	svc := &stubPublicPostService{}
	app := newTestApp(NewPublicPostController(svc).RegisterRoutes)
	category := uuid.New()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/public/post/v1?page=2&limit=5&category_id="+category.String(), nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.NotNil(t, svc.lastList)
	assert.Equal(t, 2, svc.lastList.Page)
	assert.Equal(t, 5, svc.lastList.Limit)
	assert.Equal(t, &category, svc.lastList.CategoryId)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/public/post/v1?category_id=nope", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestPublicPostControllerRandom(t *testing.T) {
	svc := &stubPublicPostService{}
	app := newTestApp(NewPublicPostController(svc).RegisterRoutes)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/public/post/v1/random", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	category := uuid.New()
	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/public/post/v1/random?exclude=hello&category_id="+category.String(), nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "hello", svc.lastRandom.ExcludeSlug)
	assert.Equal(t, category, svc.lastRandom.CategoryId)
}
