package rest_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-faker/faker/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wakostech/blog-backend/domain"
	"github.com/wakostech/blog-backend/internal/rest"
	"github.com/wakostech/blog-backend/internal/rest/middleware"
)

type stubBlogUsecase struct {
	domain.BlogUsecase

	getByID func(ctx context.Context, id int64) (domain.Blog, error)
	update  func(ctx context.Context, id, userID int64, patch domain.BlogPatch) (domain.Blog, error)
	delete  func(ctx context.Context, id, userID int64) error
}

func (s *stubBlogUsecase) GetByID(ctx context.Context, id int64) (domain.Blog, error) {
	return s.getByID(ctx, id)
}

func (s *stubBlogUsecase) Update(ctx context.Context, id, userID int64, patch domain.BlogPatch) (domain.Blog, error) {
	return s.update(ctx, id, userID, patch)
}

func (s *stubBlogUsecase) Delete(ctx context.Context, id, userID int64) error {
	return s.delete(ctx, id, userID)
}

type stubEngagement struct {
	domain.EngagementUsecase

	toggleLike func(ctx context.Context, blogID, userID int64) (domain.EngagementState, error)
}

func (s *stubEngagement) ToggleLike(ctx context.Context, blogID, userID int64) (domain.EngagementState, error) {
	return s.toggleLike(ctx, blogID, userID)
}

func (s *stubEngagement) ToggleFavorite(ctx context.Context, blogID, userID int64) (domain.EngagementState, error) {
	return s.toggleLike(ctx, blogID, userID)
}

func fixtureBlog(id int64) domain.Blog {
	return domain.Blog{
		ID:          id,
		Title:       faker.Sentence(),
		Description: faker.Paragraph(),
		Image:       "/uploads/cover.png",
		User:        domain.User{ID: 7, Username: faker.Username()},
		Category:    domain.CategoryTechnology,
		Slug:        "fixture-blog",
		ReadingTime: 2,
	}
}

func asUser(userID int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextUserKey, userID)
		c.Next()
	}
}

func TestGetByIDReturnsBlog(t *testing.T) {
	gin.SetMode(gin.TestMode)

	want := fixtureBlog(12)
	h := rest.NewBlogHandler(&stubBlogUsecase{
		getByID: func(_ context.Context, id int64) (domain.Blog, error) {
			require.Equal(t, int64(12), id)
			return want, nil
		},
	}, &stubEngagement{})

	r := gin.New()
	r.GET("/blogs/:id", h.GetByID)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/blogs/12", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, want.Title, body["title"])
	assert.Equal(t, "fixture-blog", body["slug"])
}

func TestGetByIDNotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := rest.NewBlogHandler(&stubBlogUsecase{
		getByID: func(context.Context, int64) (domain.Blog, error) {
			return domain.Blog{}, domain.ErrNotFound
		},
	}, &stubEngagement{})

	r := gin.New()
	r.GET("/blogs/:id", h.GetByID)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/blogs/999", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetByIDBadParam(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := rest.NewBlogHandler(&stubBlogUsecase{}, &stubEngagement{})

	r := gin.New()
	r.GET("/blogs/:id", h.GetByID)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/blogs/abc", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateMapsForbidden(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := rest.NewBlogHandler(&stubBlogUsecase{
		update: func(_ context.Context, id, userID int64, _ domain.BlogPatch) (domain.Blog, error) {
			assert.Equal(t, int64(5), id)
			assert.Equal(t, int64(99), userID)
			return domain.Blog{}, domain.ErrForbidden
		},
	}, &stubEngagement{})

	r := gin.New()
	r.PUT("/blogs/:id", asUser(99), h.Update)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/blogs/5", strings.NewReader(`{"title":"New Title"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestDeleteNoContent(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var gotID, gotUser int64
	h := rest.NewBlogHandler(&stubBlogUsecase{
		delete: func(_ context.Context, id, userID int64) error {
			gotID, gotUser = id, userID
			return nil
		},
	}, &stubEngagement{})

	r := gin.New()
	r.DELETE("/blogs/:id", asUser(7), h.Delete)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/blogs/5", nil))

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, int64(5), gotID)
	assert.Equal(t, int64(7), gotUser)
}

func TestToggleLikeReturnsState(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := rest.NewBlogHandler(&stubBlogUsecase{}, &stubEngagement{
		toggleLike: func(_ context.Context, blogID, userID int64) (domain.EngagementState, error) {
			assert.Equal(t, int64(3), blogID)
			assert.Equal(t, int64(7), userID)
			return domain.EngagementState{Count: 4, Active: true}, nil
		},
	})

	r := gin.New()
	r.POST("/blogs/:id/like", asUser(7), h.ToggleLike)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/blogs/3/like", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var state domain.EngagementState
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &state))
	assert.Equal(t, int64(4), state.Count)
	assert.True(t, state.Active)
}
