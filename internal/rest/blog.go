package rest

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/wakostech/blog-backend/domain"
	"github.com/wakostech/blog-backend/internal/rest/middleware"
	"github.com/wakostech/blog-backend/internal/rest/request"
	"github.com/wakostech/blog-backend/internal/rest/response"
	"github.com/wakostech/blog-backend/internal/sanitize"
)

// ResponseError represent the response error struct
type ResponseError struct {
	Message string `json:"message"`
}

// BlogHandler represent the httphandler for blogs
type BlogHandler struct {
	Service    domain.BlogUsecase
	Engagement domain.EngagementUsecase
}

const (
	DefaultPageLimit = 9
	PageLimitMax     = 50

	DefaultPopularLimit = 10
	PopularMax          = 30
)

func NewBlogHandler(svc domain.BlogUsecase, eng domain.EngagementUsecase) *BlogHandler {
	return &BlogHandler{
		Service:    svc,
		Engagement: eng,
	}
}

// Fetch will fetch a page of blogs, optionally filtered by category
func (h *BlogHandler) Fetch(c *gin.Context) {
	page, err := strconv.ParseInt(c.DefaultQuery("page", "1"), 10, 64)
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.ParseInt(c.DefaultQuery("limit", "9"), 10, 64)
	if err != nil || limit < 1 || limit > PageLimitMax {
		limit = DefaultPageLimit
	}
	category := domain.Category(c.Query("category"))

	ctx := c.Request.Context()
	blogs, total, err := h.Service.Fetch(ctx, page, limit, category)
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	res := response.BlogPage{
		Blogs: make([]response.Blog, len(blogs)),
		Total: total,
		Page:  page,
		Limit: limit,
	}
	for i := range blogs {
		res.Blogs[i] = response.NewBlogSummaryFromDomain(&blogs[i])
	}
	c.JSON(http.StatusOK, res)
}

// GetByID will get a blog by given id
func (h *BlogHandler) GetByID(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusNotFound, ResponseError{Message: domain.ErrNotFound.Error()})
		return
	}

	blog, err := h.Service.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, response.NewBlogFromDomain(&blog))
}

// FetchPopular returns the most engaged blogs
func (h *BlogHandler) FetchPopular(c *gin.Context) {
	limit, err := strconv.ParseInt(c.DefaultQuery("limit", "10"), 10, 64)
	if err != nil || limit < 1 || limit > PopularMax {
		limit = DefaultPopularLimit
		logrus.Error("Invalid param 'limit'")
	}

	blogs, err := h.Service.FetchPopular(c.Request.Context(), limit)
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	res := make([]response.Blog, len(blogs))
	for i := range blogs {
		res[i] = response.NewBlogSummaryFromDomain(&blogs[i])
	}
	c.JSON(http.StatusOK, res)
}

// FetchByUser lists the blogs of a given user
func (h *BlogHandler) FetchByUser(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusNotFound, ResponseError{Message: domain.ErrNotFound.Error()})
		return
	}

	blogs, err := h.Service.FetchByUser(c.Request.Context(), id)
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	res := make([]response.Blog, len(blogs))
	for i := range blogs {
		res[i] = response.NewBlogSummaryFromDomain(&blogs[i])
	}
	c.JSON(http.StatusOK, res)
}

// Store will store the blog by given request body
func (h *BlogHandler) Store(c *gin.Context) {
	var req request.Blog
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		return
	}

	clean, err := sanitize.Description(req.Description)
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: "description too short"})
		return
	}
	req.Description = clean

	blog := req.ToDomain()
	blog.User.ID = c.GetInt64(middleware.ContextUserKey)

	if err := h.Service.Store(c.Request.Context(), &blog); err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, response.NewBlogFromDomain(&blog))
}

// Update applies a partial update to an owned blog
func (h *BlogHandler) Update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusNotFound, ResponseError{Message: domain.ErrNotFound.Error()})
		return
	}

	var req request.BlogUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		return
	}

	if req.Description != "" {
		clean, err := sanitize.Description(req.Description)
		if err != nil {
			c.JSON(getStatusCode(err), ResponseError{Message: "description too short"})
			return
		}
		req.Description = clean
	}

	userID := c.GetInt64(middleware.ContextUserKey)
	blog, err := h.Service.Update(c.Request.Context(), id, userID, req.ToPatch())
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, response.NewBlogFromDomain(&blog))
}

// Delete will delete the blog by given param
func (h *BlogHandler) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusNotFound, ResponseError{Message: domain.ErrNotFound.Error()})
		return
	}

	userID := c.GetInt64(middleware.ContextUserKey)
	if err := h.Service.Delete(c.Request.Context(), id, userID); err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

// ToggleLike flips the caller's like on the blog
func (h *BlogHandler) ToggleLike(c *gin.Context) {
	h.toggle(c, h.Engagement.ToggleLike)
}

// ToggleFavorite flips the caller's favorite on the blog
func (h *BlogHandler) ToggleFavorite(c *gin.Context) {
	h.toggle(c, h.Engagement.ToggleFavorite)
}

func (h *BlogHandler) toggle(c *gin.Context, flip func(ctx context.Context, blogID, userID int64) (domain.EngagementState, error)) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusNotFound, ResponseError{Message: domain.ErrNotFound.Error()})
		return
	}

	userID := c.GetInt64(middleware.ContextUserKey)
	state, err := flip(c.Request.Context(), id, userID)
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, state)
}

// EngagementStatus reports whether the caller likes/favorites the blog
func (h *BlogHandler) EngagementStatus(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusNotFound, ResponseError{Message: domain.ErrNotFound.Error()})
		return
	}

	userID := c.GetInt64(middleware.ContextUserKey)
	liked, favorited, err := h.Engagement.Status(c.Request.Context(), id, userID)
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"liked": liked, "favorited": favorited})
}

// LikedBlogs lists the blogs the caller has liked
func (h *BlogHandler) LikedBlogs(c *gin.Context) {
	h.engagedBlogs(c, h.Engagement.LikedBlogs)
}

// FavoriteBlogs lists the blogs the caller has favorited
func (h *BlogHandler) FavoriteBlogs(c *gin.Context) {
	h.engagedBlogs(c, h.Engagement.FavoriteBlogs)
}

func (h *BlogHandler) engagedBlogs(c *gin.Context, fetch func(ctx context.Context, userID int64) ([]domain.Blog, error)) {
	userID := c.GetInt64(middleware.ContextUserKey)
	blogs, err := fetch(c.Request.Context(), userID)
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	res := make([]response.Blog, len(blogs))
	for i := range blogs {
		res[i] = response.NewBlogSummaryFromDomain(&blogs[i])
	}
	c.JSON(http.StatusOK, res)
}

func parseID(c *gin.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}

// getStatusCode maps domain errors onto HTTP status codes
func getStatusCode(err error) int {
	if err == nil {
		return http.StatusOK
	}

	logrus.Error(err)
	switch err {
	case domain.ErrBadParamInput:
		return http.StatusBadRequest
	case domain.ErrUnauthorized:
		return http.StatusUnauthorized
	case domain.ErrForbidden:
		return http.StatusForbidden
	case domain.ErrNotFound:
		return http.StatusNotFound
	case domain.ErrConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
