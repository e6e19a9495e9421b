package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wakostech/blog-backend/domain"
	"github.com/wakostech/blog-backend/internal/rest/middleware"
	"github.com/wakostech/blog-backend/internal/rest/request"
	"github.com/wakostech/blog-backend/internal/rest/response"
	"github.com/wakostech/blog-backend/internal/sanitize"
)

// CommentHandler represent the httphandler for comments
type CommentHandler struct {
	Service domain.CommentUsecase
}

func NewCommentHandler(svc domain.CommentUsecase) *CommentHandler {
	return &CommentHandler{Service: svc}
}

// FetchByBlog returns the comment tree of a blog
func (h *CommentHandler) FetchByBlog(c *gin.Context) {
	blogID, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusNotFound, ResponseError{Message: domain.ErrNotFound.Error()})
		return
	}

	comments, err := h.Service.FetchByBlog(c.Request.Context(), blogID)
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	res := make([]*response.Comment, 0, len(comments))
	for _, cm := range comments {
		res = append(res, response.NewCommentFromDomain(cm))
	}
	c.JSON(http.StatusOK, res)
}

// Create stores a comment or reply on a blog
func (h *CommentHandler) Create(c *gin.Context) {
	blogID, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusNotFound, ResponseError{Message: domain.ErrNotFound.Error()})
		return
	}

	var req request.Comment
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		return
	}

	comment := req.ToDomain()
	comment.BlogID = blogID
	comment.UserID = c.GetInt64(middleware.ContextUserKey)
	comment.Content = sanitize.RichText(comment.Content)

	if err := h.Service.Create(c.Request.Context(), &comment); err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, response.NewSingleCommentFromDomain(&comment))
}

// Update replaces the content of an owned comment
func (h *CommentHandler) Update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusNotFound, ResponseError{Message: domain.ErrNotFound.Error()})
		return
	}

	var req request.CommentUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		return
	}

	userID := c.GetInt64(middleware.ContextUserKey)
	comment, err := h.Service.Update(c.Request.Context(), id, userID, sanitize.RichText(req.Content))
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, response.NewSingleCommentFromDomain(comment))
}

// Delete removes an owned comment, replies included
func (h *CommentHandler) Delete(c *gin.Context) {
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

// ToggleLike flips the caller's like on a comment
func (h *CommentHandler) ToggleLike(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusNotFound, ResponseError{Message: domain.ErrNotFound.Error()})
		return
	}

	userID := c.GetInt64(middleware.ContextUserKey)
	state, err := h.Service.ToggleLike(c.Request.Context(), id, userID)
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, state)
}
