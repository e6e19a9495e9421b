package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wakostech/blog-backend/domain"
	"github.com/wakostech/blog-backend/internal/rest/middleware"
	"github.com/wakostech/blog-backend/internal/rest/request"
	"github.com/wakostech/blog-backend/internal/rest/response"
)

// UserHandler represent the httphandler for users
type UserHandler struct {
	Service domain.UserUsecase
}

func NewUserHandler(svc domain.UserUsecase) *UserHandler {
	return &UserHandler{Service: svc}
}

// Register creates a new account
func (h *UserHandler) Register(c *gin.Context) {
	var req request.Register
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		return
	}

	u, err := h.Service.Register(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, response.NewUserFromDomain(&u))
}

// Login verifies credentials and returns a bearer token
func (h *UserHandler) Login(c *gin.Context) {
	var req request.Login
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		return
	}

	token, err := h.Service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

// Me returns the caller's own profile with preferences
func (h *UserHandler) Me(c *gin.Context) {
	userID := c.GetInt64(middleware.ContextUserKey)

	u, blogs, err := h.Service.Profile(c.Request.Context(), userID)
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, response.NewProfileFromDomain(&u, blogs, true))
}

// PublicProfile returns a user's public profile
func (h *UserHandler) PublicProfile(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusNotFound, ResponseError{Message: domain.ErrNotFound.Error()})
		return
	}

	u, blogs, err := h.Service.PublicProfile(c.Request.Context(), id)
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, response.NewProfileFromDomain(&u, blogs, false))
}

// UpdateProfile applies a partial profile/preferences update
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req request.ProfileUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		return
	}

	userID := c.GetInt64(middleware.ContextUserKey)
	u, err := h.Service.UpdateProfile(c.Request.Context(), userID, req.ToPatch())
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, response.NewProfileFromDomain(&u, nil, true))
}
