// internal/server/handlers.go
package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "mergington-activities/internal/common/errors"
	"mergington-activities/internal/common/logger"
	"mergington-activities/internal/models"
)

// DirectoryService is the part of the directory the HTTP layer needs.
type DirectoryService interface {
	ListActivities(ctx context.Context) models.Activities
	Signup(ctx context.Context, activity, email string) (*models.MessageResponse, error)
	Unregister(ctx context.Context, activity, email string) (*models.MessageResponse, error)
}

// Handler serves the activity endpoints.
type Handler struct {
	svc    DirectoryService
	errors *apperrors.ErrorHandler
	logger logger.Logger
}

func NewHandler(svc DirectoryService, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"component": "http"})
	return &Handler{
		svc:    svc,
		errors: apperrors.NewErrorHandler(log),
		logger: log,
	}
}

// Root sends browsers to the static frontend.
func (h *Handler) Root(c *gin.Context) {
	c.Redirect(http.StatusTemporaryRedirect, "/static/index.html")
}

// ListActivities handles GET /activities.
func (h *Handler) ListActivities(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.ListActivities(c.Request.Context()))
}

// Signup handles POST /activities/:name/signup?email=.
func (h *Handler) Signup(c *gin.Context) {
	email, ok := c.GetQuery("email")
	if !ok {
		h.fail(c, apperrors.NewMissingParameterError("email"))
		return
	}

	resp, err := h.svc.Signup(c.Request.Context(), c.Param("name"), email)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Unregister handles DELETE /activities/:name/unregister?email=.
func (h *Handler) Unregister(c *gin.Context) {
	email, ok := c.GetQuery("email")
	if !ok {
		h.fail(c, apperrors.NewMissingParameterError("email"))
		return
	}

	resp, err := h.svc.Unregister(c.Request.Context(), c.Param("name"), email)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) fail(c *gin.Context, err error) {
	status, body := h.errors.Handle(err)
	c.AbortWithStatusJSON(status, body)
}
