package handler

import (
	"errors"
	"net/http"
	"strconv"

	"adventure-server/internal/models"
	"adventure-server/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// handleServiceError maps engine errors to HTTP responses. Anything it does
// not recognise is logged and answered with a generic 500.
func (h *GameHandler) handleServiceError(c *gin.Context, err error) {
	var (
		status int
		kind   string
		resp   ErrorResponse
	)
	var missingErr *service.MissingKeywordsError

	switch {
	case errors.Is(err, models.ErrUnauthorized):
		status, kind = http.StatusUnauthorized, "unauthorized"
		resp.Error = "Unauthorized"
	case errors.Is(err, service.ErrStoryNotFound):
		status, kind = http.StatusNotFound, "story_not_found"
		resp.Error = err.Error()
	case errors.Is(err, service.ErrStoryForbidden):
		status, kind = http.StatusForbidden, "story_forbidden"
		resp.Error = err.Error()
	case errors.As(err, &missingErr):
		status, kind = http.StatusBadRequest, "missing_keywords"
		resp.Error = missingErr.Error()
		resp.MissingKeywords = missingErr.Missing
	case errors.Is(err, service.ErrSessionNotFound):
		status, kind = http.StatusBadRequest, "session_not_found"
		resp.Error = err.Error()
	case errors.Is(err, service.ErrStartSceneNotFound),
		errors.Is(err, service.ErrInvalidChoice),
		errors.Is(err, service.ErrDestinationNotFound),
		errors.Is(err, service.ErrMissingKeywords),
		errors.Is(err, service.ErrInvalidItem),
		errors.Is(err, service.ErrItemNotOffered):
		status, kind = http.StatusBadRequest, "validation"
		resp.Error = err.Error()
	case errors.Is(err, service.ErrPersistenceFailure):
		h.logger.Error("Persistence failure", zap.String("path", c.FullPath()), zap.Error(err))
		status, kind = http.StatusInternalServerError, "persistence"
		resp.Error = service.ErrPersistenceFailure.Error()
	default:
		h.logger.Error("Unhandled internal error", zap.String("path", c.FullPath()), zap.Error(err))
		status, kind = http.StatusInternalServerError, "internal"
		resp.Error = "Internal server error"
	}

	errorResponsesTotal.WithLabelValues(strconv.Itoa(status), kind).Inc()
	c.AbortWithStatusJSON(status, resp)
}

func (h *GameHandler) badRequest(c *gin.Context, msg string) {
	errorResponsesTotal.WithLabelValues(strconv.Itoa(http.StatusBadRequest), "bad_request").Inc()
	c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{Error: msg})
}
