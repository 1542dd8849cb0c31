package handler

import (
	"net/http"

	"adventure-server/internal/models"
	"adventure-server/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// GameHandler exposes the traversal engine over HTTP.
type GameHandler struct {
	service service.GameService
	logger  *zap.Logger
}

func NewGameHandler(s service.GameService, logger *zap.Logger) *GameHandler {
	return &GameHandler{
		service: s,
		logger:  logger.Named("GameHandler"),
	}
}

// RegisterRoutes mounts the gameplay API. Every route requires authMiddleware;
// rateLimit, when not nil, guards the routes that write.
func (h *GameHandler) RegisterRoutes(router gin.IRouter, authMiddleware gin.HandlerFunc, rateLimit gin.HandlerFunc) {
	writes := []gin.HandlerFunc{}
	if rateLimit != nil {
		writes = append(writes, rateLimit)
	}
	with := func(handler gin.HandlerFunc) []gin.HandlerFunc {
		return append(append([]gin.HandlerFunc{}, writes...), handler)
	}

	stories := router.Group("/stories", authMiddleware)
	{
		stories.POST("/:storyId/start", with(h.startSession)...)
	}

	sessions := router.Group("/sessions", authMiddleware)
	{
		sessions.GET("/:sessionId", h.getPlayState)
		sessions.POST("/:sessionId/navigate", with(h.navigate)...)
		sessions.POST("/:sessionId/items", with(h.collectItem)...)
		sessions.DELETE("/:sessionId/items/:item", with(h.removeItem)...)
		sessions.POST("/:sessionId/abandon", with(h.abandonSession)...)
	}
}

// HealthCheck answers liveness probes.
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// playerID reads the authenticated user placed on the request context by the
// auth middleware.
func (h *GameHandler) playerID(c *gin.Context) (uuid.UUID, bool) {
	id, ok := models.GetUserIDFromContext(c.Request.Context())
	if !ok || id == uuid.Nil {
		h.handleServiceError(c, models.ErrUnauthorized)
		return uuid.Nil, false
	}
	return id, true
}

func (h *GameHandler) uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		h.badRequest(c, "invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}
