package handler

import (
	"errors"
	"net/http"

	"adventure-server/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func (h *GameHandler) startSession(c *gin.Context) {
	playerID, ok := h.playerID(c)
	if !ok {
		return
	}
	storyID, ok := h.uuidParam(c, "storyId")
	if !ok {
		return
	}

	res, err := h.service.StartOrResumeSession(c.Request.Context(), storyID, playerID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *GameHandler) navigate(c *gin.Context) {
	playerID, ok := h.playerID(c)
	if !ok {
		return
	}
	sessionID, ok := h.uuidParam(c, "sessionId")
	if !ok {
		return
	}
	var req navigateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "invalid request body: choiceId is required")
		return
	}
	choiceID, err := uuid.Parse(req.ChoiceID)
	if err != nil {
		h.badRequest(c, "invalid choiceId")
		return
	}

	res, err := h.service.Navigate(c.Request.Context(), sessionID, choiceID, playerID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *GameHandler) getPlayState(c *gin.Context) {
	playerID, ok := h.playerID(c)
	if !ok {
		return
	}
	sessionID, ok := h.uuidParam(c, "sessionId")
	if !ok {
		return
	}

	state, err := h.service.GetPlayState(c.Request.Context(), sessionID, playerID)
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			errorResponsesTotal.WithLabelValues("404", "session_not_found").Inc()
			c.AbortWithStatusJSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
			return
		}
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

func (h *GameHandler) collectItem(c *gin.Context) {
	playerID, ok := h.playerID(c)
	if !ok {
		return
	}
	sessionID, ok := h.uuidParam(c, "sessionId")
	if !ok {
		return
	}
	var req collectItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "invalid request body: item is required")
		return
	}

	session, err := h.service.CollectItem(c.Request.Context(), sessionID, playerID, req.Item)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

func (h *GameHandler) removeItem(c *gin.Context) {
	playerID, ok := h.playerID(c)
	if !ok {
		return
	}
	sessionID, ok := h.uuidParam(c, "sessionId")
	if !ok {
		return
	}

	session, err := h.service.RemoveItem(c.Request.Context(), sessionID, playerID, c.Param("item"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

func (h *GameHandler) abandonSession(c *gin.Context) {
	playerID, ok := h.playerID(c)
	if !ok {
		return
	}
	sessionID, ok := h.uuidParam(c, "sessionId")
	if !ok {
		return
	}

	session, err := h.service.AbandonSession(c.Request.Context(), sessionID, playerID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}
