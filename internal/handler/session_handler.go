package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vidstreamhq/vidstream/internal/model"
	"github.com/vidstreamhq/vidstream/internal/service"
)

// SessionHandler handles session lifecycle endpoints
type SessionHandler struct {
	sessionService *service.SessionService
}

func NewSessionHandler(sessionService *service.SessionService) *SessionHandler {
	return &SessionHandler{sessionService: sessionService}
}

// CreateSession godoc
// @Summary Create a session on a device
// @Tags Sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body model.CreateSessionRequest true "Create request"
// @Success 201 {object} model.Session
// @Failure 400 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /sessions [post]
func (h *SessionHandler) CreateSession(c *gin.Context) {
	var req model.CreateSessionRequest
	if !bindJSON(c, &req) {
		return
	}

	session, err := h.sessionService.CreateSession(req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, session)
}

// GetSession godoc
// @Summary Get a session by id
// @Tags Sessions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session id"
// @Success 200 {object} model.Session
// @Failure 404 {object} model.ErrorResponse
// @Router /sessions/{id} [get]
func (h *SessionHandler) GetSession(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	session, err := h.sessionService.GetSession(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, session)
}

// GetSessionByToken godoc
// @Summary Get a session by token
// @Tags Sessions
// @Produce json
// @Security BearerAuth
// @Param token query string true "Session token"
// @Success 200 {object} model.Session
// @Failure 404 {object} model.ErrorResponse
// @Router /sessions/by-token [get]
func (h *SessionHandler) GetSessionByToken(c *gin.Context) {
	sessionToken := c.Query("token")
	if sessionToken == "" {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "token query parameter required"})
		return
	}

	session, err := h.sessionService.GetSessionByToken(sessionToken)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, session)
}

// ListDeviceSessions godoc
// @Summary List all sessions for a device
// @Tags Sessions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Device primary id"
// @Success 200 {array} model.Session
// @Router /devices/{id}/sessions [get]
func (h *SessionHandler) ListDeviceSessions(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	sessions, err := h.sessionService.GetDeviceSessions(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, sessions)
}

// ValidateSession godoc
// @Summary Check a session token against the active predicate
// @Tags Sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body model.ValidateSessionRequest true "Token"
// @Success 200 {object} model.ValidateSessionResponse
// @Router /sessions/validate [post]
func (h *SessionHandler) ValidateSession(c *gin.Context) {
	var req model.ValidateSessionRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.sessionService.ValidateSession(req.Token)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// DeactivateSession godoc
// @Summary Deactivate a session
// @Tags Sessions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session id"
// @Success 200 {object} model.Session
// @Failure 404 {object} model.ErrorResponse
// @Router /sessions/{id}/deactivate [post]
func (h *SessionHandler) DeactivateSession(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	session, err := h.sessionService.DeactivateSession(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, session)
}

// DeactivateDeviceSessions godoc
// @Summary Deactivate all active sessions on a device
// @Tags Sessions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Device primary id"
// @Success 200 {object} model.CountResponse
// @Router /devices/{id}/sessions/deactivate [post]
func (h *SessionHandler) DeactivateDeviceSessions(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	count, err := h.sessionService.DeactivateDeviceSessions(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.CountResponse{Count: count})
}

// CleanupExpiredSessions godoc
// @Summary Delete all expired sessions
// @Description Intended to be invoked periodically by an external scheduler.
// @Tags Sessions
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.CountResponse
// @Router /sessions/expired [delete]
func (h *SessionHandler) CleanupExpiredSessions(c *gin.Context) {
	count, err := h.sessionService.CleanupExpiredSessions()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.CountResponse{Count: count})
}
