package handlers

import (
	"net/http"

	"albahr-backend/internal/store"

	"github.com/gin-gonic/gin"
)

// SessionsHandler lets the dashboard inspect live conversation state.
type SessionsHandler struct {
	Sessions *store.SessionStore
}

// Get is GET /api/user_session/:phone.
func (h SessionsHandler) Get(c *gin.Context) {
	phone := c.Param("phone")
	sess := h.Sessions.Get(phone)
	if sess == nil {
		RespondError(c, http.StatusNotFound, "no active session", nil)
		return
	}
	c.JSON(http.StatusOK, sess)
}

// List is GET /api/active_sessions.
func (h SessionsHandler) List(c *gin.Context) {
	snapshot := h.Sessions.Snapshot()
	c.JSON(http.StatusOK, gin.H{
		"sessions": snapshot,
		"total":    len(snapshot),
	})
}
