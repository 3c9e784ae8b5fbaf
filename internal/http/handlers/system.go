package handlers

import (
	"net/http"

	"albahr-backend/internal/config"
	"albahr-backend/internal/store"

	"github.com/gin-gonic/gin"
)

// SystemHandler reports liveness plus enough configuration state to
// debug a misbehaving deployment without shell access.
type SystemHandler struct {
	Env      config.Env
	Variant  config.Variant
	Sessions *store.SessionStore
	Chats    *store.ChatStore
	Admin    *store.AdminTracker
}

// Health is GET /health.
func (h SystemHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"variant": h.Variant.Name,
		"config": gin.H{
			"whatsapp_token_set": h.Env.WhatsAppToken != "",
			"phone_id_set":       h.Env.WhatsAppPhone != "",
			"sheets_configured":  h.Env.SpreadsheetID != "",
			"auth_enabled":       h.Env.AdminJWTSecret != "",
		},
		"counters": gin.H{
			"active_sessions":  h.Sessions.Len(),
			"chat_users":       h.Chats.TotalUsers(),
			"chat_messages":    h.Chats.TotalMessages(),
			"suppressed_chats": h.Admin.Len(),
			"max_capacity":     h.Variant.MaxCapacity,
		},
	})
}
