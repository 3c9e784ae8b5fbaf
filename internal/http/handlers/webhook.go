package handlers

import (
	"context"
	"net/http"

	"albahr-backend/internal/http/middleware"
	"albahr-backend/internal/utils"
	"albahr-backend/internal/whatsapp"

	"github.com/gin-gonic/gin"
)

// Dispatcher routes one inbound message or menu tap to a reply.
type Dispatcher interface {
	HandleText(ctx context.Context, phone, text string) string
	HandleInteraction(ctx context.Context, phone, id, title string) string
}

// WebhookHandler terminates the Meta webhook. POST always answers 200:
// a non-200 makes the platform retry and eventually disable the webhook,
// so processing failures are reported in the body's status tag instead.
type WebhookHandler struct {
	VerifyToken string
	Bot         Dispatcher
}

// Verify handles GET /webhook, the one-time subscription handshake.
func (h WebhookHandler) Verify(c *gin.Context) {
	mode := c.Query("hub.mode")
	token := c.Query("hub.verify_token")
	challenge := c.Query("hub.challenge")

	if mode == "subscribe" && token == h.VerifyToken {
		utils.LogEvent(middleware.GetRequestID(c), "webhook", "verified", "subscription handshake ok")
		c.String(http.StatusOK, challenge)
		return
	}
	c.String(http.StatusForbidden, "verification failed")
}

// Receive handles POST /webhook deliveries.
func (h WebhookHandler) Receive(c *gin.Context) {
	rid := middleware.GetRequestID(c)

	var payload whatsapp.WebhookPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.LogEvent(rid, "webhook", "bad_payload", "err="+err.Error())
		c.JSON(http.StatusOK, gin.H{"status": "ignored_bad_payload"})
		return
	}

	msg := payload.FirstMessage()
	if msg == nil {
		c.JSON(http.StatusOK, gin.H{"status": "no_message"})
		return
	}

	status := h.dispatch(c.Request.Context(), rid, msg)
	c.JSON(http.StatusOK, gin.H{"status": status})
}

func (h WebhookHandler) dispatch(ctx context.Context, rid string, msg *whatsapp.IncomingMessage) string {
	switch msg.Type {
	case "text":
		if msg.Text == nil {
			return "ignored_empty_text"
		}
		utils.LogEvent(rid, "webhook", "text_in", "from="+msg.From)
		return h.Bot.HandleText(ctx, msg.From, msg.Text.Body)

	case "interactive":
		reply := msg.Interactive.Reply()
		if reply == nil {
			return "ignored_unknown_interactive"
		}
		utils.LogEvent(rid, "webhook", "interactive_in", "from="+msg.From+" id="+reply.ID)
		return h.Bot.HandleInteraction(ctx, msg.From, reply.ID, reply.Title)

	default:
		utils.LogEvent(rid, "webhook", "unsupported_type", "type="+msg.Type)
		return "ignored_unsupported_type"
	}
}
