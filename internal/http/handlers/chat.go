package handlers

import (
	"net/http"

	"albahr-backend/internal/http/middleware"
	"albahr-backend/internal/services"
	"albahr-backend/internal/store"
	"albahr-backend/internal/utils"

	"github.com/gin-gonic/gin"
)

// ChatHandler exposes the two-way chat view: history per customer and
// operator replies that temporarily silence the bot.
type ChatHandler struct {
	Chats  *store.ChatStore
	Admin  *store.AdminTracker
	Sender services.MessageSender
}

// Users is GET /api/chat/users: everyone with history, newest first.
func (h ChatHandler) Users(c *gin.Context) {
	users := h.Chats.Users()
	c.JSON(http.StatusOK, gin.H{"users": users, "total": len(users)})
}

// Messages is GET /api/chat/:phone/messages.
func (h ChatHandler) Messages(c *gin.Context) {
	phone := c.Param("phone")
	messages := h.Chats.Messages(phone)
	c.JSON(http.StatusOK, gin.H{
		"phone_number": phone,
		"messages":     messages,
		"total":        len(messages),
	})
}

type sendMessageRequest struct {
	PhoneNumber string `json:"phone_number"`
	Message     string `json:"message" binding:"required"`
}

// SendMessage is POST /api/chat/:phone/send. The delivered message is
// recorded as an admin message and the bot skips its reply to the
// customer's next text, handing the conversation to the operator.
func (h ChatHandler) SendMessage(c *gin.Context) {
	var req sendMessageRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	h.deliver(c, c.Param("phone"), req.Message)
}

// SendMessageLegacy is POST /api/send_message, the original dashboard
// route with the phone number in the body.
func (h ChatHandler) SendMessageLegacy(c *gin.Context) {
	var req sendMessageRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	h.deliver(c, req.PhoneNumber, req.Message)
}

func (h ChatHandler) deliver(c *gin.Context, phone, message string) {
	normalized, err := utils.NormalizeOmanPhone(phone)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	if err := h.Sender.SendText(c.Request.Context(), normalized, message); err != nil {
		RespondError(c, http.StatusBadGateway, "whatsapp send failed", err)
		return
	}

	h.Chats.Append(normalized, message, "admin")
	h.Admin.Mark(normalized)

	utils.LogEvent(middleware.GetRequestID(c), "chat", "admin_message", "phone="+normalized)
	c.JSON(http.StatusOK, gin.H{"status": "sent", "phone_number": normalized})
}
