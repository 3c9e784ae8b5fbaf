package handlers

import (
	"net/http"

	"albahr-backend/internal/http/middleware"
	"albahr-backend/internal/services"

	"github.com/gin-gonic/gin"
)

// BroadcastHandler triggers outbound campaigns from the dashboard.
type BroadcastHandler struct {
	Service services.BroadcastService
}

type broadcastRequest struct {
	Message string `json:"message"`
	Segment string `json:"segment"`
}

// Send is POST /api/broadcast. The request blocks until the campaign
// finishes; campaigns are small enough that async delivery isn't worth
// the bookkeeping.
func (h BroadcastHandler) Send(c *gin.Context) {
	var req broadcastRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if req.Segment == "" {
		req.Segment = services.SegmentAll
	}

	svc := h.Service
	svc.RequestID = middleware.GetRequestID(c)

	result, err := svc.Send(c.Request.Context(), req.Message, req.Segment)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
