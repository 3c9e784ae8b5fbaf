package handlers

import (
	"context"
	"net/http"
	"strings"

	"albahr-backend/internal/domain"
	"albahr-backend/internal/domain/models"
	"albahr-backend/internal/http/middleware"
	"albahr-backend/internal/utils"

	"github.com/gin-gonic/gin"
)

// PaymentUpdater flips the payment-status column of one booking row.
type PaymentUpdater interface {
	UpdatePaymentStatus(ctx context.Context, bookingID, status string) error
}

// PaymentsHandler settles bookings from the dashboard.
type PaymentsHandler struct {
	Bookings PaymentUpdater
}

type paymentRequest struct {
	PaymentStatus string `json:"payment_status"`
	// Status is the shorter alias some dashboard builds send.
	Status string `json:"status"`
}

func (r paymentRequest) value() string {
	if r.PaymentStatus != "" {
		return r.PaymentStatus
	}
	return r.Status
}

// Update is POST /api/bookings/:id/payment.
func (h PaymentsHandler) Update(c *gin.Context) {
	bookingID := c.Param("id")

	var req paymentRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	status := normalizePaymentStatus(req.value())
	if status == "" {
		RespondDomainError(c, domain.ValidationError{Field: "status", Msg: "must be Pending or Paid"})
		return
	}

	if err := h.Bookings.UpdatePaymentStatus(c.Request.Context(), bookingID, status); err != nil {
		RespondDomainError(c, err)
		return
	}

	utils.LogEvent(middleware.GetRequestID(c), "payments", "status_updated",
		"booking_id="+bookingID+" status="+status)
	c.JSON(http.StatusOK, gin.H{"booking_id": bookingID, "payment_status": status})
}

func normalizePaymentStatus(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "pending":
		return models.PaymentStatusPending
	case "paid":
		return models.PaymentStatusPaid
	}
	return ""
}
