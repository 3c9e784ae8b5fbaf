package handlers

import (
	"net/http"

	"albahr-backend/internal/bot"
	"albahr-backend/internal/config"
	"albahr-backend/internal/services"

	"github.com/gin-gonic/gin"
)

// CapacityHandler reports remaining seats per date and trip type.
type CapacityHandler struct {
	Bookings services.RowSource
	Variant  config.Variant
}

// Get is GET /api/capacity/:date/:type. Unlimited deployments report
// capacity_limited=false so the dashboard can hide the gauge.
func (h CapacityHandler) Get(c *gin.Context) {
	date := c.Param("date")
	tripType := c.Param("type")

	if h.Variant.MaxCapacity <= 0 {
		c.JSON(http.StatusOK, gin.H{
			"date":             date,
			"trip_type":        tripType,
			"capacity_limited": false,
		})
		return
	}

	rows, err := h.Bookings.Rows(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	booked := bot.BookedGuests(rows, date, tripType)
	c.JSON(http.StatusOK, gin.H{
		"date":             date,
		"trip_type":        tripType,
		"capacity_limited": true,
		"max_capacity":     h.Variant.MaxCapacity,
		"booked":           booked,
		"available":        h.Variant.MaxCapacity - booked,
	})
}
