package handlers

import (
	"net/http"
	"strings"

	"albahr-backend/internal/domain/models"
	"albahr-backend/internal/services"

	"github.com/gin-gonic/gin"
)

// LeadsHandler serves the dashboard's booking table straight from the
// sheet. Every call is a full re-read; the sheet is the source of truth
// and the dashboard refreshes infrequently.
type LeadsHandler struct {
	Bookings services.RowSource
}

// List is GET /api/leads. Optional ?status= filters on Booking Status.
func (h LeadsHandler) List(c *gin.Context) {
	rows, err := h.Bookings.Rows(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	if status := c.Query("status"); status != "" {
		filtered := make([]map[string]string, 0, len(rows))
		for _, row := range rows {
			if strings.EqualFold(row["Booking Status"], status) {
				filtered = append(filtered, row)
			}
		}
		rows = filtered
	}

	confirmed := 0
	for _, row := range rows {
		if strings.EqualFold(row["Booking Status"], models.BookingStatusConfirmed) {
			confirmed++
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"leads":     rows,
		"total":     len(rows),
		"confirmed": confirmed,
	})
}
