package handlers

import (
	"net/http"

	"albahr-backend/internal/http/middleware"
	"albahr-backend/internal/services"

	"github.com/gin-gonic/gin"
)

// ReportsHandler serves the daily report downloads.
type ReportsHandler struct {
	Service services.ReportService
}

// CSV is GET /api/report/:date.
func (h ReportsHandler) CSV(c *gin.Context) {
	svc := h.Service
	svc.RequestID = middleware.GetRequestID(c)

	data, filename, err := svc.DailyCSV(c.Request.Context(), c.Param("date"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv", data)
}

// PDF is GET /api/report/:date/pdf.
func (h ReportsHandler) PDF(c *gin.Context) {
	svc := h.Service
	svc.RequestID = middleware.GetRequestID(c)

	data, filename, err := svc.DailyPDF(c.Request.Context(), c.Param("date"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", data)
}
