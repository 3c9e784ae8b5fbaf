package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"albahr-backend/internal/config"
	"albahr-backend/internal/domain"
	"albahr-backend/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// ReportService renders the daily bookings report the back office pulls
// each morning, as CSV for spreadsheets and PDF for printing.
type ReportService struct {
	Bookings  RowSource
	Variant   config.Variant
	Headers   []string
	RequestID string
}

// rowsFor filters sheet rows to one day. Booking dates are free text, so
// a row matches when either its Booking Date equals the requested string
// or its append timestamp starts with it (ISO dates).
func (s ReportService) rowsFor(ctx context.Context, date string) ([]map[string]string, error) {
	if strings.TrimSpace(date) == "" {
		return nil, domain.ValidationError{Msg: "date is required"}
	}
	rows, err := s.Bookings.Rows(ctx)
	if err != nil {
		return nil, err
	}

	matched := []map[string]string{}
	for _, row := range rows {
		if row["Booking Date"] == date || strings.HasPrefix(row["Timestamp"], date) {
			matched = append(matched, row)
		}
	}
	return matched, nil
}

// DailyCSV renders the day's bookings with the sheet's own column order.
func (s ReportService) DailyCSV(ctx context.Context, date string) ([]byte, string, error) {
	rows, err := s.rowsFor(ctx, date)
	if err != nil {
		return nil, "", err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(s.Headers); err != nil {
		return nil, "", domain.InternalError{Msg: "write csv header", Err: err}
	}
	for _, row := range rows {
		record := make([]string, len(s.Headers))
		for i, h := range s.Headers {
			record[i] = row[h]
		}
		if err := w.Write(record); err != nil {
			return nil, "", domain.InternalError{Msg: "write csv row", Err: err}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, "", domain.InternalError{Msg: "flush csv", Err: err}
	}

	utils.LogEvent(s.RequestID, "report", "daily_csv", "date="+date+" rows="+strconv.Itoa(len(rows)))
	return buf.Bytes(), "bookings_" + safeFilenamePart(date) + ".csv", nil
}

// DailyPDF renders the same day as a printable summary.
func (s ReportService) DailyPDF(ctx context.Context, date string) ([]byte, string, error) {
	rows, err := s.rowsFor(ctx, date)
	if err != nil {
		return nil, "", err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Daily Bookings Report", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "DAILY BOOKINGS REPORT")
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, "Business : "+s.Variant.BusinessEN)
	pdf.Ln(7)
	pdf.Cell(0, 7, "Date     : "+date)
	pdf.Ln(12)

	guests, revenue := 0, 0.0
	pdf.SetFont("Helvetica", "", 11)
	for _, row := range rows {
		lines := []string{
			fmt.Sprintf("Booking  : %s (%s)", safe(row["Booking ID"], "-"), safe(row["Booking Status"], "-")),
			fmt.Sprintf("Customer : %s  %s", safe(row["Name"], "-"), safe(row["Contact"], "-")),
			fmt.Sprintf("Trip     : %s  %s %s", safe(row["Tour Type"], "-"), safe(row["Booking Date"], "-"), row["Booking Time"]),
			fmt.Sprintf("Guests   : %s  Amount: %s OMR (%s)", safe(row["Total Guests"], "-"),
				safe(row["Total Amount"], "-"), safe(row["Payment Status"], "-")),
		}
		for _, line := range lines {
			pdf.Cell(0, 6, line)
			pdf.Ln(6)
		}
		pdf.Ln(4)

		if n, err := strconv.Atoi(row["Total Guests"]); err == nil {
			guests += n
		}
		if amt, err := strconv.ParseFloat(row["Total Amount"], 64); err == nil {
			revenue += amt
		}
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, fmt.Sprintf("Bookings: %d   Guests: %d   Revenue: %s OMR",
		len(rows), guests, utils.FormatAmount(revenue, s.Variant.CurrencyDecimals)))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", domain.InternalError{Msg: "render pdf", Err: err}
	}

	utils.LogEvent(s.RequestID, "report", "daily_pdf", "date="+date+" rows="+strconv.Itoa(len(rows)))
	return buf.Bytes(), "bookings_" + safeFilenamePart(date) + ".pdf", nil
}

func safe(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}

func safeFilenamePart(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}
