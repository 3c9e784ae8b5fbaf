package sheets

import (
	"context"
	"fmt"
	"strconv"

	"albahr-backend/internal/config"
	"albahr-backend/internal/domain"
	"albahr-backend/internal/domain/models"
	"albahr-backend/internal/utils"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Store persists booking rows in one Google Sheet tab. The sheet is an
// at-least-once, unsynchronized store: duplicate appends and momentarily
// stale reads are possible and callers must tolerate both.
type Store struct {
	svc           *sheets.Service
	spreadsheetID string
	sheetName     string
	headers       []string
}

// Headers returns the header row this store maintains, in column order.
func (s *Store) Headers() []string {
	return s.headers
}

// headersFor lists the fixed columns per deployment. Order matters: rows
// are appended positionally.
func headersFor(v config.Variant) []string {
	base := []string{"Booking ID", "Timestamp", "Name", "Contact", "WhatsApp ID", "Intent"}
	if v.CollectEmail {
		base = append(base, "Email")
	}
	base = append(base, "Tour Type", "Booking Date", "Booking Time", "Adults Count", "Children Count")
	if v.CollectInfants {
		base = append(base, "Infants Count")
	}
	base = append(base, "Total Guests", "Total Amount", "Payment Method", "Payment Status", "Booking Status")
	if v.CollectRequests {
		base = append(base, "Special Requests")
	}
	return append(base, "Language")
}

// NewStore authenticates with the service-account JSON and verifies the
// header row. A mismatched header clears the whole sheet and rewrites it,
// which destroys existing rows; this mirrors the long-standing deployment
// behavior and is logged loudly so operators notice.
func NewStore(ctx context.Context, env config.Env, variant config.Variant) (*Store, error) {
	svc, err := sheets.NewService(ctx, option.WithCredentialsJSON([]byte(env.GoogleCreds)))
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	s := &Store{
		svc:           svc,
		spreadsheetID: env.SpreadsheetID,
		sheetName:     env.SheetName,
		headers:       headersFor(variant),
	}
	if err := s.ensureHeaders(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) ensureHeaders(ctx context.Context) error {
	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, s.rowRange(1)).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("read header row: %w", err)
	}

	current := []string{}
	if len(resp.Values) > 0 {
		for _, cell := range resp.Values[0] {
			current = append(current, fmt.Sprint(cell))
		}
	}
	if equalStrings(current, s.headers) {
		return nil
	}

	utils.LogEvent("", "sheets", "header_migration",
		"header mismatch: clearing sheet and rewriting header row (existing rows are lost)")

	if _, err := s.svc.Spreadsheets.Values.Clear(s.spreadsheetID, s.sheetName, &sheets.ClearValuesRequest{}).Context(ctx).Do(); err != nil {
		return fmt.Errorf("clear sheet: %w", err)
	}
	row := make([]interface{}, len(s.headers))
	for i, h := range s.headers {
		row[i] = h
	}
	_, err = s.svc.Spreadsheets.Values.Update(s.spreadsheetID, s.rowRange(1), &sheets.ValueRange{
		Values: [][]interface{}{row},
	}).ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("write header row: %w", err)
	}
	return nil
}

// AppendBooking writes one finalized booking as a row. No idempotency key
// is checked: a duplicate webhook delivery appends a duplicate row.
func (s *Store) AppendBooking(ctx context.Context, rec models.BookingRecord) error {
	byHeader := map[string]string{
		"Booking ID":       rec.BookingID,
		"Timestamp":        utils.SheetTimestamp(rec.CreatedAt),
		"Name":             utils.TranslateArabic(rec.Name),
		"Contact":          rec.Contact,
		"WhatsApp ID":      rec.WhatsAppID,
		"Intent":           rec.Intent,
		"Email":            rec.Email,
		"Tour Type":        utils.TranslateArabic(rec.TripType),
		"Booking Date":     utils.TranslateArabic(rec.BookingDate),
		"Booking Time":     rec.BookingTime,
		"Adults Count":     strconv.Itoa(rec.Adults),
		"Children Count":   strconv.Itoa(rec.Children),
		"Infants Count":    strconv.Itoa(rec.Infants),
		"Total Guests":     strconv.Itoa(rec.TotalGuests),
		"Total Amount":     rec.TotalAmount,
		"Payment Method":   rec.PaymentMethod,
		"Payment Status":   rec.PaymentStatus,
		"Booking Status":   rec.BookingStatus,
		"Special Requests": rec.SpecialRequests,
		"Language":         string(rec.Language),
	}

	row := make([]interface{}, len(s.headers))
	for i, h := range s.headers {
		row[i] = byHeader[h]
	}

	_, err := s.svc.Spreadsheets.Values.Append(s.spreadsheetID, s.sheetName, &sheets.ValueRange{
		Values: [][]interface{}{row},
	}).ValueInputOption("USER_ENTERED").InsertDataOption("INSERT_ROWS").Context(ctx).Do()
	if err != nil {
		return domain.InternalError{Msg: "append booking row", Err: err}
	}
	utils.LogEvent("", "sheets", "booking_appended", "booking_id="+rec.BookingID)
	return nil
}

// Rows reads the full sheet and returns data rows keyed by header name.
// Every capacity check and dashboard read re-scans the entire sheet.
func (s *Store) Rows(ctx context.Context) ([]map[string]string, error) {
	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, s.sheetName).Context(ctx).Do()
	if err != nil {
		return nil, domain.InternalError{Msg: "read sheet", Err: err}
	}
	if len(resp.Values) <= 1 {
		return []map[string]string{}, nil
	}

	headers := make([]string, 0, len(resp.Values[0]))
	for _, cell := range resp.Values[0] {
		headers = append(headers, fmt.Sprint(cell))
	}

	rows := make([]map[string]string, 0, len(resp.Values)-1)
	for _, raw := range resp.Values[1:] {
		row := map[string]string{}
		empty := true
		for i, h := range headers {
			val := ""
			if i < len(raw) {
				val = utils.TrimOrEmpty(fmt.Sprint(raw[i]))
			}
			if val != "" {
				empty = false
			}
			row[h] = val
		}
		if !empty {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

// UpdatePaymentStatus scans for the row with the given booking id and
// overwrites its Payment Status cell. Linear scan, last write wins, no
// locking; concurrent updates of the same booking can interleave.
func (s *Store) UpdatePaymentStatus(ctx context.Context, bookingID, status string) error {
	idCol := s.columnIndex("Booking ID")
	statusCol := s.columnIndex("Payment Status")
	if idCol < 0 || statusCol < 0 {
		return domain.InternalError{Msg: "sheet has no payment columns"}
	}

	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, s.sheetName).Context(ctx).Do()
	if err != nil {
		return domain.InternalError{Msg: "read sheet", Err: err}
	}
	for i, raw := range resp.Values {
		if i == 0 || idCol >= len(raw) {
			continue
		}
		if fmt.Sprint(raw[idCol]) != bookingID {
			continue
		}
		cell := fmt.Sprintf("%s!%s%d", s.sheetName, columnLetter(statusCol), i+1)
		_, err := s.svc.Spreadsheets.Values.Update(s.spreadsheetID, cell, &sheets.ValueRange{
			Values: [][]interface{}{{status}},
		}).ValueInputOption("RAW").Context(ctx).Do()
		if err != nil {
			return domain.InternalError{Msg: "update payment status", Err: err}
		}
		utils.LogEvent("", "sheets", "payment_updated", "booking_id="+bookingID+" status="+status)
		return nil
	}
	return domain.NotFoundError{Resource: "booking " + bookingID}
}

func (s *Store) columnIndex(header string) int {
	for i, h := range s.headers {
		if h == header {
			return i
		}
	}
	return -1
}

func (s *Store) rowRange(row int) string {
	return fmt.Sprintf("%s!A%d:%s%d", s.sheetName, row, columnLetter(len(s.headers)-1), row)
}

func columnLetter(idx int) string {
	// Enough for the widest variant's column count.
	letters := ""
	idx++
	for idx > 0 {
		idx--
		letters = string(rune('A'+idx%26)) + letters
		idx /= 26
	}
	return letters
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
