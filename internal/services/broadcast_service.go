package services

import (
	"context"
	"strconv"
	"strings"
	"time"

	"albahr-backend/internal/domain"
	"albahr-backend/internal/domain/models"
	"albahr-backend/internal/utils"
)

// Broadcast segments.
const (
	SegmentAll    = "all"
	SegmentBooked = "booked"
)

const broadcastPause = 2 * time.Second

// MessageSender is the outbound side of the WhatsApp client.
type MessageSender interface {
	SendText(ctx context.Context, to, body string) error
}

// RowSource reads the current booking rows.
type RowSource interface {
	Rows(ctx context.Context) ([]map[string]string, error)
}

// BroadcastResult summarizes one campaign.
type BroadcastResult struct {
	Segment string   `json:"segment"`
	Total   int      `json:"total"`
	Sent    int      `json:"sent"`
	Failed  int      `json:"failed"`
	Errors  []string `json:"errors,omitempty"`
}

// BroadcastService sends one message to every customer in a segment.
// Sends are paced with a fixed pause to stay under the Cloud API's
// messaging rate limits.
type BroadcastService struct {
	Sender    MessageSender
	Bookings  RowSource
	RequestID string

	// Pause overrides the inter-send delay; zero means the default.
	Pause time.Duration
}

// Send delivers message to the segment's recipients, one by one. Partial
// failure is expected and reported per recipient rather than aborting.
func (s BroadcastService) Send(ctx context.Context, message, segment string) (BroadcastResult, error) {
	result := BroadcastResult{Segment: segment}

	if strings.TrimSpace(message) == "" {
		return result, domain.ValidationError{Msg: "message is required"}
	}
	if segment != SegmentAll && segment != SegmentBooked {
		return result, domain.ValidationError{Msg: "segment must be all or booked"}
	}

	recipients, err := s.recipients(ctx, segment)
	if err != nil {
		return result, err
	}
	result.Total = len(recipients)

	pause := s.Pause
	if pause == 0 {
		pause = broadcastPause
	}

	for i, phone := range recipients {
		if i > 0 {
			select {
			case <-ctx.Done():
				return result, ctx.Err()
			case <-time.After(pause):
			}
		}
		if err := s.Sender.SendText(ctx, phone, message); err != nil {
			result.Failed++
			result.Errors = append(result.Errors, phone+": "+err.Error())
			continue
		}
		result.Sent++
	}

	utils.LogEvent(s.RequestID, "broadcast", "campaign_done",
		"segment="+segment+" sent="+strconv.Itoa(result.Sent)+" failed="+strconv.Itoa(result.Failed))
	return result, nil
}

// recipients collects unique, normalized phone numbers from the sheet.
// Rows whose number cannot be normalized are skipped silently; the sheet
// holds whatever users typed.
func (s BroadcastService) recipients(ctx context.Context, segment string) ([]string, error) {
	rows, err := s.Bookings.Rows(ctx)
	if err != nil {
		return nil, err
	}

	seen := map[string]bool{}
	out := []string{}
	for _, row := range rows {
		if segment == SegmentBooked &&
			!strings.EqualFold(row["Booking Status"], models.BookingStatusConfirmed) {
			continue
		}

		raw := row["WhatsApp ID"]
		if raw == "" {
			raw = row["Contact"]
		}
		phone, err := utils.NormalizeOmanPhone(raw)
		if err != nil || seen[phone] {
			continue
		}
		seen[phone] = true
		out = append(out, phone)
	}
	return out, nil
}
