package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"albahr-backend/internal/domain"
)

type fakeBroadcastSender struct {
	sent    []string
	failFor map[string]bool
}

func (f *fakeBroadcastSender) SendText(_ context.Context, to, _ string) error {
	if f.failFor[to] {
		return errors.New("rate limited")
	}
	f.sent = append(f.sent, to)
	return nil
}

type staticRows []map[string]string

func (r staticRows) Rows(context.Context) ([]map[string]string, error) { return r, nil }

func bookingRow(whatsappID, status string) map[string]string {
	return map[string]string{"WhatsApp ID": whatsappID, "Booking Status": status}
}

func TestBroadcastDeduplicatesAndNormalizes(t *testing.T) {
	sender := &fakeBroadcastSender{}
	svc := BroadcastService{
		Sender: sender,
		Bookings: staticRows{
			bookingRow("91234567", "Confirmed"),
			bookingRow("96891234567", "Confirmed"), // same person, already international
			bookingRow("71111111", "Confirmed"),
		},
		Pause: time.Millisecond,
	}

	result, err := svc.Send(context.Background(), "Season opening!", SegmentAll)
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if result.Total != 2 || result.Sent != 2 || result.Failed != 0 {
		t.Fatalf("result = %+v", result)
	}
	if sender.sent[0] != "96891234567" || sender.sent[1] != "96871111111" {
		t.Fatalf("sent to %v", sender.sent)
	}
}

func TestBroadcastBookedSegmentSkipsCancelled(t *testing.T) {
	sender := &fakeBroadcastSender{}
	svc := BroadcastService{
		Sender: sender,
		Bookings: staticRows{
			bookingRow("91234567", "Confirmed"),
			bookingRow("92222222", "Cancelled"),
		},
		Pause: time.Millisecond,
	}

	result, err := svc.Send(context.Background(), "hi", SegmentBooked)
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if result.Total != 1 || len(sender.sent) != 1 {
		t.Fatalf("result = %+v sent = %v", result, sender.sent)
	}
}

func TestBroadcastReportsPartialFailure(t *testing.T) {
	sender := &fakeBroadcastSender{failFor: map[string]bool{"96892222222": true}}
	svc := BroadcastService{
		Sender: sender,
		Bookings: staticRows{
			bookingRow("91111111", "Confirmed"),
			bookingRow("92222222", "Confirmed"),
			bookingRow("93333333", "Confirmed"),
		},
		Pause: time.Millisecond,
	}

	result, err := svc.Send(context.Background(), "hi", SegmentAll)
	if err != nil {
		t.Fatalf("partial failure must not abort: %v", err)
	}
	if result.Sent != 2 || result.Failed != 1 || len(result.Errors) != 1 {
		t.Fatalf("result = %+v", result)
	}
}

func TestBroadcastValidatesInput(t *testing.T) {
	svc := BroadcastService{Sender: &fakeBroadcastSender{}, Bookings: staticRows{}}

	if _, err := svc.Send(context.Background(), "  ", SegmentAll); !domain.IsValidation(err) {
		t.Fatalf("blank message: err = %v, want validation error", err)
	}
	if _, err := svc.Send(context.Background(), "hi", "vip"); !domain.IsValidation(err) {
		t.Fatalf("bad segment: err = %v, want validation error", err)
	}
}
