package bot

import (
	"context"
	"strings"
	"testing"

	"albahr-backend/internal/config"
	"albahr-backend/internal/domain/models"
	"albahr-backend/internal/store"
	"albahr-backend/internal/whatsapp"
)

type fakeSender struct {
	texts []string
	lists []*whatsapp.Interactive
}

func (f *fakeSender) SendText(_ context.Context, _, body string) error {
	f.texts = append(f.texts, body)
	return nil
}

func (f *fakeSender) SendList(_ context.Context, _ string, list *whatsapp.Interactive) error {
	f.lists = append(f.lists, list)
	return nil
}

func (f *fakeSender) lastText() string {
	if len(f.texts) == 0 {
		return ""
	}
	return f.texts[len(f.texts)-1]
}

type fakeBookings struct {
	rows     []map[string]string
	appended []models.BookingRecord
}

func (f *fakeBookings) AppendBooking(_ context.Context, rec models.BookingRecord) error {
	f.appended = append(f.appended, rec)
	return nil
}

func (f *fakeBookings) Rows(_ context.Context) ([]map[string]string, error) {
	return f.rows, nil
}

func newTestEngine(t *testing.T, variant string) (*Engine, *fakeSender, *fakeBookings, *store.SessionStore, *store.AdminTracker) {
	t.Helper()
	sender := &fakeSender{}
	bookings := &fakeBookings{}
	sessions := store.NewSessionStore()
	admin := store.NewAdminTracker()
	e := NewEngine(config.LoadVariant(variant), sender, bookings, sessions, store.NewChatStore(), admin)
	return e, sender, bookings, sessions, admin
}

const testPhone = "96891234567"

func TestNewUserGreetingGetsLanguageMenu(t *testing.T) {
	e, sender, _, sessions, _ := newTestEngine(t, config.VariantTour)

	status := e.HandleText(context.Background(), testPhone, "hello")
	if status != StatusLanguageMenu {
		t.Fatalf("status = %q, want %q", status, StatusLanguageMenu)
	}
	if len(sender.lists) != 1 {
		t.Fatalf("expected one list message, got %d", len(sender.lists))
	}
	if sessions.Get(testPhone) != nil {
		t.Fatal("greeting alone must not create a session")
	}
}

func TestArabicFirstMessageSkipsLanguageQuestion(t *testing.T) {
	e, sender, _, sessions, _ := newTestEngine(t, config.VariantTour)

	status := e.HandleText(context.Background(), testPhone, "مرحبا كيف الحال")
	if status != StatusWelcomeSent {
		t.Fatalf("status = %q, want %q", status, StatusWelcomeSent)
	}
	sess := sessions.Get(testPhone)
	if sess == nil || sess.Language != models.LangArabic {
		t.Fatalf("expected an Arabic session, got %+v", sess)
	}
	if len(sender.lists) != 1 {
		t.Fatalf("expected the welcome menu, got %d lists", len(sender.lists))
	}
}

func TestKeywordReplyWithoutSession(t *testing.T) {
	e, sender, _, _, _ := newTestEngine(t, config.VariantTour)

	status := e.HandleText(context.Background(), testPhone, "how much does it cost?")
	if status != StatusKeywordReply {
		t.Fatalf("status = %q, want %q", status, StatusKeywordReply)
	}
	if !strings.Contains(sender.lastText(), "Dolphin Watching") {
		t.Fatalf("pricing reply should list trips, got %q", sender.lastText())
	}
}

func TestAdminSuppressionConsumesExactlyOnce(t *testing.T) {
	e, _, _, _, admin := newTestEngine(t, config.VariantTour)
	admin.Mark(testPhone)

	if status := e.HandleText(context.Background(), testPhone, "hello"); status != StatusAdminSuppressed {
		t.Fatalf("first message: status = %q, want suppressed", status)
	}
	if status := e.HandleText(context.Background(), testPhone, "hello"); status != StatusLanguageMenu {
		t.Fatalf("second message: status = %q, want %q", status, StatusLanguageMenu)
	}
}

func TestInvalidInputRepromptsIdenticallyAndHoldsStep(t *testing.T) {
	e, sender, _, sessions, _ := newTestEngine(t, config.VariantTour)
	ctx := context.Background()

	e.HandleInteraction(ctx, testPhone, "lang_english", "English")
	e.HandleInteraction(ctx, testPhone, "book_now", "Book Now")
	e.HandleText(ctx, testPhone, "Ahmed Al Harthy")
	e.HandleText(ctx, testPhone, "91234567")
	e.HandleText(ctx, testPhone, "2026-09-01")

	sess := sessions.Get(testPhone)
	if sess == nil || sess.Step != models.StepAwaitingAdults {
		t.Fatalf("setup: expected awaiting_adults, got %+v", sess)
	}
	entryPrompt := sender.lastText()

	for _, junk := range []string{"abc", "0", "51", "-3"} {
		e.HandleText(ctx, testPhone, junk)

		sess = sessions.Get(testPhone)
		if sess.Step != models.StepAwaitingAdults {
			t.Fatalf("input %q advanced the step to %q", junk, sess.Step)
		}
		if sess.Adults != 0 {
			t.Fatalf("input %q wrote adults = %d", junk, sess.Adults)
		}
		if got := sender.lastText(); got != entryPrompt {
			t.Fatalf("reprompt after %q differs from entry prompt:\n%q\nvs\n%q", junk, got, entryPrompt)
		}
	}
}

func TestFullTourBookingFlow(t *testing.T) {
	e, sender, bookings, sessions, _ := newTestEngine(t, config.VariantTour)
	ctx := context.Background()

	e.HandleInteraction(ctx, testPhone, "lang_english", "English")
	e.HandleInteraction(ctx, testPhone, "book_now", "Book Now")
	e.HandleText(ctx, testPhone, "Ahmed Al Harthy")
	e.HandleText(ctx, testPhone, "91234567")
	e.HandleText(ctx, testPhone, "2026-09-01")
	e.HandleText(ctx, testPhone, "4")
	e.HandleText(ctx, testPhone, "0")
	e.HandleInteraction(ctx, testPhone, "trip_dolphin", "Dolphin Watching")

	status := e.HandleInteraction(ctx, testPhone, "time_9am", "9:00 AM")
	if status != StatusBookingDone {
		t.Fatalf("terminal status = %q, want %q", status, StatusBookingDone)
	}

	if len(bookings.appended) != 1 {
		t.Fatalf("expected exactly one booking row, got %d", len(bookings.appended))
	}
	rec := bookings.appended[0]
	if rec.Name != "Ahmed Al Harthy" || rec.Contact != "96891234567" {
		t.Fatalf("customer fields wrong: %+v", rec)
	}
	if rec.TripType != "Dolphin Watching" || rec.BookingTime != "9:00 AM" {
		t.Fatalf("trip fields wrong: %+v", rec)
	}
	// 4 adults * 25 with the group discount
	if rec.TotalAmount != "90.00" {
		t.Fatalf("total = %q, want 90.00", rec.TotalAmount)
	}
	if rec.PaymentStatus != models.PaymentStatusPending || rec.BookingStatus != models.BookingStatusConfirmed {
		t.Fatalf("status fields wrong: %+v", rec)
	}
	if !strings.HasPrefix(rec.BookingID, "BK-") {
		t.Fatalf("booking id = %q", rec.BookingID)
	}

	if sessions.Get(testPhone) != nil {
		t.Fatal("session must be dropped after completion")
	}
	if !strings.Contains(sender.lastText(), "90.00") {
		t.Fatalf("confirmation should quote the total, got %q", sender.lastText())
	}
}

func TestCruiseFlowCollectsExtraFields(t *testing.T) {
	e, _, bookings, sessions, _ := newTestEngine(t, config.VariantCruise)
	ctx := context.Background()

	e.HandleInteraction(ctx, testPhone, "lang_english", "English")
	e.HandleInteraction(ctx, testPhone, "book_now", "Book Now")
	e.HandleText(ctx, testPhone, "Maryam")
	e.HandleText(ctx, testPhone, "91234567")
	e.HandleText(ctx, testPhone, "maryam@example.com")
	e.HandleText(ctx, testPhone, "2026-09-01")
	e.HandleText(ctx, testPhone, "2")
	e.HandleText(ctx, testPhone, "1")
	e.HandleText(ctx, testPhone, "1")
	e.HandleText(ctx, testPhone, "window seat please")
	e.HandleInteraction(ctx, testPhone, "trip_sunset", "Sunset Cruise")

	status := e.HandleInteraction(ctx, testPhone, "pay_cash", "Cash at Marina")
	if status != StatusBookingDone {
		t.Fatalf("terminal status = %q, want %q", status, StatusBookingDone)
	}

	rec := bookings.appended[0]
	if rec.Email != "maryam@example.com" || rec.Infants != 1 || rec.SpecialRequests != "window seat please" {
		t.Fatalf("cruise-only fields wrong: %+v", rec)
	}
	if rec.PaymentMethod != "Cash at Marina" || rec.BookingTime != "" {
		t.Fatalf("terminal fields wrong: %+v", rec)
	}
	// 3 full-fare guests * 30 with the 10% discount at the cruise threshold
	if rec.TotalAmount != "81.000" {
		t.Fatalf("total = %q, want 81.000", rec.TotalAmount)
	}
	if sessions.Get(testPhone) != nil {
		t.Fatal("session must be dropped after completion")
	}
}

func TestCruiseFullCapacityRestartsFlow(t *testing.T) {
	e, sender, bookings, sessions, _ := newTestEngine(t, config.VariantCruise)
	ctx := context.Background()

	// every cruise type already holds 135 guests on the chosen date
	for _, trip := range []string{"Sunset Cruise", "Coastal Cruise", "Dinner Cruise"} {
		bookings.rows = append(bookings.rows, map[string]string{
			"Booking Date":   "2026-09-01",
			"Tour Type":      trip,
			"Total Guests":   "135",
			"Booking Status": "Confirmed",
		})
	}

	e.HandleInteraction(ctx, testPhone, "lang_english", "English")
	e.HandleInteraction(ctx, testPhone, "book_now", "Book Now")
	e.HandleText(ctx, testPhone, "Khalid")
	e.HandleText(ctx, testPhone, "91234567")
	e.HandleText(ctx, testPhone, "-")
	e.HandleText(ctx, testPhone, "2026-09-01")
	e.HandleText(ctx, testPhone, "2")
	e.HandleText(ctx, testPhone, "0")
	e.HandleText(ctx, testPhone, "0")

	status := e.HandleText(ctx, testPhone, "-")
	if status != StatusNoCapacity {
		t.Fatalf("status = %q, want %q", status, StatusNoCapacity)
	}
	if !strings.Contains(sender.lastText(), "fully booked") {
		t.Fatalf("expected the no-capacity message, got %q", sender.lastText())
	}

	sess := sessions.Get(testPhone)
	if sess == nil || sess.Step != models.StepAwaitingName {
		t.Fatalf("flow should restart at the name step, got %+v", sess)
	}
	if sess.BookingDate != "" || sess.Adults != 0 {
		t.Fatalf("restart must clear collected fields: %+v", sess)
	}
	if len(bookings.appended) != 0 {
		t.Fatal("no booking row may be written when capacity is exhausted")
	}
}

func TestArabicBookingStoresCanonicalTripType(t *testing.T) {
	e, sender, bookings, _, _ := newTestEngine(t, config.VariantCruise)
	ctx := context.Background()

	e.HandleInteraction(ctx, testPhone, "lang_arabic", "العربية")
	e.HandleInteraction(ctx, testPhone, "book_now", "احجز الآن")
	e.HandleText(ctx, testPhone, "خالد")
	e.HandleText(ctx, testPhone, "91234567")
	e.HandleText(ctx, testPhone, "-")
	e.HandleText(ctx, testPhone, "2026-09-01")
	e.HandleText(ctx, testPhone, "2")
	e.HandleText(ctx, testPhone, "0")
	e.HandleText(ctx, testPhone, "0")
	e.HandleText(ctx, testPhone, "-")
	e.HandleInteraction(ctx, testPhone, "trip_sunset", "رحلة الغروب")

	status := e.HandleInteraction(ctx, testPhone, "pay_cash", "نقداً في المارينا")
	if status != StatusBookingDone {
		t.Fatalf("terminal status = %q, want %q", status, StatusBookingDone)
	}

	rec := bookings.appended[0]
	if rec.TripType != "Sunset Cruise" {
		t.Fatalf("trip type stored = %q, want the canonical English title", rec.TripType)
	}
	if rec.Language != models.LangArabic {
		t.Fatalf("language = %q, want arabic", rec.Language)
	}
	// the confirmation still shows the localized title
	if !strings.Contains(sender.lastText(), "رحلة الغروب") {
		t.Fatalf("Arabic confirmation should localize the trip title, got %q", sender.lastText())
	}
}

func TestCapacityCountsBookingsAcrossLanguages(t *testing.T) {
	e, _, bookings, _, _ := newTestEngine(t, config.VariantCruise)
	ctx := context.Background()

	bookings.rows = append(bookings.rows, map[string]string{
		"Booking Date":   "2026-09-01",
		"Tour Type":      "Sunset Cruise",
		"Total Guests":   "100",
		"Booking Status": "Confirmed",
	})

	// an Arabic-language party of 33 books the same cruise and date
	e.HandleInteraction(ctx, testPhone, "lang_arabic", "العربية")
	e.HandleInteraction(ctx, testPhone, "book_now", "احجز الآن")
	e.HandleText(ctx, testPhone, "خالد")
	e.HandleText(ctx, testPhone, "91234567")
	e.HandleText(ctx, testPhone, "-")
	e.HandleText(ctx, testPhone, "2026-09-01")
	e.HandleText(ctx, testPhone, "30")
	e.HandleText(ctx, testPhone, "3")
	e.HandleText(ctx, testPhone, "0")
	e.HandleText(ctx, testPhone, "-")
	e.HandleInteraction(ctx, testPhone, "trip_sunset", "رحلة الغروب")
	if status := e.HandleInteraction(ctx, testPhone, "pay_cash", "نقداً في المارينا"); status != StatusBookingDone {
		t.Fatalf("Arabic booking status = %q, want %q", status, StatusBookingDone)
	}

	// mirror the appended row the way the sheet would serve it back
	rec := bookings.appended[0]
	bookings.rows = append(bookings.rows, map[string]string{
		"Booking Date":   rec.BookingDate,
		"Tour Type":      rec.TripType,
		"Total Guests":   "33",
		"Booking Status": rec.BookingStatus,
	})

	// 133 of 135 taken: an English party of 3 must be turned away at the
	// terminal re-check even though it tapped the same cruise directly
	otherPhone := "96892222222"
	e.HandleInteraction(ctx, otherPhone, "lang_english", "English")
	e.HandleInteraction(ctx, otherPhone, "book_now", "Book Now")
	e.HandleText(ctx, otherPhone, "Ahmed")
	e.HandleText(ctx, otherPhone, "92222222")
	e.HandleText(ctx, otherPhone, "-")
	e.HandleText(ctx, otherPhone, "2026-09-01")
	e.HandleText(ctx, otherPhone, "3")
	e.HandleText(ctx, otherPhone, "0")
	e.HandleText(ctx, otherPhone, "0")
	e.HandleText(ctx, otherPhone, "-")
	e.HandleInteraction(ctx, otherPhone, "trip_sunset", "Sunset Cruise")
	if status := e.HandleInteraction(ctx, otherPhone, "pay_cash", "Cash at Marina"); status != StatusNoCapacity {
		t.Fatalf("overbooking attempt status = %q, want %q", status, StatusNoCapacity)
	}
	if len(bookings.appended) != 1 {
		t.Fatalf("rows appended = %d, the rejected party must not be written", len(bookings.appended))
	}
}

func TestFreeTextDuringMenuStepReshowsMenu(t *testing.T) {
	e, sender, _, sessions, _ := newTestEngine(t, config.VariantTour)
	ctx := context.Background()

	e.HandleInteraction(ctx, testPhone, "lang_english", "English")
	e.HandleInteraction(ctx, testPhone, "book_now", "Book Now")
	e.HandleText(ctx, testPhone, "Ahmed")
	e.HandleText(ctx, testPhone, "91234567")
	e.HandleText(ctx, testPhone, "tomorrow")
	e.HandleText(ctx, testPhone, "2")
	e.HandleText(ctx, testPhone, "0")

	menus := len(sender.lists)
	e.HandleText(ctx, testPhone, "the dolphin one please")

	if len(sender.lists) != menus+1 {
		t.Fatalf("free text during trip selection should re-send the menu")
	}
	if sess := sessions.Get(testPhone); sess.Step != models.StepAwaitingTripType {
		t.Fatalf("step = %q, want awaiting_trip_type", sess.Step)
	}
}
