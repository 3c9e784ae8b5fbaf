package bot

import (
	"context"
	"strconv"
	"strings"
	"time"

	"albahr-backend/internal/config"
	"albahr-backend/internal/domain/models"
	"albahr-backend/internal/store"
	"albahr-backend/internal/utils"
	"albahr-backend/internal/whatsapp"

	"github.com/google/uuid"
)

// Status tags reported back through the webhook response body. Meta
// ignores them; they exist for log correlation and tests.
const (
	StatusAdminSuppressed = "admin_reply_suppressed"
	StatusLanguageMenu    = "language_menu_sent"
	StatusWelcomeSent     = "welcome_sent"
	StatusKeywordReply    = "keyword_reply_sent"
	StatusStepHandled     = "step_handled"
	StatusInteraction     = "interaction_handled"
	StatusBookingDone     = "booking_completed"
	StatusNoCapacity      = "no_capacity_restart"
	StatusInvalidChoice   = "invalid_choice"
)

// Sender sends outbound WhatsApp messages. Satisfied by *whatsapp.Client.
type Sender interface {
	SendText(ctx context.Context, to, body string) error
	SendList(ctx context.Context, to string, list *whatsapp.Interactive) error
}

// BookingStore persists finished bookings and exposes existing rows for
// capacity checks. Satisfied by *sheets.Store.
type BookingStore interface {
	AppendBooking(ctx context.Context, rec models.BookingRecord) error
	Rows(ctx context.Context) ([]map[string]string, error)
}

// Engine drives the conversation: one inbound message or menu tap in, at
// most a couple of outbound messages and a session mutation out. All
// state lives in the stores, so the engine itself is stateless and safe
// for concurrent webhooks on different phone numbers.
type Engine struct {
	variant  config.Variant
	catalog  Catalog
	sender   Sender
	bookings BookingStore
	sessions *store.SessionStore
	chats    *store.ChatStore
	admin    *store.AdminTracker
}

func NewEngine(v config.Variant, sender Sender, bookings BookingStore,
	sessions *store.SessionStore, chats *store.ChatStore, admin *store.AdminTracker) *Engine {
	return &Engine{
		variant:  v,
		catalog:  NewCatalog(v),
		sender:   sender,
		bookings: bookings,
		sessions: sessions,
		chats:    chats,
		admin:    admin,
	}
}

// HandleText processes one inbound free-text message.
func (e *Engine) HandleText(ctx context.Context, phone, text string) string {
	e.chats.Append(phone, text, "user")

	// An operator replied from the dashboard moments ago; stay quiet for
	// exactly this one user message so the humans can talk.
	if e.admin.Consume(phone) {
		utils.LogEvent("", "bot", "admin_suppress", "phone="+phone)
		return StatusAdminSuppressed
	}

	sess := e.sessions.Get(phone)
	if sess != nil && sess.InFlow() {
		return e.handleStep(ctx, sess, text)
	}

	if sess == nil {
		return e.handleNewUser(ctx, phone, text)
	}

	// Known user, idle session: answer info keywords, otherwise re-show
	// the menu in their language.
	if topic, ok := MatchTopic(text); ok {
		e.sendText(ctx, phone, e.catalog.InfoReply(sess.Language, topic))
		return StatusKeywordReply
	}
	e.sendList(ctx, phone, e.catalog.WelcomeMenu(sess.Language))
	return StatusWelcomeSent
}

func (e *Engine) handleNewUser(ctx context.Context, phone, text string) string {
	arabic := utils.ContainsArabic(text)

	// Greetings are checked before keywords: Arabic greetings contain
	// substrings that collide with the keyword lists.
	if IsGreeting(text) {
		if arabic {
			e.startSession(phone, models.LangArabic)
			e.sendList(ctx, phone, e.catalog.WelcomeMenu(models.LangArabic))
			return StatusWelcomeSent
		}
		e.sendList(ctx, phone, e.catalog.LanguageMenu())
		return StatusLanguageMenu
	}

	if topic, ok := MatchTopic(text); ok {
		lang := models.LangEnglish
		if arabic {
			lang = models.LangArabic
		}
		e.sendText(ctx, phone, e.catalog.InfoReply(lang, topic))
		return StatusKeywordReply
	}

	// Any other Arabic text skips the language question.
	if arabic {
		e.startSession(phone, models.LangArabic)
		e.sendList(ctx, phone, e.catalog.WelcomeMenu(models.LangArabic))
		return StatusWelcomeSent
	}

	e.sendList(ctx, phone, e.catalog.LanguageMenu())
	return StatusLanguageMenu
}

// HandleInteraction processes one list/button reply identified by its
// row id. Ids are fixed vocabulary; everything user-specific comes from
// the session, never from the id.
func (e *Engine) HandleInteraction(ctx context.Context, phone, id, title string) string {
	e.chats.Append(phone, "Selected: "+title, "user")

	sess := e.sessions.Get(phone)
	lang := models.LangEnglish
	if sess != nil {
		lang = langOrDefault(sess.Language)
	}

	switch {
	case id == "lang_english":
		sess = e.startSession(phone, models.LangEnglish)
		e.sendList(ctx, phone, e.catalog.WelcomeMenu(sess.Language))
		return StatusWelcomeSent

	case id == "lang_arabic":
		sess = e.startSession(phone, models.LangArabic)
		e.sendList(ctx, phone, e.catalog.WelcomeMenu(sess.Language))
		return StatusWelcomeSent

	case id == "book_now":
		return e.startFlow(ctx, phone, lang)

	case strings.HasPrefix(id, "about_"):
		if t, ok := e.variant.TripByID(strings.TrimPrefix(id, "about_")); ok {
			e.sendText(ctx, phone, e.catalog.TripInfo(lang, t))
			return StatusInteraction
		}

	case id == topicPricing || id == topicLocation || id == topicSchedule || id == topicContact:
		e.sendText(ctx, phone, e.catalog.InfoReply(lang, id))
		return StatusKeywordReply
	}

	if sess != nil && sess.InFlow() {
		return e.handleMenuStep(ctx, sess, id, title)
	}

	e.sendText(ctx, phone, e.catalog.InvalidChoice(lang))
	return StatusInvalidChoice
}

// startSession creates or rewinds a session to the idle, language-chosen
// state. Choosing a language mid-flow abandons the flow.
func (e *Engine) startSession(phone string, lang models.Language) *models.Session {
	sess := &models.Session{
		PhoneNumber: phone,
		Language:    lang,
		Step:        models.StepNone,
		CreatedAt:   time.Now(),
	}
	e.sessions.Put(sess)
	return sess
}

func (e *Engine) startFlow(ctx context.Context, phone string, lang models.Language) string {
	sess := e.startSession(phone, lang)
	sess.Step = models.StepAwaitingName
	e.sessions.Put(sess)
	e.sendStepPrompt(ctx, sess)
	return StatusStepHandled
}

// handleStep consumes one free-text answer for the session's current
// step. Invalid input re-sends the step's prompt verbatim and leaves the
// session untouched, so a wrong answer can never advance the flow.
func (e *Engine) handleStep(ctx context.Context, sess *models.Session, text string) string {
	text = strings.TrimSpace(text)

	switch sess.Step {
	case models.StepAwaitingName:
		if len([]rune(text)) < 2 {
			e.sendStepPrompt(ctx, sess)
			return StatusStepHandled
		}
		sess.Name = text
		sess.Step = models.StepAwaitingContact

	case models.StepAwaitingContact:
		normalized, err := utils.NormalizeOmanPhone(text)
		if err != nil {
			e.sendStepPrompt(ctx, sess)
			return StatusStepHandled
		}
		sess.Contact = normalized
		if e.variant.CollectEmail {
			sess.Step = models.StepAwaitingEmail
		} else {
			sess.Step = models.StepAwaitingDate
		}

	case models.StepAwaitingEmail:
		if text == "-" {
			sess.Email = ""
		} else if strings.Contains(text, "@") && strings.Contains(text, ".") {
			sess.Email = text
		} else {
			e.sendStepPrompt(ctx, sess)
			return StatusStepHandled
		}
		sess.Step = models.StepAwaitingDate

	case models.StepAwaitingDate:
		if len([]rune(text)) < 3 {
			e.sendStepPrompt(ctx, sess)
			return StatusStepHandled
		}
		sess.BookingDate = text
		sess.Step = models.StepAwaitingAdults

	case models.StepAwaitingAdults:
		n, err := strconv.Atoi(text)
		if err != nil || n < 1 || n > 50 {
			e.sendStepPrompt(ctx, sess)
			return StatusStepHandled
		}
		sess.Adults = n
		sess.Step = models.StepAwaitingChildren

	case models.StepAwaitingChildren:
		n, err := strconv.Atoi(text)
		if err != nil || n < 0 || n > 50 {
			e.sendStepPrompt(ctx, sess)
			return StatusStepHandled
		}
		sess.Children = n
		if e.variant.CollectInfants {
			sess.Step = models.StepAwaitingInfants
		} else {
			sess.Step = models.StepAwaitingTripType
		}

	case models.StepAwaitingInfants:
		n, err := strconv.Atoi(text)
		if err != nil || n < 0 || n > 20 {
			e.sendStepPrompt(ctx, sess)
			return StatusStepHandled
		}
		sess.Infants = n
		if e.variant.CollectRequests {
			sess.Step = models.StepAwaitingRequests
		} else {
			sess.Step = models.StepAwaitingTripType
		}

	case models.StepAwaitingRequests:
		if text != "-" {
			sess.SpecialRequests = text
		}
		sess.Step = models.StepAwaitingTripType

	case models.StepAwaitingTripType, models.StepAwaitingTime, models.StepAwaitingPayment:
		// These steps only accept menu taps; free text re-shows the menu.
		e.sendStepPrompt(ctx, sess)
		return StatusStepHandled

	default:
		e.sendList(ctx, sess.PhoneNumber, e.catalog.WelcomeMenu(sess.Language))
		return StatusWelcomeSent
	}

	e.sessions.Put(sess)
	return e.enterStep(ctx, sess)
}

// handleMenuStep consumes a menu tap for a menu-driven step.
func (e *Engine) handleMenuStep(ctx context.Context, sess *models.Session, id, title string) string {
	switch sess.Step {
	case models.StepAwaitingTripType:
		t, ok := e.variant.TripByID(id)
		if !ok {
			e.sendStepPrompt(ctx, sess)
			return StatusStepHandled
		}
		// Always the English title: capacity scans and sheet rows match
		// on it regardless of the session language. The catalog localizes
		// it again for display.
		sess.TripType = t.TitleEN
		if e.variant.FinalStepIsPayment() {
			sess.Step = models.StepAwaitingPayment
		} else {
			sess.Step = models.StepAwaitingTime
		}
		e.sessions.Put(sess)
		return e.enterStep(ctx, sess)

	case models.StepAwaitingTime:
		if !strings.HasPrefix(id, "time_") {
			e.sendStepPrompt(ctx, sess)
			return StatusStepHandled
		}
		sess.BookingTime = title
		return e.complete(ctx, sess)

	case models.StepAwaitingPayment:
		if !strings.HasPrefix(id, "pay_") {
			e.sendStepPrompt(ctx, sess)
			return StatusStepHandled
		}
		sess.PaymentMethod = title
		return e.complete(ctx, sess)
	}

	e.sendStepPrompt(ctx, sess)
	return StatusStepHandled
}

// enterStep sends the prompt for a freshly entered step, with the trip
// menu's capacity gate applied on entry.
func (e *Engine) enterStep(ctx context.Context, sess *models.Session) string {
	if sess.Step == models.StepAwaitingTripType && e.variant.MaxCapacity > 0 {
		if len(e.openTrips(ctx, sess)) == 0 {
			return e.restartNoCapacity(ctx, sess)
		}
	}
	e.sendStepPrompt(ctx, sess)
	return StatusStepHandled
}

// sendStepPrompt renders the current step's prompt. Used both when a
// step is entered and when input is rejected, so both paths produce the
// exact same message.
func (e *Engine) sendStepPrompt(ctx context.Context, sess *models.Session) {
	lang := langOrDefault(sess.Language)
	phone := sess.PhoneNumber

	switch sess.Step {
	case models.StepAwaitingName:
		e.sendText(ctx, phone, e.catalog.BookingStart(lang))
	case models.StepAwaitingContact:
		e.sendText(ctx, phone, e.catalog.AskContact(lang, sess.Name))
	case models.StepAwaitingEmail:
		e.sendText(ctx, phone, e.catalog.AskEmail(lang))
	case models.StepAwaitingDate:
		e.sendText(ctx, phone, e.catalog.AskDate(lang))
	case models.StepAwaitingAdults:
		e.sendText(ctx, phone, e.catalog.AskAdults(lang, sess.BookingDate))
	case models.StepAwaitingChildren:
		e.sendText(ctx, phone, e.catalog.AskChildren(lang, sess.Adults))
	case models.StepAwaitingInfants:
		e.sendText(ctx, phone, e.catalog.AskInfants(lang))
	case models.StepAwaitingRequests:
		e.sendText(ctx, phone, e.catalog.AskRequests(lang))
	case models.StepAwaitingTripType:
		trips := e.variant.Trips
		if e.variant.MaxCapacity > 0 {
			trips = e.openTrips(ctx, sess)
		}
		e.sendList(ctx, phone, e.catalog.TripMenu(lang, sess.Name, trips))
	case models.StepAwaitingTime:
		e.sendList(ctx, phone, e.catalog.TimeMenu(lang, sess))
	case models.StepAwaitingPayment:
		e.sendList(ctx, phone, e.catalog.PaymentMenu(lang))
	}
}

// openTrips returns the trip types that can still seat the session's
// party on its date. A sheet read failure fails open: overbooking a
// rare race beats refusing every customer while the sheet is down.
func (e *Engine) openTrips(ctx context.Context, sess *models.Session) []config.TripOption {
	rows, err := e.bookings.Rows(ctx)
	if err != nil {
		utils.LogEvent("", "bot", "capacity_check_failed", "err="+err.Error())
		return e.variant.Trips
	}

	open := make([]config.TripOption, 0, len(e.variant.Trips))
	for _, t := range e.variant.Trips {
		if HasCapacity(rows, sess.BookingDate, t.TitleEN, e.variant.MaxCapacity, sess.TotalGuests()) {
			open = append(open, t)
		}
	}
	return open
}

func (e *Engine) restartNoCapacity(ctx context.Context, sess *models.Session) string {
	e.sendText(ctx, sess.PhoneNumber, e.catalog.NoCapacity(sess.Language, sess.BookingDate))

	restarted := e.startSession(sess.PhoneNumber, sess.Language)
	restarted.Step = models.StepAwaitingName
	e.sessions.Put(restarted)
	return StatusNoCapacity
}

// complete finalizes the booking: re-check capacity, price the party,
// append the sheet row, drop the session, confirm.
func (e *Engine) complete(ctx context.Context, sess *models.Session) string {
	if e.variant.MaxCapacity > 0 {
		if rows, err := e.bookings.Rows(ctx); err == nil {
			if !HasCapacity(rows, sess.BookingDate, sess.TripType, e.variant.MaxCapacity, sess.TotalGuests()) {
				return e.restartNoCapacity(ctx, sess)
			}
		}
	}

	price := QuoteDisplay(e.variant, sess.TripType, sess.Adults, sess.Children)
	now := time.Now()

	rec := models.BookingRecord{
		BookingID:       bookingID(now),
		CreatedAt:       now,
		Name:            sess.Name,
		Contact:         sess.Contact,
		WhatsAppID:      sess.PhoneNumber,
		Email:           sess.Email,
		Intent:          "booking",
		TripType:        sess.TripType,
		BookingDate:     sess.BookingDate,
		BookingTime:     sess.BookingTime,
		Adults:          sess.Adults,
		Children:        sess.Children,
		Infants:         sess.Infants,
		TotalGuests:     sess.TotalGuests(),
		TotalAmount:     price,
		PaymentMethod:   sess.PaymentMethod,
		PaymentStatus:   models.PaymentStatusPending,
		BookingStatus:   models.BookingStatusConfirmed,
		SpecialRequests: sess.SpecialRequests,
		Language:        sess.Language,
	}

	saved := true
	if err := e.bookings.AppendBooking(ctx, rec); err != nil {
		saved = false
		utils.LogEvent("", "bot", "booking_append_failed",
			"booking_id="+rec.BookingID+" err="+err.Error())
	}

	e.sessions.Delete(sess.PhoneNumber)
	e.sendText(ctx, sess.PhoneNumber, e.catalog.Confirmation(sess.Language, sess, price, saved))
	utils.LogEvent("", "bot", "booking_completed",
		"booking_id="+rec.BookingID+" phone="+sess.PhoneNumber+" total="+price)
	return StatusBookingDone
}

func bookingID(now time.Time) string {
	suffix := uuid.NewString()
	if i := strings.IndexByte(suffix, '-'); i > 0 {
		suffix = suffix[:i]
	}
	return "BK-" + now.Format("20060102150405") + "-" + suffix
}

// sendText delivers one bot text message and mirrors it into the chat
// history the dashboard shows.
func (e *Engine) sendText(ctx context.Context, phone, body string) {
	if err := e.sender.SendText(ctx, phone, body); err != nil {
		utils.LogEvent("", "bot", "send_failed", "phone="+phone+" err="+err.Error())
		return
	}
	e.chats.Append(phone, body, "bot")
}

// sendList delivers an interactive list, recording its body text.
func (e *Engine) sendList(ctx context.Context, phone string, list *whatsapp.Interactive) {
	if err := e.sender.SendList(ctx, phone, list); err != nil {
		utils.LogEvent("", "bot", "send_failed", "phone="+phone+" err="+err.Error())
		return
	}
	e.chats.Append(phone, list.Body.Text, "bot")
}
