package models

import "time"

// Language is the user's chosen conversation language.
type Language string

const (
	LangEnglish Language = "english"
	LangArabic  Language = "arabic"
)

// Step identifies which single input the conversation is waiting for.
// Steps are linear; the engine only ever writes the field belonging to
// the current step, so fields can never be filled out of order.
type Step string

const (
	StepNone             Step = ""
	StepAwaitingName     Step = "awaiting_name"
	StepAwaitingContact  Step = "awaiting_contact"
	StepAwaitingEmail    Step = "awaiting_email"
	StepAwaitingDate     Step = "awaiting_date"
	StepAwaitingAdults   Step = "awaiting_adults"
	StepAwaitingChildren Step = "awaiting_children"
	StepAwaitingInfants  Step = "awaiting_infants"
	StepAwaitingRequests Step = "awaiting_special_requests"
	StepAwaitingTripType Step = "awaiting_trip_type"
	StepAwaitingTime     Step = "awaiting_time"
	StepAwaitingPayment  Step = "awaiting_payment_method"
)

// Session is the in-memory record of one phone number's conversation.
// A session exists iff the user is mid-flow or has picked a language.
type Session struct {
	PhoneNumber string    `json:"phone_number"`
	Language    Language  `json:"language"`
	Step        Step      `json:"step"`
	CreatedAt   time.Time `json:"created_at"`

	Name            string `json:"name"`
	Contact         string `json:"contact"`
	Email           string `json:"email"`
	TripType        string `json:"trip_type"`
	BookingDate     string `json:"booking_date"`
	Adults          int    `json:"adults_count"`
	Children        int    `json:"children_count"`
	Infants         int    `json:"infants_count"`
	SpecialRequests string `json:"special_requests"`
	BookingTime     string `json:"booking_time"`
	PaymentMethod   string `json:"payment_method"`
}

// TotalGuests counts seat-occupying guests. Infants ride free and are
// reported separately on the booking row.
func (s *Session) TotalGuests() int {
	return s.Adults + s.Children
}

// InFlow reports whether the session is mid-booking (as opposed to a
// language-only session left over from the welcome menu).
func (s *Session) InFlow() bool {
	return s.Step != StepNone
}
