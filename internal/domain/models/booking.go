package models

import "time"

// Booking lifecycle constants. Every completed flow is written as
// Confirmed; payment is settled manually by the back office afterwards.
const (
	BookingStatusConfirmed = "Confirmed"
	BookingStatusCancelled = "Cancelled"

	PaymentStatusPending = "Pending"
	PaymentStatusPaid    = "Paid"
)

// BookingRecord is one finalized reservation, appended as a single sheet
// row when the conversation reaches its terminal step. Never mutated
// afterwards except for the payment-status column.
type BookingRecord struct {
	BookingID       string
	CreatedAt       time.Time
	Name            string
	Contact         string
	WhatsAppID      string
	Email           string
	Intent          string
	TripType        string
	BookingDate     string
	BookingTime     string
	Adults          int
	Children        int
	Infants         int
	TotalGuests     int
	TotalAmount     string
	PaymentMethod   string
	PaymentStatus   string
	BookingStatus   string
	SpecialRequests string
	Language        Language
}
