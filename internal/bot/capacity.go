package bot

import (
	"strconv"
	"strings"

	"albahr-backend/internal/domain/models"
)

// BookedGuests sums the guest counts of non-cancelled rows matching the
// date and trip type. Dates are compared as the exact strings users typed;
// there is deliberately no date parsing or normalization.
func BookedGuests(rows []map[string]string, date, tripType string) int {
	sum := 0
	for _, row := range rows {
		if row["Booking Date"] != date || row["Tour Type"] != tripType {
			continue
		}
		if strings.EqualFold(row["Booking Status"], models.BookingStatusCancelled) {
			continue
		}
		if n, err := strconv.Atoi(strings.TrimSpace(row["Total Guests"])); err == nil {
			sum += n
		}
	}
	return sum
}

// Available returns remaining seats for a date/type against the fixed
// vessel capacity. There is no reservation between this check and the
// booking append, so two racing bookings can jointly overbook; accepted.
func Available(rows []map[string]string, date, tripType string, maxCapacity int) int {
	return maxCapacity - BookedGuests(rows, date, tripType)
}

// HasCapacity reports whether a requested party fits.
func HasCapacity(rows []map[string]string, date, tripType string, maxCapacity, requested int) bool {
	if maxCapacity <= 0 {
		return true
	}
	return Available(rows, date, tripType, maxCapacity) >= requested
}
