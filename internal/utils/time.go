package utils

import "time"

const layoutSheetTimestamp = "2006-01-02 03:04 PM"

// NowUTC returns current time in UTC.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// SheetTimestamp formats a time the way lead rows have always stored it.
func SheetTimestamp(t time.Time) string {
	return t.In(time.Local).Format(layoutSheetTimestamp)
}
