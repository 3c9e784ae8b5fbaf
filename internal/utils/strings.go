package utils

import (
	"strings"
)

// TrimOrEmpty normalizes user input without turning nil into "nil".
func TrimOrEmpty(s string) string {
	return strings.TrimSpace(s)
}

// NormalizeSpace collapses repeated whitespace into a single space.
func NormalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// ContainsArabic reports whether s has at least one character in the
// Arabic Unicode block. Used for language auto-detection on first contact.
func ContainsArabic(s string) bool {
	for _, r := range s {
		if r >= 0x0600 && r <= 0x06FF {
			return true
		}
	}
	return false
}

// arabicToEnglish maps common Arabic words to English before sheet writes
// so the back office reads one language. Unknown words pass through.
var arabicToEnglish = map[string]string{
	"أحمد":  "Ahmed",
	"محمد":  "Mohammed",
	"خالد":  "Khalid",
	"مريم":  "Maryam",
	"فاطمة": "Fatima",
	"نعم":   "Yes",
	"لا":    "No",
	"غداً":  "Tomorrow",
	"بكرا":  "Tomorrow",
	"اليوم": "Today",
}

// TranslateArabic does a word-by-word best-effort translation of common
// Arabic responses. Text without Arabic characters is returned unchanged.
func TranslateArabic(s string) string {
	if !ContainsArabic(s) {
		return s
	}
	words := strings.Fields(s)
	out := make([]string, 0, len(words))
	for _, w := range words {
		key := strings.Trim(w, ".,!?؟،")
		if en, ok := arabicToEnglish[key]; ok {
			out = append(out, en)
			continue
		}
		out = append(out, w)
	}
	return strings.Join(out, " ")
}
