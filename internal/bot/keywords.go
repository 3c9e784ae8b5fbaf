package bot

import (
	"strings"

	"albahr-backend/internal/domain/models"
)

// Informational topics a user can reach by keyword or menu tap.
const (
	topicLocation = "location"
	topicPricing  = "pricing"
	topicSchedule = "schedule"
	topicContact  = "contact"
)

// keywordTopics pairs each topic with the words (both languages) that
// trigger its canned reply. Order matters: the first topic with a hit
// wins, matching the historical if/elif chain.
var keywordTopics = []struct {
	topic string
	words []string
}{
	{topicLocation, []string{"where", "location", "address", "located", "map", "اين", "موقع", "عنوان"}},
	{topicPricing, []string{"price", "cost", "how much", "fee", "charge", "سعر", "كم", "ثمن", "تكلفة"}},
	{topicSchedule, []string{"time", "schedule", "hour", "when", "available", "وقت", "موعد", "جدول", "متى"}},
	{topicContact, []string{"contact", "phone", "call", "number", "whatsapp", "اتصال", "هاتف", "رقم", "اتصل"}},
}

// MatchTopic scans free text for an informational keyword and returns the
// matched topic. Runs only outside an active flow step.
func MatchTopic(text string) (string, bool) {
	lower := strings.ToLower(text)
	for _, kt := range keywordTopics {
		for _, w := range kt.words {
			if strings.Contains(lower, w) {
				return kt.topic, true
			}
		}
	}
	return "", false
}

var greetingsEnglish = []string{
	"hi", "hello", "hey", "start", "menu", "hola",
	"good morning", "good afternoon", "good evening",
}

var greetingsArabic = []string{
	"مرحبا", "اهلا", "السلام عليكم", "اهلين", "سلام", "مرحباً", "أهلاً", "السلام",
}

// IsGreeting reports whether text is a recognized opening in either
// language. New users who greet get the language menu instead of a reply.
func IsGreeting(text string) bool {
	lower := strings.ToLower(strings.TrimSpace(text))
	for _, g := range greetingsEnglish {
		if lower == g {
			return true
		}
	}
	for _, g := range greetingsArabic {
		if strings.Contains(text, g) {
			return true
		}
	}
	return false
}

// langOrDefault keeps prompts deterministic before a language is chosen.
func langOrDefault(lang models.Language) models.Language {
	if lang == models.LangArabic {
		return models.LangArabic
	}
	return models.LangEnglish
}
