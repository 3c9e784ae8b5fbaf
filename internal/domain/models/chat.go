package models

// ChatMessage is one entry in a phone number's two-way chat history.
type ChatMessage struct {
	ID        int    `json:"id"`
	Message   string `json:"message"`
	Sender    string `json:"sender"` // "user" or "admin"
	Timestamp string `json:"timestamp"`
}

// ChatUser summarizes a phone number's history for the dashboard list.
type ChatUser struct {
	PhoneNumber   string `json:"phone_number"`
	LastMessage   string `json:"last_message"`
	LastSender    string `json:"last_sender"`
	LastTimestamp string `json:"last_timestamp"`
	MessageCount  int    `json:"message_count"`
}
