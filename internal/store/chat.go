package store

import (
	"sort"
	"sync"
	"time"

	"albahr-backend/internal/domain/models"
)

// maxHistoryPerUser bounds memory per phone number.
const maxHistoryPerUser = 200

// ChatStore keeps the two-way chat history the dashboard reads. Unlike
// sessions, histories are append-only and never expire while the process
// lives, so they get a plain mutex-guarded map.
type ChatStore struct {
	mu       sync.RWMutex
	messages map[string][]models.ChatMessage
	lastID   map[string]int
}

func NewChatStore() *ChatStore {
	return &ChatStore{
		messages: map[string][]models.ChatMessage{},
		lastID:   map[string]int{},
	}
}

// Append records one message for a phone number, trimming history to the
// newest maxHistoryPerUser entries. IDs count all messages ever stored
// for the phone, so they stay unique after the trim discards old ones.
func (c *ChatStore) Append(phone, message, sender string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.lastID[phone]++
	history := c.messages[phone]
	history = append(history, models.ChatMessage{
		ID:        c.lastID[phone],
		Message:   message,
		Sender:    sender,
		Timestamp: time.Now().Format(time.RFC3339),
	})
	if len(history) > maxHistoryPerUser {
		history = history[len(history)-maxHistoryPerUser:]
	}
	c.messages[phone] = history
}

// Messages returns a phone number's history ordered by timestamp.
func (c *ChatStore) Messages(phone string) []models.ChatMessage {
	c.mu.RLock()
	defer c.mu.RUnlock()

	history := c.messages[phone]
	out := make([]models.ChatMessage, len(history))
	copy(out, history)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp < out[j].Timestamp })
	return out
}

// Users summarizes every phone number with history, newest message first.
func (c *ChatStore) Users() []models.ChatUser {
	c.mu.RLock()
	defer c.mu.RUnlock()

	users := make([]models.ChatUser, 0, len(c.messages))
	for phone, history := range c.messages {
		if len(history) == 0 {
			continue
		}
		last := history[len(history)-1]
		users = append(users, models.ChatUser{
			PhoneNumber:   phone,
			LastMessage:   last.Message,
			LastSender:    last.Sender,
			LastTimestamp: last.Timestamp,
			MessageCount:  len(history),
		})
	}
	sort.Slice(users, func(i, j int) bool { return users[i].LastTimestamp > users[j].LastTimestamp })
	return users
}

// TotalMessages counts stored messages across all users.
func (c *ChatStore) TotalMessages() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	total := 0
	for _, history := range c.messages {
		total += len(history)
	}
	return total
}

// TotalUsers counts phone numbers with at least one stored message.
func (c *ChatStore) TotalUsers() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.messages)
}
