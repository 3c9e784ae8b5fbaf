package whatsapp

// Webhook payload structs for POST /webhook deliveries. Only the
// messages field is consumed; statuses and contacts are ignored.

type WebhookPayload struct {
	Object string         `json:"object"`
	Entry  []WebhookEntry `json:"entry"`
}

type WebhookEntry struct {
	ID      string          `json:"id"`
	Changes []WebhookChange `json:"changes"`
}

type WebhookChange struct {
	Field string       `json:"field"`
	Value WebhookValue `json:"value"`
}

type WebhookValue struct {
	MessagingProduct string            `json:"messaging_product"`
	Metadata         WebhookMetadata   `json:"metadata"`
	Messages         []IncomingMessage `json:"messages,omitempty"`
}

type WebhookMetadata struct {
	DisplayPhoneNumber string `json:"display_phone_number"`
	PhoneNumberID      string `json:"phone_number_id"`
}

type IncomingMessage struct {
	From        string               `json:"from"`
	ID          string               `json:"id"`
	Timestamp   string               `json:"timestamp"`
	Type        string               `json:"type"`
	Text        *IncomingText        `json:"text,omitempty"`
	Interactive *IncomingInteractive `json:"interactive,omitempty"`
}

type IncomingText struct {
	Body string `json:"body"`
}

type IncomingInteractive struct {
	Type        string         `json:"type"`
	ListReply   *IncomingReply `json:"list_reply,omitempty"`
	ButtonReply *IncomingReply `json:"button_reply,omitempty"`
}

type IncomingReply struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// Reply returns whichever reply variant is present, nil-safe.
func (i *IncomingInteractive) Reply() *IncomingReply {
	if i == nil {
		return nil
	}
	if i.ListReply != nil {
		return i.ListReply
	}
	return i.ButtonReply
}

// FirstMessage digs out entry[0].changes[0].value.messages[0], the only
// shape the provider delivers for user traffic. Returns nil when the
// payload carries no message (e.g. a status update).
func (p *WebhookPayload) FirstMessage() *IncomingMessage {
	for _, entry := range p.Entry {
		for _, change := range entry.Changes {
			if len(change.Value.Messages) > 0 {
				return &change.Value.Messages[0]
			}
		}
	}
	return nil
}
