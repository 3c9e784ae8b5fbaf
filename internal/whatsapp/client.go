package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"albahr-backend/internal/utils"
)

const (
	graphAPIURL     = "https://graph.facebook.com"
	graphAPIVersion = "v17.0"
)

// Client talks to the WhatsApp Cloud API for one sender phone number.
type Client struct {
	accessToken string
	httpClient  *http.Client
	baseURL     string
}

// NewClient builds a Cloud API client. The 30s timeout is the only
// cancellation applied to outbound sends.
func NewClient(accessToken, phoneNumberID string) *Client {
	return &Client{
		accessToken: accessToken,
		httpClient:  &http.Client{Timeout: 30 * time.Second},
		baseURL:     fmt.Sprintf("%s/%s/%s", graphAPIURL, graphAPIVersion, phoneNumberID),
	}
}

// SendText delivers a plain text message. The recipient must already be
// in canonical international form.
func (c *Client) SendText(ctx context.Context, to, body string) error {
	return c.post(ctx, outboundMessage{
		MessagingProduct: "whatsapp",
		RecipientType:    "individual",
		To:               to,
		Type:             "text",
		Text:             &textBody{Body: body},
	})
}

// SendList delivers an interactive list menu, falling back to a numbered
// plain-text menu when the payload cannot satisfy the API's constraints.
func (c *Client) SendList(ctx context.Context, to string, list *Interactive) error {
	cleaned := clampList(list)
	if cleaned == nil {
		fallback := FallbackText(list)
		if fallback == "" {
			fallback = "Please select from the menu options."
		}
		return c.SendText(ctx, to, fallback)
	}
	return c.post(ctx, outboundMessage{
		MessagingProduct: "whatsapp",
		RecipientType:    "individual",
		To:               to,
		Type:             "interactive",
		Interactive:      cleaned,
	})
}

type sendResponse struct {
	Messages []struct {
		ID string `json:"id"`
	} `json:"messages"`
	Error *apiError `json:"error"`
}

type apiError struct {
	Message      string `json:"message"`
	Type         string `json:"type"`
	Code         int    `json:"code"`
	ErrorSubcode int    `json:"error_subcode"`
	FbtraceID    string `json:"fbtrace_id"`
}

func (c *Client) post(ctx context.Context, msg outboundMessage) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/messages", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("whatsapp send: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		var parsed sendResponse
		if json.Unmarshal(body, &parsed) == nil && parsed.Error != nil {
			utils.LogEvent("", "whatsapp", "send_failed",
				fmt.Sprintf("status=%d code=%d type=%s msg=%s", resp.StatusCode, parsed.Error.Code, parsed.Error.Type, parsed.Error.Message))
			return fmt.Errorf("whatsapp api error %d (code %d): %s", resp.StatusCode, parsed.Error.Code, parsed.Error.Message)
		}
		return fmt.Errorf("whatsapp api error %d", resp.StatusCode)
	}

	utils.LogEvent("", "whatsapp", "sent", "to="+msg.To+" type="+msg.Type)
	return nil
}
