package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

type fakeDispatcher struct {
	textPhone, text           string
	interactionID, interTitle string
}

func (f *fakeDispatcher) HandleText(_ context.Context, phone, text string) string {
	f.textPhone, f.text = phone, text
	return "step_handled"
}

func (f *fakeDispatcher) HandleInteraction(_ context.Context, phone, id, title string) string {
	f.interactionID, f.interTitle = id, title
	return "interaction_handled"
}

func newWebhookRouter(bot Dispatcher) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := WebhookHandler{VerifyToken: "secret-token", Bot: bot}
	r.GET("/webhook", h.Verify)
	r.POST("/webhook", h.Receive)
	return r
}

func TestWebhookVerifyEchoesChallenge(t *testing.T) {
	r := newWebhookRouter(&fakeDispatcher{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet,
		"/webhook?hub.mode=subscribe&hub.verify_token=secret-token&hub.challenge=12345", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK || w.Body.String() != "12345" {
		t.Fatalf("verify: code=%d body=%q", w.Code, w.Body.String())
	}
}

func TestWebhookVerifyRejectsWrongToken(t *testing.T) {
	r := newWebhookRouter(&fakeDispatcher{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet,
		"/webhook?hub.mode=subscribe&hub.verify_token=wrong&hub.challenge=12345", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("verify with bad token: code=%d, want 403", w.Code)
	}
}

func TestWebhookReceiveDispatchesText(t *testing.T) {
	bot := &fakeDispatcher{}
	r := newWebhookRouter(bot)

	payload := `{"object":"whatsapp_business_account","entry":[{"changes":[{"value":{
		"messages":[{"from":"96891234567","type":"text","text":{"body":"hello"}}]}}]}]}`

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("code = %d, want 200", w.Code)
	}
	if bot.textPhone != "96891234567" || bot.text != "hello" {
		t.Fatalf("dispatch: phone=%q text=%q", bot.textPhone, bot.text)
	}
	if !strings.Contains(w.Body.String(), "step_handled") {
		t.Fatalf("body = %q", w.Body.String())
	}
}

func TestWebhookReceiveDispatchesListReply(t *testing.T) {
	bot := &fakeDispatcher{}
	r := newWebhookRouter(bot)

	payload := `{"entry":[{"changes":[{"value":{"messages":[{"from":"96891234567",
		"type":"interactive","interactive":{"type":"list_reply",
		"list_reply":{"id":"trip_dolphin","title":"Dolphin Watching"}}}]}}]}]}`

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("code = %d, want 200", w.Code)
	}
	if bot.interactionID != "trip_dolphin" || bot.interTitle != "Dolphin Watching" {
		t.Fatalf("dispatch: id=%q title=%q", bot.interactionID, bot.interTitle)
	}
}

func TestWebhookReceiveAlways200(t *testing.T) {
	r := newWebhookRouter(&fakeDispatcher{})

	for name, body := range map[string]string{
		"malformed json": `{"entry": nope`,
		"status update":  `{"entry":[{"changes":[{"value":{"statuses":[{"id":"x"}]}}]}]}`,
		"empty payload":  `{}`,
	} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("%s: code = %d, want 200", name, w.Code)
		}
	}
}
