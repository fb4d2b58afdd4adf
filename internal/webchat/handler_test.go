package webchat

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/websocket"

	"github.com/eliteproperties/realty-platform/internal/assistant"
	"github.com/eliteproperties/realty-platform/internal/brokers"
	"github.com/eliteproperties/realty-platform/internal/insights"
	"github.com/eliteproperties/realty-platform/internal/properties"
)

func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	engine := assistant.NewEngine(
		properties.NewInMemoryRepository(properties.SeedListings()),
		brokers.NewInMemoryRepository(brokers.SeedBrokers()),
		insights.NewInMemoryRepository(insights.SeedInsights()),
		assistant.NewMatcher(0, 0, 0),
		nil,
	)
	svc := assistant.NewChatService(engine, assistant.NewMemorySessionStore(), nil, nil)
	return NewHandler(svc, nil)
}

func TestHandleMessage(t *testing.T) {
	h := newTestHandler(t)

	body := []byte(`{"sessionId":"s1","message":"hello"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/chat/message", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	h.HandleMessage(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp assistant.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "s1", resp.SessionID)
	assert.Equal(t, assistant.ReplyQuickActions, resp.Reply.Kind)
	assert.NotEmpty(t, resp.Reply.Text)
}

func TestHandleMessageAssignsSession(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/chat/message", bytes.NewReader([]byte(`{"message":"hello"}`)))
	rec := httptest.NewRecorder()
	h.HandleMessage(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp assistant.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.SessionID)
}

func TestHandleMessageValidation(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/chat/message", bytes.NewReader([]byte(`{"sessionId":"s1"}`)))
	rec := httptest.NewRecorder()
	h.HandleMessage(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/api/chat/message", bytes.NewReader([]byte(`not json`)))
	rec = httptest.NewRecorder()
	h.HandleMessage(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleReset(t *testing.T) {
	h := newTestHandler(t)

	// Start a wizard, then reset over HTTP; the next message classifies fresh.
	send := func(message string) assistant.Response {
		body, _ := json.Marshal(assistant.MessageRequest{SessionID: "s1", Message: message})
		req := httptest.NewRequest(http.MethodPost, "/api/chat/message", bytes.NewReader(body))
		rec := httptest.NewRecorder()
		h.HandleMessage(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
		var resp assistant.Response
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		return resp
	}

	resp := send("book a meeting")
	assert.Equal(t, assistant.ReplyBrokers, resp.Reply.Kind)

	req := httptest.NewRequest(http.MethodPost, "/api/chat/reset", bytes.NewReader([]byte(`{"sessionId":"s1"}`)))
	rec := httptest.NewRecorder()
	h.HandleReset(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	resp = send("hello")
	assert.Equal(t, assistant.ReplyQuickActions, resp.Reply.Kind)
}

func TestHandleResetValidation(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/chat/reset", bytes.NewReader([]byte(`{}`)))
	rec := httptest.NewRecorder()
	h.HandleReset(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleQuickActions(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/chat/actions", nil)
	rec := httptest.NewRecorder()
	h.HandleQuickActions(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string][]assistant.QuickAction
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp["quickActions"], len(assistant.DefaultQuickActions()))
}

func TestWebSocketConversation(t *testing.T) {
	h := newTestHandler(t)
	srv := httptest.NewServer(http.HandlerFunc(h.HandleWebSocket))
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "?session=ws-1"
	conn, err := websocket.Dial(wsURL, "", srv.URL)
	require.NoError(t, err)
	defer conn.Close()

	var out OutboundMessage
	require.NoError(t, websocket.JSON.Receive(conn, &out))
	assert.Equal(t, "session", out.Type)
	assert.Equal(t, "ws-1", out.SessionID)

	require.NoError(t, websocket.JSON.Send(conn, InboundMessage{Type: "message", Text: "hello"}))

	require.NoError(t, websocket.JSON.Receive(conn, &out))
	assert.Equal(t, "typing", out.Type)

	require.NoError(t, websocket.JSON.Receive(conn, &out))
	assert.Equal(t, "message", out.Type)
	require.NotNil(t, out.Reply)
	assert.Equal(t, assistant.ReplyQuickActions, out.Reply.Kind)

	require.NoError(t, websocket.JSON.Send(conn, InboundMessage{Type: "ping"}))
	require.NoError(t, websocket.JSON.Receive(conn, &out))
	assert.Equal(t, "pong", out.Type)

	require.NoError(t, websocket.JSON.Send(conn, InboundMessage{Type: "reset"}))
	require.NoError(t, websocket.JSON.Receive(conn, &out))
	assert.Equal(t, "reset", out.Type)
}
