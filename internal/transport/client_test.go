package transport

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, 2*time.Second)
}

func TestHealth_OK(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, HealthPath, r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	resp, err := c.Health(context.Background())

	require.NoError(t, err)
	assert.True(t, resp.OK())
}

func TestHealth_UnrecognizedPayload(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"degraded"}`))
	})

	resp, err := c.Health(context.Background())

	require.NoError(t, err)
	assert.False(t, resp.OK())
}

func TestChat_SendsJSONAndOmitsEmptyConversationID(t *testing.T) {
	var got map[string]any
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, ChatPath, r.URL.Path)
		assert.Contains(t, r.Header.Get("Content-Type"), "application/json")
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"response":"hi there","conversationId":"conv-1"}`))
	})

	resp, err := c.Chat(context.Background(), ChatRequest{Message: "hello"})

	require.NoError(t, err)
	assert.Equal(t, "hi there", resp.Response)
	assert.Equal(t, "conv-1", resp.ConversationID)
	assert.Equal(t, "hello", got["message"])
	_, present := got["conversationId"]
	assert.False(t, present, "conversationId should be omitted when unset")
}

func TestChat_CarriesConversationID(t *testing.T) {
	var got ChatRequest
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"response":"again"}`))
	})

	resp, err := c.Chat(context.Background(), ChatRequest{Message: "more", ConversationID: "conv-1"})

	require.NoError(t, err)
	assert.Equal(t, "conv-1", got.ConversationID)
	assert.Empty(t, resp.ConversationID)
}

func TestChat_StatusError(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := c.Chat(context.Background(), ChatRequest{Message: "hello"})

	require.Error(t, err)
	assert.True(t, IsStatus(err))
	assert.False(t, IsNetwork(err))
	assert.Equal(t, http.StatusInternalServerError, StatusCode(err))
}

func TestChat_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()
	c := NewClient(url, time.Second)

	_, err := c.Chat(context.Background(), ChatRequest{Message: "hello"})

	require.Error(t, err)
	assert.True(t, IsNetwork(err))
	assert.Equal(t, 0, StatusCode(err))
}

func TestChat_DecodeError(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	})

	_, err := c.Chat(context.Background(), ChatRequest{Message: "hello"})

	var te *TransportError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, KindDecode, te.Kind)
}

func TestSearch_DefaultsToWeb(t *testing.T) {
	var got SearchRequest
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, SearchPath, r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"results":[{"title":"Go","snippet":"The Go language"}]}`))
	})

	resp, err := c.Search(context.Background(), SearchRequest{Query: "golang"})

	require.NoError(t, err)
	assert.Equal(t, SearchRequest{Query: "golang", Type: SearchTypeWeb}, got)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "Go", resp.Results[0].Title)
}

func TestCreateReminder_IgnoresBody(t *testing.T) {
	var got ReminderRequest
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, RemindersPath, r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`<html>created</html>`))
	})

	err := c.CreateReminder(context.Background(), ReminderRequest{Text: "Call mom", Time: "2025-03-01T09:30:00.000Z"})

	require.NoError(t, err)
	assert.Equal(t, "Call mom", got.Text)
	assert.Equal(t, "2025-03-01T09:30:00.000Z", got.Time)
}

func TestCreateReminder_StatusError(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	})

	err := c.CreateReminder(context.Background(), ReminderRequest{Text: "x", Time: "y"})

	assert.True(t, IsStatus(err))
	assert.Equal(t, http.StatusBadRequest, StatusCode(err))
}

func TestNewClient_TrimsTrailingSlash(t *testing.T) {
	c := NewClient("http://example.test/", 0)
	assert.Equal(t, "http://example.test", c.BaseURL())
}
