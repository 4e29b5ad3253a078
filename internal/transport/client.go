package transport

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	HealthPath    = "/health"
	ChatPath      = "/api/chat"
	SearchPath    = "/api/search"
	RemindersPath = "/api/reminders"

	// SearchTypeWeb is the only search type the backend is asked for.
	SearchTypeWeb = "web"

	DefaultTimeout = 10 * time.Second
)

type HealthResponse struct {
	Status string `json:"status"`
}

// OK reports whether the backend declared itself healthy.
func (h *HealthResponse) OK() bool {
	return h != nil && h.Status == "ok"
}

type ChatRequest struct {
	Message        string `json:"message"`
	ConversationID string `json:"conversationId,omitempty"`
}

type ChatResponse struct {
	Response       string `json:"response"`
	ConversationID string `json:"conversationId,omitempty"`
}

type SearchRequest struct {
	Query string `json:"query"`
	Type  string `json:"type"`
}

type SearchResult struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
	URL     string `json:"url,omitempty"`
}

type SearchResponse struct {
	Results []SearchResult `json:"results,omitempty"`
}

type ReminderRequest struct {
	Text string `json:"text"`
	Time string `json:"time"`
}

// Client talks to the Voice AI backend. It never retries; callers own retry policy.
type Client struct {
	http    *resty.Client
	baseURL string
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	baseURL = strings.TrimRight(baseURL, "/")

	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetRetryCount(0).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", "voiceai-tui/1.0")

	return &Client{
		http:    httpClient,
		baseURL: baseURL,
	}
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	var out HealthResponse
	if err := c.do(ctx, "GET", HealthPath, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	var out ChatResponse
	if err := c.do(ctx, "POST", ChatPath, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Search(ctx context.Context, req SearchRequest) (*SearchResponse, error) {
	if req.Type == "" {
		req.Type = SearchTypeWeb
	}
	var out SearchResponse
	if err := c.do(ctx, "POST", SearchPath, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateReminder only checks the status code; the response body is ignored.
func (c *Client) CreateReminder(ctx context.Context, req ReminderRequest) error {
	return c.do(ctx, "POST", RemindersPath, req, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	r := c.http.R().SetContext(ctx)
	if body != nil {
		r.SetBody(body)
	}

	resp, err := r.Execute(method, path)
	if err != nil {
		return &TransportError{Kind: KindNetwork, Endpoint: path, Err: err}
	}
	if !resp.IsSuccess() {
		return &TransportError{Kind: KindStatus, Status: resp.StatusCode(), Endpoint: path}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return &TransportError{Kind: KindDecode, Status: resp.StatusCode(), Endpoint: path, Err: err}
	}
	return nil
}
