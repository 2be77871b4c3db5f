// Package coach talks to the remote conversational fitness coach.
package coach

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// NoResponseText is shown when the coach answers without any reply text.
const NoResponseText = "No response received from AI."

// replyFields are the JSON fields that may carry the reply, in priority order.
var replyFields = []string{"response", "reply", "output", "message"}

// ChatRequest is one user message for the coach.
type ChatRequest struct {
	Task      TaskType // defaults to TaskChat
	Message   string
	SessionID string
}

// ChatResponse holds the coach's reply.
type ChatResponse struct {
	Text      string
	LatencyMs int64
	// Empty is true when the coach sent no reply text and Text holds
	// NoResponseText.
	Empty bool
}

// Client provides access to the remote coach.
type Client interface {
	// Chat sends a message within a conversation and returns the reply.
	Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error)

	// Available checks whether the coach endpoint is reachable.
	Available(ctx context.Context) bool
}

type httpClient struct {
	cfg      Config
	http     *http.Client
	limiter  *rate.Limiter
	observer Observer
}

// NewClient creates a Client for cfg.Endpoint.
func NewClient(cfg Config, observer Observer) Client {
	if observer == nil {
		observer = NoopObserver{}
	}
	limit := rate.Inf
	if cfg.RatePerMinute > 0 {
		limit = rate.Limit(cfg.RatePerMinute / 60)
	}
	return &httpClient{
		cfg: cfg,
		http: &http.Client{
			Transport: &http.Transport{
				Proxy: http.ProxyFromEnvironment,
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
		limiter:  rate.NewLimiter(limit, 3),
		observer: observer,
	}
}

// chatRequest is the JSON body sent to POST /chat.
type chatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id"`
}

// statusError is a non-2xx answer from the coach.
type statusError struct {
	code int
	body string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("coach returned status %d: %s", e.code, e.body)
}

func (c *httpClient) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	if !c.cfg.Enabled {
		return nil, ErrDisabled
	}
	if strings.TrimSpace(req.Message) == "" {
		return nil, fmt.Errorf("%w: empty message", ErrInvalidOutput)
	}
	task := req.Task
	if task == "" {
		task = TaskChat
	}
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, time.Duration(c.cfg.TaskTimeout(task))*time.Millisecond)
	defer cancel()

	body := chatRequest{Message: req.Message, SessionID: req.SessionID}

	var lastErr error
	attempts := 1 + c.cfg.MaxRetries
	made := 0

	for i := 0; i < attempts; i++ {
		if err := c.limiter.Wait(ctx); err != nil {
			lastErr = fmt.Errorf("%w: %v", ErrRateLimited, err)
			break
		}
		made++
		text, err := c.doRequest(ctx, body)
		if err == nil {
			latency := time.Since(start).Milliseconds()
			c.observer.OnCallComplete(CallEvent{Task: task, LatencyMs: latency, Attempts: made, Success: true})
			resp := &ChatResponse{Text: text, LatencyMs: latency}
			if text == "" {
				resp.Text = NoResponseText
				resp.Empty = true
			}
			return resp, nil
		}
		lastErr = err

		if ctx.Err() != nil || !retryable(err) {
			break
		}
	}

	err := c.classify(ctx, lastErr)
	c.observer.OnCallComplete(CallEvent{
		Task:      task,
		LatencyMs: time.Since(start).Milliseconds(),
		Attempts:  made,
		Success:   false,
		ErrorCode: errorCode(err),
	})
	return nil, err
}

func (c *httpClient) classify(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, ErrRateLimited):
		return err
	case ctx.Err() != nil:
		return ErrTimeout
	case isConnectionError(err):
		return ErrUnavailable
	case errors.Is(err, ErrInvalidOutput):
		return err
	default:
		return fmt.Errorf("%w: %v", ErrRetryExhausted, err)
	}
}

func (c *httpClient) doRequest(ctx context.Context, body chatRequest) (string, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	url := strings.TrimRight(c.cfg.Endpoint, "/") + "/chat"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(httpResp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}

	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		return "", &statusError{code: httpResp.StatusCode, body: strings.TrimSpace(string(respBody))}
	}

	return replyText(respBody)
}

// replyText picks the first non-empty reply field from the coach's JSON.
func replyText(body []byte) (string, error) {
	var fields map[string]any
	if err := json.Unmarshal(body, &fields); err != nil {
		return "", fmt.Errorf("%w: decoding response: %v", ErrInvalidOutput, err)
	}
	for _, name := range replyFields {
		if s, ok := fields[name].(string); ok && strings.TrimSpace(s) != "" {
			return s, nil
		}
	}
	return "", nil
}

func (c *httpClient) Available(ctx context.Context) bool {
	if !c.cfg.Enabled {
		return false
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, strings.TrimRight(c.cfg.Endpoint, "/")+"/", nil)
	if err != nil {
		return false
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode < http.StatusInternalServerError
}

// retryable reports whether another attempt may succeed.
func retryable(err error) bool {
	var se *statusError
	if errors.As(err, &se) {
		return se.code >= 500 || se.code == http.StatusTooManyRequests
	}
	return !errors.Is(err, ErrInvalidOutput)
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	var netErr *net.OpError
	return errors.As(err, &netErr)
}

func errorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTimeout):
		return "TIMEOUT"
	case errors.Is(err, ErrUnavailable):
		return "UNAVAILABLE"
	case errors.Is(err, ErrRateLimited):
		return "RATE_LIMITED"
	case errors.Is(err, ErrInvalidOutput):
		return "INVALID_OUTPUT"
	default:
		return "UNKNOWN"
	}
}
