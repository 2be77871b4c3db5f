// Package posetrack is the HTTP client for the pose-estimation backend that
// counts repetitions from the camera feed.
package posetrack

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"
)

// Status is the backend's view of the current exercise.
type Status struct {
	Reps     int    `json:"reps"`
	Stage    string `json:"stage,omitempty"`
	Feedback string `json:"feedback,omitempty"`
}

// Client talks to the pose backend over HTTP. Each call is bounded by the
// deadline on the context it receives.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a Client for the backend at cfg.BaseURL.
func NewClient(cfg Config) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http: &http.Client{
			Transport: &http.Transport{
				Proxy: http.ProxyFromEnvironment,
				DialContext: (&net.Dialer{
					Timeout:   3 * time.Second,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				MaxIdleConnsPerHost: 4,
				IdleConnTimeout:     30 * time.Second,
			},
		},
	}
}

// BaseURL returns the backend root URL.
func (c *Client) BaseURL() string { return c.baseURL }

// FeedURL returns the URL of the live annotated video stream.
func (c *Client) FeedURL() string { return c.baseURL + "/video_feed" }

// Probe checks that the backend answers its root endpoint with a 2xx.
func (c *Client) Probe(ctx context.Context) error {
	_, err := c.do(ctx, "probe", http.MethodGet, "/")
	return err
}

// Reset clears the backend's repetition counter.
func (c *Client) Reset(ctx context.Context) error {
	_, err := c.do(ctx, "reset", http.MethodPost, "/reset")
	return err
}

// Status fetches the current repetition count.
func (c *Client) Status(ctx context.Context) (Status, error) {
	body, err := c.do(ctx, "status", http.MethodGet, "/exercise_status")
	if err != nil {
		return Status{}, err
	}
	var st Status
	if err := json.Unmarshal(body, &st); err != nil {
		return Status{}, fmt.Errorf("status: %w: %v", ErrBadResponse, err)
	}
	if st.Reps < 0 {
		return Status{}, fmt.Errorf("status: %w: negative reps %d", ErrBadResponse, st.Reps)
	}
	return st, nil
}

func (c *Client) do(ctx context.Context, op, method, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: creating request: %w", op, err)
	}
	if method == http.MethodPost {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, classify(ctx, op, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, classify(ctx, op, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Op: op, Code: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}
	return body, nil
}

func classify(ctx context.Context, op string, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w", op, ErrTimeout)
	}
	if errors.Is(ctx.Err(), context.Canceled) {
		return fmt.Errorf("%s: %w", op, ctx.Err())
	}
	return fmt.Errorf("%s: %w: %v", op, ErrUnavailable, err)
}
