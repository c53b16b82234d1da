// Package restapi implements the service.Service interface against the Task
// REST API (GET/POST /api/tasks, GET/PUT/DELETE /api/tasks/{id}).
package restapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/oauth2"

	"taskpad/internal/config"
	"taskpad/internal/service"
)

const (
	// tasksPath is the collection route relative to the base URL.
	tasksPath = "/api/tasks"

	// maxErrorBody caps how much of an error response is read for detail.
	maxErrorBody = 4 << 10
)

// StatusError is returned for any non-2xx response.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Detail     string
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("%s %s: http status %d", e.Method, e.Path, e.StatusCode)
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

// IsNotFound reports whether err is a 404 from the Task API.
func IsNotFound(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == http.StatusNotFound
}

// Client implements service.Service over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// Options configures a Client.
type Options struct {
	// BaseURL is the API root, e.g. http://localhost:8000.
	BaseURL string

	// Timeout bounds each request. Zero means no client-side timeout.
	Timeout time.Duration

	// Token, when non-nil, is sent as a bearer token on every request.
	Token *oauth2.Token

	// Transport overrides the innermost round tripper (for testing).
	Transport http.RoundTripper

	// Logger receives per-request debug logs. Nil discards.
	Logger *slog.Logger
}

// New creates a client from config, attaching the stored token if present.
func New(cfg *config.Config) (*Client, error) {
	token, err := cfg.LoadToken()
	if err != nil {
		return nil, err
	}
	return NewWithOptions(Options{
		BaseURL: cfg.BaseURL,
		Timeout: cfg.Timeout,
		Token:   token,
		Logger:  cfg.Log(),
	})
}

// NewWithOptions creates a client with explicit options.
func NewWithOptions(opts Options) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(opts.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("invalid base url: %s", opts.BaseURL)
	}

	rt := opts.Transport
	if rt == nil {
		rt = http.DefaultTransport
	}
	rt = otelhttp.NewTransport(rt)
	rt = &metricsTransport{base: rt}
	if opts.Token != nil {
		rt = &oauth2.Transport{
			Source: oauth2.StaticTokenSource(opts.Token),
			Base:   rt,
		}
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Client{
		baseURL:    strings.TrimRight(base.String(), "/"),
		httpClient: &http.Client{Transport: rt, Timeout: opts.Timeout},
		logger:     logger,
	}, nil
}

// ListTasks returns the full task collection in server order.
func (c *Client) ListTasks(ctx context.Context) ([]service.Task, error) {
	var tasks []service.Task
	if err := c.do(ctx, http.MethodGet, tasksPath, nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// GetTask returns a single task.
func (c *Client) GetTask(ctx context.Context, id service.TaskID) (service.Task, error) {
	var task service.Task
	if err := c.do(ctx, http.MethodGet, taskPath(id), nil, &task); err != nil {
		return service.Task{}, err
	}
	return task, nil
}

type createRequest struct {
	Title string `json:"title"`
}

// CreateTask creates a task and returns the server's representation.
func (c *Client) CreateTask(ctx context.Context, title string) (service.Task, error) {
	var task service.Task
	if err := c.do(ctx, http.MethodPost, tasksPath, createRequest{Title: title}, &task); err != nil {
		return service.Task{}, err
	}
	return task, nil
}

type updateRequest struct {
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// UpdateTask replaces title and completion and returns the updated task.
func (c *Client) UpdateTask(ctx context.Context, id service.TaskID, title string, completed bool) (service.Task, error) {
	var task service.Task
	body := updateRequest{Title: title, Completed: completed}
	if err := c.do(ctx, http.MethodPut, taskPath(id), body, &task); err != nil {
		return service.Task{}, err
	}
	return task, nil
}

// DeleteTask deletes a task. Any response body is ignored.
func (c *Client) DeleteTask(ctx context.Context, id service.TaskID) error {
	return c.do(ctx, http.MethodDelete, taskPath(id), nil, nil)
}

func taskPath(id service.TaskID) string {
	return tasksPath + "/" + url.PathEscape(id.String())
}

// do performs one request. in, if non-nil, is sent as JSON; out, if non-nil,
// receives the decoded JSON response.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("api_request",
			slog.String("method", method),
			slog.String("path", path),
			slog.String("error", err.Error()),
		)
		return wrapError(err)
	}
	defer resp.Body.Close()

	c.logger.Debug("api_request",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", resp.StatusCode),
		slog.Float64("duration_ms", float64(time.Since(start).Microseconds())/1000.0),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Detail:     errorDetail(resp.Body),
		}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

// errorDetail extracts a message from FastAPI-style {"detail": ...} or
// {"error": ...} bodies. Other bodies yield an empty detail.
func errorDetail(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, maxErrorBody))
	if err != nil || len(data) == 0 {
		return ""
	}
	var payload struct {
		Detail json.RawMessage `json:"detail"`
		Error  string          `json:"error"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return ""
	}
	if len(payload.Detail) > 0 {
		var s string
		if err := json.Unmarshal(payload.Detail, &s); err == nil {
			return s
		}
		// Validation errors carry a list; keep it compact.
		return string(payload.Detail)
	}
	return payload.Error
}

// wrapError gives transport failures a user-friendly message while keeping
// the cause for errors.Is.
func wrapError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("request timed out: %w", err)
	}
	var uerr *url.Error
	if errors.As(err, &uerr) && uerr.Timeout() {
		return fmt.Errorf("request timed out: %w", err)
	}
	return fmt.Errorf("network error: %w", err)
}
