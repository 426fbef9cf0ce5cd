package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// DefaultTimeout bounds every request, including the health probe.
const DefaultTimeout = 30 * time.Second

// Client implements Gateway over HTTP. Requests are never retried.
type Client struct {
	http       *resty.Client
	httpClient *http.Client
	baseURL    string
	healthURL  string
	timeout    time.Duration
	logger     *slog.Logger
}

var _ Gateway = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithTimeout overrides DefaultTimeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithHealthURL overrides the health probe URL, which otherwise is
// /health on the base URL's host.
func WithHealthURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.healthURL = u
		}
	}
}

// WithHTTPClient sets the underlying transport client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a Client for the versioned API rooted at baseURL,
// e.g. "http://localhost:8000/api/v1".
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, &InvalidRequestError{Reason: fmt.Sprintf("base URL %q", baseURL), Err: err}
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, &InvalidRequestError{Reason: fmt.Sprintf("base URL %q must be absolute", baseURL)}
	}

	c := &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		healthURL: (&url.URL{Scheme: u.Scheme, Host: u.Host, Path: "/health"}).String(),
		timeout:   DefaultTimeout,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.httpClient != nil {
		c.http = resty.NewWithClient(c.httpClient)
	} else {
		c.http = resty.New()
	}
	c.http.
		SetBaseURL(c.baseURL).
		SetTimeout(c.timeout).
		SetHeader("Accept", "application/json").
		SetLogger(restyLogger{l: c.logger})

	return c, nil
}

// BaseURL returns the versioned API root.
func (c *Client) BaseURL() string { return c.baseURL }

// HealthURL returns the health probe URL.
func (c *Client) HealthURL() string { return c.healthURL }

func (c *Client) FetchStudents(ctx context.Context) ([]Student, error) {
	return getJSON[[]Student](ctx, c, "/students", nil, nil)
}

func (c *Client) FetchStudent(ctx context.Context, studentID string) (*Student, error) {
	if err := requireID("student id", studentID); err != nil {
		return nil, err
	}
	s, err := getJSON[Student](ctx, c, "/students/{student_id}", nil, pathParam(studentID))
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *Client) StartDailySession(ctx context.Context, studentID string) (*DailySessionStatus, error) {
	if err := requireID("student id", studentID); err != nil {
		return nil, err
	}
	body, err := c.do(ctx, http.MethodPost, "/daily-session/start", func(r *resty.Request) {
		r.SetQueryParam("student_id", studentID)
	})
	if err != nil {
		return nil, err
	}
	return decodeStatus(body)
}

func (c *Client) DailyStatus(ctx context.Context, studentID string) (*DailySessionStatus, error) {
	if err := requireID("student id", studentID); err != nil {
		return nil, err
	}
	body, err := c.do(ctx, http.MethodGet, "/daily-session/status/{student_id}", pathParam(studentID))
	if err != nil {
		return nil, err
	}
	return decodeStatus(body)
}

func (c *Client) NextItem(ctx context.Context, studentID string) (*Item, error) {
	if err := requireID("student id", studentID); err != nil {
		return nil, err
	}
	item, err := getJSON[Item](ctx, c, "/next-item", &itemSchema, func(r *resty.Request) {
		r.SetQueryParam("student_id", studentID)
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *Client) SubmitEvent(ctx context.Context, event Event) error {
	if err := requireID("event id", event.EventID); err != nil {
		return err
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return &InvalidRequestError{Reason: "encode event", Err: err}
	}
	_, err = c.do(ctx, http.MethodPost, "/events", func(r *resty.Request) {
		r.SetHeader("Content-Type", "application/json").SetBody(payload)
	})
	return err
}

func (c *Client) Mastery(ctx context.Context, studentID string) ([]Mastery, error) {
	if err := requireID("student id", studentID); err != nil {
		return nil, err
	}
	return getJSON[[]Mastery](ctx, c, "/mastery/{student_id}", nil, pathParam(studentID))
}

func (c *Client) Achievements(ctx context.Context, studentID string) ([]Achievement, error) {
	if err := requireID("student id", studentID); err != nil {
		return nil, err
	}
	return getJSON[[]Achievement](ctx, c, "/achievements/{student_id}", nil, pathParam(studentID))
}

func (c *Client) ParentDailySummaries(ctx context.Context) ([]ParentDailySummary, error) {
	return getJSON[[]ParentDailySummary](ctx, c, "/parent/daily-summary", nil, nil)
}

func (c *Client) ParentDailySummary(ctx context.Context, studentID string) (*ParentDailySummary, error) {
	if err := requireID("student id", studentID); err != nil {
		return nil, err
	}
	s, err := getJSON[ParentDailySummary](ctx, c, "/parent/daily-summary/{student_id}", nil, pathParam(studentID))
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *Client) ParentWeeklySummaries(ctx context.Context) ([]ParentWeeklySummary, error) {
	return getJSON[[]ParentWeeklySummary](ctx, c, "/parent/weekly-summary", nil, nil)
}

func (c *Client) CheckHealth(ctx context.Context) bool {
	body, err := c.do(ctx, http.MethodGet, c.healthURL, nil)
	if err != nil {
		c.logger.Debug("health check failed", "url", c.healthURL, "error", err)
		return false
	}
	var h healthResponse
	if err := json.Unmarshal(body, &h); err != nil {
		c.logger.Debug("health check returned unreadable body", "url", c.healthURL, "error", err)
		return false
	}
	return h.Status == "ok"
}

// do executes one request. Anything but HTTP 200 is a *ServerError and a
// transport failure is a *NetworkError.
func (c *Client) do(ctx context.Context, method, path string, build func(*resty.Request)) ([]byte, error) {
	r := c.http.R().SetContext(ctx)
	if build != nil {
		build(r)
	}

	start := time.Now()
	resp, err := r.Execute(method, path)
	if err != nil {
		c.logger.Debug("api request failed",
			"method", method, "path", path, "duration", time.Since(start), "error", err)
		return nil, &NetworkError{Err: err}
	}

	c.logger.Debug("api request",
		"method", method, "path", path, "status", resp.StatusCode(), "duration", time.Since(start))

	if resp.StatusCode() != http.StatusOK {
		return nil, &ServerError{
			StatusCode: resp.StatusCode(),
			Body:       strings.TrimSpace(resp.String()),
		}
	}
	return resp.Body(), nil
}

func getJSON[T any](ctx context.Context, c *Client, path string, schema *payloadSchema, build func(*resty.Request)) (T, error) {
	var out T
	body, err := c.do(ctx, http.MethodGet, path, build)
	if err != nil {
		return out, err
	}
	if schema != nil {
		if err := checkPayload(*schema, body); err != nil {
			return out, err
		}
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return out, &DecodingError{Err: err}
	}
	return out, nil
}

func decodeStatus(body []byte) (*DailySessionStatus, error) {
	if err := checkPayload(dailyStatusSchema, body); err != nil {
		return nil, err
	}
	var status DailySessionStatus
	if err := json.Unmarshal(body, &status); err != nil {
		return nil, &DecodingError{Err: err}
	}
	return &status, nil
}

func pathParam(studentID string) func(*resty.Request) {
	return func(r *resty.Request) {
		r.SetPathParam("student_id", studentID)
	}
}

func requireID(what, id string) error {
	if strings.TrimSpace(id) == "" {
		return &InvalidRequestError{Reason: "empty " + what}
	}
	return nil
}

// restyLogger routes resty's own diagnostics through slog so nothing is
// written straight to the terminal.
type restyLogger struct {
	l *slog.Logger
}

func (r restyLogger) Errorf(format string, v ...any) { r.l.Error(fmt.Sprintf(format, v...)) }
func (r restyLogger) Warnf(format string, v ...any)  { r.l.Warn(fmt.Sprintf(format, v...)) }
func (r restyLogger) Debugf(format string, v ...any) { r.l.Debug(fmt.Sprintf(format, v...)) }
