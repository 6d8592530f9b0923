package factory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// AttendanceAPI is the remote attendance store consumed by the grid editor.
// It is implemented by *Client and by test fakes.
type AttendanceAPI interface {
	FetchMonth(ctx context.Context, companyID string, year, month int) ([]MonthRow, error)
	CreateRecord(ctx context.Context, companyID string, req CreateRecordRequest) (string, error)
	UpdateRecord(ctx context.Context, companyID, recordID string, req UpdateRecordRequest) error
	MarkAllPresent(ctx context.Context, companyID string, req MarkPresentRequest) error
}

// Directory lists the employees and branches of a company.
type Directory interface {
	ListEmployees(ctx context.Context, companyID string) ([]Employee, error)
	ListBranches(ctx context.Context, companyID string) ([]Branch, error)
}

// Ensure Client implements both interfaces at compile time.
var (
	_ AttendanceAPI = (*Client)(nil)
	_ Directory     = (*Client)(nil)
)

// Client talks to the factory admin REST API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	token     string
	userAgent string
}

const (
	defaultAPIBase        = "http://127.0.0.1:8089"
	defaultUserAgent      = "foreman/0.1"
	defaultRequestTimeout = 10 * time.Second
)

// Option customizes a Client.
type Option func(*Client)

// WithToken sets the bearer token sent with every request.
func WithToken(token string) Option {
	return func(c *Client) { c.token = strings.TrimSpace(token) }
}

// WithTimeout overrides the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// NewClient builds a Client for the given API base URL.
func NewClient(apiBase string, opts ...Option) (*Client, error) {
	base, err := parseBaseURL(apiBase)
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL:   base,
		http:      &http.Client{Timeout: defaultRequestTimeout},
		userAgent: defaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// FetchMonth retrieves the month snapshot. An empty slice means the month
// was cleared remotely.
func (c *Client) FetchMonth(ctx context.Context, companyID string, year, month int) ([]MonthRow, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	values := url.Values{}
	values.Set("year", strconv.Itoa(year))
	values.Set("month", strconv.Itoa(month))
	rel := &url.URL{Path: companyPath(companyID, "attendance"), RawQuery: values.Encode()}
	var rows []MonthRow
	if err := c.doURL(ctx, http.MethodGet, rel, nil, &rows); err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []MonthRow{}
	}
	return rows, nil
}

// CreateRecord stores a new monthly record and returns its id.
func (c *Client) CreateRecord(ctx context.Context, companyID string, req CreateRecordRequest) (string, error) {
	if c == nil {
		return "", fmt.Errorf("client is nil")
	}
	var payload CreateRecordResponse
	if err := c.do(ctx, http.MethodPost, companyPath(companyID, "attendance"), req, &payload); err != nil {
		return "", err
	}
	if strings.TrimSpace(payload.RecordID) == "" {
		return "", fmt.Errorf("create record: response missing record_id")
	}
	return payload.RecordID, nil
}

// UpdateRecord replaces the day list and remark of an existing record.
func (c *Client) UpdateRecord(ctx context.Context, companyID, recordID string, req UpdateRecordRequest) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	if strings.TrimSpace(recordID) == "" {
		return fmt.Errorf("record id required")
	}
	path := companyPath(companyID, "attendance", recordID)
	return c.do(ctx, http.MethodPut, path, req, &Ack{})
}

// MarkAllPresent marks every employee of a branch present for one day.
func (c *Client) MarkAllPresent(ctx context.Context, companyID string, req MarkPresentRequest) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	return c.do(ctx, http.MethodPost, companyPath(companyID, "attendance", "mark-present"), req, &Ack{})
}

// ListEmployees retrieves the company's employee directory.
func (c *Client) ListEmployees(ctx context.Context, companyID string) ([]Employee, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload []Employee
	if err := c.do(ctx, http.MethodGet, companyPath(companyID, "employees"), nil, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// ListBranches retrieves the company's branch directory.
func (c *Client) ListBranches(ctx context.Context, companyID string) ([]Branch, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload []Branch
	if err := c.do(ctx, http.MethodGet, companyPath(companyID, "branches"), nil, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, dest any) error {
	rel := &url.URL{Path: path}
	return c.doURL(ctx, method, rel, body, dest)
}

func (c *Client) doURL(ctx context.Context, method string, rel *url.URL, body, dest any) error {
	reqURL := c.baseURL.ResolveReference(rel)

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return &StatusError{Path: rel.Path, Code: resp.StatusCode, Message: readErrorMessage(resp.Body)}
	}
	if dest == nil {
		return nil
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		if err == io.EOF {
			return nil
		}
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// StatusError reports a non-2xx API response.
type StatusError struct {
	Path    string
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api %s returned status %d: %s", e.Path, e.Code, e.Message)
	}
	return fmt.Sprintf("api %s returned status %d", e.Path, e.Code)
}

func readErrorMessage(r io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil || len(raw) == 0 {
		return ""
	}
	var payload struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(raw, &payload) == nil && payload.Error != "" {
		return payload.Error
	}
	return strings.TrimSpace(string(raw))
}

func companyPath(companyID string, parts ...string) string {
	segments := append([]string{"/api/companies", strings.TrimSpace(companyID)}, parts...)
	return strings.Join(segments, "/")
}

func parseBaseURL(apiBase string) (*url.URL, error) {
	trimmed := strings.TrimSpace(apiBase)
	if trimmed == "" {
		trimmed = defaultAPIBase
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api_base %q: %w", apiBase, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
