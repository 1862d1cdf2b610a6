package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/mrlokans/libtool/internal/entities"
)

const defaultTimeout = 30 * time.Second

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Client interfaces with the LibTool REST API. It performs request/response
// translation only: no retries, no caching, no store mutation.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new API client for the given server base URL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// BookPayload is the request body for creating or updating a book.
type BookPayload struct {
	Name   string `json:"name"`
	Author string `json:"author"`
	Genre  string `json:"genre,omitempty"`
	Count  int    `json:"count"`
}

// ReaderPayload is the request body for creating or updating a reader.
type ReaderPayload struct {
	FullName string                `json:"full_name"`
	Phone    string                `json:"phone,omitempty"`
	Email    string                `json:"email,omitempty"`
	Address  string                `json:"address,omitempty"`
	Status   entities.ReaderStatus `json:"status,omitempty"`
}

// IssuePayload is the request body for creating a checkout record.
type IssuePayload struct {
	BookID            int           `json:"book_id"`
	ReaderID          int           `json:"reader_id"`
	PlannedReturnDate entities.Date `json:"planned_return_date"`
}

// OverdueSweep reports the outcome of a server-side overdue check.
type OverdueSweep struct {
	UpdatedCount int    `json:"updated_count"`
	Message      string `json:"message"`
}

// Health is the server health check response.
type Health struct {
	Status     string `json:"status"`
	Database   string `json:"database"`
	BooksCount int    `json:"books_count"`
}

// ListBooks fetches the full book collection.
func (c *Client) ListBooks(ctx context.Context) ([]entities.Book, error) {
	var books []entities.Book
	if err := c.do(ctx, http.MethodGet, "/api/books", nil, &books); err != nil {
		return nil, err
	}
	return books, nil
}

// GetBook fetches a single book by id, guaranteeing freshness over the cache.
func (c *Client) GetBook(ctx context.Context, id int) (*entities.Book, error) {
	var book entities.Book
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/books/%d", id), nil, &book); err != nil {
		return nil, err
	}
	return &book, nil
}

// CreateBook creates a book and returns the stored entity.
func (c *Client) CreateBook(ctx context.Context, payload BookPayload) (*entities.Book, error) {
	var book entities.Book
	if err := c.do(ctx, http.MethodPost, "/api/books", payload, &book); err != nil {
		return nil, err
	}
	return &book, nil
}

// UpdateBook replaces the stored book fields and returns the updated entity.
func (c *Client) UpdateBook(ctx context.Context, id int, payload BookPayload) (*entities.Book, error) {
	var book entities.Book
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/books/%d", id), payload, &book); err != nil {
		return nil, err
	}
	return &book, nil
}

// DeleteBook removes a book.
func (c *Client) DeleteBook(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/books/%d", id), nil, nil)
}

// ListReaders fetches the full reader collection.
func (c *Client) ListReaders(ctx context.Context) ([]entities.Reader, error) {
	var readers []entities.Reader
	if err := c.do(ctx, http.MethodGet, "/api/readers", nil, &readers); err != nil {
		return nil, err
	}
	return readers, nil
}

// CreateReader registers a reader and returns the stored entity.
func (c *Client) CreateReader(ctx context.Context, payload ReaderPayload) (*entities.Reader, error) {
	var reader entities.Reader
	if err := c.do(ctx, http.MethodPost, "/api/readers", payload, &reader); err != nil {
		return nil, err
	}
	return &reader, nil
}

// UpdateReader replaces the stored reader fields and returns the updated entity.
func (c *Client) UpdateReader(ctx context.Context, id int, payload ReaderPayload) (*entities.Reader, error) {
	var reader entities.Reader
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/readers/%d", id), payload, &reader); err != nil {
		return nil, err
	}
	return &reader, nil
}

// DeleteReader removes a reader.
func (c *Client) DeleteReader(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/readers/%d", id), nil, nil)
}

// ListIssues fetches the full checkout collection.
func (c *Client) ListIssues(ctx context.Context) ([]entities.Issue, error) {
	var issues []entities.Issue
	if err := c.do(ctx, http.MethodGet, "/api/issues", nil, &issues); err != nil {
		return nil, err
	}
	return issues, nil
}

// CreateIssue checks a book out to a reader and returns the created record.
func (c *Client) CreateIssue(ctx context.Context, payload IssuePayload) (*entities.Issue, error) {
	var issue entities.Issue
	if err := c.do(ctx, http.MethodPost, "/api/issues", payload, &issue); err != nil {
		return nil, err
	}
	return &issue, nil
}

// ReturnIssue records the return of a checked-out book.
func (c *Client) ReturnIssue(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/api/issues/%d/return", id), nil, nil)
}

// MarkOverdue flags a checkout as overdue.
func (c *Client) MarkOverdue(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/api/issues/%d/mark-overdue", id), nil, nil)
}

// CheckOverdue runs the server-side sweep that flags checkouts past their
// planned return date.
func (c *Client) CheckOverdue(ctx context.Context) (*OverdueSweep, error) {
	var sweep OverdueSweep
	if err := c.do(ctx, http.MethodPost, "/api/issues/check-overdue", nil, &sweep); err != nil {
		return nil, err
	}
	return &sweep, nil
}

// Stats fetches the aggregate statistics report.
func (c *Client) Stats(ctx context.Context) (*entities.Stats, error) {
	var stats entities.Stats
	if err := c.do(ctx, http.MethodGet, "/api/reports/stats", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// HealthCheck probes the server health endpoint.
func (c *Client) HealthCheck(ctx context.Context) (*Health, error) {
	var health Health
	if err := c.do(ctx, http.MethodGet, "/api/health", nil, &health); err != nil {
		return nil, err
	}
	return &health, nil
}

// do performs a single JSON request against the API. A nil out discards the
// response body; a nil body sends no payload.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &TransportError{Message: err.Error(), cause: err}
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return err
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// checkStatus maps a non-success response to the error taxonomy. The error
// message is taken from the server's {"detail": ...} body when present.
func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}

	message := resp.Status
	if raw, err := io.ReadAll(resp.Body); err == nil && len(raw) > 0 {
		var body struct {
			Detail string `json:"detail"`
		}
		if err := json.Unmarshal(raw, &body); err == nil && body.Detail != "" {
			message = body.Detail
		} else {
			message = strings.TrimSpace(string(raw))
		}
	}

	return &TransportError{StatusCode: resp.StatusCode, Message: message}
}
