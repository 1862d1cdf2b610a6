package api

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"time"
)

// Attachment is a binary document returned by a download endpoint. The caller
// owns Body and must close it.
type Attachment struct {
	Filename    string
	ContentType string
	Body        io.ReadCloser
}

// Certificate downloads the quality certificate document for a book.
func (c *Client) Certificate(ctx context.Context, bookID int) (*Attachment, error) {
	fallback := fmt.Sprintf("certificate_book_%d.docx", bookID)
	return c.download(ctx, fmt.Sprintf("/api/certificate/%d", bookID), fallback)
}

// Rules downloads the library rules document.
func (c *Client) Rules(ctx context.Context) (*Attachment, error) {
	return c.download(ctx, "/api/rules/download", "library_rules.pdf")
}

// ExportIssues downloads the checkout history spreadsheet.
func (c *Client) ExportIssues(ctx context.Context) (*Attachment, error) {
	fallback := fmt.Sprintf("issues_%s.xlsx", time.Now().Format("20060102_150405"))
	return c.download(ctx, "/api/issues/export-excel", fallback)
}

func (c *Client) download(ctx context.Context, path, fallbackName string) (*Attachment, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Message: err.Error(), cause: err}
	}

	if err := checkStatus(resp); err != nil {
		resp.Body.Close()
		return nil, err
	}

	return &Attachment{
		Filename:    attachmentFilename(resp.Header.Get("Content-Disposition"), fallbackName),
		ContentType: resp.Header.Get("Content-Type"),
		Body:        resp.Body,
	}, nil
}

// attachmentFilename extracts the filename from a Content-Disposition header,
// falling back to the generated default when the header is absent or
// unparseable.
func attachmentFilename(disposition, fallback string) string {
	if disposition == "" {
		return fallback
	}
	_, params, err := mime.ParseMediaType(disposition)
	if err != nil {
		return fallback
	}
	if name := params["filename"]; name != "" {
		return name
	}
	return fallback
}
