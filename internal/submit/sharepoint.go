package submit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/JonMunkholm/basefigures/internal/core"
)

// maxErrorBody caps how much of a failed response is kept in the error.
const maxErrorBody = 512

// StatusError is returned when the list store answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("sharepoint: unexpected status %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

// SharePointConfig configures a SharePoint list client.
type SharePointConfig struct {
	SiteURL       string
	ListTitle     string
	RequestDigest string
	AccessToken   string
	Timeout       time.Duration
}

// SharePoint posts records to a SharePoint list through its REST API.
type SharePoint struct {
	endpoint string
	digest   string
	token    string
	client   *http.Client
}

// NewSharePoint creates a SharePoint sink. A nil client gets one with cfg.Timeout.
func NewSharePoint(cfg SharePointConfig, client *http.Client) *SharePoint {
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	return &SharePoint{
		endpoint: ItemsURL(cfg.SiteURL, cfg.ListTitle),
		digest:   cfg.RequestDigest,
		token:    cfg.AccessToken,
		client:   client,
	}
}

// ItemsURL returns the items endpoint of the list titled title under siteURL.
func ItemsURL(siteURL, title string) string {
	// OData string literals escape a quote by doubling it.
	quoted := strings.ReplaceAll(title, "'", "''")
	return strings.TrimRight(siteURL, "/") +
		"/_api/web/lists/getbytitle('" + url.PathEscape(quoted) + "')/items"
}

// Submit sends one record.
func (s *SharePoint) Submit(ctx context.Context, rec core.Record) error {
	body, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json; odata=verbose")
	req.Header.Set("Content-Type", "application/json; odata=verbose")
	req.Header.Set("X-HTTP-Method", "MERGE")
	req.Header.Set("If-Match", "*")
	if s.digest != "" {
		req.Header.Set("X-RequestDigest", s.digest)
	}
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("sharepoint request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(snippet)),
		}
	}

	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}
