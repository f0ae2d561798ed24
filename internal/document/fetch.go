package document

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/SAP-F-2025/scorecard-service/internal/scoring"
)

// ErrUnavailable is returned when the response sheet cannot be retrieved.
var ErrUnavailable = errors.New("response sheet unavailable")

// maxSheetBytes bounds how much of a response sheet is read.
const maxSheetBytes = 16 << 20

// Fetcher retrieves and flattens a response sheet.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (scoring.Document, error)
}

// HTTPFetcher downloads response sheets over HTTP.
type HTTPFetcher struct {
	client    *http.Client
	userAgent string
}

// NewHTTPFetcher returns a fetcher with the given per-request timeout.
func NewHTTPFetcher(timeout time.Duration, userAgent string) *HTTPFetcher {
	return &HTTPFetcher{
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
	}
}

// NormalizeURL adds the scheme that candidates often leave off when pasting
// links to the exam CDN.
func NormalizeURL(raw string) string {
	u := strings.TrimSpace(raw)
	if strings.HasPrefix(u, "cdn3") {
		return "https://" + u
	}
	return u
}

func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (scoring.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, NormalizeURL(url), nil)
	if err != nil {
		return scoring.Document{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return scoring.Document{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return scoring.Document{}, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}
	return Flatten(io.LimitReader(resp.Body, maxSheetBytes))
}
