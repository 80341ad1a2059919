// Package fetch retrieves job postings over HTTP and extracts the readable
// posting text from their HTML. Pages that render client-side can fall back
// to a headless browser.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultTimeout bounds one HTTP posting fetch.
const DefaultTimeout = 30 * time.Second

// DefaultUserAgent identifies the fetcher to job boards.
const DefaultUserAgent = "Mozilla/5.0 (compatible; cv-tailor/1.0)"

// minPostingLength is the extracted-text length under which a page is
// assumed to be a client-rendered shell worth retrying in a browser.
const minPostingLength = 500

// Error represents a failure fetching or extracting one posting URL.
type Error struct {
	URL     string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetch error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("fetch error for %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Posting is the fetched and extracted content of one job posting page.
type Posting struct {
	URL        string
	Board      Board
	Text       string
	StatusCode int
	// Rendered reports whether the text came from the headless browser
	// instead of the plain HTTP response.
	Rendered bool
}

// Options configures a Client. Zero values take the defaults above.
type Options struct {
	Timeout   time.Duration
	UserAgent string
	// UseBrowser enables the headless-browser fallback for pages whose
	// extracted text is too short. Requires Chrome or Chromium on PATH.
	UseBrowser     bool
	BrowserTimeout time.Duration
}

// Client fetches job posting pages.
type Client struct {
	http           *http.Client
	userAgent      string
	useBrowser     bool
	browserTimeout time.Duration
	// render is swapped out by tests.
	render func(ctx context.Context, url string, timeout time.Duration) (string, error)
}

// NewClient creates a posting fetcher.
func NewClient(opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if opts.BrowserTimeout <= 0 {
		opts.BrowserTimeout = DefaultTimeout
	}

	return &Client{
		http:           &http.Client{Timeout: opts.Timeout},
		userAgent:      opts.UserAgent,
		useBrowser:     opts.UseBrowser,
		browserTimeout: opts.BrowserTimeout,
		render:         renderWithBrowser,
	}
}

// FetchPosting retrieves the page at urlStr and extracts its posting text
// using board-specific selectors. When the HTTP response yields too little
// text and the browser fallback is enabled, the page is re-rendered headless
// and re-extracted; a browser failure keeps the HTTP-derived text.
func (c *Client) FetchPosting(ctx context.Context, urlStr string) (*Posting, error) {
	parsed, err := url.Parse(urlStr)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, &Error{URL: urlStr, Message: "invalid URL", Cause: err}
	}

	html, status, err := c.get(ctx, urlStr)
	if err != nil {
		return nil, err
	}

	board := DetectBoard(urlStr)
	posting := &Posting{URL: urlStr, Board: board, StatusCode: status}

	text, err := ExtractPostingText(html, board)
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "content extraction failed", Cause: err}
	}
	posting.Text = text

	if c.useBrowser && len(strings.TrimSpace(text)) < minPostingLength {
		rendered, renderErr := c.render(ctx, urlStr, c.browserTimeout)
		if renderErr != nil {
			// The HTTP-derived text is still usable.
			return posting, nil
		}
		renderedText, extractErr := ExtractPostingText(rendered, board)
		if extractErr == nil && len(renderedText) > len(text) {
			posting.Text = renderedText
			posting.Rendered = true
		}
	}

	return posting, nil
}

func (c *Client) get(ctx context.Context, urlStr string) (string, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return "", 0, &Error{URL: urlStr, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", 0, &Error{URL: urlStr, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", resp.StatusCode, &Error{URL: urlStr, Message: "failed to read response body", Cause: err}
	}

	if resp.StatusCode != http.StatusOK {
		return "", resp.StatusCode, &Error{
			URL:     urlStr,
			Message: fmt.Sprintf("HTTP status %d", resp.StatusCode),
		}
	}

	return string(body), resp.StatusCode, nil
}
