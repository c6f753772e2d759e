// Package fetch downloads job postings and reduces them to the description text.
package fetch

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 30 * time.Second

// DefaultUserAgent is the user agent string for HTTP requests.
const DefaultUserAgent = "Mozilla/5.0 (compatible; CareerCoach/1.0)"

// Posting is a fetched job posting.
type Posting struct {
	URL        string
	Platform   Platform
	Text       string
	StatusCode int
}

// Error represents an error during URL fetching.
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

// Options configures the fetch behavior.
type Options struct {
	Timeout   time.Duration
	UserAgent string

	// Renderer, when set, re-renders pages whose plain HTML yields too little text.
	Renderer Renderer
}

// DefaultOptions returns sensible defaults for fetching.
func DefaultOptions() *Options {
	return &Options{
		Timeout:   DefaultTimeout,
		UserAgent: DefaultUserAgent,
	}
}

// Client fetches job postings over HTTP.
type Client struct {
	http     *resty.Client
	renderer Renderer
}

// NewClient creates a Client. A nil opts uses DefaultOptions.
func NewClient(opts *Options) *Client {
	if opts == nil {
		opts = DefaultOptions()
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}

	client := resty.New().
		SetTimeout(opts.Timeout).
		SetHeader("User-Agent", opts.UserAgent).
		SetHeader("Accept", "text/html,application/xhtml+xml")

	return &Client{http: client, renderer: opts.Renderer}
}

// JobPosting downloads urlStr and extracts the description text using the
// selectors of the job board it is hosted on.
func (c *Client) JobPosting(ctx context.Context, urlStr string) (*Posting, error) {
	parsedURL, err := url.Parse(urlStr)
	if err != nil || parsedURL.Scheme == "" || parsedURL.Host == "" {
		return nil, &Error{URL: urlStr, Message: "invalid URL", Cause: err}
	}

	resp, err := c.http.R().SetContext(ctx).Get(urlStr)
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "HTTP request failed", Cause: err}
	}

	posting := &Posting{
		URL:        urlStr,
		Platform:   DetectPlatform(urlStr),
		StatusCode: resp.StatusCode(),
	}
	if resp.IsError() {
		return posting, &Error{URL: urlStr, Message: fmt.Sprintf("HTTP status %d", resp.StatusCode())}
	}

	text, err := ExtractPostingText(resp.String(), posting.Platform)
	if err != nil {
		return posting, &Error{URL: urlStr, Message: "failed to extract text", Cause: err}
	}
	if c.renderer != nil && ShouldUseBrowser(text) {
		text = c.rendered(ctx, urlStr, posting.Platform, text)
	}
	if text == "" {
		return posting, &Error{URL: urlStr, Message: "page has no readable text"}
	}
	posting.Text = text
	return posting, nil
}

// rendered returns the text of the browser-rendered page, or fallback when
// rendering fails or does not produce more text.
func (c *Client) rendered(ctx context.Context, urlStr string, platform Platform, fallback string) string {
	html, err := c.renderer.Render(ctx, urlStr)
	if err != nil {
		return fallback
	}
	text, err := ExtractPostingText(html, platform)
	if err != nil || len(text) <= len(fallback) {
		return fallback
	}
	return text
}

// ExtractPostingText parses HTML and returns the job description text for platform.
func ExtractPostingText(html string, platform Platform) (string, error) {
	return ExtractMainText(html, PlatformContentSelectors(platform), PlatformNoiseSelectors(platform)...)
}

// ExtractMainText parses HTML and returns the main body text.
// It removes noise elements using noiseSelectors, then finds content using contentSelectors.
// If no content selectors match, it falls back to the body element.
func ExtractMainText(html string, contentSelectors []string, noiseSelectors ...string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find("nav, footer, header, script, style, noscript, .ad, .advertisement, .ads, .sidebar, .cookie-banner, .popup").Remove()
	if len(noiseSelectors) > 0 {
		doc.Find(strings.Join(noiseSelectors, ", ")).Remove()
	}

	var mainContent *goquery.Selection
	for _, selector := range contentSelectors {
		if selection := doc.Find(selector); selection.Length() > 0 {
			mainContent = selection.First()
			break
		}
	}
	if mainContent == nil {
		mainContent = doc.Find("body")
	}

	return cleanWhitespace(mainContent.Text()), nil
}

// cleanWhitespace trims every line and drops the empty ones.
func cleanWhitespace(text string) string {
	var cleaned []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			cleaned = append(cleaned, line)
		}
	}
	return strings.Join(cleaned, "\n")
}
