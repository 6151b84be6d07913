package wiktionary

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

const (
	defaultBaseURL   = "https://ru.wiktionary.org/w/api.php"
	defaultTimeout   = 8 * time.Second
	defaultUserAgent = "lexlookup/1.0 (+https://github.com/heartmarshall/lexlookup)"

	// maxBodySize bounds a single API response.
	maxBodySize = 8 << 20
)

var errEmptyDocument = errors.New("empty document")

// Provider fetches article wikitext from a MediaWiki API.
type Provider struct {
	baseURL    string
	userAgent  string
	timeout    time.Duration
	strategies []strategy
	httpClient *http.Client
	log        *slog.Logger
}

// Option configures a Provider.
type Option func(*Provider)

// WithBaseURL overrides the api.php endpoint.
func WithBaseURL(u string) Option {
	return func(p *Provider) { p.baseURL = u }
}

// WithTimeout sets the per-attempt timeout.
func WithTimeout(d time.Duration) Option {
	return func(p *Provider) { p.timeout = d }
}

// WithUserAgent sets the client identifier sent with every request.
func WithUserAgent(ua string) Option {
	return func(p *Provider) { p.userAgent = ua }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(p *Provider) { p.httpClient = c }
}

// NewProvider creates a Provider for ru.wiktionary.org unless overridden by opts.
func NewProvider(logger *slog.Logger, opts ...Option) *Provider {
	p := &Provider{
		baseURL:    defaultBaseURL,
		userAgent:  defaultUserAgent,
		timeout:    defaultTimeout,
		strategies: defaultStrategies,
		httpClient: &http.Client{},
		log:        logger.With("adapter", "wiktionary"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// NewProviderWithURL creates a Provider with a custom api.php URL (for testing).
func NewProviderWithURL(baseURL string, logger *slog.Logger, opts ...Option) *Provider {
	return NewProvider(logger, append([]Option{WithBaseURL(baseURL)}, opts...)...)
}

// FetchDocument returns the wikitext of the article for word, trying each
// retrieval strategy in order. Failures are logged, never returned: an empty
// string means no strategy produced a document.
func (p *Provider) FetchDocument(ctx context.Context, word string) string {
	for _, s := range p.strategies {
		doc, err := p.fetch(ctx, s, word)
		if err == nil {
			p.log.DebugContext(ctx, "wiktionary document fetched",
				slog.String("word", word),
				slog.String("strategy", s.name),
				slog.Int("bytes", len(doc)),
			)
			return doc
		}

		p.log.WarnContext(ctx, "wiktionary fetch failed",
			slog.String("word", word),
			slog.String("strategy", s.name),
			slog.String("error", err.Error()),
		)

		// The caller is gone; the next attempt would fail the same way.
		if ctx.Err() != nil {
			break
		}
	}
	return ""
}

// fetch performs a single attempt bounded by the provider timeout.
func (p *Provider) fetch(ctx context.Context, s strategy, word string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	reqURL := p.baseURL + "?" + s.params(word).Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", fmt.Errorf("wiktionary: create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", p.userAgent)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("wiktionary: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("wiktionary: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return "", fmt.Errorf("wiktionary: read body: %w", err)
	}

	if !gjson.ValidBytes(body) {
		return "", fmt.Errorf("wiktionary: decode json: invalid payload")
	}

	if apiErr := gjson.GetBytes(body, "error"); apiErr.Exists() {
		return "", fmt.Errorf("wiktionary: api error %s: %s",
			apiErr.Get("code").String(), apiErr.Get("info").String())
	}

	doc := gjson.GetBytes(body, s.contentPath).String()
	if strings.TrimSpace(doc) == "" {
		return "", fmt.Errorf("wiktionary: %s: %w", s.contentPath, errEmptyDocument)
	}

	return doc, nil
}
