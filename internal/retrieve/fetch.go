package retrieve

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/temoto/robotstxt"

	"github.com/ekurganov/claimlens/internal/model"
	"github.com/ekurganov/claimlens/internal/util"
)

// Fetcher pulls web pages into the corpus. Fetches honor robots.txt
// and the configured proxy settings; page HTML is stripped to visible
// text before indexing.
type Fetcher struct {
	httpClient *http.Client
	userAgent  string
	maxBytes   int64

	robotsMu    sync.RWMutex
	robotsCache map[string]*robotstxt.RobotsData
}

// NewFetcher creates a fetcher with the given HTTP configuration
func NewFetcher(cfg model.HTTPConfig) *Fetcher {
	return &Fetcher{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				Proxy: proxyFunc(cfg),
			},
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		userAgent:   cfg.UserAgent,
		maxBytes:    cfg.MaxBodyBytes,
		robotsCache: make(map[string]*robotstxt.RobotsData),
	}
}

// proxyFunc selects the outbound proxy for corpus fetches. Explicit
// configuration wins over the standard environment variables.
func proxyFunc(cfg model.HTTPConfig) func(*http.Request) (*url.URL, error) {
	if cfg.HTTPProxy == "" && cfg.HTTPSProxy == "" {
		return http.ProxyFromEnvironment
	}

	return func(req *http.Request) (*url.URL, error) {
		if req.URL.Scheme == "https" && cfg.HTTPSProxy != "" {
			return url.Parse(cfg.HTTPSProxy)
		}
		if cfg.HTTPProxy != "" {
			return url.Parse(cfg.HTTPProxy)
		}
		return http.ProxyFromEnvironment(req)
	}
}

// FetchPage retrieves a URL and returns its visible text plus a
// source identifier derived from the URL path.
func (f *Fetcher) FetchPage(ctx context.Context, rawURL string) (sourceID, text string, err error) {
	allowed, crawlDelay, err := f.canFetch(ctx, rawURL)
	if err != nil {
		return "", "", fmt.Errorf("robots check: %w", err)
	}
	if !allowed {
		return "", "", fmt.Errorf("disallowed by robots.txt: %s", rawURL)
	}
	if crawlDelay > 0 {
		select {
		case <-time.After(crawlDelay):
		case <-ctx.Done():
			return "", "", ctx.Err()
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", "", fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", "", fmt.Errorf("unexpected status: %d %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes))
	if err != nil {
		return "", "", fmt.Errorf("read body: %w", err)
	}

	text, err = util.StripHTML(string(body))
	if err != nil {
		return "", "", fmt.Errorf("strip html: %w", err)
	}

	return resp.Request.URL.String(), text, nil
}

// canFetch checks robots.txt for the URL, caching per host
func (f *Fetcher) canFetch(ctx context.Context, rawURL string) (bool, time.Duration, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false, 0, fmt.Errorf("parse URL: %w", err)
	}

	data, err := f.robotsData(ctx, parsed)
	if err != nil {
		// Unreachable robots.txt: allow by default
		return true, 0, nil
	}

	allowed := data.TestAgent(parsed.Path, f.userAgent)

	crawlDelay := time.Duration(0)
	if group := data.FindGroup(f.userAgent); group != nil {
		crawlDelay = group.CrawlDelay
	}
	return allowed, crawlDelay, nil
}

func (f *Fetcher) robotsData(ctx context.Context, pageURL *url.URL) (*robotstxt.RobotsData, error) {
	host := pageURL.Host

	f.robotsMu.RLock()
	data, exists := f.robotsCache[host]
	f.robotsMu.RUnlock()
	if exists {
		return data, nil
	}

	robotsURL := fmt.Sprintf("%s://%s/robots.txt", pageURL.Scheme, host)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch robots.txt: %w", err)
	}
	defer resp.Body.Close()

	data, err = robotstxt.FromResponse(resp)
	if err != nil {
		return nil, fmt.Errorf("parse robots.txt: %w", err)
	}

	f.robotsMu.Lock()
	f.robotsCache[host] = data
	f.robotsMu.Unlock()

	return data, nil
}

// SourceIDFromURL derives a readable source identifier from a URL
func SourceIDFromURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	path := strings.Trim(parsed.Path, "/")
	if path == "" {
		return parsed.Host
	}
	return parsed.Host + "/" + path
}
