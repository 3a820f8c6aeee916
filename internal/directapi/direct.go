// Package directapi recognizes one well-known search-results URL shape and
// calls its backing JSON API directly, skipping browser automation. Many
// Activate/TalentEgy-hosted job sites serve their search page at
// <origin>/search/searchjobs and the results at
// <origin>/Search/SearchResults?...&jtStartIndex=0&jtPageSize=N.

package directapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	mapset "github.com/deckarep/golang-set/v2"

	"go-jobwatch-engine/internal/classify"
)

const browserUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

const searchPagePath = "/search/searchjobs"

// OriginCache remembers origins where the SearchResults endpoint is
// confirmed to work. Advisory only: a no-op implementation must not change
// any result, just which strategy runs first.
type OriginCache interface {
	Add(origin string)
	Contains(origin string) bool
}

// OriginSet is the process-wide mapset-backed cache. Best effort, no
// eviction, no persistence.
type OriginSet struct {
	set mapset.Set[string]
}

func NewOriginSet() *OriginSet {
	return &OriginSet{set: mapset.NewSet[string]()}
}

func (s *OriginSet) Add(origin string)           { s.set.Add(origin) }
func (s *OriginSet) Contains(origin string) bool { return s.set.Contains(origin) }

// NoopOriginCache forgets everything. Useful to assert the cache is purely
// an optimization.
type NoopOriginCache struct{}

func (NoopOriginCache) Add(string)            {}
func (NoopOriginCache) Contains(string) bool  { return false }

type searchResultsPayload struct {
	Records []struct {
		Title string `json:"Title"`
	} `json:"Records"`
}

// Client issues the direct request.
type Client struct {
	http    *http.Client
	origins OriginCache
	logf    func(format string, args ...any)
}

// New returns a Client. A nil httpClient gets a 15s-timeout default; a nil
// cache degrades to NoopOriginCache.
func New(httpClient *http.Client, origins OriginCache, logf func(format string, args ...any)) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	if origins == nil {
		origins = NoopOriginCache{}
	}
	if logf == nil {
		logf = func(string, ...any) {}
	}
	return &Client{http: httpClient, origins: origins, logf: logf}
}

// Try attempts the shortcut for pageURL. A miss (pattern mismatch, network
// error, bad status, malformed JSON, or zero surviving titles) returns
// (nil, false) so the caller falls through to browser-driven extraction.
func (c *Client) Try(ctx context.Context, pageURL string) ([]string, bool) {
	u, err := url.Parse(pageURL)
	if err != nil {
		return nil, false
	}
	origin := u.Scheme + "://" + u.Host
	if !strings.Contains(strings.ToLower(u.Path), searchPagePath) && !c.origins.Contains(origin) {
		return nil, false
	}

	api := &url.URL{Scheme: u.Scheme, Host: u.Host, Path: "/Search/SearchResults"}
	query := u.Query()
	query.Set("jtStartIndex", "0")
	query.Set("jtPageSize", "50")
	api.RawQuery = query.Encode()

	titles, err := c.fetchTitles(ctx, api.String())
	if err != nil {
		c.logf("Direct API miss: %v", err)
		return nil, false
	}
	if len(titles) == 0 {
		c.logf("Direct API returned no usable titles, falling through")
		return nil, false
	}

	c.origins.Add(origin)
	return titles, true
}

func (c *Client) fetchTitles(ctx context.Context, apiURL string) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", browserUserAgent)
	req.Header.Set("Accept", "application/json,text/plain,*/*")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}

	var payload searchResultsPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode failed: %w", err)
	}

	raw := make([]string, 0, len(payload.Records))
	for _, rec := range payload.Records {
		raw = append(raw, rec.Title)
	}
	return classify.CleanAndFilterTitles(raw), nil
}
