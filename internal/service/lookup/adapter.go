// Package lookup provides the two auxiliary web lookup adapters: DuckDuckGo
// instant answers and Wikipedia search+summary. Both share one error
// contract: transport failures and bad statuses degrade into a single
// explanatory result with status "error" and a usable fallback URL; they
// never propagate an error to the handler. Zero real results is still
// status "success" with one synthesized informational result.
package lookup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
)

const (
	maxResults     = 3
	requestTimeout = 10 * time.Second
	summaryTimeout = 5 * time.Second

	defaultInstantAnswerURL = "https://api.duckduckgo.com/"
	defaultWikiSearchURL    = "https://en.wikipedia.org/w/api.php"
	defaultWikiSummaryURL   = "https://en.wikipedia.org/api/rest_v1/page/summary/"
)

// Result statuses. Status reflects transport/availability only, never
// "zero results".
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

var errBadStatus = errors.New("unexpected response status")

// Client performs the remote lookups. Base URLs are fields so tests can
// point them at local servers.
type Client struct {
	InstantAnswerURL string
	WikiSearchURL    string
	WikiSummaryURL   string

	http *http.Client
	log  *zap.SugaredLogger
}

func NewClient(log *zap.SugaredLogger) *Client {
	return &Client{
		InstantAnswerURL: defaultInstantAnswerURL,
		WikiSearchURL:    defaultWikiSearchURL,
		WikiSummaryURL:   defaultWikiSummaryURL,
		http:             &http.Client{Timeout: requestTimeout},
		log:              log,
	}
}

// SearchResult is one normalized instant-answer entry.
type SearchResult struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
	URL     string `json:"url"`
}

// SearchResponse is the full /search payload.
type SearchResponse struct {
	Query   string         `json:"query"`
	Results []SearchResult `json:"results"`
	Status  string         `json:"status"`
}

// WikiResult is one normalized encyclopedia entry.
type WikiResult struct {
	Title     string `json:"title"`
	Summary   string `json:"summary"`
	URL       string `json:"url"`
	Thumbnail string `json:"thumbnail"`
}

// WikiResponse is the full /wikipedia payload.
type WikiResponse struct {
	Query   string       `json:"query"`
	Results []WikiResult `json:"results"`
	Source  string       `json:"source"`
	Status  string       `json:"status"`
}

func (c *Client) getJSON(ctx context.Context, rawURL string, params url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if params != nil {
		req.URL.RawQuery = params.Encode()
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %s", errBadStatus, resp.Status)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func googleSearchURL(query string) string {
	return "https://www.google.com/search?q=" + url.QueryEscape(query)
}

func wikiSearchPageURL(query string) string {
	return "https://en.wikipedia.org/wiki/Special:Search?search=" + url.QueryEscape(query)
}
