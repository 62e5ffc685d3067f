package lookup

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
)

const wikiSource = "Wikipedia"

type wikiSearchResponse struct {
	Query struct {
		Search []wikiSearchHit `json:"search"`
	} `json:"query"`
}

type wikiSearchHit struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
}

type wikiSummary struct {
	Title       string `json:"title"`
	Extract     string `json:"extract"`
	ContentURLs struct {
		Desktop struct {
			Page string `json:"page"`
		} `json:"desktop"`
	} `json:"content_urls"`
	Thumbnail struct {
		Source string `json:"source"`
	} `json:"thumbnail"`
}

var snippetMarkup = strings.NewReplacer(`<span class="searchmatch">`, "", `</span>`, "")

// Wikipedia runs the two-stage encyclopedia lookup: a title search followed
// by a per-title summary call. A failed summary falls back to the search
// snippet with the highlight markup stripped; a failed search degrades per
// the shared error contract.
func (c *Client) Wikipedia(ctx context.Context, query string) WikiResponse {
	params := url.Values{
		"action":   {"query"},
		"format":   {"json"},
		"list":     {"search"},
		"srsearch": {query},
		"srlimit":  {fmt.Sprint(maxResults)},
	}

	var search wikiSearchResponse
	if err := c.getJSON(ctx, c.WikiSearchURL, params, &search); err != nil {
		c.log.Warnw("wikipedia search failed", "query", query, "error", err)
		if errors.Is(err, errBadStatus) {
			return WikiResponse{
				Query: query,
				Results: []WikiResult{{
					Title:   "Wikipedia Search Error",
					Summary: "Unable to search Wikipedia at the moment. Please try again later.",
					URL:     "#",
				}},
				Source: wikiSource,
				Status: StatusError,
			}
		}
		return WikiResponse{
			Query: query,
			Results: []WikiResult{{
				Title:   "Wikipedia Search Error",
				Summary: fmt.Sprintf("Wikipedia search temporarily unavailable: %v", err),
				URL:     wikiSearchPageURL(query),
			}},
			Source: wikiSource,
			Status: StatusError,
		}
	}

	hits := search.Query.Search
	if len(hits) > maxResults {
		hits = hits[:maxResults]
	}

	var results []WikiResult
	for _, hit := range hits {
		results = append(results, c.summarize(ctx, hit))
	}

	if len(results) == 0 {
		results = append(results, WikiResult{
			Title: "No Wikipedia articles found",
			Summary: fmt.Sprintf("No Wikipedia articles were found for %q. "+
				"Try rephrasing your search or checking the spelling.", query),
			URL: wikiSearchPageURL(query),
		})
	}

	return WikiResponse{Query: query, Results: results, Source: wikiSource, Status: StatusSuccess}
}

// summarize fetches the REST summary for one search hit, falling back to the
// hit's own snippet when the summary endpoint is unavailable.
func (c *Client) summarize(ctx context.Context, hit wikiSearchHit) WikiResult {
	summaryCtx, cancel := context.WithTimeout(ctx, summaryTimeout)
	defer cancel()

	var summary wikiSummary
	err := c.getJSON(summaryCtx, c.WikiSummaryURL+url.PathEscape(hit.Title), nil, &summary)
	if err != nil {
		c.log.Debugw("wikipedia summary fallback", "title", hit.Title, "error", err)
		snippet := snippetMarkup.Replace(hit.Snippet)
		if snippet == "" {
			snippet = "No summary available"
		}
		return WikiResult{
			Title:   hit.Title,
			Summary: snippet,
			URL:     "https://en.wikipedia.org/wiki/" + url.PathEscape(hit.Title),
		}
	}

	title := summary.Title
	if title == "" {
		title = hit.Title
	}
	extract := summary.Extract
	if extract == "" {
		extract = "No summary available"
	}
	page := summary.ContentURLs.Desktop.Page
	if page == "" {
		page = "#"
	}
	return WikiResult{Title: title, Summary: extract, URL: page, Thumbnail: summary.Thumbnail.Source}
}
