package lookup

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
)

type instantAnswer struct {
	Heading       string         `json:"Heading"`
	AbstractText  string         `json:"AbstractText"`
	AbstractURL   string         `json:"AbstractURL"`
	RelatedTopics []relatedTopic `json:"RelatedTopics"`
}

type relatedTopic struct {
	Text     string `json:"Text"`
	FirstURL string `json:"FirstURL"`
}

// Search queries the DuckDuckGo instant-answer API and normalizes the reply:
// the abstract first (when present), then related topics, capped at
// maxResults. Nothing extracted yields one synthesized pointer to a web
// search, still with status "success".
func (c *Client) Search(ctx context.Context, query string) SearchResponse {
	params := url.Values{
		"q":             {query},
		"format":        {"json"},
		"no_html":       {"1"},
		"skip_disambig": {"1"},
	}

	var answer instantAnswer
	if err := c.getJSON(ctx, c.InstantAnswerURL, params, &answer); err != nil {
		c.log.Warnw("instant-answer lookup failed", "query", query, "error", err)
		if errors.Is(err, errBadStatus) {
			return SearchResponse{
				Query: query,
				Results: []SearchResult{{
					Title:   "Search Error",
					Snippet: "Unable to perform web search at the moment. Please try again later.",
					URL:     "#",
				}},
				Status: StatusError,
			}
		}
		return SearchResponse{
			Query: query,
			Results: []SearchResult{{
				Title:   "Search Error",
				Snippet: fmt.Sprintf("Search temporarily unavailable: %v", err),
				URL:     googleSearchURL(query),
			}},
			Status: StatusError,
		}
	}

	var results []SearchResult
	if answer.AbstractText != "" {
		title := answer.Heading
		if title == "" {
			title = "Instant Answer"
		}
		link := answer.AbstractURL
		if link == "" {
			link = "#"
		}
		results = append(results, SearchResult{Title: title, Snippet: answer.AbstractText, URL: link})
	}

	topics := answer.RelatedTopics
	if len(topics) > maxResults {
		topics = topics[:maxResults]
	}
	for _, topic := range topics {
		if topic.Text == "" || len(results) >= maxResults {
			continue
		}
		title := "Related Topic"
		if idx := strings.Index(topic.Text, " - "); idx >= 0 {
			title = topic.Text[:idx]
		}
		link := topic.FirstURL
		if link == "" {
			link = "#"
		}
		results = append(results, SearchResult{Title: title, Snippet: topic.Text, URL: link})
	}

	if len(results) == 0 {
		results = append(results, SearchResult{
			Title: fmt.Sprintf("Search: %s", query),
			Snippet: fmt.Sprintf("I searched for %q but couldn't find specific instant answers. "+
				"You might want to search directly on Google, Bing, or other search engines for more comprehensive results.", query),
			URL: googleSearchURL(query),
		})
	}

	return SearchResponse{Query: query, Results: results, Status: StatusSuccess}
}
