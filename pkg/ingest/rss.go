package ingest

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"time"
)

// rssDocument mirrors the subset of RSS 2.0 the major news feeds emit,
// including the content and dc extensions.
type rssDocument struct {
	XMLName xml.Name `xml:"rss"`
	Channel struct {
		Title string    `xml:"title"`
		Items []rssItem `xml:"item"`
	} `xml:"channel"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	GUID        string `xml:"guid"`
	Description string `xml:"description"`
	Encoded     string `xml:"http://purl.org/rss/1.0/modules/content/ encoded"`
	Creator     string `xml:"http://purl.org/dc/elements/1.1/ creator"`
	PubDate     string `xml:"pubDate"`
}

var pubDateLayouts = []string{
	time.RFC1123Z,
	time.RFC1123,
	time.RFC822Z,
	time.RFC822,
	time.RFC3339,
	"Mon, 2 Jan 2006 15:04:05 -0700",
	"2006-01-02 15:04:05",
}

func parsePubDate(s string) time.Time {
	for _, layout := range pubDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Now()
}

// FeedClient fetches and parses RSS feeds.
type FeedClient struct {
	httpClient *http.Client
	userAgent  string
}

func NewFeedClient(timeout time.Duration) *FeedClient {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &FeedClient{
		httpClient: &http.Client{Timeout: timeout},
		userAgent:  "Mozilla/5.0 (compatible; NewsRAGBot/1.0)",
	}
}

// Fetch downloads one feed and converts its items into normalized articles.
// maxItems caps how many items are taken per feed; zero means no cap.
func (c *FeedClient) Fetch(ctx context.Context, feed Feed, category string, maxItems int) ([]Article, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feed.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", feed.URL, err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/rss+xml, application/xml, text/xml")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch feed %s: %w", feed.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch feed %s: unexpected status %d", feed.URL, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 10<<20))
	if err != nil {
		return nil, fmt.Errorf("read feed %s: %w", feed.URL, err)
	}

	return ParseRSS(body, feed.Name, category, maxItems)
}

// ParseRSS converts raw RSS XML into validated articles.
func ParseRSS(data []byte, sourceName, category string, maxItems int) ([]Article, error) {
	var doc rssDocument
	decoder := xml.NewDecoder(bytes.NewReader(data))
	decoder.Strict = false
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("parse rss: %w", err)
	}

	items := doc.Channel.Items
	if maxItems > 0 && len(items) > maxItems {
		items = items[:maxItems]
	}

	articles := make([]Article, 0, len(items))
	for _, item := range items {
		body := item.Encoded
		if body == "" {
			body = item.Description
		}
		content := CleanHTML(body)
		description := truncateRunes(CleanHTML(item.Description), maxDescriptionLen)

		a := Article{
			ID:          ArticleID(item.GUID, item.Link),
			Title:       CleanHTML(item.Title),
			Description: description,
			Content:     content,
			Link:        item.Link,
			PubDate:     parsePubDate(item.PubDate),
			Source:      sourceName,
			Category:    category,
		}
		a.ContentLength = len(a.Content)
		if a.Valid() {
			articles = append(articles, a)
		}
	}
	return articles, nil
}

const maxDescriptionLen = 300

// truncateRunes cuts on a rune boundary so a multi-byte character is
// never split into invalid UTF-8.
func truncateRunes(s string, n int) string {
	if len(s) <= n {
		return s
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
