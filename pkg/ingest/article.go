package ingest

import (
	"crypto/sha1"
	"encoding/hex"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// Article is the normalized unit stored in the vector index.
type Article struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Content       string    `json:"content"`
	Link          string    `json:"link"`
	PubDate       time.Time `json:"pubDate"`
	Source        string    `json:"source"`
	Category      string    `json:"category"`
	ContentLength int       `json:"contentLength"`
}

// EmbeddingText is what gets embedded: the title plus the body so that
// short headlines still retrieve on topical queries.
func (a Article) EmbeddingText() string {
	return strings.TrimSpace(a.Title + ". " + a.Content)
}

// ArticleID derives a stable identifier from the feed guid when present,
// otherwise the link. Stable IDs make re-ingestion an upsert instead of
// a duplicate insert.
func ArticleID(guid, link string) string {
	key := strings.TrimSpace(guid)
	if key == "" {
		key = strings.TrimSpace(link)
	}
	sum := sha1.Sum([]byte(key))
	return hex.EncodeToString(sum[:])
}

var whitespaceRe = regexp.MustCompile(`\s+`)

// CleanHTML strips markup from feed bodies and collapses whitespace.
// Feeds routinely ship raw HTML in description and content:encoded.
func CleanHTML(raw string) string {
	if raw == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		// Fall back to the raw text with tags left in rather than drop the item.
		return normalizeText(raw)
	}
	doc.Find("script, style, iframe, figure").Remove()
	return normalizeText(doc.Text())
}

func normalizeText(s string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}

const minContentLength = 50

// Valid reports whether an article carries enough text to be worth indexing.
func (a Article) Valid() bool {
	return a.Title != "" && a.Link != "" && len(a.Content) >= minContentLength
}
