package ingest

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"
)

const sampleFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:content="http://purl.org/rss/1.0/modules/content/" xmlns:dc="http://purl.org/dc/elements/1.1/">
<channel>
  <title>Test Feed</title>
  <item>
    <title>Chipmakers &amp; the AI boom</title>
    <link>https://example.com/chips</link>
    <guid>chips-guid-1</guid>
    <description><![CDATA[<p>Semiconductor manufacturers are <b>expanding</b> capacity.</p>]]></description>
    <content:encoded><![CDATA[<p>Semiconductor manufacturers are expanding fabrication capacity as demand for AI accelerator chips continues to outpace supply across every major market.</p><script>alert(1)</script>]]></content:encoded>
    <dc:creator>Jane Reporter</dc:creator>
    <pubDate>Mon, 24 Aug 2026 10:30:00 +0000</pubDate>
  </item>
  <item>
    <title>Too short</title>
    <link>https://example.com/short</link>
    <description>tiny</description>
    <pubDate>Mon, 24 Aug 2026 11:00:00 +0000</pubDate>
  </item>
  <item>
    <title>No guid article</title>
    <link>https://example.com/noguid</link>
    <description><![CDATA[A perfectly reasonable description that easily clears the minimum content length for indexing purposes.]]></description>
    <pubDate>not a date</pubDate>
  </item>
</channel>
</rss>`

func TestParseRSS(t *testing.T) {
	articles, err := ParseRSS([]byte(sampleFeed), "Test Feed", "technology", 0)
	if err != nil {
		t.Fatalf("ParseRSS: %v", err)
	}

	// The "Too short" item fails validation.
	if len(articles) != 2 {
		t.Fatalf("want 2 articles, got %d", len(articles))
	}

	first := articles[0]
	if first.Title != "Chipmakers & the AI boom" {
		t.Fatalf("title = %q", first.Title)
	}
	// content:encoded is preferred over description.
	if !strings.Contains(first.Content, "fabrication capacity") {
		t.Fatalf("content should come from content:encoded, got %q", first.Content)
	}
	if strings.Contains(first.Content, "<p>") || strings.Contains(first.Content, "alert(1)") {
		t.Fatalf("content not cleaned: %q", first.Content)
	}
	if first.Source != "Test Feed" || first.Category != "technology" {
		t.Fatalf("source/category not set: %+v", first)
	}
	want := time.Date(2026, 8, 24, 10, 30, 0, 0, time.UTC)
	if !first.PubDate.Equal(want) {
		t.Fatalf("pubDate = %v, want %v", first.PubDate, want)
	}
	if first.ContentLength != len(first.Content) {
		t.Fatal("content length mismatch")
	}
}

func TestParseRSSMaxItems(t *testing.T) {
	articles, err := ParseRSS([]byte(sampleFeed), "Test Feed", "technology", 1)
	if err != nil {
		t.Fatalf("ParseRSS: %v", err)
	}
	if len(articles) != 1 {
		t.Fatalf("maxItems=1 should cap the harvest, got %d", len(articles))
	}
}

func TestParseRSSTruncatesDescriptionOnRuneBoundary(t *testing.T) {
	// 400 multi-byte runes; a byte-based cut at 300 would land mid-rune.
	long := strings.Repeat("日", 400)
	feed := `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
  <item>
    <title>Multibyte description</title>
    <link>https://example.com/mb</link>
    <description>` + long + `</description>
  </item>
</channel>
</rss>`

	articles, err := ParseRSS([]byte(feed), "Test Feed", "world", 0)
	if err != nil {
		t.Fatalf("ParseRSS: %v", err)
	}
	if len(articles) != 1 {
		t.Fatalf("want 1 article, got %d", len(articles))
	}

	desc := articles[0].Description
	if !utf8.ValidString(desc) {
		t.Fatal("truncated description is not valid UTF-8")
	}
	if got := utf8.RuneCountInString(desc); got != maxDescriptionLen {
		t.Fatalf("description runes = %d, want %d", got, maxDescriptionLen)
	}
}

func TestArticleIDStable(t *testing.T) {
	a := ArticleID("guid-1", "https://example.com/x")
	b := ArticleID("guid-1", "https://example.com/different")
	if a != b {
		t.Fatal("guid should dominate the id, link changes must not matter")
	}

	c := ArticleID("", "https://example.com/x")
	d := ArticleID("", "https://example.com/x")
	if c != d {
		t.Fatal("link-derived ids must be stable")
	}
	if a == c {
		t.Fatal("guid id and link id should differ")
	}
}

func TestCleanHTML(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "hello world", "hello world"},
		{"tags", "<p>hello <b>world</b></p>", "hello world"},
		{"script stripped", "<p>news</p><script>var x=1;</script>", "news"},
		{"whitespace collapsed", "  a \n\n  b\t c  ", "a b c"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanHTML(tt.in); got != tt.want {
				t.Fatalf("CleanHTML(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSampleArticlesValid(t *testing.T) {
	articles := SampleArticles()
	if len(articles) == 0 {
		t.Fatal("sample corpus must not be empty")
	}
	seen := make(map[string]struct{})
	for _, a := range articles {
		if !a.Valid() {
			t.Fatalf("sample article %q fails validation", a.Title)
		}
		if _, dup := seen[a.ID]; dup {
			t.Fatalf("duplicate sample id for %q", a.Title)
		}
		seen[a.ID] = struct{}{}
	}
}
