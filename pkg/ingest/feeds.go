package ingest

// Feed is one RSS source inside a category.
type Feed struct {
	URL  string
	Name string
}

// DefaultCategories is the ingestion order used on cold start.
var DefaultCategories = []string{"world", "technology", "business", "sports"}

// RSSFeeds groups feed sources by news category.
func RSSFeeds() map[string][]Feed {
	return map[string][]Feed{
		"world": {
			{URL: "https://feeds.bbci.co.uk/news/rss.xml", Name: "BBC News"},
			{URL: "http://rss.cnn.com/rss/edition.rss", Name: "CNN"},
			{URL: "https://www.theguardian.com/world/rss", Name: "The Guardian World"},
			{URL: "https://www.aljazeera.com/xml/rss/all.xml", Name: "Al Jazeera"},
			{URL: "https://feeds.npr.org/1001/rss.xml", Name: "NPR News"},
		},
		"technology": {
			{URL: "http://feeds.feedburner.com/TechCrunch/", Name: "TechCrunch"},
			{URL: "https://www.wired.com/feed/rss", Name: "Wired"},
			{URL: "https://www.theverge.com/rss/index.xml", Name: "The Verge"},
			{URL: "http://feeds.arstechnica.com/arstechnica/index/", Name: "Ars Technica"},
			{URL: "https://news.ycombinator.com/rss", Name: "Hacker News"},
		},
		"business": {
			{URL: "https://www.forbes.com/business/feed/", Name: "Forbes Business"},
			{URL: "https://www.cnbc.com/id/100003114/device/rss/rss.html", Name: "CNBC"},
			{URL: "https://www.marketwatch.com/rss/topstories", Name: "MarketWatch"},
			{URL: "https://www.economist.com/latest/rss.xml", Name: "The Economist"},
		},
		"sports": {
			{URL: "https://www.espn.com/espn/rss/news", Name: "ESPN"},
			{URL: "https://feeds.bbci.co.uk/sport/rss.xml", Name: "BBC Sport"},
			{URL: "https://www.skysports.com/rss/12040", Name: "Sky Sports"},
		},
		"health": {
			{URL: "https://www.medicalnewstoday.com/rss", Name: "Medical News Today"},
			{URL: "https://www.sciencedaily.com/rss/all.xml", Name: "Science Daily"},
		},
	}
}
