package store

// DocumentMetadata carries the article attributes stored alongside each
// vector and echoed back on retrieval.
type DocumentMetadata struct {
	Title   string `json:"title"`
	Source  string `json:"source"`
	Link    string `json:"link"`
	PubDate string `json:"pub_date"`
}

// RetrievedDocument is one ranked hit from the vector index. Produced
// transiently per query, never persisted.
type RetrievedDocument struct {
	Document   string           `json:"document"`
	Metadata   DocumentMetadata `json:"metadata"`
	Distance   float64          `json:"distance"`
	Similarity float64          `json:"similarity"` // 1 - cosine distance
}

// SourceRef is the attribution shown to the user for one retrieved
// article. Always built from DocumentMetadata, never from model output.
type SourceRef struct {
	Title  string `json:"title"`
	Source string `json:"source"`
	Link   string `json:"link"`
}

// QueryResult is the assembled answer for one chat turn.
// Sources preserves retrieval rank order and len(Sources) <= RetrievedCount.
type QueryResult struct {
	Query          string      `json:"query"`
	Response       string      `json:"response"`
	Sources        []SourceRef `json:"sources"`
	RetrievedCount int         `json:"retrieved_count"`
}

// Stats is the diagnostic surface exposed for health reporting.
type Stats struct {
	ArticleCount  int64 `json:"article_count"`
	IsInitialized bool  `json:"is_initialized"`
}
