package ingest

import (
	"context"
	"sync"
	"time"

	"github.com/kk7188048/Rag-NewsArticles/internal/pkg/logger"
)

// Service aggregates articles across all configured feeds, falling back
// to the bundled sample corpus when nothing could be fetched.
type Service struct {
	client      *FeedClient
	feeds       map[string][]Feed
	categories  []string
	maxPerFeed  int
	maxParallel int
	logger      logger.ILogger
}

type Options struct {
	Timeout     time.Duration
	MaxPerFeed  int
	MaxParallel int
	Categories  []string
}

func NewService(opts Options, log logger.ILogger) *Service {
	if opts.MaxPerFeed <= 0 {
		opts.MaxPerFeed = 10
	}
	if opts.MaxParallel <= 0 {
		opts.MaxParallel = 4
	}
	categories := opts.Categories
	if len(categories) == 0 {
		categories = DefaultCategories
	}
	return &Service{
		client:      NewFeedClient(opts.Timeout),
		feeds:       RSSFeeds(),
		categories:  categories,
		maxPerFeed:  opts.MaxPerFeed,
		maxParallel: opts.MaxParallel,
		logger:      log,
	}
}

// LoadArticles fetches every configured feed with bounded parallelism and
// returns the deduplicated result. Individual feed failures are logged and
// skipped; only a fully empty harvest triggers the sample fallback.
func (s *Service) LoadArticles(ctx context.Context) []Article {
	var (
		mu       sync.Mutex
		wg       sync.WaitGroup
		sem      = make(chan struct{}, s.maxParallel)
		articles []Article
	)

	for _, category := range s.categories {
		for _, feed := range s.feeds[category] {
			wg.Add(1)
			go func(category string, feed Feed) {
				defer wg.Done()
				select {
				case sem <- struct{}{}:
					defer func() { <-sem }()
				case <-ctx.Done():
					return
				}

				fetched, err := s.client.Fetch(ctx, feed, category, s.maxPerFeed)
				if err != nil {
					s.logger.Warn("INGEST", "feed fetch failed", map[string]interface{}{
						"feed":  feed.Name,
						"error": err.Error(),
					})
					return
				}
				mu.Lock()
				articles = append(articles, fetched...)
				mu.Unlock()
			}(category, feed)
		}
	}
	wg.Wait()

	articles = dedupeByID(articles)
	if len(articles) == 0 {
		s.logger.Warn("INGEST", "all feeds failed, using sample corpus", nil)
		return SampleArticles()
	}

	s.logger.Info("INGEST", "feeds loaded", map[string]interface{}{
		"articles": len(articles),
	})
	return articles
}

func dedupeByID(in []Article) []Article {
	seen := make(map[string]struct{}, len(in))
	out := in[:0]
	for _, a := range in {
		if _, ok := seen[a.ID]; ok {
			continue
		}
		seen[a.ID] = struct{}{}
		out = append(out, a)
	}
	return out
}
