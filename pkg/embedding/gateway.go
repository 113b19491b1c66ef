package embedding

import (
	"context"

	"github.com/kk7188048/Rag-NewsArticles/internal/pkg/logger"
)

// Quality tags which path produced a batch of vectors. Vectors from
// different paths live in unrelated spaces and must never be compared;
// the vector index stores the tag with every record and queries filter
// on it.
const (
	QualityProvider = "provider"
	QualityFallback = "fallback"
)

// DefaultDimension matches text-embedding-004 / jina-v3 output and the
// vector column width.
const DefaultDimension = 768

// Result is the outcome of one Embed call. All vectors in a result share
// the same quality path.
type Result struct {
	Vectors [][]float32
	Quality string
}

// Gateway wraps an EmbeddingProvider and fails closed: a provider error
// is absorbed and replaced by deterministic fallback vectors, so callers
// always get some embedding back, tagged with its quality.
type Gateway struct {
	provider EmbeddingProvider
	dim      int
	logger   logger.ILogger
}

func NewGateway(provider EmbeddingProvider, dim int, log logger.ILogger) *Gateway {
	if dim <= 0 {
		dim = DefaultDimension
	}
	return &Gateway{provider: provider, dim: dim, logger: log}
}

// Dimension is fixed for the lifetime of an index.
func (g *Gateway) Dimension() int {
	return g.dim
}

// dimensionsMatch rejects provider output whose width differs from the
// index column. A mismatched vector would poison the index, so it is
// treated like a provider failure.
func (g *Gateway) dimensionsMatch(vecs [][]float32) bool {
	for _, v := range vecs {
		if len(v) != g.dim {
			return false
		}
	}
	return true
}

func (g *Gateway) Embed(ctx context.Context, texts []string) Result {
	if len(texts) == 0 {
		return Result{Vectors: nil, Quality: QualityProvider}
	}

	var (
		vecs [][]float32
		err  error
	)
	if g.provider != nil {
		vecs, err = g.provider.Embed(ctx, texts)
		if err == nil && len(vecs) == len(texts) && g.dimensionsMatch(vecs) {
			for i, v := range vecs {
				vecs[i] = NormalizeVector(v)
			}
			return Result{Vectors: vecs, Quality: QualityProvider}
		}
	}

	switch {
	case g.provider == nil:
		g.logger.Warn("EMBEDDING", "No provider configured, using fallback vectors", map[string]interface{}{
			"texts": len(texts),
		})
	case err != nil:
		g.logger.Warn("EMBEDDING", "Provider failed, using fallback vectors", map[string]interface{}{
			"texts": len(texts), "error": err.Error(),
		})
	case len(vecs) != len(texts):
		g.logger.Warn("EMBEDDING", "Provider returned wrong vector count, using fallback vectors", map[string]interface{}{
			"want": len(texts), "got": len(vecs),
		})
	default:
		g.logger.Warn("EMBEDDING", "Provider returned wrong vector dimension, using fallback vectors", map[string]interface{}{
			"want_dim": g.dim,
		})
	}

	fallback := make([][]float32, len(texts))
	for i, text := range texts {
		fallback[i] = FallbackVector(text, g.dim)
	}
	return Result{Vectors: fallback, Quality: QualityFallback}
}
