package embedding

import (
	"context"
	"errors"
	"testing"

	"github.com/kk7188048/Rag-NewsArticles/internal/pkg/logger"
)

type fakeProvider struct {
	vectors [][]float32
	err     error
}

func (f *fakeProvider) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.vectors, nil
}

func TestGatewayProviderPath(t *testing.T) {
	provider := &fakeProvider{vectors: [][]float32{{3, 4}, {0, 5}}}
	g := NewGateway(provider, 2, logger.NewNopLogger())

	res := g.Embed(context.Background(), []string{"one", "two"})

	if res.Quality != QualityProvider {
		t.Fatalf("quality = %q, want %q", res.Quality, QualityProvider)
	}
	if len(res.Vectors) != 2 {
		t.Fatalf("want 2 vectors, got %d", len(res.Vectors))
	}
	// Provider outputs are normalized before use.
	if res.Vectors[0][0] != 0.6 || res.Vectors[0][1] != 0.8 {
		t.Fatalf("vector not normalized: %v", res.Vectors[0])
	}
}

func TestGatewayFallbackOnError(t *testing.T) {
	provider := &fakeProvider{err: errors.New("upstream down")}
	g := NewGateway(provider, 8, logger.NewNopLogger())

	res := g.Embed(context.Background(), []string{"news about chips", "cup final"})

	if res.Quality != QualityFallback {
		t.Fatalf("quality = %q, want %q", res.Quality, QualityFallback)
	}
	if len(res.Vectors) != 2 {
		t.Fatalf("want one vector per text, got %d", len(res.Vectors))
	}
	want := FallbackVector("news about chips", 8)
	for i := range want {
		if res.Vectors[0][i] != want[i] {
			t.Fatal("fallback vector does not match deterministic fallback")
		}
	}
}

func TestGatewayFallbackOnWrongCount(t *testing.T) {
	provider := &fakeProvider{vectors: [][]float32{{1, 0}}} // one vector for two texts
	g := NewGateway(provider, 4, logger.NewNopLogger())

	res := g.Embed(context.Background(), []string{"a", "b"})

	if res.Quality != QualityFallback {
		t.Fatalf("quality = %q, want %q", res.Quality, QualityFallback)
	}
	if len(res.Vectors) != 2 {
		t.Fatalf("want 2 vectors, got %d", len(res.Vectors))
	}
}

func TestGatewayFallbackOnWrongDimension(t *testing.T) {
	wide := make([]float32, 1024)
	wide[0] = 1
	provider := &fakeProvider{vectors: [][]float32{wide}}
	g := NewGateway(provider, 768, logger.NewNopLogger())

	res := g.Embed(context.Background(), []string{"ai chip exports"})

	// A vector wider than the index column must never reach it on the
	// provider path.
	if res.Quality != QualityFallback {
		t.Fatalf("quality = %q, want %q", res.Quality, QualityFallback)
	}
	if len(res.Vectors[0]) != 768 {
		t.Fatalf("vector dim = %d, want 768", len(res.Vectors[0]))
	}
}

func TestGatewayNoProvider(t *testing.T) {
	g := NewGateway(nil, 8, logger.NewNopLogger())

	res := g.Embed(context.Background(), []string{"offline mode"})

	if res.Quality != QualityFallback {
		t.Fatalf("quality = %q, want %q", res.Quality, QualityFallback)
	}
	if len(res.Vectors) != 1 {
		t.Fatalf("want 1 vector, got %d", len(res.Vectors))
	}
}

func TestGatewayClampsNonPositiveDimension(t *testing.T) {
	g := NewGateway(nil, 0, logger.NewNopLogger())
	if g.Dimension() != DefaultDimension {
		t.Fatalf("dimension = %d, want %d", g.Dimension(), DefaultDimension)
	}

	res := g.Embed(context.Background(), []string{"never panics"})
	if len(res.Vectors) != 1 || len(res.Vectors[0]) != DefaultDimension {
		t.Fatalf("want one %d-dim vector, got %+v", DefaultDimension, res.Vectors)
	}
}

func TestGatewayEmptyInput(t *testing.T) {
	g := NewGateway(&fakeProvider{err: errors.New("never called")}, 4, logger.NewNopLogger())

	res := g.Embed(context.Background(), nil)
	if len(res.Vectors) != 0 {
		t.Fatalf("want no vectors for empty input, got %d", len(res.Vectors))
	}
}
