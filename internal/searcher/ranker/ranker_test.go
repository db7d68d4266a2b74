package ranker

import (
	"context"
	stderrors "errors"
	"net/http"
	"testing"

	"github.com/Adithya-Monish-Kumar-K/Distributed-Search-Analytics-Platform/internal/rank"
	"github.com/Adithya-Monish-Kumar-K/Distributed-Search-Analytics-Platform/internal/searcher/query"
	apperrors "github.com/Adithya-Monish-Kumar-K/Distributed-Search-Analytics-Platform/pkg/errors"
)

func termQuery(term string) *query.Query {
	q := query.Empty()
	q.AddVal(term, false)
	return q
}

func docVector(docID string) *rank.DocVector {
	if docID == "" {
		return nil
	}
	return &rank.DocVector{Entries: []rank.LexemeEntry{
		{Lexeme: "cat", Positions: []rank.Position{{Pos: 1, Class: 3}}},
	}}
}

// A malformed weights config is identical for every candidate in the
// call, so Rank must reject it once, up front, as a 400 AppError rather
// than letting every worker fail the same way and returning an empty
// result set with a 200.
func TestRankRejectsInvalidWeightShapeBeforeFanOut(t *testing.T) {
	params := Params{Algorithm: AlgorithmStandard, Weights: []float64{0.1, 0.2}}
	_, err := Rank(context.Background(), termQuery("cat"), []string{"doc1", "doc2"}, docVector, params, 10)
	if err == nil {
		t.Fatal("expected an error for a too-short weight array")
	}
	if !stderrors.Is(err, rank.ErrInvalidWeightShape) {
		t.Fatalf("expected ErrInvalidWeightShape in the chain, got %v", err)
	}
	if got := apperrors.HTTPStatusCode(err); got != http.StatusBadRequest {
		t.Fatalf("expected HTTP 400, got %d", got)
	}
}

func TestRankRejectsOutOfRangeWeight(t *testing.T) {
	params := Params{Algorithm: AlgorithmStandard, Weights: []float64{0.1, 0.2, 0.4, 2.0}}
	_, err := Rank(context.Background(), termQuery("cat"), []string{"doc1"}, docVector, params, 10)
	if !stderrors.Is(err, rank.ErrWeightOutOfRange) {
		t.Fatalf("expected ErrWeightOutOfRange in the chain, got %v", err)
	}
	if got := apperrors.HTTPStatusCode(err); got != http.StatusBadRequest {
		t.Fatalf("expected HTTP 400, got %d", got)
	}
}

// A context canceled mid-call surfaces as a 503 AppError instead of a
// silently degraded result set: every remaining candidate would fail the
// same way, so the caller needs to know the call as a whole did not
// complete.
func TestRankSurfacesHostInterruptAsServiceUnavailable(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	candidates := make([]string, 0, 64)
	for i := 0; i < 64; i++ {
		candidates = append(candidates, "doc")
	}
	params := Params{Algorithm: AlgorithmStandard}
	_, err := Rank(ctx, termQuery("cat"), candidates, docVector, params, 10)
	if err == nil {
		t.Fatal("expected an error for a pre-canceled context")
	}
	if !stderrors.Is(err, rank.ErrHostInterrupt) {
		t.Fatalf("expected ErrHostInterrupt in the chain, got %v", err)
	}
	if got := apperrors.HTTPStatusCode(err); got != http.StatusServiceUnavailable {
		t.Fatalf("expected HTTP 503, got %d", got)
	}
}

func TestRankEmptyCandidatesReturnsEmptyNoError(t *testing.T) {
	params := Params{Algorithm: AlgorithmStandard}
	scored, err := Rank(context.Background(), termQuery("cat"), nil, docVector, params, 10)
	if err != nil {
		t.Fatalf("expected no error for an empty candidate set, got %v", err)
	}
	if len(scored) != 0 {
		t.Fatalf("expected an empty result, got %v", scored)
	}
}
