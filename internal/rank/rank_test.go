package rank

import (
	"context"
	"math"
	"testing"

	"github.com/Adithya-Monish-Kumar-K/Distributed-Search-Analytics-Platform/internal/searcher/query"
)

// S6 — prefix query: "cat":* matches both "cat" and "catch", and rank_or
// divides by one unique operand (the prefix collapses to a single entry
// in CollectOperands even though it matches two vector entries).
func TestRankS6PrefixQuery(t *testing.T) {
	v := &DocVector{Entries: []LexemeEntry{
		{Lexeme: "cat", Positions: []Position{{Pos: 1, Class: 3}}},
		{Lexeme: "catch", Positions: []Position{{Pos: 5, Class: 2}}},
		{Lexeme: "dog", Positions: []Position{{Pos: 9, Class: 1}}},
	}}
	q := query.Empty()
	q.AddVal("cat", true)

	score, err := Rank(context.Background(), v, q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	catContribution := positionContribution([]Position{{Pos: 1, Class: 3}}, DefaultWeights)
	catchContribution := positionContribution([]Position{{Pos: 5, Class: 2}}, DefaultWeights)
	want := float32((catContribution + catchContribution) / 1)
	if math.Abs(float64(score-want)) > 1e-6 {
		t.Fatalf("got %v, want %v", score, want)
	}
}

func TestRankAllEmptyReturnsZero(t *testing.T) {
	if score, err := Rank(context.Background(), &DocVector{}, singleTermQuery("cat")); err != nil || score != 0 {
		t.Fatalf("expected 0, nil for an empty vector, got %v, %v", score, err)
	}
	v := &DocVector{Entries: []LexemeEntry{{Lexeme: "cat"}}}
	if score, err := Rank(context.Background(), v, query.Empty()); err != nil || score != 0 {
		t.Fatalf("expected 0, nil for an empty query, got %v, %v", score, err)
	}
}

func TestRankHostInterrupt(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	v := &DocVector{Entries: []LexemeEntry{{Lexeme: "cat", Positions: []Position{{Pos: 1, Class: 3}}}}}
	if _, err := Rank(ctx, v, singleTermQuery("cat")); err != ErrHostInterrupt {
		t.Fatalf("expected ErrHostInterrupt, got %v", err)
	}
	if _, err := RankCD(ctx, v, singleTermQuery("cat")); err != ErrHostInterrupt {
		t.Fatalf("expected ErrHostInterrupt, got %v", err)
	}
}

func TestRankWeightedPropagatesInvalidWeights(t *testing.T) {
	v := &DocVector{Entries: []LexemeEntry{{Lexeme: "cat", Positions: []Position{{Pos: 1, Class: 3}}}}}
	_, err := RankWeighted(context.Background(), []float64{2.0, 0.2, 0.4, 1.0}, v, singleTermQuery("cat"))
	if err != ErrWeightOutOfRange {
		t.Fatalf("expected ErrWeightOutOfRange, got %v", err)
	}
}

func TestRankCDWeightedRejectsZeroWeight(t *testing.T) {
	v := &DocVector{Entries: []LexemeEntry{
		{Lexeme: "a", Positions: []Position{{Pos: 1, Class: 3}}},
		{Lexeme: "b", Positions: []Position{{Pos: 2, Class: 3}}},
	}}
	q := buildAndQuery(t, "a", "b")
	_, err := RankCDWeighted(context.Background(), []float64{0, 0.2, 0.4, 1.0}, v, q)
	if err != ErrWeightOutOfRange {
		t.Fatalf("expected ErrWeightOutOfRange for a zero weight, got %v", err)
	}
}

func TestRankMethodAppliesNormalisation(t *testing.T) {
	v := &DocVector{Entries: []LexemeEntry{
		{Lexeme: "cat", Positions: []Position{{Pos: 1, Class: 3}, {Pos: 2, Class: 3}}},
		{Lexeme: "dog", Positions: []Position{{Pos: 3, Class: 1}}},
	}}
	q := singleTermQuery("cat")

	plain, err := RankMethod(context.Background(), v, q, MethodDefault)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	normalized, err := RankMethod(context.Background(), v, q, MethodUniq)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if normalized >= plain {
		t.Fatalf("expected Uniq normalisation to shrink a score for a multi-position term in a two-entry vector, got plain=%v normalized=%v", plain, normalized)
	}
}

func TestRankCDS5EndToEnd(t *testing.T) {
	v := &DocVector{Entries: []LexemeEntry{
		{Lexeme: "a", Positions: []Position{{Pos: 1, Class: 3}, {Pos: 10, Class: 3}}},
		{Lexeme: "b", Positions: []Position{{Pos: 2, Class: 3}, {Pos: 11, Class: 3}}},
	}}
	q := buildAndQuery(t, "a", "b")

	plain, err := RankCD(context.Background(), v, q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(float64(plain)-2.0) > 1e-6 {
		t.Fatalf("expected the raw cover-density score to be 2, got %v", plain)
	}

	extentDist, err := RankCDMethod(context.Background(), v, q, MethodExtentDist)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(float64(extentDist)-0.111) > 0.001 {
		t.Fatalf("expected the ExtentDist-normalised score to be ~= 0.111, got %v", extentDist)
	}
}
