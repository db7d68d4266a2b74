package rank

import (
	"context"
	"math"
	"testing"
)

// S5 — cover density, two adjacent covers: wdoc == 2 before normalisation,
// and with ExtentDist set, final score ~= 0.111.
func TestComputeCoverDensityS5(t *testing.T) {
	v := &DocVector{Entries: []LexemeEntry{
		{Lexeme: "a", Positions: []Position{{Pos: 1, Class: 3}, {Pos: 10, Class: 3}}},
		{Lexeme: "b", Positions: []Position{{Pos: 2, Class: 3}, {Pos: 11, Class: 3}}},
	}}
	q := buildAndQuery(t, "a", "b")
	rep := BuildDocRep(v, q)

	wdoc, nExtents, sumDist, err := computeCoverDensity(context.Background(), rep, q, DefaultWeights)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if nExtents != 2 {
		t.Fatalf("expected 2 extents, got %d", nExtents)
	}
	if math.Abs(wdoc-2) > 1e-9 {
		t.Fatalf("expected wdoc == 2, got %v", wdoc)
	}

	res := normalize(MethodExtentDist, wdoc, normContext{vector: v, nExtents: nExtents, sumDist: sumDist})
	if math.Abs(res-0.111) > 0.001 {
		t.Fatalf("expected ExtentDist-normalised score ~= 0.111, got %v", res)
	}
}

func TestComputeCoverDensityRejectsZeroWeight(t *testing.T) {
	v := &DocVector{Entries: []LexemeEntry{
		{Lexeme: "a", Positions: []Position{{Pos: 1, Class: 3}}},
		{Lexeme: "b", Positions: []Position{{Pos: 2, Class: 3}}},
	}}
	q := buildAndQuery(t, "a", "b")
	rep := BuildDocRep(v, q)

	zero := [4]float64{0, 0.2, 0.4, 1.0}
	if _, _, _, err := computeCoverDensity(context.Background(), rep, q, zero); err != ErrWeightOutOfRange {
		t.Fatalf("expected ErrWeightOutOfRange for a zero weight, got %v", err)
	}
}

// Property 7(c): increasing the number of disjoint covers must increase
// (or at least not decrease) the raw density score.
func TestCoverDensityMonotoneInCoverCount(t *testing.T) {
	one := &DocVector{Entries: []LexemeEntry{
		{Lexeme: "a", Positions: []Position{{Pos: 1, Class: 3}}},
		{Lexeme: "b", Positions: []Position{{Pos: 2, Class: 3}}},
	}}
	two := &DocVector{Entries: []LexemeEntry{
		{Lexeme: "a", Positions: []Position{{Pos: 1, Class: 3}, {Pos: 10, Class: 3}}},
		{Lexeme: "b", Positions: []Position{{Pos: 2, Class: 3}, {Pos: 11, Class: 3}}},
	}}
	q := buildAndQuery(t, "a", "b")

	wdocOne, _, _, err := computeCoverDensity(context.Background(), BuildDocRep(one, q), q, DefaultWeights)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wdocTwo, _, _, err := computeCoverDensity(context.Background(), BuildDocRep(two, q), q, DefaultWeights)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if wdocTwo <= wdocOne {
		t.Fatalf("expected a second disjoint cover to increase wdoc: one=%v, two=%v", wdocOne, wdocTwo)
	}
}

// Property 7(b): decreasing the noise between the two covered lexemes
// (bringing them closer together) must not decrease the contribution of
// that extent.
func TestCoverDensityMonotoneInNoise(t *testing.T) {
	near := &DocVector{Entries: []LexemeEntry{
		{Lexeme: "a", Positions: []Position{{Pos: 1, Class: 3}}},
		{Lexeme: "b", Positions: []Position{{Pos: 2, Class: 3}}},
	}}
	far := &DocVector{Entries: []LexemeEntry{
		{Lexeme: "a", Positions: []Position{{Pos: 1, Class: 3}}},
		{Lexeme: "b", Positions: []Position{{Pos: 20, Class: 3}}},
	}}
	q := buildAndQuery(t, "a", "b")

	wdocNear, _, _, err := computeCoverDensity(context.Background(), BuildDocRep(near, q), q, DefaultWeights)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wdocFar, _, _, err := computeCoverDensity(context.Background(), BuildDocRep(far, q), q, DefaultWeights)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if wdocNear <= wdocFar {
		t.Fatalf("expected the noisier extent to score lower: near=%v, far=%v", wdocNear, wdocFar)
	}
}
