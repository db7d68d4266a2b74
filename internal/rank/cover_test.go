package rank

import (
	"context"
	"testing"
)

// S5 — cover density, two adjacent covers.
func TestNextCoverS5(t *testing.T) {
	v := &DocVector{Entries: []LexemeEntry{
		{Lexeme: "a", Positions: []Position{{Pos: 1, Class: 3}, {Pos: 10, Class: 3}}},
		{Lexeme: "b", Positions: []Position{{Pos: 2, Class: 3}, {Pos: 11, Class: 3}}},
	}}
	q := buildAndQuery(t, "a", "b")
	rep := BuildDocRep(v, q)

	state := &CoverState{}
	ext1, ok, err := NextCover(context.Background(), rep, q, state)
	if err != nil || !ok {
		t.Fatalf("expected a first cover, got ok=%v err=%v", ok, err)
	}
	if ext1.P > ext1.Q {
		t.Fatalf("expected p <= q for a valid extent, got %+v", ext1)
	}

	ext2, ok, err := NextCover(context.Background(), rep, q, state)
	if err != nil || !ok {
		t.Fatalf("expected a second cover, got ok=%v err=%v", ok, err)
	}
	if ext2.P <= ext1.Q {
		t.Fatalf("expected the second extent to start after the first, got %+v after %+v", ext2, ext1)
	}

	_, ok, err = NextCover(context.Background(), rep, q, state)
	if err != nil {
		t.Fatalf("unexpected error on exhaustion: %v", err)
	}
	if ok {
		t.Fatal("expected no third cover for two disjoint term pairs")
	}
}

func TestNextCoverHostInterrupt(t *testing.T) {
	v := &DocVector{Entries: []LexemeEntry{
		{Lexeme: "a", Positions: []Position{{Pos: 1, Class: 3}}},
		{Lexeme: "b", Positions: []Position{{Pos: 2, Class: 3}}},
	}}
	q := buildAndQuery(t, "a", "b")
	rep := BuildDocRep(v, q)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := NextCover(ctx, rep, q, &CoverState{})
	if err == nil {
		t.Fatal("expected a host-interrupt error from a cancelled context")
	}
}

func TestNextCoverNoMatch(t *testing.T) {
	v := &DocVector{Entries: []LexemeEntry{
		{Lexeme: "a", Positions: []Position{{Pos: 1, Class: 3}}},
	}}
	q := buildAndQuery(t, "a", "b")
	rep := BuildDocRep(v, q)

	_, ok, err := NextCover(context.Background(), rep, q, &CoverState{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatal("expected no cover when one AND operand never appears")
	}
}
