// Package rank implements the ranking core: given a document's lexeme
// vector and a parsed boolean query tree, compute a relevance score via
// either the standard (weighted co-occurrence) algorithm or the
// cover-density (minimal-span extent) algorithm, followed by a shared
// length/uniqueness normalisation post-process.
//
// The package is single-threaded per call; all scratch state is scoped to
// one invocation and released on return. Callers may invoke it
// concurrently across independent documents without synchronisation.
package rank

import "errors"

// MaxPosition is the reserved sentinel marking "unknown position"; every
// real position must satisfy 0 <= Pos < MaxPosition.
const MaxPosition uint32 = 1<<20 - 1

// piSquaredOver6 is the asymptotic sum of 1/i^2, truncated exactly as in
// the original fixed-point implementation this algorithm is grounded on.
// Do not replace with a higher-precision constant: it is part of the
// external numerical contract.
const piSquaredOver6 = 1.64493406685

// Method bits select which normalisations normalize applies, in this
// fixed order.
const (
	MethodDefault    uint32 = 0x00
	MethodLogLength  uint32 = 0x01
	MethodLength     uint32 = 0x02
	MethodExtentDist uint32 = 0x04
	MethodUniq       uint32 = 0x08
	MethodLogUniq    uint32 = 0x10
	MethodSelfNorm   uint32 = 0x20
)

// DefaultWeights are the process-wide read-only default weights for
// classes 0..3. Never mutate this array; ResolveWeights always returns a
// fresh copy.
var DefaultWeights = [4]float64{0.1, 0.2, 0.4, 1.0}

// Sentinel errors for the non-recoverable error kinds of the ranking
// contract. NoMatch and AllEmpty are not modelled as errors: a missing
// operand silently contributes zero, and an empty vector or query returns
// a zero score with a nil error.
var (
	ErrInvalidWeightShape = errors.New("array of weight is too short")
	ErrWeightOutOfRange   = errors.New("weight out of range")
	ErrHostInterrupt      = errors.New("ranking interrupted by host")
)

// Position is one occurrence of a lexeme: its offset within the document
// and the weight class assigned to it at index time.
type Position struct {
	Pos   uint32
	Class uint8
}

// LexemeEntry is one distinct lexeme of a document and every position at
// which it occurs.
type LexemeEntry struct {
	Lexeme    string
	Positions []Position
}

// DocVector is a document's full lexeme vocabulary: an ordered,
// deduplicated, bytewise-sorted-by-lexeme slice of entries. It is the
// read-only input the ranking core scores a query against.
type DocVector struct {
	Entries []LexemeEntry
}

// Size returns the number of distinct lexemes in the vector.
func (v *DocVector) Size() int {
	if v == nil {
		return 0
	}
	return len(v.Entries)
}

// syntheticPosition is substituted for lexeme entries that, unusually,
// carry no stored positions (e.g. a purely structural token). The class
// sentinel (3, the highest class) mirrors the original's choice to model
// a position-less hit as maximally significant.
var syntheticPosition = Position{Pos: 0, Class: 3}

// occurrencePositions returns the real position list for an entry, or a
// synthetic singleton plus a flag reporting that the fallback was used.
func occurrencePositions(e LexemeEntry) ([]Position, bool) {
	if len(e.Positions) == 0 {
		return []Position{syntheticPosition}, true
	}
	return e.Positions, false
}

// cntLength sums, over all entries, max(1, len(positions)) — entries with
// no stored positions contribute 1, matching the original's cnt_length.
func cntLength(v *DocVector) float64 {
	if v == nil {
		return 0
	}
	total := 0
	for _, e := range v.Entries {
		n := len(e.Positions)
		if n == 0 {
			n = 1
		}
		total += n
	}
	return float64(total)
}
