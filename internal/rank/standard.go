package rank

import (
	"math"

	"github.com/Adithya-Monish-Kumar-K/Distributed-Search-Analytics-Platform/internal/searcher/query"
)

// wordDistance returns the weight of a word collocation at distance d: a
// near-zero floor beyond 100 positions, otherwise a smooth decay.
func wordDistance(d int) float64 {
	if d > 100 {
		return 1e-30
	}
	return 1.0 / (1.005 + 0.05*math.Exp(float64(d)/1.5-2))
}

// positionContribution scores one lexeme occurrence's position list: the
// peak weight is factored out and the residual normalised by pi^2/6 so a
// single perfect occurrence trends to 1.
func positionContribution(positions []Position, w [4]float64) float64 {
	var res float64
	var wjm float64
	jm := 0
	for j, p := range positions {
		cw := w[p.Class]
		res += cw / float64((j+1)*(j+1))
		if j == 0 || cw > wjm {
			wjm = cw
			jm = j
		}
	}
	return (wjm + res - wjm/float64((jm+1)*(jm+1))) / piSquaredOver6
}

// RankOr computes the OR-semantics standard rank: every unique operand
// contributes independently, and the total is averaged over the operand
// count.
func RankOr(v *DocVector, q *query.Query, w [4]float64) float64 {
	operands := CollectOperands(q)
	if len(operands) == 0 {
		return 0
	}
	var total float64
	for _, op := range operands {
		first, count := FindLexeme(v, op.Text, op.Prefix)
		for i := 0; i < count; i++ {
			entry := v.Entries[first+i]
			positions, _ := occurrencePositions(entry)
			total += positionContribution(positions, w)
		}
	}
	return total / float64(len(operands))
}

// operandSlot holds one operand's most recently seen matching entry: a
// single slot that gets overwritten as a multi-entry prefix run is
// walked, exactly as the original's per-operand WordEntryPosVector
// pointer does (it is reassigned, not accumulated, on each entry).
type operandSlot struct {
	positions []Position
	synthetic bool
	set       bool
}

// RankAnd computes the AND-semantics standard rank: positional distances
// between every pair of distinct operands are combined via a
// probabilistic OR. Falls back to RankOr when fewer than two unique
// operands are present.
//
// For a prefix operand matching several entries, each entry is paired
// against every earlier operand's *current* slot as soon as it is seen,
// then overwrites that operand's own slot — so a later entry's positions
// permanently replace an earlier one's for any still-to-come operand,
// rather than accumulating. This mirrors the original's single
// WordEntryPosVector pointer per operand, which it reassigns per entry
// rather than collecting.
func RankAnd(v *DocVector, q *query.Query, w [4]float64) float64 {
	operands := CollectOperands(q)
	if len(operands) < 2 {
		return RankOr(v, q, w)
	}

	slots := make([]operandSlot, len(operands))
	res := -1.0
	haveRes := false

	for i, op := range operands {
		first, count := FindLexeme(v, op.Text, op.Prefix)
		if count == 0 {
			continue
		}
		for j := 0; j < count; j++ {
			entry := v.Entries[first+j]
			positions, synthetic := occurrencePositions(entry)
			slots[i] = operandSlot{positions: positions, synthetic: synthetic, set: true}

			for k := 0; k < i; k++ {
				if !slots[k].set {
					continue
				}
				for _, pi := range slots[i].positions {
					for _, pk := range slots[k].positions {
						dist := int(pi.Pos) - int(pk.Pos)
						if dist < 0 {
							dist = -dist
						}
						bothReal := !slots[i].synthetic && !slots[k].synthetic
						if dist == 0 {
							if bothReal {
								continue
							}
							dist = int(MaxPosition)
						}
						curw := math.Sqrt(w[pi.Class] * w[pk.Class] * wordDistance(dist))
						if !haveRes {
							res = curw
							haveRes = true
						} else {
							res = 1 - (1-res)*(1-curw)
						}
					}
				}
			}
		}
	}
	return res
}

// dispatchStandard dispatches to RankAnd when the query's root is an AND
// operator, and to RankOr otherwise — OR, NOT, and bare terms all share
// the OR path. This is the documented approximation for NOT (see
// spec.md §9): a negated root is not specially handled, it just falls
// through to RankOr.
func dispatchStandard(v *DocVector, q *query.Query, w [4]float64) float64 {
	if q.IsEmpty() {
		return 0
	}
	if q.RootType() == query.NodeAnd {
		return RankAnd(v, q, w)
	}
	return RankOr(v, q, w)
}
