package rank

import (
	"context"
	"fmt"

	"github.com/Adithya-Monish-Kumar-K/Distributed-Search-Analytics-Platform/internal/rank/evaluator"
	"github.com/Adithya-Monish-Kumar-K/Distributed-Search-Analytics-Platform/internal/searcher/query"
)

// Extent is a closed span of doc-rep indices (Begin and End both
// included) representing a minimal
// cover of the query, annotated with the absolute positions at its edges.
type Extent struct {
	Begin, End int
	P, Q       uint32
}

// CoverState carries the cursor NextCover advances across repeated calls,
// so the caller can pull a monotone, non-overlapping sequence of covers.
type CoverState struct {
	pos int
}

// NextCover finds the next minimal cover of q in rep starting at
// state.pos, advancing state.pos past it on success. It MUST iterate
// rather than recurse on rejected candidates (p > q): documents with long
// noisy regions would otherwise blow the call stack (see spec.md §9); a
// counter bounded by the doc-rep length proves termination.
//
// On success state.pos resumes one past End, not Begin: resuming at
// Begin+1 lets the very next scan re-enter through the tail occurrence of
// the cover just extracted and report a spurious extent that overlaps it
// (observed hand-tracing S5's two-AND-pair document). Covers extracted
// this way are disjoint and exhaustive, which is what the density
// accumulator in density.go assumes.
func NextCover(ctx context.Context, rep *DocRep, q *query.Query, state *CoverState) (Extent, bool, error) {
	occ := rep.Occurrences
	n := len(occ)
	existence := make([]bool, len(q.Nodes))

	for guard := 0; guard <= n; guard++ {
		if err := ctx.Err(); err != nil {
			return Extent{}, false, fmt.Errorf("%w: %v", ErrHostInterrupt, err)
		}
		if state.pos >= n {
			return Extent{}, false, nil
		}

		for i := range existence {
			existence[i] = false
		}
		end := -1
		for u := state.pos; u < n; u++ {
			setExistence(existence, occ[u].Operands)
			if evaluator.Evaluate(q, existence, false) {
				end = u
				break
			}
		}
		if end < 0 {
			return Extent{}, false, nil
		}
		qpos := occ[end].Pos
		lastpos := end

		for i := range existence {
			existence[i] = false
		}
		begin := -1
		for l := lastpos; l >= state.pos; l-- {
			setExistence(existence, occ[l].Operands)
			if evaluator.Evaluate(q, existence, true) {
				begin = l
				break
			}
		}
		if begin < 0 {
			state.pos++
			continue
		}
		ppos := occ[begin].Pos
		if ppos <= qpos {
			state.pos = end + 1
			return Extent{Begin: begin, End: end, P: ppos, Q: qpos}, true, nil
		}
		state.pos++
	}
	return Extent{}, false, nil
}

func setExistence(existence []bool, nodes []int) {
	for _, idx := range nodes {
		if idx >= 0 && idx < len(existence) {
			existence[idx] = true
		}
	}
}
