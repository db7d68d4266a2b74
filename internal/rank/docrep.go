package rank

import (
	"sort"

	"github.com/Adithya-Monish-Kumar-K/Distributed-Search-Analytics-Platform/internal/searcher/query"
)

// Occurrence binds one position in the document to every query VAL node
// that matches the lexeme at that position.
type Occurrence struct {
	Pos         uint32
	Class       uint8
	IsSynthetic bool
	Operands    []int // node indices of matching VAL leaves
}

// DocRep is the document representation consumed by the cover extractor:
// occurrences sorted ascending by position.
type DocRep struct {
	Occurrences []Occurrence
}

// BuildDocRep builds the document representation for a cover-density
// scoring call: for every query VAL node not already covered by an
// earlier, same-lexeme node, look it up in v and emit one Occurrence per
// matching position (or a synthetic singleton), attaching the full set of
// VAL nodes that share that lexeme so a later pass does not re-emit them.
func BuildDocRep(v *DocVector, q *query.Query) *DocRep {
	if v == nil || q == nil || len(q.Values) == 0 {
		return &DocRep{}
	}

	assigned := make([]bool, len(q.Nodes))
	rep := &DocRep{Occurrences: make([]Occurrence, 0, 4*len(q.Values))}

	for _, idx := range q.Values {
		if assigned[idx] {
			continue
		}
		node := q.Nodes[idx]
		first, count := FindLexeme(v, node.Operand, node.Prefix)
		if count == 0 {
			continue
		}
		for j := 0; j < count; j++ {
			entry := v.Entries[first+j]
			sharing := sharedOperands(q, entry.Lexeme)
			for _, s := range sharing {
				assigned[s] = true
			}
			positions, isSynthetic := occurrencePositions(entry)
			for _, p := range positions {
				rep.Occurrences = append(rep.Occurrences, Occurrence{
					Pos:         p.Pos,
					Class:       p.Class,
					IsSynthetic: isSynthetic,
					Operands:    sharing,
				})
			}
		}
	}

	sort.SliceStable(rep.Occurrences, func(i, j int) bool {
		return rep.Occurrences[i].Pos < rep.Occurrences[j].Pos
	})
	return rep
}

// sharedOperands returns every VAL node index in q whose operand matches
// lexeme — either by exact text, or, for a prefix operand, by lexeme
// having that operand as a byte-prefix.
func sharedOperands(q *query.Query, lexeme string) []int {
	out := make([]int, 0, 1)
	for _, idx := range q.Values {
		n := q.Nodes[idx]
		if n.Prefix {
			if len(lexeme) >= len(n.Operand) && lexeme[:len(n.Operand)] == n.Operand {
				out = append(out, idx)
			}
		} else if n.Operand == lexeme {
			out = append(out, idx)
		}
	}
	return out
}
