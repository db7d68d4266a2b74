package rank

import (
	"sort"

	"github.com/Adithya-Monish-Kumar-K/Distributed-Search-Analytics-Platform/internal/searcher/query"
)

// Operand is one unique query operand: the VAL node it came from, its
// lexeme text, and whether it is a prefix match.
type Operand struct {
	NodeIdx int
	Text    string
	Prefix  bool
}

// CollectOperands walks the query's VAL leaves, stable-sorts them bytewise
// by lexeme text, and removes consecutive duplicates (same text and
// prefix flag) so the standard ranker does not double-count a repeated
// term.
func CollectOperands(q *query.Query) []Operand {
	if q == nil || len(q.Values) == 0 {
		return nil
	}
	ops := make([]Operand, 0, len(q.Values))
	for _, idx := range q.Values {
		n := q.Nodes[idx]
		ops = append(ops, Operand{NodeIdx: idx, Text: n.Operand, Prefix: n.Prefix})
	}
	sort.SliceStable(ops, func(i, j int) bool {
		return compareLenBytes(ops[i].Text, ops[j].Text) < 0
	})
	out := make([]Operand, 0, len(ops))
	for i, op := range ops {
		if i > 0 {
			prev := ops[i-1]
			if prev.Text == op.Text && prev.Prefix == op.Prefix {
				continue
			}
		}
		out = append(out, op)
	}
	return out
}
