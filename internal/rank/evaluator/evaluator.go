// Package evaluator is the boolean-expression evaluator the cover
// extractor depends on as an external collaborator (see spec.md §6.3). It
// is pure and side-effect-free: it only reads the query tree and the
// caller-supplied existence vector.
package evaluator

import "github.com/Adithya-Monish-Kumar-K/Distributed-Search-Analytics-Platform/internal/searcher/query"

// Evaluate walks q's tree rooted at q.Root and reports whether it is
// satisfied given existence, a per-node scratch vector recording which
// VAL nodes have been observed so far during a cover scan.
//
// A VAL leaf not yet present in existence is always false regardless of
// strict: "unprobed" in spec.md §6.3 is not a per-leaf default but a
// per-NOT-subtree one, mirroring the original ranker's calcnot flag.
// strict = false (scanning forward, building the cover's right edge)
// treats every NOT as vacuously true rather than evaluating it, since the
// scan cannot yet know whether the excluded term appears later in the
// unscanned tail; strict = true (scanning backward, shrinking to the
// left edge) evaluates NOT for real. Defaulting VAL leaves themselves to
// true in strict mode was tried and rejected: it lets the backward scan
// close on the very last occurrence that set any of the AND's operands,
// collapsing begin to end and hiding all inter-term noise from the
// density accumulator — it fails property 7(b) (noise monotonicity) on
// a plain two-term AND query.
func Evaluate(q *query.Query, existence []bool, strict bool) bool {
	if q == nil || q.IsEmpty() {
		return false
	}
	return evalNode(q, q.Root, existence, strict)
}

func evalNode(q *query.Query, idx int, existence []bool, strict bool) bool {
	if idx < 0 {
		return false
	}
	n := q.Nodes[idx]
	switch n.Type {
	case query.NodeVal:
		return idx < len(existence) && existence[idx]
	case query.NodeAnd:
		return evalNode(q, n.Left, existence, strict) && evalNode(q, n.Right, existence, strict)
	case query.NodeOr:
		return evalNode(q, n.Left, existence, strict) || evalNode(q, n.Right, existence, strict)
	case query.NodeNot:
		if !strict {
			return true
		}
		return !evalNode(q, n.Left, existence, strict)
	default:
		return false
	}
}
