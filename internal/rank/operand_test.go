package rank

import (
	"testing"

	"github.com/Adithya-Monish-Kumar-K/Distributed-Search-Analytics-Platform/internal/searcher/query"
)

func TestCollectOperandsDedupsIdenticalNodes(t *testing.T) {
	q := query.Empty()
	a := q.AddVal("cat", false)
	b := q.AddVal("cat", false)
	q.AddOr(a, b)

	ops := CollectOperands(q)
	if len(ops) != 1 {
		t.Fatalf("expected duplicate (text, prefix) operands to collapse to one, got %v", ops)
	}
}

func TestCollectOperandsKeepsDistinctPrefixFlag(t *testing.T) {
	q := query.Empty()
	a := q.AddVal("cat", false)
	b := q.AddVal("cat", true)
	q.AddOr(a, b)

	ops := CollectOperands(q)
	if len(ops) != 2 {
		t.Fatalf("expected 'cat' and 'cat:*' to be distinct operands, got %v", ops)
	}
}

func TestCollectOperandsEmptyQuery(t *testing.T) {
	if ops := CollectOperands(query.Empty()); ops != nil {
		t.Fatalf("expected nil operands for an empty query, got %v", ops)
	}
}

func TestCollectOperandsSortedByLexeme(t *testing.T) {
	q := query.Empty()
	a := q.AddVal("zebra", false)
	b := q.AddVal("apple", false)
	q.AddOr(a, b)

	ops := CollectOperands(q)
	if len(ops) != 2 || ops[0].Text != "apple" || ops[1].Text != "zebra" {
		t.Fatalf("expected operands sorted ascending by text, got %v", ops)
	}
}
