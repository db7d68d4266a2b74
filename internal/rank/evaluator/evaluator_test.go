package evaluator

import (
	"testing"

	"github.com/Adithya-Monish-Kumar-K/Distributed-Search-Analytics-Platform/internal/searcher/query"
)

func TestEvaluateAndNonStrict(t *testing.T) {
	q := query.Empty()
	a := q.AddVal("a", false)
	b := q.AddVal("b", false)
	q.AddAnd(a, b)

	existence := make([]bool, q.Size())
	if Evaluate(q, existence, false) {
		t.Fatal("expected AND with no operands present to be false")
	}
	existence[a] = true
	if Evaluate(q, existence, false) {
		t.Fatal("expected AND with only one operand present to be false")
	}
	existence[b] = true
	if !Evaluate(q, existence, false) {
		t.Fatal("expected AND with both operands present to be true")
	}
}

func TestEvaluateValLeafNeverDefaultsInStrictMode(t *testing.T) {
	q := query.Empty()
	a := q.AddVal("a", false)
	b := q.AddVal("b", false)
	q.AddAnd(a, b)

	existence := make([]bool, q.Size())
	existence[a] = true
	if Evaluate(q, existence, true) {
		t.Fatal("a VAL leaf must never default to true, in either strict or non-strict mode")
	}
}

func TestEvaluateOr(t *testing.T) {
	q := query.Empty()
	a := q.AddVal("a", false)
	b := q.AddVal("b", false)
	q.AddOr(a, b)

	existence := make([]bool, q.Size())
	existence[a] = true
	if !Evaluate(q, existence, false) {
		t.Fatal("expected OR with one operand present to be true")
	}
}

func TestEvaluateNotNonStrictIsVacuouslyTrue(t *testing.T) {
	q := query.Empty()
	a := q.AddVal("a", false)
	q.AddNot(a)

	existence := make([]bool, q.Size())
	if !Evaluate(q, existence, false) {
		t.Fatal("expected non-strict NOT of an absent operand to be vacuously true")
	}
	existence[a] = true
	if !Evaluate(q, existence, false) {
		t.Fatal("expected non-strict NOT to stay vacuously true even once its operand is present")
	}
}

func TestEvaluateNotStrictNegatesForReal(t *testing.T) {
	q := query.Empty()
	a := q.AddVal("a", false)
	q.AddNot(a)

	existence := make([]bool, q.Size())
	if !Evaluate(q, existence, true) {
		t.Fatal("expected strict NOT of an absent operand to be true")
	}
	existence[a] = true
	if Evaluate(q, existence, true) {
		t.Fatal("expected strict NOT of a present operand to be false")
	}
}

func TestEvaluateEmptyQuery(t *testing.T) {
	if Evaluate(query.Empty(), nil, false) {
		t.Fatal("expected empty query to evaluate false")
	}
}
