// Package parser builds a boolean query tree (internal/searcher/query) from
// the platform's query syntax: whitespace-separated terms combined with
// AND/OR/NOT keywords (default AND between bare terms) and a trailing "*"
// marking a prefix match. It deliberately stays minimal — the ranking core
// this feeds does not require a sophisticated grammar, and query-tree
// construction is out of scope for the ranking specification this platform
// implements.
package parser

import (
	"strings"

	"github.com/Adithya-Monish-Kumar-K/Distributed-Search-Analytics-Platform/internal/indexer/tokenizer"
	"github.com/Adithya-Monish-Kumar-K/Distributed-Search-Analytics-Platform/internal/searcher/query"
)

type operator int

const (
	opAnd operator = iota
	opOr
)

// Parse tokenizes and combines the raw query text into a *query.Query tree.
// Bare terms default to AND; "OR" switches the combinator for subsequent
// terms until the next explicit operator; "NOT" negates the next term.
// A term ending in "*" is parsed as a prefix match.
func Parse(raw string) *query.Query {
	q := query.Empty()
	q.Raw = raw
	if strings.TrimSpace(raw) == "" {
		return q
	}

	words := strings.Fields(raw)
	op := opAnd
	negateNext := false
	root := -1

	for _, word := range words {
		switch strings.ToUpper(word) {
		case "AND":
			op = opAnd
			continue
		case "OR":
			op = opOr
			continue
		case "NOT":
			negateNext = true
			continue
		}

		leaf := parseTerm(q, word)
		if leaf < 0 {
			continue
		}
		if negateNext {
			leaf = q.AddNot(leaf)
			negateNext = false
		}

		if root < 0 {
			root = leaf
			continue
		}
		switch op {
		case opOr:
			root = q.AddOr(root, leaf)
		default:
			root = q.AddAnd(root, leaf)
		}
	}

	if root >= 0 {
		q.Root = root
	}
	return q
}

// parseTerm tokenizes (and, where applicable, stems) a single query word
// and appends it to q as a VAL leaf. Returns -1 if the word normalises to
// nothing (e.g. it was a stop-word).
func parseTerm(q *query.Query, word string) int {
	prefix := false
	if strings.HasSuffix(word, "*") {
		prefix = true
		word = strings.TrimSuffix(word, "*")
	}
	if word == "" {
		return -1
	}
	tokens := tokenizer.Tokenize(word)
	if len(tokens) == 0 {
		return -1
	}
	return q.AddVal(tokens[0].Term, prefix)
}
