package rank

import (
	"sort"
	"strings"
)

// compareLenBytes implements the document-vector ordering comparator: the
// shared-prefix bytes first, then byte length as the tie-break. This is
// exactly equivalent to ordinary bytewise lexicographic string comparison
// (Go's native string "<"), which is why the DocVector invariant can be
// stated simply as "sorted ascending by lexeme string, collating
// bytewise" — the two phrasings describe the same total order.
func compareLenBytes(a, b string) int {
	return strings.Compare(a, b)
}

// comparePrefixOrder orders a vector entry against a prefix operand by
// truncating the comparison to the operand's length: the entry compares
// equal ("0") exactly when operand is a byte-prefix of the entry's
// lexeme. Because the vector is sorted under the ordinary bytewise order,
// this truncated comparator is still monotone across the vector, so
// binary search for the boundary of the matching run is valid.
func comparePrefixOrder(entryLexeme, operand string) int {
	n := len(operand)
	if len(entryLexeme) < n {
		cmp := strings.Compare(entryLexeme, operand[:len(entryLexeme)])
		if cmp != 0 {
			return cmp
		}
		// entryLexeme is a strict, shorter prefix of operand: it sorts
		// before operand (and hence before every lexeme operand prefixes).
		return -1
	}
	return strings.Compare(entryLexeme[:n], operand)
}

// FindLexeme binary-searches v for operand. If prefix is false it returns
// the unique matching entry (count 0 or 1). If prefix is true it returns
// the contiguous run of entries whose lexeme begins with operand.
func FindLexeme(v *DocVector, operand string, prefix bool) (first, count int) {
	if v == nil || len(v.Entries) == 0 {
		return 0, 0
	}
	entries := v.Entries

	if !prefix {
		idx := sort.Search(len(entries), func(i int) bool {
			return compareLenBytes(entries[i].Lexeme, operand) >= 0
		})
		if idx < len(entries) && entries[idx].Lexeme == operand {
			return idx, 1
		}
		return idx, 0
	}

	idx := sort.Search(len(entries), func(i int) bool {
		return comparePrefixOrder(entries[i].Lexeme, operand) >= 0
	})
	if idx >= len(entries) || comparePrefixOrder(entries[idx].Lexeme, operand) != 0 {
		return idx, 0
	}
	end := idx
	for end < len(entries) && comparePrefixOrder(entries[end].Lexeme, operand) == 0 {
		end++
	}
	return idx, end - idx
}
