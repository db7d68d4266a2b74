package executor

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Adithya-Monish-Kumar-K/Distributed-Search-Analytics-Platform/internal/indexer"
	"github.com/Adithya-Monish-Kumar-K/Distributed-Search-Analytics-Platform/internal/indexer/index"
	"github.com/Adithya-Monish-Kumar-K/Distributed-Search-Analytics-Platform/internal/rank"
	"github.com/Adithya-Monish-Kumar-K/Distributed-Search-Analytics-Platform/internal/searcher/query"
	"github.com/Adithya-Monish-Kumar-K/Distributed-Search-Analytics-Platform/internal/searcher/ranker"
)

// SearchResult is the response shape for one executed query: the merged,
// ranked hits plus enough metadata for logging, analytics, and caching.
type SearchResult struct {
	Query     string             `json:"query"`
	TotalHits int                `json:"total_hits"`
	Results   []ranker.ScoredDoc `json:"results"`
	TermStats map[string]int     `json:"term_stats"`
}

// Terms returns the operand texts of q in appearance order, for logging
// and analytics (the old flat-term-list plan's Terms field, now derived
// from the query tree instead of carried alongside it).
func Terms(q *query.Query) []string {
	leaves := q.Leaves()
	out := make([]string, len(leaves))
	for i, n := range leaves {
		out[i] = n.Operand
	}
	return out
}

// Executor runs a query tree against one indexer.Engine: it uses the
// query's VAL leaves to gather candidate documents from the inverted
// index (same intersect/union coarse filter as before), then hands the
// candidates to internal/searcher/ranker, which loads each one's
// rank.DocVector and scores it exactly with the ranking core.
type Executor struct {
	engine *indexer.Engine
	logger *slog.Logger
	params ranker.Params
}

// New creates an Executor over engine, using params to select the ranking
// algorithm/weights/method (see config.SearchConfig).
func New(engine *indexer.Engine, params ranker.Params) *Executor {
	return &Executor{
		engine: engine,
		logger: slog.Default().With("component", "query-executor"),
		params: params,
	}
}

func (e *Executor) Execute(ctx context.Context, q *query.Query, limit int) (*SearchResult, error) {
	if q.IsEmpty() {
		return &SearchResult{Results: []ranker.ScoredDoc{}}, nil
	}

	operands := rank.CollectOperands(q)
	postingsPerOperand := make(map[string]index.PostingList, len(operands))
	termStats := make(map[string]int, len(operands))
	for _, op := range operands {
		postings, err := e.engine.SearchOperand(op.Text, op.Prefix)
		if err != nil {
			return nil, fmt.Errorf("searching operand %q: %w", op.Text, err)
		}
		if len(postings) > 0 {
			postingsPerOperand[op.Text] = postings
			termStats[op.Text] = len(postings)
		}
	}

	candidateDocIDs := candidateSet(q, postingsPerOperand)
	candidates := make([]string, 0, len(candidateDocIDs))
	for docID := range candidateDocIDs {
		candidates = append(candidates, docID)
	}

	scored, err := ranker.Rank(ctx, q, candidates, e.engine.DocVector, e.params, limit)
	if err != nil {
		return nil, fmt.Errorf("ranking candidates: %w", err)
	}
	e.logger.Info("query executed",
		"query", q.Raw,
		"operands", Terms(q),
		"candidates", len(candidateDocIDs),
		"results", len(scored),
	)
	return &SearchResult{
		Query:     q.Raw,
		TotalHits: len(candidateDocIDs),
		Results:   scored,
		TermStats: termStats,
	}, nil
}

// candidateSet narrows postingsPerOperand to a set of candidate document
// IDs: an intersection when the query's root is AND (every operand must
// appear), a union otherwise — the same coarse filter the platform used
// ahead of its BM25 scorer, now feeding the ranking core instead.
func candidateSet(q *query.Query, postingsPerOperand map[string]index.PostingList) map[string]struct{} {
	if q.RootType() == query.NodeAnd {
		return intersectPostings(postingsPerOperand)
	}
	return unionPostings(postingsPerOperand)
}

func intersectPostings(postingsPerTerm map[string]index.PostingList) map[string]struct{} {
	if len(postingsPerTerm) == 0 {
		return make(map[string]struct{})
	}
	var shortestTerm string
	shortestLen := int(^uint(0) >> 1)
	for term, postings := range postingsPerTerm {
		if len(postings) < shortestLen {
			shortestLen = len(postings)
			shortestTerm = term
		}
	}
	candidates := make(map[string]struct{})
	for _, p := range postingsPerTerm[shortestTerm] {
		candidates[p.DocID] = struct{}{}
	}
	for term, postings := range postingsPerTerm {
		if term == shortestTerm {
			continue
		}
		docSet := make(map[string]struct{}, len(postings))
		for _, p := range postings {
			docSet[p.DocID] = struct{}{}
		}
		for docID := range candidates {
			if _, exists := docSet[docID]; !exists {
				delete(candidates, docID)
			}
		}
	}
	return candidates
}

func unionPostings(postingsPerTerm map[string]index.PostingList) map[string]struct{} {
	result := make(map[string]struct{})
	for _, postings := range postingsPerTerm {
		for _, p := range postings {
			result[p.DocID] = struct{}{}
		}
	}
	return result
}
