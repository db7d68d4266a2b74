package executor

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/Adithya-Monish-Kumar-K/Distributed-Search-Analytics-Platform/internal/indexer"
	"github.com/Adithya-Monish-Kumar-K/Distributed-Search-Analytics-Platform/internal/indexer/index"
	"github.com/Adithya-Monish-Kumar-K/Distributed-Search-Analytics-Platform/internal/rank"
	"github.com/Adithya-Monish-Kumar-K/Distributed-Search-Analytics-Platform/internal/searcher/merger"
	"github.com/Adithya-Monish-Kumar-K/Distributed-Search-Analytics-Platform/internal/searcher/query"
	"github.com/Adithya-Monish-Kumar-K/Distributed-Search-Analytics-Platform/internal/searcher/ranker"
)

// ShardResult is one shard's contribution to a sharded query: its own
// top-ranked candidates (scored with its own indexer.Engine, which is
// the only one that can resolve those candidates' rank.DocVectors) plus
// the raw per-operand postings for term-stats reporting.
type ShardResult struct {
	ShardID        int
	Postings       map[string]index.PostingList
	Ranked         []ranker.ScoredDoc
	CandidateCount int
}

// ShardedExecutor fans a query out across every shard's indexer.Engine,
// ranks each shard's candidates independently with internal/rank, and
// merges the per-shard top-K with internal/searcher/merger — scores are
// purely positional/weight-based with no corpus-wide statistic, so they
// are directly comparable across shards without a global normalisation
// pass, and each shard only ever needs to rank its own documents.
type ShardedExecutor struct {
	engines map[int]*indexer.Engine
	logger  *slog.Logger
	params  ranker.Params
}

func NewSharded(engines map[int]*indexer.Engine, params ranker.Params) *ShardedExecutor {
	return &ShardedExecutor{
		engines: engines,
		logger:  slog.Default().With("component", "sharded-executor"),
		params:  params,
	}
}

func (se *ShardedExecutor) Execute(ctx context.Context, q *query.Query, limit int) (*SearchResult, error) {
	if q.IsEmpty() {
		return &SearchResult{Results: []ranker.ScoredDoc{}}, nil
	}

	operands := rank.CollectOperands(q)
	shardResults, err := se.fanOut(ctx, q, operands, limit)
	if err != nil {
		return nil, fmt.Errorf("shard fan-out: %w", err)
	}

	termStats := make(map[string]int)
	totalHits := 0
	perShardRanked := make([][]ranker.ScoredDoc, 0, len(shardResults))
	for _, sr := range shardResults {
		for text, postings := range sr.Postings {
			termStats[text] += len(postings)
		}
		totalHits += sr.CandidateCount
		perShardRanked = append(perShardRanked, sr.Ranked)
	}

	merged := merger.Merge(perShardRanked, limit)
	se.logger.Info("sharded query executed",
		"query", q.Raw,
		"shards_queried", len(shardResults),
		"total_candidates", totalHits,
		"results", len(merged),
	)
	return &SearchResult{
		Query:     q.Raw,
		TotalHits: totalHits,
		Results:   merged,
		TermStats: termStats,
	}, nil
}

func (se *ShardedExecutor) fanOut(ctx context.Context, q *query.Query, operands []rank.Operand, limit int) ([]ShardResult, error) {
	type result struct {
		sr  ShardResult
		err error
	}
	results := make([]result, len(se.engines))
	var wg sync.WaitGroup
	i := 0
	for shardID, engine := range se.engines {
		wg.Add(1)
		go func(idx int, sid int, eng *indexer.Engine) {
			defer wg.Done()
			sr := ShardResult{
				ShardID:  sid,
				Postings: make(map[string]index.PostingList),
			}
			postingsPerOperand := make(map[string]index.PostingList, len(operands))
			for _, op := range operands {
				postings, err := eng.SearchOperand(op.Text, op.Prefix)
				if err != nil {
					results[idx] = result{err: fmt.Errorf("shard %d, operand %q: %w", sid, op.Text, err)}
					return
				}
				if len(postings) > 0 {
					sr.Postings[op.Text] = postings
					postingsPerOperand[op.Text] = postings
				}
			}
			candidateDocIDs := candidateSet(q, postingsPerOperand)
			sr.CandidateCount = len(candidateDocIDs)
			candidates := make([]string, 0, len(candidateDocIDs))
			for docID := range candidateDocIDs {
				candidates = append(candidates, docID)
			}
			ranked, err := ranker.Rank(ctx, q, candidates, eng.DocVector, se.params, limit)
			if err != nil {
				results[idx] = result{err: fmt.Errorf("shard %d: ranking candidates: %w", sid, err)}
				return
			}
			sr.Ranked = ranked
			results[idx] = result{sr: sr}
		}(i, shardID, engine)
		i++
	}
	wg.Wait()
	shardResults := make([]ShardResult, 0, len(se.engines))
	for _, r := range results {
		if r.err != nil {
			se.logger.Error("shard query failed", "error", r.err)
			continue
		}
		shardResults = append(shardResults, r.sr)
	}
	if len(shardResults) == 0 && len(se.engines) > 0 {
		return nil, fmt.Errorf("all %d shards failed", len(se.engines))
	}
	return shardResults, nil
}
