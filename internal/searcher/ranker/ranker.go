// Package ranker scores candidate documents for a parsed query by
// invoking the ranking core (internal/rank) per candidate and sorting the
// results. It replaces the platform's earlier BM25 scorer: BM25 needed
// only term frequency and corpus statistics, while internal/rank needs
// each candidate's full positional lexeme vector, so the candidate set
// produced by the inverted-index lookup (internal/searcher/executor) is
// now an input to this package rather than something it recomputes.
package ranker

import (
	"context"
	stderrors "errors"
	"log/slog"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/Adithya-Monish-Kumar-K/Distributed-Search-Analytics-Platform/internal/rank"
	"github.com/Adithya-Monish-Kumar-K/Distributed-Search-Analytics-Platform/internal/searcher/query"
	apperrors "github.com/Adithya-Monish-Kumar-K/Distributed-Search-Analytics-Platform/pkg/errors"
	"github.com/Adithya-Monish-Kumar-K/Distributed-Search-Analytics-Platform/pkg/metrics"
)

// Algorithm selects which ranking-core entry point Rank drives.
type Algorithm string

const (
	AlgorithmStandard     Algorithm = "standard"
	AlgorithmCoverDensity Algorithm = "cover_density"
)

// ScoredDoc is one candidate document and the score the ranking core
// assigned it.
type ScoredDoc struct {
	DocID string  `json:"doc_id"`
	Score float64 `json:"score"`
}

// Params carries the knobs config.SearchConfig exposes for the ranking
// core: which algorithm to run, caller weights (nil means defaults;
// fewer than four entries is rejected), and the normalisation method
// bitmask.
type Params struct {
	Algorithm Algorithm
	Weights   []float64
	Method    uint32
	// Collector is optional; when set, Rank records per-call latency,
	// score distribution, and failure counts against it.
	Collector *metrics.Metrics
}

// maxConcurrency bounds the worker pool Rank fans candidate-scoring calls
// out over, mirroring executor.ShardedExecutor's goroutine fan-out idiom
// (spec.md §5 permits concurrent, independent scoring calls since none
// share mutable state).
const maxConcurrency = 32

// Rank scores every candidate document against q using the ranking core
// and returns the top `limit` by score (ties broken by DocID ascending
// for determinism). getDocVector resolves a candidate's DocVector; a nil
// result (document flushed out of memory, or otherwise unknown) is
// skipped rather than erroring, matching spec.md's NoMatch handling.
func Rank(
	ctx context.Context,
	q *query.Query,
	candidates []string,
	getDocVector func(docID string) *rank.DocVector,
	params Params,
	limit int,
) ([]ScoredDoc, error) {
	if len(candidates) == 0 || q.IsEmpty() {
		return []ScoredDoc{}, nil
	}

	// params.Weights is identical for every candidate in this call, so an
	// invalid shape/range is a config-level failure, not a per-candidate
	// one. Catch it once, up front, instead of letting every worker fail
	// the same way and returning an empty result set with a 200.
	if _, err := rank.ResolveWeights(params.Weights); err != nil {
		if params.Collector != nil {
			params.Collector.RankErrorsTotal.WithLabelValues(errorKind(err)).Inc()
		}
		return nil, wrapRankError(err)
	}

	logger := slog.Default().With("component", "ranker")
	scoreOne := scorerFor(params.Algorithm)

	workCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	type job struct {
		docID string
	}
	type res struct {
		doc ScoredDoc
		ok  bool
	}

	jobs := make(chan job, len(candidates))
	results := make(chan res, len(candidates))
	for _, docID := range candidates {
		jobs <- job{docID: docID}
	}
	close(jobs)

	workers := maxConcurrency
	if workers > len(candidates) {
		workers = len(candidates)
	}
	var wg sync.WaitGroup
	var fatalOnce sync.Once
	var fatalErr error
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				v := getDocVector(j.docID)
				if v == nil || v.Size() == 0 {
					results <- res{}
					continue
				}
				callStart := time.Now()
				score, err := scoreOne(workCtx, v, q, params)
				if params.Collector != nil {
					params.Collector.RankLatency.WithLabelValues(string(params.Algorithm)).Observe(time.Since(callStart).Seconds())
				}
				if err != nil {
					logger.Error("scoring candidate failed", "doc_id", j.docID, "error", err)
					if params.Collector != nil {
						params.Collector.RankErrorsTotal.WithLabelValues(errorKind(err)).Inc()
					}
					// A host interrupt means the caller's context was
					// canceled or timed out; every remaining candidate
					// would fail the same way, so stop the pool and
					// surface it instead of dropping candidates one by one.
					if stderrors.Is(err, rank.ErrHostInterrupt) {
						fatalOnce.Do(func() {
							fatalErr = err
							cancel()
						})
					}
					results <- res{}
					continue
				}
				if params.Collector != nil {
					params.Collector.RankScoreHistogram.WithLabelValues(string(params.Algorithm)).Observe(float64(score))
				}
				results <- res{doc: ScoredDoc{DocID: j.docID, Score: float64(score)}, ok: true}
			}
		}()
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	scored := make([]ScoredDoc, 0, len(candidates))
	for r := range results {
		if r.ok {
			scored = append(scored, r.doc)
		}
	}

	if fatalErr != nil {
		return nil, wrapRankError(fatalErr)
	}

	sort.Slice(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].DocID < scored[j].DocID
	})
	if limit > 0 && len(scored) > limit {
		scored = scored[:limit]
	}
	return scored, nil
}

// wrapRankError maps a ranking-core sentinel error onto the platform's
// pkg/errors.AppError at the service boundary, per spec.md §7's error
// kind table, so internal/searcher/handler's existing
// errors.HTTPStatusCode handling resolves it to the right status instead
// of a generic 500.
func wrapRankError(err error) error {
	switch {
	case stderrors.Is(err, rank.ErrInvalidWeightShape):
		return apperrors.New(err, http.StatusBadRequest, "ranking weights must have at least 4 entries")
	case stderrors.Is(err, rank.ErrWeightOutOfRange):
		return apperrors.New(err, http.StatusBadRequest, "ranking weight out of range")
	case stderrors.Is(err, rank.ErrHostInterrupt):
		return apperrors.New(err, http.StatusServiceUnavailable, "ranking interrupted by host")
	default:
		return apperrors.New(err, http.StatusInternalServerError, "ranking failed")
	}
}

// errorKind classifies a ranking-core error into a low-cardinality label
// for RankErrorsTotal, distinguishing host-interrupt cancellation (the
// caller gave up) from weight/shape configuration errors and anything
// else unrecognized.
func errorKind(err error) string {
	switch {
	case stderrors.Is(err, rank.ErrHostInterrupt):
		return "host_interrupt"
	case stderrors.Is(err, rank.ErrInvalidWeightShape), stderrors.Is(err, rank.ErrWeightOutOfRange):
		return "invalid_weights"
	default:
		return "other"
	}
}

type scoreFunc func(ctx context.Context, v *rank.DocVector, q *query.Query, params Params) (float32, error)

func scorerFor(alg Algorithm) scoreFunc {
	if alg == AlgorithmCoverDensity {
		return func(ctx context.Context, v *rank.DocVector, q *query.Query, p Params) (float32, error) {
			return rank.CoverDensity(ctx, p.Weights, v, q, p.Method)
		}
	}
	return func(ctx context.Context, v *rank.DocVector, q *query.Query, p Params) (float32, error) {
		return rank.Standard(ctx, p.Weights, v, q, p.Method)
	}
}
