package rank

import (
	"context"

	"github.com/Adithya-Monish-Kumar-K/Distributed-Search-Analytics-Platform/internal/searcher/query"
)

// Standard computes the standard-ranker score (rank_or / rank_and,
// per spec.md §4.3) with caller weights and normalisation method, then
// applies the shared post-processor. AllEmpty (empty vector or query)
// returns 0, nil rather than an error.
func Standard(ctx context.Context, weights []float64, v *DocVector, q *query.Query, method uint32) (float32, error) {
	if ctx.Err() != nil {
		return 0, ErrHostInterrupt
	}
	if v.Size() == 0 || q.IsEmpty() {
		return 0, nil
	}
	w, err := ResolveWeights(weights)
	if err != nil {
		return 0, err
	}
	res := dispatchStandard(v, q, w)
	if res < 0 {
		res = 1e-20
	}
	res = normalize(method, res, normContext{vector: v})
	return float32(res), nil
}

// Rank computes the standard rank with default weights and no
// normalisation.
func Rank(ctx context.Context, v *DocVector, q *query.Query) (float32, error) {
	return Standard(ctx, nil, v, q, MethodDefault)
}

// RankWeighted computes the standard rank with caller-supplied weights
// and no normalisation.
func RankWeighted(ctx context.Context, weights []float64, v *DocVector, q *query.Query) (float32, error) {
	return Standard(ctx, weights, v, q, MethodDefault)
}

// RankMethod computes the standard rank with default weights and the
// given normalisation method.
func RankMethod(ctx context.Context, v *DocVector, q *query.Query, method uint32) (float32, error) {
	return Standard(ctx, nil, v, q, method)
}

// RankWeightedMethod computes the standard rank with caller-supplied
// weights and the given normalisation method.
func RankWeightedMethod(ctx context.Context, weights []float64, v *DocVector, q *query.Query, method uint32) (float32, error) {
	return Standard(ctx, weights, v, q, method)
}

// CoverDensity computes the cover-density ranker score (rank_cd, per
// spec.md §4.4) with caller weights and normalisation method.
func CoverDensity(ctx context.Context, weights []float64, v *DocVector, q *query.Query, method uint32) (float32, error) {
	if ctx.Err() != nil {
		return 0, ErrHostInterrupt
	}
	if v.Size() == 0 || q.IsEmpty() {
		return 0, nil
	}
	w, err := ResolveWeights(weights)
	if err != nil {
		return 0, err
	}
	rep := BuildDocRep(v, q)
	wdoc, nExtents, sumDist, err := computeCoverDensity(ctx, rep, q, w)
	if err != nil {
		return 0, err
	}
	res := normalize(method, wdoc, normContext{vector: v, nExtents: nExtents, sumDist: sumDist})
	return float32(res), nil
}

// RankCD computes the cover-density rank with default weights and no
// normalisation.
func RankCD(ctx context.Context, v *DocVector, q *query.Query) (float32, error) {
	return CoverDensity(ctx, nil, v, q, MethodDefault)
}

// RankCDWeighted computes the cover-density rank with caller-supplied
// weights and no normalisation.
func RankCDWeighted(ctx context.Context, weights []float64, v *DocVector, q *query.Query) (float32, error) {
	return CoverDensity(ctx, weights, v, q, MethodDefault)
}

// RankCDMethod computes the cover-density rank with default weights and
// the given normalisation method.
func RankCDMethod(ctx context.Context, v *DocVector, q *query.Query, method uint32) (float32, error) {
	return CoverDensity(ctx, nil, v, q, method)
}

// RankCDWeightedMethod computes the cover-density rank with
// caller-supplied weights and the given normalisation method.
func RankCDWeightedMethod(ctx context.Context, weights []float64, v *DocVector, q *query.Query, method uint32) (float32, error) {
	return CoverDensity(ctx, weights, v, q, method)
}
