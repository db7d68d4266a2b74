package rank

import (
	"context"

	"github.com/Adithya-Monish-Kumar-K/Distributed-Search-Analytics-Platform/internal/searcher/query"
)

// densityAccumulator tracks the running state of the cover-density
// aggregation loop across a sequence of extents.
type densityAccumulator struct {
	wdoc     float64
	sumDist  float64
	prevMid  float64
	nExtents int
}

// accumulate folds one extent into the running density score, per
// spec.md §4.4.3.
func (a *densityAccumulator) accumulate(ext Extent, rep *DocRep, invw [4]float64) {
	var invSum float64
	for i := ext.Begin; i <= ext.End; i++ {
		invSum += invw[rep.Occurrences[i].Class]
	}
	cpos := float64(ext.End-ext.Begin+1) / invSum

	nNoise := int(ext.Q-ext.P) - (ext.End - ext.Begin)
	if nNoise < 0 {
		nNoise = (ext.End - ext.Begin) / 2
	}
	a.wdoc += cpos / float64(1+nNoise)

	mid := float64(ext.P+ext.Q) / 2
	if a.nExtents > 0 && mid > a.prevMid {
		a.sumDist += 1 / (mid - a.prevMid)
	}
	a.prevMid = mid
	a.nExtents++
}

// computeCoverDensity drives the cover-extraction loop to exhaustion and
// returns the raw (pre-normalisation) density score plus the extent
// statistics ExtentDist normalisation needs.
func computeCoverDensity(ctx context.Context, rep *DocRep, q *query.Query, w [4]float64) (wdoc float64, nExtents int, sumDist float64, err error) {
	invw, err := inverseWeights(w)
	if err != nil {
		return 0, 0, 0, err
	}

	acc := &densityAccumulator{}
	state := &CoverState{}
	for {
		ext, ok, err := NextCover(ctx, rep, q, state)
		if err != nil {
			return 0, 0, 0, err
		}
		if !ok {
			break
		}
		acc.accumulate(ext, rep, invw)
	}
	return acc.wdoc, acc.nExtents, acc.sumDist, nil
}
