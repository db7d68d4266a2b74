package rank

import "math"

// normContext carries everything the shared post-processor needs beyond
// the raw score: the document vector (for length/uniqueness) and, for the
// cover-density ranker only, the extent-distance statistics.
type normContext struct {
	vector   *DocVector
	nExtents int
	sumDist  float64
}

// normalize applies the bits of method, in the fixed order of spec.md
// §4.5. The order matters for reproducibility even though most bits are
// independent of one another.
func normalize(method uint32, res float64, ctx normContext) float64 {
	if method&MethodLogLength != 0 && ctx.vector.Size() > 0 {
		res /= math.Log2(cntLength(ctx.vector) + 1)
	}
	if method&MethodLength != 0 {
		if l := cntLength(ctx.vector); l > 0 {
			res /= l
		}
	}
	if method&MethodExtentDist != 0 && ctx.nExtents > 0 && ctx.sumDist > 0 {
		res /= float64(ctx.nExtents) / ctx.sumDist
	}
	if method&MethodUniq != 0 {
		if size := ctx.vector.Size(); size > 0 {
			res /= float64(size)
		}
	}
	if method&MethodLogUniq != 0 {
		if size := ctx.vector.Size(); size > 0 {
			res /= math.Log2(float64(size) + 1)
		}
	}
	if method&MethodSelfNorm != 0 {
		res /= res + 1
	}
	return res
}
