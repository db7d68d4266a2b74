package rank

import "testing"

func TestResolveWeightsDefaults(t *testing.T) {
	w, err := ResolveWeights(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w != DefaultWeights {
		t.Fatalf("expected defaults when no weights are supplied, got %v", w)
	}
}

func TestResolveWeightsTooShort(t *testing.T) {
	_, err := ResolveWeights([]float64{0.5, 0.5})
	if err != ErrInvalidWeightShape {
		t.Fatalf("expected ErrInvalidWeightShape, got %v", err)
	}
}

func TestResolveWeightsNegativeMeansUseDefault(t *testing.T) {
	w, err := ResolveWeights([]float64{-1, 0.3, 0.6, 0.9})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w[0] != DefaultWeights[0] {
		t.Fatalf("expected a negative element to fall back to the default, got %v", w[0])
	}
	if w[1] != 0.3 || w[2] != 0.6 || w[3] != 0.9 {
		t.Fatalf("expected the other elements to pass through unchanged, got %v", w)
	}
}

func TestResolveWeightsOutOfRange(t *testing.T) {
	if _, err := ResolveWeights([]float64{1.5, 0.2, 0.4, 1.0}); err != ErrWeightOutOfRange {
		t.Fatalf("expected ErrWeightOutOfRange for > 1.0, got %v", err)
	}
}

func TestResolveWeightsRejectsZero(t *testing.T) {
	if _, err := ResolveWeights([]float64{0, 0.2, 0.4, 1.0}); err != ErrWeightOutOfRange {
		t.Fatalf("expected zero weight to be rejected as out of range, got %v", err)
	}
}

func TestInverseWeights(t *testing.T) {
	inv, err := inverseWeights([4]float64{0.1, 0.2, 0.4, 1.0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := [4]float64{10, 5, 2.5, 1}
	if inv != want {
		t.Fatalf("got %v, want %v", inv, want)
	}
}

func TestInverseWeightsRejectsZeroAndOutOfRange(t *testing.T) {
	if _, err := inverseWeights([4]float64{0, 0.2, 0.4, 1.0}); err != ErrWeightOutOfRange {
		t.Fatalf("expected zero weight to be rejected, got %v", err)
	}
	if _, err := inverseWeights([4]float64{1.5, 0.2, 0.4, 1.0}); err != ErrWeightOutOfRange {
		t.Fatalf("expected out-of-range weight to be rejected, got %v", err)
	}
}
