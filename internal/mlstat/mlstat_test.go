package mlstat

import "testing"

func almostEqual(a, b float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < 1e-9
}

func TestEntropy_PureSetIsZero(t *testing.T) {
	if got := Entropy(0, 10); got != 0 {
		t.Errorf("Entropy(0,10) = %v, want 0", got)
	}
	if got := Entropy(10, 10); got != 0 {
		t.Errorf("Entropy(10,10) = %v, want 0", got)
	}
}

func TestEntropy_EvenSplitIsOne(t *testing.T) {
	if got := Entropy(5, 10); !almostEqual(got, 1.0) {
		t.Errorf("Entropy(5,10) = %v, want 1.0", got)
	}
}

func TestInfoGain_PerfectSplitterMaximizesGain(t *testing.T) {
	// 10 total, 5 positive; feature is true for exactly the 5 positives.
	got := InfoGain(10, 5, 5, 5)
	if !almostEqual(got, 1.0) {
		t.Errorf("InfoGain() = %v, want 1.0 for a perfectly discriminating feature", got)
	}
}

func TestInfoGain_UselessFeatureIsZero(t *testing.T) {
	// feature true for half the population, but positives split evenly.
	got := InfoGain(10, 4, 5, 2)
	if !almostEqual(got, 0) {
		t.Errorf("InfoGain() = %v, want 0 for an uninformative feature", got)
	}
}

func TestMinMax_Normalize(t *testing.T) {
	mm := ComputeMinMax([]float64{2, 4, 6, 8})
	if got := mm.Normalize(4); !almostEqual(got, 1.0/3.0) {
		t.Errorf("Normalize(4) = %v, want 0.333...", got)
	}
	if got := mm.Normalize(mm.Min); got != 0 {
		t.Errorf("Normalize(min) = %v, want 0", got)
	}
	if got := mm.Normalize(mm.Max); got != 1 {
		t.Errorf("Normalize(max) = %v, want 1", got)
	}
}

func TestMinMax_DegenerateRange(t *testing.T) {
	mm := ComputeMinMax([]float64{5, 5, 5})
	if got := mm.Normalize(5); got != 0 {
		t.Errorf("Normalize() on degenerate range = %v, want 0", got)
	}
}

func TestMedian_EvenAndOdd(t *testing.T) {
	if got := Median([]float64{1, 2, 3}); got != 2 {
		t.Errorf("Median(odd) = %v, want 2", got)
	}
	if got := Median([]float64{1, 2, 3, 4}); got != 2.5 {
		t.Errorf("Median(even) = %v, want 2.5", got)
	}
}

func TestYoudenJ_PerfectClassifier(t *testing.T) {
	if got := YoudenJ(10, 0, 10, 0); got != 1 {
		t.Errorf("YoudenJ(perfect) = %v, want 1", got)
	}
}

func TestYoudenJ_RandomClassifier(t *testing.T) {
	if got := YoudenJ(5, 5, 5, 5); !almostEqual(got, 0) {
		t.Errorf("YoudenJ(random) = %v, want 0", got)
	}
}
