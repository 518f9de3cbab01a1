// Package mlstat provides the statistical utilities the preprocessor and
// classifier orchestrator need: entropy/information gain for feature
// ranking (spec §4.11), min-max normalization, and Youden's J for
// threshold selection (spec §4.12). Adapted from pkg/stats's Percentile,
// generalized from a single percentile helper into the fuller stats
// surface the mining pipeline requires, backed by gonum/stat where the
// corpus already reaches for it.
package mlstat

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Percentile calculates the p-th percentile of a sorted slice. Returns 0
// for an empty slice.
func Percentile(sorted []float64, p int) float64 {
	if len(sorted) == 0 {
		return 0
	}
	idx := (p * len(sorted)) / 100
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}

// Entropy returns the Shannon entropy (in bits) of a binary label
// distribution, given the count of positive labels out of total.
func Entropy(positive, total int) float64 {
	if total == 0 || positive == 0 || positive == total {
		return 0
	}
	p := float64(positive) / float64(total)
	return -p*math.Log2(p) - (1-p)*math.Log2(1-p)
}

// InfoGain computes the information gain of splitting a binary-labelled
// population by a binary feature (spec §4.11's actionable-feature
// ranking): baseEntropy minus the size-weighted entropy of the two
// partitions induced by the feature.
func InfoGain(total, totalPositive int, featureTrueTotal, featureTruePositive int) float64 {
	if total == 0 {
		return 0
	}
	base := Entropy(totalPositive, total)

	trueTotal := featureTrueTotal
	truePositive := featureTruePositive
	falseTotal := total - trueTotal
	falsePositive := totalPositive - truePositive

	weighted := float64(trueTotal)/float64(total)*Entropy(truePositive, trueTotal) +
		float64(falseTotal)/float64(total)*Entropy(falsePositive, falseTotal)

	return base - weighted
}

// MinMax holds the bounds used to normalize a feature column.
type MinMax struct {
	Min, Max float64
}

// ComputeMinMax scans values for their bounds.
func ComputeMinMax(values []float64) MinMax {
	if len(values) == 0 {
		return MinMax{}
	}
	mm := MinMax{Min: values[0], Max: values[0]}
	for _, v := range values[1:] {
		if v < mm.Min {
			mm.Min = v
		}
		if v > mm.Max {
			mm.Max = v
		}
	}
	return mm
}

// Normalize scales v into [0, 1] given mm. A degenerate (Min == Max)
// range maps every value to 0.
func (mm MinMax) Normalize(v float64) float64 {
	span := mm.Max - mm.Min
	if span == 0 {
		return 0
	}
	return (v - mm.Min) / span
}

// Mean wraps gonum's mean for unweighted samples.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return stat.Mean(values, nil)
}

// StdDev wraps gonum's sample standard deviation.
func StdDev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	return stat.StdDev(values, nil)
}

// Median returns the median of values, copying and sorting internally.
func Median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	cp := append([]float64(nil), values...)
	sort.Float64s(cp)
	mid := len(cp) / 2
	if len(cp)%2 == 1 {
		return cp[mid]
	}
	return (cp[mid-1] + cp[mid]) / 2
}

// YoudenJ returns the Youden's J statistic (sensitivity + specificity -
// 1) for a confusion count, used to pick the operating threshold a
// what-if report calibrates against (spec §4.12).
func YoudenJ(truePositive, falseNegative, trueNegative, falsePositive int) float64 {
	sensitivity := 0.0
	if truePositive+falseNegative > 0 {
		sensitivity = float64(truePositive) / float64(truePositive+falseNegative)
	}
	specificity := 0.0
	if trueNegative+falsePositive > 0 {
		specificity = float64(trueNegative) / float64(trueNegative+falsePositive)
	}
	return sensitivity + specificity - 1
}
