package preprocess

import "math/rand"

// MinorityThreshold is the ratio below which oversampling triggers
// (spec §4.9 step 7: "If minority-class ratio < 0.20").
const MinorityThreshold = 0.20

// TargetMinorityRatio is the share oversampling aims for (spec §4.9:
// "until the minority share reaches ≈ 0.30").
const TargetMinorityRatio = 0.30

// OversampleSeed is the fixed seed spec §4.9/§9 mandates.
const OversampleSeed = 42

// NeedsOversampling reports whether ds's minority-class ("yes") ratio
// falls under MinorityThreshold.
func NeedsOversampling(ds *Dataset) bool {
	if len(ds.Labels) == 0 {
		return false
	}
	return minorityRatio(ds.Labels) < MinorityThreshold
}

// Oversample returns a new Dataset with the minority class ("yes")
// randomly duplicated, with a fixed seed, until its share reaches
// approximately TargetMinorityRatio (spec §4.9 step 7). The original
// dataset is left untouched.
func Oversample(ds *Dataset) *Dataset {
	var minorityIdx, majorityIdx []int
	for i, label := range ds.Labels {
		if label {
			minorityIdx = append(minorityIdx, i)
		} else {
			majorityIdx = append(majorityIdx, i)
		}
	}
	// "Minority" per spec §3/§9 is specifically the "yes" class; if
	// "yes" is actually the majority there's nothing to rebalance.
	if len(minorityIdx) == 0 || len(minorityIdx) >= len(majorityIdx) {
		return cloneDataset(ds)
	}

	rng := rand.New(rand.NewSource(OversampleSeed))

	attrs := append([]string(nil), ds.Attributes...)
	rows := append([][]float64(nil), ds.Rows...)
	labels := append([]bool(nil), ds.Labels...)

	for minorityRatio(labels) < TargetMinorityRatio {
		pick := minorityIdx[rng.Intn(len(minorityIdx))]
		rows = append(rows, append([]float64(nil), ds.Rows[pick]...))
		labels = append(labels, true)
	}

	return &Dataset{Attributes: attrs, Rows: rows, Labels: labels}
}

func cloneDataset(ds *Dataset) *Dataset {
	return &Dataset{
		Attributes: append([]string(nil), ds.Attributes...),
		Rows:       append([][]float64(nil), ds.Rows...),
		Labels:     append([]bool(nil), ds.Labels...),
	}
}

func minorityRatio(labels []bool) float64 {
	if len(labels) == 0 {
		return 0
	}
	positive := 0
	for _, l := range labels {
		if l {
			positive++
		}
	}
	return float64(positive) / float64(len(labels))
}
