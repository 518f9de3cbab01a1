package classifier

import (
	"fmt"
	"math/rand"
	"sort"
)

// Metrics summarizes one cross-validation run, the selection criteria
// spec §4.10 tie-breaks on in order: AUC, then precision, then recall.
type Metrics struct {
	AUC       float64
	Precision float64
	Recall    float64
}

// Better reports whether m beats other under spec §4.10's tie-break
// chain (AUC, then precision, then recall).
func (m Metrics) Better(other Metrics) bool {
	if m.AUC != other.AUC {
		return m.AUC > other.AUC
	}
	if m.Precision != other.Precision {
		return m.Precision > other.Precision
	}
	return m.Recall > other.Recall
}

// CrossValidate runs repeats × folds stratified cross-validation of a
// freshly constructed classifier of kind with options, returning the
// metrics averaged across all repeat/fold runs (spec §4.10: "10-repeat
// × 10-fold stratified cross-validation").
func CrossValidate(kind Kind, options string, rows []Row, folds, repeats int, seed int64) (Metrics, error) {
	if len(rows) < folds {
		return Metrics{}, fmt.Errorf("classifier: need at least %d rows for %d-fold cross-validation, have %d", folds, folds, len(rows))
	}

	rng := rand.New(rand.NewSource(seed))
	var totals Metrics
	runs := 0

	for r := 0; r < repeats; r++ {
		foldsOf := stratifiedFolds(rows, folds, rng)
		for held := 0; held < folds; held++ {
			var train, test []Row
			for i, fold := range foldsOf {
				if i == held {
					test = append(test, fold...)
				} else {
					train = append(train, fold...)
				}
			}
			if len(test) == 0 || len(train) == 0 {
				continue
			}

			model, err := New(kind)
			if err != nil {
				return Metrics{}, err
			}
			if err := model.SetOptions(options); err != nil {
				return Metrics{}, err
			}
			if err := model.Build(train); err != nil {
				return Metrics{}, err
			}

			m, err := evaluate(model, test)
			if err != nil {
				return Metrics{}, err
			}
			totals.AUC += m.AUC
			totals.Precision += m.Precision
			totals.Recall += m.Recall
			runs++
		}
	}

	if runs == 0 {
		return Metrics{}, fmt.Errorf("classifier: no cross-validation folds produced a result")
	}
	return Metrics{
		AUC:       totals.AUC / float64(runs),
		Precision: totals.Precision / float64(runs),
		Recall:    totals.Recall / float64(runs),
	}, nil
}

// stratifiedFolds splits rows into n folds preserving each fold's class
// ratio as closely as possible: positives and negatives are shuffled
// and dealt round-robin separately, then interleaved.
func stratifiedFolds(rows []Row, n int, rng *rand.Rand) [][]Row {
	var positives, negatives []Row
	for _, r := range rows {
		if r.Label {
			positives = append(positives, r)
		} else {
			negatives = append(negatives, r)
		}
	}
	rng.Shuffle(len(positives), func(i, j int) { positives[i], positives[j] = positives[j], positives[i] })
	rng.Shuffle(len(negatives), func(i, j int) { negatives[i], negatives[j] = negatives[j], negatives[i] })

	folds := make([][]Row, n)
	for i, r := range positives {
		folds[i%n] = append(folds[i%n], r)
	}
	for i, r := range negatives {
		folds[i%n] = append(folds[i%n], r)
	}
	return folds
}

type scoredRow struct {
	score float64
	label bool
}

// evaluate scores test rows under model and computes AUC (rank-based,
// ties averaged), plus precision/recall at a naive 0.5 threshold.
func evaluate(model Classifier, test []Row) (Metrics, error) {
	scored := make([]scoredRow, len(test))
	for i, r := range test {
		dist, err := model.DistributionForInstance(r.Features)
		if err != nil {
			return Metrics{}, err
		}
		scored[i] = scoredRow{score: dist[1], label: r.Label}
	}

	return Metrics{
		AUC:       auc(scored),
		Precision: precisionAt(scored, 0.5),
		Recall:    recallAt(scored, 0.5),
	}, nil
}

// auc computes the area under the ROC curve via the Mann-Whitney U
// statistic: average rank of positive scores, tie-corrected.
func auc(scored []scoredRow) float64 {
	var positives, negatives int
	for _, s := range scored {
		if s.label {
			positives++
		} else {
			negatives++
		}
	}
	if positives == 0 || negatives == 0 {
		return 0.5
	}

	ordered := append([]scoredRow(nil), scored...)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].score < ordered[j].score })

	ranks := make([]float64, len(ordered))
	i := 0
	for i < len(ordered) {
		j := i
		for j < len(ordered) && ordered[j].score == ordered[i].score {
			j++
		}
		avgRank := float64(i+j+1) / 2.0 // 1-based, averaged over the tied block
		for k := i; k < j; k++ {
			ranks[k] = avgRank
		}
		i = j
	}

	var rankSumPositive float64
	for k, s := range ordered {
		if s.label {
			rankSumPositive += ranks[k]
		}
	}

	u := rankSumPositive - float64(positives*(positives+1))/2
	return u / float64(positives*negatives)
}

func precisionAt(scored []scoredRow, threshold float64) float64 {
	var tp, fp int
	for _, s := range scored {
		if s.score >= threshold {
			if s.label {
				tp++
			} else {
				fp++
			}
		}
	}
	if tp+fp == 0 {
		return 0
	}
	return float64(tp) / float64(tp+fp)
}

func recallAt(scored []scoredRow, threshold float64) float64 {
	var tp, fn int
	for _, s := range scored {
		if s.label {
			if s.score >= threshold {
				tp++
			} else {
				fn++
			}
		}
	}
	if tp+fn == 0 {
		return 0
	}
	return float64(tp) / float64(tp+fn)
}
