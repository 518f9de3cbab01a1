// Package whatif implements the counterfactual simulator of spec §4.12:
// calibrate a decision threshold, partition the dataset by the
// actionable feature, synthesize a refactored variant, and report the
// resulting defect-reduction ratios. Grounded on internal/mlstat's
// YoudenJ for calibration and on pkg/classifier's Classifier capability
// for scoring.
package whatif

import (
	"fmt"
	"sort"

	"github.com/leonardomonnati2796/defectprediction/internal/mlstat"
	"github.com/leonardomonnati2796/defectprediction/pkg/classifier"
	"github.com/leonardomonnati2796/defectprediction/pkg/preprocess"
)

// State is one stage of the simulator's state machine (spec §4.12:
// "Loaded → CalibratedA → Partitioned → Synthesized → Reported"; any
// failure reverts to Aborted with the reason preserved).
type State string

const (
	StateLoaded      State = "loaded"
	StateCalibrated  State = "calibrated_a"
	StatePartitioned State = "partitioned"
	StateSynthesized State = "synthesized"
	StateReported    State = "reported"
	StateAborted     State = "aborted"
)

// Interpretation describes the direction of change in predicted
// positives between B⁺ and B (spec §4.12 step 7).
type Interpretation string

const (
	Increased Interpretation = "increased"
	Decreased Interpretation = "decreased"
	Unchanged Interpretation = "unchanged"
)

// Report carries every count and derived ratio spec §4.12 requires.
type Report struct {
	Threshold float64

	TotalA, ActualPositiveA, PredictedPositiveA int

	TotalBPlus, ActualPositiveBPlus, PredictedPositiveBPlus int
	TotalB, PredictedPositiveB                              int
	TotalC, PredictedPositiveC                               int

	Drop         float64
	DropDefined  bool
	Reduction        float64
	ReductionDefined bool

	Interpretation Interpretation
}

// Simulator runs the spec §4.12 state machine, recording the last state
// reached and, on abort, the reason.
type Simulator struct {
	State       State
	AbortReason string
}

// NewSimulator returns a Simulator in the Loaded state.
func NewSimulator() *Simulator {
	return &Simulator{State: StateLoaded}
}

// abort transitions to Aborted, preserving reason, and returns it as an
// error for the caller.
func (s *Simulator) abort(reason string) error {
	s.State = StateAborted
	s.AbortReason = reason
	return fmt.Errorf("whatif: %s", reason)
}

// Run executes the full simulation: calibrate on ds using model,
// partition by the actionable feature at column featureIdx, synthesize
// B, and report the defect-reduction ratios.
func (s *Simulator) Run(model classifier.Classifier, ds *preprocess.Dataset, featureIdx int) (*Report, error) {
	if featureIdx < 0 || (len(ds.Rows) > 0 && featureIdx >= len(ds.Rows[0])) {
		return nil, s.abort(fmt.Sprintf("actionable feature index %d out of range", featureIdx))
	}

	threshold, err := calibrate(model, ds)
	if err != nil {
		return nil, s.abort(fmt.Sprintf("threshold calibration: %v", err))
	}
	s.State = StateCalibrated

	bPlusIdx, cIdx := partition(ds, featureIdx)
	s.State = StatePartitioned

	bRows, err := synthesize(ds, bPlusIdx, featureIdx)
	if err != nil {
		return nil, s.abort(fmt.Sprintf("synthesis: %v", err))
	}
	s.State = StateSynthesized

	report, err := s.buildReport(model, ds, bPlusIdx, cIdx, bRows, threshold)
	if err != nil {
		return nil, s.abort(fmt.Sprintf("reporting: %v", err))
	}
	s.State = StateReported
	return report, nil
}

// calibrate sweeps thresholds at midpoints between adjacent unique
// predicted probabilities and picks the one maximising Youden's J (spec
// §4.12 step 2). Falls back to 0.5 for a single-valued or empty
// probability set (spec §7: ThresholdCalibrationFailure → use 0.5).
func calibrate(model classifier.Classifier, ds *preprocess.Dataset) (float64, error) {
	probs := make([]float64, len(ds.Rows))
	for i, row := range ds.Rows {
		dist, err := model.DistributionForInstance(row)
		if err != nil {
			return 0.5, nil
		}
		probs[i] = dist[1]
	}

	unique := uniqueSorted(probs)
	if len(unique) < 2 {
		return 0.5, nil
	}

	bestThreshold := 0.5
	bestJ := -2.0 // J ranges [-1, 1]; start below any real value
	for i := 0; i < len(unique)-1; i++ {
		thr := (unique[i] + unique[i+1]) / 2
		tp, fn, tn, fp := confusionAt(probs, ds.Labels, thr)
		j := mlstat.YoudenJ(tp, fn, tn, fp)
		if j > bestJ {
			bestJ = j
			bestThreshold = thr
		}
	}
	return bestThreshold, nil
}

func uniqueSorted(values []float64) []float64 {
	seen := map[float64]bool{}
	var out []float64
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	sort.Float64s(out)
	return out
}

func confusionAt(probs []float64, labels []bool, threshold float64) (tp, fn, tn, fp int) {
	for i, p := range probs {
		predictedPositive := p >= threshold
		switch {
		case labels[i] && predictedPositive:
			tp++
		case labels[i] && !predictedPositive:
			fn++
		case !labels[i] && !predictedPositive:
			tn++
		default:
			fp++
		}
	}
	return
}

// partition splits ds's row indices into B⁺ (feature > 0) and C
// (feature ≤ 0) (spec §4.12 step 3).
func partition(ds *preprocess.Dataset, featureIdx int) (bPlusIdx, cIdx []int) {
	for i, row := range ds.Rows {
		if row[featureIdx] > 0 {
			bPlusIdx = append(bPlusIdx, i)
		} else {
			cIdx = append(cIdx, i)
		}
	}
	return
}

// synthesize clones B⁺ rows with the actionable feature forced to zero,
// the refactored variant B (spec §4.12 step 4).
func synthesize(ds *preprocess.Dataset, bPlusIdx []int, featureIdx int) ([][]float64, error) {
	if len(bPlusIdx) == 0 {
		return nil, nil
	}
	rows := make([][]float64, len(bPlusIdx))
	for i, idx := range bPlusIdx {
		row := append([]float64(nil), ds.Rows[idx]...)
		row[featureIdx] = 0
		rows[i] = row
	}
	return rows, nil
}

func (s *Simulator) buildReport(model classifier.Classifier, ds *preprocess.Dataset, bPlusIdx, cIdx []int, bRows [][]float64, threshold float64) (*Report, error) {
	predictPositive := func(row []float64) (bool, error) {
		dist, err := model.DistributionForInstance(row)
		if err != nil {
			return false, err
		}
		return dist[1] >= threshold, nil
	}

	report := &Report{Threshold: threshold}

	report.TotalA = len(ds.Rows)
	for i, row := range ds.Rows {
		if ds.Labels[i] {
			report.ActualPositiveA++
		}
		pos, err := predictPositive(row)
		if err != nil {
			return nil, err
		}
		if pos {
			report.PredictedPositiveA++
		}
	}

	report.TotalBPlus = len(bPlusIdx)
	for _, idx := range bPlusIdx {
		if ds.Labels[idx] {
			report.ActualPositiveBPlus++
		}
		pos, err := predictPositive(ds.Rows[idx])
		if err != nil {
			return nil, err
		}
		if pos {
			report.PredictedPositiveBPlus++
		}
	}

	report.TotalC = len(cIdx)
	for _, idx := range cIdx {
		pos, err := predictPositive(ds.Rows[idx])
		if err != nil {
			return nil, err
		}
		if pos {
			report.PredictedPositiveC++
		}
	}

	report.TotalB = len(bRows)
	for _, row := range bRows {
		pos, err := predictPositive(row)
		if err != nil {
			return nil, err
		}
		if pos {
			report.PredictedPositiveB++
		}
	}

	if report.ActualPositiveBPlus > 0 {
		report.Drop = float64(report.ActualPositiveBPlus-report.PredictedPositiveB) / float64(report.ActualPositiveBPlus)
		report.DropDefined = true
	}
	if report.ActualPositiveA > 0 {
		report.Reduction = float64(report.ActualPositiveBPlus-report.PredictedPositiveB) / float64(report.ActualPositiveA)
		report.ReductionDefined = true
	}

	switch {
	case report.PredictedPositiveB > report.PredictedPositiveBPlus:
		report.Interpretation = Increased
	case report.PredictedPositiveB < report.PredictedPositiveBPlus:
		report.Interpretation = Decreased
	default:
		report.Interpretation = Unchanged
	}

	return report, nil
}
