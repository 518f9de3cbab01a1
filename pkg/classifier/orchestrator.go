package classifier

import (
	"fmt"
	"strconv"
	"strings"
)

// TuneRange is a "low high step" hyperparameter sweep, the encoding
// spec §6 configures via `tuner.ibk.k_range` / `tuner.randomforest.iterations_range`.
type TuneRange struct {
	Low, High, Step int
}

// ParseTuneRange parses "low high step".
func ParseTuneRange(s string) (TuneRange, error) {
	fields := strings.Fields(s)
	if len(fields) != 3 {
		return TuneRange{}, fmt.Errorf("classifier: tune range %q must be \"low high step\"", s)
	}
	vals := make([]int, 3)
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return TuneRange{}, fmt.Errorf("classifier: invalid tune range %q: %w", s, err)
		}
		vals[i] = v
	}
	if vals[2] <= 0 {
		return TuneRange{}, fmt.Errorf("classifier: tune range step must be positive, got %q", s)
	}
	return TuneRange{Low: vals[0], High: vals[1], Step: vals[2]}, nil
}

// Values enumerates the sweep inclusive of High.
func (r TuneRange) Values() []int {
	var out []int
	for v := r.Low; v <= r.High; v += r.Step {
		out = append(out, v)
	}
	return out
}

// Orchestrator trains and selects among the tree/bayes/knn candidates
// (spec §4.10).
type Orchestrator struct {
	Folds, Repeats      int
	Seed                int64
	TreeIterationsRange TuneRange
	KNNKRange           TuneRange
	// MinRowsForTraining below which training is InsufficientData (spec
	// §7): fewer rows than cross-validation folds can stratify.
	MinRowsForTraining int
}

// NewOrchestrator returns an Orchestrator with spec §6's default ranges.
func NewOrchestrator() *Orchestrator {
	return &Orchestrator{
		Folds:               10,
		Repeats:             10,
		Seed:                42,
		TreeIterationsRange: TuneRange{Low: 10, High: 100, Step: 10},
		KNNKRange:           TuneRange{Low: 1, High: 10, Step: 1},
		MinRowsForTraining:  10,
	}
}

// TrainedModel is the winning classifier's type, tuned options, and
// serialized parameters (spec §3: "an opaque classifier handle plus the
// options used to build it").
type TrainedModel struct {
	Kind    Kind
	Options string
	Payload []byte
}

// ErrInsufficientData reports too few rows to cross-validate; the
// caller gets an untuned default tree instead (spec §7).
var ErrInsufficientData = fmt.Errorf("classifier: insufficient data for cross-validation")

// Train selects the best-performing candidate family by cross-validated
// AUC (tie-broken by precision, then recall, then FixedOrder), tunes its
// one hyperparameter by nested cross-validation, and fits the final
// model on all rows.
func (o *Orchestrator) Train(rows []Row) (*TrainedModel, error) {
	if len(rows) < o.MinRowsForTraining {
		return o.trainDefaultTree(rows)
	}

	bestKind := FixedOrder[0]
	var bestMetrics Metrics
	haveBest := false

	for _, kind := range FixedOrder {
		m, err := CrossValidate(kind, "", rows, o.Folds, o.Repeats, o.Seed)
		if err != nil {
			return nil, fmt.Errorf("classifier: evaluating %s: %w", kind, err)
		}
		if !haveBest || m.Better(bestMetrics) {
			bestKind = kind
			bestMetrics = m
			haveBest = true
		}
	}

	tunedOptions, err := o.tune(bestKind, rows)
	if err != nil {
		return nil, fmt.Errorf("classifier: tuning %s: %w", bestKind, err)
	}

	return o.fit(bestKind, tunedOptions, rows)
}

// trainDefaultTree builds an untuned tree with default options — the
// InsufficientData recovery spec §7 mandates.
func (o *Orchestrator) trainDefaultTree(rows []Row) (*TrainedModel, error) {
	if len(rows) == 0 {
		return nil, ErrInsufficientData
	}
	return o.fit(KindTree, "", rows)
}

// tune sweeps the winning family's single hyperparameter by nested
// cross-validation; naive Bayes has none and returns the empty options
// string unchanged (spec §4.10).
func (o *Orchestrator) tune(kind Kind, rows []Row) (string, error) {
	var sweep TuneRange
	var optionName string
	switch kind {
	case KindTree:
		sweep, optionName = o.TreeIterationsRange, "iterations"
	case KindKNN:
		sweep, optionName = o.KNNKRange, "k"
	case KindBayes:
		return "", nil
	default:
		return "", fmt.Errorf("classifier: unknown kind %q", kind)
	}

	var bestOptions string
	var bestMetrics Metrics
	haveBest := false

	for _, v := range sweep.Values() {
		options := fmt.Sprintf("%s=%d", optionName, v)
		m, err := CrossValidate(kind, options, rows, o.Folds, o.Repeats, o.Seed)
		if err != nil {
			return "", err
		}
		if !haveBest || m.Better(bestMetrics) {
			bestOptions = options
			bestMetrics = m
			haveBest = true
		}
	}
	if !haveBest {
		return "", fmt.Errorf("classifier: tuning sweep for %s produced no candidates", kind)
	}
	return bestOptions, nil
}

func (o *Orchestrator) fit(kind Kind, options string, rows []Row) (*TrainedModel, error) {
	model, err := New(kind)
	if err != nil {
		return nil, err
	}
	if err := model.SetOptions(options); err != nil {
		return nil, err
	}
	if err := model.Build(rows); err != nil {
		return nil, err
	}
	payload, err := model.MarshalBinary()
	if err != nil {
		return nil, err
	}
	return &TrainedModel{Kind: kind, Options: options, Payload: payload}, nil
}

// Load reconstructs the live Classifier handle from a TrainedModel.
func (tm *TrainedModel) Load() (Classifier, error) {
	model, err := New(tm.Kind)
	if err != nil {
		return nil, err
	}
	if err := model.SetOptions(tm.Options); err != nil {
		return nil, err
	}
	if err := model.UnmarshalBinary(tm.Payload); err != nil {
		return nil, err
	}
	return model, nil
}
