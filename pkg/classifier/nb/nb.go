// Package nb implements the naive-Bayes candidate classifier (spec
// §4.10: "a naïve Bayes"), the one family spec §4.10 tunes by no
// hyperparameter at all. Per-feature class-conditional densities are
// modelled as Gaussians, fit with gonum/stat's Mean/Variance and scored
// with gonum/stat/distuv's Normal distribution — the Gaussian density
// helper the DOMAIN STACK designates for this package.
package nb

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/leonardomonnati2796/defectprediction/pkg/classifier"
)

func init() {
	classifier.Register(classifier.KindBayes, func() classifier.Classifier { return New() })
}

type gaussian struct {
	mean, stddev float64
}

func (g gaussian) density(x float64) float64 {
	sigma := g.stddev
	if sigma == 0 {
		// A zero-variance feature is deterministic within its class: treat
		// an exact match as certain and anything else as impossible.
		if x == g.mean {
			return 1
		}
		return 0
	}
	return distuv.Normal{Mu: g.mean, Sigma: sigma}.Prob(x)
}

// NaiveBayes is a Gaussian naive-Bayes classifier. It has no tunable
// hyperparameter (spec §4.10).
type NaiveBayes struct {
	priorYes, priorNo float64
	yesDists, noDists []gaussian
}

// New constructs an untrained NaiveBayes.
func New() *NaiveBayes {
	return &NaiveBayes{}
}

// SetOptions is a no-op: naive Bayes has no configurable hyperparameter.
func (n *NaiveBayes) SetOptions(options string) error { return nil }

// Options always returns the empty string.
func (n *NaiveBayes) Options() string { return "" }

// Kind identifies this family.
func (n *NaiveBayes) Kind() classifier.Kind { return classifier.KindBayes }

// Build fits per-class, per-feature Gaussians.
func (n *NaiveBayes) Build(rows []classifier.Row) error {
	if len(rows) == 0 {
		return fmt.Errorf("nb: no training rows")
	}
	numFeatures := len(rows[0].Features)

	var yesRows, noRows [][]float64
	for _, r := range rows {
		if r.Label {
			yesRows = append(yesRows, r.Features)
		} else {
			noRows = append(noRows, r.Features)
		}
	}

	n.priorYes = float64(len(yesRows)) / float64(len(rows))
	n.priorNo = 1 - n.priorYes

	n.yesDists = fitGaussians(yesRows, numFeatures)
	n.noDists = fitGaussians(noRows, numFeatures)
	return nil
}

func fitGaussians(rows [][]float64, numFeatures int) []gaussian {
	dists := make([]gaussian, numFeatures)
	if len(rows) == 0 {
		return dists
	}
	column := make([]float64, len(rows))
	for f := 0; f < numFeatures; f++ {
		for i, r := range rows {
			column[i] = r[f]
		}
		mean := stat.Mean(column, nil)
		variance := 0.0
		if len(column) > 1 {
			variance = stat.Variance(column, nil)
		}
		dists[f] = gaussian{mean: mean, stddev: math.Sqrt(variance)}
	}
	return dists
}

// DistributionForInstance applies Bayes' rule across independent
// per-feature Gaussian likelihoods.
func (n *NaiveBayes) DistributionForInstance(features []float64) ([2]float64, error) {
	if len(n.yesDists) == 0 && len(n.noDists) == 0 {
		return [2]float64{}, fmt.Errorf("nb: model not built")
	}

	logYes := math.Log(nonZero(n.priorYes))
	logNo := math.Log(nonZero(n.priorNo))
	for i, x := range features {
		logYes += math.Log(nonZero(n.yesDists[i].density(x)))
		logNo += math.Log(nonZero(n.noDists[i].density(x)))
	}

	// Normalize via the log-sum-exp trick for numerical stability.
	m := math.Max(logYes, logNo)
	eYes := math.Exp(logYes - m)
	eNo := math.Exp(logNo - m)
	total := eYes + eNo
	if total == 0 {
		return [2]float64{0.5, 0.5}, nil
	}
	return [2]float64{eNo / total, eYes / total}, nil
}

// GaussianState is the exported, gob-encodable mirror of gaussian.
type GaussianState struct {
	Mean, StdDev float64
}

// State is the exported, gob-encodable snapshot of a trained NaiveBayes.
type State struct {
	PriorYes, PriorNo float64
	YesDists, NoDists []GaussianState
}

// MarshalBinary gob-encodes the fitted priors and per-feature Gaussians.
func (n *NaiveBayes) MarshalBinary() ([]byte, error) {
	state := State{PriorYes: n.priorYes, PriorNo: n.priorNo}
	for _, g := range n.yesDists {
		state.YesDists = append(state.YesDists, GaussianState{Mean: g.mean, StdDev: g.stddev})
	}
	for _, g := range n.noDists {
		state.NoDists = append(state.NoDists, GaussianState{Mean: g.mean, StdDev: g.stddev})
	}
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(state); err != nil {
		return nil, fmt.Errorf("nb: marshal: %w", err)
	}
	return buf.Bytes(), nil
}

// UnmarshalBinary restores a trained NaiveBayes from MarshalBinary's output.
func (n *NaiveBayes) UnmarshalBinary(data []byte) error {
	var state State
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&state); err != nil {
		return fmt.Errorf("nb: unmarshal: %w", err)
	}
	n.priorYes, n.priorNo = state.PriorYes, state.PriorNo
	n.yesDists = make([]gaussian, len(state.YesDists))
	for i, g := range state.YesDists {
		n.yesDists[i] = gaussian{mean: g.Mean, stddev: g.StdDev}
	}
	n.noDists = make([]gaussian, len(state.NoDists))
	for i, g := range state.NoDists {
		n.noDists[i] = gaussian{mean: g.Mean, stddev: g.StdDev}
	}
	return nil
}

func nonZero(p float64) float64 {
	const epsilon = 1e-9
	if p < epsilon {
		return epsilon
	}
	return p
}
