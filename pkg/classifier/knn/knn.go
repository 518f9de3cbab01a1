// Package knn implements the k-nearest-neighbour candidate classifier
// (spec §4.10: "a k-nearest-neighbour", tunable by k). No nearest-
// neighbour library is grounded in the example corpus, so distance and
// lookup are hand-rolled: Euclidean distance over the preprocessed,
// min-max-normalised feature columns (so no single column dominates),
// linear-scan nearest neighbours (the dataset sizes spec §4.9 produces
// don't warrant an index).
package knn

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"math"
	"sort"

	"github.com/leonardomonnati2796/defectprediction/pkg/classifier"
)

func init() {
	classifier.Register(classifier.KindKNN, func() classifier.Classifier { return New() })
}

// KNN is a lazy k-nearest-neighbour classifier.
type KNN struct {
	k    int
	rows []classifier.Row
}

// New constructs a KNN with the default k.
func New() *KNN {
	return &KNN{k: 5}
}

// SetOptions parses "k=<n>".
func (m *KNN) SetOptions(options string) error {
	if options == "" {
		return nil
	}
	var k int
	if _, err := fmt.Sscanf(options, "k=%d", &k); err != nil {
		return fmt.Errorf("knn: invalid options %q: %w", options, err)
	}
	if k < 1 {
		return fmt.Errorf("knn: k must be >= 1, got %d", k)
	}
	m.k = k
	return nil
}

// Options renders the current k.
func (m *KNN) Options() string {
	return fmt.Sprintf("k=%d", m.k)
}

// Kind identifies this family.
func (m *KNN) Kind() classifier.Kind { return classifier.KindKNN }

// Build stores the training rows; knn has no eager training phase.
func (m *KNN) Build(rows []classifier.Row) error {
	if len(rows) == 0 {
		return fmt.Errorf("knn: no training rows")
	}
	m.rows = rows
	return nil
}

type neighbor struct {
	distance float64
	label    bool
}

// DistributionForInstance votes among the k nearest training rows by
// Euclidean distance.
func (m *KNN) DistributionForInstance(features []float64) ([2]float64, error) {
	if len(m.rows) == 0 {
		return [2]float64{}, fmt.Errorf("knn: model not built")
	}

	neighbors := make([]neighbor, len(m.rows))
	for i, r := range m.rows {
		neighbors[i] = neighbor{distance: euclidean(features, r.Features), label: r.Label}
	}
	sort.Slice(neighbors, func(i, j int) bool { return neighbors[i].distance < neighbors[j].distance })

	k := m.k
	if k > len(neighbors) {
		k = len(neighbors)
	}

	positive := 0
	for _, n := range neighbors[:k] {
		if n.label {
			positive++
		}
	}
	pYes := float64(positive) / float64(k)
	return [2]float64{1 - pYes, pYes}, nil
}

// RowState is the exported, gob-encodable mirror of classifier.Row.
type RowState struct {
	Features []float64
	Label    bool
}

// State is the exported, gob-encodable snapshot of a trained KNN —
// lazy learning persists the whole training set.
type State struct {
	K    int
	Rows []RowState
}

// MarshalBinary gob-encodes k and the stored training rows.
func (m *KNN) MarshalBinary() ([]byte, error) {
	state := State{K: m.k}
	for _, r := range m.rows {
		state.Rows = append(state.Rows, RowState{Features: r.Features, Label: r.Label})
	}
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(state); err != nil {
		return nil, fmt.Errorf("knn: marshal: %w", err)
	}
	return buf.Bytes(), nil
}

// UnmarshalBinary restores a trained KNN from MarshalBinary's output.
func (m *KNN) UnmarshalBinary(data []byte) error {
	var state State
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&state); err != nil {
		return fmt.Errorf("knn: unmarshal: %w", err)
	}
	m.k = state.K
	m.rows = make([]classifier.Row, len(state.Rows))
	for i, r := range state.Rows {
		m.rows[i] = classifier.Row{Features: r.Features, Label: r.Label}
	}
	return nil
}

func euclidean(a, b []float64) float64 {
	sum := 0.0
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}
