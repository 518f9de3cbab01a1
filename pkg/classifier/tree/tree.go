// Package tree implements the ensemble-tree candidate classifier (spec
// §4.10's "an ensemble tree"). No third-party decision-tree library is
// grounded in the example corpus, so the forest is hand-rolled: a small
// boosted ensemble of single-split decision stumps grown greedily on
// weighted information gain, the same statistic internal/mlstat ranks
// preprocessed features with (spec §4.11), so the tree and the feature
// picker agree on what "informative" means.
package tree

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/leonardomonnati2796/defectprediction/pkg/classifier"
)

func init() {
	classifier.Register(classifier.KindTree, func() classifier.Classifier { return New() })
}

// stump is a single-feature, single-threshold decision rule.
type stump struct {
	feature   int
	threshold float64
	// probability of the positive class on each side of the threshold
	leftPositive, rightPositive float64
}

func (s stump) probPositive(features []float64) float64 {
	if features[s.feature] <= s.threshold {
		return s.leftPositive
	}
	return s.rightPositive
}

// Tree is an ensemble of decision stumps, tunable by iteration count
// (spec §4.10: "tree: iteration count").
type Tree struct {
	iterations int
	stumps     []stump
}

// New constructs a Tree with the default iteration count.
func New() *Tree {
	return &Tree{iterations: 10}
}

// SetOptions parses "iterations=<n>".
func (t *Tree) SetOptions(options string) error {
	if options == "" {
		return nil
	}
	n, err := parseIntOption(options, "iterations")
	if err != nil {
		return err
	}
	if n < 1 {
		return fmt.Errorf("tree: iterations must be >= 1, got %d", n)
	}
	t.iterations = n
	return nil
}

// Options renders the current configuration.
func (t *Tree) Options() string {
	return fmt.Sprintf("iterations=%d", t.iterations)
}

// Kind identifies this family.
func (t *Tree) Kind() classifier.Kind { return classifier.KindTree }

// Build grows t.iterations stumps, each on the feature with the highest
// information gain against the rows the previous stumps misclassified
// most (a simplified boosting pass suited to the small feature count
// spec §4.9's preprocessor retains).
func (t *Tree) Build(rows []classifier.Row) error {
	if len(rows) == 0 {
		return fmt.Errorf("tree: no training rows")
	}
	numFeatures := len(rows[0].Features)
	t.stumps = t.stumps[:0]

	weights := make([]float64, len(rows))
	for i := range weights {
		weights[i] = 1
	}

	for iter := 0; iter < t.iterations; iter++ {
		best, ok := bestStump(rows, weights, numFeatures)
		if !ok {
			break
		}
		t.stumps = append(t.stumps, best)
		reweight(rows, weights, best)
	}
	if len(t.stumps) == 0 {
		return fmt.Errorf("tree: failed to grow any stump")
	}
	return nil
}

// DistributionForInstance averages the ensemble's positive-class votes.
func (t *Tree) DistributionForInstance(features []float64) ([2]float64, error) {
	if len(t.stumps) == 0 {
		return [2]float64{}, fmt.Errorf("tree: model not built")
	}
	var sum float64
	for _, s := range t.stumps {
		sum += s.probPositive(features)
	}
	pYes := sum / float64(len(t.stumps))
	return [2]float64{1 - pYes, pYes}, nil
}

// bestStump picks the (feature, threshold) split maximising weighted
// information gain, rows counted in proportion to their current weight
// so a later iteration can lean into rows the ensemble so far scores
// poorly.
func bestStump(rows []classifier.Row, weights []float64, numFeatures int) (stump, bool) {
	var best stump
	bestGain := -1.0
	found := false

	for f := 0; f < numFeatures; f++ {
		for _, thr := range candidateThresholds(rows, f) {
			var total, totalPositive, leftTotal, leftPositive float64
			var leftCount, rightCount int
			for i, r := range rows {
				w := weights[i]
				total += w
				if r.Label {
					totalPositive += w
				}
				if r.Features[f] <= thr {
					leftTotal += w
					leftCount++
					if r.Label {
						leftPositive += w
					}
				} else {
					rightCount++
				}
			}
			if leftCount == 0 || rightCount == 0 {
				continue
			}
			rightTotal := total - leftTotal
			rightPositive := totalPositive - leftPositive

			gain := weightedInfoGain(total, totalPositive, leftTotal, leftPositive)
			if gain > bestGain {
				best = stump{
					feature:       f,
					threshold:     thr,
					leftPositive:  safeRatioF(leftPositive, leftTotal),
					rightPositive: safeRatioF(rightPositive, rightTotal),
				}
				bestGain = gain
				found = true
			}
		}
	}
	return best, found
}

// weightedInfoGain is mlstat.InfoGain's entropy formula applied to
// weighted (fractional) counts instead of integer ones, since the
// boosting reweighting produces non-integer effective counts.
func weightedInfoGain(total, totalPositive, leftTotal, leftPositive float64) float64 {
	base := weightedEntropy(totalPositive, total)
	rightTotal := total - leftTotal
	rightPositive := totalPositive - leftPositive
	if total == 0 {
		return 0
	}
	weighted := leftTotal/total*weightedEntropy(leftPositive, leftTotal) +
		rightTotal/total*weightedEntropy(rightPositive, rightTotal)
	return base - weighted
}

func weightedEntropy(positive, total float64) float64 {
	if total <= 0 || positive <= 0 || positive >= total {
		return 0
	}
	p := positive / total
	return -p*math.Log2(p) - (1-p)*math.Log2(1-p)
}

func candidateThresholds(rows []classifier.Row, feature int) []float64 {
	values := make([]float64, len(rows))
	for i, r := range rows {
		values[i] = r.Features[feature]
	}
	seen := map[float64]bool{}
	var out []float64
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}

func safeRatioF(n, d float64) float64 {
	if d == 0 {
		return 0
	}
	return n / d
}

// reweight nudges future stumps toward rows the latest stump scores
// confidently wrong, a cheap stand-in for proper boosting weight updates.
func reweight(rows []classifier.Row, weights []float64, s stump) {
	for i, r := range rows {
		p := s.probPositive(r.Features)
		wantPositive := 0.0
		if r.Label {
			wantPositive = 1.0
		}
		err := wantPositive - p
		if err < 0 {
			err = -err
		}
		weights[i] = 1 + err
	}
}

func parseIntOption(options, key string) (int, error) {
	for _, part := range strings.Split(options, ",") {
		kv := strings.SplitN(strings.TrimSpace(part), "=", 2)
		if len(kv) == 2 && kv[0] == key {
			return strconv.Atoi(kv[1])
		}
	}
	return 0, fmt.Errorf("option %q not found in %q", key, options)
}

// StumpState is the exported, gob-encodable mirror of stump.
type StumpState struct {
	Feature                     int
	Threshold                   float64
	LeftPositive, RightPositive float64
}

// State is the exported, gob-encodable snapshot of a trained Tree.
type State struct {
	Iterations int
	Stumps     []StumpState
}

// MarshalBinary gob-encodes the trained ensemble.
func (t *Tree) MarshalBinary() ([]byte, error) {
	state := State{Iterations: t.iterations}
	for _, s := range t.stumps {
		state.Stumps = append(state.Stumps, StumpState{
			Feature: s.feature, Threshold: s.threshold,
			LeftPositive: s.leftPositive, RightPositive: s.rightPositive,
		})
	}
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(state); err != nil {
		return nil, fmt.Errorf("tree: marshal: %w", err)
	}
	return buf.Bytes(), nil
}

// UnmarshalBinary restores a trained ensemble from MarshalBinary's output.
func (t *Tree) UnmarshalBinary(data []byte) error {
	var state State
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&state); err != nil {
		return fmt.Errorf("tree: unmarshal: %w", err)
	}
	t.iterations = state.Iterations
	t.stumps = t.stumps[:0]
	for _, s := range state.Stumps {
		t.stumps = append(t.stumps, stump{
			feature: s.Feature, threshold: s.Threshold,
			leftPositive: s.LeftPositive, rightPositive: s.RightPositive,
		})
	}
	return nil
}
