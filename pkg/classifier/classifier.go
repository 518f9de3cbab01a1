// Package classifier defines the classifier capability set spec §6
// treats as a consumed collaborator — "new, setOptions, getOptions,
// buildClassifier, distributionForInstance, evaluate, persistent
// serialization" — and the tagged-variant factory spec §9 calls for in
// place of reflective construction. Grounded on the teacher's
// analyzer.FileAnalyzer[T]-style capability interfaces in
// pkg/analyzer/analyzer.go, generalized from "analyze files" to "train
// and score rows."
package classifier

import "fmt"

// Row is one preprocessed dataset row: feature values in column order,
// plus its class label (true = "yes"/buggy).
type Row struct {
	Features []float64
	Label    bool
}

// Classifier is the capability set every candidate family implements.
type Classifier interface {
	// SetOptions configures the classifier from an option string in the
	// family's own encoding (mirrors spec §6's setOptions/getOptions).
	SetOptions(options string) error

	// Options returns the current option string.
	Options() string

	// Build trains the classifier on rows.
	Build(rows []Row) error

	// DistributionForInstance returns [P(no), P(yes)] for one row.
	DistributionForInstance(features []float64) ([2]float64, error)

	// Kind identifies which family this handle belongs to, for
	// persistence and the factory below.
	Kind() Kind

	// MarshalBinary/UnmarshalBinary persist and restore the trained
	// parameters (spec §6's "persistent serialization"). Implementations
	// use encoding/gob on an exported state struct.
	MarshalBinary() ([]byte, error)
	UnmarshalBinary(data []byte) error
}

// Kind tags a classifier family, used instead of reflective construction
// (spec §9).
type Kind string

const (
	KindTree  Kind = "tree"
	KindBayes Kind = "bayes"
	KindKNN   Kind = "knn"
)

// FixedOrder is the tie-break order spec §4.10 mandates: tree, bayes, knn.
var FixedOrder = []Kind{KindTree, KindBayes, KindKNN}

// Constructor builds a fresh, unconfigured Classifier of a given kind.
type Constructor func() Classifier

var registry = map[Kind]Constructor{}

// Register adds a constructor for kind to the factory. Concrete family
// packages (tree, nb, knn) call this from an init().
func Register(kind Kind, ctor Constructor) {
	registry[kind] = ctor
}

// New constructs a fresh classifier of the given kind.
func New(kind Kind) (Classifier, error) {
	ctor, ok := registry[kind]
	if !ok {
		return nil, fmt.Errorf("classifier: unknown kind %q", kind)
	}
	return ctor(), nil
}
