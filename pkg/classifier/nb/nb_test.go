package nb

import (
	"testing"

	"github.com/leonardomonnati2796/defectprediction/pkg/classifier"
)

func separableRows() []classifier.Row {
	return []classifier.Row{
		{Features: []float64{0, 0}, Label: false},
		{Features: []float64{1, 0}, Label: false},
		{Features: []float64{0.5, 0}, Label: false},
		{Features: []float64{10, 0}, Label: true},
		{Features: []float64{11, 0}, Label: true},
		{Features: []float64{10.5, 0}, Label: true},
	}
}

func TestNaiveBayes_BuildAndPredict(t *testing.T) {
	n := New()
	if err := n.Build(separableRows()); err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	dist, err := n.DistributionForInstance([]float64{10.2, 0})
	if err != nil {
		t.Fatal(err)
	}
	if dist[1] <= dist[0] {
		t.Errorf("expected positive class to dominate near the positive cluster, got %v", dist)
	}
	if dist[0]+dist[1] < 0.99 || dist[0]+dist[1] > 1.01 {
		t.Errorf("distribution does not sum to 1: %v", dist)
	}
}

func TestNaiveBayes_ZeroVarianceFeature(t *testing.T) {
	n := New()
	rows := []classifier.Row{
		{Features: []float64{1}, Label: false},
		{Features: []float64{1}, Label: false},
		{Features: []float64{9}, Label: true},
		{Features: []float64{9}, Label: true},
	}
	if err := n.Build(rows); err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	dist, err := n.DistributionForInstance([]float64{9})
	if err != nil {
		t.Fatal(err)
	}
	if dist[1] <= dist[0] {
		t.Errorf("expected exact match on zero-variance feature to favor positive class, got %v", dist)
	}
}

func TestNaiveBayes_SetOptionsNoop(t *testing.T) {
	n := New()
	if err := n.SetOptions("anything"); err != nil {
		t.Errorf("SetOptions() should never fail, got %v", err)
	}
	if n.Options() != "" {
		t.Errorf("Options() = %q, want empty", n.Options())
	}
}

func TestNaiveBayes_MarshalUnmarshalRoundTrip(t *testing.T) {
	n := New()
	if err := n.Build(separableRows()); err != nil {
		t.Fatal(err)
	}
	data, err := n.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary() error = %v", err)
	}
	restored := New()
	if err := restored.UnmarshalBinary(data); err != nil {
		t.Fatalf("UnmarshalBinary() error = %v", err)
	}
	want, _ := n.DistributionForInstance([]float64{10.2, 0})
	got, _ := restored.DistributionForInstance([]float64{10.2, 0})
	if got != want {
		t.Errorf("restored model disagrees: got %v, want %v", got, want)
	}
}

func TestNaiveBayes_RegisteredInFactory(t *testing.T) {
	c, err := classifier.New(classifier.KindBayes)
	if err != nil {
		t.Fatalf("classifier.New(KindBayes) error = %v", err)
	}
	if _, ok := c.(*NaiveBayes); !ok {
		t.Errorf("expected *NaiveBayes, got %T", c)
	}
}
