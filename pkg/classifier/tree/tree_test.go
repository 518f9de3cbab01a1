package tree

import (
	"testing"

	"github.com/leonardomonnati2796/defectprediction/pkg/classifier"
)

func linearlySeparableRows() []classifier.Row {
	return []classifier.Row{
		{Features: []float64{0, 1}, Label: false},
		{Features: []float64{1, 1}, Label: false},
		{Features: []float64{2, 1}, Label: false},
		{Features: []float64{8, 1}, Label: true},
		{Features: []float64{9, 1}, Label: true},
		{Features: []float64{10, 1}, Label: true},
	}
}

func TestTree_BuildAndPredict(t *testing.T) {
	tr := New()
	if err := tr.Build(linearlySeparableRows()); err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	dist, err := tr.DistributionForInstance([]float64{9, 1})
	if err != nil {
		t.Fatalf("DistributionForInstance() error = %v", err)
	}
	if dist[1] <= dist[0] {
		t.Errorf("expected positive-class probability to dominate for a clearly positive row, got %v", dist)
	}

	dist, err = tr.DistributionForInstance([]float64{1, 1})
	if err != nil {
		t.Fatal(err)
	}
	if dist[0] <= dist[1] {
		t.Errorf("expected negative-class probability to dominate for a clearly negative row, got %v", dist)
	}
}

func TestTree_SetOptions(t *testing.T) {
	tr := New()
	if err := tr.SetOptions("iterations=5"); err != nil {
		t.Fatalf("SetOptions() error = %v", err)
	}
	if tr.Options() != "iterations=5" {
		t.Errorf("Options() = %q, want iterations=5", tr.Options())
	}
}

func TestTree_SetOptions_Rejects0(t *testing.T) {
	tr := New()
	if err := tr.SetOptions("iterations=0"); err == nil {
		t.Errorf("expected error for iterations=0")
	}
}

func TestTree_Kind(t *testing.T) {
	if New().Kind() != classifier.KindTree {
		t.Errorf("Kind() = %v, want tree", New().Kind())
	}
}

func TestTree_BuildEmptyRowsFails(t *testing.T) {
	if err := New().Build(nil); err == nil {
		t.Errorf("expected error building on empty rows")
	}
}

func TestTree_MarshalUnmarshalRoundTrip(t *testing.T) {
	tr := New()
	if err := tr.Build(linearlySeparableRows()); err != nil {
		t.Fatal(err)
	}
	data, err := tr.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary() error = %v", err)
	}

	restored := New()
	if err := restored.UnmarshalBinary(data); err != nil {
		t.Fatalf("UnmarshalBinary() error = %v", err)
	}

	for _, features := range [][]float64{{9, 1}, {1, 1}} {
		want, err := tr.DistributionForInstance(features)
		if err != nil {
			t.Fatal(err)
		}
		got, err := restored.DistributionForInstance(features)
		if err != nil {
			t.Fatal(err)
		}
		if got != want {
			t.Errorf("restored model disagrees with original: got %v, want %v", got, want)
		}
	}
}

func TestTree_RegisteredInFactory(t *testing.T) {
	c, err := classifier.New(classifier.KindTree)
	if err != nil {
		t.Fatalf("classifier.New(KindTree) error = %v", err)
	}
	if _, ok := c.(*Tree); !ok {
		t.Errorf("expected *Tree, got %T", c)
	}
}
