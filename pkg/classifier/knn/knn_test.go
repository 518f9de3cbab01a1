package knn

import (
	"testing"

	"github.com/leonardomonnati2796/defectprediction/pkg/classifier"
)

func clusteredRows() []classifier.Row {
	return []classifier.Row{
		{Features: []float64{0, 0}, Label: false},
		{Features: []float64{0.1, 0}, Label: false},
		{Features: []float64{0.2, 0}, Label: false},
		{Features: []float64{10, 10}, Label: true},
		{Features: []float64{10.1, 10}, Label: true},
		{Features: []float64{10.2, 10}, Label: true},
	}
}

func TestKNN_BuildAndPredict(t *testing.T) {
	k := New()
	if err := k.SetOptions("k=3"); err != nil {
		t.Fatalf("SetOptions() error = %v", err)
	}
	if err := k.Build(clusteredRows()); err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	dist, err := k.DistributionForInstance([]float64{10.05, 10})
	if err != nil {
		t.Fatal(err)
	}
	if dist[1] <= dist[0] {
		t.Errorf("expected positive class near positive cluster, got %v", dist)
	}

	dist, err = k.DistributionForInstance([]float64{0.05, 0})
	if err != nil {
		t.Fatal(err)
	}
	if dist[0] <= dist[1] {
		t.Errorf("expected negative class near negative cluster, got %v", dist)
	}
}

func TestKNN_KClampedToTrainingSetSize(t *testing.T) {
	k := New()
	if err := k.SetOptions("k=100"); err != nil {
		t.Fatal(err)
	}
	if err := k.Build(clusteredRows()); err != nil {
		t.Fatal(err)
	}
	// should not panic even though k exceeds len(rows)
	if _, err := k.DistributionForInstance([]float64{5, 5}); err != nil {
		t.Fatal(err)
	}
}

func TestKNN_SetOptions_RejectsZero(t *testing.T) {
	k := New()
	if err := k.SetOptions("k=0"); err == nil {
		t.Errorf("expected error for k=0")
	}
}

func TestKNN_MarshalUnmarshalRoundTrip(t *testing.T) {
	k := New()
	if err := k.Build(clusteredRows()); err != nil {
		t.Fatal(err)
	}
	data, err := k.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary() error = %v", err)
	}
	restored := New()
	if err := restored.UnmarshalBinary(data); err != nil {
		t.Fatalf("UnmarshalBinary() error = %v", err)
	}
	want, _ := k.DistributionForInstance([]float64{10.05, 10})
	got, _ := restored.DistributionForInstance([]float64{10.05, 10})
	if got != want {
		t.Errorf("restored model disagrees: got %v, want %v", got, want)
	}
}

func TestKNN_RegisteredInFactory(t *testing.T) {
	c, err := classifier.New(classifier.KindKNN)
	if err != nil {
		t.Fatalf("classifier.New(KindKNN) error = %v", err)
	}
	if _, ok := c.(*KNN); !ok {
		t.Errorf("expected *KNN, got %T", c)
	}
}
