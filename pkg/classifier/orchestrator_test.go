package classifier

import (
	"testing"

	_ "github.com/leonardomonnati2796/defectprediction/pkg/classifier/knn"
	_ "github.com/leonardomonnati2796/defectprediction/pkg/classifier/nb"
	_ "github.com/leonardomonnati2796/defectprediction/pkg/classifier/tree"
)

func TestParseTuneRange(t *testing.T) {
	r, err := ParseTuneRange("1 10 1")
	if err != nil {
		t.Fatalf("ParseTuneRange() error = %v", err)
	}
	if r.Low != 1 || r.High != 10 || r.Step != 1 {
		t.Errorf("ParseTuneRange() = %+v, want {1 10 1}", r)
	}
	if got := r.Values(); len(got) != 10 {
		t.Errorf("Values() length = %d, want 10", len(got))
	}
}

func TestParseTuneRange_RejectsMalformed(t *testing.T) {
	if _, err := ParseTuneRange("10 100"); err == nil {
		t.Errorf("expected error for malformed range")
	}
	if _, err := ParseTuneRange("10 100 0"); err == nil {
		t.Errorf("expected error for zero step")
	}
}

func TestOrchestrator_Train_SelectsAndTunes(t *testing.T) {
	o := NewOrchestrator()
	o.Folds, o.Repeats = 3, 1 // keep the test fast
	rows := separableRows(40)

	model, err := o.Train(rows)
	if err != nil {
		t.Fatalf("Train() error = %v", err)
	}
	if model.Kind == "" {
		t.Errorf("expected a selected Kind")
	}

	loaded, err := model.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	dist, err := loaded.DistributionForInstance([]float64{10, 1})
	if err != nil {
		t.Fatal(err)
	}
	if dist[1] <= dist[0] {
		t.Errorf("loaded model disagrees with the separable training data: %v", dist)
	}
}

func TestOrchestrator_Train_InsufficientDataReturnsDefaultTree(t *testing.T) {
	o := NewOrchestrator()
	rows := separableRows(4) // below o.MinRowsForTraining
	model, err := o.Train(rows)
	if err != nil {
		t.Fatalf("Train() error = %v", err)
	}
	if model.Kind != KindTree {
		t.Errorf("Kind = %v, want tree fallback for insufficient data", model.Kind)
	}
	if model.Options != "" {
		t.Errorf("Options = %q, want untuned default", model.Options)
	}
}

func TestOrchestrator_Train_EmptyRowsFails(t *testing.T) {
	o := NewOrchestrator()
	if _, err := o.Train(nil); err == nil {
		t.Errorf("expected error training on no rows")
	}
}
