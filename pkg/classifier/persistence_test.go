package classifier

import (
	"os"
	"path/filepath"
	"testing"

	_ "github.com/leonardomonnati2796/defectprediction/pkg/classifier/tree"
)

func TestSaveLoad_RoundTrip(t *testing.T) {
	o := NewOrchestrator()
	o.Folds, o.Repeats = 3, 1
	model, err := o.Train(separableRows(40))
	if err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "demo_best.model")
	wrote, err := Save(path, model)
	if err != nil || !wrote {
		t.Fatalf("Save() = (%v, %v), want (true, nil)", wrote, err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.Kind != model.Kind || loaded.Options != model.Options {
		t.Errorf("Load() = %+v, want kind/options matching %+v", loaded, model)
	}
}

func TestSave_ShortCircuitsWhenArtefactExists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "demo_best.model")
	first := &TrainedModel{Kind: KindTree, Options: "iterations=10", Payload: []byte{1, 2, 3}}
	second := &TrainedModel{Kind: KindKNN, Options: "k=5", Payload: []byte{4, 5, 6}}

	if wrote, err := Save(path, first); err != nil || !wrote {
		t.Fatalf("first Save() = (%v, %v)", wrote, err)
	}
	if wrote, err := Save(path, second); err != nil || wrote {
		t.Fatalf("second Save() = (%v, %v), want short-circuit", wrote, err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Kind != KindTree {
		t.Errorf("expected first model to survive, got %v", loaded.Kind)
	}
}

func TestTrainOrLoad_ShortCircuitsTraining(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "demo_best.model")
	o := NewOrchestrator()
	o.Folds, o.Repeats = 3, 1
	rows := separableRows(40)

	m1, err := TrainOrLoad(o, rows, path)
	if err != nil {
		t.Fatal(err)
	}

	info1, _ := os.Stat(path)

	m2, err := TrainOrLoad(o, rows, path)
	if err != nil {
		t.Fatal(err)
	}
	info2, _ := os.Stat(path)

	if info1.ModTime() != info2.ModTime() {
		t.Errorf("expected TrainOrLoad to short-circuit and not rewrite the artefact")
	}
	if m1.Kind != m2.Kind {
		t.Errorf("expected same kind across calls, got %v and %v", m1.Kind, m2.Kind)
	}
}
