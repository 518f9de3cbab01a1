package classifier

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"os"

	"github.com/leonardomonnati2796/defectprediction/internal/artefact"
)

// Save persists a TrainedModel to path as a single opaque binary
// artefact (spec §6: "<PROJECT>_best.model"), unless one already exists
// there — an existing artefact short-circuits training (spec §4.10, §5).
func Save(path string, model *TrainedModel) (wrote bool, err error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(model); err != nil {
		return false, fmt.Errorf("%w: encoding model: %v", artefact.ErrPersistenceFailure, err)
	}
	return artefact.WriteOnce(path, buf.Bytes())
}

// Load reads a previously persisted TrainedModel.
func Load(path string) (*TrainedModel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var model TrainedModel
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&model); err != nil {
		return nil, fmt.Errorf("classifier: decoding %s: %w", path, err)
	}
	return &model, nil
}

// TrainOrLoad returns the model already persisted at path, or trains
// one with orchestrator and persists it (spec §4.10: "presence of the
// artefact short-circuits training").
func TrainOrLoad(orchestrator *Orchestrator, rows []Row, path string) (*TrainedModel, error) {
	if artefact.Exists(path) {
		return Load(path)
	}
	model, err := orchestrator.Train(rows)
	if err != nil {
		return nil, err
	}
	if _, err := Save(path, model); err != nil {
		return nil, err
	}
	return model, nil
}
