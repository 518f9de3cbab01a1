package pipeline

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/leonardomonnati2796/defectprediction/internal/artefact"
	"github.com/leonardomonnati2796/defectprediction/pkg/dataset"
	"github.com/leonardomonnati2796/defectprediction/pkg/preprocess"
)

// worstOffendingRow returns the index, within ds.Rows (and, since
// Preprocess preserves row order 1:1 against its input records, within
// the original FeatureRecord slice too), of the row with the largest
// value on the actionable feature's column. Ties keep the
// lowest-indexed row.
func worstOffendingRow(ds *preprocess.Dataset, featureIdx int) int {
	best := 0
	for i, row := range ds.Rows {
		if row[featureIdx] > ds.Rows[best][featureIdx] {
			best = i
		}
	}
	return best
}

// writeAFMethod renders the chosen method's source, exactly as the
// parser's line range bounds it in the release post-image it came from,
// to <PROJECT>_AFMethod.txt (spec §6), and ensures the paired
// refactored-output placeholder exists without ever overwriting it.
func writeAFMethod(outputDir, project string, record dataset.FeatureRecord, refs map[string]snapshotRef) error {
	key := record.MethodName + "@" + record.Release
	ref, ok := refs[key]
	if !ok {
		return fmt.Errorf("pipeline: no source reference for %s", key)
	}

	content, err := ref.commit.Tree()
	if err != nil {
		return err
	}
	raw, err := content.File(ref.path)
	if err != nil {
		return err
	}

	source := extractLines(raw, ref.beginLine, ref.endLine)

	afPath := filepath.Join(outputDir, project+"_AFMethod.txt")
	if _, err := artefact.WriteOnce(afPath, source); err != nil {
		return fmt.Errorf("%w: writing AFMethod: %v", artefact.ErrPersistenceFailure, err)
	}

	refactoredDir := filepath.Join(outputDir, "AFMethod_refactored")
	if err := os.MkdirAll(refactoredDir, 0755); err != nil {
		return fmt.Errorf("%w: creating %s: %v", artefact.ErrPersistenceFailure, refactoredDir, err)
	}
	refactoredPath := filepath.Join(refactoredDir, project+"_AFMethod_refactored.txt")
	return artefact.EnsurePlaceholder(refactoredPath)
}

// extractLines returns the 1-based, inclusive [begin, end] line range of
// raw, joined with newlines exactly as they appear in the source.
func extractLines(raw []byte, begin, end int) []byte {
	if begin <= 0 {
		return nil
	}
	lines := bytes.Split(raw, []byte("\n"))
	if begin > len(lines) {
		return nil
	}
	if end > len(lines) {
		end = len(lines)
	}
	return bytes.Join(lines[begin-1:end], []byte("\n"))
}
