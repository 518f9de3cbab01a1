package preprocess

import (
	"testing"

	"github.com/leonardomonnati2796/defectprediction/pkg/dataset"
)

func sampleRecords() []dataset.FeatureRecord {
	return []dataset.FeatureRecord{
		{CodeSmells: 0, CyclomaticComplexity: 1, ParameterCount: 1, NR: 1, HasAvgChurn: true, AvgChurn: 1.0, IsBuggy: dataset.No},
		{CodeSmells: 0, CyclomaticComplexity: 2, ParameterCount: 2, NR: 2, HasAvgChurn: true, AvgChurn: 2.0, IsBuggy: dataset.No},
		{CodeSmells: 3, CyclomaticComplexity: 15, ParameterCount: 6, NR: 10, HasAvgChurn: false, IsBuggy: dataset.Yes},
		{CodeSmells: 3, CyclomaticComplexity: 20, ParameterCount: 7, NR: 12, HasAvgChurn: true, AvgChurn: 8.0, IsBuggy: dataset.Yes},
	}
}

func TestPreprocess_NormalizesToUnitRange(t *testing.T) {
	ds := Preprocess(sampleRecords(), 10)
	for _, row := range ds.Rows {
		for _, v := range row {
			if v < 0 || v > 1 {
				t.Fatalf("value %v outside [0,1] after normalization", v)
			}
		}
	}
}

func TestPreprocess_TopKLimitsAttributeCount(t *testing.T) {
	ds := Preprocess(sampleRecords(), 3)
	if len(ds.Attributes) != 3 {
		t.Errorf("len(Attributes) = %d, want 3", len(ds.Attributes))
	}
	for _, row := range ds.Rows {
		if len(row) != 3 {
			t.Fatalf("row length = %d, want 3", len(row))
		}
	}
}

func TestPreprocess_RanksDiscriminatingFeatureFirst(t *testing.T) {
	// CodeSmells cleanly separates no/yes (0 vs 3); NR does too but with
	// a coarser split. CodeSmells should rank at or near the top.
	ds := Preprocess(sampleRecords(), 10)
	found := false
	for _, a := range ds.Attributes[:2] {
		if a == "CodeSmells" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected CodeSmells among the top-ranked attributes, got %v", ds.Attributes)
	}
}

func TestPreprocess_ImputesMissingWithMean(t *testing.T) {
	records := []dataset.FeatureRecord{
		{AvgChurn: 2.0, HasAvgChurn: true, IsBuggy: dataset.No},
		{AvgChurn: 4.0, HasAvgChurn: true, IsBuggy: dataset.No},
		{HasAvgChurn: false, IsBuggy: dataset.Yes}, // missing: imputed to mean(2,4)=3 before normalization
	}
	columns := extractColumns(records)
	imputeMeans(columns)

	avgChurnCol := columns[9]
	if avgChurnCol.values[2] != 3.0 {
		t.Errorf("imputed avgChurn = %v, want 3.0", avgChurnCol.values[2])
	}
}

func TestPreprocess_PreservesRowCount(t *testing.T) {
	records := sampleRecords()
	ds := Preprocess(records, 10)
	if len(ds.Rows) != len(records) {
		t.Errorf("len(Rows) = %d, want %d", len(ds.Rows), len(records))
	}
	if len(ds.Labels) != len(records) {
		t.Errorf("len(Labels) = %d, want %d", len(ds.Labels), len(records))
	}
}
