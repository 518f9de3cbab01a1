// Package preprocess implements the preprocessor pipeline of spec
// §4.9: drop the identifier columns, impute missing numerics, min-max
// normalise, rank by information gain and keep the top-k, persist to the
// canonical ARFF artefact, and optionally oversample the minority class.
// Grounded on internal/mlstat's Entropy/InfoGain/MinMax for the
// statistics and on pkg/dataset's FeatureRecord for the input schema.
package preprocess

import (
	"sort"

	"github.com/leonardomonnati2796/defectprediction/internal/mlstat"
	"github.com/leonardomonnati2796/defectprediction/pkg/dataset"
)

// NumericColumns are the feature columns considered after dropping
// Project/MethodName/Release (spec §4.9 step 1), in canonical order.
var NumericColumns = []string{
	"CodeSmells", "CyclomaticComplexity", "ParameterCount", "Duplication",
	"NR", "NAuth", "stmtAdded", "stmtDeleted", "maxChurn", "avgChurn",
}

// Dataset is the preprocessed, schema-typed table: normalised feature
// columns (in ranked, top-k order) plus the class attribute last, the
// layout the ARFF writer and the classifier orchestrator both expect.
type Dataset struct {
	Attributes []string // selected, ranked feature names
	Rows       [][]float64
	Labels     []bool // true = "yes"
}

// Preprocess runs steps 1-5 of spec §4.9 and returns the result ready
// for persistence; callers call Write (ARFF) and Oversample separately,
// since both are optional/conditional steps (spec §4.9 steps 6-7).
func Preprocess(records []dataset.FeatureRecord, topK int) *Dataset {
	columns := extractColumns(records) // step 1: drop identifier columns
	imputeMeans(columns)               // step 2
	normalize(columns)                 // step 3

	labels := make([]bool, len(records))
	for i, r := range records {
		labels[i] = r.IsBuggy == dataset.Yes
	}

	ranked := rankByInfoGain(columns, labels) // step 4
	selected := ranked
	if topK > 0 && topK < len(selected) {
		selected = selected[:topK]
	}

	rows := make([][]float64, len(records))
	for i := range records {
		row := make([]float64, len(selected))
		for j, colIdx := range selected {
			row[j] = columns[colIdx].values[i]
		}
		rows[i] = row
	}

	attrs := make([]string, len(selected))
	for j, colIdx := range selected {
		attrs[j] = columns[colIdx].name
	}

	// Step 5: binarise any residual nominal attribute besides the class.
	// FeatureRecord carries no nominal columns past the identifier drop
	// in step 1, so this step has nothing to do for this schema.

	return &Dataset{Attributes: attrs, Rows: rows, Labels: labels}
}

type column struct {
	name    string
	values  []float64
	present []bool // false where the record used the missing sentinel
}

func extractColumns(records []dataset.FeatureRecord) []column {
	cols := []column{
		{name: "CodeSmells"}, {name: "CyclomaticComplexity"}, {name: "ParameterCount"},
		{name: "Duplication"}, {name: "NR"}, {name: "NAuth"},
		{name: "stmtAdded"}, {name: "stmtDeleted"}, {name: "maxChurn"}, {name: "avgChurn"},
	}
	for i := range cols {
		cols[i].values = make([]float64, len(records))
		cols[i].present = make([]bool, len(records))
	}
	for i, r := range records {
		cols[0].values[i], cols[0].present[i] = float64(r.CodeSmells), true
		cols[1].values[i], cols[1].present[i] = float64(r.CyclomaticComplexity), true
		cols[2].values[i], cols[2].present[i] = float64(r.ParameterCount), true
		cols[3].values[i], cols[3].present[i] = float64(r.Duplication), true
		cols[4].values[i], cols[4].present[i] = float64(r.NR), true
		cols[5].values[i], cols[5].present[i] = float64(r.NAuth), true
		cols[6].values[i], cols[6].present[i] = float64(r.StmtAdded), true
		cols[7].values[i], cols[7].present[i] = float64(r.StmtDeleted), true
		cols[8].values[i], cols[8].present[i] = float64(r.MaxChurn), true
		cols[9].values[i], cols[9].present[i] = r.AvgChurn, r.HasAvgChurn
	}
	return cols
}

// imputeMeans replaces missing numeric values with the column mean
// (spec §4.9 step 2), computed over the present values only.
func imputeMeans(columns []column) {
	for c := range columns {
		var present []float64
		for i, ok := range columns[c].present {
			if ok {
				present = append(present, columns[c].values[i])
			}
		}
		mean := mlstat.Mean(present)
		for i, ok := range columns[c].present {
			if !ok {
				columns[c].values[i] = mean
			}
		}
	}
}

// normalize min-max scales every column into [0, 1] (spec §4.9 step 3).
func normalize(columns []column) {
	for c := range columns {
		mm := mlstat.ComputeMinMax(columns[c].values)
		for i, v := range columns[c].values {
			columns[c].values[i] = mm.Normalize(v)
		}
	}
}

// rankByInfoGain ranks column indices by the best single-threshold
// information gain each achieves against labels (spec §4.9 step 4: "Rank
// remaining features by information gain against the class attribute").
func rankByInfoGain(columns []column, labels []bool) []int {
	total := len(labels)
	totalPositive := 0
	for _, l := range labels {
		if l {
			totalPositive++
		}
	}

	gains := make([]float64, len(columns))
	for c := range columns {
		gains[c] = bestThresholdGain(columns[c].values, labels, total, totalPositive)
	}

	idx := make([]int, len(columns))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(i, j int) bool { return gains[idx[i]] > gains[idx[j]] })
	return idx
}

func bestThresholdGain(values []float64, labels []bool, total, totalPositive int) float64 {
	seen := map[float64]bool{}
	var thresholds []float64
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			thresholds = append(thresholds, v)
		}
	}

	best := 0.0
	for _, thr := range thresholds {
		leftTotal, leftPositive := 0, 0
		for i, v := range values {
			if v <= thr {
				leftTotal++
				if labels[i] {
					leftPositive++
				}
			}
		}
		if leftTotal == 0 || leftTotal == total {
			continue
		}
		gain := mlstat.InfoGain(total, totalPositive, leftTotal, leftPositive)
		if gain > best {
			best = gain
		}
	}
	return best
}
