package dataset

import (
	"bufio"
	"os"
	"strconv"
	"strings"
)

// WriteCSV writes records to path in the canonical column order, every
// field quoted (spec §6: "<PROJECT>.csv — tabular, all fields quoted").
// encoding/csv only quotes fields that need it, so rows are hand-encoded
// instead.
func WriteCSV(path string, records []FeatureRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)

	if err := writeQuotedRow(w, Header); err != nil {
		return err
	}
	for _, r := range records {
		row := []string{
			r.Project,
			r.MethodName,
			r.Release,
			strconv.Itoa(r.CodeSmells),
			strconv.Itoa(r.CyclomaticComplexity),
			strconv.Itoa(r.ParameterCount),
			strconv.Itoa(r.Duplication),
			strconv.Itoa(r.NR),
			strconv.Itoa(r.NAuth),
			strconv.Itoa(r.StmtAdded),
			strconv.Itoa(r.StmtDeleted),
			strconv.Itoa(r.MaxChurn),
			r.AvgChurnString(),
			string(r.IsBuggy),
		}
		if err := writeQuotedRow(w, row); err != nil {
			return err
		}
	}

	return w.Flush()
}

func writeQuotedRow(w *bufio.Writer, fields []string) error {
	for i, field := range fields {
		if i > 0 {
			if _, err := w.WriteString(","); err != nil {
				return err
			}
		}
		if _, err := w.WriteString(quoteCSVField(field)); err != nil {
			return err
		}
	}
	_, err := w.WriteString("\n")
	return err
}

func quoteCSVField(s string) string {
	escaped := strings.ReplaceAll(s, `"`, `""`)
	return `"` + escaped + `"`
}
