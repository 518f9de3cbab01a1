package preprocess

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/leonardomonnati2796/defectprediction/internal/artefact"
)

// WriteARFF persists ds to path as a Weka-style ARFF file, class
// attribute last (spec §6: "<PROJECT>_processed.arff — preprocessed
// typed tabular artefact with class attribute last"). An existing
// artefact at path short-circuits the write (spec §5, §7).
func WriteARFF(path, relation string, ds *Dataset) (wrote bool, err error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "@RELATION %s\n\n", relation)
	for _, attr := range ds.Attributes {
		fmt.Fprintf(&buf, "@ATTRIBUTE %s NUMERIC\n", attr)
	}
	buf.WriteString("@ATTRIBUTE IsBuggy {no,yes}\n\n@DATA\n")

	for i, row := range ds.Rows {
		for _, v := range row {
			buf.WriteString(strconv.FormatFloat(v, 'f', -1, 64))
			buf.WriteByte(',')
		}
		if ds.Labels[i] {
			buf.WriteString("yes\n")
		} else {
			buf.WriteString("no\n")
		}
	}

	return artefact.WriteOnce(path, buf.Bytes())
}
