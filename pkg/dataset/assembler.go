package dataset

import (
	"strconv"

	"github.com/leonardomonnati2796/defectprediction/pkg/label"
	"github.com/leonardomonnati2796/defectprediction/pkg/methodhistory"
	"github.com/leonardomonnati2796/defectprediction/pkg/release"
)

// ReleaseSnapshot is one release's extracted methods, as produced by
// methodhistory.ExtractRelease.
type ReleaseSnapshot struct {
	Release release.Release
	Methods []methodhistory.MethodSnapshot
}

// Assemble builds the feature matrix for project across the releases
// whose index falls in the first ceil(N*cutoffPercentage) releases (spec
// §4.9), labelling each row via tickets.
func Assemble(project string, snapshots []ReleaseSnapshot, idx *release.Index, cutoffPercentage float64, tickets []label.Ticket) []FeatureRecord {
	cutoff := idx.CutoffCount(cutoffPercentage)

	var records []FeatureRecord
	for _, snap := range snapshots {
		if snap.Release.Index > cutoff {
			continue
		}
		for _, m := range snap.Methods {
			key := methodhistory.MethodKey(m.Path, m.Signature)
			verdict := No
			if label.IsBuggy(key, snap.Release.Index, tickets) {
				verdict = Yes
			}

			records = append(records, FeatureRecord{
				Project:               project,
				MethodName:            key,
				Release:               snap.Release.Name,
				CodeSmells:            m.Static.CodeSmells,
				CyclomaticComplexity:  m.Static.CyclomaticComplexity,
				ParameterCount:        m.Static.ParameterCount,
				Duplication:           m.Static.Duplication,
				NR:                    m.Change.NR,
				NAuth:                 m.Change.NAuth,
				StmtAdded:             m.Change.StmtAdded,
				StmtDeleted:           m.Change.StmtDeleted,
				MaxChurn:              m.Change.MaxChurn,
				AvgChurn:              m.Change.AvgChurn,
				HasAvgChurn:           true,
				IsBuggy:               verdict,
			})
		}
	}
	return records
}

// AvgChurnString renders AvgChurn as locale-independent 2-decimal
// fixed-point, or the missing sentinel (spec §4.9).
func (r FeatureRecord) AvgChurnString() string {
	if !r.HasAvgChurn {
		return Missing
	}
	return strconv.FormatFloat(r.AvgChurn, 'f', 2, 64)
}
