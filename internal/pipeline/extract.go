package pipeline

import (
	"github.com/leonardomonnati2796/defectprediction/internal/logx"
	"github.com/leonardomonnati2796/defectprediction/internal/vcs"
	"github.com/leonardomonnati2796/defectprediction/pkg/dataset"
	"github.com/leonardomonnati2796/defectprediction/pkg/method"
	"github.com/leonardomonnati2796/defectprediction/pkg/methodhistory"
	"github.com/leonardomonnati2796/defectprediction/pkg/release"
)

// snapshotRef locates a single method snapshot's source: the commit its
// release was built from, plus the path and line range the parser
// reported at that release. Used later to render the AFMethod artefact
// exactly as the parser saw it (spec §6).
type snapshotRef struct {
	commit    vcs.Commit
	path      string
	beginLine int
	endLine   int
}

// extractSnapshots walks idx's releases in chronological order, running
// the method-history extractor (spec §4.7) against each one that
// resolved to a commit, carrying method identity forward via a single
// shared table (spec §9's "last-known-methods" design) and resetting it
// after every release.
func extractSnapshots(repo vcs.Repository, idx *release.Index, commits map[string]vcs.Commit, sourceSuffix string) ([]dataset.ReleaseSnapshot, map[string]snapshotRef) {
	table := method.NewTable()
	var snapshots []dataset.ReleaseSnapshot
	refs := make(map[string]snapshotRef)

	for _, rel := range idx.Releases() {
		commit, ok := commits[rel.Name]
		if !ok {
			continue
		}

		methods, keys, err := methodhistory.ExtractRelease(repo, table, commit, sourceSuffix)
		if err != nil {
			logx.Warn("release %q: method-history extraction failed: %v", rel.Name, err)
			table.ResetTo(keys)
			continue
		}

		snapshots = append(snapshots, dataset.ReleaseSnapshot{Release: rel, Methods: methods})
		for _, m := range methods {
			key := methodhistory.MethodKey(m.Path, m.Signature) + "@" + rel.Name
			refs[key] = snapshotRef{commit: commit, path: m.Path, beginLine: m.BeginLine, endLine: m.EndLine}
		}
		table.ResetTo(keys)
	}

	return snapshots, refs
}
