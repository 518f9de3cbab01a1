// Package methodhistory implements the touched-methods extractor (spec
// §4.4) and the method-history extractor (spec §4.7), the two subsystems
// that turn a commit's diff into per-method change attribution.
package methodhistory

import (
	"fmt"

	"github.com/leonardomonnati2796/defectprediction/internal/logx"
	"github.com/leonardomonnati2796/defectprediction/internal/srcparse"
	"github.com/leonardomonnati2796/defectprediction/internal/vcs"
)

// MethodKey renders the "<path>::<signature>" key spec §4.4 defines as the
// touched-methods extractor's output shape.
func MethodKey(path, signature string) string {
	return path + "::" + signature
}

// TouchedMethods computes the set of method keys touched by fixCommit,
// per spec §4.4. fixCommit must have at least one parent; the diff is
// taken between its first parent's tree and its own tree, restricted to
// modify-type changes on paths ending in sourceSuffix. Parsing failures
// are non-fatal: the offending file simply contributes no touched
// methods.
func TouchedMethods(repo vcs.Repository, fixCommit vcs.Commit, sourceSuffix string) (map[string]bool, error) {
	touched := make(map[string]bool)

	if fixCommit.NumParents() == 0 {
		return touched, nil
	}
	parent, err := fixCommit.Parent(0)
	if err != nil {
		return nil, fmt.Errorf("methodhistory: parent: %w", err)
	}

	parentTree, err := parent.Tree()
	if err != nil {
		return nil, fmt.Errorf("methodhistory: parent tree: %w", err)
	}
	tree, err := fixCommit.Tree()
	if err != nil {
		return nil, fmt.Errorf("methodhistory: tree: %w", err)
	}

	changes, err := parentTree.Diff(tree)
	if err != nil {
		return nil, fmt.Errorf("methodhistory: diff: %w", err)
	}

	for _, change := range changes {
		if change.Action() != vcs.ActionModify {
			continue
		}
		path := change.ToName()
		if !vcs.MatchesSourceFilter(path, sourceSuffix, "") {
			continue
		}

		content, err := tree.File(path)
		if err != nil {
			logx.Warn("methodhistory: reading %s: %v", path, err)
			continue
		}
		ast, err := srcparse.Parse(content)
		if err != nil {
			logx.Warn("methodhistory: parsing %s: %v", path, err)
			continue
		}
		callables := ast.FindCallables()

		patch, err := change.Patch()
		if err != nil {
			logx.Warn("methodhistory: patch for %s: %v", path, err)
			continue
		}

		for _, fp := range patch.FilePatches() {
			for _, edit := range vcs.ComputeEdits(fp) {
				start, end := edit.Interval()
				for _, c := range callables {
					if overlaps(start, end, c.BeginLine, c.EndLine) {
						touched[MethodKey(path, c.Signature)] = true
					}
				}
			}
		}
	}

	return touched, nil
}

func overlaps(aStart, aEnd, bStart, bEnd int) bool {
	if aEnd < aStart {
		return false // empty interval: pure deletion touches no post-image lines
	}
	return aStart <= bEnd && bStart <= aEnd
}

// NonTestSourceFiles returns the paths at tree ending in suffix whose path
// does not contain "test" (case-insensitive), per spec §4.7.
func NonTestSourceFiles(tree vcs.Tree, suffix string) ([]string, error) {
	return tree.Files(suffix, "test")
}
