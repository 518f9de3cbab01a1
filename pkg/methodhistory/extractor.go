package methodhistory

import (
	"github.com/google/uuid"

	"github.com/leonardomonnati2796/defectprediction/internal/logx"
	"github.com/leonardomonnati2796/defectprediction/internal/srcparse"
	"github.com/leonardomonnati2796/defectprediction/internal/vcs"
	"github.com/leonardomonnati2796/defectprediction/pkg/method"
)

// StaticMetrics are the per-callable metrics computed from a single parse
// of the release-commit post-image (spec §4.8).
type StaticMetrics struct {
	ParameterCount        int
	CyclomaticComplexity  int
	CodeSmells            int
	Duplication           int // constant 0, placeholder column (spec §4.8)
}

// ChangeMetrics are the per-callable metrics accumulated by walking the
// file's commit history (spec §4.7).
type ChangeMetrics struct {
	NR          int
	NAuth       int
	StmtAdded   int
	StmtDeleted int
	MaxChurn    int
	AvgChurn    float64
}

// MethodSnapshot is one method as it exists at a single release.
type MethodSnapshot struct {
	ID        uuid.UUID
	Path      string
	Signature string
	BeginLine int
	EndLine   int
	Static    StaticMetrics
	Change    ChangeMetrics
}

const codeSmellLineThreshold = 20
const codeSmellParamThreshold = 4
const codeSmellComplexityThreshold = 10

func computeStatic(c srcparse.Callable, decisionPoints int) StaticMetrics {
	cyclomatic := 1 + decisionPoints
	smells := 0
	if c.EndLine-c.BeginLine+1 > codeSmellLineThreshold {
		smells++
	}
	if c.ParameterCount > codeSmellParamThreshold {
		smells++
	}
	if cyclomatic > codeSmellComplexityThreshold {
		smells++
	}
	return StaticMetrics{
		ParameterCount:       c.ParameterCount,
		CyclomaticComplexity: cyclomatic,
		CodeSmells:           smells,
		Duplication:          0,
	}
}

// ExtractRelease lists every non-test .java method at releaseCommit, computes
// static metrics from a single parse, and accumulates change-history
// metrics by walking each file's commit log (spec §4.7). table carries
// method identity forward across calls for different releases of the same
// project; callers must call table.ResetTo with the returned keys after
// processing completes.
func ExtractRelease(repo vcs.Repository, table *method.Table, releaseCommit vcs.Commit, sourceSuffix string) ([]MethodSnapshot, []method.Key, error) {
	tree, err := releaseCommit.Tree()
	if err != nil {
		return nil, nil, err
	}

	paths, err := NonTestSourceFiles(tree, sourceSuffix)
	if err != nil {
		return nil, nil, err
	}

	var snapshots []MethodSnapshot
	var keys []method.Key

	for _, path := range paths {
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

		for _, c := range ast.FindCallables() {
			key := method.Key{Path: path, Signature: c.Signature}
			id := table.IdentityFor(key)
			keys = append(keys, key)

			snap := MethodSnapshot{
				ID:        id,
				Path:      path,
				Signature: c.Signature,
				BeginLine: c.BeginLine,
				EndLine:   c.EndLine,
			}
			snap.Static = computeStatic(c, c.DecisionPoints)
			snap.Change = changeHistoryFor(repo, path, releaseCommit, c.BeginLine, c.EndLine, sourceSuffix)
			snapshots = append(snapshots, snap)
		}
	}

	return snapshots, keys, nil
}

// changeHistoryFor walks the commit log restricted to path, reachable
// from releaseCommit, and accumulates the change-history block for the
// callable spanning [beginLine, endLine] in the release post-image (spec
// §4.7). Any failure yields a zero-valued block and processing continues
// (spec: "If any commit-log or diff operation fails, the method receives
// the zero-valued change-history block and processing continues").
func changeHistoryFor(repo vcs.Repository, path string, releaseCommit vcs.Commit, beginLine, endLine int, sourceSuffix string) ChangeMetrics {
	var metrics ChangeMetrics
	if beginLine <= 0 {
		return metrics // missing begin position: zero-valued block (spec §4.7)
	}

	iter, err := repo.LogFrom(releaseCommit.Hash(), path)
	if err != nil {
		return metrics
	}
	defer iter.Close()

	authors := make(map[string]bool)

	_ = iter.ForEach(func(c vcs.Commit) error {
		if c.NumParents() == 0 {
			return nil
		}
		parent, err := c.Parent(0)
		if err != nil {
			return nil
		}
		parentTree, err := parent.Tree()
		if err != nil {
			return nil
		}
		tree, err := c.Tree()
		if err != nil {
			return nil
		}
		changes, err := parentTree.Diff(tree)
		if err != nil {
			return nil
		}

		touchedThisCommit := false
		for _, change := range changes {
			if change.ToName() != path {
				continue
			}
			patch, err := change.Patch()
			if err != nil {
				continue
			}
			for _, fp := range patch.FilePatches() {
				for _, edit := range vcs.ComputeEdits(fp) {
					start, end := edit.Interval()
					if !overlaps(start, end, beginLine, endLine) {
						continue
					}
					metrics.StmtAdded += edit.LengthB
					metrics.StmtDeleted += edit.LengthA
					churn := edit.LengthA + edit.LengthB
					if churn > metrics.MaxChurn {
						metrics.MaxChurn = churn
					}
					touchedThisCommit = true
				}
			}
		}

		if touchedThisCommit {
			metrics.NR++
			authors[c.Author().Name] = true
		}
		return nil
	})

	metrics.NAuth = len(authors)
	if metrics.NR > 0 {
		metrics.AvgChurn = float64(metrics.StmtAdded+metrics.StmtDeleted) / float64(metrics.NR)
	}
	return metrics
}
