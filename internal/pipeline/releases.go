package pipeline

import (
	"context"
	"fmt"

	"github.com/leonardomonnati2796/defectprediction/internal/logx"
	"github.com/leonardomonnati2796/defectprediction/internal/tracker"
	"github.com/leonardomonnati2796/defectprediction/internal/vcs"
	"github.com/leonardomonnati2796/defectprediction/pkg/release"
)

// buildReleaseIndex fetches every tracker version, builds the dated
// release index (spec §4.1), and resolves each release's name against
// the repository's tag set. A release whose name has no matching tag
// is warned about and excluded from traversal (spec §7: MissingTag)
// but keeps its place in idx — OV/FV computation and the cutoff window
// still need the full, date-ordered numbering.
func buildReleaseIndex(ctx context.Context, client tracker.Client, repo vcs.Repository) (*release.Index, map[string]vcs.Commit, error) {
	raw, err := client.FetchVersions(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("fetching release versions: %w", err)
	}

	descriptors := make([]release.Descriptor, 0, len(raw))
	for _, v := range raw {
		if !v.Released || v.ReleaseAt == nil {
			continue
		}
		date := *v.ReleaseAt
		descriptors = append(descriptors, release.Descriptor{Name: v.Name, Date: &date})
	}

	idx, err := release.NewIndex(descriptors)
	if err != nil {
		return nil, nil, err
	}

	tags, err := repo.Tags()
	if err != nil {
		return nil, nil, fmt.Errorf("listing tags: %w", err)
	}

	commits := make(map[string]vcs.Commit, idx.Len())
	for _, rel := range idx.Releases() {
		hash, ok := tags[rel.Name]
		if !ok {
			logx.Warn("release %q has no matching tag, omitted from traversal", rel.Name)
			continue
		}
		commit, err := repo.CommitObject(hash)
		if err != nil {
			logx.Warn("release %q: resolving tag commit %s: %v", rel.Name, hash, err)
			continue
		}
		commits[rel.Name] = commit
	}

	return idx, commits, nil
}
