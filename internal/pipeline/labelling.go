package pipeline

import (
	"context"
	"fmt"

	"github.com/leonardomonnati2796/defectprediction/internal/tracker"
	"github.com/leonardomonnati2796/defectprediction/internal/vcs"
	"github.com/leonardomonnati2796/defectprediction/pkg/bugs"
	"github.com/leonardomonnati2796/defectprediction/pkg/label"
	"github.com/leonardomonnati2796/defectprediction/pkg/methodhistory"
	"github.com/leonardomonnati2796/defectprediction/pkg/release"
)

// buildLabelTickets runs components 2, 3, 4 and 5 (bug catalogue,
// commit-to-ticket linker, touched-methods extractor, proportion
// estimator) and returns the labeller-ready tickets component 6
// consumes (spec §4.2-§4.6).
func buildLabelTickets(ctx context.Context, client tracker.Client, repo vcs.Repository, idx *release.Index, sourceSuffix string) ([]label.Ticket, error) {
	catalogue, err := bugs.FetchCatalogue(ctx, client, idx)
	if err != nil {
		return nil, fmt.Errorf("fetching bug catalogue: %w", err)
	}

	if err := bugs.LinkFixCommits(repo, bugs.IndexByKey(catalogue)); err != nil {
		return nil, fmt.Errorf("linking fix commits: %w", err)
	}

	// The fix commit's author timestamp is often the only source of a
	// ticket's resolution, learned only once linking walks the commit
	// DAG; FV must be (re)derived from it before estimating IV.
	for _, t := range catalogue {
		if t.Resolved != nil {
			t.FixedVersion = idx.IndexForDate(*t.Resolved)
		}
	}

	rho := bugs.EstimateProportion(catalogue)

	tickets := make([]label.Ticket, 0, len(catalogue))
	for _, t := range catalogue {
		if !t.HasFixCommit() {
			continue // spec §3: "a ticket with no fix commit is excluded from the labeller"
		}

		if t.IntroducedVersion == 0 {
			t.IntroducedVersion = bugs.EstimateIntroducedVersion(t, rho)
		}
		candidate := label.Ticket{IntroducedVersion: t.IntroducedVersion, FixedVersion: t.FixedVersion}
		if !candidate.Qualifies() {
			continue
		}

		fixCommit, err := repo.CommitObject(*t.FixCommit)
		if err != nil {
			continue
		}
		touched, err := methodhistory.TouchedMethods(repo, fixCommit, sourceSuffix)
		if err != nil {
			continue
		}

		tickets = append(tickets, label.Ticket{
			IntroducedVersion: t.IntroducedVersion,
			FixedVersion:      t.FixedVersion,
			Touched:           touched,
		})
	}

	return tickets, nil
}
