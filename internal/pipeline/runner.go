package pipeline

import (
	"context"
	"time"

	"github.com/sourcegraph/conc/pool"

	"github.com/leonardomonnati2796/defectprediction/internal/config"
	"github.com/leonardomonnati2796/defectprediction/internal/logx"
	"github.com/leonardomonnati2796/defectprediction/internal/tracker"
	"github.com/leonardomonnati2796/defectprediction/internal/vcs"
)

// RunAll runs every configured project's pipeline. Projects share no
// mutable state (spec §5), so cfg.Mining.ProjectConcurrency — 1 by
// default, matching "projects are processed sequentially" — bounds how
// many run at once; a project's own pipeline stays single-threaded
// either way (spec §9: "do not introduce shared mutable state inside
// the method-history extractor"). A fatal per-project error is logged
// and the run advances to the next project (spec §6's exit behaviour);
// it never aborts the whole run.
//
// onProjectDone, if non-nil, is called once per project immediately after
// its pipeline finishes (result nil on failure) — callers use it to drive
// a progress display without depending on pipeline internals.
func RunAll(ctx context.Context, cfg *config.Config, opener vcs.Opener, newClient func(config.ProjectConfig) tracker.Client, onProjectDone func(config.ProjectConfig, *Result, error)) []*Result {
	concurrency := cfg.Mining.ProjectConcurrency
	if concurrency < 1 {
		concurrency = 1
	}

	p := pool.New().WithMaxGoroutines(concurrency)
	results := make([]*Result, len(cfg.Projects))

	for i, project := range cfg.Projects {
		i, project := i, project
		p.Go(func() {
			client := newClient(project)
			result, err := Run(ctx, cfg, project, opener, client)
			if err != nil {
				logx.Error("project %q failed: %v", project.Name, err)
			} else {
				results[i] = result
			}
			if onProjectDone != nil {
				onProjectDone(project, result, err)
			}
		})
	}
	p.Wait()

	return results
}

// NewTrackerClient builds the default HTTP-backed tracker client for a
// project, the factory RunAll's callers pass when not supplying a test
// double.
func NewTrackerClient(cfg *config.Config, project config.ProjectConfig) tracker.Client {
	timeout := time.Duration(cfg.Tracker.Timeout) * time.Second
	return tracker.NewHTTPClient(cfg.Tracker.BaseURL, project.TrackerKey, timeout)
}
