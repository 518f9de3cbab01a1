package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/leonardomonnati2796/defectprediction/internal/config"
	"github.com/leonardomonnati2796/defectprediction/internal/pipeline"
	"github.com/leonardomonnati2796/defectprediction/internal/progress"
	"github.com/leonardomonnati2796/defectprediction/internal/tracker"
	"github.com/leonardomonnati2796/defectprediction/internal/vcs"
)

func mineCmd() *cli.Command {
	return &cli.Command{
		Name:      "mine",
		Aliases:   []string{"run"},
		Usage:     "Run the mining pipeline for every configured project",
		ArgsUsage: " ",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "project",
				Usage: "Mine only the named project (default: all configured projects)",
			},
		},
		Action: runMineCmd,
	}
}

func runMineCmd(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	if name := c.String("project"); name != "" {
		var filtered []config.ProjectConfig
		for _, p := range cfg.Projects {
			if p.Name == name {
				filtered = append(filtered, p)
			}
		}
		if len(filtered) == 0 {
			return fmt.Errorf("no configured project named %q", name)
		}
		cfg.Projects = filtered
	}

	if len(cfg.Projects) == 0 {
		return fmt.Errorf("no projects configured; add a [[projects]] entry to your config file")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		color.Yellow("\nStopping after the in-flight project completes...")
		cancel()
	}()

	tr := progress.NewTracker("mining projects", len(cfg.Projects))
	opener := vcs.NewGitOpener()
	results := pipeline.RunAll(ctx, cfg, opener, func(p config.ProjectConfig) tracker.Client {
		return pipeline.NewTrackerClient(cfg, p)
	}, func(p config.ProjectConfig, result *pipeline.Result, err error) {
		if err != nil {
			tr.FinishError(fmt.Errorf("%s: %w", p.Name, err))
		}
		tr.Tick()
	})
	tr.FinishSuccess()

	failures := 0
	for i, result := range results {
		project := cfg.Projects[i]
		if result == nil {
			failures++
			color.Red("%s: failed (see log above)", project.Name)
			continue
		}
		printResult(result)
	}

	if failures > 0 {
		return fmt.Errorf("%d of %d projects failed", failures, len(results))
	}
	return nil
}

func printResult(r *pipeline.Result) {
	color.Green("%s: %d records, classifier=%s, actionable feature=%s",
		r.Project, r.RecordCount, r.SelectedKind, r.ActionableFeature)
	if r.WhatIf == nil {
		return
	}
	w := r.WhatIf
	fmt.Printf("  threshold=%.3f  actual positive (A)=%d/%d  predicted positive after refactor (B)=%d/%d\n",
		w.Threshold, w.ActualPositiveA, w.TotalA, w.PredictedPositiveB, w.TotalB)
	if w.ReductionDefined {
		fmt.Printf("  predicted defect reduction: %.1f%% (%s)\n", w.Reduction*100, w.Interpretation)
	}
}
