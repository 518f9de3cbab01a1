package pipeline

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/leonardomonnati2796/defectprediction/internal/artefact"
	"github.com/leonardomonnati2796/defectprediction/internal/config"
	"github.com/leonardomonnati2796/defectprediction/internal/logx"
	"github.com/leonardomonnati2796/defectprediction/internal/tracker"
	"github.com/leonardomonnati2796/defectprediction/internal/vcs"
	"github.com/leonardomonnati2796/defectprediction/pkg/classifier"
	"github.com/leonardomonnati2796/defectprediction/pkg/dataset"
	"github.com/leonardomonnati2796/defectprediction/pkg/preprocess"
	"github.com/leonardomonnati2796/defectprediction/pkg/whatif"

	// Blank-imported so each classifier family registers itself with the
	// pkg/classifier registry (classifier.New) in the shipped binary, not
	// only under test.
	_ "github.com/leonardomonnati2796/defectprediction/pkg/classifier/knn"
	_ "github.com/leonardomonnati2796/defectprediction/pkg/classifier/nb"
	_ "github.com/leonardomonnati2796/defectprediction/pkg/classifier/tree"
)

// Result is everything a single project's pipeline run produced.
type Result struct {
	Project           string
	RecordCount       int
	SelectedKind      classifier.Kind
	ActionableFeature string
	WhatIf            *whatif.Report
}

// Run executes the full per-project pipeline — components 1 through 12
// of spec §2's data flow — under the project's log context tag,
// guaranteeing the tag clears on every exit path (spec §5: "scoped
// acquisition with guaranteed release"; go-git's Repository needs no
// explicit Close, so the context tag is the only resource this scope
// owns). opener and client are the version-control and issue-tracker
// capabilities spec §6 treats as external collaborators.
func Run(ctx context.Context, cfg *config.Config, project config.ProjectConfig, opener vcs.Opener, client tracker.Client) (*Result, error) {
	var result *Result
	err := logx.WithProject(project.Name, func() error {
		r, runErr := run(ctx, cfg, project, opener, client)
		result = r
		return runErr
	})
	return result, err
}

func run(ctx context.Context, cfg *config.Config, project config.ProjectConfig, opener vcs.Opener, client tracker.Client) (*Result, error) {
	repo, err := opener.PlainOpenWithDetect(project.RepoPath)
	if err != nil {
		return nil, fail(project.Name, KindNetworkFailure, fmt.Errorf("opening repository: %w", err))
	}

	idx, commits, err := buildReleaseIndex(ctx, client, repo)
	if err != nil {
		return nil, fail(project.Name, KindNetworkFailure, err)
	}

	tickets, err := buildLabelTickets(ctx, client, repo, idx, cfg.Mining.SourceSuffix)
	if err != nil {
		return nil, fail(project.Name, KindNetworkFailure, err)
	}

	snapshots, refs := extractSnapshots(repo, idx, commits, cfg.Mining.SourceSuffix)

	records := dataset.Assemble(project.Name, snapshots, idx, cfg.Mining.CutoffPercentage, tickets)
	logx.Info("assembled %d feature records", len(records))

	outputDir := cfg.Output.Dir
	csvPath := filepath.Join(outputDir, project.Name+".csv")
	if !artefact.Exists(csvPath) {
		if err := dataset.WriteCSV(csvPath, records); err != nil {
			return nil, fail(project.Name, KindPersistence, err)
		}
	}

	ds := preprocess.Preprocess(records, cfg.Classifier.InfoGainTopK)

	arffPath := filepath.Join(outputDir, project.Name+"_processed.arff")
	if _, err := preprocess.WriteARFF(arffPath, project.Name, ds); err != nil {
		return nil, fail(project.Name, KindPersistence, err)
	}

	// spec §3's balanced variant, produced only when triggered; the
	// what-if simulator and the trained model both prefer it when
	// present (spec §4.12: "preferring the balanced variant if it exists").
	trainingDS := ds
	if preprocess.NeedsOversampling(ds) {
		balanced := preprocess.Oversample(ds)
		balancedPath := filepath.Join(outputDir, project.Name+"_processed_balanced.arff")
		if _, err := preprocess.WriteARFF(balancedPath, project.Name, balanced); err != nil {
			return nil, fail(project.Name, KindPersistence, err)
		}
		trainingDS = balanced
	}

	orchestrator := classifier.NewOrchestrator()
	orchestrator.Seed = cfg.Classifier.RandomSeed
	orchestrator.Folds = cfg.Classifier.CrossValidationK

	modelPath := filepath.Join(outputDir, project.Name+"_best.model")
	trained, err := classifier.TrainOrLoad(orchestrator, toRows(trainingDS), modelPath)
	if err != nil {
		return nil, fail(project.Name, KindPersistence, err)
	}

	actionableFeature := classifier.PickActionable(trainingDS.Attributes, cfg.Classifier.ActionableFeatures)
	result := &Result{
		Project:           project.Name,
		RecordCount:       len(records),
		SelectedKind:      trained.Kind,
		ActionableFeature: actionableFeature,
	}

	featureIdx := indexOf(trainingDS.Attributes, actionableFeature)
	if featureIdx < 0 {
		return result, nil
	}

	model, err := trained.Load()
	if err != nil {
		return nil, fail(project.Name, KindPersistence, err)
	}

	sim := whatif.NewSimulator()
	report, err := sim.Run(model, trainingDS, featureIdx)
	if err != nil {
		logx.Warn("what-if simulation aborted: %v", err)
		return result, nil
	}
	result.WhatIf = report

	// ds.Attributes and trainingDS.Attributes name the same ranked
	// columns in the same order (Oversample only appends rows), so
	// featureIdx applies to ds too; ds, unlike trainingDS, preserves a
	// 1:1 row correspondence with records.
	if worst := worstOffendingRow(ds, featureIdx); worst < len(records) {
		if err := writeAFMethod(outputDir, project.Name, records[worst], refs); err != nil {
			logx.Warn("writing AFMethod artefact: %v", err)
		}
	}

	return result, nil
}

func toRows(ds *preprocess.Dataset) []classifier.Row {
	rows := make([]classifier.Row, len(ds.Rows))
	for i, r := range ds.Rows {
		rows[i] = classifier.Row{Features: r, Label: ds.Labels[i]}
	}
	return rows
}

func indexOf(names []string, name string) int {
	for i, n := range names {
		if n == name {
			return i
		}
	}
	return -1
}
