// Package config loads pipeline configuration the way the teacher loads
// analyzer configuration: koanf over TOML/YAML/JSON, a DefaultConfig()
// baseline, explicit Validate(). Adapted from pkg/config/config.go,
// generalized from analyzer thresholds to the mining pipeline's per-project
// settings (spec §2, §9).
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config holds all configuration for a mining run.
type Config struct {
	Projects   []ProjectConfig `koanf:"projects" toml:"projects"`
	Tracker    TrackerConfig   `koanf:"tracker" toml:"tracker"`
	Mining     MiningConfig    `koanf:"mining" toml:"mining"`
	Cache      CacheConfig     `koanf:"cache" toml:"cache"`
	Output     OutputConfig    `koanf:"output" toml:"output"`
	Classifier ClassifierConfig `koanf:"classifier" toml:"classifier"`
}

// ProjectConfig identifies one mined repository (spec §2, §9).
type ProjectConfig struct {
	Name       string `koanf:"name" toml:"name"`
	RepoPath   string `koanf:"repo_path" toml:"repo_path"`
	TrackerKey string `koanf:"tracker_key" toml:"tracker_key"`
}

// TrackerConfig points at the issue tracker queried for bug catalogues
// (spec §4.2).
type TrackerConfig struct {
	BaseURL string `koanf:"base_url" toml:"base_url"`
	Timeout int    `koanf:"timeout_seconds" toml:"timeout_seconds"`
}

// MiningConfig controls the thresholds and cutoffs of the mining stages
// (spec §4, §9); defaults are set in DefaultConfig.
type MiningConfig struct {
	DefaultProportion  float64 `koanf:"default_proportion" toml:"default_proportion"`
	CutoffPercentage   float64 `koanf:"cutoff_percentage" toml:"cutoff_percentage"`
	SourceSuffix       string  `koanf:"source_suffix" toml:"source_suffix"`
	ExcludeSubstring   string  `koanf:"exclude_substring" toml:"exclude_substring"`
	// ProjectConcurrency bounds how many projects' pipelines run at
	// once. Defaults to 1 (spec §5: "projects are processed
	// sequentially"); parallelism across projects is orthogonal to the
	// core and never shares mutable state (spec §9).
	ProjectConcurrency int `koanf:"project_concurrency" toml:"project_concurrency"`
}

// CacheConfig controls the artefact cache directory.
type CacheConfig struct {
	Dir string `koanf:"dir" toml:"dir"`
}

// OutputConfig controls where tabular artefacts land (spec §6).
type OutputConfig struct {
	Dir   string `koanf:"dir" toml:"dir"`
	Color bool   `koanf:"color" toml:"color"`
}

// ClassifierConfig controls preprocessing and training defaults (spec §4.10-12).
type ClassifierConfig struct {
	OversampleRatio    float64  `koanf:"oversample_ratio" toml:"oversample_ratio"`
	InfoGainTopK       int      `koanf:"info_gain_top_k" toml:"info_gain_top_k"`
	CrossValidationK   int      `koanf:"cross_validation_k" toml:"cross_validation_k"`
	RandomSeed         int64    `koanf:"random_seed" toml:"random_seed"`
	ActionableFeatures []string `koanf:"actionable_features" toml:"actionable_features"`
}

// DefaultConfig returns sensible defaults, grounded on spec §8's concrete
// scenarios (default_proportion = 1.5 matches DefaultProportion, §4.6).
func DefaultConfig() *Config {
	return &Config{
		Tracker: TrackerConfig{Timeout: 30},
		Mining: MiningConfig{
			DefaultProportion:  1.5,
			CutoffPercentage:   0.5,
			SourceSuffix:       ".java",
			ExcludeSubstring:   "test",
			ProjectConcurrency: 1,
		},
		Cache: CacheConfig{Dir: ".defectminer/cache"},
		Output: OutputConfig{Dir: ".", Color: true},
		Classifier: ClassifierConfig{
			OversampleRatio:    1.0,
			InfoGainTopK:       5,
			CrossValidationK:   10,
			RandomSeed:         42,
			ActionableFeatures: []string{"CodeSmells", "CyclomaticComplexity"},
		},
	}
}

// Load reads a config file, format inferred from its extension (TOML
// default, as the teacher's Load does).
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	var parser koanf.Parser
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		parser = toml.Parser()
	}

	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FindConfigFile searches standard locations for a config file.
func FindConfigFile() string {
	for _, name := range []string{"defectminer.toml", "defectminer.yaml", "defectminer.yml", "defectminer.json"} {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// LoadOrDefault loads config from the standard location or returns
// validated defaults.
func LoadOrDefault(explicitPath string) (*Config, error) {
	path := explicitPath
	if path == "" {
		path = FindConfigFile()
	}
	var cfg *Config
	var err error
	if path == "" {
		cfg = DefaultConfig()
	} else {
		cfg, err = Load(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", path, err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// Validate checks all config values are within acceptable ranges.
func (c *Config) Validate() error {
	var errs []error

	if c.Mining.DefaultProportion <= 0 {
		errs = append(errs, errors.New("mining.default_proportion must be positive"))
	}
	if c.Mining.CutoffPercentage <= 0 || c.Mining.CutoffPercentage > 1 {
		errs = append(errs, errors.New("mining.cutoff_percentage must be in (0, 1]"))
	}
	if c.Mining.SourceSuffix == "" {
		errs = append(errs, errors.New("mining.source_suffix must not be empty"))
	}
	if c.Mining.ProjectConcurrency < 1 {
		errs = append(errs, errors.New("mining.project_concurrency must be at least 1"))
	}
	if c.Tracker.Timeout < 1 {
		errs = append(errs, errors.New("tracker.timeout_seconds must be at least 1"))
	}
	if c.Classifier.OversampleRatio < 0 {
		errs = append(errs, errors.New("classifier.oversample_ratio must be non-negative"))
	}
	if c.Classifier.CrossValidationK < 2 {
		errs = append(errs, errors.New("classifier.cross_validation_k must be at least 2"))
	}
	if len(c.Classifier.ActionableFeatures) == 0 {
		errs = append(errs, errors.New("classifier.actionable_features must not be empty"))
	}

	for _, p := range c.Projects {
		if p.Name == "" {
			errs = append(errs, errors.New("project entry missing name"))
		}
		if p.RepoPath == "" {
			errs = append(errs, fmt.Errorf("project %q missing repo_path", p.Name))
		}
	}

	return errors.Join(errs...)
}
