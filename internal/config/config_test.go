package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig_Validates(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("DefaultConfig() failed validation: %v", err)
	}
}

func TestValidate_RejectsBadCutoff(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Mining.CutoffPercentage = 1.5
	if err := cfg.Validate(); err == nil {
		t.Errorf("expected validation error for cutoff > 1")
	}
}

func TestValidate_RejectsProjectMissingRepoPath(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Projects = []ProjectConfig{{Name: "demo"}}
	if err := cfg.Validate(); err == nil {
		t.Errorf("expected validation error for missing repo_path")
	}
}

func TestLoad_TOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "defectminer.toml")
	content := `
[mining]
default_proportion = 2.0
cutoff_percentage = 0.7

[[projects]]
name = "demo"
repo_path = "/tmp/demo"
tracker_key = "DEMO"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Mining.DefaultProportion != 2.0 {
		t.Errorf("DefaultProportion = %v, want 2.0", cfg.Mining.DefaultProportion)
	}
	if len(cfg.Projects) != 1 || cfg.Projects[0].Name != "demo" {
		t.Errorf("Projects = %+v, want one project named demo", cfg.Projects)
	}
	// unset fields keep the default's value
	if cfg.Mining.SourceSuffix != ".java" {
		t.Errorf("SourceSuffix = %q, want default .java to survive unmarshal", cfg.Mining.SourceSuffix)
	}
}

func TestLoadOrDefault_MissingFileFallsBackToDefaults(t *testing.T) {
	dir := t.TempDir()
	old, _ := os.Getwd()
	defer os.Chdir(old)
	os.Chdir(dir)

	cfg, err := LoadOrDefault("")
	if err != nil {
		t.Fatalf("LoadOrDefault() error = %v", err)
	}
	if cfg.Mining.DefaultProportion != 1.5 {
		t.Errorf("expected default proportion, got %v", cfg.Mining.DefaultProportion)
	}
}
