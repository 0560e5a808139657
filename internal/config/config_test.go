package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Anthropic.Model != defaultModel {
		t.Errorf("Model = %q, want %q", cfg.Anthropic.Model, defaultModel)
	}
	if cfg.Anthropic.InputCostPerMTok != 3.0 || cfg.Anthropic.OutputCostPerMTok != 15.0 {
		t.Errorf("pricing = %.2f/%.2f, want 3.00/15.00",
			cfg.Anthropic.InputCostPerMTok, cfg.Anthropic.OutputCostPerMTok)
	}
	if cfg.Crew.TaskTimeout != 10*time.Minute {
		t.Errorf("TaskTimeout = %v, want 10m", cfg.Crew.TaskTimeout)
	}
	if cfg.Crew.RetryBackoff != 2*time.Second {
		t.Errorf("RetryBackoff = %v, want 2s", cfg.Crew.RetryBackoff)
	}
	if cfg.Output.Dir != "research" {
		t.Errorf("Output.Dir = %q, want research", cfg.Output.Dir)
	}
	if cfg.Anthropic.UseBedrock {
		t.Error("UseBedrock should default to false")
	}
}

func TestLoadFromPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `anthropic:
  api_key: sk-test-key
  model: claude-sonnet-4-5
crew:
  max_iterations: 5
  task_timeout: 15m
output:
  dir: /tmp/hoopscout-output
roster:
  overrides: roster.yaml
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath() error = %v", err)
	}

	if cfg.Anthropic.APIKey != "sk-test-key" {
		t.Errorf("APIKey = %q", cfg.Anthropic.APIKey)
	}
	if cfg.Anthropic.Model != "claude-sonnet-4-5" {
		t.Errorf("Model = %q", cfg.Anthropic.Model)
	}
	if cfg.Crew.MaxIterations != 5 {
		t.Errorf("MaxIterations = %d, want 5", cfg.Crew.MaxIterations)
	}
	if cfg.Crew.TaskTimeout != 15*time.Minute {
		t.Errorf("TaskTimeout = %v, want 15m", cfg.Crew.TaskTimeout)
	}
	if cfg.Output.Dir != "/tmp/hoopscout-output" {
		t.Errorf("Output.Dir = %q", cfg.Output.Dir)
	}
	if cfg.Roster.Overrides != "roster.yaml" {
		t.Errorf("Roster.Overrides = %q", cfg.Roster.Overrides)
	}
}

func TestLoadFromPath_DefaultsFillGaps(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("anthropic:\n  model: claude-haiku-4-5\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath() error = %v", err)
	}
	if cfg.Anthropic.Model != "claude-haiku-4-5" {
		t.Errorf("Model = %q", cfg.Anthropic.Model)
	}
	if cfg.Crew.TaskTimeout != 10*time.Minute {
		t.Errorf("TaskTimeout = %v, want default 10m", cfg.Crew.TaskTimeout)
	}
	if cfg.Output.Dir != "research" {
		t.Errorf("Output.Dir = %q, want default", cfg.Output.Dir)
	}
	if cfg.Anthropic.InputCostPerMTok != 3.0 || cfg.Anthropic.OutputCostPerMTok != 15.0 {
		t.Errorf("pricing = %.2f/%.2f, want defaults 3.00/15.00",
			cfg.Anthropic.InputCostPerMTok, cfg.Anthropic.OutputCostPerMTok)
	}
}

func TestLoadFromPath_ExpandsAPIKeyEnv(t *testing.T) {
	t.Setenv("TEST_HOOPSCOUT_KEY", "sk-from-env")

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("anthropic:\n  api_key: ${TEST_HOOPSCOUT_KEY}\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath() error = %v", err)
	}
	if cfg.Anthropic.APIKey != "sk-from-env" {
		t.Errorf("APIKey = %q, want env expansion", cfg.Anthropic.APIKey)
	}
}

func TestLoadFromPath_Missing(t *testing.T) {
	if _, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("LoadFromPath() on a missing file should fail")
	}
}

func TestGetUserConfigPath_XDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-config")
	want := filepath.Join("/tmp/xdg-config", "hoopscout", "config.yaml")
	if got := GetUserConfigPath(); got != want {
		t.Errorf("GetUserConfigPath() = %q, want %q", got, want)
	}
}
