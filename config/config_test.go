package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Layout.SampleSize != 300 {
		t.Errorf("expected SampleSize=300, got %d", cfg.Layout.SampleSize)
	}
	if cfg.Layout.VMin != -1e10 || cfg.Layout.VMax != 1e10 {
		t.Errorf("expected slider range ±1e10, got [%g, %g]", cfg.Layout.VMin, cfg.Layout.VMax)
	}
	if cfg.Translate.Keyword != "var" {
		t.Errorf("expected Keyword=var, got %s", cfg.Translate.Keyword)
	}
	if cfg.Output.BeginMarker != "SliderGraph({\n" || cfg.Output.EndMarker != "});" {
		t.Errorf("unexpected markers %q %q", cfg.Output.BeginMarker, cfg.Output.EndMarker)
	}
	if cfg.Output.Precision != 6 {
		t.Errorf("expected Precision=6, got %d", cfg.Output.Precision)
	}
}

func TestLoad_NonExistent(t *testing.T) {
	cfg, err := Load("/nonexistent/path/config.yaml")
	if err != nil {
		t.Errorf("expected no error for non-existent file, got %v", err)
	}
	if cfg == nil {
		t.Error("expected default config, got nil")
	}
}

func TestLoad_ValidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "slidergraph.yaml")

	content := `
layout:
  xmin: -5
  xmax: 5
  scale: log
  x_label: "log(t / years)"
translate:
  keyword: let
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Layout.XMin != -5 || cfg.Layout.XMax != 5 {
		t.Errorf("expected x window [-5, 5], got [%g, %g]", cfg.Layout.XMin, cfg.Layout.XMax)
	}
	if cfg.Layout.Scale != "log" {
		t.Errorf("expected Scale=log, got %s", cfg.Layout.Scale)
	}
	if cfg.Layout.XLabel != "log(t / years)" {
		t.Errorf("unexpected x label %q", cfg.Layout.XLabel)
	}
	if cfg.Translate.Keyword != "let" {
		t.Errorf("expected Keyword=let, got %s", cfg.Translate.Keyword)
	}
	if cfg.Layout.SampleSize != 300 {
		t.Errorf("expected untouched SampleSize=300, got %d", cfg.Layout.SampleSize)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "slidergraph.yaml")
	if err := os.WriteFile(configPath, []byte("layout: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(configPath); err == nil {
		t.Error("expected parse error")
	}
}

func TestLoadFromDir(t *testing.T) {
	tmpDir := t.TempDir()
	if err := EnsureStoreDir(tmpDir); err != nil {
		t.Fatal(err)
	}
	configPath := filepath.Join(tmpDir, ".slidergraph", "config.yaml")

	content := `
output:
  precision: 2
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromDir(tmpDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Output.Precision != 2 {
		t.Errorf("expected Precision=2, got %d", cfg.Output.Precision)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")
	cfg := DefaultConfig()
	cfg.Layout.YLabel = "T / K"
	if err := cfg.Save(path); err != nil {
		t.Fatal(err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Layout.YLabel != "T / K" {
		t.Errorf("expected YLabel to survive save, got %q", loaded.Layout.YLabel)
	}
}

func TestApplyEnv(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("SLIDERGRAPH_PRECISION=3\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("SLIDERGRAPH_LOG_LEVEL", "debug")
	// godotenv does not override variables that are already set, so make
	// sure the test owns the precision variable.
	t.Setenv("SLIDERGRAPH_PRECISION", "")
	os.Unsetenv("SLIDERGRAPH_PRECISION")

	cfg := DefaultConfig()
	if err := cfg.ApplyEnv(dir); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Output.Precision != 3 {
		t.Errorf("expected Precision=3 from .env, got %d", cfg.Output.Precision)
	}
	if cfg.SlogLevel() != slog.LevelDebug {
		t.Errorf("expected debug level, got %v", cfg.SlogLevel())
	}
}

func TestStoreDBPath(t *testing.T) {
	path := StoreDBPath("/home/user/project")
	expected := filepath.Join("/home/user/project", ".slidergraph", "descriptors.db")
	if path != expected {
		t.Errorf("expected %s, got %s", expected, path)
	}
}
