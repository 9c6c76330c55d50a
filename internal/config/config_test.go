package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLoad_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nonexistent", "config.json")

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff(&Config{}, cfg); diff != "" {
		t.Errorf("expected zero config (-want +got):\n%s", diff)
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "r2ta", "config.json")

	want := &Config{BundleName: "trace.sqlite", ChartSize: 1200, OutputFormat: "png", HistogramBins: 20, LogLevel: "debug"}
	if err := want.SaveTo(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestSave_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "deep")
	path := filepath.Join(dir, "config.json")

	cfg := &Config{ChartSize: 640}
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected config file at %s: %v", path, err)
	}
}

func TestLoad_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{not json}"), 0o644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	_, err := LoadFrom(path)
	if err == nil {
		t.Fatal("expected error for invalid JSON, got nil")
	}
}

func TestSave_OverwritesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	first := &Config{OutputFormat: "svg"}
	if err := first.SaveTo(path); err != nil {
		t.Fatalf("first Save failed: %v", err)
	}

	second := &Config{OutputFormat: "png"}
	if err := second.SaveTo(path); err != nil {
		t.Fatalf("second Save failed: %v", err)
	}

	got, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if got.OutputFormat != "png" {
		t.Errorf("expected OutputFormat %q, got %q", "png", got.OutputFormat)
	}
}

func TestDefaults(t *testing.T) {
	cfg := &Config{}
	if cfg.Bundle() != DefaultBundleName {
		t.Errorf("Bundle() = %q, want %q", cfg.Bundle(), DefaultBundleName)
	}
	if cfg.Size() != DefaultChartSize {
		t.Errorf("Size() = %d, want %d", cfg.Size(), DefaultChartSize)
	}
	if cfg.Format() != DefaultOutputFormat {
		t.Errorf("Format() = %q, want %q", cfg.Format(), DefaultOutputFormat)
	}

	set := &Config{BundleName: "b.sqlite", ChartSize: 10, OutputFormat: "text", HistogramBins: 3}
	if set.Bundle() != "b.sqlite" || set.Size() != 10 || set.Format() != "text" {
		t.Errorf("configured values not returned: %+v", set)
	}
}
