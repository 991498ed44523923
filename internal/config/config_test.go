package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeYAML(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write yaml: %v", err)
	}
	return path
}

const validYAML = `
meili:
  url: "http://meili.internal:7700"
  key: "test-key"
  index: "words_test"

import:
  xml_path: "/data/wn.xml"
  source_url: "https://example.com/wn.xml.gz"
  skip_upload: false
  batch_size: 500
  worker_count: 4

log:
  level: "debug"
  format: "text"
`

func TestLoad_ValidYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, validYAML)
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Meili.URL != "http://meili.internal:7700" {
		t.Errorf("meili.url = %q", cfg.Meili.URL)
	}
	if cfg.Meili.Key != "test-key" {
		t.Errorf("meili.key = %q", cfg.Meili.Key)
	}
	if cfg.Meili.Index != "words_test" {
		t.Errorf("meili.index = %q", cfg.Meili.Index)
	}

	if cfg.Import.XMLPath != "/data/wn.xml" {
		t.Errorf("import.xml_path = %q", cfg.Import.XMLPath)
	}
	if cfg.Import.BatchSize != 500 {
		t.Errorf("import.batch_size = %d, want 500", cfg.Import.BatchSize)
	}
	if cfg.Import.WorkerCount != 4 {
		t.Errorf("import.worker_count = %d, want 4", cfg.Import.WorkerCount)
	}
	if cfg.Import.SkipUpload {
		t.Error("import.skip_upload should be false")
	}

	if cfg.Log.Level != "debug" {
		t.Errorf("log.level = %q, want %q", cfg.Log.Level, "debug")
	}
	if cfg.Log.Format != "text" {
		t.Errorf("log.format = %q, want %q", cfg.Log.Format, "text")
	}
}

func TestLoad_ENVOverridesYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, validYAML)
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("BATCH_SIZE", "2000")
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Import.BatchSize != 2000 {
		t.Errorf("import.batch_size = %d, want 2000 (ENV override)", cfg.Import.BatchSize)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("log.level = %q, want %q (ENV override)", cfg.Log.Level, "warn")
	}
}

func TestLoad_NoFile_ENVOnly(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("MEILI_URL", "http://localhost:7700")

	origDir, _ := os.Getwd()
	t.Cleanup(func() { _ = os.Chdir(origDir) })
	_ = os.Chdir(t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Meili.Index != "words" {
		t.Errorf("meili.index = %q, want %q (default)", cfg.Meili.Index, "words")
	}
	if cfg.Import.BatchSize != 1000 {
		t.Errorf("import.batch_size = %d, want 1000 (default)", cfg.Import.BatchSize)
	}
}

func TestLoad_ExplicitPathNotFound(t *testing.T) {
	t.Setenv("CONFIG_PATH", "/nonexistent/config.yaml")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for missing explicit config path")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, `{{{invalid yaml`)
	t.Setenv("CONFIG_PATH", path)

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for invalid YAML")
	}
}

func TestValidate_MissingMeiliURL(t *testing.T) {
	cfg := validConfig()
	cfg.Meili.URL = ""

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for empty meili.url")
	}
}

func TestValidate_MissingIndex(t *testing.T) {
	cfg := validConfig()
	cfg.Meili.Index = ""

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for empty meili.index")
	}
}

func TestValidate_MissingIndexAllowedWhenSkippingUpload(t *testing.T) {
	cfg := validConfig()
	cfg.Meili.Index = ""
	cfg.Import.SkipUpload = true

	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error when skip_upload is set: %v", err)
	}
}

func TestValidate_BatchSizeZero(t *testing.T) {
	cfg := validConfig()
	cfg.Import.BatchSize = 0

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for BatchSize = 0")
	}
}

func TestValidate_BatchSizeNegative(t *testing.T) {
	cfg := validConfig()
	cfg.Import.BatchSize = -1

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for negative BatchSize")
	}
}

func TestValidate_WorkerCountNegative(t *testing.T) {
	cfg := validConfig()
	cfg.Import.WorkerCount = -1

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for negative WorkerCount")
	}
}

func TestValidate_WorkerCountZeroAllowed(t *testing.T) {
	cfg := validConfig()
	cfg.Import.WorkerCount = 0

	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error for WorkerCount = 0 (auto): %v", err)
	}
}

// validConfig returns a Config that passes all validation checks.
func validConfig() Config {
	return Config{
		Meili: MeiliConfig{
			URL:   "http://localhost:7700",
			Index: "words",
		},
		Import: ImporterConfig{
			BatchSize:   1000,
			WorkerCount: 0,
		},
	}
}
