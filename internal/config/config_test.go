package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadIncludesExtractionDefaults(t *testing.T) {
	t.Setenv("NATS_SUBJECT", "")
	t.Setenv("GEMINI_MODEL", "")
	t.Setenv("PAGE_DELAY_MS", "")
	t.Setenv("ROW_TOLERANCE", "")
	t.Setenv("COLUMN_TOLERANCE", "")

	cfg := Load()
	if cfg.NATSSubject != "statements.extract" {
		t.Fatalf("expected default nats subject, got %q", cfg.NATSSubject)
	}
	if cfg.GeminiModel != "gemini-2.0-flash" {
		t.Fatalf("expected default gemini model, got %q", cfg.GeminiModel)
	}
	if cfg.PageDelayMs != 250 {
		t.Fatalf("expected default page delay 250, got %d", cfg.PageDelayMs)
	}
	if cfg.RowTolerance != 5 {
		t.Fatalf("expected default row tolerance 5, got %v", cfg.RowTolerance)
	}
	if cfg.ColumnTolerance != 15 {
		t.Fatalf("expected default column tolerance 15, got %v", cfg.ColumnTolerance)
	}
}

func TestLoadParsesOverrides(t *testing.T) {
	t.Setenv("NATS_SUBJECT", "statements.test")
	t.Setenv("PAGE_TIMEOUT_SECONDS", "45")
	t.Setenv("ROW_TOLERANCE", "7.5")
	t.Setenv("COLUMN_TOLERANCE", "not-a-number")

	cfg := Load()
	if cfg.NATSSubject != "statements.test" {
		t.Fatalf("expected nats subject override, got %q", cfg.NATSSubject)
	}
	if cfg.PageTimeoutSeconds != 45 {
		t.Fatalf("expected page timeout 45, got %d", cfg.PageTimeoutSeconds)
	}
	if cfg.RowTolerance != 7.5 {
		t.Fatalf("expected row tolerance 7.5, got %v", cfg.RowTolerance)
	}
	if cfg.ColumnTolerance != 15 {
		t.Fatalf("expected unparsable column tolerance to fall back to 15, got %v", cfg.ColumnTolerance)
	}
}

func TestLoadCategories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "categories.yaml")
	raw := "categories:\n  - Food\n  - Income\n  - Food\n  - \"\"\n  - Transport\n"
	if err := os.WriteFile(path, []byte(raw), 0o600); err != nil {
		t.Fatalf("write categories file: %v", err)
	}

	got, err := LoadCategories(path)
	if err != nil {
		t.Fatalf("load categories: %v", err)
	}
	want := []string{"Food", "Income", "Transport"}
	if len(got) != len(want) {
		t.Fatalf("expected %d categories, got %v", len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected category %q at %d, got %q", want[i], i, got[i])
		}
	}
}

func TestLoadCategoriesEmptyPath(t *testing.T) {
	got, err := LoadCategories("")
	if err != nil {
		t.Fatalf("expected no error for empty path, got %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil categories, got %v", got)
	}
}

func TestLoadCategoriesMissingFile(t *testing.T) {
	_, err := LoadCategories(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}
