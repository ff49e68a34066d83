package internal

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Storage != StorageFile || cfg.Currency != "JPY" || cfg.LogLevel != "warn" {
		t.Errorf("defaults = %+v", cfg)
	}
	if cfg.DataDir == "" {
		t.Error("DataDir should default to a directory under the config dir")
	}
	if cfg.Windows() != DefaultNotifyWindows {
		t.Errorf("Windows() = %+v, want defaults", cfg.Windows())
	}
	if got := cfg.Classifier().Classify("Netflix"); got != CategoryEntertainment {
		t.Errorf("Classify(Netflix) = %q", got)
	}
}

func TestLoadConfig_File(t *testing.T) {
	path := writeConfig(t, `
data_dir: /tmp/subtrack
storage: sqlite
currency: usd
log_level: debug
notify_days:
  soon: 3
  upcoming: 14
categories:
  - category: entertainment
    keywords: [Spotify]
  - category: cloud-storage
    keywords: [backblaze]
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.DataDir != "/tmp/subtrack" || cfg.Storage != StorageSQLite || cfg.LogLevel != "debug" {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.Windows() != (NotifyWindows{Soon: 3, Upcoming: 14}) {
		t.Errorf("Windows() = %+v", cfg.Windows())
	}

	classifier := cfg.Classifier()
	tests := map[string]Category{
		"Spotify":      CategoryEntertainment, // user rule evaluated before the defaults
		"Backblaze B2": CategoryCloudStorage,
		"Netflix":      CategoryEntertainment,
		"Notion":       CategoryProductivity,
	}
	for name, want := range tests {
		if got := classifier.Classify(name); got != want {
			t.Errorf("Classify(%q) = %q, want %q", name, got, want)
		}
	}
}

func TestLoadConfig_DisableDefaultCategories(t *testing.T) {
	path := writeConfig(t, "use_default_categories: false\n")
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := cfg.Classifier().Classify("Netflix"); got != CategoryOther {
		t.Errorf("Classify(Netflix) = %q, want other", got)
	}
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	path := writeConfig(t, "storage: sqlite\ncurrency: EUR\n")
	t.Setenv("SUBTRACK_STORAGE", "memory")
	t.Setenv("SUBTRACK_DATA_DIR", "/tmp/from-env")
	t.Setenv("SUBTRACK_LOG_LEVEL", "debug")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Storage != StorageMemory {
		t.Errorf("Storage = %q, want memory", cfg.Storage)
	}
	if cfg.DataDir != "/tmp/from-env" {
		t.Errorf("DataDir = %q", cfg.DataDir)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
	if cfg.Currency != "EUR" {
		t.Errorf("Currency = %q, want EUR from file", cfg.Currency)
	}
}

func TestLoadConfig_EnvOverridesWithoutFile(t *testing.T) {
	t.Setenv("SUBTRACK_CURRENCY", "USD")
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Currency != "USD" || cfg.Storage != StorageFile {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestLoadConfig_InvalidEnvOverride(t *testing.T) {
	t.Setenv("SUBTRACK_STORAGE", "postgres")
	if _, err := LoadConfig(writeConfig(t, "storage: sqlite\n")); err == nil {
		t.Error("expected the environment value to be validated")
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad yaml", "storage: [unclosed"},
		{"unknown storage", "storage: postgres"},
		{"unknown log level", "log_level: loud"},
		{"zero window", "notify_days:\n  soon: 0\n  upcoming: 30\n"},
		{"soon after upcoming", "notify_days:\n  soon: 40\n  upcoming: 30\n"},
		{"unknown category", "categories:\n  - category: gaming\n    keywords: [steam]\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadConfig(writeConfig(t, tt.content)); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestConfig_SaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := NewDefaultConfig()
	cfg.Storage = StorageSQLite
	cfg.NotifyDays = &NotifyWindows{Soon: 5, Upcoming: 20}

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if loaded.Storage != StorageSQLite || loaded.Windows() != (NotifyWindows{Soon: 5, Upcoming: 20}) {
		t.Errorf("loaded = %+v", loaded)
	}
}

func TestNewDefaultConfig_Classifier(t *testing.T) {
	// Not validated, so the built-in table is used
	if got := NewDefaultConfig().Classifier().Classify("Dropbox"); got != CategoryCloudStorage {
		t.Errorf("Classify(Dropbox) = %q", got)
	}
}
