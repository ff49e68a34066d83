package internal

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ilyakaznacheev/cleanenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	// DataDir holds the stored records (defaults to ~/.subscription-tracker/data)
	DataDir string `yaml:"data_dir,omitempty" env:"SUBTRACK_DATA_DIR" env-upd:""`

	// Storage selects the backend: file, sqlite or memory
	Storage StorageKind `yaml:"storage,omitempty" env:"SUBTRACK_STORAGE" env-upd:""`

	// Currency is the display currency code; amounts are never converted
	Currency string `yaml:"currency,omitempty" env:"SUBTRACK_CURRENCY" env-upd:""`

	// LogLevel is one of debug, info, warn, error
	LogLevel string `yaml:"log_level,omitempty" env:"SUBTRACK_LOG_LEVEL" env-upd:""`

	// Categories are extra keyword rules, evaluated before the defaults
	Categories []CategoryRule `yaml:"categories,omitempty"`

	// UseDefaultCategories controls whether the built-in keyword table is used.
	// Defaults to true.
	UseDefaultCategories *bool `yaml:"use_default_categories,omitempty"`

	// NotifyDays overrides the billing reminder windows
	NotifyDays *NotifyWindows `yaml:"notify_days,omitempty"`

	classifier *RuleClassifier `yaml:"-"`
}

// DefaultConfigDir returns ~/.subscription-tracker
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".subscription-tracker"
	}
	return filepath.Join(home, ".subscription-tracker")
}

// DefaultConfigPath returns ~/.subscription-tracker/config.yaml
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.yaml")
}

// NewDefaultConfig returns a config with every field at its default.
// Use this when no config file exists.
func NewDefaultConfig() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// LoadConfig reads the YAML file at path and applies SUBTRACK_* environment
// overrides. A missing file yields the defaults (plus overrides).
func LoadConfig(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// defaults only
	case err != nil:
		return nil, fmt.Errorf("reading config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cleanenv.UpdateEnv(&cfg); err != nil {
		return nil, fmt.Errorf("reading environment overrides: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.DataDir == "" {
		c.DataDir = filepath.Join(DefaultConfigDir(), "data")
	}
	if c.Storage == "" {
		c.Storage = StorageFile
	}
	if c.Currency == "" {
		c.Currency = "JPY"
	}
	if c.LogLevel == "" {
		c.LogLevel = "warn"
	}
}

// Validate checks enumerated fields and compiles the category rules
func (c *Config) Validate() error {
	valid := false
	for _, k := range StorageKinds {
		if c.Storage == k {
			valid = true
		}
	}
	if !valid {
		return fmt.Errorf("invalid storage %q (available: %v)", c.Storage, StorageKinds)
	}

	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level: %w", err)
	}

	if c.NotifyDays != nil {
		w := *c.NotifyDays
		if w.Soon <= 0 || w.Upcoming <= 0 {
			return fmt.Errorf("invalid notify_days: windows must be positive")
		}
		if w.Soon > w.Upcoming {
			return fmt.Errorf("invalid notify_days: soon (%d) must not exceed upcoming (%d)", w.Soon, w.Upcoming)
		}
	}

	rules := make([]CategoryRule, 0, len(c.Categories)+len(DefaultCategoryRules))
	rules = append(rules, c.Categories...)
	if c.UseDefaultCategories == nil || *c.UseDefaultCategories {
		rules = append(rules, DefaultCategoryRules...)
	}
	classifier, err := NewRuleClassifier(rules)
	if err != nil {
		return err
	}
	c.classifier = classifier
	return nil
}

// Classifier returns the compiled category table (user rules first)
func (c *Config) Classifier() Classifier {
	if c == nil || c.classifier == nil {
		return DefaultClassifier()
	}
	return c.classifier
}

// Windows returns the configured reminder windows
func (c *Config) Windows() NotifyWindows {
	if c == nil || c.NotifyDays == nil {
		return DefaultNotifyWindows
	}
	return *c.NotifyDays
}

func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	// Create parent directories if they don't exist
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
