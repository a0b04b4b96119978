package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for slidergraph.
type Config struct {
	Translate TranslateConfig `yaml:"translate"`
	Layout    LayoutConfig    `yaml:"layout"`
	Output    OutputConfig    `yaml:"output"`
	Generate  GenerateConfig  `yaml:"generate"`
	Cache     CacheConfig     `yaml:"cache"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// TranslateConfig holds the translator settings.
type TranslateConfig struct {
	SourceIndent string `yaml:"source_indent"`
	TargetIndent string `yaml:"target_indent"`
	Keyword      string `yaml:"keyword"` // "-" emits bare assignments
}

// LayoutConfig holds the default graph layout, before any log transform.
type LayoutConfig struct {
	XMin       float64 `yaml:"xmin"`
	XMax       float64 `yaml:"xmax"`
	YMin       float64 `yaml:"ymin"`
	YMax       float64 `yaml:"ymax"`
	VMin       float64 `yaml:"vmin"`
	VMax       float64 `yaml:"vmax"`
	XLabel     string  `yaml:"x_label"`
	YLabel     string  `yaml:"y_label"`
	StartPoint int     `yaml:"start_point"`
	SampleSize int     `yaml:"sample_size"`
	Scale      string  `yaml:"scale"` // "linear" or "log"
}

// OutputConfig holds descriptor formatting.
type OutputConfig struct {
	BeginMarker string `yaml:"begin_marker"`
	EndMarker   string `yaml:"end_marker"`
	BlockIndent string `yaml:"block_indent"`
	Precision   int    `yaml:"precision"`
}

// GenerateConfig holds batch generation settings.
type GenerateConfig struct {
	Includes  []string `yaml:"includes"`
	Excludes  []string `yaml:"excludes"`
	Variable  string   `yaml:"variable"`  // default: first signature argument
	Parameter string   `yaml:"parameter"` // default: second signature argument
}

// CacheConfig holds the translation cache size.
type CacheConfig struct {
	Size int `yaml:"size"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Translate: TranslateConfig{
			SourceIndent: "    ",
			TargetIndent: "    ",
			Keyword:      "var",
		},
		Layout: LayoutConfig{
			XMin:       -1,
			XMax:       1,
			YMin:       -1,
			YMax:       1,
			VMin:       -1e10,
			VMax:       1e10,
			XLabel:     "x",
			YLabel:     "y",
			StartPoint: 0,
			SampleSize: 300,
			Scale:      "linear",
		},
		Output: OutputConfig{
			BeginMarker: "SliderGraph({\n",
			EndMarker:   "});",
			BlockIndent: "    ",
			Precision:   6,
		},
		Generate: GenerateConfig{
			Includes: []string{"**/*.py"},
			Excludes: []string{"**/__pycache__/**", "**/.venv/**", "**/venv/**", "**/.git/**", "**/site-packages/**"},
		},
		Cache: CacheConfig{
			Size: 256,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Return defaults if no config file
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return cfg, nil
}

// LoadFromDir loads configuration from a directory (looks for slidergraph.yaml).
func LoadFromDir(dir string) (*Config, error) {
	path := filepath.Join(dir, "slidergraph.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	path = filepath.Join(dir, ".slidergraph", "config.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	return DefaultConfig(), nil
}

// ApplyEnv loads .env from dir if present, then applies SLIDERGRAPH_*
// overrides on top of the file configuration.
func (c *Config) ApplyEnv(dir string) error {
	envPath := filepath.Join(dir, ".env")
	if _, err := os.Stat(envPath); err == nil {
		if err := godotenv.Load(envPath); err != nil {
			return fmt.Errorf("load %s: %w", envPath, err)
		}
	}

	if v := strings.TrimSpace(os.Getenv("SLIDERGRAPH_LOG_LEVEL")); v != "" {
		c.Logging.Level = v
	}
	if v := strings.TrimSpace(os.Getenv("SLIDERGRAPH_PRECISION")); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("SLIDERGRAPH_PRECISION: %w", err)
		}
		c.Output.Precision = p
	}
	if v := os.Getenv("SLIDERGRAPH_BEGIN_MARKER"); v != "" {
		c.Output.BeginMarker = v
	}
	if v := os.Getenv("SLIDERGRAPH_END_MARKER"); v != "" {
		c.Output.EndMarker = v
	}
	return nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// SlogLevel maps Logging.Level to a slog level; unknown values mean info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.Logging.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// StoreDBPath returns the path to the descriptor database.
func StoreDBPath(dir string) string {
	return filepath.Join(dir, ".slidergraph", "descriptors.db")
}

// EnsureStoreDir ensures the .slidergraph directory exists.
func EnsureStoreDir(dir string) error {
	return os.MkdirAll(filepath.Join(dir, ".slidergraph"), 0755)
}
