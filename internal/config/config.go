package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"framesense/internal/frame"
)

// Config is the root configuration structure
type Config struct {
	Palette    Palette          `yaml:"palette"`
	Classifier ClassifierConfig `yaml:"classifier"`
	Border     BorderConfig     `yaml:"border"`
	Scan       ScanConfig       `yaml:"scan"`
	Vector     VectorConfig     `yaml:"vector"`
	Tracker    TrackerConfig    `yaml:"tracker"`
	Batch      BatchConfig      `yaml:"batch"`
	Logging    LogConfig        `yaml:"logging"`
}

// Palette holds the reference colors of the rendered scene.
// Only the byte at Channel is compared when classifying.
type Palette struct {
	Channel int         `yaml:"channel"`
	Empty   frame.Color `yaml:"empty"`
	Wall    frame.Color `yaml:"wall"`
	Hostile frame.Color `yaml:"hostile"`
	Agent   frame.Color `yaml:"agent"`
	Portal  frame.Color `yaml:"portal"`
}

// ClassifierConfig defines how hostile pixels turn into an entity estimate
type ClassifierConfig struct {
	AvgPixelsPerHostile int `yaml:"avg_pixels_per_hostile"`
	MaxHostiles         int `yaml:"max_hostiles"`
}

// BorderConfig defines the gap repair rules of the outer wall
type BorderConfig struct {
	WallBreakMaxGap  int `yaml:"wall_break_max_gap"` // gaps shorter than this are re-sealed
	WallPatchWidth   int `yaml:"wall_patch_width"`
	PortalPatchWidth int `yaml:"portal_patch_width"`
}

// ScanConfig defines the ray origins sampled on the agent box
type ScanConfig struct {
	RowSamples int `yaml:"row_samples"` // points on left/right edges
	ColSamples int `yaml:"col_samples"` // points on top/bottom edges
}

// VectorConfig defines feature vector normalization
type VectorConfig struct {
	Epsilon float64 `yaml:"epsilon"`
}

// TrackerConfig defines the exploration mask size
type TrackerConfig struct {
	Height int `yaml:"height"`
	Width  int `yaml:"width"`
}

// BatchConfig defines offline extraction parameters
type BatchConfig struct {
	Workers int `yaml:"workers"` // 0 means runtime.NumCPU()
}

// LogConfig defines logging parameters
type LogConfig struct {
	Level    string `yaml:"level"`  // logrus level name
	Format   string `yaml:"format"` // text|json
	CSVPath  string `yaml:"csv_path"`
	JSONPath string `yaml:"json_path"`
}

// Load reads a YAML config file and returns a Config
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes YAML bytes, applies defaults and validates the result
func Parse(data []byte) (*Config, error) {
	cfg := newConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	applyDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the configuration matching the Berzerk palette
func Default() *Config {
	cfg := newConfig()
	applyDefaults(cfg)
	return cfg
}

// newConfig seeds the settings for which zero is a valid choice, so that
// only keys absent from the YAML keep the default
func newConfig() *Config {
	cfg := &Config{}
	cfg.Border.WallPatchWidth = 3
	return cfg
}

func applyDefaults(cfg *Config) {
	// An all-zero palette means the section was omitted; black stays the empty color.
	if cfg.Palette.Wall == (frame.Color{}) {
		cfg.Palette.Wall = frame.Color{84, 92, 214}
	}
	if cfg.Palette.Hostile == (frame.Color{}) {
		cfg.Palette.Hostile = frame.Color{210, 210, 64}
	}
	if cfg.Palette.Agent == (frame.Color{}) {
		cfg.Palette.Agent = frame.Color{240, 170, 103}
	}
	if cfg.Palette.Portal == (frame.Color{}) {
		cfg.Palette.Portal = frame.Color{74, 255, 56}
	}
	if cfg.Classifier.AvgPixelsPerHostile == 0 {
		cfg.Classifier.AvgPixelsPerHostile = 74
	}
	if cfg.Classifier.MaxHostiles == 0 {
		cfg.Classifier.MaxHostiles = 8
	}
	if cfg.Border.WallBreakMaxGap == 0 {
		cfg.Border.WallBreakMaxGap = 3
	}
	if cfg.Scan.RowSamples == 0 {
		cfg.Scan.RowSamples = 4
	}
	if cfg.Scan.ColSamples == 0 {
		cfg.Scan.ColSamples = 2
	}
	if cfg.Vector.Epsilon == 0 {
		cfg.Vector.Epsilon = 1e-3
	}
	if cfg.Tracker.Height == 0 {
		cfg.Tracker.Height = 210
	}
	if cfg.Tracker.Width == 0 {
		cfg.Tracker.Width = 160
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}
	if cfg.Logging.CSVPath == "" {
		cfg.Logging.CSVPath = "runs/coverage.csv"
	}
	if cfg.Logging.JSONPath == "" {
		cfg.Logging.JSONPath = "runs/coverage.jsonl"
	}
}

// Validate reports settings the pipeline cannot run with
func (c *Config) Validate() error {
	var errs []error
	if c.Palette.Channel < 0 || c.Palette.Channel > 2 {
		errs = append(errs, fmt.Errorf("palette.channel must be 0..2, got %d", c.Palette.Channel))
	}
	if c.Classifier.AvgPixelsPerHostile < 0 {
		errs = append(errs, fmt.Errorf("classifier.avg_pixels_per_hostile must be positive, got %d", c.Classifier.AvgPixelsPerHostile))
	}
	if c.Classifier.MaxHostiles < 0 {
		errs = append(errs, fmt.Errorf("classifier.max_hostiles must be positive, got %d", c.Classifier.MaxHostiles))
	}
	if c.Border.WallBreakMaxGap < 2 {
		errs = append(errs, fmt.Errorf("border.wall_break_max_gap must be at least 2, got %d", c.Border.WallBreakMaxGap))
	}
	if c.Border.WallPatchWidth < 0 || c.Border.PortalPatchWidth < 0 {
		errs = append(errs, errors.New("border patch widths must not be negative"))
	}
	if c.Scan.RowSamples < 1 || c.Scan.ColSamples < 1 {
		errs = append(errs, fmt.Errorf("scan samples must be at least 1, got rows=%d cols=%d", c.Scan.RowSamples, c.Scan.ColSamples))
	}
	if c.Vector.Epsilon <= 0 {
		errs = append(errs, fmt.Errorf("vector.epsilon must be positive, got %g", c.Vector.Epsilon))
	}
	if c.Tracker.Height < 0 || c.Tracker.Width < 0 {
		errs = append(errs, errors.New("tracker dimensions must not be negative"))
	}
	if c.Batch.Workers < 0 {
		errs = append(errs, fmt.Errorf("batch.workers must not be negative, got %d", c.Batch.Workers))
	}
	switch strings.ToLower(c.Logging.Format) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("logging.format must be text or json, got %q", c.Logging.Format))
	}
	return errors.Join(errs...)
}
