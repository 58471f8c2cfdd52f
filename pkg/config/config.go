package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/zpam/naive-classifier/pkg/classifier"
	"github.com/zpam/naive-classifier/pkg/dataset/redisstore"
	"github.com/zpam/naive-classifier/pkg/dataset/sqlstore"
	"github.com/zpam/naive-classifier/pkg/jeopardy"
	"gopkg.in/yaml.v3"
)

// Dataset sources
const (
	SourceFile   = "file"
	SourceRedis  = "redis"
	SourceSQLite = "sqlite"
)

// Config represents the classifier configuration
type Config struct {
	// Where questions come from
	Dataset DatasetConfig `yaml:"dataset"`

	// Label universe, in tie-break order
	Labels []string `yaml:"labels"`

	// Train/test evaluation settings
	Evaluation EvaluationConfig `yaml:"evaluation"`

	// Feature ranking settings
	Ranking RankingConfig `yaml:"ranking"`

	// Logging settings
	Logging LoggingConfig `yaml:"logging"`
}

// DatasetConfig selects and configures the question source
type DatasetConfig struct {
	Source string `yaml:"source"` // file, redis, sqlite
	Path   string `yaml:"path"`   // JSON file for the file source

	Redis  redisstore.Config `yaml:"redis"`
	SQLite sqlstore.Config   `yaml:"sqlite"`
}

// EvaluationConfig controls the train/test run
type EvaluationConfig struct {
	TrainRatio        float64 `yaml:"train_ratio"`
	Seed              int64   `yaml:"seed"`               // 0 = seed from the clock
	SamplePredictions int     `yaml:"sample_predictions"` // predictions printed before accuracy
	AccuracyLimit     int     `yaml:"accuracy_limit"`     // held-out sets scored, 0 = all
	MaxConcurrent     int     `yaml:"max_concurrent"`
}

// RankingConfig controls the informativeness report
type RankingConfig struct {
	TopN int `yaml:"top_n"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	File   string `yaml:"file"`   // log file path, empty = stderr
	Format string `yaml:"format"` // json, text
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	labels := make([]string, 0, len(jeopardy.Rounds()))
	for _, r := range jeopardy.Rounds() {
		labels = append(labels, string(r))
	}

	return &Config{
		Dataset: DatasetConfig{
			Source: SourceFile,
			Path:   "data/200k_questions.json",
			Redis:  *redisstore.DefaultConfig(),
			SQLite: *sqlstore.DefaultConfig(),
		},
		Labels: labels,
		Evaluation: EvaluationConfig{
			TrainRatio:        0.8,
			Seed:              0,
			SamplePredictions: 10,
			AccuracyLimit:     1000,
			MaxConcurrent:     4,
		},
		Ranking: RankingConfig{
			TopN: 10,
		},
		Logging: LoggingConfig{
			Level:  "info",
			File:   "",
			Format: "text",
		},
	}
}

// LoadConfig loads configuration from file
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if configPath == "" {
		return config, nil
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %v", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %v", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %v", err)
	}

	return config, nil
}

// SaveConfig saves configuration to file
func (c *Config) SaveConfig(configPath string) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %v", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %v", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %v", err)
	}

	return nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch c.Dataset.Source {
	case SourceFile:
		if c.Dataset.Path == "" {
			return fmt.Errorf("dataset path cannot be empty for the file source")
		}
	case SourceRedis:
		if c.Dataset.Redis.RedisURL == "" {
			return fmt.Errorf("dataset redis_url cannot be empty for the redis source")
		}
	case SourceSQLite:
		if c.Dataset.SQLite.Path == "" {
			return fmt.Errorf("dataset sqlite path cannot be empty for the sqlite source")
		}
	default:
		return fmt.Errorf("dataset source must be 'file', 'redis' or 'sqlite', got %q", c.Dataset.Source)
	}

	if _, err := c.Universe(); err != nil {
		return fmt.Errorf("labels: %v", err)
	}

	if c.Evaluation.TrainRatio <= 0 || c.Evaluation.TrainRatio >= 1 {
		return fmt.Errorf("train_ratio must be between 0 and 1")
	}
	if c.Evaluation.SamplePredictions < 0 {
		return fmt.Errorf("sample_predictions must be >= 0")
	}
	if c.Evaluation.AccuracyLimit < 0 {
		return fmt.Errorf("accuracy_limit must be >= 0")
	}
	if c.Evaluation.MaxConcurrent < 1 {
		return fmt.Errorf("max_concurrent must be >= 1")
	}

	if c.Ranking.TopN < 1 {
		return fmt.Errorf("top_n must be >= 1")
	}

	validLevel := false
	for _, level := range []string{"debug", "info", "warn", "error"} {
		if c.Logging.Level == level {
			validLevel = true
			break
		}
	}
	if !validLevel {
		return fmt.Errorf("invalid logging level: %s", c.Logging.Level)
	}
	if c.Logging.Format != "text" && c.Logging.Format != "json" {
		return fmt.Errorf("logging format must be 'text' or 'json'")
	}

	return nil
}

// Universe builds the label universe from Labels
func (c *Config) Universe() (*classifier.Universe[jeopardy.Round], error) {
	rounds := make([]jeopardy.Round, 0, len(c.Labels))
	for _, l := range c.Labels {
		rounds = append(rounds, jeopardy.Round(l))
	}
	return classifier.NewUniverse(rounds...)
}
