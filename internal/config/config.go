// Package config loads the docbench run configuration from YAML with
// environment variable expansion.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kailas-cloud/docbench/internal/domain"
)

// Config holds the benchmark harness configuration. It is read once at
// startup and immutable for the run.
type Config struct {
	Postgres PostgresConfig `yaml:"postgres"`
	Elastic  ElasticConfig  `yaml:"elastic"`
	Corpus   CorpusConfig   `yaml:"corpus"`
	Bench    BenchConfig    `yaml:"bench"`
	Metrics  MetricsConfig  `yaml:"metrics"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// PostgresConfig holds relational engine connection settings.
type PostgresConfig struct {
	URL             string `yaml:"url"`
	Table           string `yaml:"table"`
	PingIntervalSec int    `yaml:"ping_interval_sec"`
}

// ElasticConfig holds search engine connection settings.
type ElasticConfig struct {
	URL   string `yaml:"url"`
	Index string `yaml:"index"`
}

// CorpusConfig holds synthetic corpus settings. A zero seed means a
// random seed per run.
type CorpusConfig struct {
	Size int   `yaml:"size"`
	Seed int64 `yaml:"seed"`
}

// BenchConfig holds load and query benchmark settings.
type BenchConfig struct {
	BatchSize int `yaml:"batch_size"`
	// ResultLimit caps materialized results per query; wide mode raises
	// it to 100.
	ResultLimit int  `yaml:"result_limit"`
	Wide        bool `yaml:"wide"`
}

// MetricsConfig holds the optional Prometheus listener settings. An
// empty address disables the listener.
type MetricsConfig struct {
	Addr string `yaml:"addr"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("%w: read config %s: %v", domain.ErrConfig, configPath, err)
	}

	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: parse config: %v", domain.ErrConfig, err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.Postgres.Table == "" {
		c.Postgres.Table = "documents_jsonb"
	}
	if c.Postgres.PingIntervalSec <= 0 {
		c.Postgres.PingIntervalSec = 15
	}
	if c.Elastic.Index == "" {
		c.Elastic.Index = "documents_jsonb"
	}
	if c.Corpus.Size <= 0 {
		c.Corpus.Size = 100_000
	}
	if c.Bench.BatchSize <= 0 {
		c.Bench.BatchSize = 1000
	}
	if c.Bench.ResultLimit <= 0 {
		c.Bench.ResultLimit = 10
	}
	if c.Bench.Wide {
		c.Bench.ResultLimit = 100
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.Postgres.URL == "" {
		return fmt.Errorf("%w: postgres.url is required", domain.ErrConfig)
	}
	if c.Elastic.URL == "" {
		return fmt.Errorf("%w: elastic.url is required", domain.ErrConfig)
	}
	if !strings.HasPrefix(c.Elastic.URL, "http://") && !strings.HasPrefix(c.Elastic.URL, "https://") {
		return fmt.Errorf("%w: elastic.url must be an http(s) URL, got %q", domain.ErrConfig, c.Elastic.URL)
	}
	if c.Bench.ResultLimit > 10_000 {
		return fmt.Errorf("%w: bench.result_limit must be at most 10000, got %d", domain.ErrConfig, c.Bench.ResultLimit)
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
