package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	"ecomcli/pkg/contracts/domain"
)

// dateLayout is the format accepted for analysis window boundaries.
const dateLayout = "2006-01-02"

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig   `yaml:"server" envconfig:"SERVER"`
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
	Paths    PathsConfig    `yaml:"paths" envconfig:"PATHS"`
	Analysis AnalysisConfig `yaml:"analysis" envconfig:"ANALYSIS"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port            int           `yaml:"port" envconfig:"PORT" default:"8080" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT" default:"15s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT" default:"30s"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level" envconfig:"LEVEL" default:"info" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" envconfig:"FORMAT" default:"json" validate:"oneof=json text"`
	Output string `yaml:"output" envconfig:"OUTPUT" default:"stdout" validate:"oneof=stdout file both"`
	File   string `yaml:"file" envconfig:"FILE" default:"logs/ecomcli.log"`
}

// PathsConfig contains file system paths configuration
type PathsConfig struct {
	DataDir    string `yaml:"data_dir" envconfig:"DATA_DIR" default:"ecommerce_data" validate:"required"`
	ReportsDir string `yaml:"reports_dir" envconfig:"REPORTS_DIR" default:"reports" validate:"required"`
}

// AnalysisConfig selects the default current analysis period. Dates use the
// 2006-01-02 layout; the comparison period defaults to the adjacent window of
// equal length immediately before the current one.
type AnalysisConfig struct {
	WindowStart string `yaml:"window_start" envconfig:"WINDOW_START"`
	WindowEnd   string `yaml:"window_end" envconfig:"WINDOW_END"`
}

// Window parses the configured analysis period. A zero window is returned
// when no period is configured, meaning "all loaded data".
func (a AnalysisConfig) Window() (domain.DateWindow, error) {
	if a.WindowStart == "" && a.WindowEnd == "" {
		return domain.DateWindow{}, nil
	}
	start, err := time.Parse(dateLayout, a.WindowStart)
	if err != nil {
		return domain.DateWindow{}, fmt.Errorf("parse window_start: %w", err)
	}
	end, err := time.Parse(dateLayout, a.WindowEnd)
	if err != nil {
		return domain.DateWindow{}, fmt.Errorf("parse window_end: %w", err)
	}
	w := domain.DateWindow{Start: start, End: end}
	if err := w.Validate(); err != nil {
		return domain.DateWindow{}, err
	}
	return w, nil
}

// envPrefix namespaces every environment variable read by Load.
const envPrefix = "ECOM"

// Load loads configuration from environment variables and an optional YAML
// file. Environment variables take precedence over file values; defaults
// fill whatever neither source sets.
func Load() (*Config, error) {
	// envconfig applies every default tag for unset variables, so the
	// processed struct cannot be laid under the file values directly.
	// Merge field by field instead, keeping file values wherever the
	// corresponding variable is absent from the environment.
	var cfg Config
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	configFile := configFilePath()
	if _, err := os.Stat(configFile); err == nil {
		fileCfg, err := loadFromFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
		cfg = mergeConfigs(*fileCfg, cfg)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// envSet reports whether the prefixed environment variable is present.
func envSet(key string) bool {
	_, ok := os.LookupEnv(envPrefix + "_" + key)
	return ok
}

// mergeConfigs merges file config with env config. A field keeps its
// environment value only when the variable is actually set; otherwise a
// file value replaces the envconfig default.
func mergeConfigs(fileCfg, envCfg Config) Config {
	merged := envCfg

	if fileCfg.Server.Port != 0 && !envSet("SERVER_PORT") {
		merged.Server.Port = fileCfg.Server.Port
	}
	if fileCfg.Server.ReadTimeout != 0 && !envSet("SERVER_READ_TIMEOUT") {
		merged.Server.ReadTimeout = fileCfg.Server.ReadTimeout
	}
	if fileCfg.Server.WriteTimeout != 0 && !envSet("SERVER_WRITE_TIMEOUT") {
		merged.Server.WriteTimeout = fileCfg.Server.WriteTimeout
	}
	if fileCfg.Server.IdleTimeout != 0 && !envSet("SERVER_IDLE_TIMEOUT") {
		merged.Server.IdleTimeout = fileCfg.Server.IdleTimeout
	}
	if fileCfg.Server.ShutdownTimeout != 0 && !envSet("SERVER_SHUTDOWN_TIMEOUT") {
		merged.Server.ShutdownTimeout = fileCfg.Server.ShutdownTimeout
	}

	if fileCfg.Logging.Level != "" && !envSet("LOGGING_LEVEL") {
		merged.Logging.Level = fileCfg.Logging.Level
	}
	if fileCfg.Logging.Format != "" && !envSet("LOGGING_FORMAT") {
		merged.Logging.Format = fileCfg.Logging.Format
	}
	if fileCfg.Logging.Output != "" && !envSet("LOGGING_OUTPUT") {
		merged.Logging.Output = fileCfg.Logging.Output
	}
	if fileCfg.Logging.File != "" && !envSet("LOGGING_FILE") {
		merged.Logging.File = fileCfg.Logging.File
	}

	if fileCfg.Paths.DataDir != "" && !envSet("PATHS_DATA_DIR") {
		merged.Paths.DataDir = fileCfg.Paths.DataDir
	}
	if fileCfg.Paths.ReportsDir != "" && !envSet("PATHS_REPORTS_DIR") {
		merged.Paths.ReportsDir = fileCfg.Paths.ReportsDir
	}

	if fileCfg.Analysis.WindowStart != "" && !envSet("ANALYSIS_WINDOW_START") {
		merged.Analysis.WindowStart = fileCfg.Analysis.WindowStart
	}
	if fileCfg.Analysis.WindowEnd != "" && !envSet("ANALYSIS_WINDOW_END") {
		merged.Analysis.WindowEnd = fileCfg.Analysis.WindowEnd
	}

	return merged
}

// configFilePath returns the config file location, overridable via env.
func configFilePath() string {
	if path := os.Getenv("ECOM_CONFIG_FILE"); path != "" {
		return path
	}
	return "config.yaml"
}

// loadFromFile loads configuration from a YAML file
func loadFromFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks structural constraints and the analysis window.
func (c *Config) Validate() error {
	v := validator.New()
	if err := v.Struct(c); err != nil {
		return err
	}
	if _, err := c.Analysis.Window(); err != nil {
		return fmt.Errorf("invalid analysis window: %w", err)
	}
	return nil
}
