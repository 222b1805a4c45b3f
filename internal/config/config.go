package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hexlab-tools/hexvalidate/internal/constants"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Default scheduler settings
const (
	// DefaultMaxWorkers caps stage parallelism when nothing is configured.
	// The scheduler additionally clamps to the hard ceiling of 8.
	DefaultMaxWorkers = 4
)

// Default e2e settings
const (
	// DefaultE2EMode keeps end-to-end checks off unless requested
	DefaultE2EMode = "off"
)

// Config is the serializable configuration discovered next to the
// target repository. Stage check lists reference checks by registry id;
// the service layer resolves them into constructed values.
type Config struct {
	// E2E controls end-to-end checks: auto, always, or off
	E2E string `json:"e2e" mapstructure:"e2e" yaml:"e2e"`

	// Reporters lists default reporter names: summary, json, junit
	Reporters []string `json:"reporters" mapstructure:"reporters" yaml:"reporters"`

	// MaxWorkers caps parallel stage workers
	MaxWorkers int `json:"maxWorkers" mapstructure:"max_workers" yaml:"max_workers"`

	// Stages holds the pipeline in execution order
	Stages []StageConfig `json:"stages" mapstructure:"stages" yaml:"stages"`

	// Checks holds per-check options
	Checks ChecksConfig `json:"checks" mapstructure:"checks" yaml:"checks"`
}

// StageConfig describes one pipeline stage
type StageConfig struct {
	// Name is the stage display name
	Name string `json:"name" mapstructure:"name" yaml:"name"`

	// Parallel runs the stage's checks concurrently
	Parallel bool `json:"parallel" mapstructure:"parallel" yaml:"parallel"`

	// FailOnWarn aborts the pipeline when any check in the stage warns
	FailOnWarn bool `json:"failOnWarn" mapstructure:"fail_on_warn" yaml:"fail_on_warn"`

	// Checks lists registry ids in declaration order
	Checks []string `json:"checks" mapstructure:"checks" yaml:"checks"`
}

// ChecksConfig holds options for the built-in checks
type ChecksConfig struct {
	// Linter configures the external linter check
	Linter LinterConfig `json:"linter" mapstructure:"linter" yaml:"linter"`

	// E2E configures the end-to-end gate
	E2E E2ECommandConfig `json:"e2e" mapstructure:"e2e" yaml:"e2e"`

	// Hygiene configures the debug statement check
	Hygiene HygieneConfig `json:"hygiene" mapstructure:"hygiene" yaml:"hygiene"`
}

// LinterConfig configures the external linter check
type LinterConfig struct {
	// Command is the linter executable probed before use
	Command string `json:"command" mapstructure:"command" yaml:"command"`

	// Args are passed to the linter before the file list
	Args []string `json:"args" mapstructure:"args" yaml:"args"`
}

// E2ECommandConfig configures the end-to-end gate
type E2ECommandConfig struct {
	// Command is the e2e suite executable
	Command string `json:"command" mapstructure:"command" yaml:"command"`

	// Args are passed to the e2e command
	Args []string `json:"args" mapstructure:"args" yaml:"args"`
}

// HygieneConfig configures the debug statement check
type HygieneConfig struct {
	// AllowConsole lists console calls that are not flagged
	AllowConsole []string `json:"allowConsole" mapstructure:"allow_console" yaml:"allow_console"`
}

// configFileCandidates lists config file names in order of preference
var configFileCandidates = []string{
	"hexvalidate.config.json",
	".hexvalidaterc",
	".hexvalidate.yaml",
	".hexvalidate.yml",
	".hexvalidate.toml",
	"hexvalidate.yaml",
	"hexvalidate.json",
}

// LoadConfig loads configuration from an explicit path
func LoadConfig(configPath string) (*Config, error) {
	if configPath == "" {
		return DefaultConfig(), nil
	}
	return loadConfigFromFile(configPath)
}

// LoadConfigWithTarget loads configuration, discovering a config file
// upward from targetPath when no explicit path is given. When nothing
// is found the compiled-in default is returned.
func LoadConfigWithTarget(configPath, targetPath string) (*Config, error) {
	if configPath != "" {
		return loadConfigFromFile(configPath)
	}
	if found := discoverConfigFile(targetPath); found != "" {
		return loadConfigFromFile(found)
	}
	return DefaultConfig(), nil
}

func loadConfigFromFile(configPath string) (*Config, error) {
	// Create a new viper instance to avoid race conditions
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetEnvPrefix(constants.EnvVarPrefix)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", configPath, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// discoverConfigFile walks upward from targetPath looking for a
// candidate config file
func discoverConfigFile(targetPath string) string {
	dir := targetPath
	if dir == "" {
		var err error
		dir, err = os.Getwd()
		if err != nil {
			return ""
		}
	}
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	if info, err := os.Stat(dir); err == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}

	for {
		for _, name := range configFileCandidates {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// Validate checks the configuration for structural errors
func (c *Config) Validate() error {
	switch c.E2E {
	case "auto", "always", "off":
	default:
		return fmt.Errorf("invalid e2e mode %q (want auto, always, or off)", c.E2E)
	}

	if c.MaxWorkers < 0 {
		return fmt.Errorf("max_workers must be >= 0, got %d", c.MaxWorkers)
	}

	for _, r := range c.Reporters {
		switch r {
		case "summary", "json", "junit":
		default:
			return fmt.Errorf("unknown reporter %q", r)
		}
	}

	seen := make(map[string]bool, len(c.Stages))
	for _, stage := range c.Stages {
		if stage.Name == "" {
			return fmt.Errorf("stage with empty name")
		}
		if seen[stage.Name] {
			return fmt.Errorf("duplicate stage name %q", stage.Name)
		}
		seen[stage.Name] = true
		if len(stage.Checks) == 0 {
			return fmt.Errorf("stage %q has no checks", stage.Name)
		}
	}
	return nil
}

// SaveConfig writes the configuration to path as YAML
func SaveConfig(config *Config, path string) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}
