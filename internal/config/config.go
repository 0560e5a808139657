// Package config handles configuration loading and management for
// hoopscout. It supports XDG config paths, project-level overrides,
// and environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for hoopscout.
type Config struct {
	Anthropic AnthropicConfig `mapstructure:"anthropic"`
	Crew      CrewConfig      `mapstructure:"crew"`
	Output    OutputConfig    `mapstructure:"output"`
	Roster    RosterConfig    `mapstructure:"roster"`
}

// AnthropicConfig holds Anthropic API settings.
type AnthropicConfig struct {
	// APIKey is the Anthropic API key; ${VAR} references are expanded.
	APIKey string `mapstructure:"api_key"`
	// Model is the model identifier used for every agent unless an
	// agent override names another one.
	Model string `mapstructure:"model"`
	// UseBedrock switches the transport to AWS Bedrock.
	UseBedrock bool `mapstructure:"use_bedrock"`
	// AWSRegion is the Bedrock region (e.g. "us-west-2").
	AWSRegion string `mapstructure:"aws_region"`
	// AWSProfile is the optional AWS profile name.
	AWSProfile string `mapstructure:"aws_profile"`
	// InputCostPerMTok and OutputCostPerMTok are the USD rates per
	// million tokens behind the run's cost estimate.
	InputCostPerMTok  float64 `mapstructure:"input_cost_per_mtok"`
	OutputCostPerMTok float64 `mapstructure:"output_cost_per_mtok"`
}

// CrewConfig holds crew execution settings.
type CrewConfig struct {
	// MaxIterations caps execution attempts per task, overriding the
	// roster default when greater than zero.
	MaxIterations int `mapstructure:"max_iterations"`
	// TaskTimeout bounds a single task attempt.
	TaskTimeout time.Duration `mapstructure:"task_timeout"`
	// RetryBackoff is the base delay between failed attempts.
	RetryBackoff time.Duration `mapstructure:"retry_backoff"`
}

// OutputConfig holds output location settings.
type OutputConfig struct {
	// Dir is where log captures, reports and signal files live.
	Dir string `mapstructure:"dir"`
}

// RosterConfig holds roster customization settings.
type RosterConfig struct {
	// Overrides is an optional YAML file replacing agent/task text.
	Overrides string `mapstructure:"overrides"`
}

// Load loads configuration from XDG paths, project overrides, and
// environment variables.
// Precedence (highest to lowest):
// 1. Environment variables (ANTHROPIC_API_KEY, HOOPSCOUT_*)
// 2. Project config (.hoopscout.yaml in current directory or parent)
// 3. User config (~/.config/hoopscout/config.yaml)
// 4. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	userConfigDir := getUserConfigDir()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(userConfigDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading user config: %w", err)
		}
	}

	projectConfig := findProjectConfig()
	if projectConfig != "" {
		projectViper := viper.New()
		projectViper.SetConfigFile(projectConfig)
		if err := projectViper.ReadInConfig(); err == nil {
			if err := v.MergeConfigMap(projectViper.AllSettings()); err != nil {
				return nil, fmt.Errorf("merging project config: %w", err)
			}
		}
	}

	v.AutomaticEnv()
	v.SetEnvPrefix("HOOPSCOUT")

	v.BindEnv("anthropic.api_key", "ANTHROPIC_API_KEY")
	v.BindEnv("anthropic.model", "HOOPSCOUT_MODEL")
	v.BindEnv("output.dir", "HOOPSCOUT_OUTPUT_DIR")

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	cfg.Anthropic.APIKey = os.ExpandEnv(cfg.Anthropic.APIKey)

	return cfg, nil
}

// LoadFromPath loads configuration from a specific path (for testing).
func LoadFromPath(path string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config from %s: %w", path, err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	cfg.Anthropic.APIKey = os.ExpandEnv(cfg.Anthropic.APIKey)

	return cfg, nil
}

// GetUserConfigPath returns the path to the user config file.
func GetUserConfigPath() string {
	return filepath.Join(getUserConfigDir(), "config.yaml")
}

// GetProjectConfigPath returns the path to the project config file if it exists.
func GetProjectConfigPath() string {
	return findProjectConfig()
}

// Default model and pricing (Sonnet rates). A config file or env var
// overrides both.
const (
	defaultModel             = "claude-sonnet-4-5-20250929"
	defaultInputCostPerMTok  = 3.0
	defaultOutputCostPerMTok = 15.0
)

// setDefaults configures default values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("anthropic.api_key", "")
	v.SetDefault("anthropic.model", defaultModel)
	v.SetDefault("anthropic.use_bedrock", false)
	v.SetDefault("anthropic.aws_region", "")
	v.SetDefault("anthropic.aws_profile", "")
	v.SetDefault("anthropic.input_cost_per_mtok", defaultInputCostPerMTok)
	v.SetDefault("anthropic.output_cost_per_mtok", defaultOutputCostPerMTok)

	v.SetDefault("crew.max_iterations", 0)
	v.SetDefault("crew.task_timeout", "10m")
	v.SetDefault("crew.retry_backoff", "2s")

	v.SetDefault("output.dir", "research")
	v.SetDefault("roster.overrides", "")
}

// getUserConfigDir returns the XDG config directory for hoopscout.
func getUserConfigDir() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "hoopscout")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".config", "hoopscout")
	}
	return filepath.Join(home, ".config", "hoopscout")
}

// findProjectConfig searches for .hoopscout.yaml in the current
// directory and parents.
func findProjectConfig() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		configPath := filepath.Join(cwd, ".hoopscout.yaml")
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}

		parent := filepath.Dir(cwd)
		if parent == cwd {
			break
		}
		cwd = parent
	}

	return ""
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Anthropic: AnthropicConfig{
			Model:             defaultModel,
			InputCostPerMTok:  defaultInputCostPerMTok,
			OutputCostPerMTok: defaultOutputCostPerMTok,
		},
		Crew: CrewConfig{
			TaskTimeout:  10 * time.Minute,
			RetryBackoff: 2 * time.Second,
		},
		Output: OutputConfig{
			Dir: "research",
		},
	}
}
