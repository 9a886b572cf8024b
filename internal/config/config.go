package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/mitchelldurbincs/WildfireReinforcementLearning/internal/sim"
	"github.com/mitchelldurbincs/WildfireReinforcementLearning/internal/sim/aircraft"
	"github.com/mitchelldurbincs/WildfireReinforcementLearning/internal/sim/core"
	"github.com/mitchelldurbincs/WildfireReinforcementLearning/internal/sim/fire"
)

// Config holds all configuration for the application
type Config struct {
	Sim     SimConfig     `mapstructure:"sim" yaml:"sim"`
	Fire    FireConfig    `mapstructure:"fire" yaml:"fire"`
	Wind    WindConfig    `mapstructure:"wind" yaml:"wind"`
	Agent   AgentConfig   `mapstructure:"agent" yaml:"agent"`
	Reward  RewardConfig  `mapstructure:"reward" yaml:"reward"`
	Episode EpisodeConfig `mapstructure:"episode" yaml:"episode"`
	Runner  RunnerConfig  `mapstructure:"runner" yaml:"runner"`
	Server  ServerConfig  `mapstructure:"server" yaml:"server"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

type SimConfig struct {
	GridSize int   `mapstructure:"grid_size" yaml:"grid_size"`
	Seed     int64 `mapstructure:"seed" yaml:"seed"`
}

// FireConfig holds propagation settings
type FireConfig struct {
	BaseIgnition     float64 `mapstructure:"base_ignition" yaml:"base_ignition"`
	SuppressionDecay float64 `mapstructure:"suppression_decay" yaml:"suppression_decay"`
	BurnDuration     int     `mapstructure:"burn_duration" yaml:"burn_duration"`
	IgnitionRow      int     `mapstructure:"ignition_row" yaml:"ignition_row"`
	IgnitionCol      int     `mapstructure:"ignition_col" yaml:"ignition_col"`
	IgnitionRadius   int     `mapstructure:"ignition_radius" yaml:"ignition_radius"`
}

type WindConfig struct {
	Direction  string  `mapstructure:"direction" yaml:"direction"`
	Strength   float64 `mapstructure:"strength" yaml:"strength"`
	VeerChance float64 `mapstructure:"veer_chance" yaml:"veer_chance"`
}

// AgentConfig holds aircraft settings
type AgentConfig struct {
	PayloadCapacity float64 `mapstructure:"payload_capacity" yaml:"payload_capacity"`
	DropRate        float64 `mapstructure:"drop_rate" yaml:"drop_rate"`
	DropAmount      float64 `mapstructure:"drop_amount" yaml:"drop_amount"`
	MaxSuppression  float64 `mapstructure:"max_suppression" yaml:"max_suppression"`
	AirportRow      int     `mapstructure:"airport_row" yaml:"airport_row"`
	AirportCol      int     `mapstructure:"airport_col" yaml:"airport_col"`
	InitialHeading  string  `mapstructure:"initial_heading" yaml:"initial_heading"`
}

type RewardConfig struct {
	PerTick           float64 `mapstructure:"per_tick" yaml:"per_tick"`
	BurnedCellPenalty float64 `mapstructure:"burned_cell_penalty" yaml:"burned_cell_penalty"`
}

// EpisodeConfig holds episode loop settings
type EpisodeConfig struct {
	RecordFrames        bool `mapstructure:"record_frames" yaml:"record_frames"`
	DiagnosticsInterval int  `mapstructure:"diagnostics_interval" yaml:"diagnostics_interval"`
	MaxTicks            int  `mapstructure:"max_ticks" yaml:"max_ticks"`
}

// RunnerConfig holds batch runner settings
type RunnerConfig struct {
	Episodes       int    `mapstructure:"episodes" yaml:"episodes"`
	Workers        int    `mapstructure:"workers" yaml:"workers"`
	Policy         string `mapstructure:"policy" yaml:"policy"`
	BufferCapacity int    `mapstructure:"buffer_capacity" yaml:"buffer_capacity"`
}

// ServerConfig holds gRPC server configuration
type ServerConfig struct {
	Host                  string `mapstructure:"host" yaml:"host"`
	Port                  int    `mapstructure:"port" yaml:"port"`
	EnableReflection      bool   `mapstructure:"enable_reflection" yaml:"enable_reflection"`
	GracefulShutdownDelay int    `mapstructure:"graceful_shutdown_delay" yaml:"graceful_shutdown_delay"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

var (
	// Global config instance
	cfg *Config
	v   *viper.Viper
)

// setViperDefaults sets all default values using Viper's SetDefault
func setViperDefaults(v *viper.Viper) {
	v.SetDefault("sim.grid_size", 50)
	v.SetDefault("sim.seed", 0)

	// Fire defaults
	v.SetDefault("fire.base_ignition", 0.35)
	v.SetDefault("fire.suppression_decay", 1.0)
	v.SetDefault("fire.burn_duration", 3)
	v.SetDefault("fire.ignition_row", -1)
	v.SetDefault("fire.ignition_col", -1)
	v.SetDefault("fire.ignition_radius", 1)

	v.SetDefault("wind.direction", "E")
	v.SetDefault("wind.strength", 0.5)
	v.SetDefault("wind.veer_chance", 0.1)

	// Aircraft defaults
	v.SetDefault("agent.payload_capacity", 100.0)
	v.SetDefault("agent.drop_rate", 10.0)
	v.SetDefault("agent.drop_amount", 1.0)
	v.SetDefault("agent.max_suppression", 1.0)
	v.SetDefault("agent.airport_row", -1)
	v.SetDefault("agent.airport_col", -1)
	v.SetDefault("agent.initial_heading", "N")

	v.SetDefault("reward.per_tick", 1.0)
	v.SetDefault("reward.burned_cell_penalty", 0.0)

	v.SetDefault("episode.record_frames", true)
	v.SetDefault("episode.diagnostics_interval", 10)
	v.SetDefault("episode.max_ticks", 2000)

	// Runner defaults
	v.SetDefault("runner.episodes", 8)
	v.SetDefault("runner.workers", 4)
	v.SetDefault("runner.policy", "random")
	v.SetDefault("runner.buffer_capacity", 10000)

	// gRPC server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 50061)
	v.SetDefault("server.enable_reflection", true)
	v.SetDefault("server.graceful_shutdown_delay", 2)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
}

// Init initializes the configuration
func Init(configPath string) error {
	v = viper.New()

	// Set defaults before loading any config
	setViperDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/wildfire-rl")
	}

	v.SetEnvPrefix("WILDFIRE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// Only a missing file falls back to defaults, explicit path or not.
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg = &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	return nil
}

// Get returns the global config instance
func Get() *Config {
	if cfg == nil {
		if err := Init(""); err != nil {
			panic("failed to initialize config with defaults: " + err.Error())
		}
	}
	return cfg
}

// GetViper returns the viper instance for advanced usage
func GetViper() *viper.Viper {
	if v == nil {
		panic("config not initialized - call Init() first")
	}
	return v
}

// LoadEnvironmentConfig merges config.<env>.yaml over the loaded config
func LoadEnvironmentConfig(env string) error {
	if env == "" {
		return nil
	}

	envFile := fmt.Sprintf("config.%s.yaml", env)
	if used := v.ConfigFileUsed(); used != "" {
		envFile = filepath.Join(filepath.Dir(used), envFile)
	}
	if _, err := os.Stat(envFile); errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	v.SetConfigFile(envFile)
	if err := v.MergeInConfig(); err != nil {
		return fmt.Errorf("error merging environment config %s: %w", envFile, err)
	}

	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("unable to decode merged config into struct: %w", err)
	}

	return Validate(cfg)
}

// Set allows runtime config updates
func Set(key string, value interface{}) error {
	v.Set(key, value)
	return v.Unmarshal(cfg)
}

// ConfigFilePath returns the path of the loaded config file
func ConfigFilePath() string {
	return v.ConfigFileUsed()
}

// WatchConfig enables hot-reloading of the config file. onChange receives the
// reloaded config only if it still validates.
func WatchConfig(onChange func(*Config, error)) {
	v.OnConfigChange(func(e fsnotify.Event) {
		next := &Config{}
		err := v.Unmarshal(next)
		if err == nil {
			err = Validate(next)
		}
		if err == nil {
			cfg = next
		}
		if onChange != nil {
			onChange(cfg, err)
		}
	})
	v.WatchConfig()
}

// Validate validates values that the simulation does not check itself.
func Validate(c *Config) error {
	if _, err := core.ParseDirection(c.Wind.Direction); err != nil {
		return fmt.Errorf("wind.direction: %w", err)
	}
	if _, err := core.ParseDirection(c.Agent.InitialHeading); err != nil {
		return fmt.Errorf("agent.initial_heading: %w", err)
	}
	if c.Episode.MaxTicks <= 0 {
		return fmt.Errorf("episode.max_ticks must be positive")
	}
	if c.Runner.Episodes <= 0 {
		return fmt.Errorf("runner.episodes must be positive")
	}
	if c.Runner.Workers <= 0 {
		return fmt.Errorf("runner.workers must be positive")
	}
	if c.Runner.BufferCapacity < 0 {
		return fmt.Errorf("runner.buffer_capacity must be non-negative")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535")
	}
	if c.Server.GracefulShutdownDelay < 0 {
		return fmt.Errorf("server.graceful_shutdown_delay must be non-negative")
	}

	params, err := c.EpisodeParams()
	if err != nil {
		return err
	}
	return params.Validate()
}

// EpisodeParams maps the flat config onto simulation parameters.
func (c *Config) EpisodeParams() (sim.Params, error) {
	windDir, err := core.ParseDirection(c.Wind.Direction)
	if err != nil {
		return sim.Params{}, fmt.Errorf("wind.direction: %w", err)
	}
	heading, err := core.ParseDirection(c.Agent.InitialHeading)
	if err != nil {
		return sim.Params{}, fmt.Errorf("agent.initial_heading: %w", err)
	}

	return sim.Params{
		GridSize:       c.Sim.GridSize,
		MaxSuppression: c.Agent.MaxSuppression,
		IgnitionRow:    c.Fire.IgnitionRow,
		IgnitionCol:    c.Fire.IgnitionCol,
		IgnitionRadius: c.Fire.IgnitionRadius,
		AirportRow:     c.Agent.AirportRow,
		AirportCol:     c.Agent.AirportCol,
		Fire: fire.Params{
			BaseIgnition:     c.Fire.BaseIgnition,
			SuppressionDecay: c.Fire.SuppressionDecay,
			BurnDuration:     c.Fire.BurnDuration,
			Wind: fire.WindParams{
				Direction:  windDir,
				Strength:   c.Wind.Strength,
				VeerChance: c.Wind.VeerChance,
			},
		},
		Aircraft: aircraft.Params{
			PayloadCapacity: c.Agent.PayloadCapacity,
			DropRate:        c.Agent.DropRate,
			DropAmount:      c.Agent.DropAmount,
			InitialHeading:  heading,
		},
		Reward: sim.RewardConfig{
			PerTick:           c.Reward.PerTick,
			BurnedCellPenalty: c.Reward.BurnedCellPenalty,
		},
		RecordFrames:        c.Episode.RecordFrames,
		DiagnosticsInterval: c.Episode.DiagnosticsInterval,
	}, nil
}

// YAML renders the effective configuration.
func (c *Config) YAML() ([]byte, error) {
	return yaml.Marshal(c)
}
