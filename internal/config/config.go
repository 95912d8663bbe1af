package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix namespaces environment overrides, e.g. KINELAB_SIM_DT.
const EnvPrefix = "KINELAB"

type Config struct {
	Logger LoggerConfig `mapstructure:"logger" yaml:"logger"`
	Sim    SimConfig    `mapstructure:"sim" yaml:"sim"`
	View   ViewConfig   `mapstructure:"view" yaml:"view"`
	Export ExportConfig `mapstructure:"export" yaml:"export"`
}

type LoggerConfig struct {
	Level       string      `mapstructure:"level" yaml:"level"`
	Format      string      `mapstructure:"format" yaml:"format"`
	AddSource   bool        `mapstructure:"add_source" yaml:"add_source"`
	ServiceName string      `mapstructure:"service_name" yaml:"service_name"`
	LogFile     string      `mapstructure:"log_file" yaml:"log_file"`
	MaxSize     int         `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups  int         `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int         `mapstructure:"max_age" yaml:"max_age"`
	Compress    bool        `mapstructure:"compress" yaml:"compress"`
	Colors      ColorConfig `mapstructure:"colors" yaml:"colors"`
}

// ColorConfig names the console colour of each level.
type ColorConfig struct {
	Debug string `mapstructure:"debug" yaml:"debug"`
	Info  string `mapstructure:"info" yaml:"info"`
	Warn  string `mapstructure:"warn" yaml:"warn"`
	Error string `mapstructure:"error" yaml:"error"`
}

type SimConfig struct {
	// Dt is the fixed step of headless runs, one 60 Hz frame by default.
	Dt              float64 `mapstructure:"dt" yaml:"dt"`
	Speed           float64 `mapstructure:"speed" yaml:"speed"`
	MaxDuration     float64 `mapstructure:"max_duration" yaml:"max_duration"`
	HistoryCapacity int     `mapstructure:"history_capacity" yaml:"history_capacity"`
	Location        string  `mapstructure:"location" yaml:"location"`
}

type ViewConfig struct {
	FPS            int    `mapstructure:"fps" yaml:"fps"`
	Theme          string `mapstructure:"theme" yaml:"theme"`
	ShowGrid       bool   `mapstructure:"show_grid" yaml:"show_grid"`
	ShowTrajectory bool   `mapstructure:"show_trajectory" yaml:"show_trajectory"`
	GraphEvery     int    `mapstructure:"graph_every" yaml:"graph_every"`
}

type ExportConfig struct {
	Width      int `mapstructure:"width" yaml:"width"`
	Height     int `mapstructure:"height" yaml:"height"`
	ChartEvery int `mapstructure:"chart_every" yaml:"chart_every"`
}

// SetDefaults registers every default on v.
func SetDefaults(v *viper.Viper) {
	// -- Logger --
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.service_name", "kinelab")
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 10)
	v.SetDefault("logger.max_backups", 3)
	v.SetDefault("logger.max_age", 7)
	v.SetDefault("logger.compress", false)
	v.SetDefault("logger.colors.debug", "cyan")
	v.SetDefault("logger.colors.info", "green")
	v.SetDefault("logger.colors.warn", "yellow")
	v.SetDefault("logger.colors.error", "red")

	// -- Sim --
	v.SetDefault("sim.dt", 0.016)
	v.SetDefault("sim.speed", 1.0)
	v.SetDefault("sim.max_duration", 60.0)
	v.SetDefault("sim.history_capacity", 4096)
	v.SetDefault("sim.location", "earth")

	// -- View --
	v.SetDefault("view.fps", 60)
	v.SetDefault("view.theme", "cyberpunk")
	v.SetDefault("view.show_grid", true)
	v.SetDefault("view.show_trajectory", true)
	v.SetDefault("view.graph_every", 5)

	// -- Export --
	v.SetDefault("export.width", 800)
	v.SetDefault("export.height", 600)
	v.SetDefault("export.chart_every", 5)
}

// NewDefaultConfig returns the configuration with nothing but defaults.
func NewDefaultConfig() *Config {
	v := viper.New()
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		panic(fmt.Sprintf("failed to unmarshal default config: %v", err))
	}
	return &cfg
}

// NewViper returns a viper instance with defaults and environment
// overrides bound.
func NewViper() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads path (if not empty) over the defaults, applies environment
// overrides and validates the result.
func Load(path string) (*Config, error) {
	v := NewViper()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}
	return FromViper(v)
}

// FromViper decodes and validates the configuration held by v.
func FromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	var errs []error
	if !(c.Sim.Dt > 0) {
		errs = append(errs, fmt.Errorf("sim.dt must be positive, got %g", c.Sim.Dt))
	}
	if !(c.Sim.Speed > 0) {
		errs = append(errs, fmt.Errorf("sim.speed must be positive, got %g", c.Sim.Speed))
	}
	if !(c.Sim.MaxDuration > 0) {
		errs = append(errs, fmt.Errorf("sim.max_duration must be positive, got %g", c.Sim.MaxDuration))
	}
	if c.Sim.HistoryCapacity < 0 {
		errs = append(errs, fmt.Errorf("sim.history_capacity must not be negative, got %d", c.Sim.HistoryCapacity))
	}
	if _, err := Gravity(c.Sim.Location); err != nil {
		errs = append(errs, err)
	}
	if c.View.FPS <= 0 {
		errs = append(errs, fmt.Errorf("view.fps must be positive, got %d", c.View.FPS))
	}
	if c.Export.Width <= 0 || c.Export.Height <= 0 {
		errs = append(errs, fmt.Errorf("export size must be positive, got %dx%d", c.Export.Width, c.Export.Height))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
