package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Debug levels accepted by convert.debug / --debug.
const (
	DebugSilent  = 0
	DebugInfo    = 1
	DebugVerbose = 2
)

// Config holds the full application configuration.
type Config struct {
	Convert ConvertConfig `yaml:"convert" mapstructure:"convert"`
	Store   StoreConfig   `yaml:"store" mapstructure:"store"`
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
}

// ConvertConfig holds defaults for the convert command. Flags override them.
type ConvertConfig struct {
	GridSize float64 `yaml:"grid_size" mapstructure:"grid_size"`
	Limit    int     `yaml:"limit" mapstructure:"limit"`
	Cleanup  bool    `yaml:"cleanup" mapstructure:"cleanup"`
	Debug    int     `yaml:"debug" mapstructure:"debug"`
}

// StoreConfig configures the run history database. An empty DatabaseURL
// disables history.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("METEORITE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("convert.grid_size", 0.0)
	v.SetDefault("convert.limit", 0)
	v.SetDefault("convert.cleanup", false)
	v.SetDefault("convert.debug", DebugSilent)
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.database_url", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks value ranges that viper cannot express.
func (c *Config) Validate() error {
	if err := ValidateDebug(c.Convert.Debug); err != nil {
		return err
	}
	if c.Convert.Limit < 0 {
		return eris.Errorf("config: convert.limit must be >= 0, got %d", c.Convert.Limit)
	}
	if c.Store.Driver != "sqlite" {
		return eris.Errorf("config: unsupported store driver %q", c.Store.Driver)
	}
	return nil
}

// ValidateDebug rejects debug levels outside 0..2.
func ValidateDebug(level int) error {
	if level < DebugSilent || level > DebugVerbose {
		return eris.Errorf("config: debug level must be 0, 1 or 2, got %d", level)
	}
	return nil
}

// DebugLogLevel maps a debug level onto a zap level name: 0 only lets
// warnings through, 1 adds progress messages, 2 adds per-record diagnostics.
func DebugLogLevel(level int) string {
	switch {
	case level >= DebugVerbose:
		return "debug"
	case level == DebugInfo:
		return "info"
	default:
		return "warn"
	}
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.DisableStacktrace = true
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
