// Package config loads whimsy settings from defaults, an optional YAML
// file, a .env file and WHIMSY_* environment variables, in increasing order
// of precedence. Command-line flags bound with BindFlags win over all of
// them.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"whimsy/pkg/layout"
	"whimsy/pkg/logging"
	"whimsy/pkg/text"
	stdnet "whimsy/std/net"
)

const (
	envPrefix  = "WHIMSY"
	configName = "whimsy"

	// ConfigFileEnv names a config file when --config is not given.
	ConfigFileEnv = "WHIMSY_CONFIG_FILE"
)

type Config struct {
	Viewport ViewportConfig `mapstructure:"viewport"`
	Layout   LayoutConfig   `mapstructure:"layout"`
	Fonts    FontsConfig    `mapstructure:"fonts"`
	Net      NetConfig      `mapstructure:"net"`
	Log      LogConfig      `mapstructure:"log"`
}

type ViewportConfig struct {
	Width  int `mapstructure:"width"`
	Height int `mapstructure:"height"`
}

type LayoutConfig struct {
	BaseSize int     `mapstructure:"base_size"`
	HStep    float64 `mapstructure:"hstep"`
	VStep    float64 `mapstructure:"vstep"`
}

type FontsConfig struct {
	Regular    string `mapstructure:"regular"`
	Bold       string `mapstructure:"bold"`
	Italic     string `mapstructure:"italic"`
	BoldItalic string `mapstructure:"bold_italic"`
}

type NetConfig struct {
	UserAgent string        `mapstructure:"user_agent"`
	Timeout   time.Duration `mapstructure:"timeout"`
	CacheTTL  time.Duration `mapstructure:"cache_ttl"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// flagKeys maps command-line flag names to config keys.
var flagKeys = map[string]string{
	"width":     "viewport.width",
	"height":    "viewport.height",
	"log-level": "log.level",
	"log-file":  "log.file",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("viewport.width", 800)
	v.SetDefault("viewport.height", 600)
	v.SetDefault("layout.base_size", layout.DefaultBaseSize)
	v.SetDefault("layout.hstep", layout.DefaultHStep)
	v.SetDefault("layout.vstep", layout.DefaultVStep)
	v.SetDefault("fonts.regular", "")
	v.SetDefault("fonts.bold", "")
	v.SetDefault("fonts.italic", "")
	v.SetDefault("fonts.bold_italic", "")
	v.SetDefault("net.user_agent", stdnet.DefaultUserAgent)
	v.SetDefault("net.timeout", stdnet.DefaultTimeout)
	v.SetDefault("net.cache_ttl", stdnet.DefaultCacheTTL)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
}

// Load reads the configuration. path names a config file; when empty,
// WHIMSY_CONFIG_FILE is consulted and then ./whimsy.yaml, and a missing
// default file is not an error. flags may be nil.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	// A missing .env is normal.
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	if path == "" {
		path = os.Getenv(ConfigFileEnv)
	}
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName(configName)
		v.SetConfigType("yaml")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		if err := BindFlags(v, flags); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// BindFlags binds the flags in flagKeys that exist in flags. Only flags
// the user actually set override lower layers.
func BindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for name, key := range flagKeys {
		flag := flags.Lookup(name)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("binding flag %s: %w", name, err)
		}
	}
	return nil
}

func (c *Config) Validate() error {
	var errs []error
	if c.Viewport.Width <= 0 || c.Viewport.Height <= 0 {
		errs = append(errs, fmt.Errorf("viewport must be positive, got %dx%d", c.Viewport.Width, c.Viewport.Height))
	}
	if c.Layout.BaseSize <= 0 {
		errs = append(errs, fmt.Errorf("layout.base_size must be positive, got %d", c.Layout.BaseSize))
	}
	if c.Layout.HStep < 0 || c.Layout.VStep < 0 {
		errs = append(errs, fmt.Errorf("layout margins must not be negative, got hstep %g vstep %g", c.Layout.HStep, c.Layout.VStep))
	}
	if c.Net.Timeout < 0 {
		errs = append(errs, fmt.Errorf("net.timeout must not be negative, got %s", c.Net.Timeout))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func (c *Config) FontConfig() text.FontConfig {
	return text.FontConfig{
		Regular:    c.Fonts.Regular,
		Bold:       c.Fonts.Bold,
		Italic:     c.Fonts.Italic,
		BoldItalic: c.Fonts.BoldItalic,
	}
}

func (c *Config) LayoutOptions() []layout.Option {
	return []layout.Option{
		layout.WithMargins(c.Layout.HStep, c.Layout.VStep),
		layout.WithBaseSize(c.Layout.BaseSize),
	}
}

func (c *Config) NetOptions() stdnet.Options {
	return stdnet.Options{
		UserAgent: c.Net.UserAgent,
		Timeout:   c.Net.Timeout,
		CacheTTL:  c.Net.CacheTTL,
	}
}

func (c *Config) LogOptions() logging.Options {
	return logging.Options{Level: c.Log.Level, File: c.Log.File}
}

// NewLayoutEngine builds a layout engine with the configured fonts and
// metrics.
func (c *Config) NewLayoutEngine() *layout.LayoutEngine {
	return layout.NewLayoutEngine(text.NewFontSet(c.FontConfig()), c.LayoutOptions()...)
}
