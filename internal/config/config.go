package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Render RenderConfig `mapstructure:"render" yaml:"render"`
	Dump   DumpConfig   `mapstructure:"dump" yaml:"dump"`
	Log    LogConfig    `mapstructure:"log" yaml:"log"`
}

type RenderConfig struct {
	Width      int         `mapstructure:"width" yaml:"width"`           // 0 means terminal width
	Engine     string      `mapstructure:"engine" yaml:"engine"`         // native, glamour or html
	Hyperlinks bool        `mapstructure:"hyperlinks" yaml:"hyperlinks"` // OSC 8 links
	CodeStyle  string      `mapstructure:"code_style" yaml:"code_style"` // chroma style name
	Theme      ThemeConfig `mapstructure:"theme" yaml:"theme"`
}

// ThemeConfig allows customization of render colors
// Colors can be ANSI color numbers (0-255) or hex codes (#RRGGBB)
type ThemeConfig struct {
	Heading  string `mapstructure:"heading" yaml:"heading,omitempty"` // headings and table borders
	Strong   string `mapstructure:"strong" yaml:"strong,omitempty"`
	Emphasis string `mapstructure:"emphasis" yaml:"emphasis,omitempty"`
	Code     string `mapstructure:"code" yaml:"code,omitempty"`
	Link     string `mapstructure:"link" yaml:"link,omitempty"`
	Muted    string `mapstructure:"muted" yaml:"muted,omitempty"` // rules, footnote markers
	Text     string `mapstructure:"text" yaml:"text,omitempty"`
}

type DumpConfig struct {
	Format string `mapstructure:"format" yaml:"format"` // yaml, json or tree
}

type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level"` // none, normal or debug
}

// Engines accepted by render.engine.
var Engines = []string{"native", "glamour", "html"}

func Load() (*Config, error) {
	configPath, err := GetConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get config dir: %w", err)
	}
	return load(viper.GetViper(), configPath, ".")
}

func load(v *viper.Viper, paths ...string) (*Config, error) {
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	// MDIR_RENDER_WIDTH overrides render.width, and so on
	v.SetEnvPrefix("mdir")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set defaults
	v.SetDefault("render.width", 0)
	v.SetDefault("render.engine", "native")
	v.SetDefault("render.hyperlinks", false)
	v.SetDefault("render.code_style", "monokai")
	v.SetDefault("dump.format", "yaml")
	v.SetDefault("log.level", "none")

	// Read config file (optional - won't error if missing)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects unknown engine names and negative widths.
func (c *Config) Validate() error {
	if c.Render.Width < 0 {
		return fmt.Errorf("render.width must not be negative, got %d", c.Render.Width)
	}
	for _, e := range Engines {
		if c.Render.Engine == e {
			return nil
		}
	}
	return fmt.Errorf("render.engine %q is not one of %s", c.Render.Engine, strings.Join(Engines, ", "))
}

// ApplyOverrides applies command line overrides to the config.
// Empty strings and non-positive widths leave the configured value alone.
func (c *Config) ApplyOverrides(engine string, width int, format, logLevel string) {
	if engine != "" {
		c.Render.Engine = engine
	}
	if width > 0 {
		c.Render.Width = width
	}
	if format != "" {
		c.Dump.Format = format
	}
	if logLevel != "" {
		c.Log.Level = logLevel
	}
}

// YAML returns the effective configuration as a YAML document.
func (c *Config) YAML() (string, error) {
	out, err := yaml.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("failed to marshal config: %w", err)
	}
	return string(out), nil
}

// GetConfigDir returns the XDG config directory for mdir.
// Uses $XDG_CONFIG_HOME if set, otherwise ~/.config
func GetConfigDir() (string, error) {
	if xdgHome := os.Getenv("XDG_CONFIG_HOME"); xdgHome != "" {
		return filepath.Join(xdgHome, "mdir"), nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "mdir"), nil
}

// GetConfigPath returns the path where the config file should be located
func GetConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.yaml"), nil
}

// Exists returns true if a config file exists
func Exists() bool {
	path, err := GetConfigPath()
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}

// Save writes the config to disk
func Save(cfg *Config) error {
	path, err := GetConfigPath()
	if err != nil {
		return err
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	content, err := cfg.YAML()
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), 0644)
}
