package models

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config holds every tunable the tool reads at startup. It is loaded
// once and passed explicitly into the dialog controller; nothing reads
// it as ambient global state after that.
type Config struct {
	DialogTimeout   time.Duration `mapstructure:"-"`
	TimeoutSeconds  int           `mapstructure:"dialog_timeout_seconds"`
	TextEncoding    string        `mapstructure:"text_encoding"`
	ThumbnailWidth  int           `mapstructure:"thumbnail_width"`
	ThumbnailHeight int           `mapstructure:"thumbnail_height"`
	MaxImageSize    int64         `mapstructure:"max_image_size"`
	MaxImages       int           `mapstructure:"max_images"`
	MaxTextLength   int           `mapstructure:"max_text_length"`
	LogLevel        string        `mapstructure:"log_level"`
}

// Recommended timeout presets for longer-running tasks, in addition to
// the 300s default. The accepted range is [1s, unbounded).
const (
	TimeoutPresetLong     = 600 * time.Second
	TimeoutPresetExtended = 1200 * time.Second
)

var DefaultConfig = Config{
	DialogTimeout:   300 * time.Second,
	TimeoutSeconds:  300,
	TextEncoding:    "utf-8",
	ThumbnailWidth:  100,
	ThumbnailHeight: 80,
	MaxImageSize:    10 * 1024 * 1024,
	MaxImages:       10,
	MaxTextLength:   10000,
	LogLevel:        "info",
}

// ConfigDir returns the directory searched for config.json. The
// MCP_CONFIG_PATH environment variable overrides the default of
// ~/.mcp-feedback-collector.
func ConfigDir() string {
	if dir := os.Getenv("MCP_CONFIG_PATH"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".mcp-feedback-collector")
}

// LoadConfig reads config.json (if present) and applies environment
// overrides, then validates the result. A missing config file is not
// an error; defaults apply.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(ConfigDir())

	v.SetDefault("dialog_timeout_seconds", DefaultConfig.TimeoutSeconds)
	v.SetDefault("text_encoding", DefaultConfig.TextEncoding)
	v.SetDefault("thumbnail_width", DefaultConfig.ThumbnailWidth)
	v.SetDefault("thumbnail_height", DefaultConfig.ThumbnailHeight)
	v.SetDefault("max_image_size", DefaultConfig.MaxImageSize)
	v.SetDefault("max_images", DefaultConfig.MaxImages)
	v.SetDefault("max_text_length", DefaultConfig.MaxTextLength)
	v.SetDefault("log_level", DefaultConfig.LogLevel)

	v.BindEnv("dialog_timeout_seconds", "MCP_DIALOG_TIMEOUT")
	v.BindEnv("text_encoding", "MCP_TEXT_ENCODING")
	v.BindEnv("log_level", "MCP_LOG_LEVEL")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, err
		}
	}

	cfg := Config{}
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	cfg.DialogTimeout = time.Duration(cfg.TimeoutSeconds) * time.Second

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks ranges and falls back to defaults for zero values,
// mirroring how partial config files are tolerated.
func (c *Config) Validate() error {
	if c.TimeoutSeconds < 1 {
		return &ConfigError{Field: "dialog_timeout_seconds", Message: "timeout must be at least 1 second"}
	}
	c.DialogTimeout = time.Duration(c.TimeoutSeconds) * time.Second

	if c.TextEncoding == "" {
		c.TextEncoding = DefaultConfig.TextEncoding
	}
	if c.ThumbnailWidth <= 0 {
		c.ThumbnailWidth = DefaultConfig.ThumbnailWidth
	}
	if c.ThumbnailHeight <= 0 {
		c.ThumbnailHeight = DefaultConfig.ThumbnailHeight
	}
	if c.MaxImageSize <= 0 {
		c.MaxImageSize = DefaultConfig.MaxImageSize
	}
	if c.MaxImages <= 0 {
		c.MaxImages = DefaultConfig.MaxImages
	}
	if c.MaxTextLength <= 0 {
		c.MaxTextLength = DefaultConfig.MaxTextLength
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultConfig.LogLevel
	}
	return nil
}
