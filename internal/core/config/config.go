package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	ConfigFileName = "config.yml"
	AppDirName     = "vlink"

	// EnvPrefix is prepended to every environment override, e.g. VLINK_SERVER_PORT
	EnvPrefix = "VLINK"
)

// Upstream defaults
const (
	DefaultSearchURL  = "https://www.videofk.com/search"
	DefaultDecryptURL = "https://downloader.twdown.online/load_url"
	DefaultUserAgent  = "Mozilla/5.0"
	DefaultTimeout    = 10 * time.Second
	DefaultPort       = 8080
)

// ConfigDir returns the standard config directory for vlink.
// Windows: %APPDATA%\vlink\
// macOS/Linux: ~/.config/vlink/
func ConfigDir() (string, error) {
	if runtime.GOOS == "windows" {
		appData := os.Getenv("APPDATA")
		if appData != "" {
			return filepath.Join(appData, AppDirName), nil
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", AppDirName), nil
}

// ConfigPath returns the path to the config file.
// e.g., ~/.config/vlink/config.yml
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ConfigFileName), nil
}

type Config struct {
	// Server configuration for `vlink serve` and vlink-server
	Server ServerConfig `yaml:"server" mapstructure:"server"`

	// Upstream holds the third-party search and decryption services
	Upstream UpstreamConfig `yaml:"upstream" mapstructure:"upstream"`

	// Log controls the zap logger
	Log LogConfig `yaml:"log" mapstructure:"log"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	// Port is the HTTP listen port (default: 8080)
	Port int `yaml:"port,omitempty" mapstructure:"port"`
}

// UpstreamConfig describes the search page provider and the token decryption provider
type UpstreamConfig struct {
	// SearchURL receives the media page URL as the "url" query parameter and returns HTML
	SearchURL string `yaml:"search_url" mapstructure:"search_url"`

	// DecryptURL receives an encrypted token as the "url" query parameter and returns plain text
	DecryptURL string `yaml:"decrypt_url" mapstructure:"decrypt_url"`

	// UserAgent is sent on every upstream request; the decryption service rejects requests without one
	UserAgent string `yaml:"user_agent" mapstructure:"user_agent"`

	// Timeout applies to each single upstream call, e.g. "10s"
	Timeout string `yaml:"timeout" mapstructure:"timeout"`

	// RateLimit caps upstream requests per second (0 disables limiting)
	RateLimit float64 `yaml:"rate_limit,omitempty" mapstructure:"rate_limit"`
}

// RequestTimeout parses Timeout, falling back to DefaultTimeout
func (u UpstreamConfig) RequestTimeout() time.Duration {
	d, err := time.ParseDuration(strings.TrimSpace(u.Timeout))
	if err != nil || d <= 0 {
		return DefaultTimeout
	}
	return d
}

// LogConfig holds logger settings
type LogConfig struct {
	// Level is one of debug, info, warn, error
	Level string `yaml:"level" mapstructure:"level"`

	// Development switches to the console encoder
	Development bool `yaml:"development,omitempty" mapstructure:"development"`
}

// DefaultConfig returns a config with default values
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port: DefaultPort,
		},
		Upstream: UpstreamConfig{
			SearchURL:  DefaultSearchURL,
			DecryptURL: DefaultDecryptURL,
			UserAgent:  DefaultUserAgent,
			Timeout:    DefaultTimeout.String(),
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Exists checks if the config file exists
func Exists() bool {
	path, err := ConfigPath()
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}

// newViper registers every key with its default so that environment
// overrides apply even when the config file omits the key.
func newViper() *viper.Viper {
	v := viper.New()
	def := DefaultConfig()

	v.SetDefault("server.port", def.Server.Port)
	v.SetDefault("upstream.search_url", def.Upstream.SearchURL)
	v.SetDefault("upstream.decrypt_url", def.Upstream.DecryptURL)
	v.SetDefault("upstream.user_agent", def.Upstream.UserAgent)
	v.SetDefault("upstream.timeout", def.Upstream.Timeout)
	v.SetDefault("upstream.rate_limit", def.Upstream.RateLimit)
	v.SetDefault("log.level", def.Log.Level)
	v.SetDefault("log.development", def.Log.Development)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the config from ~/.config/vlink/config.yml with environment overrides applied
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom reads the config at path. A missing file is not an error:
// defaults plus environment overrides are returned.
func LoadFrom(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}

// Save writes the config to ~/.config/vlink/config.yml
func Save(cfg *Config) error {
	configPath, err := ConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}
	return SaveTo(configPath, cfg)
}

// SaveTo writes the config to path, creating parent directories
func SaveTo(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	header := "# vlink configuration file\n# Run 'vlink config init' to regenerate with defaults\n# Every key can be overridden with VLINK_<SECTION>_<KEY>, e.g. VLINK_SERVER_PORT\n\n"
	content := header + string(data)

	return os.WriteFile(path, []byte(content), 0644)
}

// SavePath returns the path where config will be saved
func SavePath() string {
	if path, err := ConfigPath(); err == nil {
		return path
	}
	return ConfigFileName
}

// Init creates a new config.yml with default values
func Init() error {
	if Exists() {
		path, _ := ConfigPath()
		return fmt.Errorf("%s already exists", path)
	}
	return Save(DefaultConfig())
}

// LoadOrDefault loads config if it exists, otherwise returns defaults
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		cfg = DefaultConfig()
	}
	return cfg
}

// Marshal renders cfg as YAML, used by `vlink config show`
func Marshal(cfg *Config) (string, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("failed to serialize config: %w", err)
	}
	return string(data), nil
}
