package shared

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
	"github.com/routeforge/core/internal/resolver"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Output   OutputConfig   `toml:"output"`
	Server   ServerConfig   `toml:"server"`
	Resolver ResolverConfig `toml:"resolver"`
	Log      LogConfig      `toml:"log"`
	API      APIConfig      `toml:"api"`
}

// OutputConfig controls where generated source is written.
type OutputConfig struct {
	DefaultPath string `toml:"default_path"`
}

// ServerConfig describes the generated server.
type ServerConfig struct {
	Port int `toml:"port"`
}

// ResolverConfig selects how admin protection propagates along edges.
type ResolverConfig struct {
	Propagation string `toml:"propagation"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

// APIConfig contains settings for the HTTP generation service.
type APIConfig struct {
	Addr          string `toml:"addr"`
	AllowedOrigin string `toml:"allowed_origin"`
}

// LoadConfig reads a TOML configuration file. Keys missing from the file keep
// the values of [DefaultConfig].
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// DefaultConfig returns a Config with defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile writes the embedded example config to path. It refuses to
// overwrite an existing file.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("%w: server.port must be between 1 and 65535, got %d", ErrInvalidConfig, c.Server.Port)
	}

	if c.Output.DefaultPath == "" {
		return fmt.Errorf("%w: output.default_path must not be empty", ErrInvalidConfig)
	}

	if _, err := resolver.ParsePropagation(c.Resolver.Propagation); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: log.level: %v", ErrInvalidConfig, err)
	}

	return nil
}

// Propagation returns the configured propagation mode, falling back to the
// single-hop default when the value is unset.
func (c *Config) Propagation() resolver.Propagation {
	p, err := resolver.ParsePropagation(c.Resolver.Propagation)
	if err != nil {
		return resolver.PropagationDirect
	}
	return p
}
