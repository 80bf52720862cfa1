// Package config loads and validates the wayfind.json project
// configuration: the route manifest and server settings.
package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/wayfind-dev/wayfind/pkg/pattern"
	"github.com/wayfind-dev/wayfind/pkg/router"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "wayfind.json"

	// DefaultHost is the default server host.
	DefaultHost = "localhost"

	// DefaultPort is the default server port.
	DefaultPort = 8080
)

// Config represents the complete wayfind.json configuration.
type Config struct {
	// Name is the project name.
	Name string `json:"name,omitempty"`

	// Server contains server settings.
	Server ServerConfig `json:"server,omitempty"`

	// Routes is the route manifest.
	Routes []RouteConfig `json:"routes"`
}

// ServerConfig contains server settings.
type ServerConfig struct {
	Host string `json:"host,omitempty"`
	Port int    `json:"port,omitempty"`
}

// RouteConfig declares one route.
type RouteConfig struct {
	// Pattern is the route pattern string.
	Pattern string `json:"pattern"`

	// Handler names the handler bound to the route.
	Handler string `json:"handler"`

	// Title is passed to the location primitive on navigation.
	Title string `json:"title,omitempty"`

	// Default marks the fallback route. Exactly one route must set it.
	Default bool `json:"default,omitempty"`
}

// Load reads and validates the configuration from dir.
func Load(dir string) (*Config, error) {
	data, err := os.ReadFile(filepath.Join(dir, ConfigFileName))
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", ConfigFileName, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", ConfigFileName, err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = DefaultHost
	}
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
}

// Validate checks the route manifest: every pattern must compile,
// every route must name a handler, and exactly one route must be the
// default.
func (c *Config) Validate() error {
	if len(c.Routes) == 0 {
		return fmt.Errorf("config: no routes declared")
	}

	defaults := 0
	for i, rc := range c.Routes {
		if _, err := pattern.Compile(rc.Pattern); err != nil {
			return fmt.Errorf("config: route %d: %w", i, err)
		}
		if rc.Handler == "" {
			return fmt.Errorf("config: route %d (%q): missing handler name", i, rc.Pattern)
		}
		if rc.Default {
			defaults++
		}
	}
	if defaults != 1 {
		return fmt.Errorf("config: exactly one route must be marked default, found %d: %w",
			defaults, router.ErrNoDefaultRoute)
	}
	return nil
}

// Addr returns the server listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// BuildTable registers the manifest's routes into a new table, looking
// handlers up by name in handlers. An unknown handler name fails with
// router.ErrUnknownHandler.
func (c *Config) BuildTable(handlers map[string]router.Handler, logger *slog.Logger) (*router.Table, error) {
	tbl := router.NewTable(router.WithLogger(logger))
	for _, rc := range c.Routes {
		h, ok := handlers[rc.Handler]
		if !ok {
			return nil, fmt.Errorf("%w: %q for route %q",
				router.ErrUnknownHandler, rc.Handler, rc.Pattern)
		}
		opts := []router.RouteOption{router.WithTitle(rc.Title)}
		if rc.Default {
			opts = append(opts, router.WithDefault())
		}
		if _, err := tbl.Register(rc.Pattern, h, opts...); err != nil {
			return nil, err
		}
	}
	return tbl, nil
}
