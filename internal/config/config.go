// Package config loads dashboard settings from a YAML or JSON file, with
// LAUNCHDASH_* environment overrides on top.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"launchdash/internal/chart"
	"launchdash/internal/display"
	"launchdash/internal/launch"
	"launchdash/internal/logging"
)

// DefaultListen is where the dashboard serves when nothing else is set.
const DefaultListen = "127.0.0.1:8050"

// Config is the full process configuration.
type Config struct {
	Listen  string            `json:"listen" yaml:"listen"`
	Sources []launch.Source   `json:"sources" yaml:"sources"`
	Sites   display.SiteNames `json:"sites,omitempty" yaml:"sites,omitempty"` // code -> full name, merged over the built-in table
	Payload Payload           `json:"payload" yaml:"payload"`
	Log     Log               `json:"log" yaml:"log"`
}

// Payload configures the range control.
type Payload struct {
	Min  float64 `json:"min" yaml:"min"`
	Max  float64 `json:"max" yaml:"max"`
	Step float64 `json:"step" yaml:"step"`
}

// Bounds returns the full slider range.
func (p Payload) Bounds() chart.Range { return chart.Range{Min: p.Min, Max: p.Max} }

// Log configures slog.
type Log struct {
	Level  string `json:"level" yaml:"level"`
	Format string `json:"format" yaml:"format"`
}

// Default returns the built-in configuration: 0-10000 kg in 1000 kg steps,
// text logs at info, the four known launch sites.
func Default() *Config {
	return &Config{
		Listen:  DefaultListen,
		Sites:   display.DefaultSiteNames(),
		Payload: Payload{Min: 0, Max: 10000, Step: 1000},
		Log:     Log{Level: "info", Format: logging.FormatText},
	}
}

// LoadFromPath reads a config file (YAML or JSON) over the defaults.
// Format is detected by extension (.yaml/.yml, .json) or by content.
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	c, err := Load(data, filepath.Ext(path))
	if err != nil {
		return nil, err
	}
	c.resolvePaths(filepath.Dir(path))
	return c, nil
}

// Load parses config bytes over the defaults. ext is a format hint
// (".json", ".yaml"); empty means detect from content.
func Load(data []byte, ext string) (*Config, error) {
	c := Default()
	ext = strings.ToLower(ext)
	if ext == ".yml" {
		ext = ".yaml"
	}
	if ext == "" && strings.HasPrefix(strings.TrimSpace(string(data)), "{") {
		ext = ".json"
	}
	if ext == ".json" {
		if err := json.Unmarshal(data, c); err != nil {
			return nil, fmt.Errorf("parse config json: %w", err)
		}
		return c, nil
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("parse config yaml: %w", err)
	}
	return c, nil
}

// resolvePaths makes relative source paths relative to the config file.
func (c *Config) resolvePaths(dir string) {
	for i := range c.Sources {
		p := c.Sources[i].Path
		if p != "" && !filepath.IsAbs(p) {
			c.Sources[i].Path = filepath.Join(dir, p)
		}
	}
}

// ApplyEnv overrides fields from LAUNCHDASH_LISTEN, LAUNCHDASH_DATA
// (comma-separated dataset paths), LAUNCHDASH_LOG_LEVEL and
// LAUNCHDASH_LOG_FORMAT. lookup is os.LookupEnv outside tests.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup("LAUNCHDASH_LISTEN"); ok && v != "" {
		c.Listen = v
	}
	if v, ok := lookup("LAUNCHDASH_DATA"); ok && v != "" {
		c.Sources = PathSources(strings.Split(v, ","))
	}
	if v, ok := lookup("LAUNCHDASH_LOG_LEVEL"); ok && v != "" {
		c.Log.Level = v
	}
	if v, ok := lookup("LAUNCHDASH_LOG_FORMAT"); ok && v != "" {
		c.Log.Format = v
	}
}

// PathSources turns file paths into sources, skipping blanks.
func PathSources(paths []string) []launch.Source {
	var out []launch.Source
	for _, p := range paths {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, launch.Source{Path: p})
		}
	}
	return out
}

// Validate checks the settings the process cannot start without.
func (c *Config) Validate() error {
	if len(c.Sources) == 0 {
		return fmt.Errorf("no dataset configured: pass --data or set sources in the config file")
	}
	for _, s := range c.Sources {
		if _, err := s.ResolveFormat(); err != nil {
			return fmt.Errorf("source %s: %w", s, err)
		}
	}
	if c.Payload.Max <= c.Payload.Min {
		return fmt.Errorf("payload: max (%g) must exceed min (%g)", c.Payload.Max, c.Payload.Min)
	}
	if c.Payload.Step <= 0 {
		return fmt.Errorf("payload: step must be positive, got %g", c.Payload.Step)
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return err
	}
	if !logging.ValidFormat(c.Log.Format) {
		return fmt.Errorf("log format %q: want text or json", c.Log.Format)
	}
	return nil
}
