package config

import (
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"launchdash/internal/launch"
)

func testdataPath(name string) string {
	_, f, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(f), "testdata", name)
}

func TestLoadFromPath_YAML(t *testing.T) {
	c, err := LoadFromPath(testdataPath("launchdash.yaml"))
	if err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}
	if c.Listen != "0.0.0.0:9000" {
		t.Errorf("Listen = %q", c.Listen)
	}
	if len(c.Sources) != 3 {
		t.Fatalf("want 3 sources, got %+v", c.Sources)
	}
	if want := filepath.Join(filepath.Dir(testdataPath("x")), "launches.csv.gz"); c.Sources[0].Path != want {
		t.Errorf("relative path not resolved: %q, want %q", c.Sources[0].Path, want)
	}
	if c.Sources[1].Path != "/srv/data/extra.parquet" {
		t.Errorf("absolute path changed: %q", c.Sources[1].Path)
	}
	want := &launch.ClickHouseSource{Addr: "clickhouse:9000", Database: "spacex", Table: "launches"}
	if diff := cmp.Diff(want, c.Sources[2].ClickHouse); diff != "" {
		t.Errorf("clickhouse source mismatch (-want +got):\n%s", diff)
	}

	// Partial sections keep their defaults.
	if c.Payload != (Payload{Min: 0, Max: 10000, Step: 500}) {
		t.Errorf("Payload = %+v", c.Payload)
	}
	if c.Log.Level != "debug" || c.Log.Format != "text" {
		t.Errorf("Log = %+v", c.Log)
	}
	// Configured site names merge over the built-in table.
	if got := c.Sites.Name("BOCA CHICA"); got != "Starbase Orbital Launch Mount" {
		t.Errorf("custom site name = %q", got)
	}
	if got := c.Sites.Name("KSC LC-39A"); got != "Kennedy Space Center Launch Complex 39A" {
		t.Errorf("built-in site name lost: %q", got)
	}
	if err := c.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestLoadFromPath_JSON(t *testing.T) {
	c, err := LoadFromPath(testdataPath("launchdash.json"))
	if err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}
	if c.Listen != ":8080" || c.Log.Format != "json" || c.Log.Level != "info" {
		t.Errorf("got %+v", c)
	}
	if c.Payload.Bounds().Min != 1000 || c.Payload.Bounds().Max != 8000 {
		t.Errorf("Bounds() = %+v", c.Payload.Bounds())
	}
}

func TestLoad_DetectFormat(t *testing.T) {
	c, err := Load([]byte(`{"listen":":1"}`), "")
	if err != nil || c.Listen != ":1" {
		t.Errorf("JSON detect: %+v, %v", c, err)
	}
	c, err = Load([]byte("listen: \":2\"\n"), "")
	if err != nil || c.Listen != ":2" {
		t.Errorf("YAML detect: %+v, %v", c, err)
	}
	if _, err := Load([]byte("listen: [unclosed"), ".yml"); err == nil {
		t.Error("expected YAML parse error")
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"LAUNCHDASH_LISTEN":     ":7000",
		"LAUNCHDASH_DATA":       "a.csv, b.parquet,,",
		"LAUNCHDASH_LOG_LEVEL":  "warn",
		"LAUNCHDASH_LOG_FORMAT": "json",
	}
	c := Default()
	c.ApplyEnv(func(k string) (string, bool) { v, ok := env[k]; return v, ok })

	if c.Listen != ":7000" || c.Log.Level != "warn" || c.Log.Format != "json" {
		t.Errorf("got %+v", c)
	}
	want := []launch.Source{{Path: "a.csv"}, {Path: "b.parquet"}}
	if diff := cmp.Diff(want, c.Sources); diff != "" {
		t.Errorf("sources mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate(t *testing.T) {
	withData := func(mut func(*Config)) *Config {
		c := Default()
		c.Sources = PathSources([]string{"launches.csv"})
		mut(c)
		return c
	}
	cases := []struct {
		name string
		cfg  *Config
		want string
	}{
		{"no sources", Default(), "no dataset"},
		{"bad format", withData(func(c *Config) { c.Sources[0].Path = "x.xlsx" }), "cannot infer"},
		{"inverted payload", withData(func(c *Config) { c.Payload.Max = -1 }), "must exceed"},
		{"zero step", withData(func(c *Config) { c.Payload.Step = 0 }), "step"},
		{"bad level", withData(func(c *Config) { c.Log.Level = "loud" }), "log level"},
		{"bad log format", withData(func(c *Config) { c.Log.Format = "xml" }), "log format"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Errorf("Validate() = %v, want error containing %q", err, tc.want)
			}
		})
	}
	if err := withData(func(*Config) {}).Validate(); err != nil {
		t.Errorf("valid config: %v", err)
	}
}
