package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func validConfig() Config {
	cfg := Config{HTTP: HTTPConfig{Port: 8080}}
	cfg.ApplyDefaults()
	return cfg
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.HTTP.Port != 8080 {
		t.Errorf("expected Port=8080, got %d", cfg.HTTP.Port)
	}
	if cfg.HTTP.ReadTimeoutSec != 10 {
		t.Errorf("expected ReadTimeoutSec=10, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.WriteTimeoutSec != 30 {
		t.Errorf("expected WriteTimeoutSec=30, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.Arcs.AltitudeFactor != 0.75 || cfg.Arcs.MinAltitude != 0.1 || cfg.Arcs.MaxAltitude != 1 {
		t.Errorf("unexpected arc defaults: %+v", cfg.Arcs)
	}
	if cfg.Arcs.Divisions != 50 {
		t.Errorf("expected Divisions=50, got %d", cfg.Arcs.Divisions)
	}
	if cfg.ColorMap.Name != "blackbody" || cfg.ColorMap.Resolution != 256 {
		t.Errorf("unexpected colormap defaults: %+v", cfg.ColorMap)
	}
	if len(cfg.Assets.Overlays) != 2 {
		t.Errorf("expected 2 default overlays, got %d", len(cfg.Assets.Overlays))
	}
	if cfg.Cache.Driver != "valkey" {
		t.Errorf("expected cache driver valkey, got %q", cfg.Cache.Driver)
	}
	if lo, hi := cfg.ColorRange(); lo != 0 || hi != 1 {
		t.Errorf("expected color range [0, 1], got [%v, %v]", lo, hi)
	}
}

func TestApplyDefaults_NoOverride(t *testing.T) {
	cfg := Config{
		HTTP:     HTTPConfig{Port: 9000, ReadTimeoutSec: 30, WriteTimeoutSec: 60, ShutdownSec: 5},
		Arcs:     ArcsConfig{AltitudeFactor: 0.5, MinAltitude: 0.2, MaxAltitude: 0.8, Divisions: 10},
		ColorMap: ColorMapConfig{Name: "rainbow", Resolution: 64},
		Cache:    CacheConfig{Driver: "redis"},
	}
	cfg.ApplyDefaults()

	if cfg.HTTP.Port != 9000 || cfg.HTTP.WriteTimeoutSec != 60 {
		t.Errorf("http overridden: %+v", cfg.HTTP)
	}
	if cfg.Arcs.Divisions != 10 || cfg.Arcs.AltitudeFactor != 0.5 {
		t.Errorf("arcs overridden: %+v", cfg.Arcs)
	}
	if cfg.ColorMap.Name != "rainbow" || cfg.ColorMap.Resolution != 64 {
		t.Errorf("colormap overridden: %+v", cfg.ColorMap)
	}
	if cfg.Cache.Driver != "redis" {
		t.Errorf("cache driver overridden: %q", cfg.Cache.Driver)
	}
}

func TestValidate_Valid(t *testing.T) {
	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_Errors(t *testing.T) {
	f := func(v float64) *float64 { return &v }
	tests := []struct {
		name   string
		mutate func(c *Config)
		want   string
	}{
		{"port", func(c *Config) { c.HTTP.Port = 70000 }, "http.port"},
		{"format", func(c *Config) { c.Data.Format = "csv" }, "data.format"},
		{"overlay name", func(c *Config) { c.Assets.Overlays = append(c.Assets.Overlays, c.Assets.Overlays[0]) }, "duplicate"},
		{"overlay path", func(c *Config) { c.Assets.Overlays[0].Path = "" }, "name and path"},
		{"altitude factor", func(c *Config) { c.Arcs.AltitudeFactor = -1 }, "altitude_factor"},
		{"altitude range", func(c *Config) { c.Arcs.MinAltitude = 2 }, "min_altitude"},
		{"divisions", func(c *Config) { c.Arcs.Divisions = -3 }, "divisions"},
		{"colormap name", func(c *Config) { c.ColorMap.Name = "viridis" }, "colormap.name"},
		{"colormap resolution", func(c *Config) { c.ColorMap.Resolution = 1 }, "resolution"},
		{"colormap range", func(c *Config) { c.ColorMap.Min = f(1) }, "min must be below max"},
		{"cache addrs", func(c *Config) { c.Cache.Enabled = true }, "cache.addrs"},
		{"cache driver", func(c *Config) {
			c.Cache.Enabled = true
			c.Cache.Driver = "memcached"
			c.Cache.Addrs = []string{"localhost:6379"}
		}, "cache.driver"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestValidate_CacheDisabledIgnoresStore(t *testing.T) {
	cfg := validConfig()
	cfg.Cache.Driver = "memcached"
	if err := cfg.Validate(); err != nil {
		t.Errorf("disabled cache should not be validated: %v", err)
	}
}

func TestLoadFile(t *testing.T) {
	t.Setenv("GLOBEARC_TEST_PORT", "9090")
	path := filepath.Join(t.TempDir(), "test.yaml")
	content := `
http:
  port: ${GLOBEARC_TEST_PORT}
data:
  path: ${GLOBEARC_TEST_DATA:-/srv/data.parquet}
colormap:
  name: cooltowarm
  min: -1
  max: 1
assets:
  overlays:
    - name: grid
      path: models/grid.obj
      material:
        color: "#ffffff"
        opacity: 0.5
        transparent: true
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.HTTP.Port != 9090 {
		t.Errorf("expected port from env, got %d", cfg.HTTP.Port)
	}
	if cfg.Data.Path != "/srv/data.parquet" {
		t.Errorf("expected default data path, got %q", cfg.Data.Path)
	}
	if lo, hi := cfg.ColorRange(); lo != -1 || hi != 1 {
		t.Errorf("expected color range [-1, 1], got [%v, %v]", lo, hi)
	}
	if len(cfg.Assets.Overlays) != 1 || cfg.Assets.Overlays[0].Material.Opacity != 0.5 {
		t.Errorf("unexpected overlays: %+v", cfg.Assets.Overlays)
	}
}

func TestLoadFile_Missing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoad_Local(t *testing.T) {
	cfg, err := Load("local")
	if err != nil {
		t.Fatalf("Load(local): %v", err)
	}
	if cfg.Cache.Enabled {
		t.Error("local config should not require a cache store")
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("GLOBEARC_SET", "value")
	got := string(expandEnvVars([]byte("a=${GLOBEARC_SET} b=${GLOBEARC_UNSET:-fallback} c=${GLOBEARC_UNSET}")))
	if got != "a=value b=fallback c=" {
		t.Errorf("unexpected expansion: %q", got)
	}
}
