package config

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kailas-cloud/globearc/internal/domain/colormap"
	"github.com/kailas-cloud/globearc/internal/repository/assets"
)

// Config holds the globearc server configuration.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Logging  LoggingConfig  `yaml:"logging"`
	Auth     AuthConfig     `yaml:"auth"`
	CORS     CORSConfig     `yaml:"cors"`
	Data     DataConfig     `yaml:"data"`
	Assets   AssetsConfig   `yaml:"assets"`
	Arcs     ArcsConfig     `yaml:"arcs"`
	ColorMap ColorMapConfig `yaml:"colormap"`
	Cache    CacheConfig    `yaml:"cache"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds API authentication settings.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// CORSConfig holds cross-origin settings. No origins disables CORS.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
	MaxAgeSec      int      `yaml:"max_age_sec"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
	RateLimitPerMin int `yaml:"rate_limit_per_min"` // per client IP, 0 = unlimited
}

// DataConfig points at the edge data file.
type DataConfig struct {
	Path   string `yaml:"path"`
	Format string `yaml:"format"` // json, parquet (default: from extension)
}

// AssetsConfig lists the overlay models.
type AssetsConfig struct {
	BaseDir  string        `yaml:"base_dir"`
	Overlays []assets.Spec `yaml:"overlays"` // default: grid + borders
}

// ArcsConfig shapes the arc curves.
type ArcsConfig struct {
	AltitudeFactor float64 `yaml:"altitude_factor"`
	MinAltitude    float64 `yaml:"min_altitude"`
	MaxAltitude    float64 `yaml:"max_altitude"`
	Divisions      int     `yaml:"divisions"`
}

// ColorMapConfig selects the color table weights are mapped through.
type ColorMapConfig struct {
	Name       string   `yaml:"name"`
	Resolution int      `yaml:"resolution"`
	Min        *float64 `yaml:"min"`
	Max        *float64 `yaml:"max"`
}

// CacheConfig holds the optional scene cache store settings.
type CacheConfig struct {
	Enabled          bool     `yaml:"enabled"`
	Driver           string   `yaml:"driver"` // valkey, redis (default: valkey)
	Addrs            []string `yaml:"addrs"`
	Password         string   `yaml:"password"`
	TTLSec           int      `yaml:"ttl_sec"` // 0 = no expiry
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	return LoadFile(findConfigPath(env))
}

// LoadFile reads configuration from an explicit path.
func LoadFile(configPath string) (Config, error) {
	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.Port == 0 {
		c.HTTP.Port = 8080
	}
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 30
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.HTTP.RateLimitPerMin < 0 {
		c.HTTP.RateLimitPerMin = 0
	}
	if c.CORS.MaxAgeSec <= 0 {
		c.CORS.MaxAgeSec = 300
	}
	if c.Data.Path == "" {
		c.Data.Path = "data/data.json"
	}
	if c.Assets.BaseDir == "" {
		c.Assets.BaseDir = "."
	}
	if c.Assets.Overlays == nil {
		c.Assets.Overlays = assets.DefaultSpecs()
	}
	if c.Arcs.AltitudeFactor == 0 {
		c.Arcs.AltitudeFactor = 0.75
	}
	if c.Arcs.MinAltitude == 0 {
		c.Arcs.MinAltitude = 0.1
	}
	if c.Arcs.MaxAltitude == 0 {
		c.Arcs.MaxAltitude = 1.0
	}
	if c.Arcs.Divisions == 0 {
		c.Arcs.Divisions = 50
	}
	if c.ColorMap.Name == "" {
		c.ColorMap.Name = colormap.Default
	}
	if c.ColorMap.Resolution == 0 {
		c.ColorMap.Resolution = colormap.DefaultResolution
	}
	if c.Cache.Driver == "" {
		c.Cache.Driver = "valkey"
	}
	if c.Cache.ReadinessTimeout <= 0 {
		c.Cache.ReadinessTimeout = 10
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	switch c.Data.Format {
	case "", "json", "parquet":
	default:
		return fmt.Errorf("data.format must be \"json\" or \"parquet\", got %q", c.Data.Format)
	}
	seen := make(map[string]struct{}, len(c.Assets.Overlays))
	for i, o := range c.Assets.Overlays {
		if o.Name == "" || o.Path == "" {
			return fmt.Errorf("assets.overlays[%d]: name and path are required", i)
		}
		if _, dup := seen[o.Name]; dup {
			return fmt.Errorf("assets.overlays[%d]: duplicate name %q", i, o.Name)
		}
		seen[o.Name] = struct{}{}
	}
	if c.Arcs.AltitudeFactor <= 0 {
		return fmt.Errorf("arcs.altitude_factor must be positive, got %v", c.Arcs.AltitudeFactor)
	}
	if c.Arcs.MinAltitude < 0 || c.Arcs.MinAltitude > c.Arcs.MaxAltitude {
		return fmt.Errorf("arcs: need 0 <= min_altitude <= max_altitude, got %v and %v",
			c.Arcs.MinAltitude, c.Arcs.MaxAltitude)
	}
	if c.Arcs.Divisions < 1 {
		return fmt.Errorf("arcs.divisions must be at least 1, got %d", c.Arcs.Divisions)
	}
	if !colormap.Exists(c.ColorMap.Name) {
		return fmt.Errorf("colormap.name must be one of %s, got %q",
			strings.Join(colormap.Names(), ", "), c.ColorMap.Name)
	}
	if c.ColorMap.Resolution < 2 {
		return fmt.Errorf("colormap.resolution must be at least 2, got %d", c.ColorMap.Resolution)
	}
	lo, hi := c.ColorRange()
	if math.IsNaN(lo) || math.IsNaN(hi) || lo >= hi {
		return fmt.Errorf("colormap: min must be below max, got %v and %v", lo, hi)
	}
	if c.Cache.Enabled {
		switch c.Cache.Driver {
		case "valkey", "redis":
		default:
			return fmt.Errorf("cache.driver must be \"valkey\" or \"redis\", got %q", c.Cache.Driver)
		}
		if len(c.Cache.Addrs) == 0 {
			return fmt.Errorf("cache.addrs is required when the cache is enabled")
		}
		if c.Cache.TTLSec < 0 {
			return fmt.Errorf("cache.ttl_sec must not be negative, got %d", c.Cache.TTLSec)
		}
	}
	return nil
}

// ColorRange returns the weight range mapped onto the color table, [0, 1] unless overridden.
func (c *Config) ColorRange() (lo, hi float64) {
	lo, hi = 0, 1
	if c.ColorMap.Min != nil {
		lo = *c.ColorMap.Min
	}
	if c.ColorMap.Max != nil {
		hi = *c.ColorMap.Max
	}
	return lo, hi
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
