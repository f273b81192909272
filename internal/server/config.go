package server

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/onchainrugs/rugweave"
	"github.com/onchainrugs/rugweave/cache"
)

// Config is the service configuration.
type Config struct {
	HTTP      HTTPConfig      `mapstructure:"http"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Cache     CacheConfig     `mapstructure:"cache"`
	Tracing   TracingConfig   `mapstructure:"tracing"`
	CORS      CORSConfig      `mapstructure:"cors"`
	Render    rugweave.Config `mapstructure:"render"`
	ParamsDir string          `mapstructure:"params_dir"`
	Release   bool            `mapstructure:"release"`
}

// HTTPConfig configures the listener.
type HTTPConfig struct {
	Addr         string        `mapstructure:"addr"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	// RenderTimeout bounds one render, cache fill included.
	RenderTimeout time.Duration `mapstructure:"render_timeout"`
}

// RedisConfig selects the shared preview store. When disabled an
// in-process store is used.
type RedisConfig struct {
	Enabled            bool `mapstructure:"enabled"`
	cache.RedisOptions `mapstructure:",squash"`
}

// CacheConfig configures preview caching.
type CacheConfig struct {
	TTL           time.Duration `mapstructure:"ttl"`
	MemoryEntries int           `mapstructure:"memory_entries"`
}

// TracingConfig configures the OTLP exporter.
type TracingConfig struct {
	Enabled     bool    `mapstructure:"enabled"`
	ServiceName string  `mapstructure:"service_name"`
	Endpoint    string  `mapstructure:"endpoint"`
	SampleRate  float64 `mapstructure:"sample_rate"`
}

// CORSConfig lists the allowed cross-origin callers.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// LoadConfig reads the optional YAML file at path, expands ${VAR:default}
// placeholders in it and applies RUGWEAVE_ environment overrides, so
// RUGWEAVE_HTTP_ADDR sets http.addr.
func LoadConfig(path string) (Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	setDefaults(v)

	if path != "" {
		content, err := os.ReadFile(path) //nolint:gosec // operator-supplied path
		if err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := v.ReadConfig(strings.NewReader(expandEnv(string(content)))); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	v.SetEnvPrefix("RUGWEAVE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Render.Validate(); err != nil {
		return Config{}, fmt.Errorf("render config: %w", err)
	}
	return cfg, nil
}

// DefaultConfig returns the configuration LoadConfig produces without a
// file or environment.
func DefaultConfig() Config {
	cfg, err := LoadConfig("")
	if err != nil {
		panic(err)
	}
	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("http.read_timeout", "10s")
	v.SetDefault("http.write_timeout", "30s")
	v.SetDefault("http.render_timeout", "20s")

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.pool_size", 10)
	v.SetDefault("redis.dial_timeout", "5s")
	v.SetDefault("redis.read_timeout", "3s")
	v.SetDefault("redis.write_timeout", "3s")
	v.SetDefault("redis.prefix", "rugweave:")

	v.SetDefault("cache.ttl", "24h")
	v.SetDefault("cache.memory_entries", cache.DefaultShardCapacity)

	v.SetDefault("tracing.enabled", false)
	v.SetDefault("tracing.service_name", "rugweave")
	v.SetDefault("tracing.endpoint", "localhost:4317")
	v.SetDefault("tracing.sample_rate", 0.1)

	v.SetDefault("cors.allowed_origins", []string{"*"})

	d := rugweave.DefaultConfig()
	v.SetDefault("render.doormat_width", d.DoormatWidth)
	v.SetDefault("render.doormat_height", d.DoormatHeight)
	v.SetDefault("render.fringe_length", d.FringeLength)
	v.SetDefault("render.weft_thickness", d.WeftThickness)
	v.SetDefault("render.text_scale", d.TextScale)
	v.SetDefault("render.max_chars", d.MaxChars)
	v.SetDefault("render.max_text_rows", d.MaxTextRows)
	v.SetDefault("render.frame_margin", d.FrameMargin)
	v.SetDefault("render.max_warp_thickness", d.MaxWarpThickness)
	v.SetDefault("render.max_stripes", d.MaxStripes)
	v.SetDefault("render.preview_width", d.PreviewWidth)
	v.SetDefault("render.preview_height", d.PreviewHeight)
	v.SetDefault("render.max_canvas_side", d.MaxCanvasSide)
	v.SetDefault("render.noise_octaves", d.NoiseOctaves)
	v.SetDefault("render.fast_noise_octaves", d.FastNoiseOctaves)
	v.SetDefault("render.background", d.Background)

	v.SetDefault("params_dir", "params")
	v.SetDefault("release", false)
}

var envPattern = regexp.MustCompile(`\${(\w+)(:([^}]*))?}`)

// expandEnv replaces ${VAR} and ${VAR:default}. Unset variables without a
// default are left as written.
func expandEnv(s string) string {
	return envPattern.ReplaceAllStringFunc(s, func(match string) string {
		m := envPattern.FindStringSubmatch(match)
		if val, ok := os.LookupEnv(m[1]); ok {
			return val
		}
		if m[2] != "" {
			return m[3]
		}
		return match
	})
}
