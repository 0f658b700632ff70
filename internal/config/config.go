package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type LogConfig struct {
	Level     string `yaml:"level"`
	Format    string `yaml:"format"`
	ToConsole bool   `yaml:"to_console"`
	ToFile    bool   `yaml:"to_file"`
	File      string `yaml:"file"`
	Caller    bool   `yaml:"caller"`
}

// PaletteConfig holds board colors as "#rrggbb" strings. Empty values keep the defaults.
type PaletteConfig struct {
	Light    string `yaml:"light"`
	Dark     string `yaml:"dark"`
	Hover    string `yaml:"hover"`
	Selected string `yaml:"selected"`
	Target   string `yaml:"target"`
}

type AppConfig struct {
	ListenAddr     string        `yaml:"listen_addr"`
	AllowedOrigins []string      `yaml:"allowed_origins"`
	MaxTables      int           `yaml:"max_tables"`
	TableIdleTTL   time.Duration `yaml:"table_idle_ttl"`
	ReapInterval   time.Duration `yaml:"reap_interval"`
	SquareSize     int           `yaml:"square_size"`

	Log     LogConfig     `yaml:"log"`
	Palette PaletteConfig `yaml:"palette"`
}

func Default() *AppConfig {
	return &AppConfig{
		ListenAddr:     ":3000",
		AllowedOrigins: []string{"http://localhost:5173"},
		MaxTables:      200,
		TableIdleTTL:   30 * time.Minute,
		ReapInterval:   time.Minute,
		SquareSize:     72,
		Log: LogConfig{
			Level:     "info",
			Format:    "legacy",
			ToConsole: true,
		},
	}
}

// Load builds the configuration from defaults, an optional YAML file named by
// CLICKCHESS_CONFIG, and finally environment overrides.
func Load() (*AppConfig, error) {
	cfg := Default()

	if path := strings.TrimSpace(os.Getenv("CLICKCHESS_CONFIG")); path != "" {
		if err := cfg.applyFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *AppConfig) applyFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func (c *AppConfig) applyEnv() error {
	if v := strings.TrimSpace(os.Getenv("LISTEN_ADDR")); v != "" {
		c.ListenAddr = v
	}
	if v := strings.TrimSpace(os.Getenv("ALLOWED_ORIGINS")); v != "" {
		c.AllowedOrigins = splitList(v)
	}
	if err := envInt("MAX_TABLES", &c.MaxTables); err != nil {
		return err
	}
	if err := envDuration("TABLE_IDLE_TTL", &c.TableIdleTTL); err != nil {
		return err
	}
	if err := envDuration("REAP_INTERVAL", &c.ReapInterval); err != nil {
		return err
	}
	if err := envInt("SQUARE_SIZE", &c.SquareSize); err != nil {
		return err
	}

	if v := strings.TrimSpace(os.Getenv("LOG_LEVEL")); v != "" {
		c.Log.Level = v
	}
	if v := strings.TrimSpace(os.Getenv("LOG_FORMAT")); v != "" {
		c.Log.Format = v
	}
	if err := envBool("LOG_TO_CONSOLE", &c.Log.ToConsole); err != nil {
		return err
	}
	if err := envBool("LOG_TO_FILE", &c.Log.ToFile); err != nil {
		return err
	}
	if v := strings.TrimSpace(os.Getenv("LOG_FILE")); v != "" {
		c.Log.File = v
	}
	if err := envBool("LOG_CALLER", &c.Log.Caller); err != nil {
		return err
	}

	for env, dst := range map[string]*string{
		"PALETTE_LIGHT":    &c.Palette.Light,
		"PALETTE_DARK":     &c.Palette.Dark,
		"PALETTE_HOVER":    &c.Palette.Hover,
		"PALETTE_SELECTED": &c.Palette.Selected,
		"PALETTE_TARGET":   &c.Palette.Target,
	} {
		if v := strings.TrimSpace(os.Getenv(env)); v != "" {
			*dst = v
		}
	}
	return nil
}

func envInt(key string, dst *int) error {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%s: invalid integer %q", key, v)
	}
	*dst = n
	return nil
}

func envDuration(key string, dst *time.Duration) error {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("%s: invalid duration %q", key, v)
	}
	*dst = d
	return nil
}

func envBool(key string, dst *bool) error {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("%s: invalid boolean %q", key, v)
	}
	*dst = b
	return nil
}

func (c *AppConfig) Validate() error {
	if strings.TrimSpace(c.ListenAddr) == "" {
		return errors.New("listen address is required")
	}
	if c.MaxTables <= 0 {
		return errors.New("max tables must be positive")
	}
	if c.TableIdleTTL <= 0 {
		return errors.New("table idle ttl must be positive")
	}
	if c.ReapInterval <= 0 {
		return errors.New("reap interval must be positive")
	}
	if c.SquareSize < 16 {
		return errors.New("square size must be at least 16")
	}
	return nil
}

func splitList(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ",") {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
