package config

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

type LogConfig struct {
	Level      string `json:"level" yaml:"level"`
	File       string `json:"file" yaml:"file"`
	MaxSize    int    `json:"max_size" yaml:"max_size"` // megabytes
	MaxBackups int    `json:"max_backups" yaml:"max_backups"`
	MaxAge     int    `json:"max_age" yaml:"max_age"` // days
}

type GameConfig struct {
	DefaultHeight    int `json:"default_height" yaml:"default_height"`
	DefaultWidth     int `json:"default_width" yaml:"default_width"`
	DefaultMineCount int `json:"default_mine_count" yaml:"default_mine_count"`
	MaxCells         int `json:"max_cells" yaml:"max_cells"`
}

type SessionsConfig struct {
	IdleTimeout   Duration `json:"idle_timeout" yaml:"idle_timeout"`
	SweepInterval Duration `json:"sweep_interval" yaml:"sweep_interval"`
}

type Config struct {
	Mode     string         `json:"mode" yaml:"mode"`
	Addr     string         `json:"addr" yaml:"addr"`
	BasePath string         `json:"base_path" yaml:"base_path"`
	Log      LogConfig      `json:"log" yaml:"log"`
	Game     GameConfig     `json:"game" yaml:"game"`
	Sessions SessionsConfig `json:"sessions" yaml:"sessions"`
}

func Default() *Config {
	return &Config{
		Mode: "production",
		Addr: ":8080",
		Log: LogConfig{
			Level:      "info",
			MaxSize:    50,
			MaxBackups: 3,
			MaxAge:     28,
		},
		Game: GameConfig{
			DefaultHeight:    9,
			DefaultWidth:     9,
			DefaultMineCount: 10,
			MaxCells:         100 * 100,
		},
		Sessions: SessionsConfig{
			IdleTimeout:   Duration{time.Hour},
			SweepInterval: Duration{time.Minute},
		},
	}
}

// Read loads the file at path over the defaults. Files ending in .yaml or
// .yml are parsed as YAML, everything else as JSON. An empty path yields
// the defaults.
func Read(path string) (*Config, error) {
	config := Default()
	if path == "" {
		return config, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read config %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, config)
	default:
		err = json.Unmarshal(b, config)
	}
	if err != nil {
		return nil, fmt.Errorf("unable to parse config %s: %w", path, err)
	}

	return config, nil
}

// Load reads the file at path and applies env overrides on top.
func Load(path string) (*Config, error) {
	config, err := Read(path)
	if err != nil {
		return nil, err
	}
	if err := config.ApplyEnv(); err != nil {
		return nil, err
	}
	return config, config.Validate()
}

func (c Config) Validate() error {
	g := c.Game
	if g.DefaultHeight <= 0 || g.DefaultWidth <= 0 || g.DefaultWidth > math.MaxInt/g.DefaultHeight {
		return fmt.Errorf("default board dimensions must be positive")
	}
	if g.DefaultMineCount <= 0 || g.DefaultMineCount >= g.DefaultHeight*g.DefaultWidth {
		return fmt.Errorf("default mine count must be in (0, %d)", g.DefaultHeight*g.DefaultWidth)
	}
	if g.MaxCells > 0 && g.DefaultHeight*g.DefaultWidth > g.MaxCells {
		return fmt.Errorf("default board exceeds max_cells")
	}
	if c.Sessions.IdleTimeout.Duration > 0 && c.Sessions.SweepInterval.Duration <= 0 {
		return fmt.Errorf("sweep_interval must be positive when idle_timeout is set")
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}

func (c Config) Fields() logrus.Fields {
	return map[string]any{
		"mode":                c.Mode,
		"addr":                c.Addr,
		"base_path":           c.BasePath,
		"log_level":           c.Log.Level,
		"log_file":            c.Log.File,
		"game_default":        fmt.Sprintf("%dx%d(%d)", c.Game.DefaultHeight, c.Game.DefaultWidth, c.Game.DefaultMineCount),
		"game_max_cells":      c.Game.MaxCells,
		"session_idle":        c.Sessions.IdleTimeout.String(),
		"session_sweep_every": c.Sessions.SweepInterval.String(),
	}
}

func (c Config) Production() bool {
	return c.Mode == "production"
}

func (c Config) Development() bool {
	return c.Mode != "production"
}
