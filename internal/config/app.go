package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/vancomm/minefield/internal/mines"
	"github.com/vancomm/minefield/internal/session"
)

type Config struct {
	Addr        string
	BasePath    string
	Development bool
	LogFile     string

	AllowedOrigins []string

	Game     mines.GameParams
	MaxCells int
	Geometry session.Geometry

	SessionTTL    time.Duration
	SweepInterval time.Duration
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("addr", ":8080")
	v.SetDefault("base_path", "")
	v.SetDefault("development", false)
	v.SetDefault("log_file", "")
	v.SetDefault("cors.allowed_origins", []string{})

	v.SetDefault("game.width", 9)
	v.SetDefault("game.height", 9)
	v.SetDefault("game.mine_count", 10)
	v.SetDefault("game.max_cells", mines.DefaultMaxCells)

	v.SetDefault("cell.width", 24)
	v.SetDefault("cell.height", 24)
	v.SetDefault("cell.origin_x", 0)
	v.SetDefault("cell.origin_y", 0)

	v.SetDefault("session.ttl", time.Hour)
	v.SetDefault("session.sweep_interval", time.Minute)
}

// Load reads the config file named by MINES_CONFIG, if any, then lets
// MINES_* environment variables override it, e.g. MINES_GAME_WIDTH.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("mines")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("unable to read config %s: %w", path, err)
		}
	}

	cfg := &Config{
		Addr:        v.GetString("addr"),
		BasePath:    v.GetString("base_path"),
		Development: v.GetBool("development"),
		LogFile:     v.GetString("log_file"),

		AllowedOrigins: v.GetStringSlice("cors.allowed_origins"),
		Game: mines.GameParams{
			Width:     v.GetInt("game.width"),
			Height:    v.GetInt("game.height"),
			MineCount: v.GetInt("game.mine_count"),
		},
		MaxCells: v.GetInt("game.max_cells"),
		Geometry: session.Geometry{
			OriginX:    v.GetInt("cell.origin_x"),
			OriginY:    v.GetInt("cell.origin_y"),
			CellWidth:  v.GetInt("cell.width"),
			CellHeight: v.GetInt("cell.height"),
		},
		SessionTTL:    v.GetDuration("session.ttl"),
		SweepInterval: v.GetDuration("session.sweep_interval"),
	}

	if cfg.MaxCells <= 0 {
		return nil, fmt.Errorf("game max cells must be positive")
	}
	if err := cfg.Game.ValidateArea(cfg.MaxCells); err != nil {
		return nil, fmt.Errorf("default game: %w", err)
	}
	if err := cfg.Geometry.Validate(); err != nil {
		return nil, err
	}
	if cfg.SweepInterval <= 0 {
		return nil, fmt.Errorf("session sweep interval must be positive")
	}

	return cfg, nil
}
