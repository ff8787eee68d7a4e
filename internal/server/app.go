// Package server is the I/O shell around the simulation core: it loads
// the content bundle, owns the hub of running rooms and speaks JSON
// frames over WebSocket to a browser client.
package server

import (
	"net/http"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/rs/zerolog"

	"BitwoodRPG/internal/content"
)

// Config is read from an optional YAML file and the environment;
// environment wins.
type Config struct {
	Addr       string  `yaml:"addr" env:"BITWOOD_ADDR" env-default:":8080"`
	ViewWidth  float64 `yaml:"view_width" env:"BITWOOD_VIEW_W" env-default:"960"`
	ViewHeight float64 `yaml:"view_height" env:"BITWOOD_VIEW_H" env-default:"540"`
	LogLevel   string  `yaml:"log_level" env:"BITWOOD_LOG_LEVEL" env-default:"info"`
}

// LoadConfig reads configuration. A missing file is not an error; the
// defaults and environment still apply.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := cleanenv.ReadConfig(path, &cfg); err != nil {
				return cfg, err
			}
			return cfg, nil
		}
	}
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(lvl).
		With().Timestamp().Logger()
}

// StartApp loads content, builds the hub and serves until the listener
// fails. Content errors are fatal here, before anything is served.
func StartApp(cfg Config) error {
	log := newLogger(cfg.LogLevel)

	bundle, err := content.LoadDefault()
	if err != nil {
		log.Error().Err(err).Msg("content failed validation")
		return err
	}
	log.Info().
		Int("map_w", bundle.Tiles.Width).
		Int("map_h", bundle.Tiles.Height).
		Int("npcs", len(bundle.NPCs)).
		Msg("content loaded")

	hub := NewHub(bundle, log)
	mux := newMux(hub, cfg)
	log.Info().Str("addr", cfg.Addr).Msg("starting web server")
	return http.ListenAndServe(cfg.Addr, mux)
}
