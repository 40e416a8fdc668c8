// config.go
//
// Server configuration, read from the environment (optionally seeded
// from a .env file in development).

package main

import (
	"crypto/rand"
	"encoding/hex"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog/log"
)

// Config holds every tunable of the server process.
type Config struct {
	Port    string `env:"PORT" envDefault:"9093"`
	BaseURL string `env:"BASE_URL" envDefault:"http://localhost:9093/"`
	DBPath  string `env:"DB_PATH" envDefault:"./data/games.db"`

	// JWTSecret signs capability cookies. When unset a random secret
	// is generated, which invalidates cookies across restarts.
	JWTSecret string `env:"JWT_SECRET"`

	LogLevel        string `env:"LOG_LEVEL" envDefault:"info"`
	DefaultLanguage string `env:"DEFAULT_LANGUAGE" envDefault:"German"`
	GameCacheSize   int    `env:"GAME_CACHE_SIZE" envDefault:"512"`

	MailSender string `env:"MAIL_SENDER" envDefault:"Scrabble Server <scrabble@localhost>"`
	SMTPHost   string `env:"SMTP_HOST"`
	SMTPPort   int    `env:"SMTP_PORT" envDefault:"25"`
}

// loadConfig parses the environment into a Config.
func loadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	if cfg.JWTSecret == "" {
		var b [32]byte
		_, _ = rand.Read(b[:])
		cfg.JWTSecret = hex.EncodeToString(b[:])
		log.Warn().Msg("JWT_SECRET not set; capability cookies will not survive a restart")
	}
	return cfg, nil
}
