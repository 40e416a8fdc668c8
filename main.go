package main

import (
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mixtape-audio/html-scrabble/internal/game"
	"github.com/mixtape-audio/html-scrabble/internal/httpserver"
	"github.com/mixtape-audio/html-scrabble/internal/mail"
	"github.com/mixtape-audio/html-scrabble/internal/scrabble"
	"github.com/mixtape-audio/html-scrabble/internal/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := loadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	db, err := store.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open game store")
	}
	defer db.Close()

	var mailer game.Mailer
	if cfg.SMTPHost != "" {
		mailer = mail.NewSMTP(cfg.SMTPHost, cfg.SMTPPort, cfg.MailSender)
	} else {
		mailer = mail.Log{}
	}

	registry, err := game.NewRegistry(game.RegistryConfig{
		Store:     db,
		Mailer:    mailer,
		Evaluate:  scrabble.CalculateMove,
		BaseURL:   cfg.BaseURL,
		CacheSize: cfg.GameCacheSize,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build game registry")
	}

	srv := httpserver.New(registry, httpserver.Config{
		JWTSecret:       cfg.JWTSecret,
		DefaultLanguage: cfg.DefaultLanguage,
	})
	log.Info().Str("port", cfg.Port).Msg("starting scrabble server")
	if err := srv.Start(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
