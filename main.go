package main

import (
	"io"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/misfinanzas/backend/internal/config"
	"github.com/misfinanzas/backend/internal/identity"
	"github.com/misfinanzas/backend/internal/models"
	"github.com/misfinanzas/backend/internal/router"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	// gin uses debug as the default mode, we use release for
	// security reasons
	gin.SetMode(cfg.Server.Mode)

	// Log format can be explicitly set.
	// If it is not set, it defaults to human readable for development
	// and JSON for release
	output := io.Writer(os.Stdout)
	if (cfg.Log.Format == "" && gin.IsDebugging()) || cfg.Log.Format == "human" {
		output = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if gin.IsDebugging() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(output).With().Timestamp().Logger()

	if cfg.Auth.SessionSecret == "" {
		log.Fatal().Msg("the session secret must be configured")
	}
	identity.SetSessionSecret(cfg.Auth.SessionSecret)

	// Create the data directory
	err = os.MkdirAll(filepath.Dir(cfg.Database.Path), os.ModePerm)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	err = models.Connect(cfg.Database.Path)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	r, teardown, err := router.Config(cfg)
	defer teardown()
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	router.AttachRoutes(cfg, r.Group("/"))

	if err := r.Run(cfg.Server.Address); err != nil {
		log.Fatal().Msg(err.Error())
	}
}
