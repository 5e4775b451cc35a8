package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/randytsao24/railronda/internal/api"
	"github.com/randytsao24/railronda/internal/location"
)

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the HTTP API",
		Action: func(c *cli.Context) error {
			app, err := loadCore()
			if err != nil {
				return err
			}
			cfg := app.cfg

			gems := location.NewGemService(cfg.GemDataDir, app.resolver.Topology(), cfg.GemCacheTTL, cfg.StrictGems)
			defer gems.Close()

			server := &http.Server{
				Addr:         ":" + cfg.Port,
				Handler:      api.NewRouter(cfg, app.resolver, app.planner, gems),
				ReadTimeout:  15 * time.Second,
				WriteTimeout: 15 * time.Second,
				IdleTimeout:  60 * time.Second,
			}

			go func() {
				log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("railronda server starting")
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatal().Err(err).Msg("Server failed to start")
				}
			}()

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
			<-quit

			log.Info().Msg("Shutting down server...")

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			if err := server.Shutdown(ctx); err != nil {
				return err
			}
			log.Info().Msg("Server stopped")
			return nil
		},
	}
}
