package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"radiotrack/app"
	"radiotrack/routes"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	application := app.MustNew()
	defer application.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app.BootstrapDefaultAdmin(ctx, application.Config, application.Repo, application.Log)
	if n, err := application.Repo.SeedItems(ctx); err != nil {
		application.Log.Error().Err(err).Msg("seed starter inventory")
	} else if n > 0 {
		application.Log.Info().Int("items", n).Msg("seeded starter inventory")
	}

	go application.Backups.Start(ctx)

	routes.RegisterRoutes(application.Router, application)

	srv := &http.Server{
		Addr:    ":" + application.Config.Port,
		Handler: application.Router,
	}
	go func() {
		application.Log.Info().Str("addr", srv.Addr).Str("env", application.Config.Env).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			application.Log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	application.Log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		application.Log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
