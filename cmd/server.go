package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SafeMPC/onramp-service/internal/api"
	"github.com/SafeMPC/onramp-service/internal/api/router"
	"github.com/SafeMPC/onramp-service/internal/config"
	"github.com/SafeMPC/onramp-service/internal/util"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newServerCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "server",
		Short: "Starts the server",
		Long: `Starts the stateless RESTful JSON server

Requires configuration through ENV.
Remote session tokens additionally need a CDP API key file or CDP_API_KEY and CDP_API_SECRET.`,
		Run: func(_ *cobra.Command, _ []string) {
			runServer()
		},
	}
}

func runServer() {
	config := config.DefaultServiceConfigFromEnv()

	util.ConfigureGlobalLogger(config.Logger.Level, config.Logger.PrettyPrintConsole, config.Logger.LogCaller)

	if config.Echo.Debug {
		log.Warn().Msg("Echo debug mode is enabled, internal error details are exposed")
	}

	s, err := api.InitNewServer(config)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize server")
	}

	if err := router.Init(s); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize router")
	}

	if !s.CDP.Configured(context.Background()) {
		log.Warn().Msg("CDP credentials not configured, all session tokens will be fallback tokens")
	}

	go func() {
		if err := s.Start(); err != nil {
			if errors.Is(err, http.ErrServerClosed) {
				log.Info().Msg("Server closed")
			} else {
				log.Fatal().Err(err).Msg("Failed to start server")
			}
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if errs := s.Shutdown(ctx); len(errs) > 0 {
		log.Fatal().Errs("shutdown_errors", errs).Msg("Failed to gracefully shut down server")
	}

	log.Info().Msg("Server shutdown complete")
}
