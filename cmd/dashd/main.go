package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/denchenko/dash/internal/adapters"
	httpadapter "github.com/denchenko/dash/internal/adapters/primary/http"
	"github.com/denchenko/dash/internal/config"
	"github.com/denchenko/dash/internal/core"
	"github.com/denchenko/dash/internal/log"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	do "github.com/samber/do/v2"
)

const shutdownTimeout = 10 * time.Second

func main() {
	_ = godotenv.Load()

	injector := do.New(
		config.Package,
		log.Package,
		core.Package,
		adapters.SecondaryPackage,
		adapters.PrimaryPackage,
	)

	logger := do.MustInvoke[zerolog.Logger](injector)

	server, err := do.Invoke[*httpadapter.Server](injector)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create HTTP server")
	}

	go func() {
		if err := server.Start(); err != nil {
			logger.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal().Err(err).Msg("server forced to shutdown")
	}
}
