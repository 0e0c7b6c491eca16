package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/asynkron/protoactor-go/actor"
	zLog "github.com/rs/zerolog/log"

	"advisor-dash/config"
	"advisor-dash/internal/api"
	"advisor-dash/internal/client"
	"advisor-dash/pkg/logger"
)

func main() {
	log.Println("starting server")
	cfg := config.Load()

	err := logger.NewGlobal(cfg.LogLevel, cfg.LogPretty)
	if err != nil {
		log.Panicf("failed to initialize logger: %v", err)
	}

	coordinator := client.New(cfg.CoordinatorURL,
		client.WithAnalyzeTimeout(cfg.AnalyzeTimeout),
		client.WithAuthURL(cfg.AuthURL),
	)

	system := actor.NewActorSystem().Root
	app := api.New(system, coordinator, cfg.Port)

	go func() {
		err := app.Start()
		if err != nil {
			zLog.Panic().Err(err).Msg("server crash")
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	stop()
	zLog.Info().Msg("shutting down gracefully")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := app.Stop(ctx); err != nil {
		zLog.Panic().Err(err).Msg("server forced to shutdown")
	}

	zLog.Info().Msg("server exiting")
}
