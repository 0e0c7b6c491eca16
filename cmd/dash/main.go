package main

import (
	"context"
	"log"
	"time"

	"github.com/asynkron/protoactor-go/actor"
	tea "github.com/charmbracelet/bubbletea"
	zLog "github.com/rs/zerolog/log"

	"advisor-dash/config"
	"advisor-dash/internal/client"
	"advisor-dash/internal/ui"
	wfactor "advisor-dash/internal/workflow/actor"
	"advisor-dash/internal/workflow/handler"
	"advisor-dash/internal/workflow/sim"
	"advisor-dash/pkg/logger"
)

func main() {
	cfg := config.Load()

	// Pretty console logging would fight the TUI for the terminal.
	err := logger.NewGlobal(cfg.LogLevel, false)
	if err != nil {
		log.Panicf("failed to initialize logger: %v", err)
	}

	coordinator := client.New(cfg.CoordinatorURL,
		client.WithAnalyzeTimeout(cfg.AnalyzeTimeout),
		client.WithAuthURL(cfg.AuthURL),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if cfg.AuthURL != "" {
		if err := coordinator.Login(ctx, cfg.DemoUsername, cfg.DemoPassword); err != nil {
			zLog.Warn().Err(err).Msg("demo login failed, continuing without token")
		}
	}
	coordinator.WaitReady(ctx, 5*time.Second)
	cancel()

	system := actor.NewActorSystem().Root
	props := actor.PropsFromProducer(wfactor.Producer(handler.New(coordinator), sim.Default()))
	pid := system.Spawn(props)
	defer system.Stop(pid)

	model := ui.NewModel(system, pid, coordinator, cfg.DemoUserID, cfg.DemoAccountID)
	program := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := program.Run(); err != nil {
		zLog.Panic().Err(err).Msg("dashboard crash")
	}
}
