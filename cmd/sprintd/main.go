package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/placementsprint/sprintd/agent"
	"github.com/placementsprint/sprintd/config"
	"github.com/placementsprint/sprintd/llm"
	"github.com/placementsprint/sprintd/observability"
	"github.com/placementsprint/sprintd/server"
)

func main() {
	configFlag := flag.String("c", "", "Path to YAML config file")
	portFlag := flag.Int("p", 0, "Listen port (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %+v\n", err)
		os.Exit(1)
	}
	if *portFlag != 0 {
		cfg.Server.Port = *portFlag
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	conn := llm.Connection{
		APIKey:  os.Getenv("OPENROUTER_API_KEY"),
		BaseURL: cfg.BaseURL,
		Headers: cfg.AttributionHeaders(),
	}

	intentClients, err := llm.NewPair(ctx, cfg.LLMClient, conn, cfg.PrimaryModel, cfg.FallbackModel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building intent clients: %+v\n", err)
		os.Exit(1)
	}
	mainClients, err := llm.NewPair(ctx, cfg.LLMClient, conn, cfg.PrimaryModel, cfg.FallbackModel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building main clients: %+v\n", err)
		os.Exit(1)
	}

	orch := agent.New(intentClients, mainClients)

	log := observability.Logger()
	log.Info("starting sprintd",
		"client", cfg.LLMClient,
		"primary_model", cfg.PrimaryModel,
		"fallback_model", cfg.FallbackModel,
		"port", cfg.Server.Port,
	)

	err = server.Start(ctx, server.Options{
		Orchestrator: orch,
		Port:         cfg.Server.Port,
		PublicDir:    cfg.Server.PublicDir,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %+v\n", err)
		os.Exit(1)
	}
}
