package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/primacrm/primacli/internal/client/api"
	"github.com/primacrm/primacli/internal/client/auth"
	"github.com/primacrm/primacli/internal/client/cli"
	"github.com/primacrm/primacli/internal/client/iocli"
	"github.com/primacrm/primacli/internal/client/report"
	"github.com/primacrm/primacli/internal/client/storage/boltdb"
	"github.com/primacrm/primacli/internal/config"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	// Local .env overrides are a development convenience
	_ = godotenv.Load()

	cfg, err := config.New()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	setupLogging(cfg.Debug)

	stdio := iocli.NewStdio()

	args := flag.Args()
	if len(args) == 0 {
		cli.New(stdio, nil, nil, nil, cfg).PrintUsage()
		os.Exit(1)
	}
	command := args[0]

	ctx := context.Background()

	boltStorage, err := boltdb.New(ctx, cfg.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		if err := boltStorage.Close(); err != nil {
			slog.Error("failed to close database", "error", err)
		}
	}()

	apiClient := api.NewClient(cfg.APIBaseURL, cfg.HTTPTimeout)
	authService := auth.NewService(apiClient, boltStorage, cfg.AccessTokenLookahead)
	controller := report.NewController(authService, apiClient, boltStorage, boltStorage, cfg.CreatedBy)

	c := cli.New(stdio, apiClient, authService, controller, cfg)
	if err := c.Run(ctx, command, args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func setupLogging(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}

func printVersion() {
	fmt.Printf("Prima CRM Client\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
