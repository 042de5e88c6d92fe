package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/omarshaarawi/sleeperbot/internal/api/fantasy"
	"github.com/omarshaarawi/sleeperbot/internal/api/sleeper"
	"github.com/omarshaarawi/sleeperbot/internal/config"
	"github.com/omarshaarawi/sleeperbot/internal/repository"
	"github.com/omarshaarawi/sleeperbot/internal/service"
)

const usage = `usage: sleeperbot <command> [flags]

commands:
  refresh            refresh the player store from the provider directory
  projections        weekly projections for a user's roster
  player             look up players in the store
  export             write a player's weekly projections or stats to a file
  sync-projections   store season projections on known players
  serve              run the HTTP API, scheduler and Telegram bot`

func main() {
	if err := run(os.Args[1:]); err != nil {
		slog.Error("Error running application", "error", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) == 0 || args[0] == "-h" || args[0] == "help" {
		fmt.Fprintln(os.Stderr, usage)
		return nil
	}

	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file loaded", "error", err)
	}

	cfg, err := config.New()
	if err != nil {
		return err
	}
	setupLogger(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := repository.Open(ctx, cfg.Store)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			slog.Error("Error closing player store", "error", err)
		}
	}()

	sleeperAPI := sleeper.NewAPI(sleeper.NewClient(cfg.Sleeper))
	fantasyAPI := fantasy.NewAPI(sleeperAPI)

	players := service.NewPlayerService(fantasyAPI, store)
	projections := service.NewProjectionService(fantasyAPI, players, cfg.Sleeper.Concurrency)
	fantasyService := service.NewFantasyService(players, projections, cfg.Defaults)

	cli := &app{cfg: cfg, fantasyService: fantasyService, out: os.Stdout}

	command, rest := args[0], args[1:]
	switch command {
	case "refresh":
		return cli.refresh(ctx, rest)
	case "projections":
		return cli.projections(ctx, rest)
	case "player":
		return cli.player(ctx, rest)
	case "export":
		return cli.export(ctx, rest)
	case "sync-projections":
		return cli.syncProjections(ctx, rest)
	case "serve":
		return cli.serve(ctx, rest)
	default:
		fmt.Fprintln(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", command)
	}
}

func setupLogger(level string) {
	var l slog.Level
	switch strings.ToLower(level) {
	case "debug":
		l = slog.LevelDebug
	case "warn":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		l = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l})))
}
