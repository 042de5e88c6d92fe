package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/omarshaarawi/sleeperbot/internal/bot"
	"github.com/omarshaarawi/sleeperbot/internal/config"
	"github.com/omarshaarawi/sleeperbot/internal/scheduler"
	"github.com/omarshaarawi/sleeperbot/internal/server"
	"github.com/omarshaarawi/sleeperbot/internal/service"
)

type app struct {
	cfg            *config.Config
	fantasyService *service.FantasyService
	out            io.Writer
}

func (a *app) refresh(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("refresh", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	n, err := a.fantasyService.Players().Refresh(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Refreshed %d players\n", n)
	return nil
}

func (a *app) projections(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("projections", flag.ContinueOnError)
	user := fs.String("user", "", "Sleeper username (default $SLEEPER_USERNAME)")
	league := fs.String("league", "", "league name (default $SLEEPER_LEAGUE)")
	season := fs.String("season", "", "season year (default current)")
	week := fs.String("week", "", `comma-separated weeks, or "all" (default current week)`)
	matchup := fs.Bool("matchup", false, "use the week's matchup lineup for starters (default $MATCHUP_STARTERS)")
	asJSON := fs.Bool("json", false, "write JSON instead of a table")
	if err := fs.Parse(args); err != nil {
		return err
	}

	req := service.ProjectionRequest{
		Username:   *user,
		LeagueName: *league,
		Season:     *season,
	}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "matchup" {
			req.MatchupStarters = matchup
		}
	})
	if strings.EqualFold(*week, "all") {
		req.AllWeeks = true
	} else {
		req.Weeks = splitList(*week)
	}

	report, err := a.fantasyService.ViewProjections(ctx, req)
	if err != nil {
		return err
	}

	if *asJSON {
		return service.WriteJSON(a.out, report)
	}
	return service.WriteTable(a.out, report)
}

func (a *app) player(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("player", flag.ContinueOnError)
	id := fs.String("id", "", "player id")
	first := fs.String("first", "", "first name")
	last := fs.String("last", "", "last name")
	search := fs.String("search", "", "fuzzy name search")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var (
		text string
		err  error
	)
	switch {
	case *id != "":
		text, err = a.fantasyService.GetPlayerByID(ctx, *id)
	case *first != "" && *last != "":
		text, err = a.fantasyService.GetPlayer(ctx, *first, *last)
	case *search != "":
		text, err = a.fantasyService.SearchPlayers(ctx, *search)
	default:
		return errors.New("player: one of -id, -first and -last, or -search is required")
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, text)
	return nil
}

func (a *app) export(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	playerID := fs.String("player", "", "player id (required)")
	season := fs.String("season", "", "season year (required)")
	week := fs.String("week", "", "comma-separated weeks (default all)")
	stats := fs.Bool("stats", false, "export actual stats instead of projections")
	out := fs.String("out", "", "output file (default projection.json or stats.json)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *playerID == "" || *season == "" {
		return errors.New("export: -player and -season are required")
	}

	kind, path := service.ExportProjections, "projection.json"
	if *stats {
		kind, path = service.ExportStats, "stats.json"
	}
	if *out != "" {
		path = *out
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	points, err := a.fantasyService.Projections().ExportWeekly(ctx, f, *playerID, *season, kind, splitList(*week))
	if err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	fmt.Fprintf(a.out, "Wrote %d weeks of %s to %s\n", len(points), kind, path)
	return nil
}

func (a *app) syncProjections(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("sync-projections", flag.ContinueOnError)
	season := fs.String("season", "", "season year (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *season == "" {
		return errors.New("sync-projections: -season is required")
	}

	n, err := a.fantasyService.Players().SyncSeasonProjections(ctx, *season)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Updated season projections for %d players\n", n)
	return nil
}

func (a *app) serve(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	addr := fs.String("addr", a.cfg.HTTP.Addr, "HTTP listen address")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var sendMessage func(string) error
	if a.cfg.TelegramBot.Enabled() {
		telegramBot, err := bot.NewTelegramBot(a.cfg.TelegramBot.Token, a.cfg.TelegramBot.ChatID, a.fantasyService)
		if err != nil {
			return err
		}
		if a.cfg.TelegramBot.ChatID != 0 {
			sendMessage = telegramBot.SendMessage
		}

		go func() {
			if err := telegramBot.Start(ctx); err != nil {
				slog.Error("Error running telegram bot", "error", err)
			}
		}()
	} else {
		slog.Info("Telegram bot disabled, TELEGRAM_TOKEN not set")
	}

	sched, err := scheduler.NewScheduler(a.fantasyService, sendMessage, a.cfg.Schedule)
	if err != nil {
		return err
	}
	if err := sched.Start(); err != nil {
		return err
	}
	defer func() {
		if err := sched.Stop(); err != nil {
			slog.Error("Error stopping scheduler", "error", err)
		}
	}()

	srv := &http.Server{
		Addr:              *addr,
		Handler:           server.NewHandler(a.fantasyService).Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Listening", "addr", *addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	}
	slog.Info("Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Error shutting down HTTP server", "error", err)
	}
	return nil
}

func splitList(raw string) []string {
	var out []string
	for _, s := range strings.Split(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
