package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/omarshaarawi/sleeperbot/internal/config"
	"github.com/omarshaarawi/sleeperbot/internal/service"
)

const jobTimeout = 5 * time.Minute

type Scheduler struct {
	s              gocron.Scheduler
	fantasyService *service.FantasyService
	sendMessage    func(string) error
	cfg            config.Schedule
}

// NewScheduler builds a scheduler in cfg.Timezone. sendMessage may be nil,
// in which case only the store refresh job runs.
func NewScheduler(fantasyService *service.FantasyService, sendMessage func(string) error, cfg config.Schedule) (*Scheduler, error) {
	location, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		slog.Error("Failed to load location, using UTC", "timezone", cfg.Timezone, "error", err)
		location = time.UTC
	}

	s, err := gocron.NewScheduler(
		gocron.WithLocation(location),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	return &Scheduler{
		s:              s,
		fantasyService: fantasyService,
		sendMessage:    sendMessage,
		cfg:            cfg,
	}, nil
}

func (s *Scheduler) Start() error {
	_, err := s.s.NewJob(
		gocron.CronJob(s.cfg.RefreshCron, false),
		gocron.NewTask(s.refreshPlayers),
		gocron.WithName("refresh-players"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("failed to create refresh job: %w", err)
	}

	if s.sendMessage != nil {
		_, err = s.s.NewJob(
			gocron.CronJob(s.cfg.ReportCron, false),
			gocron.NewTask(s.sendProjections),
			gocron.WithName("weekly-projections"),
		)
		if err != nil {
			return fmt.Errorf("failed to create projections job: %w", err)
		}
	}

	s.s.Start()
	return nil
}

func (s *Scheduler) Stop() error {
	return s.s.Shutdown()
}

func (s *Scheduler) refreshPlayers() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	report, err := s.fantasyService.RefreshPlayers(ctx)
	if err != nil {
		slog.Error("Failed to refresh players", "error", err)
		return
	}
	slog.Info("Scheduled refresh finished", "result", report)
}

func (s *Scheduler) sendProjections() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	report, err := s.fantasyService.GetProjections(ctx, service.ProjectionRequest{})
	if err != nil {
		slog.Error("Failed to get projections", "error", err)
		return
	}
	if err := s.sendMessage(report); err != nil {
		slog.Error("Failed to send projections", "error", err)
	}
}
