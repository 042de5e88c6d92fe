package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/omarshaarawi/sleeperbot/internal/config"
	"github.com/omarshaarawi/sleeperbot/internal/models"
)

// FantasyService renders chat-ready reports on top of the player and
// projection services.
type FantasyService struct {
	players     *PlayerService
	projections *ProjectionService
	defaults    config.Defaults
}

func NewFantasyService(players *PlayerService, projections *ProjectionService, defaults config.Defaults) *FantasyService {
	return &FantasyService{players: players, projections: projections, defaults: defaults}
}

func (s *FantasyService) Players() *PlayerService {
	return s.players
}

func (s *FantasyService) Projections() *ProjectionService {
	return s.projections
}

// ViewProjections fills username, league and matchup starters from the
// configured defaults before running the projection.
func (s *FantasyService) ViewProjections(ctx context.Context, req ProjectionRequest) (models.ProjectionReport, error) {
	if req.Username == "" {
		req.Username = s.defaults.Username
	}
	if req.LeagueName == "" {
		req.LeagueName = s.defaults.League
	}
	if req.MatchupStarters == nil {
		matchup := s.defaults.MatchupStarters
		req.MatchupStarters = &matchup
	}
	return s.projections.ViewProjections(ctx, req)
}

// GetProjections renders the projection report for req as a chat message.
func (s *FantasyService) GetProjections(ctx context.Context, req ProjectionRequest) (string, error) {
	report, err := s.ViewProjections(ctx, req)
	if err != nil {
		return "", fmt.Errorf("error fetching projections: %w", err)
	}
	return FormatProjectionsMessage(report), nil
}

func (s *FantasyService) GetPlayer(ctx context.Context, first, last string) (string, error) {
	players, err := s.players.LookupByName(ctx, first, last)
	if err != nil {
		return "", fmt.Errorf("error looking up player: %w", err)
	}

	if len(players) == 0 {
		return s.SearchPlayers(ctx, first+" "+last)
	}

	parts := make([]string, len(players))
	for i, p := range players {
		parts[i] = FormatPlayer(p)
	}
	return strings.Join(parts, "\n\n"), nil
}

func (s *FantasyService) GetPlayerByID(ctx context.Context, id string) (string, error) {
	p, err := s.players.LookupByID(ctx, id)
	if errors.Is(err, models.ErrNotFound) {
		return fmt.Sprintf("🔍 No player with id %s. Try /refresh if the store is stale.", escape(id)), nil
	}
	if err != nil {
		return "", fmt.Errorf("error looking up player: %w", err)
	}
	return FormatPlayer(p), nil
}

func (s *FantasyService) SearchPlayers(ctx context.Context, query string) (string, error) {
	matches, err := s.players.Search(ctx, query, 5)
	if err != nil {
		return "", fmt.Errorf("error searching players: %w", err)
	}

	if len(matches) == 0 {
		return fmt.Sprintf("🔍 No player found matching %s.", escape(query)), nil
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🔍 *Players matching:* %s\n\n", escape(query)))
	for _, m := range matches {
		team := m.Player.Team
		if team == "" {
			team = "FA"
		}
		sb.WriteString(fmt.Sprintf("• %s (%s - %s) `%s`\n", escape(m.Player.FullName()), escape(m.Player.Position), escape(team), m.Player.ID))
	}
	return strings.TrimRight(sb.String(), "\n"), nil
}

func (s *FantasyService) RefreshPlayers(ctx context.Context) (string, error) {
	n, err := s.players.Refresh(ctx)
	if err != nil {
		return "", fmt.Errorf("error refreshing players: %w", err)
	}
	if n == 0 {
		return "⚠️ Player directory was empty, store left unchanged.", nil
	}
	return fmt.Sprintf("✅ Refreshed %d players.", n), nil
}

func (s *FantasyService) GetLeagues(ctx context.Context, username, season, query string) (string, error) {
	if username == "" {
		username = s.defaults.Username
	}
	names, err := s.projections.LeagueSuggestions(ctx, username, season, query)
	if err != nil {
		return "", fmt.Errorf("error fetching leagues: %w", err)
	}
	if len(names) == 0 {
		return fmt.Sprintf("No leagues found for %s.", escape(username)), nil
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🏈 *Leagues for* %s\n\n", escape(username)))
	for _, name := range names {
		sb.WriteString(fmt.Sprintf("• %s\n", escape(name)))
	}
	return strings.TrimRight(sb.String(), "\n"), nil
}
