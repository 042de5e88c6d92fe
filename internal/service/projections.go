package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"golang.org/x/sync/errgroup"

	"github.com/omarshaarawi/sleeperbot/internal/models"
)

// ProjectionRequest selects whose roster to project and for which weeks.
// Season and Weeks default to the current NFL state when empty. AllWeeks
// keeps every week of the season and overrides Weeks. A nil
// MatchupStarters means "use the configured default".
type ProjectionRequest struct {
	Username        string
	LeagueName      string
	Season          string
	Weeks           []string
	AllWeeks        bool
	MatchupStarters *bool
}

// ProjectionService resolves user, league and roster, then fetches each
// rostered player's weekly projection and joins it with the Player Store.
type ProjectionService struct {
	provider    Provider
	players     *PlayerService
	concurrency int
}

func NewProjectionService(provider Provider, players *PlayerService, concurrency int) *ProjectionService {
	if concurrency < 1 {
		concurrency = 1
	}
	return &ProjectionService{provider: provider, players: players, concurrency: concurrency}
}

func (s *ProjectionService) ResolveUser(ctx context.Context, username string) (models.User, error) {
	user, err := s.provider.GetUser(ctx, username)
	if err != nil {
		return models.User{}, fmt.Errorf("resolving user: %w", err)
	}
	return user, nil
}

// ResolveLeague picks the user's league named leagueName in season. When
// several leagues share the name the first in provider order wins and the
// ambiguity is logged.
func (s *ProjectionService) ResolveLeague(ctx context.Context, user models.User, leagueName, season string) (models.League, error) {
	leagues, err := s.provider.GetLeaguesForUser(ctx, user.ID, season)
	if err != nil {
		return models.League{}, fmt.Errorf("resolving league: %w", err)
	}

	match := models.MatchLeague(leagues, leagueName)
	switch match.Kind {
	case models.LeagueFound:
		return match.League, nil
	case models.LeagueAmbiguous:
		ids := make([]string, len(match.Candidates))
		for i, l := range match.Candidates {
			ids[i] = l.ID
		}
		slog.Warn("Multiple leagues share a name, using the first",
			"league", leagueName, "season", season, "candidates", ids, "chosen", match.League.ID)
		return match.League, nil
	default:
		msg := fmt.Sprintf("league %q in season %s", leagueName, season)
		if suggestion := closestLeague(leagues, leagueName); suggestion != "" {
			msg += fmt.Sprintf(" (did you mean %q?)", suggestion)
		}
		return models.League{}, fmt.Errorf("resolving league: %s: %w", msg, models.ErrNotFound)
	}
}

func closestLeague(leagues []models.League, name string) string {
	best, bestScore := "", searchThreshold/2
	for _, l := range leagues {
		if score := similarity(strings.ToLower(name), strings.ToLower(l.Name)); score > bestScore {
			best, bestScore = l.Name, score
		}
	}
	return best
}

// ResolveRoster returns the roster owned by user. With matchupWeek set the
// starters come from that week's matchup; reserve and taxi always come from
// the season roster.
func (s *ProjectionService) ResolveRoster(ctx context.Context, league models.League, user models.User, matchupWeek string) (models.Roster, error) {
	rosters, err := s.provider.GetRosters(ctx, league.ID)
	if err != nil {
		return models.Roster{}, fmt.Errorf("resolving roster: %w", err)
	}

	var roster *models.Roster
	for i := range rosters {
		if rosters[i].OwnerID == user.ID {
			roster = &rosters[i]
			break
		}
	}
	if roster == nil {
		return models.Roster{}, fmt.Errorf("resolving roster: user %s in league %s: %w", user.Username, league.ID, models.ErrNotFound)
	}

	if matchupWeek == "" {
		return *roster, nil
	}

	matchups, err := s.provider.GetMatchups(ctx, league.ID, matchupWeek)
	if err != nil {
		return models.Roster{}, fmt.Errorf("resolving roster: %w", err)
	}
	for _, m := range matchups {
		if m.RosterID == roster.ID {
			out := *roster
			out.Starters = m.Starters
			return out, nil
		}
	}

	slog.Warn("Roster missing from matchup, using season starters",
		"league", league.ID, "roster", roster.ID, "week", matchupWeek)
	return *roster, nil
}

// FetchWeeklyProjection returns the player's PPR projection for weeks. An
// empty weeks slice keeps the full season. Requested weeks absent from the
// provider payload are omitted, not errors.
func (s *ProjectionService) FetchWeeklyProjection(ctx context.Context, playerID, season string, weeks []string) (models.WeeklyPoints, error) {
	points, err := s.provider.GetWeeklyProjections(ctx, playerID, season)
	if err != nil {
		return models.WeeklyPoints{}, err
	}
	return FilterWeeks(points, weeks), nil
}

// FilterWeeks keeps the requested weeks. A nil or empty weeks slice keeps
// everything.
func FilterWeeks(points models.WeeklyPoints, weeks []string) models.WeeklyPoints {
	out := make(models.WeeklyPoints)
	if len(weeks) == 0 {
		for week, pts := range points {
			out[week] = pts
		}
		return out
	}
	for _, week := range weeks {
		if pts, ok := points[week]; ok {
			out[week] = pts
		}
	}
	return out
}

// ViewProjections runs the full orchestration. User, league and roster
// failures abort; per-player failures are recorded on that player's row.
func (s *ProjectionService) ViewProjections(ctx context.Context, req ProjectionRequest) (models.ProjectionReport, error) {
	runID := uuid.NewString()
	logger := slog.With("run_id", runID, "username", req.Username, "league", req.LeagueName)

	req, err := s.withDefaults(ctx, req)
	if err != nil {
		return models.ProjectionReport{}, err
	}
	logger.Info("Viewing projections", "season", req.Season, "weeks", req.Weeks)

	user, err := s.ResolveUser(ctx, req.Username)
	if err != nil {
		return models.ProjectionReport{}, err
	}

	league, err := s.ResolveLeague(ctx, user, req.LeagueName, req.Season)
	if err != nil {
		return models.ProjectionReport{}, err
	}

	matchupWeek := ""
	if req.MatchupStarters != nil && *req.MatchupStarters {
		if len(req.Weeks) == 1 {
			matchupWeek = req.Weeks[0]
		} else {
			logger.Warn("Matchup starters need exactly one week, using season starters", "weeks", req.Weeks)
		}
	}

	roster, err := s.ResolveRoster(ctx, league, user, matchupWeek)
	if err != nil {
		return models.ProjectionReport{}, err
	}

	if n, err := s.players.Count(ctx); err == nil && n == 0 {
		logger.Warn("Player store is empty, names will be missing until it is refreshed")
	}

	rows := make([]models.PlayerProjection, len(roster.Players))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, playerID := range roster.Players {
		g.Go(func() error {
			rows[i] = s.projectPlayer(gctx, playerID, req, roster)
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return models.ProjectionReport{}, fmt.Errorf("viewing projections: %w", err)
	}

	report := models.ProjectionReport{
		RunID:       runID,
		Username:    user.Username,
		LeagueID:    league.ID,
		LeagueName:  league.Name,
		Season:      req.Season,
		Weeks:       req.Weeks,
		Rows:        rows,
		GeneratedAt: time.Now(),
	}

	if failed := report.Failed(); len(failed) > 0 {
		logger.Warn("Some players could not be projected", "failed", len(failed), "total", len(rows))
	}
	return report, nil
}

func (s *ProjectionService) projectPlayer(ctx context.Context, playerID string, req ProjectionRequest, roster models.Roster) models.PlayerProjection {
	row := models.PlayerProjection{
		PlayerID: playerID,
		Weeks:    models.WeeklyPoints{},
		Status:   models.ClassifyStatus(playerID, roster),
	}

	var errs []error
	points, err := s.FetchWeeklyProjection(ctx, playerID, req.Season, req.Weeks)
	if err != nil {
		errs = append(errs, fmt.Errorf("fetching projection: %w", err))
	} else {
		row.Weeks = points
	}

	player, err := s.players.LookupByID(ctx, playerID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			err = fmt.Errorf("%w: %w", models.ErrStoreStale, err)
		}
		errs = append(errs, err)
	} else {
		row.Name = player.FullName()
		row.Position = player.Position
		row.Team = player.Team
	}

	row.Err = errors.Join(errs...)
	return row
}

func (s *ProjectionService) withDefaults(ctx context.Context, req ProjectionRequest) (ProjectionRequest, error) {
	if req.Username == "" || req.LeagueName == "" {
		return req, fmt.Errorf("username and league name are required: %w", models.ErrInvalidRequest)
	}

	if req.AllWeeks {
		req.Weeks = nil
	}

	needWeek := len(req.Weeks) == 0 && !req.AllWeeks
	if req.Season != "" && !needWeek {
		return req, nil
	}

	state, err := s.provider.GetNFLState(ctx)
	if err != nil {
		return req, fmt.Errorf("resolving current season: %w", err)
	}
	if req.Season == "" {
		req.Season = state.Season
	}
	if needWeek {
		req.Weeks = []string{state.Week}
	}
	return req, nil
}

// LeagueSuggestions returns the user's league names closest to query, for
// interactive prompts.
func (s *ProjectionService) LeagueSuggestions(ctx context.Context, username, season, query string) ([]string, error) {
	if season == "" {
		state, err := s.provider.GetNFLState(ctx)
		if err != nil {
			return nil, fmt.Errorf("resolving current season: %w", err)
		}
		season = state.Season
	}

	user, err := s.ResolveUser(ctx, username)
	if err != nil {
		return nil, err
	}
	leagues, err := s.provider.GetLeaguesForUser(ctx, user.ID, season)
	if err != nil {
		return nil, err
	}

	names := make([]string, len(leagues))
	for i, l := range leagues {
		names[i] = l.Name
	}
	if query == "" {
		return names, nil
	}
	return fuzzy.FindFold(query, names), nil
}
