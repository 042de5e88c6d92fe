package sleeper

import (
	"context"
	"fmt"
	"net/url"

	"github.com/omarshaarawi/sleeperbot/internal/models"
)

type API struct {
	client *Client
}

func NewAPI(client *Client) *API {
	return &API{client: client}
}

func (a *API) GetNFLState(ctx context.Context) (models.SleeperNFLState, error) {
	var state models.SleeperNFLState
	if err := a.client.Get(ctx, a.client.Config.BaseURL, "/state/nfl", nil, &state); err != nil {
		return models.SleeperNFLState{}, fmt.Errorf("fetching nfl state: %w", err)
	}
	return state, nil
}

// GetUser looks a user up by username (not display name). The provider
// answers an unknown username with a null body, reported as ErrNotFound.
func (a *API) GetUser(ctx context.Context, username string) (models.SleeperUser, error) {
	var user models.SleeperUser
	endpoint := fmt.Sprintf("/user/%s", url.PathEscape(username))

	if err := a.client.Get(ctx, a.client.Config.BaseURL, endpoint, nil, &user); err != nil {
		return models.SleeperUser{}, fmt.Errorf("fetching user %s: %w", username, err)
	}
	if user.UserID == "" {
		return models.SleeperUser{}, fmt.Errorf("user %s: %w", username, models.ErrNotFound)
	}

	return user, nil
}

func (a *API) GetLeaguesForUser(ctx context.Context, userID, season string) ([]models.SleeperLeague, error) {
	var leagues []models.SleeperLeague
	endpoint := fmt.Sprintf("/user/%s/leagues/nfl/%s", url.PathEscape(userID), url.PathEscape(season))

	if err := a.client.Get(ctx, a.client.Config.BaseURL, endpoint, nil, &leagues); err != nil {
		return nil, fmt.Errorf("fetching leagues for user %s season %s: %w", userID, season, err)
	}

	return leagues, nil
}

func (a *API) GetRosters(ctx context.Context, leagueID string) ([]models.SleeperRoster, error) {
	var rosters []models.SleeperRoster
	endpoint := fmt.Sprintf("/league/%s/rosters", url.PathEscape(leagueID))

	if err := a.client.Get(ctx, a.client.Config.BaseURL, endpoint, nil, &rosters); err != nil {
		return nil, fmt.Errorf("fetching rosters for league %s: %w", leagueID, err)
	}

	return rosters, nil
}

func (a *API) GetMatchups(ctx context.Context, leagueID, week string) ([]models.SleeperMatchup, error) {
	var matchups []models.SleeperMatchup
	endpoint := fmt.Sprintf("/league/%s/matchups/%s", url.PathEscape(leagueID), url.PathEscape(week))

	if err := a.client.Get(ctx, a.client.Config.BaseURL, endpoint, nil, &matchups); err != nil {
		return nil, fmt.Errorf("fetching matchups for league %s week %s: %w", leagueID, week, err)
	}

	return matchups, nil
}

// GetPlayerDirectory returns the full NFL player directory keyed by player id.
func (a *API) GetPlayerDirectory(ctx context.Context) (map[string]models.SleeperPlayer, error) {
	var players map[string]models.SleeperPlayer
	if err := a.client.Get(ctx, a.client.Config.BaseURL, "/players/nfl", nil, &players); err != nil {
		return nil, fmt.Errorf("fetching player directory: %w", err)
	}
	return players, nil
}

// GetSeasonProjections returns the regular-season projection table keyed by
// player id.
func (a *API) GetSeasonProjections(ctx context.Context, season string) (map[string]map[string]float64, error) {
	var projections map[string]map[string]float64
	endpoint := fmt.Sprintf("/projections/nfl/regular/%s", url.PathEscape(season))

	if err := a.client.Get(ctx, a.client.Config.BaseURL, endpoint, nil, &projections); err != nil {
		return nil, fmt.Errorf("fetching season projections %s: %w", season, err)
	}

	return projections, nil
}

func (a *API) GetWeeklyProjections(ctx context.Context, playerID, season string) (map[string]*models.SleeperWeekEntry, error) {
	return a.getWeekly(ctx, "projections", playerID, season)
}

func (a *API) GetWeeklyStats(ctx context.Context, playerID, season string) (map[string]*models.SleeperWeekEntry, error) {
	return a.getWeekly(ctx, "stats", playerID, season)
}

func (a *API) getWeekly(ctx context.Context, kind, playerID, season string) (map[string]*models.SleeperWeekEntry, error) {
	var weeks map[string]*models.SleeperWeekEntry
	endpoint := fmt.Sprintf("/%s/nfl/player/%s", kind, url.PathEscape(playerID))
	params := map[string]string{
		"season":      season,
		"season_type": "regular",
		"grouping":    "week",
	}

	if err := a.client.Get(ctx, a.client.Config.StatsURL, endpoint, params, &weeks); err != nil {
		return nil, fmt.Errorf("fetching weekly %s for player %s season %s: %w", kind, playerID, season, err)
	}

	return weeks, nil
}
