package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/omarshaarawi/sleeperbot/internal/models"
)

// fakeProvider serves canned data and counts calls.
type fakeProvider struct {
	mu sync.Mutex

	state       models.NFLState
	users       map[string]models.User
	leagues     map[string][]models.League
	rosters     map[string][]models.Roster
	matchups    map[string][]models.Matchup
	projections map[string]models.WeeklyPoints
	stats       map[string]models.WeeklyPoints
	directory   []models.Player
	season      map[string]float64

	failProjections map[string]bool
	calls           map[string]int
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{
		state:           models.NFLState{Season: "2023", Week: "4", SeasonType: "regular"},
		users:           map[string]models.User{},
		leagues:         map[string][]models.League{},
		rosters:         map[string][]models.Roster{},
		matchups:        map[string][]models.Matchup{},
		projections:     map[string]models.WeeklyPoints{},
		stats:           map[string]models.WeeklyPoints{},
		failProjections: map[string]bool{},
		calls:           map[string]int{},
	}
}

func (f *fakeProvider) record(op string) {
	f.mu.Lock()
	f.calls[op]++
	f.mu.Unlock()
}

func (f *fakeProvider) GetNFLState(ctx context.Context) (models.NFLState, error) {
	f.record("state")
	return f.state, nil
}

func (f *fakeProvider) GetUser(ctx context.Context, username string) (models.User, error) {
	f.record("user")
	u, ok := f.users[username]
	if !ok {
		return models.User{}, fmt.Errorf("user %s: %w", username, models.ErrNotFound)
	}
	return u, nil
}

func (f *fakeProvider) GetLeaguesForUser(ctx context.Context, userID, season string) ([]models.League, error) {
	f.record("leagues")
	return f.leagues[userID+"/"+season], nil
}

func (f *fakeProvider) GetRosters(ctx context.Context, leagueID string) ([]models.Roster, error) {
	f.record("rosters")
	return f.rosters[leagueID], nil
}

func (f *fakeProvider) GetMatchups(ctx context.Context, leagueID, week string) ([]models.Matchup, error) {
	f.record("matchups")
	return f.matchups[leagueID+"/"+week], nil
}

func (f *fakeProvider) GetWeeklyProjections(ctx context.Context, playerID, season string) (models.WeeklyPoints, error) {
	f.record("projections")
	if f.failProjections[playerID] {
		return nil, &models.ProviderError{Op: "GET /projections/nfl/player/" + playerID, StatusCode: 503, Err: models.ErrRemoteUnavailable}
	}
	return f.projections[playerID], nil
}

func (f *fakeProvider) GetWeeklyStats(ctx context.Context, playerID, season string) (models.WeeklyPoints, error) {
	f.record("stats")
	return f.stats[playerID], nil
}

func (f *fakeProvider) GetPlayerDirectory(ctx context.Context) ([]models.Player, error) {
	f.record("directory")
	return f.directory, nil
}

func (f *fakeProvider) GetSeasonProjections(ctx context.Context, season string) (map[string]float64, error) {
	f.record("season")
	return f.season, nil
}
