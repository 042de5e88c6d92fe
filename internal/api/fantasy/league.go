package fantasy

import (
	"context"
	"strconv"

	"github.com/omarshaarawi/sleeperbot/internal/api/sleeper"
	"github.com/omarshaarawi/sleeperbot/internal/models"
)

// PointsKey is the stat carrying PPR fantasy points in provider payloads.
const PointsKey = "pts_ppr"

// API adapts the Sleeper wire API to domain models.
type API struct {
	sleeperAPI *sleeper.API
}

func NewAPI(sleeperAPI *sleeper.API) *API {
	return &API{sleeperAPI: sleeperAPI}
}

func (a *API) GetNFLState(ctx context.Context) (models.NFLState, error) {
	state, err := a.sleeperAPI.GetNFLState(ctx)
	if err != nil {
		return models.NFLState{}, err
	}
	week := state.Week
	if week == 0 {
		week = state.DisplayWeek
	}
	return models.NFLState{
		Season:     state.Season,
		Week:       strconv.Itoa(week),
		SeasonType: state.SeasonType,
	}, nil
}

func (a *API) GetUser(ctx context.Context, username string) (models.User, error) {
	user, err := a.sleeperAPI.GetUser(ctx, username)
	if err != nil {
		return models.User{}, err
	}
	return models.User{
		Username:    user.Username,
		DisplayName: user.DisplayName,
		ID:          user.UserID,
	}, nil
}

func (a *API) GetLeaguesForUser(ctx context.Context, userID, season string) ([]models.League, error) {
	leagues, err := a.sleeperAPI.GetLeaguesForUser(ctx, userID, season)
	if err != nil {
		return nil, err
	}

	out := make([]models.League, len(leagues))
	for i, l := range leagues {
		out[i] = models.League{
			ID:              l.LeagueID,
			Name:            l.Name,
			Season:          l.Season,
			ScoringSettings: l.ScoringSettings,
			RosterPositions: l.RosterPositions,
		}
	}
	return out, nil
}

func (a *API) GetRosters(ctx context.Context, leagueID string) ([]models.Roster, error) {
	rosters, err := a.sleeperAPI.GetRosters(ctx, leagueID)
	if err != nil {
		return nil, err
	}

	out := make([]models.Roster, len(rosters))
	for i, r := range rosters {
		out[i] = models.Roster{
			ID:       r.RosterID,
			OwnerID:  r.OwnerID,
			Players:  r.Players,
			Starters: r.Starters,
			Reserve:  r.Reserve,
			Taxi:     r.Taxi,
		}
	}
	return out, nil
}

func (a *API) GetMatchups(ctx context.Context, leagueID, week string) ([]models.Matchup, error) {
	matchups, err := a.sleeperAPI.GetMatchups(ctx, leagueID, week)
	if err != nil {
		return nil, err
	}

	out := make([]models.Matchup, len(matchups))
	for i, m := range matchups {
		out[i] = models.Matchup{
			RosterID: m.RosterID,
			Players:  m.Players,
			Starters: m.Starters,
		}
	}
	return out, nil
}

func (a *API) GetWeeklyProjections(ctx context.Context, playerID, season string) (models.WeeklyPoints, error) {
	weeks, err := a.sleeperAPI.GetWeeklyProjections(ctx, playerID, season)
	if err != nil {
		return nil, err
	}
	return pointsByWeek(weeks), nil
}

func (a *API) GetWeeklyStats(ctx context.Context, playerID, season string) (models.WeeklyPoints, error) {
	weeks, err := a.sleeperAPI.GetWeeklyStats(ctx, playerID, season)
	if err != nil {
		return nil, err
	}
	return pointsByWeek(weeks), nil
}

// pointsByWeek keeps the weeks that carry a PPR value. Null weeks and weeks
// whose stats lack pts_ppr are dropped.
func pointsByWeek(weeks map[string]*models.SleeperWeekEntry) models.WeeklyPoints {
	out := make(models.WeeklyPoints, len(weeks))
	for week, entry := range weeks {
		if entry == nil || entry.Stats == nil {
			continue
		}
		if pts, ok := entry.Stats[PointsKey]; ok {
			out[week] = pts
		}
	}
	return out
}

func (a *API) GetPlayerDirectory(ctx context.Context) ([]models.Player, error) {
	directory, err := a.sleeperAPI.GetPlayerDirectory(ctx)
	if err != nil {
		return nil, err
	}

	players := make([]models.Player, 0, len(directory))
	for id, p := range directory {
		if p.PlayerID == "" {
			p.PlayerID = id
		}
		players = append(players, toPlayer(p))
	}
	return players, nil
}

func toPlayer(p models.SleeperPlayer) models.Player {
	player := models.Player{
		ID:        p.PlayerID,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Team:      p.Team,
		Position:  p.Position,
		Status:    p.Status,
		Height:    p.Height,
		Weight:    p.Weight,
		College:   p.College,
	}
	if p.Age != nil {
		player.Age = *p.Age
	}
	if p.YearsExp != nil {
		player.YearsExp = *p.YearsExp
	}
	return player
}

// GetSeasonProjections returns season PPR projections keyed by player id.
func (a *API) GetSeasonProjections(ctx context.Context, season string) (map[string]float64, error) {
	table, err := a.sleeperAPI.GetSeasonProjections(ctx, season)
	if err != nil {
		return nil, err
	}

	out := make(map[string]float64, len(table))
	for id, stats := range table {
		if pts, ok := stats[PointsKey]; ok {
			out[id] = pts
		}
	}
	return out, nil
}
