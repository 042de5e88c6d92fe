package service

import (
	"context"

	"github.com/omarshaarawi/sleeperbot/internal/models"
)

// Provider is the remote data contract consumed by the services. It is
// implemented by fantasy.API.
type Provider interface {
	GetNFLState(ctx context.Context) (models.NFLState, error)
	GetUser(ctx context.Context, username string) (models.User, error)
	GetLeaguesForUser(ctx context.Context, userID, season string) ([]models.League, error)
	GetRosters(ctx context.Context, leagueID string) ([]models.Roster, error)
	GetMatchups(ctx context.Context, leagueID, week string) ([]models.Matchup, error)
	GetWeeklyProjections(ctx context.Context, playerID, season string) (models.WeeklyPoints, error)
	GetWeeklyStats(ctx context.Context, playerID, season string) (models.WeeklyPoints, error)
	GetPlayerDirectory(ctx context.Context) ([]models.Player, error)
	GetSeasonProjections(ctx context.Context, season string) (map[string]float64, error)
}
