// Package repository holds the Player Store backends. Every backend keys
// players by provider id, upserts on refresh and never deletes.
package repository

import (
	"context"

	"github.com/omarshaarawi/sleeperbot/internal/models"
)

type PlayerStore interface {
	// UpsertPlayers writes every player in one unit of work and returns the
	// number written. The projection column of existing rows is preserved.
	UpsertPlayers(ctx context.Context, players []models.Player) (int, error)
	// GetPlayer returns models.ErrNotFound when no row has the id.
	GetPlayer(ctx context.Context, id string) (models.Player, error)
	FindPlayersByName(ctx context.Context, first, last string) ([]models.Player, error)
	ListPlayers(ctx context.Context) ([]models.Player, error)
	// SetProjections updates the projection of players already stored and
	// returns how many rows changed. Unknown ids are skipped.
	SetProjections(ctx context.Context, projections map[string]float64) (int, error)
	Count(ctx context.Context) (int, error)
	Close() error
}
