package repository

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/omarshaarawi/sleeperbot/internal/config"
	"github.com/omarshaarawi/sleeperbot/internal/repository/memory"
	"github.com/omarshaarawi/sleeperbot/internal/repository/postgres"
	"github.com/omarshaarawi/sleeperbot/internal/repository/sqlite"
)

// Open returns the store selected by cfg.Driver. The caller owns the
// returned store and must Close it.
func Open(ctx context.Context, cfg config.Store) (PlayerStore, error) {
	switch cfg.Driver {
	case "sqlite":
		slog.Debug("Opening sqlite player store", "path", cfg.SQLitePath)
		return sqlite.NewSQLiteRepo(cfg.SQLitePath)
	case "postgres":
		slog.Debug("Opening postgres player store")
		return postgres.NewRepo(ctx, cfg.DatabaseURL)
	case "memory":
		return memory.NewRepository(), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}
