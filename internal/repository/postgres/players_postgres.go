package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/omarshaarawi/sleeperbot/internal/models"
)

const playerColumns = `player_id, first_name, last_name, team, position, status, age, height, weight, college, years_exp, projection`

type Repo struct {
	pool *pgxpool.Pool
}

// NewRepo connects a pool to dsn and ensures the players table exists.
func NewRepo(ctx context.Context, dsn string) (*Repo, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("unable to parse DATABASE_URL: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	if _, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS players (
			player_id TEXT PRIMARY KEY,
			first_name TEXT,
			last_name TEXT,
			team TEXT,
			position TEXT,
			status TEXT,
			age INTEGER,
			height TEXT,
			weight TEXT,
			college TEXT,
			years_exp INTEGER,
			projection DOUBLE PRECISION
		)`); err != nil {
		pool.Close()
		return nil, fmt.Errorf("creating players table: %w", err)
	}

	return &Repo{pool: pool}, nil
}

func (r *Repo) Close() error {
	r.pool.Close()
	return nil
}

func (r *Repo) UpsertPlayers(ctx context.Context, players []models.Player) (int, error) {
	batch := &pgx.Batch{}
	for _, p := range players {
		batch.Queue(`
			INSERT INTO players (`+playerColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
			ON CONFLICT (player_id) DO UPDATE SET
				first_name = EXCLUDED.first_name, last_name = EXCLUDED.last_name, team = EXCLUDED.team,
				position = EXCLUDED.position, status = EXCLUDED.status, age = EXCLUDED.age,
				height = EXCLUDED.height, weight = EXCLUDED.weight, college = EXCLUDED.college,
				years_exp = EXCLUDED.years_exp,
				projection = COALESCE(EXCLUDED.projection, players.projection)`,
			p.ID, p.FirstName, p.LastName, p.Team, p.Position, p.Status,
			p.Age, p.Height, p.Weight, p.College, p.YearsExp, p.Projection)
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return 0, fmt.Errorf("upserting players: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return len(players), nil
}

func (r *Repo) GetPlayer(ctx context.Context, id string) (models.Player, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+playerColumns+` FROM players WHERE player_id = $1`, id)
	p, err := scanPlayer(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Player{}, fmt.Errorf("player %s: %w", id, models.ErrNotFound)
	}
	return p, err
}

func (r *Repo) FindPlayersByName(ctx context.Context, first, last string) ([]models.Player, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+playerColumns+` FROM players WHERE first_name = $1 AND last_name = $2 ORDER BY player_id ASC`, first, last)
	if err != nil {
		return nil, err
	}
	return collect(rows)
}

func (r *Repo) ListPlayers(ctx context.Context) ([]models.Player, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+playerColumns+` FROM players ORDER BY player_id ASC`)
	if err != nil {
		return nil, err
	}
	return collect(rows)
}

func (r *Repo) SetProjections(ctx context.Context, projections map[string]float64) (int, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	updated := 0
	for id, pts := range projections {
		tag, err := tx.Exec(ctx, `UPDATE players SET projection = $1 WHERE player_id = $2`, pts, id)
		if err != nil {
			return 0, fmt.Errorf("set projection %s: %w", id, err)
		}
		updated += int(tag.RowsAffected())
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return updated, nil
}

func (r *Repo) Count(ctx context.Context) (int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM players`).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func scanPlayer(row pgx.Row) (models.Player, error) {
	var p models.Player
	var first, last, team, position, status, height, weight, college *string
	var age, exp *int32
	if err := row.Scan(&p.ID, &first, &last, &team, &position, &status, &age, &height, &weight, &college, &exp, &p.Projection); err != nil {
		return models.Player{}, err
	}
	p.FirstName = deref(first)
	p.LastName = deref(last)
	p.Team = deref(team)
	p.Position = deref(position)
	p.Status = deref(status)
	p.Height = deref(height)
	p.Weight = deref(weight)
	p.College = deref(college)
	if age != nil {
		p.Age = int(*age)
	}
	if exp != nil {
		p.YearsExp = int(*exp)
	}
	return p, nil
}

func collect(rows pgx.Rows) ([]models.Player, error) {
	defer rows.Close()
	var out []models.Player
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
