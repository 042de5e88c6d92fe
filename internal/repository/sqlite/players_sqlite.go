package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/omarshaarawi/sleeperbot/internal/models"
)

const playerColumns = `player_id, first_name, last_name, team, position, status, age, height, weight, college, years_exp, projection`

const busyTimeoutMillis = 5000

// SQLiteRepo serializes its own writers; busy_timeout covers writers in
// other processes sharing the file.
type SQLiteRepo struct {
	db      *sql.DB
	writeMu sync.Mutex
}

// dsn sets the pragmas on every pooled connection.
func dsn(path string) string {
	return fmt.Sprintf("file:%s?_pragma=busy_timeout(%d)&_pragma=journal_mode(WAL)", path, busyTimeoutMillis)
}

func NewSQLiteRepo(path string) (*SQLiteRepo, error) {
	db, err := sql.Open("sqlite", dsn(path))
	if err != nil {
		return nil, err
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLiteRepo{db: db}, nil
}

func (s *SQLiteRepo) Close() error { return s.db.Close() }

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`
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
	  projection REAL
	);
	CREATE INDEX IF NOT EXISTS players_name_idx ON players (first_name, last_name);
	`)
	return err
}

func (s *SQLiteRepo) UpsertPlayers(ctx context.Context, players []models.Player) (int, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO players (`+playerColumns+`)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(player_id)
	DO UPDATE SET first_name = excluded.first_name, last_name = excluded.last_name, team = excluded.team,
	  position = excluded.position, status = excluded.status, age = excluded.age, height = excluded.height,
	  weight = excluded.weight, college = excluded.college, years_exp = excluded.years_exp,
	  projection = COALESCE(excluded.projection, players.projection)
	`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	for _, p := range players {
		if _, err := stmt.ExecContext(ctx, p.ID, p.FirstName, p.LastName, p.Team, p.Position, p.Status,
			p.Age, p.Height, p.Weight, p.College, p.YearsExp, p.Projection); err != nil {
			return 0, fmt.Errorf("upsert player %s: %w", p.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return len(players), nil
}

func (s *SQLiteRepo) GetPlayer(ctx context.Context, id string) (models.Player, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+playerColumns+` FROM players WHERE player_id = ?`, id)
	p, err := scanPlayer(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Player{}, fmt.Errorf("player %s: %w", id, models.ErrNotFound)
	}
	return p, err
}

func (s *SQLiteRepo) FindPlayersByName(ctx context.Context, first, last string) ([]models.Player, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+playerColumns+` FROM players WHERE first_name = ? AND last_name = ? ORDER BY player_id ASC`, first, last)
	if err != nil {
		return nil, err
	}
	return collect(rows)
}

func (s *SQLiteRepo) ListPlayers(ctx context.Context) ([]models.Player, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+playerColumns+` FROM players ORDER BY player_id ASC`)
	if err != nil {
		return nil, err
	}
	return collect(rows)
}

func (s *SQLiteRepo) SetProjections(ctx context.Context, projections map[string]float64) (int, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `UPDATE players SET projection = ? WHERE player_id = ?`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	updated := 0
	for id, pts := range projections {
		res, err := stmt.ExecContext(ctx, pts, id)
		if err != nil {
			return 0, fmt.Errorf("set projection %s: %w", id, err)
		}
		n, _ := res.RowsAffected()
		updated += int(n)
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return updated, nil
}

func (s *SQLiteRepo) Count(ctx context.Context) (int, error) {
	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM players`).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPlayer(row scanner) (models.Player, error) {
	var p models.Player
	var first, last, team, position, status, height, weight, college sql.NullString
	var age, exp sql.NullInt64
	var projection sql.NullFloat64
	if err := row.Scan(&p.ID, &first, &last, &team, &position, &status, &age, &height, &weight, &college, &exp, &projection); err != nil {
		return models.Player{}, err
	}
	p.FirstName = first.String
	p.LastName = last.String
	p.Team = team.String
	p.Position = position.String
	p.Status = status.String
	p.Height = height.String
	p.Weight = weight.String
	p.College = college.String
	p.Age = int(age.Int64)
	p.YearsExp = int(exp.Int64)
	if projection.Valid {
		p.Projection = &projection.Float64
	}
	return p, nil
}

func collect(rows *sql.Rows) ([]models.Player, error) {
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
