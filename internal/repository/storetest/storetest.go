// Package storetest runs the same behavioural checks against every
// Player Store backend. It does not import the repository package so the
// backends can use it from their own tests.
package storetest

import (
	"context"
	"errors"
	"testing"

	"github.com/omarshaarawi/sleeperbot/internal/models"
)

// Store is the subset of repository.PlayerStore that Run exercises.
type Store interface {
	UpsertPlayers(ctx context.Context, players []models.Player) (int, error)
	GetPlayer(ctx context.Context, id string) (models.Player, error)
	FindPlayersByName(ctx context.Context, first, last string) ([]models.Player, error)
	ListPlayers(ctx context.Context) ([]models.Player, error)
	SetProjections(ctx context.Context, projections map[string]float64) (int, error)
	Count(ctx context.Context) (int, error)
}

func Players() []models.Player {
	return []models.Player{
		{ID: "4046", FirstName: "Patrick", LastName: "Mahomes", Team: "KC", Position: "QB", Status: "Active", Age: 28, Height: "74", Weight: "225", College: "Texas Tech", YearsExp: 7},
		{ID: "4881", FirstName: "Lamar", LastName: "Jackson", Team: "BAL", Position: "QB", Status: "Active", Age: 27, YearsExp: 6},
		{ID: "7547", FirstName: "Lamar", LastName: "Jackson", Team: "", Position: "CB", Status: "Inactive", Age: 26, YearsExp: 3},
	}
}

// Run exercises store. The store must start empty.
func Run(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	n, err := store.UpsertPlayers(ctx, Players())
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if n != 3 {
		t.Fatalf("upserted=%d want 3", n)
	}

	t.Run("GetPlayer", func(t *testing.T) {
		p, err := store.GetPlayer(ctx, "4046")
		if err != nil {
			t.Fatal(err)
		}
		if p.FullName() != "Patrick Mahomes" || p.College != "Texas Tech" || p.YearsExp != 7 || p.Age != 28 {
			t.Errorf("player=%+v", p)
		}
	})

	t.Run("GetPlayerMissing", func(t *testing.T) {
		p, err := store.GetPlayer(ctx, "nope")
		if !errors.Is(err, models.ErrNotFound) {
			t.Fatalf("err=%v want ErrNotFound", err)
		}
		if p.ID != "" {
			t.Errorf("missing lookup returned a record: %+v", p)
		}
	})

	t.Run("FindPlayersByName", func(t *testing.T) {
		got, err := store.FindPlayersByName(ctx, "Lamar", "Jackson")
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != 2 || got[0].ID != "4881" || got[1].ID != "7547" {
			t.Errorf("matches=%+v", got)
		}

		none, err := store.FindPlayersByName(ctx, "Tom", "Brady")
		if err != nil {
			t.Fatal(err)
		}
		if len(none) != 0 {
			t.Errorf("matches=%+v want none", none)
		}
	})

	t.Run("UpsertReplacesAndKeepsProjection", func(t *testing.T) {
		updated, err := store.SetProjections(ctx, map[string]float64{"4046": 355.5, "ghost": 1})
		if err != nil {
			t.Fatal(err)
		}
		if updated != 1 {
			t.Errorf("updated=%d want 1", updated)
		}

		traded := Players()[0]
		traded.Team = "LV"
		if _, err := store.UpsertPlayers(ctx, []models.Player{traded}); err != nil {
			t.Fatal(err)
		}

		p, err := store.GetPlayer(ctx, "4046")
		if err != nil {
			t.Fatal(err)
		}
		if p.Team != "LV" {
			t.Errorf("team=%q want LV", p.Team)
		}
		if p.Projection == nil || *p.Projection != 355.5 {
			t.Errorf("projection=%v want 355.5", p.Projection)
		}

		if _, err := store.GetPlayer(ctx, "ghost"); !errors.Is(err, models.ErrNotFound) {
			t.Errorf("projection sync must not insert unknown ids, err=%v", err)
		}
	})

	t.Run("CountAndList", func(t *testing.T) {
		count, err := store.Count(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if count != 3 {
			t.Errorf("count=%d want 3", count)
		}
		all, err := store.ListPlayers(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if len(all) != 3 || all[0].ID != "4046" {
			t.Errorf("list=%+v", all)
		}
	})
}
