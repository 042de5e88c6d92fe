package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/omarshaarawi/sleeperbot/internal/models"
)

type Repository struct {
	players map[string]models.Player
	mu      sync.RWMutex
}

func NewRepository() *Repository {
	return &Repository{players: make(map[string]models.Player)}
}

func (r *Repository) UpsertPlayers(ctx context.Context, players []models.Player) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range players {
		if existing, ok := r.players[p.ID]; ok && p.Projection == nil {
			p.Projection = existing.Projection
		}
		r.players[p.ID] = p
	}
	return len(players), nil
}

func (r *Repository) GetPlayer(ctx context.Context, id string) (models.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.players[id]
	if !ok {
		return models.Player{}, fmt.Errorf("player %s: %w", id, models.ErrNotFound)
	}
	return p, nil
}

func (r *Repository) FindPlayersByName(ctx context.Context, first, last string) ([]models.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []models.Player
	for _, p := range r.players {
		if p.FirstName == first && p.LastName == last {
			out = append(out, p)
		}
	}
	sortByID(out)
	return out, nil
}

func (r *Repository) ListPlayers(ctx context.Context) ([]models.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.Player, 0, len(r.players))
	for _, p := range r.players {
		out = append(out, p)
	}
	sortByID(out)
	return out, nil
}

func (r *Repository) SetProjections(ctx context.Context, projections map[string]float64) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	updated := 0
	for id, pts := range projections {
		p, ok := r.players[id]
		if !ok {
			continue
		}
		pts := pts
		p.Projection = &pts
		r.players[id] = p
		updated++
	}
	return updated, nil
}

func (r *Repository) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.players), nil
}

func (r *Repository) Close() error {
	return nil
}

func sortByID(players []models.Player) {
	sort.Slice(players, func(i, j int) bool {
		return players[i].ID < players[j].ID
	})
}
