package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/omarshaarawi/sleeperbot/internal/models"
	"github.com/omarshaarawi/sleeperbot/internal/repository"
)

const (
	nameIndexTTL     = 24 * time.Hour
	searchThreshold  = 0.7
	defaultSearchMax = 10
)

// PlayerService is the Player Store: a local cache of the provider's player
// directory, refreshed wholesale and queried by id or name.
type PlayerService struct {
	provider Provider
	store    repository.PlayerStore

	mu        sync.Mutex
	index     []indexedPlayer
	indexedAt time.Time
}

type indexedPlayer struct {
	player models.Player
	folded string
}

type PlayerMatch struct {
	Player models.Player `json:"player"`
	Score  float64       `json:"score"`
}

func NewPlayerService(provider Provider, store repository.PlayerStore) *PlayerService {
	return &PlayerService{provider: provider, store: store}
}

// Refresh upserts the full provider directory. An empty directory leaves the
// store untouched.
func (s *PlayerService) Refresh(ctx context.Context) (int, error) {
	players, err := s.provider.GetPlayerDirectory(ctx)
	if err != nil {
		return 0, fmt.Errorf("refreshing player store: %w", err)
	}

	if len(players) == 0 {
		slog.Warn("Player directory was empty, keeping existing store")
		return 0, nil
	}

	sort.Slice(players, func(i, j int) bool {
		return players[i].ID < players[j].ID
	})

	n, err := s.store.UpsertPlayers(ctx, players)
	if err != nil {
		return 0, fmt.Errorf("writing player store: %w", err)
	}

	s.invalidate()
	slog.Info("Player store refreshed", "players", n)
	return n, nil
}

// LookupByID returns models.ErrNotFound when the store has no such player.
func (s *PlayerService) LookupByID(ctx context.Context, id string) (models.Player, error) {
	return s.store.GetPlayer(ctx, id)
}

func (s *PlayerService) LookupByName(ctx context.Context, first, last string) ([]models.Player, error) {
	players, err := s.store.FindPlayersByName(ctx, strings.TrimSpace(first), strings.TrimSpace(last))
	if err != nil {
		return nil, fmt.Errorf("finding %s %s: %w", first, last, err)
	}
	return players, nil
}

// Search ranks stored players by how closely their full name matches query.
// Subsequence matches rank first; otherwise players whose Levenshtein
// similarity exceeds the threshold are returned.
func (s *PlayerService) Search(ctx context.Context, query string, limit int) ([]PlayerMatch, error) {
	if limit <= 0 {
		limit = defaultSearchMax
	}
	query = foldName(query)
	if query == "" {
		return nil, nil
	}

	index, err := s.nameIndex(ctx)
	if err != nil {
		return nil, err
	}

	targets := make([]string, len(index))
	for i, p := range index {
		targets[i] = p.folded
	}

	var matches []PlayerMatch
	ranks := fuzzy.RankFindNormalizedFold(query, targets)
	if len(ranks) > 0 {
		sort.Stable(ranks)
		for _, r := range ranks {
			matches = append(matches, PlayerMatch{
				Player: index[r.OriginalIndex].player,
				Score:  similarity(query, r.Target),
			})
		}
	} else {
		for _, p := range index {
			if score := similarity(query, p.folded); score > searchThreshold {
				matches = append(matches, PlayerMatch{Player: p.player, Score: score})
			}
		}
		sort.SliceStable(matches, func(i, j int) bool {
			return matches[i].Score > matches[j].Score
		})
	}

	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}

// SyncSeasonProjections stores the season PPR projection on players already
// in the store.
func (s *PlayerService) SyncSeasonProjections(ctx context.Context, season string) (int, error) {
	projections, err := s.provider.GetSeasonProjections(ctx, season)
	if err != nil {
		return 0, fmt.Errorf("syncing season projections: %w", err)
	}

	n, err := s.store.SetProjections(ctx, projections)
	if err != nil {
		return 0, fmt.Errorf("writing season projections: %w", err)
	}

	s.invalidate()
	slog.Info("Season projections synced", "season", season, "fetched", len(projections), "updated", n)
	return n, nil
}

func (s *PlayerService) Count(ctx context.Context) (int, error) {
	return s.store.Count(ctx)
}

func (s *PlayerService) nameIndex(ctx context.Context) ([]indexedPlayer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.index != nil && time.Since(s.indexedAt) < nameIndexTTL {
		return s.index, nil
	}

	players, err := s.store.ListPlayers(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading player names: %w", err)
	}

	index := make([]indexedPlayer, 0, len(players))
	for _, p := range players {
		index = append(index, indexedPlayer{player: p, folded: foldName(p.FullName())})
	}
	s.index = index
	s.indexedAt = time.Now()
	return index, nil
}

func (s *PlayerService) invalidate() {
	s.mu.Lock()
	s.index = nil
	s.mu.Unlock()
}

// foldName lower-cases and strips diacritics and punctuation so that
// "Ja'Marr Chase" and "jamarr chase" compare equal.
func foldName(name string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, name)
	if err != nil {
		folded = name
	}

	var sb strings.Builder
	for _, r := range strings.ToLower(folded) {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r):
			sb.WriteRune(r)
		case unicode.IsSpace(r):
			sb.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(sb.String()), " ")
}

func similarity(a, b string) float64 {
	maxLen := max(len(a), len(b))
	if maxLen == 0 {
		return 0
	}
	return 1 - float64(fuzzy.LevenshteinDistance(a, b))/float64(maxLen)
}
