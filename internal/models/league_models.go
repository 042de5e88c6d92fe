package models

import (
	"sort"
	"strconv"
	"strings"
	"time"
)

type Player struct {
	ID         string   `json:"player_id"`
	FirstName  string   `json:"first_name"`
	LastName   string   `json:"last_name"`
	Team       string   `json:"team,omitempty"`
	Position   string   `json:"position,omitempty"`
	Status     string   `json:"status,omitempty"`
	Age        int      `json:"age,omitempty"`
	Height     string   `json:"height,omitempty"`
	Weight     string   `json:"weight,omitempty"`
	College    string   `json:"college,omitempty"`
	YearsExp   int      `json:"years_exp,omitempty"`
	Projection *float64 `json:"projection,omitempty"`
}

func (p Player) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

type User struct {
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	ID          string `json:"user_id"`
}

type League struct {
	ID              string             `json:"league_id"`
	Name            string             `json:"name"`
	Season          string             `json:"season"`
	ScoringSettings map[string]float64 `json:"scoring_settings,omitempty"`
	RosterPositions []string           `json:"roster_positions,omitempty"`
}

type Roster struct {
	ID       int      `json:"roster_id"`
	OwnerID  string   `json:"owner_id"`
	Players  []string `json:"players"`
	Starters []string `json:"starters"`
	Reserve  []string `json:"reserve"`
	Taxi     []string `json:"taxi"`
}

type Matchup struct {
	RosterID int      `json:"roster_id"`
	Players  []string `json:"players"`
	Starters []string `json:"starters"`
}

type NFLState struct {
	Season     string `json:"season"`
	Week       string `json:"week"`
	SeasonType string `json:"season_type"`
}

// LeagueMatchKind tags the outcome of selecting a league by name.
type LeagueMatchKind int

const (
	LeagueNotFound LeagueMatchKind = iota
	LeagueFound
	LeagueAmbiguous
)

// LeagueMatch is the result of MatchLeague. League is set for LeagueFound
// and LeagueAmbiguous; in the ambiguous case it is the first candidate in
// provider order and Candidates holds every league sharing the name.
type LeagueMatch struct {
	Kind       LeagueMatchKind
	League     League
	Candidates []League
}

// MatchLeague selects the leagues whose name equals name exactly.
func MatchLeague(leagues []League, name string) LeagueMatch {
	var candidates []League
	for _, l := range leagues {
		if l.Name == name {
			candidates = append(candidates, l)
		}
	}

	switch len(candidates) {
	case 0:
		return LeagueMatch{Kind: LeagueNotFound}
	case 1:
		return LeagueMatch{Kind: LeagueFound, League: candidates[0], Candidates: candidates}
	default:
		return LeagueMatch{Kind: LeagueAmbiguous, League: candidates[0], Candidates: candidates}
	}
}

type RosterStatus string

const (
	StatusStarter RosterStatus = "starter"
	StatusReserve RosterStatus = "reserve"
	StatusTaxi    RosterStatus = "taxi"
	StatusBench   RosterStatus = "bench"
)

// ClassifyStatus assigns exactly one status with precedence
// starter > reserve > taxi > bench.
func ClassifyStatus(playerID string, roster Roster) RosterStatus {
	switch {
	case contains(roster.Starters, playerID):
		return StatusStarter
	case contains(roster.Reserve, playerID):
		return StatusReserve
	case contains(roster.Taxi, playerID):
		return StatusTaxi
	default:
		return StatusBench
	}
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// WeeklyPoints maps a provider week key to PPR fantasy points.
type WeeklyPoints map[string]float64

// Weeks returns the keys in integer week order.
func (w WeeklyPoints) Weeks() []string {
	weeks := make([]string, 0, len(w))
	for week := range w {
		weeks = append(weeks, week)
	}
	SortWeeks(weeks)
	return weeks
}

// SortWeeks orders week keys by integer value ("9" before "10"). Keys that
// are not integers sort after all numeric keys, lexicographically.
func SortWeeks(weeks []string) {
	sort.SliceStable(weeks, func(i, j int) bool {
		a, aErr := strconv.Atoi(weeks[i])
		b, bErr := strconv.Atoi(weeks[j])
		switch {
		case aErr == nil && bErr == nil:
			return a < b
		case aErr == nil:
			return true
		case bErr == nil:
			return false
		default:
			return weeks[i] < weeks[j]
		}
	})
}

type PlayerProjection struct {
	PlayerID string       `json:"player_id"`
	Name     string       `json:"name"`
	Position string       `json:"position,omitempty"`
	Team     string       `json:"team,omitempty"`
	Weeks    WeeklyPoints `json:"projection"`
	Status   RosterStatus `json:"status"`
	Err      error        `json:"-"`
}

// ProjectionReport is one resolved user/league/roster with a row per
// rostered player in roster order.
type ProjectionReport struct {
	RunID       string             `json:"run_id"`
	Username    string             `json:"username"`
	LeagueID    string             `json:"league_id"`
	LeagueName  string             `json:"league_name"`
	Season      string             `json:"season"`
	Weeks       []string           `json:"weeks,omitempty"`
	Rows        []PlayerProjection `json:"rows"`
	GeneratedAt time.Time          `json:"generated_at"`
}

// Failed returns the rows whose lookup or fetch failed.
func (r ProjectionReport) Failed() []PlayerProjection {
	var out []PlayerProjection
	for _, row := range r.Rows {
		if row.Err != nil {
			out = append(out, row)
		}
	}
	return out
}
