package models

// Wire shapes returned by the Sleeper API. Nullable numeric fields are
// pointers because the directory mixes nulls into otherwise numeric columns.

type SleeperUser struct {
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	UserID      string `json:"user_id"`
}

type SleeperLeague struct {
	LeagueID        string             `json:"league_id"`
	Name            string             `json:"name"`
	Season          string             `json:"season"`
	Status          string             `json:"status"`
	TotalRosters    int                `json:"total_rosters"`
	ScoringSettings map[string]float64 `json:"scoring_settings"`
	RosterPositions []string           `json:"roster_positions"`
}

type SleeperRoster struct {
	RosterID int      `json:"roster_id"`
	OwnerID  string   `json:"owner_id"`
	LeagueID string   `json:"league_id"`
	Players  []string `json:"players"`
	Starters []string `json:"starters"`
	Reserve  []string `json:"reserve"`
	Taxi     []string `json:"taxi"`
}

type SleeperMatchup struct {
	RosterID  int      `json:"roster_id"`
	MatchupID int      `json:"matchup_id"`
	Players   []string `json:"players"`
	Starters  []string `json:"starters"`
	Points    float64  `json:"points"`
}

type SleeperPlayer struct {
	PlayerID  string `json:"player_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Team      string `json:"team"`
	Position  string `json:"position"`
	Status    string `json:"status"`
	Age       *int   `json:"age"`
	Height    string `json:"height"`
	Weight    string `json:"weight"`
	College   string `json:"college"`
	YearsExp  *int   `json:"years_exp"`
}

// SleeperWeekEntry is one week of the per-player projection or stats
// payload. The provider sends null for weeks without data.
type SleeperWeekEntry struct {
	Week   int                `json:"week"`
	Season string             `json:"season"`
	Stats  map[string]float64 `json:"stats"`
}

type SleeperNFLState struct {
	Season         string `json:"season"`
	SeasonType     string `json:"season_type"`
	Week           int    `json:"week"`
	DisplayWeek    int    `json:"display_week"`
	LeagueSeason   string `json:"league_season"`
	PreviousSeason string `json:"previous_season"`
}
