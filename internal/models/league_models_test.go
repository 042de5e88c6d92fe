package models

import (
	"strings"
	"testing"
)

func TestSortWeeks(t *testing.T) {
	tests := []struct {
		in   []string
		want string
	}{
		{[]string{"2", "10", "1"}, "1,2,10"},
		{[]string{"9", "10", "11", "2"}, "2,9,10,11"},
		{[]string{"bye", "3", "17", "a"}, "3,17,a,bye"},
		{nil, ""},
	}
	for _, tt := range tests {
		SortWeeks(tt.in)
		if got := strings.Join(tt.in, ","); got != tt.want {
			t.Errorf("SortWeeks=%s want %s", got, tt.want)
		}
	}
}

func TestWeeklyPointsWeeks(t *testing.T) {
	w := WeeklyPoints{"2": 5.0, "10": 3.0, "1": 9.0}
	if got := strings.Join(w.Weeks(), ","); got != "1,2,10" {
		t.Errorf("weeks=%s want 1,2,10", got)
	}
}

func TestClassifyStatus(t *testing.T) {
	roster := Roster{
		Players:  []string{"A", "B", "C", "D", "E"},
		Starters: []string{"A", "E"},
		Reserve:  []string{"B", "E"},
		Taxi:     []string{"C", "A", "B"},
	}

	want := map[string]RosterStatus{
		"A": StatusStarter,
		"B": StatusReserve,
		"C": StatusTaxi,
		"D": StatusBench,
		"E": StatusStarter,
	}
	for _, id := range roster.Players {
		if got := ClassifyStatus(id, roster); got != want[id] {
			t.Errorf("%s: status=%s want %s", id, got, want[id])
		}
	}

	if got := ClassifyStatus("A", Roster{}); got != StatusBench {
		t.Errorf("empty roster status=%s want bench", got)
	}
}

func TestMatchLeague(t *testing.T) {
	leagues := []League{
		{ID: "1", Name: "Dynasty"},
		{ID: "2", Name: "Keepers"},
		{ID: "3", Name: "Dynasty"},
		{ID: "4", Name: "dynasty"},
	}

	t.Run("Found", func(t *testing.T) {
		m := MatchLeague(leagues, "Keepers")
		if m.Kind != LeagueFound || m.League.ID != "2" {
			t.Errorf("match=%+v", m)
		}
	})

	t.Run("Ambiguous", func(t *testing.T) {
		m := MatchLeague(leagues, "Dynasty")
		if m.Kind != LeagueAmbiguous || m.League.ID != "1" || len(m.Candidates) != 2 {
			t.Errorf("match=%+v", m)
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		m := MatchLeague(leagues, "Redraft")
		if m.Kind != LeagueNotFound || m.League.ID != "" {
			t.Errorf("match=%+v", m)
		}
	})
}
