package fantasy

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/omarshaarawi/sleeperbot/internal/api/sleeper"
	"github.com/omarshaarawi/sleeperbot/internal/config"
	"github.com/omarshaarawi/sleeperbot/internal/models"
)

func newTestAPI(t *testing.T, routes map[string]string) *API {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := routes[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	client := sleeper.NewClient(config.SleeperAPI{BaseURL: srv.URL, StatsURL: srv.URL, Timeout: 2 * time.Second})
	return NewAPI(sleeper.NewAPI(client))
}

func TestPointsByWeek(t *testing.T) {
	weeks := map[string]*models.SleeperWeekEntry{
		"1":  {Stats: map[string]float64{"pts_ppr": 12.5, "rec": 4}},
		"2":  nil,
		"3":  {Stats: map[string]float64{"pts_std": 7}},
		"10": {Stats: map[string]float64{"pts_ppr": 0}},
	}

	got := pointsByWeek(weeks)
	if len(got) != 2 {
		t.Fatalf("got %v, want weeks 1 and 10", got)
	}
	if got["1"] != 12.5 {
		t.Errorf("week 1=%v want 12.5", got["1"])
	}
	if pts, ok := got["10"]; !ok || pts != 0 {
		t.Errorf("week 10=%v,%v want 0,true", pts, ok)
	}
}

func TestGetRostersNullSquads(t *testing.T) {
	api := newTestAPI(t, map[string]string{
		"/league/L1/rosters": `[{"roster_id":1,"owner_id":"U1","players":["P1","P2"],"starters":["P1"],"reserve":null,"taxi":null}]`,
	})

	rosters, err := api.GetRosters(context.Background(), "L1")
	if err != nil {
		t.Fatal(err)
	}
	if len(rosters) != 1 || rosters[0].OwnerID != "U1" || len(rosters[0].Players) != 2 {
		t.Fatalf("rosters=%+v", rosters)
	}
	if rosters[0].Reserve != nil || rosters[0].Taxi != nil {
		t.Errorf("null squads should stay empty: %+v", rosters[0])
	}
}

func TestGetPlayerDirectoryFillsMissingID(t *testing.T) {
	api := newTestAPI(t, map[string]string{
		"/players/nfl": `{"96":{"first_name":"Aaron","last_name":"Rodgers","age":40,"years_exp":19}}`,
	})

	players, err := api.GetPlayerDirectory(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(players) != 1 {
		t.Fatalf("len=%d want 1", len(players))
	}
	p := players[0]
	if p.ID != "96" || p.FullName() != "Aaron Rodgers" || p.Age != 40 || p.YearsExp != 19 {
		t.Errorf("player=%+v", p)
	}
}

func TestGetNFLStateFallsBackToDisplayWeek(t *testing.T) {
	api := newTestAPI(t, map[string]string{
		"/state/nfl": `{"season":"2024","season_type":"pre","week":0,"display_week":1}`,
	})

	state, err := api.GetNFLState(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if state.Season != "2024" || state.Week != "1" {
		t.Errorf("state=%+v", state)
	}
}

func TestGetSeasonProjections(t *testing.T) {
	api := newTestAPI(t, map[string]string{
		"/projections/nfl/regular/2024": `{"4046":{"pts_ppr":355.2,"pass_yd":4300},"9999":{"pts_std":10}}`,
	})

	got, err := api.GetSeasonProjections(context.Background(), "2024")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got["4046"] != 355.2 {
		t.Errorf("projections=%v", got)
	}
}
