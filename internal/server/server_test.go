package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/omarshaarawi/sleeperbot/internal/config"
	"github.com/omarshaarawi/sleeperbot/internal/models"
	"github.com/omarshaarawi/sleeperbot/internal/repository/memory"
	"github.com/omarshaarawi/sleeperbot/internal/repository/storetest"
	"github.com/omarshaarawi/sleeperbot/internal/service"
)

type stubProvider struct {
	projections map[string]models.WeeklyPoints
	stats       map[string]models.WeeklyPoints
}

func (p *stubProvider) GetNFLState(ctx context.Context) (models.NFLState, error) {
	return models.NFLState{Season: "2023", Week: "4", SeasonType: "regular"}, nil
}

func (p *stubProvider) GetUser(ctx context.Context, username string) (models.User, error) {
	if username != "alice" {
		return models.User{}, &models.ProviderError{Op: "GET /user/" + username, Err: models.ErrNotFound}
	}
	return models.User{Username: "alice", ID: "U1"}, nil
}

func (p *stubProvider) GetLeaguesForUser(ctx context.Context, userID, season string) ([]models.League, error) {
	return []models.League{{ID: "L1", Name: "Keepers", Season: season}, {ID: "L2", Name: "Dynasty", Season: season}}, nil
}

func (p *stubProvider) GetRosters(ctx context.Context, leagueID string) ([]models.Roster, error) {
	return []models.Roster{{
		ID:       1,
		OwnerID:  "U1",
		Players:  []string{"4046", "4881", "9999"},
		Starters: []string{"4046"},
		Reserve:  []string{"4881"},
	}}, nil
}

func (p *stubProvider) GetMatchups(ctx context.Context, leagueID, week string) ([]models.Matchup, error) {
	return nil, nil
}

func (p *stubProvider) GetWeeklyProjections(ctx context.Context, playerID, season string) (models.WeeklyPoints, error) {
	return p.projections[playerID], nil
}

func (p *stubProvider) GetWeeklyStats(ctx context.Context, playerID, season string) (models.WeeklyPoints, error) {
	return p.stats[playerID], nil
}

func (p *stubProvider) GetPlayerDirectory(ctx context.Context) ([]models.Player, error) {
	return storetest.Players(), nil
}

func (p *stubProvider) GetSeasonProjections(ctx context.Context, season string) (map[string]float64, error) {
	return nil, nil
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	provider := &stubProvider{
		projections: map[string]models.WeeklyPoints{
			"4046": {"4": 22.5, "10": 19.0, "2": 20.25},
			"4881": {"4": 18.0},
			"9999": {"4": 1.0},
		},
		stats: map[string]models.WeeklyPoints{
			"4046": {"1": 25.1},
		},
	}

	store := memory.NewRepository()
	if _, err := store.UpsertPlayers(context.Background(), storetest.Players()); err != nil {
		t.Fatal(err)
	}

	players := service.NewPlayerService(provider, store)
	projections := service.NewProjectionService(provider, players, 2)
	fantasy := service.NewFantasyService(players, projections, config.Defaults{})

	ts := httptest.NewServer(NewHandler(fantasy).Router())
	t.Cleanup(ts.Close)
	return ts
}

func get(t *testing.T, ts *httptest.Server, path string) (int, string) {
	t.Helper()
	resp, err := http.Get(ts.URL + path)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return resp.StatusCode, string(body)
}

func TestRoutes(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		path       string
		wantStatus int
		wantBody   []string
	}{
		{"/healthz", http.StatusOK, []string{`"status":"ok"`, `"players":3`}},
		{"/api/players/4046", http.StatusOK, []string{`"last_name":"Mahomes"`}},
		{"/api/players/0", http.StatusNotFound, []string{`"error"`, "not found"}},
		{"/api/players?first=Lamar&last=Jackson", http.StatusOK, []string{`"player_id":"4881"`, `"player_id":"7547"`}},
		{"/api/players?first=Lamar", http.StatusBadRequest, []string{"first and last are required"}},
		{"/api/players?first=Nobody&last=Here", http.StatusOK, []string{"[]"}},
		{"/api/players/search?q=mahomes", http.StatusOK, []string{`"player_id":"4046"`}},
		{"/api/players/search", http.StatusBadRequest, []string{"q is required"}},
		{"/api/leagues?user=alice&season=2023&q=keep", http.StatusOK, []string{`["Keepers"]`}},
		{"/api/leagues", http.StatusBadRequest, []string{"user is required"}},
		{"/api/projections?user=ghost&league=Keepers&season=2023&week=4", http.StatusNotFound, []string{"not found"}},
		{"/api/projections?league=Keepers", http.StatusBadRequest, []string{"required"}},
		{"/api/projections?user=alice&league=Keepers&matchup=maybe", http.StatusBadRequest, []string{"matchup must be a boolean"}},
		{"/api/projections?user=alice&league=Redraft&season=2023&week=4", http.StatusNotFound, []string{"Redraft"}},
		{"/api/projections?user=alice&league=keepers&season=2023&week=4", http.StatusNotFound, []string{`did you mean \"Keepers\"`}},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			status, body := get(t, ts, tt.path)
			if status != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)", status, tt.wantStatus, body)
			}
			for _, want := range tt.wantBody {
				if !strings.Contains(body, want) {
					t.Errorf("body %s does not contain %s", body, want)
				}
			}
		})
	}
}

func TestProjectionsRoute(t *testing.T) {
	ts := newTestServer(t)

	status, body := get(t, ts, "/api/projections?user=alice&league=Keepers&season=2023&week=4")
	if status != http.StatusOK {
		t.Fatalf("status = %d, body %s", status, body)
	}

	var report service.ReportView
	if err := json.Unmarshal([]byte(body), &report); err != nil {
		t.Fatalf("decoding report: %v", err)
	}
	if report.LeagueID != "L1" || report.RunID == "" {
		t.Errorf("report = %+v", report)
	}
	if len(report.Rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(report.Rows))
	}

	want := []struct {
		id     string
		status models.RosterStatus
		pts    float64
		hasErr bool
	}{
		{"4046", models.StatusStarter, 22.5, false},
		{"4881", models.StatusReserve, 18.0, false},
		{"9999", models.StatusBench, 1.0, true},
	}
	for i, w := range want {
		row := report.Rows[i]
		if row.PlayerID != w.id || row.Status != w.status || row.Weeks["4"] != w.pts {
			t.Errorf("row %d = %+v, want %+v", i, row, w)
		}
		if (row.Error != "") != w.hasErr {
			t.Errorf("row %d error = %q, want error %v", i, row.Error, w.hasErr)
		}
	}
}

func TestExportWeeklyRoute(t *testing.T) {
	ts := newTestServer(t)

	status, body := get(t, ts, "/api/players/4046/weekly?season=2023")
	if status != http.StatusOK {
		t.Fatalf("status = %d, body %s", status, body)
	}
	want := "{\n    \"2\": 20.25,\n    \"4\": 22.5,\n    \"10\": 19\n}\n"
	if body != want {
		t.Errorf("body = %q, want %q", body, want)
	}

	_, body = get(t, ts, "/api/players/4046/weekly?season=2023&kind=stats")
	if !strings.Contains(body, `"1": 25.1`) {
		t.Errorf("stats body = %q", body)
	}

	status, _ = get(t, ts, "/api/players/4046/weekly?season=2023&kind=odds")
	if status != http.StatusBadRequest {
		t.Errorf("unknown kind status = %d, want %d", status, http.StatusBadRequest)
	}

	status, _ = get(t, ts, "/api/players/4046/weekly")
	if status != http.StatusBadRequest {
		t.Errorf("missing season status = %d, want %d", status, http.StatusBadRequest)
	}
}

func TestRefreshRoute(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Post(ts.URL+"/api/players/refresh", "application/json", nil)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if want := fmt.Sprintf(`{"players":%d}`, len(storetest.Players())); strings.TrimSpace(string(body)) != want {
		t.Errorf("body = %s, want %s", body, want)
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("x: %w", models.ErrNotFound), http.StatusNotFound},
		{&models.ProviderError{Op: "GET /x", StatusCode: 503, Err: models.ErrRemoteUnavailable}, http.StatusBadGateway},
		{fmt.Errorf("x: %w", models.ErrInvalidRequest), http.StatusBadRequest},
		{fmt.Errorf("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := statusFor(tt.err); got != tt.want {
			t.Errorf("statusFor(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
