package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/omarshaarawi/sleeperbot/internal/models"
)

func sampleReport() models.ProjectionReport {
	return models.ProjectionReport{
		Username:   "alice",
		LeagueName: "Keepers",
		Season:     "2023",
		Weeks:      []string{"4"},
		Rows: []models.PlayerProjection{
			{PlayerID: "P1", Name: "Patrick Mahomes", Position: "QB", Weeks: models.WeeklyPoints{"4": 18.5}, Status: models.StatusStarter},
			{PlayerID: "P2", Name: "Nick Chubb", Position: "RB", Weeks: models.WeeklyPoints{}, Status: models.StatusReserve},
			{PlayerID: "P3", Weeks: models.WeeklyPoints{"4": 7.7}, Status: models.StatusBench, Err: fmt.Errorf("%w: player P3: %w", models.ErrStoreStale, models.ErrNotFound)},
		},
	}
}

func TestWriteTable(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteTable(&buf, sampleReport()); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("lines=%d want header + 3\n%s", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[0], "PLAYER_ID") {
		t.Errorf("header=%q", lines[0])
	}
	for i, want := range []string{"P1", "P2", "P3"} {
		if !strings.HasPrefix(lines[i+1], want) {
			t.Errorf("line %d=%q want prefix %s", i+1, lines[i+1], want)
		}
	}
	if !strings.Contains(lines[1], "{4: 18.50}") || !strings.Contains(lines[1], "starter") {
		t.Errorf("P1 line=%q", lines[1])
	}
	if !strings.Contains(lines[2], "{}") || !strings.Contains(lines[2], "reserve") {
		t.Errorf("P2 line=%q", lines[2])
	}
	if !strings.Contains(lines[3], "not found") {
		t.Errorf("P3 line=%q should carry the error", lines[3])
	}
}

func TestFormatProjectionsMessage(t *testing.T) {
	msg := FormatProjectionsMessage(sampleReport())

	for _, want := range []string{
		"📈 *Projections:* Keepers",
		"*Starters:*\n▫️ QB Patrick Mahomes - 18.50 pts",
		"Projected total: 18.50",
		"*Bench:*\n▫️ P3 - unavailable",
		"*Reserve:*\n▫️ RB Nick Chubb - 0.00 pts",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("message missing %q:\n%s", want, msg)
		}
	}
	if strings.Contains(msg, "*Taxi:*") {
		t.Error("empty groups should be omitted")
	}
}

func TestFormatMessagesEscapeMarkdown(t *testing.T) {
	report := sampleReport()
	report.LeagueName = "Big_Ballers"
	report.Username = "the_*real*_alice"
	report.Rows[0].Name = "Patrick_Mahomes"

	msg := FormatProjectionsMessage(report)
	for _, want := range []string{
		`*Projections:* Big\_Ballers`,
		`the\_\*real\*\_alice · Season 2023`,
		`▫️ QB Patrick\_Mahomes - 18.50 pts`,
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("message missing %q:\n%s", want, msg)
		}
	}
	if strings.Contains(msg, "Big_Ballers") {
		t.Errorf("league name left unescaped:\n%s", msg)
	}

	card := FormatPlayer(models.Player{ID: "4046", FirstName: "D_J", LastName: "Moore`", Position: "WR", College: "[Maryland]"})
	for _, want := range []string{"👤 D\\_J Moore\\` (WR - FA)", "College: \\[Maryland]"} {
		if !strings.Contains(card, want) {
			t.Errorf("player card missing %q:\n%s", want, card)
		}
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, sampleReport()); err != nil {
		t.Fatal(err)
	}

	var view ReportView
	if err := json.Unmarshal(buf.Bytes(), &view); err != nil {
		t.Fatalf("decoding: %v\n%s", err, buf.String())
	}
	if len(view.Rows) != 3 {
		t.Fatalf("rows=%d want 3", len(view.Rows))
	}
	if view.Rows[0].Error != "" || view.Rows[0].Weeks["4"] != 18.5 {
		t.Errorf("P1=%+v", view.Rows[0])
	}
	if !strings.Contains(view.Rows[2].Error, "player store stale") {
		t.Errorf("P3 error=%q", view.Rows[2].Error)
	}
}
