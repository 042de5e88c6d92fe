package service

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/omarshaarawi/sleeperbot/internal/models"
)

// WriteTable renders report as an aligned text table with one row per
// rostered player in roster order.
func WriteTable(w io.Writer, report models.ProjectionReport) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PLAYER_ID\tNAME\tPROJECTION\tSTATUS\tERROR")
	for _, row := range report.Rows {
		name := row.Name
		if name == "" {
			name = "-"
		}
		errText := ""
		if row.Err != nil {
			errText = row.Err.Error()
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", row.PlayerID, name, formatWeeks(row.Weeks), row.Status, errText)
	}
	return tw.Flush()
}

func formatWeeks(points models.WeeklyPoints) string {
	weeks := points.Weeks()
	parts := make([]string, len(weeks))
	for i, week := range weeks {
		parts[i] = fmt.Sprintf("%s: %.2f", week, points[week])
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// WriteJSON renders report as indented JSON.
func WriteJSON(w io.Writer, report models.ProjectionReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	return enc.Encode(NewReportView(report))
}

// FormatProjectionsMessage renders report as a Markdown chat message,
// grouped by roster status.
func FormatProjectionsMessage(report models.ProjectionReport) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📈 *Projections:* %s\n", escape(report.LeagueName)))
	sb.WriteString(fmt.Sprintf("%s · Season %s · Week %s\n\n", escape(report.Username), escape(report.Season), escape(strings.Join(report.Weeks, ", "))))

	groups := []struct {
		status models.RosterStatus
		title  string
	}{
		{models.StatusStarter, "Starters"},
		{models.StatusBench, "Bench"},
		{models.StatusReserve, "Reserve"},
		{models.StatusTaxi, "Taxi"},
	}

	for _, g := range groups {
		var lines []string
		total := 0.0
		for _, row := range report.Rows {
			if row.Status != g.status {
				continue
			}
			name := row.Name
			if name == "" {
				name = row.PlayerID
			}
			pts := sumPoints(row.Weeks)
			total += pts

			if row.Position != "" {
				name = row.Position + " " + name
			}
			name = escape(name)

			if row.Err != nil {
				lines = append(lines, fmt.Sprintf("▫️ %s - unavailable", name))
				continue
			}
			lines = append(lines, fmt.Sprintf("▫️ %s - %.2f pts", name, pts))
		}
		if len(lines) == 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf("*%s:*\n", g.title))
		sb.WriteString(strings.Join(lines, "\n"))
		sb.WriteString("\n")
		if g.status == models.StatusStarter {
			sb.WriteString(fmt.Sprintf("Projected total: %.2f\n", total))
		}
		sb.WriteString("\n")
	}

	return strings.TrimRight(sb.String(), "\n")
}

// escape makes provider and user text safe to embed in a Markdown chat
// message. Escaped text must stay outside bold and code entities.
func escape(s string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeMarkdown, s)
}

func sumPoints(points models.WeeklyPoints) float64 {
	total := 0.0
	for _, pts := range points {
		total += pts
	}
	return total
}

func FormatPlayer(p models.Player) string {
	var sb strings.Builder
	team := p.Team
	if team == "" {
		team = "FA"
	}
	sb.WriteString(fmt.Sprintf("👤 %s (%s - %s)\n", escape(p.FullName()), escape(p.Position), escape(team)))
	sb.WriteString("━━━━━━━━━━━━━━━━\n")
	sb.WriteString(fmt.Sprintf("ID: %s\n", escape(p.ID)))
	if p.Status != "" {
		sb.WriteString(fmt.Sprintf("Status: %s\n", escape(p.Status)))
	}
	if p.Age > 0 {
		sb.WriteString(fmt.Sprintf("Age: %d\n", p.Age))
	}
	if p.College != "" {
		sb.WriteString(fmt.Sprintf("College: %s\n", escape(p.College)))
	}
	sb.WriteString(fmt.Sprintf("Experience: %d yrs", p.YearsExp))
	if p.Projection != nil {
		sb.WriteString(fmt.Sprintf("\nSeason projection: %.2f pts", *p.Projection))
	}
	return sb.String()
}

// ProjectionRowView is the JSON shape of a projection row, with the row
// error rendered as a string.
type ProjectionRowView struct {
	PlayerID string              `json:"player_id"`
	Name     string              `json:"name,omitempty"`
	Position string              `json:"position,omitempty"`
	Team     string              `json:"team,omitempty"`
	Status   models.RosterStatus `json:"status"`
	Weeks    models.WeeklyPoints `json:"weeks"`
	Error    string              `json:"error,omitempty"`
}

type ReportView struct {
	RunID       string              `json:"run_id"`
	Username    string              `json:"username"`
	LeagueID    string              `json:"league_id"`
	LeagueName  string              `json:"league_name"`
	Season      string              `json:"season"`
	Weeks       []string            `json:"weeks"`
	Rows        []ProjectionRowView `json:"rows"`
	GeneratedAt time.Time           `json:"generated_at"`
}

func NewReportView(report models.ProjectionReport) ReportView {
	rows := make([]ProjectionRowView, len(report.Rows))
	for i, row := range report.Rows {
		rows[i] = ProjectionRowView{
			PlayerID: row.PlayerID,
			Name:     row.Name,
			Position: row.Position,
			Team:     row.Team,
			Status:   row.Status,
			Weeks:    row.Weeks,
		}
		if row.Err != nil {
			rows[i].Error = row.Err.Error()
		}
	}
	return ReportView{
		RunID:       report.RunID,
		Username:    report.Username,
		LeagueID:    report.LeagueID,
		LeagueName:  report.LeagueName,
		Season:      report.Season,
		Weeks:       report.Weeks,
		Rows:        rows,
		GeneratedAt: report.GeneratedAt,
	}
}
