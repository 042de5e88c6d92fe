package bot

import (
	"context"
	"errors"
	"slices"
	"strings"
	"testing"
)

func TestParseProjectionArgs(t *testing.T) {
	tests := []struct {
		args      string
		username  string
		league    string
		season    string
		weeks     []string
		allWeeks  bool
		wantError bool
	}{
		{args: ""},
		{args: "alice", username: "alice"},
		{args: "alice | Keepers", username: "alice", league: "Keepers"},
		{args: "alice | Keepers | 2024 | 4", username: "alice", league: "Keepers", season: "2024", weeks: []string{"4"}},
		{args: " | | 2024 | 4, 5", season: "2024", weeks: []string{"4", "5"}},
		{args: "alice | Keepers | 2024 | all", username: "alice", league: "Keepers", season: "2024", allWeeks: true},
		{args: "a | b | c | d | e", wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.args, func(t *testing.T) {
			req, err := parseProjectionArgs(tt.args)
			if tt.wantError {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if req.Username != tt.username || req.LeagueName != tt.league || req.Season != tt.season {
				t.Errorf("got %+v", req)
			}
			if !slices.Equal(req.Weeks, tt.weeks) {
				t.Errorf("weeks = %v, want %v", req.Weeks, tt.weeks)
			}
			if req.AllWeeks != tt.allWeeks {
				t.Errorf("allWeeks = %v, want %v", req.AllWeeks, tt.allWeeks)
			}
		})
	}
}

func TestRespondUsage(t *testing.T) {
	h := NewHandler(nil)
	ctx := context.Background()

	tests := []struct {
		command string
		args    string
		want    string
	}{
		{"help", "", "/projections"},
		{"start", "", "Welcome"},
		{"player", "Mahomes", "Usage: /player"},
		{"id", "", "Usage: /id"},
		{"search", "  ", "Usage: /search"},
		{"projections", "a|b|c|d|e", "too many arguments"},
		{"scores", "", "Unknown command"},
	}

	for _, tt := range tests {
		t.Run(tt.command, func(t *testing.T) {
			got := h.respond(ctx, tt.command, tt.args)
			if !strings.Contains(got, tt.want) {
				t.Errorf("respond(%q, %q) = %q, want it to contain %q", tt.command, tt.args, got, tt.want)
			}
		})
	}
}

func TestAllowedChats(t *testing.T) {
	open := &TelegramBot{}
	if !open.allowed(42) {
		t.Error("bot without a chat id should serve every chat")
	}

	locked := &TelegramBot{chatID: 7}
	if !locked.allowed(7) || locked.allowed(42) {
		t.Error("bot with a chat id should only serve that chat")
	}
}

func TestReplyEscapesErrors(t *testing.T) {
	got := reply("", errors.New(`league "big_ballers" in season 2023: not found`))
	want := `Error: league "big\_ballers" in season 2023: not found`
	if got != want {
		t.Errorf("reply = %q, want %q", got, want)
	}

	if got := reply("*ok*", nil); got != "*ok*" {
		t.Errorf("reply passed text through as %q", got)
	}
}

func TestHelpTextHasNoUnbalancedMarkdown(t *testing.T) {
	for _, c := range []string{"[", "_", "*", "`"} {
		if strings.Contains(helpText, c) {
			t.Errorf("help text contains Markdown control character %q", c)
		}
	}
}
