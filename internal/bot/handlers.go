package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/omarshaarawi/sleeperbot/internal/service"
)

const helpText = `Available commands:
/projections user | league | season | week - Weekly projections for a roster (all parts optional)
/player <first> <last> - Look up a player by name
/id <player id> - Look up a player by id
/search <name> - Fuzzy player search
/leagues <user> <query> - List a user's leagues (both optional)
/refresh - Refresh the player store`

type Handler struct {
	fantasyService *service.FantasyService
}

func NewHandler(fantasyService *service.FantasyService) *Handler {
	return &Handler{fantasyService: fantasyService}
}

func (h *Handler) HandleCommand(ctx context.Context, update tgbotapi.Update) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(update.Message.Chat.ID, "")
	msg.ParseMode = "Markdown"
	msg.Text = h.respond(ctx, strings.ToLower(update.Message.Command()), update.Message.CommandArguments())
	return msg
}

func (h *Handler) respond(ctx context.Context, command, args string) string {
	args = strings.TrimSpace(args)

	switch command {
	case "start":
		return "Welcome to SleeperBot! Use /help to see available commands."
	case "help":
		return helpText
	case "projections":
		req, err := parseProjectionArgs(args)
		if err != nil {
			return fmt.Sprintf("%v. Usage: /projections user | league | season | week", err)
		}
		return reply(h.fantasyService.GetProjections(ctx, req))
	case "player":
		first, last, ok := strings.Cut(args, " ")
		if !ok || strings.TrimSpace(last) == "" {
			return "Please provide a first and last name. Usage: /player <first> <last>"
		}
		return reply(h.fantasyService.GetPlayer(ctx, first, strings.TrimSpace(last)))
	case "id":
		if args == "" {
			return "Please provide a player id. Usage: /id <player id>"
		}
		return reply(h.fantasyService.GetPlayerByID(ctx, args))
	case "search":
		if args == "" {
			return "Please provide a name. Usage: /search <name>"
		}
		return reply(h.fantasyService.SearchPlayers(ctx, args))
	case "leagues":
		username, query, _ := strings.Cut(args, " ")
		return reply(h.fantasyService.GetLeagues(ctx, username, "", strings.TrimSpace(query)))
	case "refresh":
		return reply(h.fantasyService.RefreshPlayers(ctx))
	default:
		return "Unknown command. Use /help to see available commands."
	}
}

func reply(text string, err error) string {
	if err != nil {
		return "Error: " + tgbotapi.EscapeText(tgbotapi.ModeMarkdown, err.Error())
	}
	return text
}

// parseProjectionArgs reads "user | league | season | week". Every part is
// optional; empty parts fall back to the configured defaults and the current
// NFL state. A week of "all" keeps the whole season.
func parseProjectionArgs(args string) (service.ProjectionRequest, error) {
	var req service.ProjectionRequest
	if args == "" {
		return req, nil
	}

	parts := strings.Split(args, "|")
	if len(parts) > 4 {
		return req, errors.New("too many arguments")
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	for len(parts) < 4 {
		parts = append(parts, "")
	}

	req.Username = parts[0]
	req.LeagueName = parts[1]
	req.Season = parts[2]
	switch week := parts[3]; {
	case strings.EqualFold(week, "all"):
		req.AllWeeks = true
	case week != "":
		for _, w := range strings.Split(week, ",") {
			if w = strings.TrimSpace(w); w != "" {
				req.Weeks = append(req.Weeks, w)
			}
		}
	}
	return req, nil
}
