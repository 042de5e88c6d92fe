package server

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/omarshaarawi/sleeperbot/internal/service"
)

type ProjectionsArgs struct {
	Username        string   `json:"username,omitempty" jsonschema:"Sleeper username (defaults to SLEEPER_USERNAME)"`
	League          string   `json:"league,omitempty" jsonschema:"Exact league name (defaults to SLEEPER_LEAGUE)"`
	Season          string   `json:"season,omitempty" jsonschema:"Season year (empty = current)"`
	Weeks           []string `json:"weeks,omitempty" jsonschema:"Weeks to project (empty = current week)"`
	AllWeeks        bool     `json:"all_weeks,omitempty" jsonschema:"Keep every week of the season"`
	MatchupStarters *bool    `json:"matchup_starters,omitempty" jsonschema:"Use the week's matchup lineup for starters (default MATCHUP_STARTERS)"`
}

type PlayerLookupArgs struct {
	PlayerID  string `json:"player_id,omitempty" jsonschema:"Sleeper player id"`
	FirstName string `json:"first_name,omitempty" jsonschema:"First name (with last_name, if player_id not provided)"`
	LastName  string `json:"last_name,omitempty" jsonschema:"Last name"`
}

type PlayerSearchArgs struct {
	Query string `json:"query" jsonschema:"Player name, partial or misspelled (required)"`
	Limit int    `json:"limit,omitempty" jsonschema:"Maximum matches (default 10)"`
}

type WeeklyExportArgs struct {
	PlayerID string   `json:"player_id" jsonschema:"Sleeper player id (required)"`
	Season   string   `json:"season" jsonschema:"Season year (required)"`
	Kind     string   `json:"kind,omitempty" jsonschema:"projections|stats (default projections)"`
	Weeks    []string `json:"weeks,omitempty" jsonschema:"Weeks to keep (empty = all)"`
}

// NewMCPServer exposes the projection and player lookups as MCP tools.
func (h *Handler) NewMCPServer() *mcp.Server {
	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    "sleeperbot",
			Version: "0.1.0",
		},
		nil,
	)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "weekly_projections",
		Description: "Weekly PPR projections for every player on a user's roster, tagged starter/bench/reserve/taxi",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args ProjectionsArgs) (*mcp.CallToolResult, any, error) {
		report, err := h.fantasyService.ViewProjections(ctx, service.ProjectionRequest{
			Username:        args.Username,
			LeagueName:      args.League,
			Season:          args.Season,
			Weeks:           args.Weeks,
			AllWeeks:        args.AllWeeks,
			MatchupStarters: args.MatchupStarters,
		})
		if err != nil {
			return toolError(err), nil, nil
		}
		return toolJSON(json.Marshal(service.NewReportView(report)))
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "player_lookup",
		Description: "Look up players in the local store by id or exact first and last name",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args PlayerLookupArgs) (*mcp.CallToolResult, any, error) {
		players := h.fantasyService.Players()
		if args.PlayerID != "" {
			p, err := players.LookupByID(ctx, args.PlayerID)
			if err != nil {
				return toolError(err), nil, nil
			}
			return toolJSON(json.Marshal(p))
		}
		if args.FirstName == "" || args.LastName == "" {
			return toolError(fmt.Errorf("player_id or first_name and last_name are required")), nil, nil
		}
		found, err := players.LookupByName(ctx, args.FirstName, args.LastName)
		if err != nil {
			return toolError(err), nil, nil
		}
		return toolJSON(json.Marshal(found))
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "player_search",
		Description: "Fuzzy search of the local player store by name",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args PlayerSearchArgs) (*mcp.CallToolResult, any, error) {
		if args.Query == "" {
			return toolError(fmt.Errorf("query is required")), nil, nil
		}
		matches, err := h.fantasyService.Players().Search(ctx, args.Query, args.Limit)
		if err != nil {
			return toolError(err), nil, nil
		}
		return toolJSON(json.Marshal(matches))
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "weekly_points",
		Description: "A player's weekly PPR projections or actual stats for a season, keyed by week",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args WeeklyExportArgs) (*mcp.CallToolResult, any, error) {
		if args.PlayerID == "" || args.Season == "" {
			return toolError(fmt.Errorf("player_id and season are required")), nil, nil
		}
		kind := service.ExportKind(args.Kind)
		if kind == "" {
			kind = service.ExportProjections
		}
		points, err := h.fantasyService.Projections().ExportWeekly(ctx, io.Discard, args.PlayerID, args.Season, kind, args.Weeks)
		if err != nil {
			return toolError(err), nil, nil
		}
		return toolJSON(service.MarshalWeeklyPoints(points))
	})

	return server
}

func (h *Handler) MCPHandler() http.Handler {
	server := h.NewMCPServer()
	return mcp.NewStreamableHTTPHandler(func(r *http.Request) *mcp.Server {
		return server
	}, &mcp.StreamableHTTPOptions{JSONResponse: true})
}

func toolJSON(res []byte, err error) (*mcp.CallToolResult, any, error) {
	if err != nil {
		return toolError(err), nil, nil
	}
	return toolJSONBytes(res), nil, nil
}

func toolJSONBytes(res []byte) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(res)},
		},
	}
}

func toolError(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{
			&mcp.TextContent{Text: fmt.Sprintf("error: %v", err)},
		},
	}
}
