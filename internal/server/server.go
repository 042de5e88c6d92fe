package server

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	jsoniter "github.com/json-iterator/go"

	"github.com/omarshaarawi/sleeperbot/internal/models"
	"github.com/omarshaarawi/sleeperbot/internal/service"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const requestTimeout = 60 * time.Second

type Handler struct {
	fantasyService *service.FantasyService
}

func NewHandler(fantasyService *service.FantasyService) *Handler {
	return &Handler{fantasyService: fantasyService}
}

// Router serves the JSON API under /api and the MCP endpoint at /mcp.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", h.health)
	r.Handle("/mcp", h.MCPHandler())

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Timeout(requestTimeout))

		r.Get("/players", h.lookupPlayers)
		r.Get("/players/search", h.searchPlayers)
		r.Get("/players/{id}", h.getPlayer)
		r.Get("/players/{id}/weekly", h.exportWeekly)
		r.Post("/players/refresh", h.refreshPlayers)

		r.Get("/leagues", h.listLeagues)
		r.Get("/projections", h.viewProjections)
	})
	return r
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	n, err := h.fantasyService.Players().Count(r.Context())
	if err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{"status": "unhealthy", "error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "players": n})
}

func (h *Handler) getPlayer(w http.ResponseWriter, r *http.Request) {
	player, err := h.fantasyService.Players().LookupByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, player)
}

func (h *Handler) lookupPlayers(w http.ResponseWriter, r *http.Request) {
	first, last := r.URL.Query().Get("first"), r.URL.Query().Get("last")
	if first == "" || last == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "first and last are required"})
		return
	}

	players, err := h.fantasyService.Players().LookupByName(r.Context(), first, last)
	if err != nil {
		writeError(w, err)
		return
	}
	if players == nil {
		players = []models.Player{}
	}
	writeJSON(w, http.StatusOK, players)
}

func (h *Handler) searchPlayers(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if strings.TrimSpace(query) == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "q is required"})
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	matches, err := h.fantasyService.Players().Search(r.Context(), query, limit)
	if err != nil {
		writeError(w, err)
		return
	}
	if matches == nil {
		matches = []service.PlayerMatch{}
	}
	writeJSON(w, http.StatusOK, matches)
}

func (h *Handler) exportWeekly(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	season := q.Get("season")
	if season == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "season is required"})
		return
	}
	kind := service.ExportKind(q.Get("kind"))
	if kind == "" {
		kind = service.ExportProjections
	}

	var buf strings.Builder
	_, err := h.fantasyService.Projections().ExportWeekly(r.Context(), &buf, chi.URLParam(r, "id"), season, kind, splitWeeks(q.Get("week")))
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(buf.String()))
}

func (h *Handler) refreshPlayers(w http.ResponseWriter, r *http.Request) {
	n, err := h.fantasyService.Players().Refresh(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"players": n})
}

func (h *Handler) listLeagues(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if q.Get("user") == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "user is required"})
		return
	}

	names, err := h.fantasyService.Projections().LeagueSuggestions(r.Context(), q.Get("user"), q.Get("season"), q.Get("q"))
	if err != nil {
		writeError(w, err)
		return
	}
	if names == nil {
		names = []string{}
	}
	writeJSON(w, http.StatusOK, names)
}

func (h *Handler) viewProjections(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	all, _ := strconv.ParseBool(q.Get("all"))
	var matchup *bool
	if q.Has("matchup") {
		v, err := strconv.ParseBool(q.Get("matchup"))
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "matchup must be a boolean"})
			return
		}
		matchup = &v
	}

	report, err := h.fantasyService.ViewProjections(r.Context(), service.ProjectionRequest{
		Username:        q.Get("user"),
		LeagueName:      q.Get("league"),
		Season:          q.Get("season"),
		Weeks:           splitWeeks(q.Get("week")),
		AllWeeks:        all,
		MatchupStarters: matchup,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, service.NewReportView(report))
}

type errorResponse struct {
	Error string `json:"error"`
}

func splitWeeks(raw string) []string {
	var weeks []string
	for _, w := range strings.Split(raw, ",") {
		if w = strings.TrimSpace(w); w != "" {
			weeks = append(weeks, w)
		}
	}
	return weeks
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrRemoteUnavailable):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusFor(err), errorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
