package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/vytor/statsboard/internal/logger"
	"github.com/vytor/statsboard/internal/models"
	"github.com/vytor/statsboard/internal/stattype"
)

type playerStatsResponse struct {
	Player        uuid.UUID              `json:"player"`
	Window        windowView             `json:"window"`
	RankingMetric stattype.Kind          `json:"ranking_metric"`
	Rank          int64                  `json:"rank"`
	Ranked        bool                   `json:"ranked"`
	Stats         []models.StatAggregate `json:"stats"`
}

type leaderboardResponse struct {
	Window  windowView                `json:"window"`
	Metric  stattype.Kind             `json:"metric"`
	Entries []models.LeaderboardEntry `json:"entries"`
}

type statKindView struct {
	ID          string `json:"id"`
	DisplayKey  string `json:"display_key"`
	Description string `json:"description"`
	Ranking     bool   `json:"ranking"`
}

func (s *Server) handlePlayerStats(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	player, err := parsePlayerID(chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	window, err := parseWindow(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	log.Debug("fetching player stats: player=%s, window=%d", player, window)
	snapshot, err := s.StatsService.GetPlayerStats(r.Context(), player, window)
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, playerStatsResponse{
		Player:        snapshot.Player,
		Window:        newWindowView(snapshot.Window),
		RankingMetric: s.StatsService.RankingMetric(),
		Rank:          snapshot.Rank,
		Ranked:        snapshot.Ranked(),
		Stats:         snapshot.Stats,
	})
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	window, err := parseWindow(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	board, err := s.StatsService.GetLeaderboard(r.Context(), window)
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, leaderboardResponse{
		Window:  newWindowView(board.Window),
		Metric:  board.Metric,
		Entries: board.Entries,
	})
}

func (s *Server) handleStatKinds(w http.ResponseWriter, r *http.Request) {
	metric := s.StatsService.RankingMetric()
	kinds := stattype.All()
	out := make([]statKindView, 0, len(kinds))
	for _, k := range kinds {
		out = append(out, statKindView{
			ID:          k.ID(),
			DisplayKey:  k.DisplayKey(),
			Description: k.Description(),
			Ranking:     k == metric,
		})
	}
	writeJSON(w, r, http.StatusOK, out)
}
