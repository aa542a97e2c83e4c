package handlers

import (
	"net/http"
	"strconv"

	"trackclash/internal/service"
)

// LeaderboardHandler serves the public leaderboard and per-user stats
type LeaderboardHandler struct {
	gameService *service.GameService
}

// NewLeaderboardHandler creates a new leaderboard handler
func NewLeaderboardHandler(gameService *service.GameService) *LeaderboardHandler {
	return &LeaderboardHandler{gameService: gameService}
}

// Leaderboard returns the top completed games, optionally filtered by mode
func (h *LeaderboardHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	mode := r.URL.Query().Get("mode")
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	entries, err := h.gameService.Leaderboard(mode, limit)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error(), "", nil)
		return
	}

	views := make([]map[string]interface{}, 0, len(entries))
	for _, e := range entries {
		views = append(views, map[string]interface{}{
			"rank":         e.Rank,
			"display_name": e.DisplayName,
			"mode":         e.Mode,
			"points":       e.TotalPoints,
			"played_at":    e.PlayedAt,
		})
	}

	respondWithJSON(w, http.StatusOK, views)
}

// MyStats returns the authenticated user's aggregate rollup
func (h *LeaderboardHandler) MyStats(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	stats, err := h.gameService.UserStats(user.ID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to load stats", err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"games_played":   stats.GamesPlayed,
		"wins":           stats.Wins,
		"losses":         stats.Losses,
		"total_points":   stats.TotalPoints,
		"last_played_at": stats.LastPlayedAt,
	})
}
