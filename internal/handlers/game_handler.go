package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"trackclash/internal/game"
	"trackclash/internal/models"
	"trackclash/internal/service"
	"trackclash/internal/validation"
)

// GameHandler handles gameplay endpoints
type GameHandler struct {
	gameService *service.GameService
}

// NewGameHandler creates a new game handler
func NewGameHandler(gameService *service.GameService) *GameHandler {
	return &GameHandler{gameService: gameService}
}

type startGameRequest struct {
	Mode       string `json:"mode"`
	Chart      string `json:"chart"`
	Week       string `json:"week"`
	Decade     string `json:"decade"`
	Difficulty string `json:"difficulty"`
}

// StartGame creates a new game in the requested mode
func (h *GameHandler) StartGame(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	var req startGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidRequestBody, "", err)
		return
	}

	var (
		g   *models.Game
		err error
	)
	switch req.Mode {
	case models.ModeClassic:
		g, err = h.gameService.StartClassic(r.Context(), user, req.Chart, req.Week)
	case models.ModeQuick:
		g, err = h.gameService.StartQuick(r.Context(), user, req.Chart, req.Decade, game.Difficulty(req.Difficulty))
	default:
		respondWithError(w, http.StatusBadRequest, "Mode must be classic or quick", "", nil)
		return
	}

	if err != nil {
		h.respondWithGameError(w, err, "Failed to start game")
		return
	}

	respondWithJSON(w, http.StatusCreated, gameView(g))
}

// StartRound resolves the next round's preview and starts its countdown
func (h *GameHandler) StartRound(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	publicID := r.PathValue("id")

	round, err := h.gameService.StartRound(r.Context(), publicID, user.ID)
	if err != nil {
		if errors.Is(err, game.ErrRoundSkipped) {
			// The skipped round already advanced; tell the client where
			// the game stands now
			state, stateErr := h.gameService.GetState(publicID, user.ID)
			if stateErr != nil {
				h.respondWithGameError(w, stateErr, "Failed to load game state")
				return
			}
			view := stateView(state)
			view["skipped"] = true
			respondWithJSON(w, http.StatusOK, view)
			return
		}
		h.respondWithGameError(w, err, "Failed to start round")
		return
	}

	respondWithJSON(w, http.StatusOK, roundView(round))
}

type answerRequest struct {
	ChosenKey string `json:"chosen_key"`
}

// Answer submits the player's choice for the current round
func (h *GameHandler) Answer(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	publicID := r.PathValue("id")

	var req answerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidRequestBody, "", err)
		return
	}

	outcome, err := h.gameService.Answer(publicID, user.ID, req.ChosenKey)
	if err != nil {
		if errors.Is(err, game.ErrRoundClosed) {
			respondWithError(w, http.StatusConflict, "Round already decided", "", nil)
			return
		}
		h.respondWithGameError(w, err, "Failed to submit answer")
		return
	}

	state, err := h.gameService.GetState(publicID, user.ID)
	if err != nil {
		h.respondWithGameError(w, err, "Failed to load game state")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"correct":     outcome.IsCorrect,
		"correct_key": answerCorrectKey(state, outcome),
		"points":      outcome.Points,
		"score":       state.Score,
	})
}

// answerCorrectKey reads the answered round's correct key from the state
// snapshot. The snapshot is taken after the answer lands, so a concurrent
// Advance may already have moved the game past the round; the outcome's own
// chosen key covers the case where the answer was correct, and an unknown
// key is reported empty rather than guessed.
func answerCorrectKey(state *service.GameState, outcome *game.Outcome) string {
	if state.Round != nil {
		return state.Round.Track.Key()
	}
	if outcome.IsCorrect {
		return outcome.ChosenKey
	}
	return ""
}

// Advance moves a decided round forward
func (h *GameHandler) Advance(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	publicID := r.PathValue("id")

	if err := h.gameService.Advance(publicID, user.ID); err != nil {
		h.respondWithGameError(w, err, "Failed to advance game")
		return
	}

	state, err := h.gameService.GetState(publicID, user.ID)
	if err != nil {
		h.respondWithGameError(w, err, "Failed to load game state")
		return
	}

	respondWithJSON(w, http.StatusOK, stateView(state))
}

// GetState returns the current state of an in-flight game
func (h *GameHandler) GetState(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	publicID := r.PathValue("id")

	state, err := h.gameService.GetState(publicID, user.ID)
	if err != nil {
		h.respondWithGameError(w, err, "Failed to load game state")
		return
	}

	respondWithJSON(w, http.StatusOK, stateView(state))
}

// Abandon cancels an in-flight game
func (h *GameHandler) Abandon(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	publicID := r.PathValue("id")

	if err := h.gameService.Abandon(publicID, user.ID); err != nil {
		h.respondWithGameError(w, err, "Failed to abandon game")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"status": "abandoned"})
}

// History lists the player's recent games
func (h *GameHandler) History(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	games, err := h.gameService.History(user.ID, 20)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to load history", err)
		return
	}

	views := make([]map[string]interface{}, 0, len(games))
	for i := range games {
		views = append(views, gameView(&games[i]))
	}
	respondWithJSON(w, http.StatusOK, views)
}

// GameDetail returns a persisted game with its per-question results
func (h *GameHandler) GameDetail(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	publicID := r.PathValue("id")

	g, guesses, err := h.gameService.GameDetail(publicID, user.ID)
	if err != nil {
		h.respondWithGameError(w, err, "Failed to load game")
		return
	}

	guessViews := make([]map[string]interface{}, 0, len(guesses))
	for _, guess := range guesses {
		guessViews = append(guessViews, map[string]interface{}{
			"question_index": guess.QuestionIndex,
			"correct_label":  guess.CorrectLabel,
			"chosen_key":     guess.ChosenKey,
			"is_correct":     guess.IsCorrect,
			"timed_out":      guess.TimedOut,
			"elapsed_ms":     guess.ElapsedMs,
			"points_earned":  guess.PointsEarned,
		})
	}

	view := gameView(g)
	view["guesses"] = guessViews
	respondWithJSON(w, http.StatusOK, view)
}

func (h *GameHandler) respondWithGameError(w http.ResponseWriter, err error, logMsg string) {
	var ve validation.ValidationError
	switch {
	case errors.As(err, &ve):
		respondWithError(w, http.StatusBadRequest, ve.Error(), "", nil)
	case errors.Is(err, service.ErrGameNotFound):
		respondWithError(w, http.StatusNotFound, "Game not found", "", nil)
	case errors.Is(err, service.ErrNotYourGame):
		respondWithError(w, http.StatusForbidden, "Game belongs to another player", "", nil)
	case errors.Is(err, service.ErrUnknownChart):
		respondWithError(w, http.StatusBadRequest, "Unknown chart", "", nil)
	case errors.Is(err, game.ErrPoolTooSmall):
		respondWithError(w, http.StatusUnprocessableEntity, "Not enough unique tracks for a game", "", nil)
	case errors.Is(err, game.ErrWrongState):
		respondWithError(w, http.StatusConflict, "Operation not valid right now", "", nil)
	case errors.Is(err, game.ErrStaleResolution):
		respondWithError(w, http.StatusConflict, "Game moved on, reload state", "", nil)
	default:
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, logMsg, err)
	}
}

func gameView(g *models.Game) map[string]interface{} {
	view := map[string]interface{}{
		"id":            g.PublicID,
		"mode":          g.Mode,
		"chart":         g.ChartSlug,
		"started_at":    g.StartedAt,
		"total_points":  g.TotalPoints,
		"correct_count": g.CorrectCount,
	}
	if g.ChartWeek != "" {
		view["week"] = g.ChartWeek
	}
	if g.Decade != "" {
		view["decade"] = g.Decade
	}
	if g.Difficulty != "" {
		view["difficulty"] = g.Difficulty
	}
	if g.CompletedAt != nil {
		view["completed_at"] = g.CompletedAt
		view["result"] = g.Result
	}
	return view
}

func roundView(round *game.Round) map[string]interface{} {
	options := make([]map[string]string, 0, len(round.Options))
	for _, opt := range round.Options {
		options = append(options, map[string]string{
			"key":   opt.Key(),
			"label": opt.Label(),
		})
	}

	view := map[string]interface{}{
		"round":       round.Index,
		"preview_url": round.Preview.URL,
		"options":     options,
		"started_at":  round.StartedAt,
		"duration_s":  int(game.RoundDuration.Seconds()),
	}
	if round.Preview.ArtworkURL != "" {
		view["artwork_url"] = round.Preview.ArtworkURL
	}
	return view
}

func stateView(state *service.GameState) map[string]interface{} {
	view := map[string]interface{}{
		"id":      state.Game.PublicID,
		"state":   state.State.String(),
		"round":   state.RoundIdx,
		"score":   state.Score,
		"correct": state.Correct,
	}
	if state.State == game.StateComplete {
		view["win"] = state.Correct >= game.WinThreshold
	}
	return view
}
