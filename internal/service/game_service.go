package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"trackclash/internal/charts"
	"trackclash/internal/game"
	"trackclash/internal/models"
	"trackclash/internal/repository"
	"trackclash/internal/validation"
)

var (
	ErrGameNotFound = errors.New("game not found")
	ErrNotYourGame  = errors.New("game belongs to another player")
	ErrUnknownChart = errors.New("unknown chart")
)

// quickPoolSize is how many archived entries quick play samples to build a
// game's chart pool.
const quickPoolSize = 80

// GameService owns every in-flight game: it builds the chart pool, drives
// the session state machine and persists outcomes as they happen.
type GameService struct {
	gameRepo  *repository.GameRepository
	chartRepo *repository.ChartRepository
	statsRepo *repository.StatsRepository
	userRepo  *repository.UserRepository
	charts    *charts.Client
	resolver  game.Resolver
	email     *EmailService

	mu     sync.Mutex
	active map[string]*activeGame
}

type activeGame struct {
	session  *game.Session
	game     *models.Game
	userID   int64
	lastSeen time.Time
}

// NewGameService creates the game service
func NewGameService(
	gameRepo *repository.GameRepository,
	chartRepo *repository.ChartRepository,
	statsRepo *repository.StatsRepository,
	userRepo *repository.UserRepository,
	chartClient *charts.Client,
	resolver game.Resolver,
	email *EmailService,
) *GameService {
	return &GameService{
		gameRepo:  gameRepo,
		chartRepo: chartRepo,
		statsRepo: statsRepo,
		userRepo:  userRepo,
		charts:    chartClient,
		resolver:  resolver,
		email:     email,
		active:    make(map[string]*activeGame),
	}
}

// StartClassic begins a game built from one exact chart week
func (s *GameService) StartClassic(ctx context.Context, user *models.User, slug, week string) (*models.Game, error) {
	if err := validation.ValidateChartSlug(slug); err != nil {
		return nil, err
	}
	if err := validation.ValidateChartWeek(week); err != nil {
		return nil, err
	}
	if !charts.IsKnownChart(slug) {
		return nil, ErrUnknownChart
	}

	pool, err := s.charts.FetchWeek(ctx, slug, week)
	if err != nil {
		return nil, fmt.Errorf("fetch chart week: %w", err)
	}

	g := &models.Game{
		PublicID:  uuid.New().String(),
		UserID:    user.ID,
		Mode:      models.ModeClassic,
		ChartSlug: slug,
		ChartWeek: week,
		StartedAt: time.Now(),
	}

	return s.startGame(g, pool, "")
}

// StartQuick begins a game sampled from the archive by decade and difficulty
func (s *GameService) StartQuick(ctx context.Context, user *models.User, slug, decade string, difficulty game.Difficulty) (*models.Game, error) {
	if err := validation.ValidateChartSlug(slug); err != nil {
		return nil, err
	}
	if err := validation.ValidateDecade(decade); err != nil {
		return nil, err
	}
	if !charts.IsKnownChart(slug) {
		return nil, ErrUnknownChart
	}
	if !difficulty.Valid() {
		return nil, fmt.Errorf("unknown difficulty: %s", difficulty)
	}

	start, end, err := decadeRange(decade)
	if err != nil {
		return nil, err
	}

	pool, err := s.chartRepo.SampleByDifficulty(slug, string(difficulty), start, end, quickPoolSize)
	if err != nil {
		return nil, fmt.Errorf("sample chart archive: %w", err)
	}

	g := &models.Game{
		PublicID:   uuid.New().String(),
		UserID:     user.ID,
		Mode:       models.ModeQuick,
		ChartSlug:  slug,
		Decade:     decade,
		Difficulty: string(difficulty),
		StartedAt:  time.Now(),
	}

	return s.startGame(g, pool, difficulty)
}

func (s *GameService) startGame(g *models.Game, pool []models.ChartEntry, difficulty game.Difficulty) (*models.Game, error) {
	session := game.NewSession(s.resolver, &sessionReporter{service: s, game: g})
	if err := session.Begin(pool, difficulty); err != nil {
		return nil, err
	}

	if err := s.gameRepo.CreateGame(g); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.active[g.PublicID] = &activeGame{
		session:  session,
		game:     g,
		userID:   g.UserID,
		lastSeen: time.Now(),
	}
	s.mu.Unlock()

	return g, nil
}

// StartRound resolves and starts the next round of a game
func (s *GameService) StartRound(ctx context.Context, publicID string, userID int64) (*game.Round, error) {
	ag, err := s.lookup(publicID, userID)
	if err != nil {
		return nil, err
	}
	return ag.session.StartRound(ctx)
}

// Answer submits the player's choice for the current round
func (s *GameService) Answer(publicID string, userID int64, chosenKey string) (*game.Outcome, error) {
	ag, err := s.lookup(publicID, userID)
	if err != nil {
		return nil, err
	}
	return ag.session.Answer(chosenKey)
}

// Advance moves a decided round forward
func (s *GameService) Advance(publicID string, userID int64) error {
	ag, err := s.lookup(publicID, userID)
	if err != nil {
		return err
	}
	return ag.session.Advance()
}

// GameState is a snapshot of an in-flight game for the client.
type GameState struct {
	Game     *models.Game
	State    game.State
	Round    *game.Round
	Score    int
	Correct  int
	RoundIdx int
}

// GetState snapshots a game's current state
func (s *GameService) GetState(publicID string, userID int64) (*GameState, error) {
	ag, err := s.lookup(publicID, userID)
	if err != nil {
		return nil, err
	}

	return &GameState{
		Game:     ag.game,
		State:    ag.session.State(),
		Round:    ag.session.CurrentRound(),
		Score:    ag.session.Score(),
		Correct:  ag.session.CorrectCount(),
		RoundIdx: ag.session.RoundIndex(),
	}, nil
}

// Abandon cancels an in-flight game without recording a result
func (s *GameService) Abandon(publicID string, userID int64) error {
	ag, err := s.lookup(publicID, userID)
	if err != nil {
		return err
	}

	ag.session.Reset()

	s.mu.Lock()
	delete(s.active, publicID)
	s.mu.Unlock()
	return nil
}

// History returns a user's recent games
func (s *GameService) History(userID int64, limit int) ([]models.Game, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.gameRepo.GetGamesByUser(userID, limit)
}

// GameDetail returns a persisted game with its guesses
func (s *GameService) GameDetail(publicID string, userID int64) (*models.Game, []models.Guess, error) {
	g, err := s.gameRepo.GetGameByPublicID(publicID)
	if err != nil {
		return nil, nil, err
	}
	if g == nil {
		return nil, nil, ErrGameNotFound
	}
	if g.UserID != userID {
		return nil, nil, ErrNotYourGame
	}

	guesses, err := s.gameRepo.GetGuessesByGame(g.ID)
	if err != nil {
		return nil, nil, err
	}
	return g, guesses, nil
}

// Leaderboard returns the top completed games
func (s *GameService) Leaderboard(mode string, limit int) ([]models.LeaderboardEntry, error) {
	if mode != "" && mode != models.ModeClassic && mode != models.ModeQuick {
		return nil, fmt.Errorf("unknown mode: %s", mode)
	}
	if limit <= 0 || limit > 100 {
		limit = 25
	}
	return s.statsRepo.GetLeaderboard(mode, limit)
}

// UserStats returns a user's aggregate rollup
func (s *GameService) UserStats(userID int64) (*models.UserStats, error) {
	return s.statsRepo.GetUserStats(userID)
}

// CleanupStale drops in-memory sessions idle longer than maxIdle. Their
// persisted rows remain as in-progress games.
func (s *GameService) CleanupStale(maxIdle time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().Add(-maxIdle)
	for id, ag := range s.active {
		if ag.lastSeen.Before(cutoff) {
			ag.session.Reset()
			delete(s.active, id)
		}
	}
}

func (s *GameService) lookup(publicID string, userID int64) (*activeGame, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ag, ok := s.active[publicID]
	if !ok {
		return nil, ErrGameNotFound
	}
	if ag.userID != userID {
		return nil, ErrNotYourGame
	}
	ag.lastSeen = time.Now()
	return ag, nil
}

// sessionReporter bridges session events to persistence. The session calls
// it with its lock held, so all database and email work happens in
// goroutines and is best-effort.
type sessionReporter struct {
	service *GameService
	game    *models.Game

	mu      sync.Mutex
	records []game.RoundRecord
}

func (r *sessionReporter) RecordRound(rec game.RoundRecord) {
	r.mu.Lock()
	r.records = append(r.records, rec)
	r.mu.Unlock()

	go func() {
		guess := &models.Guess{
			GameID:        r.game.ID,
			QuestionIndex: rec.Index,
			CorrectKey:    rec.CorrectKey,
			CorrectLabel:  rec.CorrectLabel,
			OptionsShown:  strings.Join(rec.OptionKeys, ","),
			ChosenKey:     rec.ChosenKey,
			IsCorrect:     rec.IsCorrect,
			TimedOut:      rec.TimedOut,
			ElapsedMs:     int(rec.ElapsedMs),
			PointsEarned:  rec.Points,
			AnsweredAt:    time.Now(),
		}
		if err := r.service.gameRepo.AddGuess(guess); err != nil {
			log.Printf("Failed to persist guess for game %s round %d: %v", r.game.PublicID, rec.Index, err)
		}
	}()
}

func (r *sessionReporter) Complete(sum game.Summary) {
	r.mu.Lock()
	records := make([]game.RoundRecord, len(r.records))
	copy(records, r.records)
	r.mu.Unlock()

	go func() {
		result := models.ResultLoss
		if sum.Win {
			result = models.ResultWin
		}
		completedAt := time.Now()

		if err := r.service.gameRepo.CompleteGame(r.game.ID, sum.TotalPoints, sum.CorrectCount, result, completedAt); err != nil {
			log.Printf("Failed to complete game %s: %v", r.game.PublicID, err)
		}
		if err := r.service.statsRepo.RecordGame(r.game.UserID, sum.TotalPoints, sum.Win, completedAt); err != nil {
			log.Printf("Failed to record stats for game %s: %v", r.game.PublicID, err)
		}

		// The session stays in the active map so the client can still
		// read the final state; CleanupStale reaps it later.
		r.service.sendSummaryEmail(r.game, sum, records)
	}()
}

func (s *GameService) sendSummaryEmail(g *models.Game, sum game.Summary, records []game.RoundRecord) {
	if s.email == nil || !s.email.IsEnabled() {
		return
	}

	user, err := s.userRepo.GetUserByID(g.UserID)
	if err != nil || user == nil || user.IsGuest || user.Email == "" {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := s.email.SendGameSummaryEmail(ctx, user.Email, user.DisplayName, sum, records); err != nil {
		log.Printf("Failed to send game summary email for game %s: %v", g.PublicID, err)
	}
}

// decadeRange converts a decade label to its [start, end) week bounds
func decadeRange(decade string) (string, string, error) {
	year, err := strconv.Atoi(decade[:4])
	if err != nil {
		return "", "", fmt.Errorf("invalid decade: %s", decade)
	}
	return fmt.Sprintf("%d-01-01", year), fmt.Sprintf("%d-01-01", year+10), nil
}
