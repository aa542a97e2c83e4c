package repository

import (
	"database/sql"
	"fmt"
	"time"

	"trackclash/internal/database"
	"trackclash/internal/models"
)

// GameRepository handles database operations for games and guesses
type GameRepository struct {
	db *database.DB
}

// NewGameRepository creates a new game repository
func NewGameRepository(db *database.DB) *GameRepository {
	return &GameRepository{db: db}
}

// CreateGame inserts a new in-progress game
func (r *GameRepository) CreateGame(game *models.Game) error {
	query := `
		INSERT INTO games (public_id, user_id, mode, genre, chart_slug, chart_week, decade, difficulty, started_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	id, err := r.db.ExecReturningID(query,
		game.PublicID,
		game.UserID,
		game.Mode,
		game.Genre,
		game.ChartSlug,
		game.ChartWeek,
		game.Decade,
		game.Difficulty,
		game.StartedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create game: %w", err)
	}

	game.ID = id
	return nil
}

// CompleteGame records the final score and result of a game
func (r *GameRepository) CompleteGame(gameID int64, totalPoints, correctCount int, result string, completedAt time.Time) error {
	query := `
		UPDATE games
		SET total_points = ?, correct_count = ?, result = ?, completed_at = ?
		WHERE id = ?
	`
	_, err := r.db.Exec(query, totalPoints, correctCount, result, completedAt, gameID)
	if err != nil {
		return fmt.Errorf("failed to complete game: %w", err)
	}
	return nil
}

// AddGuess records one answered question within a game, inside a transaction
// with a running-score update so a crash never splits the two.
func (r *GameRepository) AddGuess(guess *models.Guess) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO guesses (game_id, question_index, correct_key, correct_label, options_shown, chosen_key, is_correct, timed_out, elapsed_ms, points_earned, answered_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	id, err := tx.ExecReturningID(query,
		guess.GameID,
		guess.QuestionIndex,
		guess.CorrectKey,
		guess.CorrectLabel,
		guess.OptionsShown,
		guess.ChosenKey,
		guess.IsCorrect,
		guess.TimedOut,
		guess.ElapsedMs,
		guess.PointsEarned,
		guess.AnsweredAt,
	)
	if err != nil {
		return fmt.Errorf("failed to add guess: %w", err)
	}

	update := `
		UPDATE games
		SET total_points = total_points + ?, correct_count = correct_count + ?
		WHERE id = ?
	`
	correct := 0
	if guess.IsCorrect {
		correct = 1
	}
	if _, err := tx.Exec(update, guess.PointsEarned, correct, guess.GameID); err != nil {
		return fmt.Errorf("failed to update running score: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit guess: %w", err)
	}

	guess.ID = id
	return nil
}

const gameColumns = `id, public_id, user_id, mode, COALESCE(genre, ''), COALESCE(chart_slug, ''), COALESCE(chart_week, ''), COALESCE(decade, ''), COALESCE(difficulty, ''), started_at, completed_at, total_points, correct_count, COALESCE(result, '')`

// GetGameByPublicID retrieves a game by its client-facing UUID
func (r *GameRepository) GetGameByPublicID(publicID string) (*models.Game, error) {
	query := `
		SELECT ` + gameColumns + `
		FROM games
		WHERE public_id = ?
	`
	return r.scanGame(r.db.QueryRow(query, publicID))
}

// GetGamesByUser retrieves a user's games, most recent first
func (r *GameRepository) GetGamesByUser(userID int64, limit int) ([]models.Game, error) {
	query := `
		SELECT ` + gameColumns + `
		FROM games
		WHERE user_id = ?
		ORDER BY started_at DESC
		LIMIT ?
	`
	rows, err := r.db.Query(query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query games: %w", err)
	}
	defer rows.Close()

	var games []models.Game
	for rows.Next() {
		var game models.Game
		if err := rows.Scan(
			&game.ID,
			&game.PublicID,
			&game.UserID,
			&game.Mode,
			&game.Genre,
			&game.ChartSlug,
			&game.ChartWeek,
			&game.Decade,
			&game.Difficulty,
			&game.StartedAt,
			&game.CompletedAt,
			&game.TotalPoints,
			&game.CorrectCount,
			&game.Result,
		); err != nil {
			return nil, fmt.Errorf("failed to scan game: %w", err)
		}
		games = append(games, game)
	}

	return games, rows.Err()
}

// GetGuessesByGame retrieves a game's guesses in question order
func (r *GameRepository) GetGuessesByGame(gameID int64) ([]models.Guess, error) {
	query := `
		SELECT id, game_id, question_index, correct_key, correct_label, options_shown, COALESCE(chosen_key, ''), is_correct, timed_out, elapsed_ms, points_earned, answered_at
		FROM guesses
		WHERE game_id = ?
		ORDER BY question_index
	`
	rows, err := r.db.Query(query, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to query guesses: %w", err)
	}
	defer rows.Close()

	var guesses []models.Guess
	for rows.Next() {
		var guess models.Guess
		if err := rows.Scan(
			&guess.ID,
			&guess.GameID,
			&guess.QuestionIndex,
			&guess.CorrectKey,
			&guess.CorrectLabel,
			&guess.OptionsShown,
			&guess.ChosenKey,
			&guess.IsCorrect,
			&guess.TimedOut,
			&guess.ElapsedMs,
			&guess.PointsEarned,
			&guess.AnsweredAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan guess: %w", err)
		}
		guesses = append(guesses, guess)
	}

	return guesses, rows.Err()
}

func (r *GameRepository) scanGame(row *sql.Row) (*models.Game, error) {
	game := &models.Game{}
	err := row.Scan(
		&game.ID,
		&game.PublicID,
		&game.UserID,
		&game.Mode,
		&game.Genre,
		&game.ChartSlug,
		&game.ChartWeek,
		&game.Decade,
		&game.Difficulty,
		&game.StartedAt,
		&game.CompletedAt,
		&game.TotalPoints,
		&game.CorrectCount,
		&game.Result,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return game, nil
}
