package repository

import (
	"database/sql"
	"fmt"
	"time"

	"trackclash/internal/database"
	"trackclash/internal/models"
)

// StatsRepository maintains the per-user aggregate rollup and serves the
// leaderboard view.
type StatsRepository struct {
	db *database.DB
}

// NewStatsRepository creates a new stats repository
func NewStatsRepository(db *database.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

// RecordGame folds one completed game into the user's rollup
func (r *StatsRepository) RecordGame(userID int64, points int, won bool, playedAt time.Time) error {
	wins, losses := 0, 1
	if won {
		wins, losses = 1, 0
	}

	query := r.db.Dialect.UpsertUserStatsQuery()
	_, err := r.db.Exec(query, userID, 1, wins, losses, points, playedAt)
	if err != nil {
		return fmt.Errorf("failed to record game stats: %w", err)
	}
	return nil
}

// GetUserStats retrieves a user's aggregate stats
func (r *StatsRepository) GetUserStats(userID int64) (*models.UserStats, error) {
	query := `
		SELECT user_id, games_played, wins, losses, total_points, last_played_at
		FROM user_stats
		WHERE user_id = ?
	`
	stats := &models.UserStats{}
	err := r.db.QueryRow(query, userID).Scan(
		&stats.UserID,
		&stats.GamesPlayed,
		&stats.Wins,
		&stats.Losses,
		&stats.TotalPoints,
		&stats.LastPlayedAt,
	)

	if err == sql.ErrNoRows {
		return &models.UserStats{UserID: userID}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user stats: %w", err)
	}

	return stats, nil
}

// GetLeaderboard retrieves the highest-scoring completed games. Guests are
// excluded so the board only shows persistent accounts.
func (r *StatsRepository) GetLeaderboard(mode string, limit int) ([]models.LeaderboardEntry, error) {
	query := `
		SELECT u.display_name, g.mode, g.total_points, g.completed_at
		FROM games g
		JOIN users u ON u.id = g.user_id
		WHERE g.completed_at IS NOT NULL AND u.is_guest = ?
	`
	args := []interface{}{false}

	if mode != "" {
		query += " AND g.mode = ?"
		args = append(args, mode)
	}

	query += `
		ORDER BY g.total_points DESC, g.completed_at ASC
		LIMIT ?
	`
	args = append(args, limit)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []models.LeaderboardEntry
	for rows.Next() {
		var entry models.LeaderboardEntry
		if err := rows.Scan(
			&entry.DisplayName,
			&entry.Mode,
			&entry.TotalPoints,
			&entry.PlayedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan leaderboard entry: %w", err)
		}
		entry.Rank = len(entries) + 1
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}
