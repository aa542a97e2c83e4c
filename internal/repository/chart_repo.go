package repository

import (
	"fmt"
	"time"

	"trackclash/internal/database"
	"trackclash/internal/models"
)

// ChartRepository handles the locally imported chart-week archive used by
// quick play. Classic mode fetches weeks over HTTP; quick play samples the
// archive so it can filter by decade and difficulty in SQL.
type ChartRepository struct {
	db *database.DB
}

// NewChartRepository creates a new chart repository
func NewChartRepository(db *database.DB) *ChartRepository {
	return &ChartRepository{db: db}
}

// InsertWeek replaces a chart week's entries. Re-importing a week is
// idempotent.
func (r *ChartRepository) InsertWeek(slug, week string, entries []models.ChartEntry) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM chart_entries WHERE chart_slug = ? AND chart_week = ?", slug, week); err != nil {
		return fmt.Errorf("failed to clear chart week: %w", err)
	}

	query := `
		INSERT INTO chart_entries (chart_slug, chart_week, song, artist, rank_this_week, rank_last_week, peak_rank, weeks_on_chart, image_url)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	for _, e := range entries {
		if _, err := tx.Exec(query,
			slug,
			week,
			e.Song,
			e.Artist,
			e.RankThisWeek,
			e.RankLastWeek,
			e.PeakRank,
			e.WeeksOnChart,
			e.ImageURL,
		); err != nil {
			return fmt.Errorf("failed to insert chart entry: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit chart week: %w", err)
	}
	return nil
}

// ListWeeks returns the imported weeks for a chart, newest first
func (r *ChartRepository) ListWeeks(slug string) ([]string, error) {
	query := `
		SELECT DISTINCT chart_week
		FROM chart_entries
		WHERE chart_slug = ?
		ORDER BY chart_week DESC
	`
	rows, err := r.db.Query(query, slug)
	if err != nil {
		return nil, fmt.Errorf("failed to query chart weeks: %w", err)
	}
	defer rows.Close()

	var weeks []string
	for rows.Next() {
		var week string
		if err := rows.Scan(&week); err != nil {
			return nil, fmt.Errorf("failed to scan chart week: %w", err)
		}
		weeks = append(weeks, week)
	}

	return weeks, rows.Err()
}

// GetWeek retrieves one chart week's entries in rank order
func (r *ChartRepository) GetWeek(slug, week string) ([]models.ChartEntry, error) {
	query := `
		SELECT song, artist, rank_this_week, rank_last_week, peak_rank, weeks_on_chart, chart_week, COALESCE(image_url, '')
		FROM chart_entries
		WHERE chart_slug = ? AND chart_week = ?
		ORDER BY rank_this_week
	`
	return r.queryEntries(query, slug, week)
}

// SampleByDifficulty draws a random set of archived entries for quick play.
// Difficulty maps onto chart position and staying power: easy picks long
// running top-ten hits, medium anything in the top twenty, hard short-lived
// songs from the lower reaches.
func (r *ChartRepository) SampleByDifficulty(slug, difficulty string, decadeStart, decadeEnd string, limit int) ([]models.ChartEntry, error) {
	query := `
		SELECT song, artist, rank_this_week, rank_last_week, peak_rank, weeks_on_chart, chart_week, COALESCE(image_url, '')
		FROM chart_entries
		WHERE chart_slug = ? AND chart_week >= ? AND chart_week < ?
	`
	args := []interface{}{slug, decadeStart, decadeEnd}

	switch difficulty {
	case "easy":
		query += " AND rank_this_week <= 10 AND weeks_on_chart >= 10"
	case "medium":
		query += " AND rank_this_week <= 20"
	case "hard":
		query += " AND rank_this_week > 20 AND weeks_on_chart <= 5"
	default:
		return nil, fmt.Errorf("unknown difficulty: %s", difficulty)
	}

	query += " ORDER BY " + r.db.Dialect.RandomFunc() + " LIMIT ?"
	args = append(args, limit)

	entries, err := r.queryEntries(query, args...)
	if err != nil {
		return nil, err
	}
	return models.DedupeEntries(entries), nil
}

func (r *ChartRepository) queryEntries(query string, args ...interface{}) ([]models.ChartEntry, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query chart entries: %w", err)
	}
	defer rows.Close()

	var entries []models.ChartEntry
	for rows.Next() {
		var e models.ChartEntry
		var week string
		if err := rows.Scan(
			&e.Song,
			&e.Artist,
			&e.RankThisWeek,
			&e.RankLastWeek,
			&e.PeakRank,
			&e.WeeksOnChart,
			&week,
			&e.ImageURL,
		); err != nil {
			return nil, fmt.Errorf("failed to scan chart entry: %w", err)
		}
		if t, err := time.Parse("2006-01-02", week); err == nil {
			e.ChartDate = &t
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}
