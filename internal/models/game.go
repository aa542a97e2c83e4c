package models

import "time"

// Game modes.
const (
	ModeClassic = "classic" // exact chart-week selection
	ModeQuick   = "quick"   // decade + difficulty sampling
)

// Game results.
const (
	ResultWin  = "win"
	ResultLoss = "loss"
)

// Game is one persisted trivia game, completed or in progress.
type Game struct {
	ID           int64
	PublicID     string // UUID exposed to clients
	UserID       int64
	Mode         string
	Genre        string
	ChartSlug    string
	ChartWeek    string // YYYY-MM-DD, empty in quick play
	Decade       string // e.g. "1990s", empty in classic
	Difficulty   string // easy/medium/hard, empty in classic
	StartedAt    time.Time
	CompletedAt  *time.Time
	TotalPoints  int
	CorrectCount int
	Result       string // win/loss, empty while in progress
}

// Guess is one answered question within a game.
type Guess struct {
	ID            int64
	GameID        int64
	QuestionIndex int
	CorrectKey    string // identity key of the correct track
	CorrectLabel  string
	OptionsShown  string // identity keys of the four options, comma separated
	ChosenKey     string // empty when the timer expired
	IsCorrect     bool
	TimedOut      bool
	ElapsedMs     int
	PointsEarned  int
	AnsweredAt    time.Time
}

// UserStats is the per-user aggregate rollup maintained as games complete.
type UserStats struct {
	UserID       int64
	GamesPlayed  int
	Wins         int
	Losses       int
	TotalPoints  int
	LastPlayedAt *time.Time
}

// LeaderboardEntry is one row of the public ranked view.
type LeaderboardEntry struct {
	Rank        int
	DisplayName string
	Mode        string
	TotalPoints int
	PlayedAt    time.Time
}
