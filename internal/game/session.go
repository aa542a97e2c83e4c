// Package game owns the round state machine: sampling the ten session
// tracks from a chart pool, driving preview resolution with substitution
// retries, running the per-round countdown and computing scores.
package game

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"time"

	"trackclash/internal/models"
	"trackclash/internal/preview"
)

// State is the lifecycle phase of a session.
type State int

const (
	StateIdle State = iota
	StateSelecting
	StateLoading
	StateAwaitingAnswer
	StateAnswered
	StateComplete
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSelecting:
		return "selecting"
	case StateLoading:
		return "loading"
	case StateAwaitingAnswer:
		return "awaiting_answer"
	case StateAnswered:
		return "answered"
	case StateComplete:
		return "complete"
	}
	return "unknown"
}

const (
	// RoundsPerGame is the number of tracks played per session.
	RoundsPerGame = 10
	// RoundDuration is the answer countdown for one round.
	RoundDuration = 30 * time.Second
	// MaxSubstitutions bounds how many replacement tracks are tried after
	// the round's nominal track fails preview resolution.
	MaxSubstitutions = 3
	// WinThreshold is the correct-answer count that records a win.
	WinThreshold = 7
)

var (
	// ErrPoolTooSmall means the deduplicated chart pool cannot fill a game.
	ErrPoolTooSmall = errors.New("not enough unique tracks in chart pool")
	// ErrRoundSkipped means resolution retries exhausted and the round
	// advanced without being played.
	ErrRoundSkipped = errors.New("round skipped: no playable preview")
	// ErrRoundClosed signals an answer that arrived after the round was
	// already decided. Callers treat it as a no-op, not a fault.
	ErrRoundClosed = errors.New("round already answered")
	// ErrStaleResolution means the session moved on while a preview lookup
	// was in flight; the result was discarded.
	ErrStaleResolution = errors.New("stale preview resolution discarded")
	// ErrWrongState rejects an operation invalid in the current state.
	ErrWrongState = errors.New("operation not valid in current state")
)

// Resolver is the preview-resolution capability the session depends on.
type Resolver interface {
	Resolve(ctx context.Context, entry models.ChartEntry) (*preview.Preview, error)
}

// RoundRecord is the flattened outcome handed to the Reporter.
type RoundRecord struct {
	Index        int
	CorrectKey   string
	CorrectLabel string
	OptionKeys   []string
	ChosenKey    string
	IsCorrect    bool
	TimedOut     bool
	Skipped      bool
	ElapsedMs    int64
	Points       int
}

// Summary describes a finished session.
type Summary struct {
	TotalPoints  int
	CorrectCount int
	Win          bool
}

// Reporter receives round outcomes and session completion for persistence.
// Implementations must be best-effort and must not call back into the
// session; they are invoked with the session lock held.
type Reporter interface {
	RecordRound(rec RoundRecord)
	Complete(sum Summary)
}

// NopReporter discards everything.
type NopReporter struct{}

func (NopReporter) RecordRound(RoundRecord) {}
func (NopReporter) Complete(Summary)        {}

// Round is one question in a session.
type Round struct {
	Index     int
	Track     models.ChartEntry
	Preview   *preview.Preview
	Options   []models.ChartEntry
	StartedAt time.Time
	Outcome   *Outcome
}

// Outcome records how a round ended.
type Outcome struct {
	ChosenKey string
	IsCorrect bool
	TimedOut  bool
	Skipped   bool
	Elapsed   time.Duration
	Points    int
}

// Session is a single player's game. All state is owned by the session and
// mutated only through its transition methods; the mutex serializes the
// HTTP handlers against the countdown callback.
type Session struct {
	mu       sync.Mutex
	resolver Resolver
	reporter Reporter
	rng      *rand.Rand

	state      State
	multiplier float64

	pool   []models.ChartEntry
	tracks []models.ChartEntry
	used   map[string]bool // identity keys locked into rounds
	failed map[string]bool // tracks that failed resolution; never retried

	rounds   []*Round
	roundIdx int
	score    int
	correct  int

	// seq tags every resolution attempt; any transition that invalidates
	// in-flight work bumps it so stale results are discarded.
	seq int
	// resolving is true while a StartRound call holds a resolution in
	// flight with the lock released. A second StartRound is rejected until
	// it lands, so at most one caller mutates the track bookkeeping.
	resolving bool
	timer     *time.Timer
}

// NewSession creates an idle session.
func NewSession(resolver Resolver, reporter Reporter) *Session {
	if reporter == nil {
		reporter = NopReporter{}
	}
	return &Session{
		resolver: resolver,
		reporter: reporter,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		state:    StateIdle,
	}
}

// State returns the current lifecycle phase.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Score returns the cumulative score so far.
func (s *Session) Score() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.score
}

// CorrectCount returns how many rounds were answered correctly.
func (s *Session) CorrectCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.correct
}

// RoundIndex returns the zero-based index of the current round.
func (s *Session) RoundIndex() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.roundIdx
}

// CurrentRound returns the round being played, or nil outside a round.
func (s *Session) CurrentRound() *Round {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.rounds) == 0 {
		return nil
	}
	r := s.rounds[len(s.rounds)-1]
	if r.Index != s.roundIdx {
		return nil
	}
	return r
}

// Begin deduplicates the chart pool, samples the session's tracks and moves
// to Loading. The difficulty multiplier applies to every correct answer.
func (s *Session) Begin(pool []models.ChartEntry, difficulty Difficulty) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateIdle && s.state != StateSelecting {
		return ErrWrongState
	}

	deduped := models.DedupeEntries(pool)
	if len(deduped) < RoundsPerGame {
		return ErrPoolTooSmall
	}

	s.pool = deduped
	s.tracks = make([]models.ChartEntry, 0, RoundsPerGame)
	for _, i := range s.rng.Perm(len(deduped))[:RoundsPerGame] {
		s.tracks = append(s.tracks, deduped[i])
	}

	s.multiplier = difficulty.Multiplier()
	s.used = make(map[string]bool)
	s.failed = make(map[string]bool)
	s.rounds = nil
	s.roundIdx = 0
	s.score = 0
	s.correct = 0
	s.seq++
	s.resolving = false
	s.state = StateLoading
	return nil
}

// StartRound resolves a preview for the current round, substituting
// replacement tracks on failure, and starts the countdown. On success the
// started round is returned. If resolution retries exhaust, the round is
// skipped (counter advances, no points) and ErrRoundSkipped is returned.
func (s *Session) StartRound(ctx context.Context) (*Round, error) {
	s.mu.Lock()

	if s.state != StateLoading || s.resolving {
		s.mu.Unlock()
		return nil, ErrWrongState
	}
	s.resolving = true

	seq := s.seq
	substitutions := 0

	for {
		track := s.tracks[s.roundIdx]
		s.used[track.Key()] = true

		// The network call happens unlocked; seq detects a session that
		// was reset or restarted while we waited.
		s.mu.Unlock()
		p, err := s.resolver.Resolve(ctx, track)
		s.mu.Lock()

		if s.seq != seq {
			// A reset invalidated this attempt and already discarded the
			// bookkeeping it touched. The resolving flag now belongs to
			// the new epoch, so it is left alone.
			s.mu.Unlock()
			return nil, ErrStaleResolution
		}

		if err == nil {
			round := &Round{
				Index:     s.roundIdx,
				Track:     track,
				Preview:   p,
				Options:   BuildOptions(track, s.pool, s.rng),
				StartedAt: time.Now(),
			}
			s.rounds = append(s.rounds, round)
			s.startTimer(s.roundIdx)
			s.state = StateAwaitingAnswer
			s.resolving = false
			s.mu.Unlock()
			return round, nil
		}

		s.failed[track.Key()] = true

		if substitutions >= MaxSubstitutions {
			break
		}
		sub, ok := s.pickSubstitute()
		if !ok {
			break
		}

		// Un-mark the failed track and retry with the substitute, which
		// the top of the loop locks in.
		delete(s.used, track.Key())
		s.tracks[s.roundIdx] = sub
		substitutions++
	}

	// Retries exhausted: the last attempted track stays committed so each
	// advanced round still accounts for exactly one used track.
	round := &Round{
		Index:   s.roundIdx,
		Track:   s.tracks[s.roundIdx],
		Outcome: &Outcome{Skipped: true},
	}
	s.rounds = append(s.rounds, round)
	s.reporter.RecordRound(RoundRecord{
		Index:        round.Index,
		CorrectKey:   round.Track.Key(),
		CorrectLabel: round.Track.Label(),
		Skipped:      true,
	})
	s.advanceLocked()
	s.resolving = false
	s.mu.Unlock()
	return nil, ErrRoundSkipped
}

// Answer accepts the player's choice for the current round. Only the first
// answer counts; anything after the round is decided returns ErrRoundClosed
// and changes nothing.
func (s *Session) Answer(chosenKey string) (*Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateAwaitingAnswer {
		return nil, ErrRoundClosed
	}

	s.stopTimer()

	round := s.rounds[len(s.rounds)-1]
	elapsed := time.Since(round.StartedAt)
	isCorrect := chosenKey == round.Track.Key()

	points := 0
	if isCorrect {
		points = RoundPoints(elapsed, s.multiplier)
		s.correct++
	}
	s.score += points

	outcome := &Outcome{
		ChosenKey: chosenKey,
		IsCorrect: isCorrect,
		Elapsed:   elapsed,
		Points:    points,
	}
	round.Outcome = outcome
	s.state = StateAnswered

	s.reporter.RecordRound(s.recordFor(round))
	return outcome, nil
}

// Advance moves from a decided round to the next round's Loading phase, or
// to Complete after the final round.
func (s *Session) Advance() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateAnswered {
		return ErrWrongState
	}
	s.advanceLocked()
	return nil
}

// Reset cancels any active countdown, discards in-flight resolution results
// and returns the session to Idle.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopTimer()
	s.seq++
	s.resolving = false
	s.state = StateIdle
	s.pool = nil
	s.tracks = nil
	s.used = nil
	s.failed = nil
	s.rounds = nil
	s.roundIdx = 0
	s.score = 0
	s.correct = 0
}

// Summary snapshots the final result. Valid once the session is Complete.
func (s *Session) Summary() Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Summary{
		TotalPoints:  s.score,
		CorrectCount: s.correct,
		Win:          s.correct >= WinThreshold,
	}
}

// advanceLocked commits the current round and moves on. Caller holds the lock.
func (s *Session) advanceLocked() {
	s.roundIdx++
	s.seq++
	if s.roundIdx >= RoundsPerGame {
		s.state = StateComplete
		s.reporter.Complete(Summary{
			TotalPoints:  s.score,
			CorrectCount: s.correct,
			Win:          s.correct >= WinThreshold,
		})
		return
	}
	s.state = StateLoading
}

// pickSubstitute selects a random pool entry that has never been locked in,
// never failed resolution, and is not queued for a later round.
func (s *Session) pickSubstitute() (models.ChartEntry, bool) {
	upcoming := make(map[string]bool)
	for _, t := range s.tracks[s.roundIdx+1:] {
		upcoming[t.Key()] = true
	}

	var candidates []models.ChartEntry
	for _, e := range s.pool {
		key := e.Key()
		if s.used[key] || s.failed[key] || upcoming[key] {
			continue
		}
		candidates = append(candidates, e)
	}
	if len(candidates) == 0 {
		return models.ChartEntry{}, false
	}
	return candidates[s.rng.Intn(len(candidates))], true
}

// startTimer begins the round countdown. At most one timer is ever active;
// any leftover timer is stopped first.
func (s *Session) startTimer(roundIndex int) {
	s.stopTimer()
	s.timer = time.AfterFunc(RoundDuration, func() {
		s.timeout(roundIndex)
	})
}

func (s *Session) stopTimer() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// timeout fires when the countdown reaches zero: the round is decided with
// no selection and zero points. A timer for a round that already moved on
// is ignored.
func (s *Session) timeout(roundIndex int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateAwaitingAnswer || s.roundIdx != roundIndex {
		return
	}
	s.timer = nil

	round := s.rounds[len(s.rounds)-1]
	round.Outcome = &Outcome{
		TimedOut: true,
		Elapsed:  RoundDuration,
	}
	s.state = StateAnswered

	s.reporter.RecordRound(s.recordFor(round))
}

func (s *Session) recordFor(round *Round) RoundRecord {
	keys := make([]string, len(round.Options))
	for i, o := range round.Options {
		keys[i] = o.Key()
	}
	o := round.Outcome
	return RoundRecord{
		Index:        round.Index,
		CorrectKey:   round.Track.Key(),
		CorrectLabel: round.Track.Label(),
		OptionKeys:   keys,
		ChosenKey:    o.ChosenKey,
		IsCorrect:    o.IsCorrect,
		TimedOut:     o.TimedOut,
		Skipped:      o.Skipped,
		ElapsedMs:    o.Elapsed.Milliseconds(),
		Points:       o.Points,
	}
}
