package tower

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tower/internal/config"
)

// Phase is the session lifecycle state.
type Phase int

const (
	PhaseIdle    Phase = iota // Waiting for start
	PhaseRunning              // Simulation advancing
	PhaseEnded                // Body fell out; FinalScore is fixed
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseRunning:
		return "running"
	case PhaseEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// TickResult describes what happened during one tick.
type TickResult struct {
	Snapshot   Snapshot
	Scrolled   float64 // Scroll applied this tick
	Landed     bool    // Body ended the tick on a platform
	Ended      bool    // Session transitioned to PhaseEnded this tick
	NewBest    bool    // The final score raised the best score
	PersistErr error   // Best score could not be written; the session is unaffected
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger used for store failures and lifecycle events.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// Session runs one player's climb: the Idle -> Running -> Ended state
// machine, score derivation and best-score persistence. It is driven by an
// external frame clock and is not safe for concurrent use.
type Session struct {
	cfg     config.TowerConfig
	seed    int64
	store   BestScoreStore
	persist bool // False when the store is missing or failed on read
	logger  *log.Logger

	phase      Phase
	world      *World
	ticks      uint64
	score      int
	finalScore int
	best       int
}

// NewSession validates cfg and reads the best score once from store.
// A nil or failing store yields a best score of 0 and disables persistence
// for this session; it never fails construction.
func NewSession(cfg config.TowerConfig, seed int64, store BestScoreStore, opts ...Option) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("tower: %w", err)
	}

	s := &Session{
		cfg:    cfg,
		seed:   seed,
		store:  store,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.loadBest()
	s.reset()
	return s, nil
}

func (s *Session) loadBest() {
	if s.store == nil {
		return
	}

	key := s.cfg.Scoring.BestScoreKey
	best, ok, err := s.store.BestScore(key)
	if err != nil {
		s.logger.Warn("best score store unavailable, playing without it", "key", key, "error", err)
		return
	}

	s.persist = true
	if ok && best > 0 {
		s.best = best
	}
}

// reset rebuilds the world and clears per-run state.
func (s *Session) reset() {
	s.world = NewWorld(s.cfg, s.seed)
	s.ticks = 0
	s.score = 0
	s.finalScore = 0
}

// Start (re)initializes the world from the session seed and enters
// PhaseRunning. Valid from any phase; calling it twice in a row yields the
// same fresh state.
func (s *Session) Start() {
	s.reset()
	s.phase = PhaseRunning
	s.logger.Debug("session started", "seed", s.seed)
}

// StartWithSeed replaces the session seed and starts.
func (s *Session) StartWithSeed(seed int64) {
	s.seed = seed
	s.Start()
}

// Tick advances the simulation by elapsed wall-clock time with the given
// held intents. Outside PhaseRunning it only returns a snapshot.
func (s *Session) Tick(elapsed time.Duration, in Intents) TickResult {
	if s.phase != PhaseRunning {
		return TickResult{Snapshot: s.snapshot()}
	}

	var res TickResult
	s.ticks++

	dt := frameFactor(elapsed, s.cfg.Physics)
	res.Landed = s.world.step(dt, in)

	if d := s.world.scroll(); d > 0 {
		res.Scrolled = d
		s.score = scoreFor(s.world.camera.Scrolled(), s.cfg.Scoring.PixelsPerPoint)
	}

	if s.world.fellOut() {
		s.end(&res)
	}

	res.Snapshot = s.snapshot()
	return res
}

// end fixes the final score and flushes the best score if it increased.
func (s *Session) end(res *TickResult) {
	s.phase = PhaseEnded
	s.finalScore = s.score
	res.Ended = true

	s.logger.Debug("session ended", "score", s.finalScore, "best", s.best, "ticks", s.ticks)

	if s.finalScore <= s.best {
		return
	}

	s.best = s.finalScore
	res.NewBest = true

	if !s.persist {
		return
	}
	if err := s.store.SetBestScore(s.cfg.Scoring.BestScoreKey, s.best); err != nil {
		s.logger.Warn("could not save best score", "key", s.cfg.Scoring.BestScoreKey, "score", s.best, "error", err)
		res.PersistErr = err
	}
}

// scoreFor derives the score from the cumulative scroll distance.
func scoreFor(scrolled, pixelsPerPoint float64) int {
	return int(math.Floor(scrolled / pixelsPerPoint))
}

// Phase returns the current lifecycle phase.
func (s *Session) Phase() Phase {
	return s.phase
}

// Score returns the current score.
func (s *Session) Score() int {
	return s.score
}

// FinalScore returns the score fixed when the session ended.
func (s *Session) FinalScore() int {
	return s.finalScore
}

// BestScore returns the best score known to this session.
func (s *Session) BestScore() int {
	return s.best
}

// Body returns a copy of the body.
func (s *Session) Body() Body {
	return s.world.body
}

// Scrolled returns the cumulative scroll distance.
func (s *Session) Scrolled() float64 {
	return s.world.camera.Scrolled()
}

// Snapshot returns the current state without advancing it.
func (s *Session) Snapshot() Snapshot {
	return s.snapshot()
}

// Config returns the session configuration.
func (s *Session) Config() config.TowerConfig {
	return s.cfg
}
