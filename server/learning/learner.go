package learning

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"rummy-player/server/engine"
	"rummy-player/server/store"

	"github.com/rs/zerolog"
)

const saveTimeout = 5 * time.Second

// Store owns the learned counters and the moves of the game in progress.
// All access to the backend happens under mu, so Close cannot cut a write short.
type Store struct {
	mu       sync.Mutex
	backend  store.Backend
	key      string
	opponent string
	log      zerolog.Logger

	stats  Stats
	moves  []engine.MoveRecord
	dirty  bool
	closed bool
}

// Open loads the snapshot stored under key. A missing or unreadable record
// starts from empty counters; the condition is logged, never returned.
func Open(ctx context.Context, backend store.Backend, key string, log zerolog.Logger) *Store {
	s := &Store{
		backend: backend,
		key:     key,
		log:     log.With().Str("component", "learning").Logger(),
		stats:   NewStats(),
	}
	raw, err := backend.Load(ctx, key)
	switch {
	case errors.Is(err, store.ErrNotFound):
		s.log.Info().Str("player", key).Msg("no learning stats stored yet, starting empty")
	case err != nil:
		s.log.Error().Err(err).Str("player", key).Msg("load learning stats failed, starting empty")
	default:
		var st Stats
		if err := json.Unmarshal(raw, &st); err != nil {
			s.log.Warn().Err(err).Str("player", key).Msg("stored learning stats are malformed, starting empty")
			break
		}
		st.normalize()
		s.stats = st
	}
	return s
}

// SetOpponent names the current opponent so outcome lines crediting them
// are scored as losses.
func (s *Store) SetOpponent(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.opponent = strings.TrimSpace(name)
}

func (s *Store) Record(m engine.MoveRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.moves = append(s.moves, m)
}

// Forget drops the move log without scoring it.
func (s *Store) Forget() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.moves = nil
}

func (s *Store) Pending() []engine.MoveRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]engine.MoveRecord(nil), s.moves...)
}

func (s *Store) DrawRatio(action string) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats.Draw[action].Ratio()
}

func (s *Store) DiscardRatio(c engine.Card) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats.Discard[string(c)].Ratio()
}

func (s *Store) Snapshot() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats.Clone()
}

// TrackOpponentTake counts a card the opponent picked up from the pile.
func (s *Store) TrackOpponentTake(c engine.Card) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stats.OpponentTakes[string(c)]++
	s.dirty = true
}

// reward scores an outcome line from the tracked player's point of view.
func (s *Store) reward(text string) int {
	return engine.AttributeOutcome(text, s.key, s.opponent)
}

// RecordOutcome scores every pending move against the outcome found in text
// and persists the result. Text without an outcome is a no-op. It returns
// the applied reward.
func (s *Store) RecordOutcome(ctx context.Context, text string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := s.reward(text)
	if r == 0 {
		return 0, nil
	}
	for _, m := range s.moves {
		switch m.Phase {
		case engine.PhaseDraw:
			bump(s.stats.Draw, m.Action, r)
		case engine.PhaseDiscard:
			bump(s.stats.Discard, m.Action, r)
		}
	}
	scored := len(s.moves)
	s.moves = nil
	s.dirty = true
	s.log.Info().Int("reward", r).Int("moves", scored).Msg("outcome recorded")
	return r, s.saveLocked(ctx)
}

// Reset wipes every counter. Only the operator endpoint calls it.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stats = NewStats()
	s.moves = nil
	s.dirty = true
	s.log.Warn().Str("player", s.key).Msg("learning stats reset")
	return s.saveLocked(ctx)
}

// Flush writes the snapshot if an earlier save failed or opponent tracking
// changed it since.
func (s *Store) Flush(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.dirty {
		return nil
	}
	return s.saveLocked(ctx)
}

// Close flushes and releases the backend. Later calls are no-ops.
func (s *Store) Close(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	var err error
	if s.dirty {
		err = s.saveLocked(ctx)
	}
	s.closed = true
	return errors.Join(err, s.backend.Close())
}

// saveLocked writes the full snapshot, so a failed save is retried whole by
// the next one. Caller holds mu.
func (s *Store) saveLocked(ctx context.Context) error {
	if s.closed {
		return errors.New("learning: store closed")
	}
	raw, err := json.Marshal(s.stats)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), saveTimeout)
	defer cancel()
	if err := s.backend.Save(ctx, s.key, raw); err != nil {
		s.log.Error().Err(err).Str("player", s.key).Msg("save learning stats failed, will retry")
		return err
	}
	s.dirty = false
	return nil
}
