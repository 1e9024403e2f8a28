package agent

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"rummy-player/server/engine"
	"rummy-player/server/learning"

	"github.com/rs/zerolog"
)

// Session is the bot's state for the game in progress. The game server waits
// for each answer before sending the next request; mu keeps that true even
// if it does not.
type Session struct {
	mu      sync.Mutex
	self    string
	policy  engine.DrawPolicy
	learner *learning.Store
	log     zerolog.Logger

	table     engine.Table
	gameID    string
	opponent  string
	protected engine.Card // taken from the pile this turn, may not be discarded
}

func NewSession(self string, policy engine.DrawPolicy, learner *learning.Store, log zerolog.Logger) *Session {
	return &Session{
		self:    self,
		policy:  policy,
		learner: learner,
		log:     log.With().Str("component", "session").Logger(),
	}
}

func (s *Session) StartGame(ctx context.Context, g GameInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gameID = g.GameID
	s.opponent = strings.TrimSpace(g.Opponent)
	s.protected = ""
	s.table.Deal(engine.ParseCards(g.Hand))
	s.learner.SetOpponent(s.opponent)
	s.learner.Forget()
	s.log.Info().Str("game_id", g.GameID).Str("opponent", s.opponent).
		Str("hand", engine.CardsString(s.table.Hand)).Msg("2p game started")
}

func (s *Session) StartHand(ctx context.Context, h HandInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.protected = ""
	s.table.Deal(engine.ParseCards(h.Hand))
	s.log.Info().Str("hand", engine.CardsString(s.table.Hand)).Msg("2p hand started")
}

func (s *Session) Update(ctx context.Context, u UpdateInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.applyEvents(ctx, u.Event)
}

// OnDrawPhase folds in the events and answers "draw stock" or "draw discard".
func (s *Session) OnDrawPhase(ctx context.Context, u UpdateInfo) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.applyEvents(ctx, u.Event)

	play := s.policy.Decide(&s.table, s.learner.DrawRatio)
	s.protected = ""
	if play == engine.DrawDiscard {
		s.protected, _ = s.table.Top()
	}
	s.learner.Record(engine.MoveRecord{Phase: engine.PhaseDraw, Action: play})
	s.log.Info().Str("play", play).Str("cannot_discard", string(s.protected)).Msg("draw decided")
	return play
}

// OnLayDownPhase picks and removes one discard, then lays every remaining
// card out as same-rank meld groups: "meld 2D 2H 2S discard 7C".
func (s *Session) OnLayDownPhase(ctx context.Context, u UpdateInfo) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.applyEvents(ctx, u.Event)

	hand := s.table.Hand
	if len(hand) == 0 {
		return "", fmt.Errorf("lay down: %w", engine.ErrEmptyHand)
	}
	profile := engine.Profile(hand)
	var (
		idx int
		err error
	)
	if engine.Score(profile) > 1 && profile[0] == 0 {
		idx, err = engine.SelectPairDiscard(hand, s.protected, s.learner.DiscardRatio)
	} else {
		idx, err = engine.SelectSingleDiscard(hand, s.protected)
	}
	if err != nil {
		return "", fmt.Errorf("lay down: %w", err)
	}
	discard := s.table.RemoveAt(idx)
	s.protected = ""

	var b strings.Builder
	for _, g := range engine.MeldLayout(s.table.Hand) {
		b.WriteString("meld ")
		b.WriteString(engine.CardsString(g))
		b.WriteByte(' ')
	}
	b.WriteString("discard ")
	b.WriteString(discard.String())

	s.learner.Record(engine.MoveRecord{Phase: engine.PhaseDiscard, Action: discard.String()})
	s.log.Info().Ints("profile", profile[:]).Str("discard", discard.String()).Msg("lay down decided")
	return b.String(), nil
}

func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return View{
		Player:    s.self,
		GameID:    s.gameID,
		Opponent:  s.opponent,
		Hand:      cardsToStr(s.table.Hand),
		Discard:   cardsToStr(s.table.Discard),
		Protected: string(s.protected),
		Pending:   s.learner.Pending(),
		Stats:     s.learner.Snapshot(),
	}
}

// applyEvents runs under mu. Outcome lines go to the learner as they are met,
// so moves made after an outcome in the same block wait for the next one.
func (s *Session) applyEvents(ctx context.Context, text string) {
	opponentTook := false
	for _, ev := range engine.ParseEvents(text) {
		s.table.Apply(s.self, ev)
		switch ev.Kind {
		case engine.EventTake:
			if ev.Player != s.self {
				s.learner.TrackOpponentTake(ev.Card)
				opponentTook = true
			}
		case engine.EventUnknown:
			s.log.Debug().Str("event", ev.Text).Msg("ignored event line")
		}
		if ev.Outcome {
			s.log.Info().Str("event", ev.Text).Msg("hand ended")
			if _, err := s.learner.RecordOutcome(ctx, ev.Text); err != nil {
				s.log.Error().Err(err).Msg("outcome not persisted yet")
			}
		}
	}
	if opponentTook {
		if err := s.learner.Flush(ctx); err != nil {
			s.log.Error().Err(err).Msg("flush opponent tracking failed")
		}
	}
}
