package agent

import (
	"fmt"
	"strings"

	"rummy-player/server/engine"
	"rummy-player/server/learning"
)

type GameInfo struct {
	GameID   string `json:"game_id"`
	Opponent string `json:"opponent"`
	Hand     string `json:"hand"` // space separated, e.g. "4H 4S 9C"
}

type HandInfo struct {
	Hand string `json:"hand"`
}

type UpdateInfo struct {
	GameID string `json:"game_id"`
	Event  string `json:"event"` // newline separated event lines
}

type PlayOut struct {
	Play string `json:"play"`
}

type StatusOut struct {
	Status string `json:"status"`
}

// View is the operator snapshot served by /stats.
type View struct {
	Player    string              `json:"player"`
	GameID    string              `json:"game_id"`
	Opponent  string              `json:"opponent"`
	Hand      []string            `json:"hand"`
	Discard   []string            `json:"discard"`
	Protected string              `json:"cannot_discard,omitempty"`
	Pending   []engine.MoveRecord `json:"pending_moves"`
	Stats     learning.Stats      `json:"stats"`
}

func (g GameInfo) Validate() error {
	if strings.TrimSpace(g.Hand) == "" {
		return fmt.Errorf("hand is required")
	}
	return nil
}

func (h HandInfo) Validate() error {
	if strings.TrimSpace(h.Hand) == "" {
		return fmt.Errorf("hand is required")
	}
	return nil
}

func cardsToStr(cs []engine.Card) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.String()
	}
	return out
}
