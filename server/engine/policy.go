package engine

import (
	"math/rand"
	"time"
)

// Rand is the slice of *math/rand.Rand the draw policy needs. Tests pass a
// seeded source or a stub.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// DrawPolicy is epsilon-greedy over the two draw actions. A zero value, or
// one with a nil Rand, never explores; use NewDrawPolicy to get a source.
type DrawPolicy struct {
	Epsilon float64
	Rand    Rand
}

// NewDrawPolicy returns a policy exploring with probability epsilon. A nil r
// is replaced by a time-seeded *rand.Rand.
func NewDrawPolicy(epsilon float64, r Rand) DrawPolicy {
	if r == nil {
		r = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return DrawPolicy{Epsilon: epsilon, Rand: r}
}

// Suggest is the rule of thumb: take the discard when its rank is already
// in hand, otherwise draw blind.
func Suggest(t *Table) string {
	top, ok := t.Top()
	if ok && t.HasRank(top.Rank()) {
		return DrawDiscard
	}
	return DrawStock
}

// Decide picks the draw action. An empty pile leaves only the stock. With
// probability Epsilon a random action is explored; otherwise the suggestion
// stands unless the other action has a strictly better learned ratio.
func (p DrawPolicy) Decide(t *Table, ratio func(action string) float64) string {
	if len(t.Discard) == 0 {
		return DrawStock
	}
	if p.Epsilon > 0 && p.Rand != nil && p.Rand.Float64() < p.Epsilon {
		if p.Rand.Intn(2) == 0 {
			return DrawStock
		}
		return DrawDiscard
	}
	pick := Suggest(t)
	other := DrawStock
	if pick == DrawStock {
		other = DrawDiscard
	}
	if ratio(other) > ratio(pick) {
		return other
	}
	return pick
}
