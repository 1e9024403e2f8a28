package engine

import "errors"

var ErrEmptyHand = errors.New("engine: empty hand")

// Table is the bot's view of the current hand: its private cards, kept in
// token order, and the public discard pile with the newest card at index 0.
type Table struct {
	Hand    []Card
	Discard []Card
}

// Deal replaces the hand and clears the discard pile for a new hand.
func (t *Table) Deal(cards []Card) {
	t.Hand = append(make([]Card, 0, len(cards)), cards...)
	SortCards(t.Hand)
	t.Discard = nil
}

func (t *Table) Add(c Card) {
	t.Hand = append(t.Hand, c)
	SortCards(t.Hand)
}

// RemoveAt takes the card at i out of the hand and returns it.
func (t *Table) RemoveAt(i int) Card {
	c := t.Hand[i]
	t.Hand = append(t.Hand[:i], t.Hand[i+1:]...)
	return c
}

func (t *Table) Push(c Card) {
	t.Discard = append([]Card{c}, t.Discard...)
}

// Pop removes the top of the discard pile. An empty pile is left alone.
func (t *Table) Pop() (Card, bool) {
	if len(t.Discard) == 0 {
		return "", false
	}
	c := t.Discard[0]
	t.Discard = t.Discard[1:]
	return c, true
}

func (t *Table) Top() (Card, bool) {
	if len(t.Discard) == 0 {
		return "", false
	}
	return t.Discard[0], true
}

func (t *Table) HasRank(r byte) bool {
	for _, c := range t.Hand {
		if c.Rank() == r {
			return true
		}
	}
	return false
}

// Apply folds one event into the table. Draws and takes by self add to the
// hand; any take pops the pile; any discard pushes onto it.
func (t *Table) Apply(self string, ev Event) {
	switch ev.Kind {
	case EventDraw:
		if ev.Player == self {
			t.Add(ev.Card)
		}
	case EventTake:
		if ev.Player == self {
			t.Add(ev.Card)
		}
		t.Pop()
	case EventDiscard:
		t.Push(ev.Card)
	case EventOutcome, EventUnknown:
	}
}
