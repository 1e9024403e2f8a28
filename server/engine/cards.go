package engine

import (
	"sort"
	"strings"
)

// Card is a card token as the game server writes it, e.g. "4H" or "KS".
// Only the leading rank character carries meaning for grouping.
type Card string

func (c Card) Rank() byte {
	if len(c) == 0 {
		return 0
	}
	return c[0]
}

func (c Card) SameRank(o Card) bool { return c.Rank() != 0 && c.Rank() == o.Rank() }

func (c Card) String() string { return string(c) }

// ParseCards splits a space separated hand. Empty fields are dropped.
func ParseCards(s string) []Card {
	fields := strings.Fields(s)
	out := make([]Card, 0, len(fields))
	for _, f := range fields {
		out = append(out, Card(f))
	}
	return out
}

func SortCards(cs []Card) {
	sort.Slice(cs, func(i, j int) bool { return cs[i] < cs[j] })
}

func CardsString(cs []Card) string {
	parts := make([]string, len(cs))
	for i, c := range cs {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}
