package engine

// Profile counts rank groups by size: p[0] singles, p[1] pairs, p[2] triples,
// p[3] four of a kind. Groups larger than four (multi-deck shoes) land in p[3].
func Profile(hand []Card) [4]int {
	counts := make(map[byte]int, len(hand))
	for _, c := range hand {
		counts[c.Rank()]++
	}
	var p [4]int
	for _, n := range counts {
		if n > 4 {
			n = 4
		}
		p[n-1]++
	}
	return p
}

// Score weighs stray cards: singles once, pairs twice. Above 1 the hand has
// too many unmatched cards and a discard is mandatory before melding.
func Score(p [4]int) int { return p[0] + 2*p[1] }

// SelectSingleDiscard scans a rank-sorted hand from its highest end and
// returns the index of the first card whose rank differs from both
// neighbours. The protected card (just taken from the pile) is skipped.
// Without such a card it falls back to the last unprotected card.
func SelectSingleDiscard(hand []Card, protected Card) (int, error) {
	n := len(hand)
	if n == 0 {
		return 0, ErrEmptyHand
	}
	for i := n - 1; i >= 0; i-- {
		if hand[i] == protected {
			continue
		}
		if i > 0 && hand[i].SameRank(hand[i-1]) {
			continue
		}
		if i < n-1 && hand[i].SameRank(hand[i+1]) {
			continue
		}
		return i, nil
	}
	return lastUnprotected(hand, protected), nil
}

// SelectPairDiscard picks, among cards whose rank appears exactly twice, the
// one with the best learned win ratio. Ties keep the first card seen.
func SelectPairDiscard(hand []Card, protected Card, ratio func(Card) float64) (int, error) {
	if len(hand) == 0 {
		return 0, ErrEmptyHand
	}
	counts := make(map[byte]int, len(hand))
	for _, c := range hand {
		counts[c.Rank()]++
	}
	best, bestRatio := -1, 0.0
	for i, c := range hand {
		if counts[c.Rank()] != 2 || c == protected {
			continue
		}
		r := ratio(c)
		if best < 0 || r > bestRatio {
			best, bestRatio = i, r
		}
	}
	if best < 0 {
		return lastUnprotected(hand, protected), nil
	}
	return best, nil
}

// lastUnprotected assumes a non-empty hand. A hand holding only the
// protected card has to give it up.
func lastUnprotected(hand []Card, protected Card) int {
	for i := len(hand) - 1; i >= 0; i-- {
		if hand[i] != protected {
			return i
		}
	}
	return len(hand) - 1
}

// MeldLayout splits a rank-sorted hand into contiguous same-rank groups.
func MeldLayout(hand []Card) [][]Card {
	var groups [][]Card
	for i := 0; i < len(hand); {
		j := i + 1
		for j < len(hand) && hand[j].SameRank(hand[i]) {
			j++
		}
		groups = append(groups, append([]Card(nil), hand[i:j]...))
		i = j
	}
	return groups
}
