package engine

import (
	"errors"
	"testing"
)

func TestProfile(t *testing.T) {
	cases := []struct {
		hand string
		want [4]int
	}{
		{"2H 2S 2D 7C", [4]int{1, 0, 1, 0}},
		{"4H 4S 9C", [4]int{1, 1, 0, 0}},
		{"KC KD KH KS 3C 3D", [4]int{0, 1, 0, 1}},
		{"", [4]int{}},
	}
	for _, tc := range cases {
		hand := ParseCards(tc.hand)
		got := Profile(hand)
		if got != tc.want {
			t.Fatalf("Profile(%q) = %v, want %v", tc.hand, got, tc.want)
		}
		distinct := map[byte]bool{}
		for _, c := range hand {
			distinct[c.Rank()] = true
		}
		if sum := got[0] + got[1] + got[2] + got[3]; sum != len(distinct) {
			t.Fatalf("profile of %q sums to %d, want %d distinct ranks", tc.hand, sum, len(distinct))
		}
	}
}

func TestScore(t *testing.T) {
	if s := Score([4]int{1, 0, 1, 0}); s != 1 {
		t.Fatalf("score = %d, want 1", s)
	}
	if s := Score([4]int{1, 1, 0, 0}); s != 3 {
		t.Fatalf("score = %d, want 3", s)
	}
}

func TestSelectSingleDiscard(t *testing.T) {
	cases := []struct {
		hand      string
		protected Card
		want      Card
	}{
		{"2D 2H 2S 7C", "", "7C"},
		{"3C 5D 5H 9S", "", "9S"},
		{"3C 5D 5H 9S", "9S", "3C"},
		{"5D 5H", "", "5H"},
		{"5D 5H", "5H", "5D"},
		{"QS", "QS", "QS"},
	}
	for _, tc := range cases {
		hand := ParseCards(tc.hand)
		SortCards(hand)
		i, err := SelectSingleDiscard(hand, tc.protected)
		if err != nil {
			t.Fatalf("%q: %v", tc.hand, err)
		}
		if hand[i] != tc.want {
			t.Fatalf("%q protected=%q: picked %s, want %s", tc.hand, tc.protected, hand[i], tc.want)
		}
	}
}

func TestSelectPairDiscard(t *testing.T) {
	ratios := map[Card]float64{"4S": 0.5, "8D": 0.9, "8H": 0.9}
	ratio := func(c Card) float64 { return ratios[c] }
	hand := ParseCards("4H 4S 8D 8H JC JD JS")

	i, err := SelectPairDiscard(hand, "", ratio)
	if err != nil {
		t.Fatal(err)
	}
	if hand[i] != "8D" {
		t.Fatalf("picked %s, want 8D (best ratio, first seen)", hand[i])
	}

	i, _ = SelectPairDiscard(hand, "8D", ratio)
	if hand[i] != "8H" {
		t.Fatalf("picked %s, want 8H when 8D is protected", hand[i])
	}

	zero := func(Card) float64 { return 0 }
	i, _ = SelectPairDiscard(hand, "", zero)
	if hand[i] != "4H" {
		t.Fatalf("picked %s, want first pair card on ties", hand[i])
	}

	noPairs := ParseCards("2C 2D 2H 9S")
	i, _ = SelectPairDiscard(noPairs, "", zero)
	if noPairs[i] != "9S" {
		t.Fatalf("fallback picked %s, want last card", noPairs[i])
	}
}

func TestSelectorsRejectEmptyHand(t *testing.T) {
	if _, err := SelectSingleDiscard(nil, ""); !errors.Is(err, ErrEmptyHand) {
		t.Fatalf("single: expected ErrEmptyHand, got %v", err)
	}
	if _, err := SelectPairDiscard(nil, "", func(Card) float64 { return 0 }); !errors.Is(err, ErrEmptyHand) {
		t.Fatalf("pair: expected ErrEmptyHand, got %v", err)
	}
}

func TestMeldLayout(t *testing.T) {
	groups := MeldLayout(ParseCards("2D 2H 2S 5C 9H 9S"))
	if len(groups) != 3 {
		t.Fatalf("expected 3 groups, got %d", len(groups))
	}
	want := []string{"2D 2H 2S", "5C", "9H 9S"}
	for i, g := range groups {
		if CardsString(g) != want[i] {
			t.Fatalf("group %d = %s, want %s", i, CardsString(g), want[i])
		}
	}
	if MeldLayout(nil) != nil {
		t.Fatalf("empty hand should lay out nothing")
	}
}
