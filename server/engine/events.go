package engine

import "strings"

const endMarker = "Ends:"

var verbs = map[string]EventKind{
	"draws":    EventDraw,
	"takes":    EventTake,
	"discards": EventDiscard,
}

// ClassifyLine tags a single event line. A move line reads
// "<player> <verb> ... <card>"; the player may span several words and the
// card is always the trailing token. Anything else carrying the end marker or
// an outcome keyword is an outcome line. A move line that also carries the end
// marker, or an outcome keyword between verb and card, keeps its move kind and
// is flagged with Outcome so the result is still scored; words up to the
// marker are not part of the player name.
func ClassifyLine(line string) Event {
	line = strings.TrimSpace(line)
	ev := Event{Kind: EventUnknown, Text: line}
	ended := strings.Contains(line, endMarker)
	fields := strings.Fields(line)
	for i := 1; i < len(fields)-1; i++ {
		kind, ok := verbs[fields[i]]
		if !ok {
			continue
		}
		start := 0
		for j := 0; j < i; j++ {
			if strings.Contains(fields[j], endMarker) {
				start = j + 1
			}
		}
		ev.Kind = kind
		ev.Player = strings.Join(fields[start:i], " ")
		ev.Card = Card(fields[len(fields)-1])
		ev.Outcome = ended || OutcomeSign(strings.Join(fields[i+1:len(fields)-1], " ")) != 0
		return ev
	}
	if ended || OutcomeSign(line) != 0 {
		ev.Kind = EventOutcome
		ev.Outcome = true
	}
	return ev
}

// ParseEvents classifies every non-blank line of an event block, in order.
func ParseEvents(text string) []Event {
	var out []Event
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		out = append(out, ClassifyLine(line))
	}
	return out
}

// OutcomeSign returns +1 for a win, -1 for a loss and 0 when the text carries
// no outcome. Keywords match case-insensitively at the start of a word, so
// "wins", "Winner" and "loses" count while "closed" does not.
func OutcomeSign(text string) int {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return r < 'a' || r > 'z'
	})
	loss := false
	for _, w := range words {
		if strings.HasPrefix(w, "win") {
			return 1
		}
		if strings.HasPrefix(w, "loss") || strings.HasPrefix(w, "lose") {
			loss = true
		}
	}
	if loss {
		return -1
	}
	return 0
}

// AttributeOutcome scores text from self's point of view. Each outcome keyword
// belongs to the nearest name in the text, preferring the name before it on a
// tie: a keyword next to opponent flips sign, one next to self keeps it. Text
// naming neither player falls back to OutcomeSign. Keywords whose attributed
// signs cancel out leave the outcome undecided (0).
func AttributeOutcome(text, self, opponent string) int {
	words := outcomeWords(text)
	mentions := append(findName(words, self, 1), findName(words, opponent, -1)...)
	if len(mentions) == 0 {
		return OutcomeSign(text)
	}
	total := 0
	for i, w := range words {
		sign := keywordSign(w)
		if sign == 0 || insideMention(mentions, i) {
			continue
		}
		total += sign * nearestOwner(mentions, i)
	}
	switch {
	case total > 0:
		return 1
	case total < 0:
		return -1
	}
	return 0
}

// mention is a span of words naming a player; owner is +1 for self, -1 for
// the opponent.
type mention struct {
	start, end int
	owner      int
}

func outcomeWords(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return (r < 'a' || r > 'z') && (r < '0' || r > '9')
	})
}

func keywordSign(w string) int {
	switch {
	case strings.HasPrefix(w, "win"):
		return 1
	case strings.HasPrefix(w, "loss"), strings.HasPrefix(w, "lose"):
		return -1
	}
	return 0
}

func findName(words []string, name string, owner int) []mention {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	needle := outcomeWords(name)
	if len(needle) == 0 {
		return nil
	}
	var out []mention
	for i := 0; i+len(needle) <= len(words); i++ {
		match := true
		for j, w := range needle {
			if words[i+j] != w {
				match = false
				break
			}
		}
		if match {
			out = append(out, mention{start: i, end: i + len(needle) - 1, owner: owner})
		}
	}
	return out
}

func insideMention(ms []mention, i int) bool {
	for _, m := range ms {
		if i >= m.start && i <= m.end {
			return true
		}
	}
	return false
}

func nearestOwner(ms []mention, i int) int {
	best, owner := -1, 0
	for _, m := range ms {
		d := 2 * (m.start - i) // names after the keyword lose ties
		if m.end < i {
			d = 2*(i-m.end) - 1
		}
		if best < 0 || d < best {
			best, owner = d, m.owner
		}
	}
	return owner
}
