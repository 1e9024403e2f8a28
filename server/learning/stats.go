package learning

// smoothing keeps Ratio defined for counters that have never been scored.
const smoothing = 1e-5

type Counter struct {
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
}

func (c Counter) Total() int { return c.Wins + c.Losses }

// Ratio is the smoothed win rate wins/(wins+losses+1e-5).
func (c Counter) Ratio() float64 {
	return float64(c.Wins) / (float64(c.Total()) + smoothing)
}

func (c *Counter) add(reward int) {
	if reward > 0 {
		c.Wins++
	} else if reward < 0 {
		c.Losses++
	}
}

// Stats is the persisted learning snapshot. Draw is keyed by draw action
// name, Discard by the discarded card token.
type Stats struct {
	Draw          map[string]Counter `json:"draw"`
	Discard       map[string]Counter `json:"discard"`
	OpponentTakes map[string]int     `json:"opponent_takes"`
}

func NewStats() Stats {
	return Stats{
		Draw:          map[string]Counter{},
		Discard:       map[string]Counter{},
		OpponentTakes: map[string]int{},
	}
}

// normalize fills maps a partial or older payload left nil.
func (s *Stats) normalize() {
	if s.Draw == nil {
		s.Draw = map[string]Counter{}
	}
	if s.Discard == nil {
		s.Discard = map[string]Counter{}
	}
	if s.OpponentTakes == nil {
		s.OpponentTakes = map[string]int{}
	}
}

func (s Stats) Clone() Stats {
	out := NewStats()
	for k, v := range s.Draw {
		out.Draw[k] = v
	}
	for k, v := range s.Discard {
		out.Discard[k] = v
	}
	for k, v := range s.OpponentTakes {
		out.OpponentTakes[k] = v
	}
	return out
}

func bump(m map[string]Counter, key string, reward int) {
	c := m[key]
	c.add(reward)
	m[key] = c
}
