package game

import "fmt"

// Rules holds the game-ending conditions. A zero limit disables that check.
type Rules struct {
	RoundLimit int `json:"round_limit"`
	ScoreLimit int `json:"score_limit"`
}

// DefaultRules is best of three rounds.
func DefaultRules() Rules {
	return Rules{RoundLimit: 3}
}

func (r Rules) Validate() error {
	if r.RoundLimit < 0 || r.ScoreLimit < 0 {
		return fmt.Errorf("%w: limits must not be negative (round=%d score=%d)", ErrInvalidConfig, r.RoundLimit, r.ScoreLimit)
	}
	if r.RoundLimit == 0 && r.ScoreLimit == 0 {
		return fmt.Errorf("%w: either a round limit or a score limit is required", ErrInvalidConfig)
	}
	return nil
}

// reached reports whether a game with these totals is finished.
func (r Rules) reached(roundsPlayed, userScore, botScore int) bool {
	if r.RoundLimit > 0 && roundsPlayed >= r.RoundLimit {
		return true
	}
	if r.ScoreLimit > 0 && (userScore >= r.ScoreLimit || botScore >= r.ScoreLimit) {
		return true
	}
	return false
}

// State is the single record of an in-progress game. Its fields are only
// written by NewState and Transition; everything else reads through the
// accessors.
type State struct {
	rules  Rules
	round  int
	scores map[Side]int
	ties   int
	usage  map[Side]map[Move]int
	over   bool
}

// NewState returns a game at round 1 with every counter at zero.
func NewState(rules Rules) (*State, error) {
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	s := &State{
		rules:  rules,
		round:  1,
		scores: make(map[Side]int, len(sides)),
		usage:  make(map[Side]map[Move]int, len(sides)),
	}
	for _, side := range sides {
		s.scores[side] = 0
		s.usage[side] = make(map[Move]int)
	}
	return s, nil
}

func (s *State) Rules() Rules {
	return s.rules
}

// RoundNumber is the round currently awaiting moves (1 + committed rounds).
func (s *State) RoundNumber() int {
	return s.round
}

func (s *State) RoundsPlayed() int {
	return s.round - 1
}

func (s *State) Score(side Side) int {
	return s.scores[side]
}

func (s *State) Ties() int {
	return s.ties
}

// Used returns how many times side has played m this game.
func (s *State) Used(side Side, m Move) int {
	return s.usage[side][m]
}

func (s *State) GameOver() bool {
	return s.over
}

// Result is the final standing; ok is false while the game is running.
func (s *State) Result() (FinalResult, bool) {
	if !s.over {
		return "", false
	}
	switch u, b := s.scores[SideUser], s.scores[SideBot]; {
	case u > b:
		return FinalUserWins, true
	case b > u:
		return FinalBotWins, true
	default:
		return FinalDraw, true
	}
}

// Remaining returns how many uses of m side has left; ok is false for
// unlimited moves.
func (s *State) Remaining(c *Catalog, side Side, m Move) (left int, ok bool) {
	limit, limited := c.LimitOf(m)
	if !limited {
		return 0, false
	}
	left = limit - s.usage[side][m]
	if left < 0 {
		left = 0
	}
	return left, true
}

func (s *State) clone() *State {
	cp := &State{
		rules:  s.rules,
		round:  s.round,
		scores: make(map[Side]int, len(s.scores)),
		ties:   s.ties,
		usage:  make(map[Side]map[Move]int, len(s.usage)),
		over:   s.over,
	}
	for side, n := range s.scores {
		cp.scores[side] = n
	}
	for side, counters := range s.usage {
		m := make(map[Move]int, len(counters))
		for mv, n := range counters {
			m[mv] = n
		}
		cp.usage[side] = m
	}
	return cp
}
