package game

import (
	"errors"
	"testing"
)

func TestBombScenario(t *testing.T) {
	c := mustCatalog(t, RulesetClassic)
	s := mustState(t, DefaultRules())

	out := Resolve(c, Bomb, Rock)
	if out != OutcomeUserWins {
		t.Fatalf("bomb vs rock = %s", out)
	}
	s, err := Transition(c, s, Bomb, Rock, out)
	if err != nil {
		t.Fatalf("transition: %v", err)
	}
	if s.RoundNumber() != 2 || s.Score(SideUser) != 1 || s.Score(SideBot) != 0 || s.Used(SideUser, Bomb) != 1 {
		t.Fatalf("after round 1: round=%d user=%d bot=%d bomb=%d",
			s.RoundNumber(), s.Score(SideUser), s.Score(SideBot), s.Used(SideUser, Bomb))
	}

	v := ValidateMove(c, "bomb", SideUser, s)
	if v.Legal || v.Reason != ReasonLimitExhausted {
		t.Fatalf("second bomb = %+v; want limit-exhausted", v)
	}
}

func TestTieScenario(t *testing.T) {
	c := mustCatalog(t, RulesetClassic)
	s := mustState(t, DefaultRules())

	s = play(t, c, s, Rock, Rock)
	if s.Score(SideUser) != 0 || s.Score(SideBot) != 0 || s.Ties() != 1 {
		t.Fatalf("tie changed scores: user=%d bot=%d ties=%d", s.Score(SideUser), s.Score(SideBot), s.Ties())
	}
	if s.RoundNumber() != 2 {
		t.Fatalf("round = %d; want 2", s.RoundNumber())
	}
	if s.Used(SideUser, Rock) != 1 || s.Used(SideBot, Rock) != 1 {
		t.Fatalf("rock usage = %d/%d; want 1/1", s.Used(SideUser, Rock), s.Used(SideBot, Rock))
	}
}

func TestGameEndsAtRoundLimit(t *testing.T) {
	c := mustCatalog(t, RulesetClassic)
	s := mustState(t, Rules{RoundLimit: 3})

	moves := [][2]Move{{Rock, Paper}, {Paper, Paper}, {Scissors, Paper}}
	for i, mv := range moves {
		if s.GameOver() {
			t.Fatalf("game over before round %d", i+1)
		}
		s = play(t, c, s, mv[0], mv[1])
	}
	if !s.GameOver() {
		t.Fatalf("game should be over after 3 rounds")
	}
	if res, ok := s.Result(); !ok || res != FinalDraw {
		t.Fatalf("result = %s,%v; want draw", res, ok)
	}
	if v := ValidateMove(c, "rock", SideUser, s); v.Reason != ReasonGameAlreadyOver {
		t.Fatalf("verdict = %+v", v)
	}
	if _, err := Transition(c, s, Rock, Rock, OutcomeTie); !errors.Is(err, ErrGameAlreadyOver) {
		t.Fatalf("transition after game over: %v", err)
	}
}

func TestGameEndsAtScoreLimit(t *testing.T) {
	c := mustCatalog(t, RulesetClassic)
	s := mustState(t, Rules{ScoreLimit: 2})

	s = play(t, c, s, Paper, Rock)
	s = play(t, c, s, Rock, Rock)
	if s.GameOver() {
		t.Fatalf("game over too early")
	}
	s = play(t, c, s, Scissors, Paper)
	if !s.GameOver() {
		t.Fatalf("game should end when user reaches 2 wins")
	}
	if res, _ := s.Result(); res != FinalUserWins {
		t.Fatalf("result = %s", res)
	}
}

func TestTransitionFailureLeavesStateUntouched(t *testing.T) {
	c := mustCatalog(t, RulesetClassic)
	s := mustState(t, Rules{RoundLimit: 5})
	s = play(t, c, s, Bomb, Paper)

	cases := []struct {
		name      string
		user, bot Move
		outcome   Outcome
		want      error
	}{
		{"wrong outcome", Rock, Scissors, OutcomeBotWins, ErrInvalidTransition},
		{"bogus outcome", Rock, Scissors, Outcome("user"), ErrInvalidTransition},
		{"second bomb", Bomb, Rock, OutcomeUserWins, ErrLimitExhausted},
		{"move outside catalog", Lizard, Rock, OutcomeTie, ErrUnknownMove},
	}
	for _, tc := range cases {
		next, err := Transition(c, s, tc.user, tc.bot, tc.outcome)
		if !errors.Is(err, tc.want) || next != nil {
			t.Fatalf("%s: next=%v err=%v; want %v", tc.name, next, err, tc.want)
		}
		if s.RoundNumber() != 2 || s.Score(SideUser) != 1 || s.Used(SideUser, Bomb) != 1 ||
			s.Used(SideUser, Rock) != 0 || s.Used(SideBot, Rock) != 0 {
			t.Fatalf("%s: state mutated on failure", tc.name)
		}
	}
}

func TestTransitionInvariants(t *testing.T) {
	c := mustCatalog(t, RulesetExtended)
	sel, err := NewSelector(PolicyUniform, 7)
	if err != nil {
		t.Fatalf("selector: %v", err)
	}

	s := mustState(t, Rules{RoundLimit: 40})
	for !s.GameOver() {
		before := s.RoundNumber()
		legal := LegalMoves(c, s, SideUser)
		user := legal[(before*7)%len(legal)]
		bot, err := sel.SelectMove(c, s)
		if err != nil {
			t.Fatalf("bot pick: %v", err)
		}
		s = play(t, c, s, user, bot)

		if s.RoundNumber() != before+1 {
			t.Fatalf("round went %d -> %d", before, s.RoundNumber())
		}
		if s.Score(SideUser)+s.Score(SideBot)+s.Ties() != s.RoundsPlayed() {
			t.Fatalf("scores+ties != rounds played at round %d", s.RoundNumber())
		}
		for _, side := range []Side{SideUser, SideBot} {
			for _, m := range c.LimitedMoves() {
				limit, _ := c.LimitOf(m)
				if s.Used(side, m) > limit {
					t.Fatalf("%s used %s %d times (limit %d)", side, m, s.Used(side, m), limit)
				}
			}
		}
	}
	if s.RoundsPlayed() != 40 {
		t.Fatalf("rounds played = %d", s.RoundsPlayed())
	}
}

func TestRulesValidate(t *testing.T) {
	if err := (Rules{}).Validate(); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("empty rules err = %v", err)
	}
	if err := (Rules{RoundLimit: -1, ScoreLimit: 2}).Validate(); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("negative rules err = %v", err)
	}
	if _, err := NewState(Rules{}); err == nil {
		t.Fatalf("NewState accepted rules without an end condition")
	}
}
