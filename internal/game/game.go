package game

import "fmt"

// Side identifies who played a move in a round.
type Side string

const (
	SideUser Side = "user"
	SideBot  Side = "bot"
)

var sides = []Side{SideUser, SideBot}

func (s Side) Valid() bool {
	return s == SideUser || s == SideBot
}

// ParseSide folds raw side text the way move input is folded. The result is
// not checked; ValidateMove reports an unknown side as a verdict.
func ParseSide(v string) Side {
	return Side(NormalizeMoveInput(v))
}

// Outcome is the result of a single round from the referee's point of view.
type Outcome string

const (
	OutcomeUserWins Outcome = "user-wins"
	OutcomeBotWins  Outcome = "bot-wins"
	OutcomeTie      Outcome = "tie"
)

func (o Outcome) Valid() bool {
	switch o {
	case OutcomeUserWins, OutcomeBotWins, OutcomeTie:
		return true
	}
	return false
}

func ParseOutcome(v string) (Outcome, error) {
	o := Outcome(v)
	if !o.Valid() {
		return "", fmt.Errorf("%w: unknown outcome %q", ErrInvalidTransition, v)
	}
	return o, nil
}

// Winner returns the side credited by the outcome; ok is false on a tie.
func (o Outcome) Winner() (Side, bool) {
	switch o {
	case OutcomeUserWins:
		return SideUser, true
	case OutcomeBotWins:
		return SideBot, true
	}
	return "", false
}

// FinalResult summarises a finished game.
type FinalResult string

const (
	FinalUserWins FinalResult = "user-wins"
	FinalBotWins  FinalResult = "bot-wins"
	FinalDraw     FinalResult = "draw"
)
