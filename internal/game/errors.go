package game

import "errors"

var (
	ErrUnknownMove       = errors.New("unknown move")
	ErrLimitExhausted    = errors.New("move limit exhausted")
	ErrGameAlreadyOver   = errors.New("game already over")
	ErrInvalidTransition = errors.New("invalid transition")
	ErrNoLegalMove       = errors.New("no legal move available")
	ErrInvalidCatalog    = errors.New("invalid move catalog")
	ErrInvalidConfig     = errors.New("invalid game configuration")
)

// Reason is the machine-readable code attached to verdicts and failures.
type Reason string

const (
	ReasonOK                Reason = "ok"
	ReasonUnknownMove       Reason = "unknown-move"
	ReasonLimitExhausted    Reason = "limit-exhausted"
	ReasonGameAlreadyOver   Reason = "game-already-over"
	ReasonInvalidTransition Reason = "invalid-transition"
	ReasonInvalidSide       Reason = "invalid-side"
	ReasonInternal          Reason = "internal"
)

// ReasonOf maps a (possibly wrapped) error to its reason code.
func ReasonOf(err error) Reason {
	switch {
	case err == nil:
		return ReasonOK
	case errors.Is(err, ErrUnknownMove):
		return ReasonUnknownMove
	case errors.Is(err, ErrLimitExhausted):
		return ReasonLimitExhausted
	case errors.Is(err, ErrGameAlreadyOver):
		return ReasonGameAlreadyOver
	case errors.Is(err, ErrInvalidTransition):
		return ReasonInvalidTransition
	default:
		return ReasonInternal
	}
}
