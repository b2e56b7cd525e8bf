package game

import (
	"fmt"
	"strings"
)

// Verdict is the Validator's answer. Illegal moves are data, not errors, so
// the caller can explain them without guessing.
type Verdict struct {
	Legal   bool   `json:"legal"`
	Move    string `json:"move,omitempty"`
	Side    Side   `json:"side"`
	Reason  Reason `json:"reason"`
	Message string `json:"message"`
}

// ValidateMove checks whether side may play moveID in the current state.
// It never mutates s. Checks fail closed in this order: unknown side,
// unknown move, finished game, exhausted limit.
func ValidateMove(c *Catalog, moveID string, side Side, s *State) Verdict {
	v := Verdict{Side: side}
	if !side.Valid() {
		v.Reason = ReasonInvalidSide
		v.Message = fmt.Sprintf("unknown side %q", side)
		return v
	}

	m, ok := c.Lookup(moveID)
	if !ok {
		v.Move = NormalizeMoveInput(moveID)
		v.Reason = ReasonUnknownMove
		v.Message = fmt.Sprintf("invalid move %q, valid moves: %s", v.Move, strings.Join(c.MoveIDs(), ", "))
		return v
	}
	v.Move = m.String()

	if s.GameOver() {
		v.Reason = ReasonGameAlreadyOver
		v.Message = "the game is already over"
		return v
	}

	if limit, limited := c.LimitOf(m); limited && s.Used(side, m) >= limit {
		v.Reason = ReasonLimitExhausted
		v.Message = fmt.Sprintf("%s has already used %s %d of %d times", side, m, s.Used(side, m), limit)
		return v
	}

	v.Legal = true
	v.Reason = ReasonOK
	v.Message = "valid move"
	return v
}

// LegalMoves lists the moves side may play now, in catalog order.
func LegalMoves(c *Catalog, s *State, side Side) []Move {
	if s.GameOver() || !side.Valid() {
		return nil
	}
	var out []Move
	for _, m := range c.order {
		if limit, limited := c.LimitOf(m); limited && s.Used(side, m) >= limit {
			continue
		}
		out = append(out, m)
	}
	return out
}
