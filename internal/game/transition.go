package game

import "fmt"

// Transition commits one resolved round and returns the next state. The
// input state is never modified: on error the caller keeps s unchanged, on
// success it replaces s with the result.
func Transition(c *Catalog, s *State, user, bot Move, outcome Outcome) (*State, error) {
	if s.GameOver() {
		return nil, ErrGameAlreadyOver
	}
	if !c.Contains(user) {
		return nil, fmt.Errorf("%w: user move %v", ErrUnknownMove, user)
	}
	if !c.Contains(bot) {
		return nil, fmt.Errorf("%w: bot move %v", ErrUnknownMove, bot)
	}
	if !outcome.Valid() {
		return nil, fmt.Errorf("%w: unknown outcome %q", ErrInvalidTransition, outcome)
	}
	if want := Resolve(c, user, bot); want != outcome {
		return nil, fmt.Errorf("%w: %s vs %s is %s, not %s", ErrInvalidTransition, user, bot, want, outcome)
	}
	plays := [...]struct {
		side Side
		move Move
	}{{SideUser, user}, {SideBot, bot}}
	for _, p := range plays {
		if limit, limited := c.LimitOf(p.move); limited && s.Used(p.side, p.move)+1 > limit {
			return nil, fmt.Errorf("%w: %s %s", ErrLimitExhausted, p.side, p.move)
		}
	}

	next := s.clone()
	next.usage[SideUser][user]++
	next.usage[SideBot][bot]++
	if winner, ok := outcome.Winner(); ok {
		next.scores[winner]++
	} else {
		next.ties++
	}
	next.round++
	next.over = next.rules.reached(next.RoundsPlayed(), next.scores[SideUser], next.scores[SideBot])

	return next, nil
}
