package game

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand/v2"
)

// Policy names an opponent move selection strategy.
type Policy string

const (
	PolicyUniform   Policy = "uniform"
	PolicyStrategic Policy = "strategic"
)

// Selector picks the bot's move. Implementations must only return moves that
// ValidateMove would accept for SideBot. They are not safe for concurrent use.
type Selector interface {
	SelectMove(c *Catalog, s *State) (Move, error)
}

// NewSelector builds the selector for policy seeded with seed.
func NewSelector(policy Policy, seed uint64) (Selector, error) {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	switch policy {
	case PolicyUniform, "":
		return &UniformSelector{rng: rng}, nil
	case PolicyStrategic:
		return &StrategicSelector{rng: rng}, nil
	default:
		return nil, fmt.Errorf("%w: unknown bot policy %q", ErrInvalidConfig, policy)
	}
}

// NewSeed returns a seed from crypto/rand.
func NewSeed() (uint64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return binary.LittleEndian.Uint64(b[:]), nil
}

func botCandidates(c *Catalog, s *State) ([]Move, error) {
	if s.GameOver() {
		return nil, ErrGameAlreadyOver
	}
	legal := LegalMoves(c, s, SideBot)
	if len(legal) == 0 {
		return nil, ErrNoLegalMove
	}
	return legal, nil
}

// UniformSelector picks uniformly among the bot's legal moves.
type UniformSelector struct {
	rng *rand.Rand
}

func (u *UniformSelector) SelectMove(c *Catalog, s *State) (Move, error) {
	legal, err := botCandidates(c, s)
	if err != nil {
		return MoveNone, err
	}
	return legal[u.rng.IntN(len(legal))], nil
}

// StrategicSelector leans on limited moves early: in round 1 it plays one
// with probability 1/2, later a limited move joins the pool with
// probability 3/10.
type StrategicSelector struct {
	rng *rand.Rand
}

func (st *StrategicSelector) SelectMove(c *Catalog, s *State) (Move, error) {
	legal, err := botCandidates(c, s)
	if err != nil {
		return MoveNone, err
	}

	var plain, limited []Move
	for _, m := range legal {
		if _, isLimited := c.LimitOf(m); isLimited {
			limited = append(limited, m)
		} else {
			plain = append(plain, m)
		}
	}

	if len(limited) > 0 && s.RoundNumber() == 1 && st.rng.Float64() < 0.5 {
		return limited[st.rng.IntN(len(limited))], nil
	}

	pool := plain
	if len(limited) > 0 && st.rng.Float64() < 0.3 {
		pool = append(append([]Move(nil), plain...), limited...)
	}
	if len(pool) == 0 {
		pool = legal
	}
	return pool[st.rng.IntN(len(pool))], nil
}
