package game

import (
	"fmt"
	"strings"
)

// Move is a closed set of every move any ruleset may use. A Catalog picks
// the subset in play and the relations between them.
type Move uint8

const (
	MoveNone Move = iota
	Rock
	Paper
	Scissors
	Bomb
	Lizard
	Spock
)

var moveNames = map[Move]string{
	Rock:     "rock",
	Paper:    "paper",
	Scissors: "scissors",
	Bomb:     "bomb",
	Lizard:   "lizard",
	Spock:    "spock",
}

func (m Move) String() string {
	if name, ok := moveNames[m]; ok {
		return name
	}
	return fmt.Sprintf("move(%d)", uint8(m))
}

func (m Move) MarshalText() ([]byte, error) {
	if _, ok := moveNames[m]; !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownMove, uint8(m))
	}
	return []byte(m.String()), nil
}

func (m *Move) UnmarshalText(b []byte) error {
	for mv, name := range moveNames {
		if name == string(b) {
			*m = mv
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownMove, string(b))
}

// Unlimited marks a move with no per-game usage cap.
const Unlimited = -1

// MoveSpec declares one catalog entry.
type MoveSpec struct {
	Move    Move
	Limit   int // Unlimited or a positive per-side cap
	Beats   []Move
	Aliases []string
}

// Catalog is the static registry of moves, their beats relation and limits.
// It is immutable once built and safe to share.
type Catalog struct {
	name   string
	order  []Move
	limits map[Move]int
	beats  map[Move]map[Move]bool
	lookup map[string]Move
}

// NewCatalog validates specs and builds a catalog. The beats relation must be
// irreflexive and may only reference moves in the catalog; at least one move
// must be unlimited so a side always has a legal move.
func NewCatalog(name string, specs []MoveSpec) (*Catalog, error) {
	if len(specs) == 0 {
		return nil, fmt.Errorf("%w: %s has no moves", ErrInvalidCatalog, name)
	}

	c := &Catalog{
		name:   name,
		limits: make(map[Move]int, len(specs)),
		beats:  make(map[Move]map[Move]bool, len(specs)),
		lookup: make(map[string]Move),
	}

	for _, spec := range specs {
		if _, ok := moveNames[spec.Move]; !ok {
			return nil, fmt.Errorf("%w: %s declares %v", ErrInvalidCatalog, name, spec.Move)
		}
		if _, dup := c.limits[spec.Move]; dup {
			return nil, fmt.Errorf("%w: %s declares %s twice", ErrInvalidCatalog, name, spec.Move)
		}
		if spec.Limit != Unlimited && spec.Limit <= 0 {
			return nil, fmt.Errorf("%w: %s limit must be positive, got %d", ErrInvalidCatalog, spec.Move, spec.Limit)
		}
		c.order = append(c.order, spec.Move)
		c.limits[spec.Move] = spec.Limit
		c.lookup[spec.Move.String()] = spec.Move
	}

	hasUnlimited := false
	for _, spec := range specs {
		if spec.Limit == Unlimited {
			hasUnlimited = true
		}
		set := make(map[Move]bool, len(spec.Beats))
		for _, target := range spec.Beats {
			if target == spec.Move {
				return nil, fmt.Errorf("%w: %s beats itself", ErrInvalidCatalog, spec.Move)
			}
			if _, ok := c.limits[target]; !ok {
				return nil, fmt.Errorf("%w: %s beats %v which is not in %s", ErrInvalidCatalog, spec.Move, target, name)
			}
			set[target] = true
		}
		c.beats[spec.Move] = set

		for _, alias := range spec.Aliases {
			key := NormalizeMoveInput(alias)
			if owner, taken := c.lookup[key]; taken && owner != spec.Move {
				return nil, fmt.Errorf("%w: alias %q claimed by %s and %s", ErrInvalidCatalog, alias, owner, spec.Move)
			}
			c.lookup[key] = spec.Move
		}
	}
	if !hasUnlimited {
		return nil, fmt.Errorf("%w: %s has no unlimited move", ErrInvalidCatalog, name)
	}

	return c, nil
}

func (c *Catalog) Name() string {
	return c.name
}

// Moves returns the catalog moves in declaration order.
func (c *Catalog) Moves() []Move {
	out := make([]Move, len(c.order))
	copy(out, c.order)
	return out
}

// MoveIDs returns the move identifiers in declaration order.
func (c *Catalog) MoveIDs() []string {
	out := make([]string, 0, len(c.order))
	for _, m := range c.order {
		out = append(out, m.String())
	}
	return out
}

// Lookup resolves free text (identifier or alias) to a catalog move.
func (c *Catalog) Lookup(id string) (Move, bool) {
	m, ok := c.lookup[NormalizeMoveInput(id)]
	return m, ok
}

func (c *Catalog) IsKnown(id string) bool {
	_, ok := c.Lookup(id)
	return ok
}

// Contains reports whether m is part of this catalog.
func (c *Catalog) Contains(m Move) bool {
	_, ok := c.limits[m]
	return ok
}

// LimitOf returns the per-side cap of m; limited is false for unlimited moves
// and for moves outside the catalog.
func (c *Catalog) LimitOf(m Move) (limit int, limited bool) {
	l, ok := c.limits[m]
	if !ok || l == Unlimited {
		return Unlimited, false
	}
	return l, true
}

// LimitedMoves returns every move with a finite cap, in declaration order.
func (c *Catalog) LimitedMoves() []Move {
	var out []Move
	for _, m := range c.order {
		if _, limited := c.LimitOf(m); limited {
			out = append(out, m)
		}
	}
	return out
}

func (c *Catalog) Beats(a, b Move) bool {
	return c.beats[a][b]
}

// BeatsSet returns the moves a defeats, in catalog order.
func (c *Catalog) BeatsSet(a Move) []Move {
	var out []Move
	for _, m := range c.order {
		if c.beats[a][m] {
			out = append(out, m)
		}
	}
	return out
}

// Describe renders the rules as one line per move, for prompts and logs.
func (c *Catalog) Describe() string {
	var b strings.Builder
	for _, m := range c.order {
		beaten := c.BeatsSet(m)
		names := make([]string, 0, len(beaten))
		for _, x := range beaten {
			names = append(names, x.String())
		}
		if len(names) == 0 {
			names = append(names, "nothing")
		}
		fmt.Fprintf(&b, "%s beats %s", m, strings.Join(names, ", "))
		if limit, limited := c.LimitOf(m); limited {
			fmt.Fprintf(&b, " (max %d per game)", limit)
		}
		b.WriteString("\n")
	}
	return b.String()
}
