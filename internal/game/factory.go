package game

import "fmt"

// Ruleset names a built-in catalog.
type Ruleset string

const (
	RulesetClassic  Ruleset = "classic"
	RulesetExtended Ruleset = "extended"
)

type Factory struct{}

func NewFactory() *Factory {
	return &Factory{}
}

func (f *Factory) CreateCatalog(ruleset Ruleset) (*Catalog, error) {
	switch ruleset {
	case RulesetClassic, "":
		return NewCatalog(string(RulesetClassic), classicSpecs())
	case RulesetExtended:
		return NewCatalog(string(RulesetExtended), extendedSpecs())
	default:
		return nil, fmt.Errorf("%w: unknown ruleset %q", ErrInvalidConfig, ruleset)
	}
}

// classicSpecs is rock-paper-scissors plus a bomb that beats all three and
// may be played once per side per game. Bomb against bomb is a tie.
func classicSpecs() []MoveSpec {
	return []MoveSpec{
		{Move: Rock, Limit: Unlimited, Beats: []Move{Scissors}, Aliases: []string{"rocks", "stone", "✊"}},
		{Move: Paper, Limit: Unlimited, Beats: []Move{Rock}, Aliases: []string{"papers", "sheet", "✋"}},
		{Move: Scissors, Limit: Unlimited, Beats: []Move{Paper}, Aliases: []string{"scissor", "shears", "✌", "✌️"}},
		{Move: Bomb, Limit: 1, Beats: []Move{Rock, Paper, Scissors}, Aliases: []string{"boom", "💣"}},
	}
}

// extendedSpecs adds lizard and spock; the bomb still beats everything else.
func extendedSpecs() []MoveSpec {
	return []MoveSpec{
		{Move: Rock, Limit: Unlimited, Beats: []Move{Scissors, Lizard}, Aliases: []string{"rocks", "stone", "✊"}},
		{Move: Paper, Limit: Unlimited, Beats: []Move{Rock, Spock}, Aliases: []string{"papers", "sheet", "✋"}},
		{Move: Scissors, Limit: Unlimited, Beats: []Move{Paper, Lizard}, Aliases: []string{"scissor", "shears", "✌", "✌️"}},
		{Move: Lizard, Limit: Unlimited, Beats: []Move{Spock, Paper}, Aliases: []string{"lizards", "🦎"}},
		{Move: Spock, Limit: Unlimited, Beats: []Move{Scissors, Rock}, Aliases: []string{"vulcan", "🖖"}},
		{Move: Bomb, Limit: 1, Beats: []Move{Rock, Paper, Scissors, Lizard, Spock}, Aliases: []string{"boom", "💣"}},
	}
}
