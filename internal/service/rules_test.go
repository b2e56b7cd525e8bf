package service

import (
	"testing"

	"rps_referee/internal/game"
)

func TestDescribeRulesClassic(t *testing.T) {
	c, err := game.NewFactory().CreateCatalog(game.RulesetClassic)
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	info := DescribeRules(c, game.DefaultRules())
	if info.Ruleset != string(game.RulesetClassic) || info.RoundLimit != 3 || len(info.Moves) != 4 {
		t.Fatalf("info = %+v", info)
	}
	for _, m := range info.Moves {
		switch m.ID {
		case "bomb":
			if m.Limit != 1 || len(m.Beats) != 3 {
				t.Fatalf("bomb = %+v", m)
			}
		default:
			if m.Limit != game.Unlimited || len(m.Beats) != 1 {
				t.Fatalf("%s = %+v", m.ID, m)
			}
		}
	}
}
