package service

import (
	"rps_referee/internal/domain"
	"rps_referee/internal/game"
)

// DescribeRules renders the catalog and end condition for agents and clients.
func DescribeRules(c *game.Catalog, rules game.Rules) domain.RulesInfo {
	info := domain.RulesInfo{
		Ruleset:     c.Name(),
		Moves:       make([]domain.MoveInfo, 0, len(c.Moves())),
		RoundLimit:  rules.RoundLimit,
		ScoreLimit:  rules.ScoreLimit,
		Description: c.Describe(),
	}
	for _, m := range c.Moves() {
		limit, _ := c.LimitOf(m)
		beats := []string{}
		for _, b := range c.BeatsSet(m) {
			beats = append(beats, b.String())
		}
		info.Moves = append(info.Moves, domain.MoveInfo{ID: m.String(), Limit: limit, Beats: beats})
	}
	return info
}
