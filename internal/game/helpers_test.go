package game

import "testing"

func mustCatalog(t *testing.T, ruleset Ruleset) *Catalog {
	t.Helper()
	c, err := NewFactory().CreateCatalog(ruleset)
	if err != nil {
		t.Fatalf("create catalog %s: %v", ruleset, err)
	}
	return c
}

func mustState(t *testing.T, rules Rules) *State {
	t.Helper()
	s, err := NewState(rules)
	if err != nil {
		t.Fatalf("new state: %v", err)
	}
	return s
}

// play resolves and commits one round, failing the test on error.
func play(t *testing.T, c *Catalog, s *State, user, bot Move) *State {
	t.Helper()
	next, err := Transition(c, s, user, bot, Resolve(c, user, bot))
	if err != nil {
		t.Fatalf("transition %s vs %s: %v", user, bot, err)
	}
	return next
}
