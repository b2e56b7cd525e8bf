package game

import (
	"errors"
	"testing"
)

func TestSelectorsOnlyReturnLegalMoves(t *testing.T) {
	c := mustCatalog(t, RulesetClassic)
	for _, policy := range []Policy{PolicyUniform, PolicyStrategic} {
		for seed := uint64(0); seed < 50; seed++ {
			sel, err := NewSelector(policy, seed)
			if err != nil {
				t.Fatalf("NewSelector(%s): %v", policy, err)
			}
			s := mustState(t, Rules{RoundLimit: 6})
			for !s.GameOver() {
				m, err := sel.SelectMove(c, s)
				if err != nil {
					t.Fatalf("%s seed %d: %v", policy, seed, err)
				}
				if v := ValidateMove(c, m.String(), SideBot, s); !v.Legal {
					t.Fatalf("%s seed %d picked illegal %s: %s", policy, seed, m, v.Reason)
				}
				s = play(t, c, s, Rock, m)
			}
		}
	}
}

func TestSelectorIsDeterministicForSeed(t *testing.T) {
	c := mustCatalog(t, RulesetExtended)
	s := mustState(t, DefaultRules())
	a, _ := NewSelector(PolicyUniform, 42)
	b, _ := NewSelector(PolicyUniform, 42)
	for i := 0; i < 20; i++ {
		ma, _ := a.SelectMove(c, s)
		mb, _ := b.SelectMove(c, s)
		if ma != mb {
			t.Fatalf("pick %d differs: %s vs %s", i, ma, mb)
		}
	}
}

func TestStrategicSelectorUsesBomb(t *testing.T) {
	c := mustCatalog(t, RulesetClassic)
	s := mustState(t, DefaultRules())
	sel, _ := NewSelector(PolicyStrategic, 1)

	bombs := 0
	for i := 0; i < 400; i++ {
		m, err := sel.SelectMove(c, s)
		if err != nil {
			t.Fatalf("select: %v", err)
		}
		if m == Bomb {
			bombs++
		}
	}
	if bombs < 100 {
		t.Fatalf("strategic selector played bomb %d/400 times in round 1", bombs)
	}
}

func TestSelectorAfterGameOver(t *testing.T) {
	c := mustCatalog(t, RulesetClassic)
	s := mustState(t, Rules{RoundLimit: 1})
	s = play(t, c, s, Rock, Paper)

	sel, _ := NewSelector(PolicyUniform, 3)
	if _, err := sel.SelectMove(c, s); !errors.Is(err, ErrGameAlreadyOver) {
		t.Fatalf("err = %v; want ErrGameAlreadyOver", err)
	}
}

func TestNewSelectorUnknownPolicy(t *testing.T) {
	if _, err := NewSelector("psychic", 1); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("err = %v", err)
	}
}

func TestNewSeed(t *testing.T) {
	a, err := NewSeed()
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	b, _ := NewSeed()
	if a == b {
		t.Fatalf("two seeds collided: %d", a)
	}
}
