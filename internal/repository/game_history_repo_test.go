package repository

import (
	"context"
	"testing"

	"rps_referee/internal/domain"
)

func TestGameHistoryRepository_Create_GetByGame(t *testing.T) {
	repo := NewGameHistoryRepository()
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		rec := &domain.RoundRecord{GameID: "g1", Round: i, UserMove: "rock", BotMove: "scissors", Outcome: "user-wins"}
		if err := repo.Create(ctx, rec); err != nil {
			t.Fatalf("create round %d: %v", i, err)
		}
		if rec.CommittedAt.IsZero() {
			t.Fatalf("CommittedAt not stamped")
		}
	}
	if err := repo.Create(ctx, &domain.RoundRecord{GameID: "g2", Round: 1}); err != nil {
		t.Fatalf("create g2: %v", err)
	}

	rounds, err := repo.GetByGame(ctx, "g1", 0)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(rounds) != 3 || rounds[0].Round != 1 || rounds[2].Round != 3 {
		t.Fatalf("unexpected rounds: %+v", rounds)
	}

	last, _ := repo.GetByGame(ctx, "g1", 2)
	if len(last) != 2 || last[0].Round != 2 {
		t.Fatalf("limit 2 returned %+v", last)
	}

	rounds[0].UserMove = "paper"
	again, _ := repo.GetByGame(ctx, "g1", 0)
	if again[0].UserMove != "rock" {
		t.Fatalf("returned records alias stored ones")
	}

	if other, _ := repo.GetByGame(ctx, "g2", 0); len(other) != 1 {
		t.Fatalf("g2 rounds = %+v", other)
	}
}

func TestGameHistoryRepository_CanceledContext(t *testing.T) {
	repo := NewGameHistoryRepository()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := repo.Create(ctx, &domain.RoundRecord{GameID: "g"}); err == nil {
		t.Fatalf("expected error on canceled context")
	}
}
