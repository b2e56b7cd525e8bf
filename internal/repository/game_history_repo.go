package repository

import (
	"context"
	"sync"
	"time"

	"rps_referee/internal/domain"
)

// GameHistoryRepository keeps committed rounds for the lifetime of the
// process. Nothing is written to disk.
type GameHistoryRepository struct {
	mu     sync.RWMutex
	rounds map[string][]*domain.RoundRecord // gameID -> rounds in commit order
}

func NewGameHistoryRepository() *GameHistoryRepository {
	return &GameHistoryRepository{
		rounds: make(map[string][]*domain.RoundRecord),
	}
}

// Create stores a round record, stamping CommittedAt when unset.
func (r *GameHistoryRepository) Create(ctx context.Context, rec *domain.RoundRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if rec.CommittedAt.IsZero() {
		rec.CommittedAt = time.Now().UTC()
	}

	cp := *rec

	r.mu.Lock()
	defer r.mu.Unlock()

	r.rounds[rec.GameID] = append(r.rounds[rec.GameID], &cp)
	return nil
}

// GetByGame returns the rounds of a game, oldest first. limit <= 0 means all.
func (r *GameHistoryRepository) GetByGame(ctx context.Context, gameID string, limit int) ([]*domain.RoundRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	rounds := r.rounds[gameID]
	if limit > 0 && len(rounds) > limit {
		rounds = rounds[len(rounds)-limit:]
	}

	res := make([]*domain.RoundRecord, 0, len(rounds))
	for _, rec := range rounds {
		cp := *rec
		res = append(res, &cp)
	}
	return res, nil
}
