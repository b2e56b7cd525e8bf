package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"rps_referee/internal/domain"
	"rps_referee/internal/logger"
)

const defaultAuditCapacity = 256

// AuditService records tool calls to the structured log and keeps the most
// recent entries in memory.
type AuditService struct {
	log      *slog.Logger
	mu       sync.Mutex
	entries  []domain.AuditLog
	capacity int
}

// NewAuditService creates a new audit service
func NewAuditService() *AuditService {
	return &AuditService{
		log:      logger.With("component", "audit"),
		capacity: defaultAuditCapacity,
	}
}

// Log creates a new audit log entry
func (s *AuditService) Log(ctx context.Context, entry domain.AuditLog) {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	s.mu.Lock()
	s.entries = append(s.entries, entry)
	if over := len(s.entries) - s.capacity; over > 0 {
		s.entries = append([]domain.AuditLog(nil), s.entries[over:]...)
	}
	s.mu.Unlock()

	level := slog.LevelDebug
	if entry.Category == domain.AuditCategoryGame {
		level = slog.LevelInfo
	}
	s.log.Log(ctx, level, "audit",
		"game_id", entry.GameID,
		"action", entry.Action,
		"category", entry.Category,
		"reason", entry.Reason,
		"details", entry.Details,
	)
}

// LogTool logs a tool facade call
func (s *AuditService) LogTool(ctx context.Context, gameID, tool, reason string, details map[string]interface{}) {
	s.Log(ctx, domain.AuditLog{
		GameID:   gameID,
		Action:   tool,
		Category: domain.AuditCategoryTool,
		Reason:   reason,
		Details:  details,
	})
}

// LogGame logs a game lifecycle event
func (s *AuditService) LogGame(ctx context.Context, gameID, action string, details map[string]interface{}) {
	s.Log(ctx, domain.AuditLog{
		GameID:   gameID,
		Action:   action,
		Category: domain.AuditCategoryGame,
		Details:  details,
	})
}

// Recent returns up to n of the newest entries, oldest first.
func (s *AuditService) Recent(n int) []domain.AuditLog {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n <= 0 || n > len(s.entries) {
		n = len(s.entries)
	}
	out := make([]domain.AuditLog, n)
	copy(out, s.entries[len(s.entries)-n:])
	return out
}
