package domain

import "time"

// AuditLog is one tool call as seen by the referee.
type AuditLog struct {
	GameID    string                 `json:"game_id"`
	Action    string                 `json:"action"`
	Category  string                 `json:"category"`
	Reason    string                 `json:"reason,omitempty"`
	Details   map[string]interface{} `json:"details"`
	CreatedAt time.Time              `json:"created_at"`
}

// Audit action categories
const (
	AuditCategoryTool = "tool"
	AuditCategoryGame = "game"
)

// Audit actions
const (
	// Tool actions
	AuditActionValidateMove    = "validate_move"
	AuditActionResolveRound    = "resolve_round"
	AuditActionUpdateGameState = "update_game_state"

	// Game actions
	AuditActionGameStart   = "game_start"
	AuditActionGameEnd     = "game_end"
	AuditActionGameAbandon = "game_abandon"
)
