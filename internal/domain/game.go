package domain

import "time"

// Phase is the position of the current round in the referee state machine.
type Phase string

const (
	PhaseAwaitingMove Phase = "awaiting_move"
	PhaseValidated    Phase = "validated"
	PhaseResolved     Phase = "resolved"
	PhaseGameOver     Phase = "game_over"
)

// Snapshot is the read-only view of a game handed to callers of the tool
// facade. It is a copy; holding it never gives access to live state.
type Snapshot struct {
	GameID       string                    `json:"game_id"`
	Ruleset      string                    `json:"ruleset"`
	RoundNumber  int                       `json:"round_number"`
	RoundsPlayed int                       `json:"rounds_played"`
	UserScore    int                       `json:"user_score"`
	BotScore     int                       `json:"bot_score"`
	Ties         int                       `json:"ties"`
	GameOver     bool                      `json:"game_over"`
	Result       string                    `json:"result,omitempty"`
	RoundLimit   int                       `json:"round_limit"`
	ScoreLimit   int                       `json:"score_limit"`
	Remaining    map[string]map[string]int `json:"remaining"`
	Phase        Phase                     `json:"phase"`
}

// RoundRecord is one committed round.
type RoundRecord struct {
	ID          string    `json:"id"`
	GameID      string    `json:"game_id"`
	Round       int       `json:"round"`
	UserMove    string    `json:"user_move"`
	BotMove     string    `json:"bot_move"`
	Outcome     string    `json:"outcome"`
	UserScore   int       `json:"user_score"`
	BotScore    int       `json:"bot_score"`
	GameOver    bool      `json:"game_over"`
	CommittedAt time.Time `json:"committed_at"`
}

// MoveInfo describes one catalog entry. Limit is -1 for unlimited moves.
type MoveInfo struct {
	ID    string   `json:"id"`
	Limit int      `json:"limit"`
	Beats []string `json:"beats"`
}

// RulesInfo is the public description of the rules in play.
type RulesInfo struct {
	Ruleset     string     `json:"ruleset"`
	Moves       []MoveInfo `json:"moves"`
	RoundLimit  int        `json:"round_limit"`
	ScoreLimit  int        `json:"score_limit"`
	Description string     `json:"description"`
}
