package mcpserver

import (
	"context"
	"fmt"

	"rps_referee/internal/domain"
	"rps_referee/internal/game"
	"rps_referee/internal/service"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Referee is the slice of the referee service the tools need.
type Referee interface {
	service.Tools
	Catalog() *game.Catalog
	Rules() game.Rules
}

// ValidateMoveInput represents the MCP tool input for validate_move.
type ValidateMoveInput struct {
	Move string `json:"move" jsonschema:"move id or alias, case-insensitive (e.g. rock, paper, scissors, bomb)"`
	Side string `json:"side" jsonschema:"who plays the move: user or bot"`
}

// ValidateMoveResult represents the MCP tool output for validate_move.
type ValidateMoveResult struct {
	Legal   bool   `json:"legal" jsonschema:"true when the move may be played this round"`
	Move    string `json:"move,omitempty" jsonschema:"normalized move id"`
	Side    string `json:"side" jsonschema:"side the verdict applies to"`
	Reason  string `json:"reason" jsonschema:"ok, unknown-move, limit-exhausted, game-already-over or invalid-side"`
	Message string `json:"message" jsonschema:"human readable explanation"`
}

// ResolveRoundInput represents the MCP tool input for resolve_round.
type ResolveRoundInput struct {
	UserMove string `json:"user_move" jsonschema:"the user's validated move"`
	BotMove  string `json:"bot_move,omitempty" jsonschema:"the bot's validated move; leave empty to let the referee choose"`
}

// ResolveRoundResult represents the MCP tool output for resolve_round.
type ResolveRoundResult struct {
	Round    int    `json:"round" jsonschema:"round being resolved"`
	UserMove string `json:"user_move" jsonschema:"user move"`
	BotMove  string `json:"bot_move" jsonschema:"bot move"`
	Outcome  string `json:"outcome" jsonschema:"user-wins, bot-wins or tie"`
}

// UpdateGameStateInput represents the MCP tool input for update_game_state.
type UpdateGameStateInput struct {
	UserMove string `json:"user_move" jsonschema:"user move exactly as returned by resolve_round"`
	BotMove  string `json:"bot_move" jsonschema:"bot move exactly as returned by resolve_round"`
	Outcome  string `json:"outcome" jsonschema:"outcome exactly as returned by resolve_round"`
}

// GameStateInput is the empty input of the read-only tools.
type GameStateInput struct{}

func ValidateMoveTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "validate_move",
		Description: "Checks whether a move is legal for a side in the current round. Never changes the game.",
	}
}

func ValidateMoveHandler(ref Referee) mcp.ToolHandlerFor[ValidateMoveInput, ValidateMoveResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ValidateMoveInput) (*mcp.CallToolResult, ValidateMoveResult, error) {
		v := ref.ValidateMove(input.Move, game.ParseSide(input.Side))
		return nil, ValidateMoveResult{
			Legal:   v.Legal,
			Move:    v.Move,
			Side:    string(v.Side),
			Reason:  string(v.Reason),
			Message: v.Message,
		}, nil
	}
}

func ResolveRoundTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "resolve_round",
		Description: "Decides the outcome of the current round from validated moves. Picks the bot move when bot_move is empty. Never changes the score.",
	}
}

func ResolveRoundHandler(ref Referee) mcp.ToolHandlerFor[ResolveRoundInput, ResolveRoundResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ResolveRoundInput) (*mcp.CallToolResult, ResolveRoundResult, error) {
		res, err := ref.ResolveRound(input.UserMove, input.BotMove)
		if err != nil {
			return nil, ResolveRoundResult{}, toolError("resolve round", err)
		}
		return nil, ResolveRoundResult{
			Round:    res.Round,
			UserMove: res.UserMove,
			BotMove:  res.BotMove,
			Outcome:  string(res.Outcome),
		}, nil
	}
}

func UpdateGameStateTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "update_game_state",
		Description: "Commits the round returned by resolve_round and returns the new game state. Rejects any other combination.",
	}
}

func UpdateGameStateHandler(ref Referee) mcp.ToolHandlerFor[UpdateGameStateInput, domain.Snapshot] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input UpdateGameStateInput) (*mcp.CallToolResult, domain.Snapshot, error) {
		outcome, err := game.ParseOutcome(input.Outcome)
		if err != nil {
			return nil, domain.Snapshot{}, toolError("update game state", err)
		}
		snap, err := ref.UpdateGameState(input.UserMove, input.BotMove, outcome)
		if err != nil {
			return nil, domain.Snapshot{}, toolError("update game state", err)
		}
		return nil, snap, nil
	}
}

func GetGameStateTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "get_game_state",
		Description: "Returns a read-only snapshot of the game: round, scores, remaining limited moves and phase.",
	}
}

func GetGameStateHandler(ref Referee) mcp.ToolHandlerFor[GameStateInput, domain.Snapshot] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ GameStateInput) (*mcp.CallToolResult, domain.Snapshot, error) {
		return nil, ref.Snapshot(), nil
	}
}

func DescribeRulesTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "describe_rules",
		Description: "Lists the moves, what each beats, per-game limits and when the game ends.",
	}
}

func DescribeRulesHandler(ref Referee) mcp.ToolHandlerFor[GameStateInput, domain.RulesInfo] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ GameStateInput) (*mcp.CallToolResult, domain.RulesInfo, error) {
		return nil, service.DescribeRules(ref.Catalog(), ref.Rules()), nil
	}
}

// toolError prefixes err with its reason code so agents can branch on it.
func toolError(op string, err error) error {
	return fmt.Errorf("%s: %s: %w", game.ReasonOf(err), op, err)
}

func registerRefereeTools(mcpServer *mcp.Server, ref Referee) {
	mcp.AddTool(mcpServer, ValidateMoveTool(), ValidateMoveHandler(ref))
	mcp.AddTool(mcpServer, ResolveRoundTool(), ResolveRoundHandler(ref))
	mcp.AddTool(mcpServer, UpdateGameStateTool(), UpdateGameStateHandler(ref))
	mcp.AddTool(mcpServer, GetGameStateTool(), GetGameStateHandler(ref))
	mcp.AddTool(mcpServer, DescribeRulesTool(), DescribeRulesHandler(ref))
}
