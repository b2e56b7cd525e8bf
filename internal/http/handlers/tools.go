package handlers

import (
	"net/http"

	"rps_referee/internal/game"
	"rps_referee/internal/service"

	"github.com/gin-gonic/gin"
)

// ValidateMoveRequest is the body of POST /api/v1/tools/validate_move.
type ValidateMoveRequest struct {
	Move string `json:"move" binding:"required"`
	Side string `json:"side" binding:"required"`
}

// ResolveRoundRequest is the body of POST /api/v1/tools/resolve_round.
// An empty BotMove lets the referee choose.
type ResolveRoundRequest struct {
	UserMove string `json:"user_move" binding:"required"`
	BotMove  string `json:"bot_move"`
}

// UpdateGameStateRequest is the body of POST /api/v1/tools/update_game_state.
type UpdateGameStateRequest struct {
	UserMove string `json:"user_move" binding:"required"`
	BotMove  string `json:"bot_move" binding:"required"`
	Outcome  string `json:"outcome" binding:"required"`
}

// ValidateMove answers 200 for legal and illegal moves alike; legality is in
// the verdict.
func (h *Handler) ValidateMove(c *gin.Context) {
	var req ValidateMoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, h.Referee.ValidateMove(req.Move, game.ParseSide(req.Side)))
}

func (h *Handler) ResolveRound(c *gin.Context) {
	var req ResolveRoundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	res, err := h.Referee.ResolveRound(req.UserMove, req.BotMove)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) UpdateGameState(c *gin.Context) {
	var req UpdateGameStateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	outcome, err := game.ParseOutcome(req.Outcome)
	if err != nil {
		respondError(c, err)
		return
	}
	snap, err := h.Referee.UpdateGameState(req.UserMove, req.BotMove, outcome)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

func (h *Handler) State(c *gin.Context) {
	c.JSON(http.StatusOK, h.Referee.Snapshot())
}

func (h *Handler) Rules(c *gin.Context) {
	c.JSON(http.StatusOK, service.DescribeRules(h.Referee.Catalog(), h.Referee.Rules()))
}
