package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

const maxHistoryLimit = 100

// History returns the committed rounds of the current game.
// Query: ?limit=N (default all, max 100).
func (h *Handler) History(c *gin.Context) {
	limit := 0
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a non-negative integer"})
			return
		}
		limit = n
	}
	if limit == 0 || limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}

	rounds, err := h.Referee.History(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"game_id": h.Referee.Snapshot().GameID,
		"rounds":  rounds,
	})
}

const maxAuditLimit = 256

// NewGame starts a fresh game. A game in progress is only abandoned with
// ?force=true; otherwise the call is a 409.
func (h *Handler) NewGame(c *gin.Context) {
	force := c.Query("force") == "true"
	if err := h.Referee.Restart(force); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, h.Referee.Snapshot())
}

// Audit returns the newest audit entries, oldest first.
// Query: ?limit=N (default 50, max 256).
func (h *Handler) Audit(c *gin.Context) {
	limit := 50
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = n
	}
	if limit > maxAuditLimit {
		limit = maxAuditLimit
	}
	c.JSON(http.StatusOK, gin.H{"entries": h.Referee.AuditTrail(limit)})
}
