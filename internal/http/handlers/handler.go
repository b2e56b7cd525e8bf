package handlers

import (
	"errors"
	"net/http"

	"rps_referee/internal/game"
	"rps_referee/internal/service"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	Referee *service.Referee
}

func NewHandler(referee *service.Referee) *Handler {
	return &Handler{Referee: referee}
}

// respondError maps referee errors to HTTP statuses. The reason code is
// always included so agents can branch without parsing messages.
func respondError(c *gin.Context, err error) {
	reason := game.ReasonOf(err)
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, game.ErrInvalidTransition), errors.Is(err, game.ErrGameAlreadyOver):
		status = http.StatusConflict
	case errors.Is(err, game.ErrUnknownMove), errors.Is(err, game.ErrLimitExhausted):
		status = http.StatusBadRequest
	}
	c.JSON(status, gin.H{"error": err.Error(), "reason": reason})
}
