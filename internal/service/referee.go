package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"rps_referee/internal/config"
	"rps_referee/internal/domain"
	"rps_referee/internal/game"
	"rps_referee/internal/logger"
	"rps_referee/internal/repository"

	"github.com/google/uuid"
)

// Tools is everything an orchestrating agent may do. Adapters (MCP, HTTP)
// depend on this interface only, so no other path reaches the game state.
type Tools interface {
	ValidateMove(moveID string, side game.Side) game.Verdict
	ResolveRound(userMove, botMove string) (Resolution, error)
	UpdateGameState(userMove, botMove string, outcome game.Outcome) (domain.Snapshot, error)
	Snapshot() domain.Snapshot
}

// RoundObserver is notified after each committed round. Implementations must
// not block.
type RoundObserver interface {
	RoundCommitted(rec domain.RoundRecord)
}

// Resolution is the result of resolve_round.
type Resolution struct {
	Round    int          `json:"round"`
	UserMove string       `json:"user_move"`
	BotMove  string       `json:"bot_move"`
	Outcome  game.Outcome `json:"outcome"`
}

// roundGate tracks the current round's progress through
// validate -> resolve -> update. It lives outside game.State so that
// validation never touches the game record.
type roundGate struct {
	validated map[game.Side]map[game.Move]bool
	resolved  *resolvedRound
}

type resolvedRound struct {
	user, bot game.Move
	outcome   game.Outcome
}

func newRoundGate() roundGate {
	return roundGate{
		validated: map[game.Side]map[game.Move]bool{
			game.SideUser: {},
			game.SideBot:  {},
		},
	}
}

// Referee is the tool facade. It exclusively owns one game at a time and
// serialises every call with a single mutex.
type Referee struct {
	mu        sync.Mutex
	catalog   *game.Catalog
	rules     game.Rules
	selector  game.Selector
	gameID    string
	state     *game.State
	gate      roundGate
	history   *repository.GameHistoryRepository
	audit     *AuditService
	observers []RoundObserver
}

var _ Tools = (*Referee)(nil)

// NewReferee starts a game with the given catalog, rules and opponent.
func NewReferee(catalog *game.Catalog, rules game.Rules, selector game.Selector, history *repository.GameHistoryRepository, audit *AuditService) (*Referee, error) {
	if catalog == nil || selector == nil {
		return nil, fmt.Errorf("%w: catalog and selector are required", game.ErrInvalidConfig)
	}
	if history == nil {
		history = repository.NewGameHistoryRepository()
	}
	if audit == nil {
		audit = NewAuditService()
	}
	r := &Referee{
		catalog:  catalog,
		rules:    rules,
		selector: selector,
		history:  history,
		audit:    audit,
	}
	if err := r.resetLocked(); err != nil {
		return nil, err
	}
	return r, nil
}

// NewRefereeFromConfig wires the catalog, rules and bot policy named by cfg.
func NewRefereeFromConfig(cfg *config.Config) (*Referee, error) {
	catalog, err := game.NewFactory().CreateCatalog(cfg.Ruleset)
	if err != nil {
		return nil, err
	}

	seed := cfg.BotSeed
	if !cfg.SeedSet {
		if seed, err = game.NewSeed(); err != nil {
			return nil, err
		}
	}
	selector, err := game.NewSelector(cfg.BotPolicy, seed)
	if err != nil {
		return nil, err
	}

	logger.Info("referee configured",
		"ruleset", catalog.Name(),
		"round_limit", cfg.Rules.RoundLimit,
		"score_limit", cfg.Rules.ScoreLimit,
		"bot_policy", cfg.BotPolicy,
		"seed_fixed", cfg.SeedSet,
	)
	return NewReferee(catalog, cfg.Rules, selector, nil, nil)
}

// Subscribe registers an observer for committed rounds.
func (r *Referee) Subscribe(obs RoundObserver) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.observers = append(r.observers, obs)
}

// Restart starts a fresh game once the current one is over or has no
// committed rounds. Abandoning a game in progress needs force.
func (r *Referee) Restart(force bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	inProgress := !r.state.GameOver() && r.state.RoundsPlayed() > 0
	if inProgress && !force {
		return fmt.Errorf("%w: game %s is in progress after %d rounds", game.ErrInvalidTransition, r.gameID, r.state.RoundsPlayed())
	}
	if inProgress {
		r.audit.LogGame(context.Background(), r.gameID, domain.AuditActionGameAbandon, map[string]interface{}{
			"rounds_played": r.state.RoundsPlayed(),
			"user_score":    r.state.Score(game.SideUser),
			"bot_score":     r.state.Score(game.SideBot),
		})
		logger.Warn("game abandoned", "game_id", r.gameID, "rounds_played", r.state.RoundsPlayed())
	}
	return r.resetLocked()
}

func (r *Referee) resetLocked() error {
	state, err := game.NewState(r.rules)
	if err != nil {
		return err
	}

	r.gameID = uuid.New().String()
	r.state = state
	r.gate = newRoundGate()

	r.audit.LogGame(context.Background(), r.gameID, domain.AuditActionGameStart, map[string]interface{}{
		"ruleset":     r.catalog.Name(),
		"round_limit": r.rules.RoundLimit,
		"score_limit": r.rules.ScoreLimit,
	})
	return nil
}

// AuditTrail returns up to n of the most recent audit entries, oldest first.
func (r *Referee) AuditTrail(n int) []domain.AuditLog {
	return r.audit.Recent(n)
}

// Catalog returns the immutable move catalog in play.
func (r *Referee) Catalog() *game.Catalog {
	return r.catalog
}

func (r *Referee) Rules() game.Rules {
	return r.rules
}

// ValidateMove is the validate_move tool. A legal verdict admits the move
// for side in the current round.
func (r *Referee) ValidateMove(moveID string, side game.Side) game.Verdict {
	r.mu.Lock()
	defer r.mu.Unlock()

	v := game.ValidateMove(r.catalog, moveID, side, r.state)
	if v.Legal {
		m, _ := r.catalog.Lookup(moveID)
		r.gate.validated[side][m] = true
	}

	Verdicts.WithLabelValues(sideLabel(side), string(v.Reason)).Inc()
	ToolCalls.WithLabelValues(domain.AuditActionValidateMove, string(v.Reason)).Inc()
	r.audit.LogTool(context.Background(), r.gameID, domain.AuditActionValidateMove, string(v.Reason), map[string]interface{}{
		"input": moveID,
		"move":  v.Move,
		"side":  string(side),
		"round": r.state.RoundNumber(),
	})
	if !v.Legal {
		logger.Info("move rejected", "game_id", r.gameID, "side", side, "move", v.Move, "reason", v.Reason)
	}
	return v
}

// ResolveRound is the resolve_round tool. The user move must have been
// validated this round. An empty botMove asks the opponent selector for the
// bot's move; a supplied one must have been validated for the bot. Once a
// round is resolved, repeating the call returns the same resolution and any
// other pairing is rejected.
func (r *Referee) ResolveRound(userMove, botMove string) (Resolution, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	res, err := r.resolveLocked(userMove, botMove)
	reason := game.ReasonOf(err)
	ToolCalls.WithLabelValues(domain.AuditActionResolveRound, string(reason)).Inc()
	details := map[string]interface{}{
		"user_move": userMove,
		"bot_move":  botMove,
		"round":     r.state.RoundNumber(),
	}
	if err != nil {
		details["error"] = err.Error()
		logger.Warn("resolve rejected", "game_id", r.gameID, "error", err)
	} else {
		details["outcome"] = string(res.Outcome)
		details["bot_move"] = res.BotMove
	}
	r.audit.LogTool(context.Background(), r.gameID, domain.AuditActionResolveRound, string(reason), details)
	return res, err
}

func (r *Referee) resolveLocked(userMove, botMove string) (Resolution, error) {
	if r.state.GameOver() {
		return Resolution{}, game.ErrGameAlreadyOver
	}

	user, ok := r.catalog.Lookup(userMove)
	if !ok {
		return Resolution{}, fmt.Errorf("%w: user move %q", game.ErrUnknownMove, userMove)
	}
	if !r.gate.validated[game.SideUser][user] {
		return Resolution{}, fmt.Errorf("%w: user move %s was not validated this round", game.ErrInvalidTransition, user)
	}

	if prev := r.gate.resolved; prev != nil {
		if prev.user != user {
			return Resolution{}, fmt.Errorf("%w: round %d already resolved with user move %s", game.ErrInvalidTransition, r.state.RoundNumber(), prev.user)
		}
		if strings.TrimSpace(botMove) != "" {
			if bot, ok := r.catalog.Lookup(botMove); !ok || bot != prev.bot {
				return Resolution{}, fmt.Errorf("%w: round %d already resolved with bot move %s", game.ErrInvalidTransition, r.state.RoundNumber(), prev.bot)
			}
		}
		return r.resolution(prev), nil
	}

	var bot game.Move
	if strings.TrimSpace(botMove) == "" {
		picked, err := r.selector.SelectMove(r.catalog, r.state)
		if err != nil {
			return Resolution{}, err
		}
		if v := game.ValidateMove(r.catalog, picked.String(), game.SideBot, r.state); !v.Legal {
			return Resolution{}, fmt.Errorf("%w: opponent picked %s (%s)", game.ErrInvalidTransition, picked, v.Reason)
		}
		bot = picked
		r.gate.validated[game.SideBot][bot] = true
	} else {
		if bot, ok = r.catalog.Lookup(botMove); !ok {
			return Resolution{}, fmt.Errorf("%w: bot move %q", game.ErrUnknownMove, botMove)
		}
		if !r.gate.validated[game.SideBot][bot] {
			return Resolution{}, fmt.Errorf("%w: bot move %s was not validated this round", game.ErrInvalidTransition, bot)
		}
	}

	rr := &resolvedRound{user: user, bot: bot, outcome: game.Resolve(r.catalog, user, bot)}
	r.gate.resolved = rr
	return r.resolution(rr), nil
}

func (r *Referee) resolution(rr *resolvedRound) Resolution {
	return Resolution{
		Round:    r.state.RoundNumber(),
		UserMove: rr.user.String(),
		BotMove:  rr.bot.String(),
		Outcome:  rr.outcome,
	}
}

// UpdateGameState is the update_game_state tool: it commits exactly the
// round returned by ResolveRound. On any error the game is left unchanged.
func (r *Referee) UpdateGameState(userMove, botMove string, outcome game.Outcome) (domain.Snapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, err := r.commitLocked(userMove, botMove, outcome)
	reason := game.ReasonOf(err)
	ToolCalls.WithLabelValues(domain.AuditActionUpdateGameState, string(reason)).Inc()

	details := map[string]interface{}{
		"user_move": userMove,
		"bot_move":  botMove,
		"outcome":   string(outcome),
	}
	if err != nil {
		details["error"] = err.Error()
		logger.Warn("update rejected", "game_id", r.gameID, "error", err, "reason", reason)
		r.audit.LogTool(context.Background(), r.gameID, domain.AuditActionUpdateGameState, string(reason), details)
		return domain.Snapshot{}, err
	}

	details["round"] = rec.Round
	r.audit.LogTool(context.Background(), r.gameID, domain.AuditActionUpdateGameState, string(reason), details)
	RoundOutcomes.WithLabelValues(rec.Outcome).Inc()
	logger.Info("round committed",
		"game_id", r.gameID,
		"round", rec.Round,
		"user_move", rec.UserMove,
		"bot_move", rec.BotMove,
		"outcome", rec.Outcome,
		"user_score", rec.UserScore,
		"bot_score", rec.BotScore,
	)

	if result, over := r.state.Result(); over {
		GamesFinished.WithLabelValues(string(result)).Inc()
		r.audit.LogGame(context.Background(), r.gameID, domain.AuditActionGameEnd, map[string]interface{}{
			"result":     string(result),
			"user_score": rec.UserScore,
			"bot_score":  rec.BotScore,
		})
	}

	for _, obs := range r.observers {
		obs.RoundCommitted(*rec)
	}
	return r.snapshotLocked(), nil
}

func (r *Referee) commitLocked(userMove, botMove string, outcome game.Outcome) (*domain.RoundRecord, error) {
	if r.state.GameOver() {
		return nil, game.ErrGameAlreadyOver
	}
	rr := r.gate.resolved
	if rr == nil {
		return nil, fmt.Errorf("%w: round %d has not been resolved", game.ErrInvalidTransition, r.state.RoundNumber())
	}

	user, okUser := r.catalog.Lookup(userMove)
	bot, okBot := r.catalog.Lookup(botMove)
	if !okUser || !okBot || user != rr.user || bot != rr.bot || outcome != rr.outcome {
		return nil, fmt.Errorf("%w: round %d was resolved as %s vs %s = %s",
			game.ErrInvalidTransition, r.state.RoundNumber(), rr.user, rr.bot, rr.outcome)
	}

	next, err := game.Transition(r.catalog, r.state, user, bot, outcome)
	if err != nil {
		return nil, err
	}

	rec := &domain.RoundRecord{
		ID:        uuid.New().String(),
		GameID:    r.gameID,
		Round:     r.state.RoundNumber(),
		UserMove:  user.String(),
		BotMove:   bot.String(),
		Outcome:   string(outcome),
		UserScore: next.Score(game.SideUser),
		BotScore:  next.Score(game.SideBot),
		GameOver:  next.GameOver(),
	}
	if err := r.history.Create(context.Background(), rec); err != nil {
		return nil, fmt.Errorf("record round: %w", err)
	}

	r.state = next
	r.gate = newRoundGate()
	return rec, nil
}

// Snapshot is the read-only state accessor.
func (r *Referee) Snapshot() domain.Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshotLocked()
}

func (r *Referee) snapshotLocked() domain.Snapshot {
	s := r.state
	snap := domain.Snapshot{
		GameID:       r.gameID,
		Ruleset:      r.catalog.Name(),
		RoundNumber:  s.RoundNumber(),
		RoundsPlayed: s.RoundsPlayed(),
		UserScore:    s.Score(game.SideUser),
		BotScore:     s.Score(game.SideBot),
		Ties:         s.Ties(),
		GameOver:     s.GameOver(),
		RoundLimit:   r.rules.RoundLimit,
		ScoreLimit:   r.rules.ScoreLimit,
		Remaining:    make(map[string]map[string]int, 2),
		Phase:        r.phaseLocked(),
	}
	if result, ok := s.Result(); ok {
		snap.Result = string(result)
	}
	for _, side := range []game.Side{game.SideUser, game.SideBot} {
		left := make(map[string]int)
		for _, m := range r.catalog.LimitedMoves() {
			n, _ := s.Remaining(r.catalog, side, m)
			left[m.String()] = n
		}
		snap.Remaining[string(side)] = left
	}
	return snap
}

func (r *Referee) phaseLocked() domain.Phase {
	switch {
	case r.state.GameOver():
		return domain.PhaseGameOver
	case r.gate.resolved != nil:
		return domain.PhaseResolved
	case len(r.gate.validated[game.SideUser]) > 0 || len(r.gate.validated[game.SideBot]) > 0:
		return domain.PhaseValidated
	default:
		return domain.PhaseAwaitingMove
	}
}

// History returns the committed rounds of the current game, oldest first.
func (r *Referee) History(ctx context.Context, limit int) ([]*domain.RoundRecord, error) {
	r.mu.Lock()
	gameID := r.gameID
	r.mu.Unlock()
	return r.history.GetByGame(ctx, gameID, limit)
}

// sideLabel keeps the verdict metric's side label to a fixed set.
func sideLabel(side game.Side) string {
	if !side.Valid() {
		return "invalid"
	}
	return string(side)
}
