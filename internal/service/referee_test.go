package service

import (
	"context"
	"errors"
	"testing"

	"rps_referee/internal/domain"
	"rps_referee/internal/game"
	"rps_referee/internal/repository"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

// scriptedSelector replays a fixed list of bot moves.
type scriptedSelector struct {
	moves []game.Move
	next  int
}

func (s *scriptedSelector) SelectMove(c *game.Catalog, st *game.State) (game.Move, error) {
	if st.GameOver() {
		return game.MoveNone, game.ErrGameAlreadyOver
	}
	m := s.moves[s.next%len(s.moves)]
	s.next++
	return m, nil
}

type recordingObserver struct {
	rounds []domain.RoundRecord
}

func (o *recordingObserver) RoundCommitted(rec domain.RoundRecord) {
	o.rounds = append(o.rounds, rec)
}

func newTestReferee(t *testing.T, rules game.Rules, bot ...game.Move) *Referee {
	t.Helper()
	c, err := game.NewFactory().CreateCatalog(game.RulesetClassic)
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	if len(bot) == 0 {
		bot = []game.Move{game.Rock}
	}
	r, err := NewReferee(c, rules, &scriptedSelector{moves: bot}, repository.NewGameHistoryRepository(), NewAuditService())
	if err != nil {
		t.Fatalf("new referee: %v", err)
	}
	return r
}

// playRound drives one full validate -> resolve -> update cycle with an
// explicit bot move.
func playRound(t *testing.T, r *Referee, user, bot string) domain.Snapshot {
	t.Helper()
	if v := r.ValidateMove(user, game.SideUser); !v.Legal {
		t.Fatalf("validate user %s: %+v", user, v)
	}
	if v := r.ValidateMove(bot, game.SideBot); !v.Legal {
		t.Fatalf("validate bot %s: %+v", bot, v)
	}
	res, err := r.ResolveRound(user, bot)
	if err != nil {
		t.Fatalf("resolve %s vs %s: %v", user, bot, err)
	}
	snap, err := r.UpdateGameState(res.UserMove, res.BotMove, res.Outcome)
	if err != nil {
		t.Fatalf("update %s vs %s: %v", user, bot, err)
	}
	return snap
}

func TestBombRoundThenLimitExhausted(t *testing.T) {
	r := newTestReferee(t, game.DefaultRules())

	snap := playRound(t, r, "bomb", "rock")
	if snap.RoundNumber != 2 || snap.UserScore != 1 || snap.BotScore != 0 {
		t.Fatalf("after bomb round: %+v", snap)
	}
	if snap.Remaining["user"]["bomb"] != 0 || snap.Remaining["bot"]["bomb"] != 1 {
		t.Fatalf("remaining = %v", snap.Remaining)
	}

	v := r.ValidateMove("bomb", game.SideUser)
	if v.Legal || v.Reason != game.ReasonLimitExhausted {
		t.Fatalf("second bomb verdict = %+v", v)
	}
}

func TestTieRound(t *testing.T) {
	r := newTestReferee(t, game.DefaultRules())
	snap := playRound(t, r, "rock", "rock")
	if snap.RoundNumber != 2 || snap.UserScore != 0 || snap.BotScore != 0 || snap.Ties != 1 {
		t.Fatalf("after tie: %+v", snap)
	}
	if snap.Phase != domain.PhaseAwaitingMove {
		t.Fatalf("phase = %s", snap.Phase)
	}
}

func TestGameEndsAfterRoundLimit(t *testing.T) {
	r := newTestReferee(t, game.Rules{RoundLimit: 3})
	obs := &recordingObserver{}
	r.Subscribe(obs)

	playRound(t, r, "rock", "scissors")
	playRound(t, r, "paper", "scissors")
	snap := playRound(t, r, "rock", "rock")

	if !snap.GameOver || snap.Phase != domain.PhaseGameOver || snap.Result != string(game.FinalDraw) {
		t.Fatalf("final snapshot: %+v", snap)
	}
	if len(obs.rounds) != 3 || !obs.rounds[2].GameOver {
		t.Fatalf("observer saw %+v", obs.rounds)
	}

	v := r.ValidateMove("rock", game.SideUser)
	if v.Legal || v.Reason != game.ReasonGameAlreadyOver {
		t.Fatalf("verdict after game over = %+v", v)
	}
	if _, err := r.ResolveRound("rock", ""); !errors.Is(err, game.ErrGameAlreadyOver) {
		t.Fatalf("resolve after game over: %v", err)
	}
	if _, err := r.UpdateGameState("rock", "rock", game.OutcomeTie); !errors.Is(err, game.ErrGameAlreadyOver) {
		t.Fatalf("update after game over: %v", err)
	}

	hist, err := r.History(context.Background(), 0)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(hist) != 3 || hist[0].Outcome != string(game.OutcomeUserWins) {
		t.Fatalf("history = %+v", hist)
	}
}

func TestResolvePicksBotMoveWhenEmpty(t *testing.T) {
	r := newTestReferee(t, game.DefaultRules(), game.Paper, game.Scissors)

	r.ValidateMove("rock", game.SideUser)
	res, err := r.ResolveRound("rock", "")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if res.BotMove != "paper" || res.Outcome != game.OutcomeBotWins || res.Round != 1 {
		t.Fatalf("resolution = %+v", res)
	}

	// repeating the call must not reroll the bot move
	again, err := r.ResolveRound("rock", "")
	if err != nil || again != res {
		t.Fatalf("repeat resolve = %+v, %v", again, err)
	}

	snap, err := r.UpdateGameState("rock", "paper", game.OutcomeBotWins)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if snap.BotScore != 1 {
		t.Fatalf("snapshot = %+v", snap)
	}
}

func TestOutOfOrderCallsAreRejected(t *testing.T) {
	r := newTestReferee(t, game.DefaultRules())
	before := r.Snapshot()

	if _, err := r.ResolveRound("rock", "rock"); !errors.Is(err, game.ErrInvalidTransition) {
		t.Fatalf("resolve before validate: %v", err)
	}
	if _, err := r.UpdateGameState("rock", "rock", game.OutcomeTie); !errors.Is(err, game.ErrInvalidTransition) {
		t.Fatalf("update before resolve: %v", err)
	}

	r.ValidateMove("rock", game.SideUser)
	r.ValidateMove("scissors", game.SideBot)
	if _, err := r.ResolveRound("rock", "scissors"); err != nil {
		t.Fatalf("resolve: %v", err)
	}

	cases := []struct {
		name      string
		user, bot string
		outcome   game.Outcome
	}{
		{"wrong outcome", "rock", "scissors", game.OutcomeBotWins},
		{"different bot move", "rock", "paper", game.OutcomeBotWins},
		{"unknown move", "rock", "laser", game.OutcomeUserWins},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := r.UpdateGameState(tc.user, tc.bot, tc.outcome); !errors.Is(err, game.ErrInvalidTransition) {
				t.Fatalf("err = %v; want ErrInvalidTransition", err)
			}
		})
	}

	after := r.Snapshot()
	if after.RoundNumber != before.RoundNumber || after.UserScore != 0 || after.Phase != domain.PhaseResolved {
		t.Fatalf("state changed after rejected updates: %+v", after)
	}

	if _, err := r.ResolveRound("rock", "paper"); !errors.Is(err, game.ErrInvalidTransition) {
		t.Fatalf("re-resolve with another bot move: %v", err)
	}
}

func TestUnvalidatedBotMoveRejected(t *testing.T) {
	r := newTestReferee(t, game.DefaultRules())
	r.ValidateMove("rock", game.SideUser)
	if _, err := r.ResolveRound("rock", "paper"); !errors.Is(err, game.ErrInvalidTransition) {
		t.Fatalf("err = %v", err)
	}
	if _, err := r.ResolveRound("rock", "laser"); !errors.Is(err, game.ErrUnknownMove) {
		t.Fatalf("err = %v", err)
	}
}

func TestValidateDoesNotMutateGame(t *testing.T) {
	r := newTestReferee(t, game.DefaultRules())
	before := r.Snapshot()
	for i := 0; i < 3; i++ {
		r.ValidateMove("bomb", game.SideUser)
		r.ValidateMove("laser", game.SideBot)
		r.ValidateMove("rock", game.Side("referee"))
	}
	after := r.Snapshot()
	if after.RoundNumber != before.RoundNumber || after.Remaining["user"]["bomb"] != 1 {
		t.Fatalf("validate mutated state: %+v", after)
	}
	if after.Phase != domain.PhaseValidated {
		t.Fatalf("phase = %s", after.Phase)
	}
}

func TestForcedRestartResets(t *testing.T) {
	r := newTestReferee(t, game.DefaultRules())
	first := r.Snapshot().GameID
	playRound(t, r, "bomb", "paper")

	if err := r.Restart(true); err != nil {
		t.Fatalf("restart: %v", err)
	}
	snap := r.Snapshot()
	if snap.GameID == first || snap.RoundNumber != 1 || snap.UserScore != 0 || snap.Remaining["user"]["bomb"] != 1 {
		t.Fatalf("after reset: %+v", snap)
	}
	hist, _ := r.History(context.Background(), 0)
	if len(hist) != 0 {
		t.Fatalf("new game should start with empty history, got %d", len(hist))
	}
}

func TestRestartRefusesGameInProgress(t *testing.T) {
	r := newTestReferee(t, game.Rules{RoundLimit: 2})

	if err := r.Restart(false); err != nil {
		t.Fatalf("restart before any round: %v", err)
	}
	playRound(t, r, "rock", "paper")
	inProgress := r.Snapshot()

	if err := r.Restart(false); !errors.Is(err, game.ErrInvalidTransition) {
		t.Fatalf("restart mid-game: %v", err)
	}
	if snap := r.Snapshot(); snap.GameID != inProgress.GameID || snap.BotScore != 1 {
		t.Fatalf("refused restart changed the game: %+v", snap)
	}

	playRound(t, r, "rock", "rock")
	if err := r.Restart(false); err != nil {
		t.Fatalf("restart after game over: %v", err)
	}
	if snap := r.Snapshot(); snap.GameID == inProgress.GameID || snap.GameOver {
		t.Fatalf("after restart: %+v", snap)
	}
}

func TestForcedRestartIsAudited(t *testing.T) {
	r := newTestReferee(t, game.DefaultRules())
	playRound(t, r, "bomb", "rock")

	if err := r.Restart(true); err != nil {
		t.Fatalf("forced restart: %v", err)
	}
	trail := r.AuditTrail(2)
	if len(trail) != 2 || trail[0].Action != domain.AuditActionGameAbandon || trail[1].Action != domain.AuditActionGameStart {
		t.Fatalf("audit tail = %+v", trail)
	}
	if trail[0].Details["user_score"] != 1 {
		t.Fatalf("abandon details = %v", trail[0].Details)
	}
}

func TestInvalidSidesShareOneVerdictSeries(t *testing.T) {
	r := newTestReferee(t, game.DefaultRules())
	before := testutil.CollectAndCount(Verdicts)
	for _, side := range []string{"xA", "xB", "xC", "referee"} {
		r.ValidateMove("rock", game.Side(side))
	}
	if grew := testutil.CollectAndCount(Verdicts) - before; grew > 1 {
		t.Fatalf("invalid sides added %d verdict series; want at most 1", grew)
	}
	if n := testutil.ToFloat64(Verdicts.WithLabelValues("invalid", string(game.ReasonInvalidSide))); n < 4 {
		t.Fatalf("invalid side count = %v", n)
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	r := newTestReferee(t, game.DefaultRules())
	snap := r.Snapshot()
	snap.Remaining["user"]["bomb"] = 42
	if got := r.Snapshot().Remaining["user"]["bomb"]; got != 1 {
		t.Fatalf("snapshot aliased live state: %d", got)
	}
}
