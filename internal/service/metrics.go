package service

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	ToolCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "referee_tool_calls_total",
			Help: "Tool facade calls by tool and result reason",
		},
		[]string{"tool", "reason"},
	)
	Verdicts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "referee_move_verdicts_total",
			Help: "Move validation verdicts by side and reason",
		},
		[]string{"side", "reason"},
	)
	RoundOutcomes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "referee_rounds_committed_total",
			Help: "Committed rounds by outcome",
		},
		[]string{"outcome"},
	)
	GamesFinished = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "referee_games_finished_total",
			Help: "Finished games by final result",
		},
		[]string{"result"},
	)
)

func init() {
	prometheus.MustRegister(ToolCalls)
	prometheus.MustRegister(Verdicts)
	prometheus.MustRegister(RoundOutcomes)
	prometheus.MustRegister(GamesFinished)
}
