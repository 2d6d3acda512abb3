package session

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/seantiz/abacus/internal/calc"
)

var (
	keyPressesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "abacus_key_presses_total",
			Help: "Total number of keypad presses applied to sessions.",
		},
		[]string{"kind"},
	)

	arithmeticFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "abacus_arithmetic_failures_total",
			Help: "Total number of operator presses that ended in NaN.",
		},
		[]string{"operator"},
	)

	sessionsCreatedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "abacus_sessions_created_total",
			Help: "Total number of calculator sessions created.",
		},
	)

	openStreams = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "abacus_open_display_streams",
			Help: "Number of currently subscribed display streams.",
		},
	)
)

func init() {
	prometheus.MustRegister(keyPressesTotal)
	prometheus.MustRegister(arithmeticFailuresTotal)
	prometheus.MustRegister(sessionsCreatedTotal)
	prometheus.MustRegister(openStreams)

	// Pre-initialize label combinations so they appear in /metrics from startup.
	for _, kind := range []calc.KeyKind{calc.KeyDigit, calc.KeyOperator, calc.KeyEquals, calc.KeySignToggle, calc.KeyClear} {
		keyPressesTotal.WithLabelValues(kind.String())
	}
	for _, op := range []calc.Operator{calc.Add, calc.Subtract, calc.Multiply, calc.Divide} {
		arithmeticFailuresTotal.WithLabelValues(op.String())
	}
}
