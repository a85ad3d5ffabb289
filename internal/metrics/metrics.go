// Package metrics exposes Prometheus counters for scheduling engine outcomes.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	generationRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rosteriq",
			Name:      "generation_runs_total",
			Help:      "Count of schedule generation runs by result.",
		},
		[]string{"result"},
	)

	shiftsGenerated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "rosteriq",
			Name:      "shifts_generated_total",
			Help:      "Count of shifts created by generation runs.",
		},
	)

	uncoveredSlots = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "rosteriq",
			Name:      "uncovered_slots_total",
			Help:      "Count of slot combinations generation could not fill at all.",
		},
	)

	publishDecisions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rosteriq",
			Name:      "publish_decisions_total",
			Help:      "Count of publication attempts by decision.",
		},
		[]string{"decision"},
	)

	publishConflicts = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "rosteriq",
			Name:      "publish_conflicts_total",
			Help:      "Count of cross-schedule shift conflicts found during publication checks.",
		},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(generationRuns, shiftsGenerated, uncoveredSlots, publishDecisions, publishConflicts)
	})
}

func IncGenerationRun(result string) {
	generationRuns.WithLabelValues(result).Inc()
}

func AddShiftsGenerated(n int) {
	shiftsGenerated.Add(float64(n))
}

func AddUncoveredSlots(n int) {
	uncoveredSlots.Add(float64(n))
}

func IncPublishDecision(decision string) {
	publishDecisions.WithLabelValues(decision).Inc()
}

func AddPublishConflicts(n int) {
	publishConflicts.Add(float64(n))
}
