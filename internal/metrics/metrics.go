package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	// OutcomeSuccess labels successful evaluations.
	OutcomeSuccess = "success"
	// OutcomeError labels failed evaluations.
	OutcomeError = "error"
)

var (
	evaluationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "csm",
			Name:      "evaluations_total",
			Help:      "Total number of coefficient evaluations, partitioned by strategy and outcome.",
		},
		[]string{"strategy", "outcome"},
	)

	evaluationSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "csm",
			Name:      "evaluation_seconds",
			Help:      "Coefficient evaluation latency in seconds.",
			Buckets:   []float64{1e-6, 5e-6, 1e-5, 5e-5, 1e-4, 5e-4, 1e-3, 5e-3},
		},
	)

	curveInstallsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "csm",
			Name:      "curve_installs_total",
			Help:      "Total number of decay curves installed.",
		},
	)

	rejectionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "csm",
			Name:      "rejections_total",
			Help:      "Total number of model operations rejected, partitioned by failure kind.",
		},
		[]string{"kind"},
	)
)

// Register attaches csmd collectors to the supplied Prometheus registerer.
func Register(reg prometheus.Registerer) error {
	collectors := []prometheus.Collector{
		evaluationsTotal,
		evaluationSeconds,
		curveInstallsTotal,
		rejectionsTotal,
	}

	for _, collector := range collectors {
		if err := reg.Register(collector); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); ok {
				continue
			}
			return err
		}
	}
	return nil
}

// ObserveEvaluation records an evaluation duration and outcome label for
// the given strategy.
func ObserveEvaluation(strategy string, duration time.Duration, outcome string) {
	label := outcome
	if label != OutcomeError {
		label = OutcomeSuccess
	}
	evaluationsTotal.WithLabelValues(strategy, label).Inc()
	if duration < 0 {
		duration = 0
	}
	evaluationSeconds.Observe(duration.Seconds())
}

// CurveInstalled counts a successful curve install.
func CurveInstalled() {
	curveInstallsTotal.Inc()
}

// OperationRejected counts a rejected model operation by failure kind.
func OperationRejected(kind string) {
	rejectionsTotal.WithLabelValues(kind).Inc()
}
