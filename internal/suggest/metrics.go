package suggest

import "github.com/prometheus/client_golang/prometheus"

const (
	resultOK          = "ok"
	resultError       = "error"
	resultParseError  = "parse_error"
	resultNoPredictor = "no_predictor"
)

var (
	predictorCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "wordgrid",
			Subsystem: "suggest",
			Name:      "predictor_calls_total",
			Help:      "Predictor queries by outcome",
		},
		[]string{"result"},
	)

	predictorDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "wordgrid",
			Subsystem: "suggest",
			Name:      "predictor_duration_seconds",
			Help:      "Duration of predictor queries in seconds",
			Buckets:   prometheus.DefBuckets,
		},
	)

	generationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "wordgrid",
			Subsystem: "suggest",
			Name:      "generations_total",
			Help:      "Candidate sets produced",
		},
		[]string{"kind", "mode"},
	)

	tierWordsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "wordgrid",
			Subsystem: "suggest",
			Name:      "tier_words_total",
			Help:      "Words contributed to candidate sets per cascade tier",
		},
		[]string{"tier"},
	)

	cacheRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "wordgrid",
			Subsystem: "suggest",
			Name:      "cache_requests_total",
			Help:      "Background cache requests by outcome",
		},
		[]string{"status"},
	)

	layerOverflowsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "wordgrid",
			Subsystem: "suggest",
			Name:      "layer_overflows_total",
			Help:      "Layer exclusion scopes force-cleared for exceeding the bound",
		},
	)
)

func init() {
	prometheus.MustRegister(predictorCalls, predictorDuration, generationsTotal, tierWordsTotal, cacheRequestsTotal, layerOverflowsTotal)
}

func observeGeneration(kind promptKind, mode Mode, report FillReport) {
	generationsTotal.WithLabelValues(kind.String(), mode.String()).Inc()
	for t := Tier(0); t < numTiers; t++ {
		if report[t] > 0 {
			tierWordsTotal.WithLabelValues(t.String()).Add(float64(report[t]))
		}
	}
}
