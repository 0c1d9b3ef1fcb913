package manager

import "github.com/prometheus/client_golang/prometheus"

var (
	sessionsGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "wordgrid",
		Subsystem: "manager",
		Name:      "sessions",
		Help:      "Live suggestion sessions",
	})

	evictionsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "wordgrid",
		Subsystem: "manager",
		Name:      "evictions_total",
		Help:      "Sessions evicted for inactivity",
	})

	admissionRejections = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "wordgrid",
		Subsystem: "manager",
		Name:      "admission_rejections_total",
		Help:      "Foreground generations rejected after waiting for a slot",
	})
)

func init() {
	prometheus.MustRegister(sessionsGauge, evictionsTotal, admissionRejections)
}
