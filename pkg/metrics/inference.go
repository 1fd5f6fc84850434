package metrics

import "github.com/prometheus/client_golang/prometheus"

const (
	OutcomeOK               = "ok"
	OutcomeNotFound         = "not_found"
	OutcomeModelUnavailable = "model_unavailable"
)

var (
	// Latency of the similarity lookup
	RecommendLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "rfm_recommend_latency_seconds",
		Help:    "Latency of similar-product lookups",
		Buckets: []float64{.00001, .00005, .0001, .0005, .001, .005, .01},
	})

	RecommendRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "rfm_recommend_requests_total",
		Help: "Similar-product lookups by outcome",
	}, []string{"outcome"})

	// Latency of the segment prediction
	PredictLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "rfm_predict_latency_seconds",
		Help:    "Latency of customer segment predictions",
		Buckets: []float64{.00001, .00005, .0001, .0005, .001, .005, .01},
	})

	PredictRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "rfm_predict_requests_total",
		Help: "Customer segment predictions by outcome",
	}, []string{"outcome"})

	SegmentAssignments = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "rfm_segment_assignments_total",
		Help: "Predicted customers per cluster id",
	}, []string{"cluster"})
)

func Init() {
	prometheus.MustRegister(
		RecommendLatency,
		RecommendRequests,
		PredictLatency,
		PredictRequests,
		SegmentAssignments,
	)
}
