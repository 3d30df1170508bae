package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	EvaluationsSubmitted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "evaldesk",
		Name:      "evaluations_submitted_total",
		Help:      "Evaluations accepted for grading.",
	})

	EvaluationsCompleted = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "evaldesk",
		Name:      "evaluations_finished_total",
		Help:      "Evaluations that reached a terminal status.",
	}, []string{"status"})

	GradingDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "evaldesk",
		Name:      "grading_duration_seconds",
		Help:      "Wall time of the full grading pipeline.",
		Buckets:   prometheus.ExponentialBuckets(0.5, 2, 10),
	})

	LLMRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "evaldesk",
		Name:      "llm_requests_total",
		Help:      "LLM provider calls by provider and outcome.",
	}, []string{"provider", "outcome"})

	ExportsGenerated = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "evaldesk",
		Name:      "exports_generated_total",
		Help:      "Evaluation exports by format.",
	}, []string{"format"})
)
