package pipeline

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	metricSessionsStarted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "echogate_sessions_started_total",
		Help: "Total voice sessions started",
	})

	metricTranscriptsChecked = promauto.NewCounter(prometheus.CounterOpts{
		Name: "echogate_transcripts_checked_total",
		Help: "Total finalized transcripts run through the echo classifier",
	})

	metricEchoesDiscarded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "echogate_echoes_discarded_total",
		Help: "Transcripts flagged as echoes of the tutor's own speech",
	})

	metricEchoSimilarity = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "echogate_echo_similarity",
		Help:    "Similarity scores of flagged echoes",
		Buckets: prometheus.LinearBuckets(0.80, 0.02, 10),
	})

	metricBargeInsAllowed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "echogate_barge_ins_allowed_total",
		Help: "Voice-activity edges passed through as interruption requests",
	})

	metricBargeInsBlocked = promauto.NewCounter(prometheus.CounterOpts{
		Name: "echogate_barge_ins_blocked_total",
		Help: "Voice-activity edges absorbed by the tail guard",
	})
)
