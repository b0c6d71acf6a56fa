// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Vote outcomes
const (
	OutcomeAccepted = "accepted"
	OutcomeInvalid  = "invalid"
	OutcomeClosed   = "closed"
	OutcomeError    = "error"
)

var (
	VotesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rankpoll_votes_total",
			Help: "Vote submissions by outcome",
		},
		[]string{"outcome"},
	)

	PollActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "rankpoll_poll_active",
			Help: "1 while the poll accepts votes, 0 once it has ended",
		},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "rankpoll_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)

// RecordVote counts a submission outcome
func RecordVote(outcome string) {
	VotesTotal.WithLabelValues(outcome).Inc()
}

// SetPollActive mirrors the poll state into the gauge
func SetPollActive(active bool) {
	if active {
		PollActive.Set(1)
	} else {
		PollActive.Set(0)
	}
}

// RecordRequest observes a finished HTTP request
func RecordRequest(method, path string, status int, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, path, strconv.Itoa(status)).Observe(duration.Seconds())
}
