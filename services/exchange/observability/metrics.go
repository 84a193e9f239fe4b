// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package observability holds the Prometheus metrics of the exchange
// service. Metrics register against the default registry at package init
// and are exposed on /metrics by the router.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// knownVoteTypes guards the vote_type label against cardinality
// explosion from unvalidated input.
var knownVoteTypes = map[string]bool{
	"upvote":   true,
	"downvote": true,
}

var (
	questionsCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "aleutian",
			Subsystem: "exchange",
			Name:      "questions_created_total",
			Help:      "Total questions created",
		},
	)

	answersCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "aleutian",
			Subsystem: "exchange",
			Name:      "answers_created_total",
			Help:      "Total answers created",
		},
	)

	// votesTotal counts applied votes.
	//
	// Labels:
	//   - vote_type: "upvote" or "downvote"
	votesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "aleutian",
			Subsystem: "exchange",
			Name:      "votes_total",
			Help:      "Total votes applied by vote type",
		},
		[]string{"vote_type"},
	)

	// notificationsEmittedTotal counts successfully written notifications.
	//
	// Labels:
	//   - type: notification type, e.g. "new_answer"
	notificationsEmittedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "aleutian",
			Subsystem: "exchange",
			Name:      "notifications_emitted_total",
			Help:      "Total notifications emitted by type",
		},
		[]string{"type"},
	)

	// assistRequestsTotal counts assist pipeline calls.
	//
	// Labels:
	//   - operation: "enhance_question", "enhance_answer", "suggest_answer",
	//     or "analyze_code"
	//   - status: "success", "failure", or "unavailable"
	assistRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "aleutian",
			Subsystem: "exchange",
			Name:      "assist_requests_total",
			Help:      "Total assist pipeline requests by operation and status",
		},
		[]string{"operation", "status"},
	)

	// assistRequestDurationSeconds measures assist pipeline latency,
	// including the upstream model call.
	assistRequestDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "aleutian",
			Subsystem: "exchange",
			Name:      "assist_request_duration_seconds",
			Help:      "Assist request duration in seconds",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20},
		},
		[]string{"operation"},
	)
)

// RecordQuestionCreated counts one created question.
func RecordQuestionCreated() {
	questionsCreatedTotal.Inc()
}

// RecordAnswerCreated counts one created answer.
func RecordAnswerCreated() {
	answersCreatedTotal.Inc()
}

// RecordVote counts one applied vote. Unrecognized types are recorded as
// "unknown" to protect label cardinality.
func RecordVote(voteType string) {
	if !knownVoteTypes[voteType] {
		voteType = "unknown"
	}
	votesTotal.WithLabelValues(voteType).Inc()
}

// RecordNotification counts one emitted notification.
func RecordNotification(notificationType string) {
	notificationsEmittedTotal.WithLabelValues(notificationType).Inc()
}

// RecordAssistRequest counts one assist pipeline call.
func RecordAssistRequest(operation, status string) {
	assistRequestsTotal.WithLabelValues(operation, status).Inc()
}

// ObserveAssistDuration records the latency of one assist pipeline call.
func ObserveAssistDuration(operation string, d time.Duration) {
	assistRequestDurationSeconds.WithLabelValues(operation).Observe(d.Seconds())
}
