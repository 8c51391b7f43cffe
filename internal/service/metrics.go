package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	oracleAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tradedesk_oracle_attempts_total",
			Help: "Allocation oracle calls by outcome",
		},
		[]string{"outcome"},
	)

	allocationSuggestions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tradedesk_allocation_suggestions_total",
			Help: "Reconciled allocation suggestions, by whether they had to be scaled",
		},
		[]string{"scaled"},
	)

	rejectedSuggestionEntries = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tradedesk_rejected_suggestion_entries_total",
			Help: "Suggestion entries dropped while reconciling",
		},
	)

	allocationsConfirmed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tradedesk_allocations_confirmed_total",
			Help: "Confirmed allocations by source",
		},
		[]string{"source"},
	)
)
