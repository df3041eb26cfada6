package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Domain counters incremented by the interaction engines.
var (
	VotesCast = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ritim_poll_votes_total",
			Help: "Total number of successfully committed poll votes",
		},
	)

	ReactionToggles = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ritim_reaction_toggles_total",
			Help: "Total number of committed like/bookmark toggles",
		},
		[]string{"kind"},
	)

	MessagesSent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ritim_messages_sent_total",
			Help: "Total number of direct messages stored",
		},
	)

	NotificationsEmitted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ritim_notifications_emitted_total",
			Help: "Total number of notifications fanned out",
		},
		[]string{"kind"},
	)

	TxRetries = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ritim_storage_tx_retries_total",
			Help: "Total number of serialization-conflict transaction retries",
		},
	)
)
