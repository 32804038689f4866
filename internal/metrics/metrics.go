// Package metrics holds the Prometheus instruments for the booking
// lifecycle. HTTP-level metrics live in the middleware package; these
// counters track domain events regardless of transport.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	bookingsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "shareit",
			Name:      "bookings_created_total",
			Help:      "Count of reservations created in the pending state.",
		},
	)

	ownerDecisions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "shareit",
			Name:      "owner_decisions_total",
			Help:      "Count of owner approve/decline decisions over pending bookings.",
		},
		[]string{"decision"},
	)

	commentsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "shareit",
			Name:      "comments_created_total",
			Help:      "Count of comments left after completed bookings.",
		},
	)
)

// Register registers the booking metrics with the default registry
// (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(bookingsCreated, ownerDecisions, commentsCreated)
	})
}

func IncBookingCreated() {
	bookingsCreated.Inc()
}

func IncOwnerDecision(decision string) {
	ownerDecisions.WithLabelValues(decision).Inc()
}

func IncCommentCreated() {
	commentsCreated.Inc()
}
