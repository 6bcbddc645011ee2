package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus metrics for the notification domain.
type Metrics struct {
	Dispatches    prometheus.Counter
	SentPrimary   prometheus.Counter
	SentSecondary prometheus.Counter
	SendFailures  prometheus.Counter
}

// New creates and registers all notification metrics.
func New() *Metrics {
	return &Metrics{
		Dispatches: promauto.NewCounter(prometheus.CounterOpts{
			Name: "member_gateway_dispatches_total",
			Help: "Total number of bulk message dispatch jobs executed",
		}),
		SentPrimary: promauto.NewCounter(prometheus.CounterOpts{
			Name: "member_gateway_messages_sent_primary_total",
			Help: "Messages delivered over the primary channel",
		}),
		SentSecondary: promauto.NewCounter(prometheus.CounterOpts{
			Name: "member_gateway_messages_sent_secondary_total",
			Help: "Messages delivered over the fallback channel",
		}),
		SendFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "member_gateway_messages_failed_total",
			Help: "Messages that failed on both channels",
		}),
	}
}
