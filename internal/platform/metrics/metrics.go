package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus metrics for the user domain.
type Metrics struct {
	UsersCreated prometheus.Counter
	UsersDeleted prometheus.Counter
	LoginSuccess prometheus.Counter
	LoginFailure prometheus.Counter
}

// New creates and registers all user domain metrics.
func New() *Metrics {
	return &Metrics{
		UsersCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "member_gateway_users_created_total",
			Help: "Total number of users registered in the system",
		}),
		UsersDeleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "member_gateway_users_deleted_total",
			Help: "Total number of users deleted by administrators",
		}),
		LoginSuccess: promauto.NewCounter(prometheus.CounterOpts{
			Name: "member_gateway_login_success_total",
			Help: "Total number of successful logins",
		}),
		LoginFailure: promauto.NewCounter(prometheus.CounterOpts{
			Name: "member_gateway_login_failure_total",
			Help: "Total number of failed login attempts",
		}),
	}
}
