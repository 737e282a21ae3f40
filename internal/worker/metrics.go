package worker

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

//nolint:gochecknoglobals // prometheus collectors are process-wide
var (
	pollsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dealscout_polls_total",
		Help: "Completed backend poll attempts.",
	})
	pollErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dealscout_poll_errors_total",
		Help: "Backend polls that failed or timed out.",
	})
	newDealsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dealscout_new_deals_total",
		Help: "Deals seen for the first time in a polling session.",
	})
	alertsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dealscout_alerts_total",
		Help: "Alerts emitted for deals clearing the profit threshold.",
	})
	stalePollsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dealscout_stale_polls_total",
		Help: "Poll responses discarded because the filter changed mid-flight.",
	})
)
