package metrics

import "github.com/prometheus/client_golang/prometheus"

// Service holds all the Prometheus metrics for the application.
type Service struct {
	NotificationsSent   *prometheus.CounterVec
	NotificationsFailed *prometheus.CounterVec
	SlackNotifSent      prometheus.Counter
	SlackNotifFailed    prometheus.Counter
	ProfileLookupFailed prometheus.Counter
	SaveConflicts       prometheus.Counter
	OperationDuration   *prometheus.HistogramVec
	StartupTimeSeconds  prometheus.Gauge
}
