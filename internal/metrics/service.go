package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		NotificationsSent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "crewboard_notifications_sent_total",
			Help: "The total number of notifications handed to the gateway successfully.",
		}, []string{"status"}),
		NotificationsFailed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "crewboard_notifications_failed_total",
			Help: "The total number of notifications that failed or timed out.",
		}, []string{"status"}),
		SlackNotifSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "crewboard_slack_messages_sent_total",
			Help: "The total number of Slack messages successfully sent.",
		}),
		SlackNotifFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "crewboard_slack_messages_failed_total",
			Help: "The total number of Slack messages that failed to send.",
		}),
		ProfileLookupFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "crewboard_profile_lookups_failed_total",
			Help: "The total number of failed availability lookups against the profile service.",
		}),
		SaveConflicts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "crewboard_activity_save_conflicts_total",
			Help: "The total number of activity saves rejected because of a version conflict.",
		}),
		OperationDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "crewboard_operation_duration_seconds",
			Help:    "The duration of roster operations.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"operation"}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "crewboard_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.NotificationsSent,
		s.NotificationsFailed,
		s.SlackNotifSent,
		s.SlackNotifFailed,
		s.ProfileLookupFailed,
		s.SaveConflicts,
		s.OperationDuration,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncNotificationSent(status string) {
	s.NotificationsSent.WithLabelValues(status).Inc()
}

func (s *Service) IncNotificationFailed(status string) {
	s.NotificationsFailed.WithLabelValues(status).Inc()
}

func (s *Service) IncSlackNotifSent() {
	s.SlackNotifSent.Inc()
}

func (s *Service) IncSlackNotifFailed() {
	s.SlackNotifFailed.Inc()
}

func (s *Service) IncProfileLookupFailed() {
	s.ProfileLookupFailed.Inc()
}

func (s *Service) IncSaveConflict() {
	s.SaveConflicts.Inc()
}

func (s *Service) ObserveOperationDuration(operation string, duration float64) {
	s.OperationDuration.WithLabelValues(operation).Observe(duration)
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}
