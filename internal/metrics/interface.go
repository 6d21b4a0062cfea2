package metrics

// Metrics defines the interface for collecting application metrics.
// This decouples the application from the specific metrics implementation (e.g., Prometheus).
type Metrics interface {
	IncNotificationSent(status string)
	IncNotificationFailed(status string)
	IncSlackNotifSent()
	IncSlackNotifFailed()
	IncProfileLookupFailed()
	IncSaveConflict()
	ObserveOperationDuration(operation string, duration float64)
	SetStartupTime(duration float64)
}
