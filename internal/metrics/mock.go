package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu                  sync.Mutex
	notificationsSent   map[string]int
	notificationsFailed map[string]int
	slackNotifSent      int
	slackNotifFailed    int
	profileLookupFailed int
	saveConflicts       int
	operations          map[string]int
	startupTime         float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		notificationsSent:   make(map[string]int),
		notificationsFailed: make(map[string]int),
		operations:          make(map[string]int),
	}
}

func (m *Mock) IncNotificationSent(status string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notificationsSent[status]++
}

func (m *Mock) IncNotificationFailed(status string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notificationsFailed[status]++
}

func (m *Mock) IncSlackNotifSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifSent++
}

func (m *Mock) IncSlackNotifFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifFailed++
}

func (m *Mock) IncProfileLookupFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profileLookupFailed++
}

func (m *Mock) IncSaveConflict() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saveConflicts++
}

func (m *Mock) ObserveOperationDuration(operation string, duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.operations[operation]++
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

// NotificationsSent returns how many notifications with the given status were sent.
func (m *Mock) NotificationsSent(status string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.notificationsSent[status]
}

// NotificationsFailed returns how many notifications with the given status failed.
func (m *Mock) NotificationsFailed(status string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.notificationsFailed[status]
}

// SlackNotifSent returns the number of times IncSlackNotifSent was called.
func (m *Mock) SlackNotifSent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifSent
}

// SlackNotifFailed returns the number of times IncSlackNotifFailed was called.
func (m *Mock) SlackNotifFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifFailed
}

// ProfileLookupFailed returns the number of times IncProfileLookupFailed was called.
func (m *Mock) ProfileLookupFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.profileLookupFailed
}

// SaveConflicts returns the number of times IncSaveConflict was called.
func (m *Mock) SaveConflicts() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saveConflicts
}

// Operations returns how many durations were observed for the operation.
func (m *Mock) Operations(operation string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.operations[operation]
}
