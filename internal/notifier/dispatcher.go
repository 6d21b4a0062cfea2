package notifier

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/crewboard/internal/metrics"
)

// Dispatcher delivers notifications in the background once the caller's mutation is persisted.
// Every delivery is bounded by a timeout. Failures are logged and counted, never returned.
type Dispatcher struct {
	gateway Notifier
	metrics metrics.Metrics
	timeout time.Duration
	slots   chan struct{}
	wg      sync.WaitGroup
}

// NewDispatcher creates a Dispatcher running at most concurrency deliveries at once.
func NewDispatcher(gateway Notifier, metrics metrics.Metrics, timeout time.Duration, concurrency int) *Dispatcher {
	if concurrency < 1 {
		concurrency = 1
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Dispatcher{
		gateway: gateway,
		metrics: metrics,
		timeout: timeout,
		slots:   make(chan struct{}, concurrency),
	}
}

// Dispatch hands n to a delivery goroutine. It blocks while all slots are busy,
// so at most concurrency goroutines exist at any time.
// The delivery does not inherit ctx's cancellation, only its dry run flag.
func (d *Dispatcher) Dispatch(ctx context.Context, n Notification) {
	if IsDryRun(ctx) {
		n.DryRun = true
	}
	d.slots <- struct{}{}
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		defer func() { <-d.slots }()
		d.deliver(n)
	}()
}

func (d *Dispatcher) deliver(n Notification) {
	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	if err := d.gateway.Notify(ctx, n); err != nil {
		d.metrics.IncNotificationFailed(string(n.Status))
		log.Error("Failed to deliver notification", "error", err, "userID", n.UserID, "activityID", n.ActivityID, "status", n.Status)
		return
	}
	d.metrics.IncNotificationSent(string(n.Status))
	log.Debug("Delivered notification", "userID", n.UserID, "activityID", n.ActivityID, "status", n.Status)
}

// Wait blocks until every dispatched notification has been attempted.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}
