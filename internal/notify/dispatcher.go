package notify

import (
	"context"
	"sync"
	"time"

	"admissions/internal/logging"
	"admissions/internal/metrics"
)

const defaultSendTimeout = 30 * time.Second

// Dispatcher delivers messages best-effort. Failures are logged and counted, never returned.
type Dispatcher struct {
	notifier Notifier
	metrics  *metrics.Domain
	timeout  time.Duration
	wg       sync.WaitGroup
}

func NewDispatcher(n Notifier, m *metrics.Domain) *Dispatcher {
	return &Dispatcher{notifier: n, metrics: m, timeout: defaultSendTimeout}
}

// Dispatch sends msgs in order and reports how many failed.
func (d *Dispatcher) Dispatch(ctx context.Context, msgs []Message) int {
	failed := 0
	for _, msg := range msgs {
		if msg.To == "" {
			continue
		}
		sendCtx, cancel := context.WithTimeout(ctx, d.timeout)
		err := d.notifier.Send(sendCtx, msg)
		cancel()
		if err != nil {
			failed++
			d.metrics.Notification(string(msg.Kind), metrics.ResultFailed)
			logging.Error("notify", "send_failed", err, map[string]any{
				"to":   msg.To,
				"kind": string(msg.Kind),
			})
			continue
		}
		d.metrics.Notification(string(msg.Kind), metrics.ResultSent)
	}
	return failed
}

// Go dispatches msgs in the background. The context keeps its values but not its
// cancellation, so a finished request does not abort delivery.
func (d *Dispatcher) Go(ctx context.Context, msgs []Message) {
	if len(msgs) == 0 {
		return
	}
	detached := context.WithoutCancel(ctx)
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		d.Dispatch(detached, msgs)
	}()
}

// Wait blocks until background deliveries finish or ctx is done.
func (d *Dispatcher) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
