package notifier

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	apperrors "stockflow/internal/errors"
	"stockflow/internal/logger"
)

const defaultDeliveryTimeout = 30 * time.Second

// Dispatcher delivers alerts in the background. Each alert is attempted once;
// a successful delivery marks the notification as sent, a failure is only logged.
type Dispatcher struct {
	notifier Notifier
	marker   SentMarker
	logger   *zap.Logger
	timeout  time.Duration
	wg       sync.WaitGroup
}

// NewDispatcher creates a dispatcher. A non-positive timeout uses 30s.
func NewDispatcher(notifier Notifier, marker SentMarker, log *zap.Logger, timeout time.Duration) *Dispatcher {
	if timeout <= 0 {
		timeout = defaultDeliveryTimeout
	}
	return &Dispatcher{
		notifier: notifier,
		marker:   marker,
		logger:   logger.OrNop(log),
		timeout:  timeout,
	}
}

// Enabled reports whether alerts will be delivered at all.
func (d *Dispatcher) Enabled() bool {
	return d != nil && d.notifier != nil
}

// Dispatch starts delivery of alert and returns immediately.
func (d *Dispatcher) Dispatch(alert Alert) {
	if !d.Enabled() {
		return
	}
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		d.deliver(alert)
	}()
}

// Wait blocks until every dispatched alert has finished.
func (d *Dispatcher) Wait() {
	if d == nil {
		return
	}
	d.wg.Wait()
}

func (d *Dispatcher) deliver(alert Alert) {
	// Detached from the triggering request, which may already be finished.
	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	log := d.logger.With(
		zap.Uint("notification_id", alert.NotificationID),
		zap.String("recipient", alert.Recipient),
	)

	if err := d.notifier.Send(ctx, alert); err != nil {
		log.Warn("alert delivery failed", zap.Error(fmt.Errorf("%w: %v", apperrors.ErrDeliveryFailure, err)))
		return
	}

	if err := d.marker.MarkSent(ctx, alert.NotificationID); err != nil {
		log.Error("mark notification sent", zap.Error(err))
		return
	}
	log.Info("alert delivered")
}
