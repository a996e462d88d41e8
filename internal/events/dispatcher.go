// Package events delivers roster changes to external sinks.
package events

import (
	"context"
	"time"

	apperrors "mergington-activities/internal/common/errors"
	"mergington-activities/internal/common/logger"
	"mergington-activities/internal/common/metrics"
	"mergington-activities/internal/models"
)

// Sink is one destination for roster events.
type Sink interface {
	Name() string
	Publish(ctx context.Context, event models.RosterEvent) error
}

// Dispatcher fans an event out to every sink in turn. A failing sink is
// logged and counted; it never fails the directory operation.
type Dispatcher struct {
	sinks   []Sink
	timeout time.Duration
	logger  logger.Logger
}

func NewDispatcher(timeout time.Duration, log logger.Logger, sinks ...Sink) *Dispatcher {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Dispatcher{
		sinks:   sinks,
		timeout: timeout,
		logger:  log.WithFields(map[string]interface{}{"component": "events"}),
	}
}

// Sinks returns the names of the configured sinks.
func (d *Dispatcher) Sinks() []string {
	names := make([]string, 0, len(d.sinks))
	for _, s := range d.sinks {
		names = append(names, s.Name())
	}
	return names
}

// Publish delivers event to every sink. The request context only
// contributes values; delivery is bounded by the dispatcher timeout.
func (d *Dispatcher) Publish(ctx context.Context, event models.RosterEvent) {
	if len(d.sinks) == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), d.timeout)
	defer cancel()

	for _, sink := range d.sinks {
		if err := sink.Publish(ctx, event); err != nil {
			stdErr := apperrors.NewEventPublishFailedError(sink.Name(), err)
			metrics.EventSinkFailuresTotal.WithLabelValues(sink.Name()).Inc()
			d.logger.Warn("roster event not delivered", map[string]interface{}{
				"sink":      sink.Name(),
				"eventId":   event.ID,
				"eventType": event.Type,
				"activity":  event.Activity,
				"errorCode": string(stdErr.Code),
				"details":   stdErr.Details,
			})
			continue
		}
		d.logger.Debug("roster event delivered", map[string]interface{}{
			"sink":    sink.Name(),
			"eventId": event.ID,
		})
	}
}
