package events

import (
	"context"
	"errors"
	"sync"

	"mergington-activities/internal/models"
)

func testEvent() models.RosterEvent {
	return models.RosterEvent{
		ID:               "3f1c2a8e-6d0b-4c1e-9a57-0b7f1e2d4c11",
		Type:             models.EventParticipantSignedUp,
		Activity:         "Chess Club",
		Email:            "newstudent@mergington.edu",
		ParticipantCount: 3,
		OccurredAt:       "2026-10-17T09:00:00Z",
	}
}

type fakeSink struct {
	name string
	err  error

	mu       sync.Mutex
	received []models.RosterEvent
	ctxErrs  []error
}

func (f *fakeSink) Name() string { return f.name }

func (f *fakeSink) Publish(ctx context.Context, event models.RosterEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.received = append(f.received, event)
	f.ctxErrs = append(f.ctxErrs, ctx.Err())
	return f.err
}

var errSinkDown = errors.New("sink down")
