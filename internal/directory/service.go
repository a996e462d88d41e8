// internal/directory/service.go
package directory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	apperrors "mergington-activities/internal/common/errors"
	"mergington-activities/internal/common/logger"
	"mergington-activities/internal/common/metrics"
	"mergington-activities/internal/models"
)

const (
	OperationSignup     = "signup"
	OperationUnregister = "unregister"
)

// EventPublisher receives roster events after a successful change.
type EventPublisher interface {
	Publish(ctx context.Context, event models.RosterEvent)
}

// Service implements list, signup and unregister over a Directory.
type Service struct {
	config    *Config
	dir       *Directory
	publisher EventPublisher
	logger    logger.Logger
	now       func() time.Time
}

// NewService wires the directory service. publisher may be nil.
func NewService(config *Config, dir *Directory, publisher EventPublisher, log logger.Logger) *Service {
	if config == nil {
		config = LoadConfig()
	}
	s := &Service{
		config:    config,
		dir:       dir,
		publisher: publisher,
		logger:    log.WithFields(map[string]interface{}{"component": "directory"}),
		now:       time.Now,
	}
	for name, a := range dir.Snapshot() {
		metrics.Participants.WithLabelValues(name).Set(float64(len(a.Participants)))
	}
	return s
}

// ListActivities returns every activity with its current roster.
func (s *Service) ListActivities(_ context.Context) models.Activities {
	return s.dir.Snapshot()
}

// Signup adds email to the named activity.
func (s *Service) Signup(ctx context.Context, activity, email string) (*models.MessageResponse, error) {
	count, err := s.dir.Add(activity, email, s.config.EnforceCapacity)
	if err != nil {
		s.recordFailure(OperationSignup, activity, email, err)
		return nil, err
	}

	metrics.SignupsTotal.WithLabelValues(activity).Inc()
	metrics.Participants.WithLabelValues(activity).Set(float64(count))
	s.logger.Info("participant signed up", map[string]interface{}{
		"activity":         activity,
		"email":            email,
		"participantCount": count,
	})
	s.publish(ctx, models.EventParticipantSignedUp, activity, email, count)

	return &models.MessageResponse{Message: fmt.Sprintf("Signed up %s for %s", email, activity)}, nil
}

// Unregister removes email from the named activity.
func (s *Service) Unregister(ctx context.Context, activity, email string) (*models.MessageResponse, error) {
	count, err := s.dir.Remove(activity, email)
	if err != nil {
		s.recordFailure(OperationUnregister, activity, email, err)
		return nil, err
	}

	metrics.UnregistersTotal.WithLabelValues(activity).Inc()
	metrics.Participants.WithLabelValues(activity).Set(float64(count))
	s.logger.Info("participant unregistered", map[string]interface{}{
		"activity":         activity,
		"email":            email,
		"participantCount": count,
	})
	s.publish(ctx, models.EventParticipantUnregistered, activity, email, count)

	return &models.MessageResponse{Message: fmt.Sprintf("Unregistered %s from %s", email, activity)}, nil
}

func (s *Service) publish(ctx context.Context, eventType, activity, email string, count int) {
	if s.publisher == nil {
		return
	}
	s.publisher.Publish(ctx, models.RosterEvent{
		ID:               uuid.New().String(),
		Type:             eventType,
		Activity:         activity,
		Email:            email,
		ParticipantCount: count,
		OccurredAt:       s.now().UTC().Format(time.RFC3339),
	})
}

func (s *Service) recordFailure(operation, activity, email string, err error) {
	stdErr := apperrors.Normalize(err)
	metrics.DirectoryFailuresTotal.WithLabelValues(operation, string(stdErr.Code)).Inc()
	s.logger.Debug("directory operation rejected", map[string]interface{}{
		"operation": operation,
		"activity":  activity,
		"email":     email,
		"errorCode": string(stdErr.Code),
	})
}
