// internal/events/audit.go
package events

import (
	"context"
	"database/sql"
	"fmt"

	"mergington-activities/internal/models"
)

const createAuditTable = `
CREATE TABLE IF NOT EXISTS roster_audit_log (
	event_id          UUID PRIMARY KEY,
	event_type        TEXT NOT NULL,
	activity          TEXT NOT NULL,
	email             TEXT NOT NULL,
	participant_count INTEGER NOT NULL,
	occurred_at       TIMESTAMPTZ NOT NULL
)`

// AuditSink appends every roster change to a Postgres table. The
// directory itself stays in memory; this is a history, not a store.
type AuditSink struct {
	db *sql.DB
}

func NewAuditSink(db *sql.DB) *AuditSink {
	return &AuditSink{db: db}
}

func (s *AuditSink) Name() string { return "audit" }

// EnsureSchema creates the audit table if it does not exist.
func (s *AuditSink) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, createAuditTable); err != nil {
		return fmt.Errorf("create roster_audit_log: %w", err)
	}
	return nil
}

func (s *AuditSink) Publish(ctx context.Context, event models.RosterEvent) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO roster_audit_log (
			event_id, event_type, activity, email, participant_count, occurred_at
		) VALUES ($1, $2, $3, $4, $5, $6)`,
		event.ID,
		event.Type,
		event.Activity,
		event.Email,
		event.ParticipantCount,
		event.OccurredAt,
	)
	if err != nil {
		return fmt.Errorf("audit insert: %w", err)
	}
	return nil
}
