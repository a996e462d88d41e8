// internal/models/roster_event.go
package models

const (
	EventParticipantSignedUp     = "participant.signed_up"
	EventParticipantUnregistered = "participant.unregistered"
)

// RosterEvent describes a single roster change.
type RosterEvent struct {
	ID               string `json:"id"`
	Type             string `json:"type"`
	Activity         string `json:"activity"`
	Email            string `json:"email"`
	ParticipantCount int    `json:"participant_count"`
	OccurredAt       string `json:"occurred_at"` // RFC3339, UTC
}
