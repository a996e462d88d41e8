// internal/models/activity.go
package models

// Activity is one extracurricular offering and its roster.
type Activity struct {
	Description     string   `json:"description"`
	Schedule        string   `json:"schedule"`
	MaxParticipants int      `json:"max_participants"`
	Participants    []string `json:"participants"`
}

// Clone returns a copy whose Participants slice is not shared.
// Participants is never nil in the copy so it encodes as [].
func (a Activity) Clone() Activity {
	participants := make([]string, len(a.Participants))
	copy(participants, a.Participants)
	a.Participants = participants
	return a
}

// HasParticipant reports whether email is on the roster.
func (a Activity) HasParticipant(email string) bool {
	for _, p := range a.Participants {
		if p == email {
			return true
		}
	}
	return false
}

// Activities maps activity name to record, the shape served by GET /activities.
type Activities map[string]Activity

// MessageResponse is the success body for signup and unregister.
type MessageResponse struct {
	Message string `json:"message"`
}
