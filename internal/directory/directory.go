// internal/directory/directory.go
package directory

import (
	"sync"

	apperrors "mergington-activities/internal/common/errors"
	"mergington-activities/internal/models"
)

// Directory holds every activity in memory. The set of names is fixed at
// construction; each record has its own lock so operations on different
// activities never contend.
type Directory struct {
	entries map[string]*entry
}

type entry struct {
	mu       sync.Mutex
	activity models.Activity
}

// New builds a Directory from seed. The seed is copied.
func New(seed models.Activities) *Directory {
	entries := make(map[string]*entry, len(seed))
	for name, a := range seed {
		entries[name] = &entry{activity: a.Clone()}
	}
	return &Directory{entries: entries}
}

// Snapshot returns a deep copy of every activity.
func (d *Directory) Snapshot() models.Activities {
	out := make(models.Activities, len(d.entries))
	for name, e := range d.entries {
		e.mu.Lock()
		out[name] = e.activity.Clone()
		e.mu.Unlock()
	}
	return out
}

// Get returns a copy of the named activity.
func (d *Directory) Get(name string) (models.Activity, bool) {
	e, ok := d.entries[name]
	if !ok {
		return models.Activity{}, false
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.activity.Clone(), true
}

// Len returns the number of activities.
func (d *Directory) Len() int {
	return len(d.entries)
}

// Add appends email to the roster and returns the new roster size.
// When enforceCapacity is set a full roster rejects the signup.
func (d *Directory) Add(name, email string, enforceCapacity bool) (int, error) {
	e, ok := d.entries[name]
	if !ok {
		return 0, apperrors.NewActivityNotFoundError(name)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.activity.HasParticipant(email) {
		return len(e.activity.Participants), apperrors.NewAlreadySignedUpError(name, email)
	}
	if enforceCapacity && len(e.activity.Participants) >= e.activity.MaxParticipants {
		return len(e.activity.Participants), apperrors.NewActivityFullError(name, e.activity.MaxParticipants)
	}

	e.activity.Participants = append(e.activity.Participants, email)
	return len(e.activity.Participants), nil
}

// Remove deletes email from the roster, keeping the order of the others,
// and returns the new roster size.
func (d *Directory) Remove(name, email string) (int, error) {
	e, ok := d.entries[name]
	if !ok {
		return 0, apperrors.NewActivityNotFoundError(name)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	participants := e.activity.Participants
	for i, p := range participants {
		if p == email {
			e.activity.Participants = append(participants[:i:i], participants[i+1:]...)
			return len(e.activity.Participants), nil
		}
	}
	return len(participants), apperrors.NewNotSignedUpError(name, email)
}
