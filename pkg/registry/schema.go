// pkg/registry/schema.go
package registry

// SeedFile is the fixture that populates the activity directory at startup.
type SeedFile struct {
	Version     string     `json:"version" yaml:"version"`
	LastUpdated string     `json:"lastUpdated,omitempty" yaml:"lastUpdated,omitempty"`
	Activities  []Activity `json:"activities" yaml:"activities"`
}

type Activity struct {
	Name            string   `json:"name" yaml:"name"`
	Description     string   `json:"description" yaml:"description"`
	Schedule        string   `json:"schedule" yaml:"schedule"`
	MaxParticipants int      `json:"max_participants" yaml:"max_participants"`
	Participants    []string `json:"participants,omitempty" yaml:"participants,omitempty"`
}

// seedSchema is the JSON Schema every seed document must satisfy.
const seedSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["version", "activities"],
  "properties": {
    "version": {"type": "string", "minLength": 1},
    "lastUpdated": {"type": "string"},
    "activities": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["name", "description", "schedule", "max_participants"],
        "additionalProperties": false,
        "properties": {
          "name": {"type": "string", "minLength": 1},
          "description": {"type": "string"},
          "schedule": {"type": "string"},
          "max_participants": {"type": "integer", "minimum": 0},
          "participants": {
            "type": "array",
            "items": {"type": "string", "minLength": 1},
            "uniqueItems": true
          }
        }
      }
    }
  }
}`
