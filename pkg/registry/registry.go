// pkg/registry/registry.go
package registry

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"

	apperrors "mergington-activities/internal/common/errors"
	"mergington-activities/internal/models"
)

//go:embed default_seed.yaml
var defaultSeed []byte

var schemaLoader = gojsonschema.NewStringLoader(seedSchema)

// Default returns the built-in Mergington fixture.
func Default() (*SeedFile, error) {
	return Parse(defaultSeed)
}

// LoadRegistry reads and validates a seed file. YAML and JSON are both
// accepted since JSON is valid YAML.
func LoadRegistry(path string) (*SeedFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	seed, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return seed, nil
}

// LoadOrDefault loads path, or the built-in fixture when path is empty.
func LoadOrDefault(path string) (*SeedFile, error) {
	if path == "" {
		return Default()
	}
	return LoadRegistry(path)
}

// Parse validates data against the seed schema and decodes it.
func Parse(data []byte) (*SeedFile, error) {
	var doc interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, apperrors.NewSeedInvalidError(fmt.Sprintf("decode: %v", err))
	}

	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewGoLoader(doc))
	if err != nil {
		return nil, apperrors.NewSeedInvalidError(fmt.Sprintf("schema check: %v", err))
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return nil, apperrors.NewSeedInvalidError(strings.Join(msgs, "; "))
	}

	var seed SeedFile
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, apperrors.NewSeedInvalidError(fmt.Sprintf("decode: %v", err))
	}

	if err := Validate(&seed); err != nil {
		return nil, err
	}
	return &seed, nil
}

// Validate checks the rules the schema cannot express.
func Validate(seed *SeedFile) error {
	if len(seed.Activities) == 0 {
		return apperrors.NewSeedInvalidError("seed contains no activities")
	}

	names := make(map[string]bool, len(seed.Activities))
	for _, a := range seed.Activities {
		if a.Name == "" {
			return apperrors.NewSeedInvalidError("activity missing required field: name")
		}
		if names[a.Name] {
			return apperrors.NewSeedInvalidError(fmt.Sprintf("duplicate activity name: %s", a.Name))
		}
		names[a.Name] = true

		seen := make(map[string]bool, len(a.Participants))
		for _, p := range a.Participants {
			if seen[p] {
				return apperrors.NewSeedInvalidError(fmt.Sprintf("activity %s lists %s twice", a.Name, p))
			}
			seen[p] = true
		}
	}
	return nil
}

// Directory converts the seed into directory records keyed by name.
func (s *SeedFile) Directory() models.Activities {
	out := make(models.Activities, len(s.Activities))
	for _, a := range s.Activities {
		out[a.Name] = models.Activity{
			Description:     a.Description,
			Schedule:        a.Schedule,
			MaxParticipants: a.MaxParticipants,
			Participants:    a.Participants,
		}.Clone()
	}
	return out
}

// Find returns the index of the named activity, or -1.
func (s *SeedFile) Find(name string) int {
	for i := range s.Activities {
		if s.Activities[i].Name == name {
			return i
		}
	}
	return -1
}

// SaveRegistry writes seed to path as JSON or YAML depending on extension.
func SaveRegistry(seed *SeedFile, path string) error {
	seed.LastUpdated = time.Now().UTC().Format(time.RFC3339)

	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		data, err = json.MarshalIndent(seed, "", "  ")
	default:
		data, err = yaml.Marshal(seed)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal seed: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write seed file: %w", err)
	}
	return nil
}
