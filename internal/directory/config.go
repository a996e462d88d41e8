// internal/directory/config.go
package directory

// Config holds directory service settings.
type Config struct {
	// EnforceCapacity rejects signups once max_participants is reached.
	EnforceCapacity bool
}

func LoadConfig() *Config {
	return &Config{EnforceCapacity: false}
}
