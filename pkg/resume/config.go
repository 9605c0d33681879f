package resume

import (
	"time"

	"github.com/kairohq/internexplore_backend/config"
)

// Config holds resume parser client settings.
type Config struct {
	Enabled        bool
	Endpoint       string
	APIKey         string
	TimeoutSeconds int
}

// DefaultConfig returns sensible defaults for the parser client.
func DefaultConfig() Config {
	return Config{
		Enabled:        false,
		TimeoutSeconds: 10,
	}
}

// Timeout returns the request timeout as a duration. The parser is a
// best-effort collaborator, so the bound is short.
func (c Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// FromCentralConfig converts central config.ResumeParserConfig to package Config
func FromCentralConfig(c config.ResumeParserConfig) Config {
	return Config{
		Enabled:        c.Enabled,
		Endpoint:       c.Endpoint,
		APIKey:         c.APIKey,
		TimeoutSeconds: c.TimeoutSeconds,
	}
}
