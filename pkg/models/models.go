package models

import (
	"time"

	"github.com/baldidon/transfermarkt-api/internal/managers"
)

// Result represents the outcome of extracting one manager profile in a batch
type Result struct {
	ID        string                  `json:"id"`
	Profile   *managers.ProfileResult `json:"profile,omitempty"`
	Err       string                  `json:"error,omitempty"`
	NotFound  bool                    `json:"not_found,omitempty"`
	Duration  time.Duration           `json:"duration"`
	Timestamp time.Time               `json:"timestamp"`
}

// Failed reports whether the extraction did not produce a profile.
func (r Result) Failed() bool {
	return r.Err != ""
}
