package scheduler

import (
	"errors"
	"fmt"
)

// ErrNoSections means the snapshot could not produce a single section.
var ErrNoSections = errors.New("scheduler: no sections could be generated")

// ErrAmbiguousTerm means the snapshot spans several terms and no term filter was given.
var ErrAmbiguousTerm = errors.New("scheduler: snapshot spans multiple terms")

// ConfigurationError reports a malformed or out-of-range input record.
// The offending record is skipped; the rest of the run continues.
type ConfigurationError struct {
	Entity  string `json:"entity"`
	Key     string `json:"key"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

func (e ConfigurationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s %s: %s", e.Entity, e.Key, e.Message)
	}
	return fmt.Sprintf("%s %s: %s %s", e.Entity, e.Key, e.Field, e.Message)
}
