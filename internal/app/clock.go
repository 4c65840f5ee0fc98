package app

import (
	"time"

	"github.com/example/fleet/internal/ports/secondary"
)

// SystemClock reads wall time.
type SystemClock struct{}

// Now returns the current UTC time.
func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

var _ secondary.Clock = SystemClock{}
