package timer

import "errors"

var (
	// ErrNoEligibleTask means no incomplete task exists to run a work
	// session against
	ErrNoEligibleTask = errors.New("no incomplete task available")

	// ErrNoTaskSelected means incomplete tasks exist but none is selected
	ErrNoTaskSelected = errors.New("no task selected")

	// ErrNoActiveSession means an operation needed an open session and
	// none was active
	ErrNoActiveSession = errors.New("no active session")
)
