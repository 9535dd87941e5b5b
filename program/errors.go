package program

import (
	"errors"
	"fmt"
)

// Common program manager errors.
var (
	// ErrContextUnavailable is returned when no GPU device can be
	// obtained. Fatal for the surface; callers degrade to showing the
	// underlying content with no effect.
	ErrContextUnavailable = errors.New("program: gpu context unavailable")

	// ErrReleased is returned when operations are called on a released
	// program.
	ErrReleased = errors.New("program: released")
)

// CompileError reports a shader compile failure with the driver's log.
// With the closed effect catalog this is unreachable at runtime; it exists
// for development of new effects.
type CompileError struct {
	Effect string
	Log    string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("program: compiling %q: %s", e.Effect, e.Log)
}

// LinkError reports a program link failure with the driver's log.
type LinkError struct {
	Effect string
	Log    string
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("program: linking %q: %s", e.Effect, e.Log)
}
