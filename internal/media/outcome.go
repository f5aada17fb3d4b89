package media

import (
	"errors"
	"fmt"
)

// ErrSkipped marks an artifact that was not attempted because a step it
// depends on failed.
var ErrSkipped = errors.New("skipped: prerequisite artifact missing")

// Outcome is the result of one derivation step: the path it wrote, or the
// reason there is no artifact.
type Outcome struct {
	Path string
	Err  error
}

// Success returns an Outcome for an artifact written at path.
func Success(path string) Outcome {
	return Outcome{Path: path}
}

// Failure returns an Outcome for an artifact that could not be produced.
func Failure(err error) Outcome {
	if err == nil {
		err = errors.New("unknown failure")
	}
	return Outcome{Err: err}
}

// Skipped returns an Outcome for a step suppressed because of a failed
// dependency.
func Skipped(reason string) Outcome {
	return Outcome{Err: fmt.Errorf("%w (%s)", ErrSkipped, reason)}
}

// OK reports whether the artifact exists.
func (o Outcome) OK() bool {
	return o.Err == nil && o.Path != ""
}

// status is the metric label for o.
func (o Outcome) status() string {
	switch {
	case o.OK():
		return "success"
	case errors.Is(o.Err, ErrSkipped):
		return "skipped"
	default:
		return "failed"
	}
}
