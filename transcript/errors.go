package transcript

import (
	"errors"
	"fmt"
)

// ErrMalformedTimeline is returned when an alignable annotation points at a
// time slot that has no value. It aborts the whole conversion.
var ErrMalformedTimeline = errors.New("malformed timeline")

// TimelineError locates the annotation whose time slot could not be resolved.
type TimelineError struct {
	Tier       string
	Annotation string
	Slot       string
}

func (e *TimelineError) Error() string {
	return fmt.Sprintf("%v: tier %q annotation %q references unknown time slot %q",
		ErrMalformedTimeline, e.Tier, e.Annotation, e.Slot)
}

func (e *TimelineError) Is(target error) bool { return target == ErrMalformedTimeline }
