package catalog

import (
	"fmt"
)

// UnknownCalendarError is returned when no calendar is registered under a name.
type UnknownCalendarError string

func (msg UnknownCalendarError) Error() string {
	return fmt.Sprintf("%s: Unknown calendar", string(msg))
}

// ErrCalendarLoad is returned when a configured calendar cannot be built.
type ErrCalendarLoad struct {
	name string
	err  error
}

func (e *ErrCalendarLoad) Error() string {
	return "Could not load calendar " + e.name + ": " + e.err.Error()
}

func (e *ErrCalendarLoad) Unwrap() error {
	return e.err
}
