package domain

import (
	"errors"
	"fmt"
)

// ErrStageOrder is returned when a field is written outside its owning stage.
var ErrStageOrder = errors.New("stage written out of order")

// ErrTerminated is returned when stepping a run that already reached the done state.
var ErrTerminated = errors.New("pipeline already terminated")

// ErrIncomplete is returned when a result is requested before the run reached the done state.
var ErrIncomplete = errors.New("pipeline has not finished")

// ErrRunNotFound is returned when a run ID cannot be found in the archive.
var ErrRunNotFound = errors.New("run not found")

// ErrArchiveDisabled is returned when looking up a run while no archive is configured.
var ErrArchiveDisabled = errors.New("run archive is disabled")

// ErrInvalidRequest is returned when a request is rejected before any stage runs.
var ErrInvalidRequest = errors.New("invalid request")

// StageOrderError reports which stage attempted a write and which one was expected.
type StageOrderError struct {
	Expected Stage
	Got      Stage
}

func (e *StageOrderError) Error() string {
	return fmt.Sprintf("%s: expected %q, got %q", ErrStageOrder, e.Expected, e.Got)
}

func (e *StageOrderError) Unwrap() error {
	return ErrStageOrder
}

// StageError wraps the failure of a single stage. The run is aborted when it occurs.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("stage %s failed: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// Cause returns the message of the error raised inside a stage,
// or the error's own message when it did not come from a stage.
func Cause(err error) string {
	if err == nil {
		return ""
	}
	var se *StageError
	if errors.As(err, &se) && se.Err != nil {
		return se.Err.Error()
	}
	return err.Error()
}
