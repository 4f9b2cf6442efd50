package model

import "fmt"

// InputError reports invalid input to an analysis or forecasting operation:
// a missing column, an empty series, a series too short for the requested
// operation, or an undefined baseline. It is always surfaced to the caller,
// never replaced by a default value.
type InputError struct {
	Msg string
}

func (e *InputError) Error() string { return e.Msg }

// ModelFittingError reports that an individual forecasting model failed to
// fit or converge. Callers recover by substituting the seasonal-naive result;
// the degradation is surfaced as a warning, not a hard failure.
type ModelFittingError struct {
	Method Method
	Err    error
}

func (e *ModelFittingError) Error() string {
	return fmt.Sprintf("model %s failed to fit: %v", e.Method, e.Err)
}

func (e *ModelFittingError) Unwrap() error { return e.Err }

// ConsistencyError reports ensemble members that disagree on horizon or
// target months. This indicates a bug in a model variant, not a data problem,
// and is fatal to the ensemble call.
type ConsistencyError struct {
	Msg string
}

func (e *ConsistencyError) Error() string { return e.Msg }
