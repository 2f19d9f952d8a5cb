package potability

import "fmt"

// ValidationReason classifies caller-input problems.
type ValidationReason string

const (
	// MissingField means a required parameter was absent and default
	// filling was not requested.
	MissingField ValidationReason = "missing_field"
	// InvalidValue means a parameter was not a finite real number.
	InvalidValue ValidationReason = "invalid_value"
)

// ValidationError reports a problem with caller-supplied input. It is
// recoverable: the caller fixes the input and resubmits.
type ValidationError struct {
	Field  string
	Reason ValidationReason
	Detail string
}

func (e *ValidationError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("validation failed for %s: %s (%s)", e.Field, e.Reason, e.Detail)
	}
	return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Reason)
}

// ModelLoadError reports an environment problem with the model artifact:
// absent, unreadable, corrupt or incompatible. It is not recoverable at
// request time and is kept disjoint from ValidationError so operators can
// tell a bad deployment from bad user input.
type ModelLoadError struct {
	Path string
	Err  error
}

func (e *ModelLoadError) Error() string {
	return fmt.Sprintf("model load failed for %s: %v", e.Path, e.Err)
}

func (e *ModelLoadError) Unwrap() error { return e.Err }

// InferenceError reports a failure inside the classifier itself, such as a
// shape mismatch between the validator output and the model's expected
// input width. Like ModelLoadError it signals a deployment fault.
type InferenceError struct {
	Err error
}

func (e *InferenceError) Error() string {
	return fmt.Sprintf("inference failed: %v", e.Err)
}

func (e *InferenceError) Unwrap() error { return e.Err }
