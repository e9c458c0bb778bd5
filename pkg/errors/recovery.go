// Panic recovery utilities. A model-fitting collaborator is caller-supplied,
// so a panic inside Fit or Predict must not take down a whole evaluation run;
// evaluators convert recovered panics into FitError values through Recover.

package errors

import (
	"fmt"
	"runtime/debug"
)

// PanicError is an error created from a recovered panic. It keeps the
// original panic value and the stack trace captured at recovery time.
type PanicError struct {
	PanicValue interface{}
	StackTrace string
	Operation  string
}

// Error implements the error interface.
func (e *PanicError) Error() string {
	return fmt.Sprintf("panic in %s: %v", e.Operation, e.PanicValue)
}

// String includes the captured stack trace.
func (e *PanicError) String() string {
	return fmt.Sprintf("panic in %s: %v\nStack trace:\n%s",
		e.Operation, e.PanicValue, e.StackTrace)
}

// NewPanicError creates a PanicError for the given operation and panic value.
func NewPanicError(operation string, panicValue interface{}) *PanicError {
	return &PanicError{
		PanicValue: panicValue,
		StackTrace: string(debug.Stack()),
		Operation:  operation,
	}
}

// Recover converts a panic into an error assigned to *err. Use with defer:
//
//	func fitOne() (err error) {
//	    defer errors.Recover(&err, "fitOne")
//	    ...
//	}
func Recover(err *error, operation string) {
	if r := recover(); r != nil {
		*err = WithStack(NewPanicError(operation, r))
	}
}
