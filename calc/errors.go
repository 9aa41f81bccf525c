package calc

import "fmt"

// NotFoundError reports a Call against a name the registry does not have.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("calc: no entry point named %q", e.Name)
}

// ArityError reports a Call with the wrong number of arguments.
type ArityError struct {
	Name string
	Want int
	Got  int
}

func (e *ArityError) Error() string {
	return fmt.Sprintf("calc: %s takes %d argument(s), got %d", e.Name, e.Want, e.Got)
}

// RegistrationError reports an invalid op given to NewRegistry.
type RegistrationError struct {
	Name   string
	Reason string
}

func (e *RegistrationError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("calc: %s", e.Reason)
	}
	return fmt.Sprintf("calc: registering %q: %s", e.Name, e.Reason)
}

// ArgumentError reports an argument that failed to parse as the scalar type
// an entry point requires, before any engine call was made.
type ArgumentError struct {
	Name string // entry point
	Arg  string // offending value
	Want string // expected form, e.g. "non-negative integer"
	Err  error
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("calc: %s: argument %q is not a %s", e.Name, e.Arg, e.Want)
}

func (e *ArgumentError) Unwrap() error {
	return e.Err
}

// PanicError wraps a panic recovered by PanicRecoveryMiddleware so callers
// see an ordinary error instead of an unwound stack.
type PanicError struct {
	Name  string
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("calc: %s panicked: %v", e.Name, e.Value)
}
