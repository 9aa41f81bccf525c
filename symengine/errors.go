package symengine

import (
	"errors"
	"fmt"
)

// Status is the closed set of result codes the native cwrapper API reports.
// Raw integer codes never leave this package; every non-OK status is wrapped
// into an EngineError at the call site.
type Status int32

const (
	StatusOK             Status = 0
	StatusRuntimeError   Status = 1
	StatusDivByZero      Status = 2
	StatusNotImplemented Status = 3
	StatusDomainError    Status = 4
	StatusParseError     Status = 5
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusRuntimeError:
		return "runtime error"
	case StatusDivByZero:
		return "division by zero"
	case StatusNotImplemented:
		return "not implemented"
	case StatusDomainError:
		return "domain error"
	case StatusParseError:
		return "parse error"
	default:
		return fmt.Sprintf("status %d", int32(s))
	}
}

// errInteriorNUL rejects text that cannot cross the C string boundary.
var errInteriorNUL = errors.New("text contains an interior NUL byte")

// EngineError is a native call that completed with a non-success status.
// It distinguishes "operation undefined for this input" (domain, division by
// zero, parse) from engine-internal failures.
type EngineError struct {
	Op     string // cwrapper symbol, e.g. "basic_div"
	Status Status
}

func (e *EngineError) Error() string {
	return fmt.Sprintf("symengine: %s failed: %s", e.Op, e.Status)
}

// ParseError is input text the native parser rejected, or text that was
// invalid before ever reaching the parser.
type ParseError struct {
	Input string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("symengine: cannot parse %q: %v", e.Input, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// AllocError is a native constructor that returned a null handle, meaning the
// allocator bridge reported exhaustion. A null handle is never used; the
// construction fails instead.
type AllocError struct {
	Op string
}

func (e *AllocError) Error() string {
	return fmt.Sprintf("symengine: %s: native allocation failed", e.Op)
}

// ShapeError is a matrix operation whose operand dimensions are incompatible,
// or a constructor whose element count does not match rows*cols. Shapes are
// checked host-side before the native call so the engine never indexes out of
// bounds.
type ShapeError struct {
	Op           string
	RowsA, ColsA int
	RowsB, ColsB int
}

func (e *ShapeError) Error() string {
	if e.RowsB == 0 && e.ColsB == 0 {
		return fmt.Sprintf("symengine: %s: invalid shape %dx%d", e.Op, e.RowsA, e.ColsA)
	}
	return fmt.Sprintf("symengine: %s: incompatible shapes %dx%d and %dx%d",
		e.Op, e.RowsA, e.ColsA, e.RowsB, e.ColsB)
}

// BoundsError is an element access outside a matrix.
type BoundsError struct {
	Row, Col   int
	Rows, Cols int
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("symengine: element (%d,%d) out of bounds for %dx%d matrix",
		e.Row, e.Col, e.Rows, e.Cols)
}

// ErrClosed is returned when a handle is used after Close.
var ErrClosed = errors.New("symengine: handle is closed")

// checkText rejects strings that cannot be represented as C strings.
func checkText(s string) error {
	for i := 0; i < len(s); i++ {
		if s[i] == 0 {
			return errInteriorNUL
		}
	}
	return nil
}

// call invokes a status-returning native function and maps the result code.
func call(eng Engine, op string, args ...uint64) error {
	code, err := eng.Call(op, args...)
	if err != nil {
		return fmt.Errorf("symengine: %s: %w", op, err)
	}
	if s := Status(int32(uint32(code))); s != StatusOK {
		return &EngineError{Op: op, Status: s}
	}
	return nil
}
