package symengine

import "math"

// Expr is an owning handle over one native symbolic value. Every operation
// returns a fresh handle and leaves its receiver untouched; handles are never
// shared or aliased. Close releases the native object; the first call frees,
// later calls are no-ops, so a deferred Close after an explicit one never
// reaches the engine twice.
type Expr struct {
	eng    Engine
	ptr    Ptr
	closed bool
}

// newBasic allocates a fresh native value and wraps it. A null native handle
// means the allocator bridge is exhausted; the construction fails and the
// null is never used.
func newBasic(eng Engine) (*Expr, error) {
	ptr, err := eng.Call("basic_new_heap")
	if err != nil {
		return nil, err
	}
	if ptr == 0 {
		return nil, &AllocError{Op: "basic_new_heap"}
	}
	return &Expr{eng: eng, ptr: Ptr(ptr)}, nil
}

// Close releases the underlying native object. Safe to call more than once;
// only the first call reaches the engine.
func (e *Expr) Close() error {
	if e == nil || e.closed {
		return nil
	}
	e.closed = true
	_, err := e.eng.Call("basic_free_heap", uint64(e.ptr))
	return err
}

func (e *Expr) check() error {
	if e == nil || e.closed {
		return ErrClosed
	}
	return nil
}

// Parse hands text to the native parser and wraps the result. Malformed text
// and text with an interior NUL byte fail with a ParseError.
func Parse(eng Engine, text string) (*Expr, error) {
	if err := checkText(text); err != nil {
		return nil, &ParseError{Input: text, Err: err}
	}
	e, err := newBasic(eng)
	if err != nil {
		return nil, err
	}
	str, err := eng.NewString(text)
	if err != nil {
		e.Close()
		return nil, err
	}
	defer eng.FreeString(str)
	if err := call(eng, "basic_parse", uint64(e.ptr), uint64(str)); err != nil {
		e.Close()
		return nil, &ParseError{Input: text, Err: err}
	}
	return e, nil
}

// Symbol creates a named symbolic variable.
func Symbol(eng Engine, name string) (*Expr, error) {
	if err := checkText(name); err != nil {
		return nil, &ParseError{Input: name, Err: err}
	}
	e, err := newBasic(eng)
	if err != nil {
		return nil, err
	}
	str, err := eng.NewString(name)
	if err != nil {
		e.Close()
		return nil, err
	}
	defer eng.FreeString(str)
	if err := call(eng, "symbol_set", uint64(e.ptr), uint64(str)); err != nil {
		e.Close()
		return nil, err
	}
	return e, nil
}

// Integer creates an integer literal.
func Integer(eng Engine, i int64) (*Expr, error) {
	return construct(eng, "integer_set_si", uint64(i))
}

// IntegerFromString creates an arbitrary-precision integer from its decimal
// text form.
func IntegerFromString(eng Engine, s string) (*Expr, error) {
	if err := checkText(s); err != nil {
		return nil, &ParseError{Input: s, Err: err}
	}
	e, err := newBasic(eng)
	if err != nil {
		return nil, err
	}
	str, err := eng.NewString(s)
	if err != nil {
		e.Close()
		return nil, err
	}
	defer eng.FreeString(str)
	if err := call(eng, "integer_set_str", uint64(e.ptr), uint64(str)); err != nil {
		e.Close()
		return nil, &ParseError{Input: s, Err: err}
	}
	return e, nil
}

// Rational creates the rational literal num/den.
func Rational(eng Engine, num, den int64) (*Expr, error) {
	return construct(eng, "rational_set_si", uint64(num), uint64(den))
}

// Real creates a double-precision real literal.
func Real(eng Engine, d float64) (*Expr, error) {
	return construct(eng, "real_double_set_d", math.Float64bits(d))
}

// Clone deep-duplicates the underlying native object. Handles are exclusively
// owned, so sharing one value between two owners requires a clone.
func (e *Expr) Clone() (*Expr, error) {
	if err := e.check(); err != nil {
		return nil, err
	}
	r, err := newBasic(e.eng)
	if err != nil {
		return nil, err
	}
	if err := call(e.eng, "basic_assign", uint64(r.ptr), uint64(e.ptr)); err != nil {
		r.Close()
		return nil, err
	}
	return r, nil
}

// construct allocates a fresh native value and fills it with a
// status-returning native constructor.
func construct(eng Engine, op string, args ...uint64) (*Expr, error) {
	e, err := newBasic(eng)
	if err != nil {
		return nil, err
	}
	if err := call(eng, op, append([]uint64{uint64(e.ptr)}, args...)...); err != nil {
		e.Close()
		return nil, err
	}
	return e, nil
}

// unary wraps the result of a one-input native transformation.
func (e *Expr) unary(op string) (*Expr, error) {
	if err := e.check(); err != nil {
		return nil, err
	}
	r, err := newBasic(e.eng)
	if err != nil {
		return nil, err
	}
	if err := call(e.eng, op, uint64(r.ptr), uint64(e.ptr)); err != nil {
		r.Close()
		return nil, err
	}
	return r, nil
}

// binary wraps the result of a two-input native transformation.
func (e *Expr) binary(op string, other *Expr) (*Expr, error) {
	if err := e.check(); err != nil {
		return nil, err
	}
	if err := other.check(); err != nil {
		return nil, err
	}
	r, err := newBasic(e.eng)
	if err != nil {
		return nil, err
	}
	if err := call(e.eng, op, uint64(r.ptr), uint64(e.ptr), uint64(other.ptr)); err != nil {
		r.Close()
		return nil, err
	}
	return r, nil
}

// Arithmetic.

func (e *Expr) Add(o *Expr) (*Expr, error) { return e.binary("basic_add", o) }
func (e *Expr) Sub(o *Expr) (*Expr, error) { return e.binary("basic_sub", o) }
func (e *Expr) Mul(o *Expr) (*Expr, error) { return e.binary("basic_mul", o) }
func (e *Expr) Div(o *Expr) (*Expr, error) { return e.binary("basic_div", o) }
func (e *Expr) Pow(o *Expr) (*Expr, error) { return e.binary("basic_pow", o) }
func (e *Expr) Neg() (*Expr, error) { return e.unary("basic_neg") }
func (e *Expr) Abs() (*Expr, error) { return e.unary("basic_abs") }

// Expand multiplies out products and powers into expanded form.
func (e *Expr) Expand() (*Expr, error) { return e.unary("basic_expand") }

// Diff differentiates with respect to sym. The engine reports a failure when
// sym is not a symbol.
func (e *Expr) Diff(sym *Expr) (*Expr, error) { return e.binary("basic_diff", sym) }

// Subs substitutes to for every occurrence of from.
func (e *Expr) Subs(from, to *Expr) (*Expr, error) {
	if err := e.check(); err != nil {
		return nil, err
	}
	if err := from.check(); err != nil {
		return nil, err
	}
	if err := to.check(); err != nil {
		return nil, err
	}
	r, err := newBasic(e.eng)
	if err != nil {
		return nil, err
	}
	if err := call(e.eng, "basic_subs2", uint64(r.ptr), uint64(e.ptr), uint64(from.ptr), uint64(to.ptr)); err != nil {
		r.Close()
		return nil, err
	}
	return r, nil
}

// EvalF numerically evaluates to the given bit precision. real selects the
// real domain; pass false when complex values may appear.
func (e *Expr) EvalF(bits uint32, real bool) (*Expr, error) {
	if err := e.check(); err != nil {
		return nil, err
	}
	r, err := newBasic(e.eng)
	if err != nil {
		return nil, err
	}
	domain := uint64(0)
	if real {
		domain = 1
	}
	if err := call(e.eng, "basic_evalf", uint64(r.ptr), uint64(e.ptr), uint64(bits), domain); err != nil {
		r.Close()
		return nil, err
	}
	return r, nil
}

// NumerDenom splits the expression into numerator and denominator. Both
// results are fresh handles owned by the caller.
func (e *Expr) NumerDenom() (numer, denom *Expr, err error) {
	if err := e.check(); err != nil {
		return nil, nil, err
	}
	numer, err = newBasic(e.eng)
	if err != nil {
		return nil, nil, err
	}
	denom, err = newBasic(e.eng)
	if err != nil {
		numer.Close()
		return nil, nil, err
	}
	if err := call(e.eng, "basic_as_numer_denom", uint64(numer.ptr), uint64(denom.ptr), uint64(e.ptr)); err != nil {
		numer.Close()
		denom.Close()
		return nil, nil, err
	}
	return numer, denom, nil
}

// Coeff extracts the coefficient of sym**n.
func (e *Expr) Coeff(sym, n *Expr) (*Expr, error) {
	if err := e.check(); err != nil {
		return nil, err
	}
	if err := sym.check(); err != nil {
		return nil, err
	}
	if err := n.check(); err != nil {
		return nil, err
	}
	r, err := newBasic(e.eng)
	if err != nil {
		return nil, err
	}
	if err := call(e.eng, "basic_coeff", uint64(r.ptr), uint64(e.ptr), uint64(sym.ptr), uint64(n.ptr)); err != nil {
		r.Close()
		return nil, err
	}
	return r, nil
}

// Stringification. Each form is a pure read producing a new host string.

// String returns the default text form, or "<closed>" / "<error>" when the
// handle cannot be read; use Text when the error matters.
func (e *Expr) String() string {
	s, err := e.Text()
	if err != nil {
		if err == ErrClosed {
			return "<closed>"
		}
		return "<error>"
	}
	return s
}

// Text returns the default text form.
func (e *Expr) Text() (string, error) { return e.render("basic_str") }
func (e *Expr) LaTeX() (string, error) { return e.render("basic_str_latex") }
func (e *Expr) MathML() (string, error) { return e.render("basic_str_mathml") }
func (e *Expr) CCode() (string, error) { return e.render("basic_str_ccode") }
func (e *Expr) JSCode() (string, error) { return e.render("basic_str_jscode") }
func (e *Expr) JuliaCode() (string, error) { return e.render("basic_str_julia") }

// render reads a native-rendered string and frees the native copy before
// returning.
func (e *Expr) render(op string) (string, error) {
	if err := e.check(); err != nil {
		return "", err
	}
	ptr, err := e.eng.Call(op, uint64(e.ptr))
	if err != nil {
		return "", err
	}
	if ptr == 0 {
		return "", &AllocError{Op: op}
	}
	s, err := e.eng.ReadString(Ptr(ptr))
	e.eng.Call("basic_str_free", ptr) //nolint:errcheck // release of a native string cannot be retried
	return s, err
}
