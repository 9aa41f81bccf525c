package symengine

// Predicates are pure reads: no native allocation beyond the boolean result.

// predicate invokes a native function returning a C truth value.
func (e *Expr) predicate(op string, args ...uint64) (bool, error) {
	if err := e.check(); err != nil {
		return false, err
	}
	v, err := e.eng.Call(op, append([]uint64{uint64(e.ptr)}, args...)...)
	if err != nil {
		return false, err
	}
	return v != 0, nil
}

// Equal reports structural equality with o.
func (e *Expr) Equal(o *Expr) (bool, error) {
	if err := o.check(); err != nil {
		return false, err
	}
	return e.predicate("basic_eq", uint64(o.ptr))
}

// NotEqual reports structural inequality with o.
func (e *Expr) NotEqual(o *Expr) (bool, error) {
	if err := o.check(); err != nil {
		return false, err
	}
	return e.predicate("basic_neq", uint64(o.ptr))
}

// HasSymbol reports whether sym occurs anywhere in the expression.
func (e *Expr) HasSymbol(sym *Expr) (bool, error) {
	if err := sym.check(); err != nil {
		return false, err
	}
	return e.predicate("basic_has_symbol", uint64(sym.ptr))
}

// Numeric predicates. These apply to number-valued expressions.

func (e *Expr) IsZero() (bool, error) { return e.predicate("number_is_zero") }
func (e *Expr) IsNegative() (bool, error) { return e.predicate("number_is_negative") }
func (e *Expr) IsPositive() (bool, error) { return e.predicate("number_is_positive") }
func (e *Expr) IsComplexNumber() (bool, error) { return e.predicate("number_is_complex") }

// Type tests.

func (e *Expr) IsNumber() (bool, error) { return e.predicate("is_a_Number") }
func (e *Expr) IsInteger() (bool, error) { return e.predicate("is_a_Integer") }
func (e *Expr) IsRational() (bool, error) { return e.predicate("is_a_Rational") }
func (e *Expr) IsSymbol() (bool, error) { return e.predicate("is_a_Symbol") }
func (e *Expr) IsComplexType() (bool, error) { return e.predicate("is_a_Complex") }
func (e *Expr) IsRealDouble() (bool, error) { return e.predicate("is_a_RealDouble") }
