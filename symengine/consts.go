package symengine

import "fmt"

// Constant enumerates the named constants the native engine can construct.
type Constant int

const (
	Zero Constant = iota
	One
	MinusOne
	ImaginaryUnit
	Pi
	E
	EulerGamma
	Catalan
	GoldenRatio
	Infinity
	NegInfinity
	ComplexInfinity
	NaN
)

// constantSymbols maps each constant to its native constructor. Constructors
// here return no status; they cannot fail once the target handle exists.
var constantSymbols = map[Constant]string{
	Zero:            "basic_const_zero",
	One:             "basic_const_one",
	MinusOne:        "basic_const_minus_one",
	ImaginaryUnit:   "basic_const_I",
	Pi:              "basic_const_pi",
	E:               "basic_const_E",
	EulerGamma:      "basic_const_EulerGamma",
	Catalan:         "basic_const_Catalan",
	GoldenRatio:     "basic_const_GoldenRatio",
	Infinity:        "basic_const_infinity",
	NegInfinity:     "basic_const_neginfinity",
	ComplexInfinity: "basic_const_complex_infinity",
	NaN:             "basic_const_nan",
}

// NewConstant constructs a named constant.
func NewConstant(eng Engine, k Constant) (*Expr, error) {
	op, ok := constantSymbols[k]
	if !ok {
		return nil, fmt.Errorf("symengine: unknown constant %d", int(k))
	}
	e, err := newBasic(eng)
	if err != nil {
		return nil, err
	}
	if _, err := eng.Call(op, uint64(e.ptr)); err != nil {
		e.Close()
		return nil, err
	}
	return e, nil
}
