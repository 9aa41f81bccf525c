package symengine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/symwasm/symwasm/symengine/enginetest"
)

func TestParse_RoundTrip(t *testing.T) {
	eng := enginetest.New()

	e, err := Parse(eng, "x**2 + 2*x + 1")
	require.NoError(t, err)
	defer e.Close()

	text, err := e.Text()
	require.NoError(t, err)
	assert.Equal(t, "x**2 + 2*x + 1", text)
}

func TestParse_Malformed(t *testing.T) {
	eng := enginetest.New()

	_, err := Parse(eng, "sin(x")
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "sin(x", perr.Input)

	// The failed construction must not leak the pre-allocated handle.
	assert.False(t, eng.Leaks())
}

func TestParse_InteriorNUL(t *testing.T) {
	eng := enginetest.New()

	_, err := Parse(eng, "x\x00y")
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.ErrorIs(t, err, errInteriorNUL)
	assert.False(t, eng.Leaks())

	_, err = Symbol(eng, "a\x00b")
	require.ErrorAs(t, err, &perr)
	assert.False(t, eng.Leaks())
}

func TestLiteralConstructors(t *testing.T) {
	eng := enginetest.New()

	tests := []struct {
		name string
		make func() (*Expr, error)
		want string
	}{
		{"integer", func() (*Expr, error) { return Integer(eng, 5) }, "5"},
		{"negative integer", func() (*Expr, error) { return Integer(eng, -12) }, "-12"},
		{"big integer", func() (*Expr, error) { return IntegerFromString(eng, "123456789012345678901234567890") }, "123456789012345678901234567890"},
		{"rational", func() (*Expr, error) { return Rational(eng, 3, 4) }, "3/4"},
		{"real", func() (*Expr, error) { return Real(eng, 2.5) }, "2.5"},
		{"symbol", func() (*Expr, error) { return Symbol(eng, "x") }, "x"},
		{"pi", func() (*Expr, error) { return NewConstant(eng, Pi) }, "pi"},
		{"nan", func() (*Expr, error) { return NewConstant(eng, NaN) }, "nan"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := tt.make()
			require.NoError(t, err)
			defer e.Close()

			text, err := e.Text()
			require.NoError(t, err)
			assert.Equal(t, tt.want, text)
		})
	}
}

func TestIntegerFromString_Malformed(t *testing.T) {
	eng := enginetest.New()

	_, err := IntegerFromString(eng, "12x4")
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.False(t, eng.Leaks())
}

func TestClose_Idempotent(t *testing.T) {
	eng := enginetest.New()

	e, err := Integer(eng, 1)
	require.NoError(t, err)

	require.NoError(t, e.Close())
	require.NoError(t, e.Close(), "second close must be a no-op")
	assert.Equal(t, 1, eng.BasicFrees, "native free must run exactly once")
}

func TestUseAfterClose(t *testing.T) {
	eng := enginetest.New()

	e, err := Integer(eng, 1)
	require.NoError(t, err)
	require.NoError(t, e.Close())

	_, err = e.Neg()
	assert.ErrorIs(t, err, ErrClosed)
	_, err = e.Text()
	assert.ErrorIs(t, err, ErrClosed)
	assert.Equal(t, "<closed>", e.String())
}

func TestTransformations_ProduceFreshHandles(t *testing.T) {
	eng := enginetest.New()

	x, err := Symbol(eng, "x")
	require.NoError(t, err)
	defer x.Close()
	y, err := Symbol(eng, "y")
	require.NoError(t, err)
	defer y.Close()

	sum, err := x.Add(y)
	require.NoError(t, err)
	defer sum.Close()

	// The receiver is untouched.
	text, err := x.Text()
	require.NoError(t, err)
	assert.Equal(t, "x", text)

	text, err = sum.Text()
	require.NoError(t, err)
	assert.Equal(t, "x + y", text)
}

func TestClone_IndependentOwnership(t *testing.T) {
	eng := enginetest.New()

	x, err := Symbol(eng, "x")
	require.NoError(t, err)

	c, err := x.Clone()
	require.NoError(t, err)
	require.NoError(t, x.Close())

	// The clone survives its source.
	text, err := c.Text()
	require.NoError(t, err)
	assert.Equal(t, "x", text)

	require.NoError(t, c.Close())
	assert.False(t, eng.Leaks())
}

func TestNumerDenom(t *testing.T) {
	eng := enginetest.New()

	q, err := Rational(eng, 3, 4)
	require.NoError(t, err)
	defer q.Close()

	n, d, err := q.NumerDenom()
	require.NoError(t, err)
	defer n.Close()
	defer d.Close()

	nt, err := n.Text()
	require.NoError(t, err)
	dt, err := d.Text()
	require.NoError(t, err)
	assert.Equal(t, "3", nt)
	assert.Equal(t, "4", dt)
}

func TestEngineError_StatusMapping(t *testing.T) {
	eng := enginetest.New()
	eng.FailStatus = map[string]int32{"basic_div": int32(StatusDivByZero)}

	a, err := Integer(eng, 1)
	require.NoError(t, err)
	defer a.Close()
	b, err := Integer(eng, 0)
	require.NoError(t, err)
	defer b.Close()

	_, err = a.Div(b)
	var eerr *EngineError
	require.ErrorAs(t, err, &eerr)
	assert.Equal(t, StatusDivByZero, eerr.Status)
	assert.Equal(t, "basic_div", eerr.Op)
}

func TestAllocFailure_IsFatalConstructionError(t *testing.T) {
	eng := enginetest.New()
	eng.FailAllocsAfter = 1

	a, err := Integer(eng, 1)
	require.NoError(t, err)
	defer a.Close()

	_, err = a.Neg()
	var aerr *AllocError
	require.ErrorAs(t, err, &aerr)
}

func TestPredicates(t *testing.T) {
	eng := enginetest.New()

	zero, err := Integer(eng, 0)
	require.NoError(t, err)
	defer zero.Close()
	neg, err := Integer(eng, -3)
	require.NoError(t, err)
	defer neg.Close()
	x, err := Symbol(eng, "x")
	require.NoError(t, err)
	defer x.Close()

	isZero, err := zero.IsZero()
	require.NoError(t, err)
	assert.True(t, isZero)

	isNeg, err := neg.IsNegative()
	require.NoError(t, err)
	assert.True(t, isNeg)

	eq, err := zero.Equal(neg)
	require.NoError(t, err)
	assert.False(t, eq)

	isSym, err := x.IsSymbol()
	require.NoError(t, err)
	assert.True(t, isSym)

	isNum, err := x.IsNumber()
	require.NoError(t, err)
	assert.False(t, isNum)
}

func TestNoLeak_MixedWorkload(t *testing.T) {
	eng := enginetest.New()

	x, err := Symbol(eng, "x")
	require.NoError(t, err)
	e, err := Parse(eng, "x**3 + 2*x")
	require.NoError(t, err)

	d, err := e.Diff(x)
	require.NoError(t, err)
	ex, err := d.Expand()
	require.NoError(t, err)
	s, err := ex.Sin()
	require.NoError(t, err)

	for _, h := range []*Expr{x, e, d, ex, s} {
		require.NoError(t, h.Close())
	}

	assert.Equal(t, eng.BasicAllocs, eng.BasicFrees,
		"every native allocation must have exactly one release")
	assert.False(t, eng.Leaks())
}

func TestVersion(t *testing.T) {
	eng := enginetest.New()

	v, err := Version(eng)
	require.NoError(t, err)
	assert.NotEmpty(t, v)
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "parse error", StatusParseError.String())
	assert.Equal(t, "division by zero", StatusDivByZero.String())
	assert.Equal(t, "status 42", Status(42).String())
}

func TestErrClosedOnNilHandle(t *testing.T) {
	var e *Expr
	require.NoError(t, e.Close(), "closing a nil handle is a no-op")
	_, err := e.Text()
	assert.True(t, errors.Is(err, ErrClosed))
}
