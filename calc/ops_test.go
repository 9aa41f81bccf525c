package calc

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/symwasm/symwasm/symengine"
	"github.com/symwasm/symwasm/symengine/enginetest"
)

// evalOK dispatches an op that is expected to succeed and asserts nothing was
// leaked behind the boundary afterwards.
func evalOK(t *testing.T, eng *enginetest.Fake, r *Registry, name string, args ...string) string {
	t.Helper()
	out, err := r.Call(context.Background(), name, args...)
	require.NoError(t, err)
	assert.False(t, eng.Leaks(), "entry point %s leaked a handle", name)
	return out
}

func TestOps_Expressions(t *testing.T) {
	eng := enginetest.New()
	r := newRegistry(t, eng)

	assert.Equal(t, "expand((x+1)**2)", evalOK(t, eng, r, "expand", "(x+1)**2"))
	assert.Equal(t, "sin(x)", evalOK(t, eng, r, "sin", "x"))
	assert.Equal(t, "loggamma(x)", evalOK(t, eng, r, "loggamma", "x"))
	assert.Equal(t, "a + b", evalOK(t, eng, r, "add", "a", "b"))
	assert.Equal(t, "a**b", evalOK(t, eng, r, "pow", "a", "b"))
	assert.Equal(t, "gcd(12, 8)", evalOK(t, eng, r, "gcd", "12", "8"))
	assert.Equal(t, "nextprime(10)", evalOK(t, eng, r, "nextprime", "10"))
	assert.Equal(t, "-x", evalOK(t, eng, r, "neg", "x"))
}

func TestOps_Calculus(t *testing.T) {
	eng := enginetest.New()
	r := newRegistry(t, eng)

	assert.Equal(t, "Derivative(x**2, x)", evalOK(t, eng, r, "differentiate", "x**2", "x"))
	assert.Equal(t, "1 + y", evalOK(t, eng, r, "substitute", "x + y", "x", "1"))
	assert.Equal(t, "coeff(x**2, x, 2)", evalOK(t, eng, r, "coeff", "x**2", "x", "2"))
}

func TestOps_Sets(t *testing.T) {
	eng := enginetest.New()
	r := newRegistry(t, eng)

	assert.Equal(t, "x, y, z", evalOK(t, eng, r, "free_symbols", "x*y + sin(z)"))
	assert.Empty(t, evalOK(t, eng, r, "solve_poly", "sin(x)", "x"),
		"no roots must render as an empty list, not an error")
}

func TestOps_NumerDenom(t *testing.T) {
	eng := enginetest.New()
	r := newRegistry(t, eng)

	assert.Equal(t, "3 | 4", evalOK(t, eng, r, "numer_denom", "3/4"))
	assert.Equal(t, "x | 1", evalOK(t, eng, r, "numer_denom", "x"))
}

func TestOps_NTheory(t *testing.T) {
	eng := enginetest.New()
	r := newRegistry(t, eng)

	assert.Equal(t, "factorial(5)", evalOK(t, eng, r, "factorial", "5"))
	assert.Equal(t, "fibonacci(10)", evalOK(t, eng, r, "fibonacci", "10"))
	assert.Equal(t, "lucas(7)", evalOK(t, eng, r, "lucas", " 7 "))
	assert.Equal(t, "binomial(n, 3)", evalOK(t, eng, r, "binomial", "n", "3"))
}

func TestOps_BadScalarArgument(t *testing.T) {
	eng := enginetest.New()
	r := newRegistry(t, eng)

	_, err := r.Call(context.Background(), "factorial", "five")
	var aerr *ArgumentError
	require.ErrorAs(t, err, &aerr)
	assert.Equal(t, "factorial", aerr.Name)
	assert.False(t, eng.Leaks())

	_, err = r.Call(context.Background(), "factorial", "-1")
	require.ErrorAs(t, err, &aerr)
}

func TestOps_ParseFailurePropagates(t *testing.T) {
	eng := enginetest.New()
	r := newRegistry(t, eng)

	_, err := r.Call(context.Background(), "sin", "((x")
	var perr *symengine.ParseError
	require.ErrorAs(t, err, &perr)
	assert.False(t, eng.Leaks(), "a rejected input must not leave a live handle")
}

func TestOps_Version(t *testing.T) {
	eng := enginetest.New()
	r := newRegistry(t, eng)

	assert.Equal(t, "0.11.2-fake", evalOK(t, eng, r, "version"))
}

func TestOps_Renders(t *testing.T) {
	eng := enginetest.New()
	r := newRegistry(t, eng)

	// The fake renders every output language identically; the real engine
	// differs, so only the plumbing is asserted here.
	for _, name := range []string{"to_latex", "to_mathml", "to_ccode", "to_jscode", "to_julia"} {
		assert.Equal(t, "x + 1", evalOK(t, eng, r, name, "x + 1"))
	}
}

func TestOps_Matrix(t *testing.T) {
	eng := enginetest.New()
	r := newRegistry(t, eng)

	assert.Equal(t, "det([a, b, c, d])", evalOK(t, eng, r, "matrix_det", "2", "2", "a, b, c, d"))
	assert.Equal(t, "[a, c, b, d]", evalOK(t, eng, r, "matrix_transpose", "2", "2", "a,b,c,d"))
	assert.Equal(t, "[a + e, b + f]", evalOK(t, eng, r, "matrix_add", "1", "2", "a,b", "1", "2", "e,f"))
	assert.Equal(t, "[a*e + b*f]", evalOK(t, eng, r, "matrix_mul", "1", "2", "a,b", "2", "1", "e,f"))
	assert.NotEmpty(t, evalOK(t, eng, r, "matrix_inv", "2", "2", "1,2,3,4"))
}

func TestOps_MatrixShapeFailures(t *testing.T) {
	eng := enginetest.New()
	r := newRegistry(t, eng)

	var serr *symengine.ShapeError
	_, err := r.Call(context.Background(), "matrix_det", "2", "2", "a, b, c")
	require.ErrorAs(t, err, &serr, "element count must match rows*cols")
	assert.False(t, eng.Leaks())

	_, err = r.Call(context.Background(), "matrix_mul", "1", "2", "a,b", "3", "1", "e,f,g")
	require.ErrorAs(t, err, &serr)
	assert.False(t, eng.Leaks())
}

func TestOps_MatrixBadDimension(t *testing.T) {
	eng := enginetest.New()
	r := newRegistry(t, eng)

	_, err := r.Call(context.Background(), "matrix_det", "two", "2", "a,b,c,d")
	var aerr *ArgumentError
	require.ErrorAs(t, err, &aerr)
	assert.Equal(t, "matrix_det", aerr.Name)
}

func TestOps_EvalF(t *testing.T) {
	eng := enginetest.New()
	r := newRegistry(t, eng)

	// The fake passes values through untouched; the precision plumbing is
	// what matters here.
	assert.Equal(t, "1/3", evalOK(t, eng, r, "evalf", "1/3"))
}

func TestOps_EngineFailureSurfacesStatus(t *testing.T) {
	eng := enginetest.New()
	eng.FailStatus = map[string]int32{"basic_div": enginetest.StatusRuntimeError}
	r := newRegistry(t, eng)

	_, err := r.Call(context.Background(), "div", "x", "y")
	var eerr *symengine.EngineError
	require.ErrorAs(t, err, &eerr)
	assert.False(t, eng.Leaks(), "the operands must still be released on failure")
}
