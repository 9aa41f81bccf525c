package symengine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/symwasm/symwasm/symengine/enginetest"
)

func TestFreeSymbols(t *testing.T) {
	eng := enginetest.New()

	e, err := Parse(eng, "x*y + sin(z)")
	require.NoError(t, err)
	defer e.Close()

	syms, err := e.FreeSymbols()
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y", "z"}, syms)

	// The transient set and every unpacked element must be gone.
	assert.Zero(t, eng.LiveContainers())
}

func TestSolvePoly_EmptyResultIsNotAnError(t *testing.T) {
	eng := enginetest.New()

	e, err := Parse(eng, "sin(x)")
	require.NoError(t, err)
	defer e.Close()
	x, err := Symbol(eng, "x")
	require.NoError(t, err)
	defer x.Close()

	roots, err := e.SolvePoly(x)
	require.NoError(t, err, "an unsolved input is a valid empty outcome")
	assert.Empty(t, roots)
	assert.Zero(t, eng.LiveContainers())
}

func TestSubsMap_ReleasesMapBeforeReturn(t *testing.T) {
	eng := enginetest.New()

	e, err := Parse(eng, "x + y")
	require.NoError(t, err)
	x, err := Symbol(eng, "x")
	require.NoError(t, err)
	one, err := Integer(eng, 1)
	require.NoError(t, err)
	y, err := Symbol(eng, "y")
	require.NoError(t, err)
	two, err := Integer(eng, 2)
	require.NoError(t, err)

	r, err := e.SubsMap([]Substitution{{From: x, To: one}, {From: y, To: two}})
	require.NoError(t, err)

	text, err := r.Text()
	require.NoError(t, err)
	assert.Equal(t, "1 + 2", text)
	assert.Zero(t, eng.LiveContainers())

	for _, h := range []*Expr{e, x, one, y, two, r} {
		require.NoError(t, h.Close())
	}
	assert.False(t, eng.Leaks())
}

func TestSubs_Single(t *testing.T) {
	eng := enginetest.New()

	e, err := Parse(eng, "x**2")
	require.NoError(t, err)
	defer e.Close()
	x, err := Symbol(eng, "x")
	require.NoError(t, err)
	defer x.Close()
	v, err := Integer(eng, 3)
	require.NoError(t, err)
	defer v.Close()

	r, err := e.Subs(x, v)
	require.NoError(t, err)
	defer r.Close()

	text, err := r.Text()
	require.NoError(t, err)
	assert.Equal(t, "3**2", text)
}

func TestAddVec(t *testing.T) {
	eng := enginetest.New()

	var exprs []*Expr
	for _, name := range []string{"a", "b", "c"} {
		s, err := Symbol(eng, name)
		require.NoError(t, err)
		defer s.Close()
		exprs = append(exprs, s)
	}

	sum, err := AddVec(eng, exprs)
	require.NoError(t, err)
	defer sum.Close()

	text, err := sum.Text()
	require.NoError(t, err)
	assert.Equal(t, "a + b + c", text)
	assert.Zero(t, eng.LiveContainers())
}

func TestMulVec(t *testing.T) {
	eng := enginetest.New()

	a, err := Symbol(eng, "a")
	require.NoError(t, err)
	defer a.Close()
	b, err := Symbol(eng, "b")
	require.NoError(t, err)
	defer b.Close()

	prod, err := MulVec(eng, []*Expr{a, b})
	require.NoError(t, err)
	defer prod.Close()

	text, err := prod.Text()
	require.NoError(t, err)
	assert.Equal(t, "a*b", text)
}

func TestLinSolve(t *testing.T) {
	eng := enginetest.New()

	eq, err := Parse(eng, "x - 1")
	require.NoError(t, err)
	defer eq.Close()
	x, err := Symbol(eng, "x")
	require.NoError(t, err)
	defer x.Close()

	sol, err := LinSolve(eng, []*Expr{eq}, []*Expr{x})
	require.NoError(t, err)
	assert.Len(t, sol, 1)
	assert.Zero(t, eng.LiveContainers())
}

func TestContainers_FreedOnErrorPath(t *testing.T) {
	eng := enginetest.New()
	eng.FailStatus = map[string]int32{"basic_free_symbols": enginetest.StatusRuntimeError}

	e, err := Parse(eng, "x")
	require.NoError(t, err)
	defer e.Close()

	_, err = e.FreeSymbols()
	var eerr *EngineError
	require.ErrorAs(t, err, &eerr)
	assert.Zero(t, eng.LiveContainers(), "the set view must be released on the failure path too")
}
