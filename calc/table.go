package calc

import "github.com/symwasm/symwasm/symengine"

// defaultOps is the full export table. Every entry works on decimal/symbolic
// text in and canonical engine text out; matrix entries additionally take
// dimensions and comma-separated element lists.
func defaultOps(evalBits uint32) []Op {
	ops := []Op{
		{Name: "version", Arity: 0, Category: "core", apply: versionHandler},
		evalfOp(evalBits),
		{Name: "differentiate", Arity: 2, Category: "calculus", apply: differentiateHandler},
		{Name: "substitute", Arity: 3, Category: "core", apply: substituteHandler},
		{Name: "free_symbols", Arity: 1, Category: "core", apply: freeSymbolsHandler},
		{Name: "solve_poly", Arity: 2, Category: "core", apply: solvePolyHandler},
		{Name: "numer_denom", Arity: 1, Category: "core", apply: numerDenomHandler},
		{Name: "coeff", Arity: 3, Category: "core", apply: coeffHandler},
		{Name: "binomial", Arity: 2, Category: "ntheory", apply: binomialHandler},

		uintOp("factorial", symengine.Factorial),
		uintOp("fibonacci", symengine.Fibonacci),
		uintOp("lucas", symengine.Lucas),

		matrixUnaryOp("matrix_det", matrixDet),
		matrixUnaryOp("matrix_inv", matrixInv),
		matrixUnaryOp("matrix_transpose", matrixTranspose),
		matrixBinaryOp("matrix_add", (*symengine.Matrix).AddMatrix),
		matrixBinaryOp("matrix_mul", (*symengine.Matrix).Mul),
	}

	for _, u := range []struct {
		name string
		cat  string
		fn   func(*symengine.Expr) (*symengine.Expr, error)
	}{
		{"expand", "core", (*symengine.Expr).Expand},
		{"neg", "arithmetic", (*symengine.Expr).Neg},
		{"abs", "arithmetic", (*symengine.Expr).Abs},
		{"sqrt", "exponential", (*symengine.Expr).Sqrt},
		{"cbrt", "exponential", (*symengine.Expr).Cbrt},
		{"exp", "exponential", (*symengine.Expr).Exp},
		{"log", "exponential", (*symengine.Expr).Log},
		{"sin", "trigonometric", (*symengine.Expr).Sin},
		{"cos", "trigonometric", (*symengine.Expr).Cos},
		{"tan", "trigonometric", (*symengine.Expr).Tan},
		{"asin", "trigonometric", (*symengine.Expr).Asin},
		{"acos", "trigonometric", (*symengine.Expr).Acos},
		{"atan", "trigonometric", (*symengine.Expr).Atan},
		{"csc", "trigonometric", (*symengine.Expr).Csc},
		{"sec", "trigonometric", (*symengine.Expr).Sec},
		{"cot", "trigonometric", (*symengine.Expr).Cot},
		{"sinh", "hyperbolic", (*symengine.Expr).Sinh},
		{"cosh", "hyperbolic", (*symengine.Expr).Cosh},
		{"tanh", "hyperbolic", (*symengine.Expr).Tanh},
		{"asinh", "hyperbolic", (*symengine.Expr).Asinh},
		{"acosh", "hyperbolic", (*symengine.Expr).Acosh},
		{"atanh", "hyperbolic", (*symengine.Expr).Atanh},
		{"gamma", "special", (*symengine.Expr).Gamma},
		{"loggamma", "special", (*symengine.Expr).LogGamma},
		{"zeta", "special", (*symengine.Expr).Zeta},
		{"eta", "special", (*symengine.Expr).DirichletEta},
		{"erf", "special", (*symengine.Expr).Erf},
		{"erfc", "special", (*symengine.Expr).Erfc},
		{"lambertw", "special", (*symengine.Expr).LambertW},
		{"floor", "rounding", (*symengine.Expr).Floor},
		{"ceiling", "rounding", (*symengine.Expr).Ceiling},
		{"sign", "rounding", (*symengine.Expr).Sign},
	} {
		ops = append(ops, unaryOp(u.name, u.cat, u.fn))
	}

	for _, b := range []struct {
		name string
		cat  string
		fn   func(a, b *symengine.Expr) (*symengine.Expr, error)
	}{
		{"add", "arithmetic", (*symengine.Expr).Add},
		{"sub", "arithmetic", (*symengine.Expr).Sub},
		{"mul", "arithmetic", (*symengine.Expr).Mul},
		{"div", "arithmetic", (*symengine.Expr).Div},
		{"pow", "arithmetic", (*symengine.Expr).Pow},
		{"beta", "special", (*symengine.Expr).Beta},
		{"polygamma", "special", (*symengine.Expr).Polygamma},
		{"gcd", "ntheory", symengine.Gcd},
		{"lcm", "ntheory", symengine.Lcm},
		{"mod", "ntheory", symengine.Mod},
		{"quotient", "ntheory", symengine.Quotient},
		{"mod_inverse", "ntheory", symengine.ModInverse},
	} {
		ops = append(ops, binaryOp(b.name, b.cat, b.fn))
	}

	ops = append(ops,
		unaryOp("nextprime", "ntheory", symengine.NextPrime),
		renderOp("to_latex", (*symengine.Expr).LaTeX),
		renderOp("to_mathml", (*symengine.Expr).MathML),
		renderOp("to_ccode", (*symengine.Expr).CCode),
		renderOp("to_jscode", (*symengine.Expr).JSCode),
		renderOp("to_julia", (*symengine.Expr).JuliaCode),
	)

	return ops
}
