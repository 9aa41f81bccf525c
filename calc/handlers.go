package calc

import (
	"context"
	"strconv"
	"strings"

	"github.com/symwasm/symwasm/symengine"
)

// defaultEvalBits is the precision evalf requests when not overridden:
// IEEE 754 double.
const defaultEvalBits = 53

// unaryOp builds an entry point that parses one expression, applies fn and
// renders the result. fn is typically a method expression such as
// (*symengine.Expr).Expand.
func unaryOp(name, cat string, fn func(*symengine.Expr) (*symengine.Expr, error)) Op {
	return Op{Name: name, Arity: 1, Category: cat, apply: func(ctx context.Context, eng symengine.Engine, args []string) (string, error) {
		e, err := symengine.Parse(eng, args[0])
		if err != nil {
			return "", err
		}
		defer e.Close()
		out, err := fn(e)
		if err != nil {
			return "", err
		}
		defer out.Close()
		return out.Text()
	}}
}

// binaryOp builds an entry point over two parsed expressions. fn covers both
// method expressions ((*symengine.Expr).Add) and two-argument package
// functions (symengine.Gcd).
func binaryOp(name, cat string, fn func(a, b *symengine.Expr) (*symengine.Expr, error)) Op {
	return Op{Name: name, Arity: 2, Category: cat, apply: func(ctx context.Context, eng symengine.Engine, args []string) (string, error) {
		a, err := symengine.Parse(eng, args[0])
		if err != nil {
			return "", err
		}
		defer a.Close()
		b, err := symengine.Parse(eng, args[1])
		if err != nil {
			return "", err
		}
		defer b.Close()
		out, err := fn(a, b)
		if err != nil {
			return "", err
		}
		defer out.Close()
		return out.Text()
	}}
}

// renderOp builds an entry point that parses one expression and renders it in
// an alternative output language.
func renderOp(name string, fn func(*symengine.Expr) (string, error)) Op {
	return Op{Name: name, Arity: 1, Category: "render", apply: func(ctx context.Context, eng symengine.Engine, args []string) (string, error) {
		e, err := symengine.Parse(eng, args[0])
		if err != nil {
			return "", err
		}
		defer e.Close()
		return fn(e)
	}}
}

// uintOp builds an entry point over a single non-negative integer argument,
// such as factorial or fibonacci.
func uintOp(name string, fn func(symengine.Engine, uint64) (*symengine.Expr, error)) Op {
	return Op{Name: name, Arity: 1, Category: "ntheory", apply: func(ctx context.Context, eng symengine.Engine, args []string) (string, error) {
		n, err := parseUintArg(name, args[0])
		if err != nil {
			return "", err
		}
		out, err := fn(eng, n)
		if err != nil {
			return "", err
		}
		defer out.Close()
		return out.Text()
	}}
}

func parseUintArg(op, s string) (uint64, error) {
	n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, &ArgumentError{Name: op, Arg: s, Want: "non-negative integer", Err: err}
	}
	return n, nil
}

func versionHandler(ctx context.Context, eng symengine.Engine, args []string) (string, error) {
	return symengine.Version(eng)
}

func evalfOp(bits uint32) Op {
	return Op{Name: "evalf", Arity: 1, Category: "core", apply: func(ctx context.Context, eng symengine.Engine, args []string) (string, error) {
		e, err := symengine.Parse(eng, args[0])
		if err != nil {
			return "", err
		}
		defer e.Close()
		out, err := e.EvalF(bits, true)
		if err != nil {
			return "", err
		}
		defer out.Close()
		return out.Text()
	}}
}

// differentiateHandler takes (expression, symbol).
func differentiateHandler(ctx context.Context, eng symengine.Engine, args []string) (string, error) {
	e, err := symengine.Parse(eng, args[0])
	if err != nil {
		return "", err
	}
	defer e.Close()
	sym, err := symengine.Symbol(eng, args[1])
	if err != nil {
		return "", err
	}
	defer sym.Close()
	d, err := e.Diff(sym)
	if err != nil {
		return "", err
	}
	defer d.Close()
	return d.Text()
}

// substituteHandler takes (expression, symbol, replacement).
func substituteHandler(ctx context.Context, eng symengine.Engine, args []string) (string, error) {
	e, err := symengine.Parse(eng, args[0])
	if err != nil {
		return "", err
	}
	defer e.Close()
	sym, err := symengine.Symbol(eng, args[1])
	if err != nil {
		return "", err
	}
	defer sym.Close()
	to, err := symengine.Parse(eng, args[2])
	if err != nil {
		return "", err
	}
	defer to.Close()
	out, err := e.Subs(sym, to)
	if err != nil {
		return "", err
	}
	defer out.Close()
	return out.Text()
}

// listSeparator joins multi-valued results (symbol sets, solution sets).
const listSeparator = ", "

func freeSymbolsHandler(ctx context.Context, eng symengine.Engine, args []string) (string, error) {
	e, err := symengine.Parse(eng, args[0])
	if err != nil {
		return "", err
	}
	defer e.Close()
	syms, err := e.FreeSymbols()
	if err != nil {
		return "", err
	}
	return strings.Join(syms, listSeparator), nil
}

// solvePolyHandler takes (expression, symbol); an empty result string means
// the engine found no roots, which is a valid outcome.
func solvePolyHandler(ctx context.Context, eng symengine.Engine, args []string) (string, error) {
	e, err := symengine.Parse(eng, args[0])
	if err != nil {
		return "", err
	}
	defer e.Close()
	sym, err := symengine.Symbol(eng, args[1])
	if err != nil {
		return "", err
	}
	defer sym.Close()
	roots, err := e.SolvePoly(sym)
	if err != nil {
		return "", err
	}
	return strings.Join(roots, listSeparator), nil
}

// numerDenomSeparator splits the two halves of the numer_denom result.
const numerDenomSeparator = " | "

func numerDenomHandler(ctx context.Context, eng symengine.Engine, args []string) (string, error) {
	e, err := symengine.Parse(eng, args[0])
	if err != nil {
		return "", err
	}
	defer e.Close()
	num, den, err := e.NumerDenom()
	if err != nil {
		return "", err
	}
	defer num.Close()
	defer den.Close()
	ns, err := num.Text()
	if err != nil {
		return "", err
	}
	ds, err := den.Text()
	if err != nil {
		return "", err
	}
	return ns + numerDenomSeparator + ds, nil
}

// coeffHandler takes (expression, symbol, power).
func coeffHandler(ctx context.Context, eng symengine.Engine, args []string) (string, error) {
	e, err := symengine.Parse(eng, args[0])
	if err != nil {
		return "", err
	}
	defer e.Close()
	sym, err := symengine.Symbol(eng, args[1])
	if err != nil {
		return "", err
	}
	defer sym.Close()
	n, err := symengine.Parse(eng, args[2])
	if err != nil {
		return "", err
	}
	defer n.Close()
	c, err := e.Coeff(sym, n)
	if err != nil {
		return "", err
	}
	defer c.Close()
	return c.Text()
}

// binomialHandler takes (n, k) where n is any expression and k is a
// non-negative integer.
func binomialHandler(ctx context.Context, eng symengine.Engine, args []string) (string, error) {
	n, err := symengine.Parse(eng, args[0])
	if err != nil {
		return "", err
	}
	defer n.Close()
	k, err := parseUintArg("binomial", args[1])
	if err != nil {
		return "", err
	}
	out, err := symengine.Binomial(n, k)
	if err != nil {
		return "", err
	}
	defer out.Close()
	return out.Text()
}
