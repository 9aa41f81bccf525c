package symengine

// Number theory. These are free functions in the native API rather than
// methods on a single expression.

func ntBinary(op string, a, b *Expr) (*Expr, error) {
	if err := a.check(); err != nil {
		return nil, err
	}
	if err := b.check(); err != nil {
		return nil, err
	}
	r, err := newBasic(a.eng)
	if err != nil {
		return nil, err
	}
	if err := call(a.eng, op, uint64(r.ptr), uint64(a.ptr), uint64(b.ptr)); err != nil {
		r.Close()
		return nil, err
	}
	return r, nil
}

// Gcd returns the greatest common divisor of a and b.
func Gcd(a, b *Expr) (*Expr, error) { return ntBinary("ntheory_gcd", a, b) }

// Lcm returns the least common multiple of a and b.
func Lcm(a, b *Expr) (*Expr, error) { return ntBinary("ntheory_lcm", a, b) }

// Mod returns n mod d.
func Mod(n, d *Expr) (*Expr, error) { return ntBinary("ntheory_mod", n, d) }

// Quotient returns the integer quotient of n by d.
func Quotient(n, d *Expr) (*Expr, error) { return ntBinary("ntheory_quotient", n, d) }

// ModInverse returns the modular inverse of a modulo m.
func ModInverse(a, m *Expr) (*Expr, error) { return ntBinary("ntheory_mod_inverse", a, m) }

// NextPrime returns the smallest prime greater than n.
func NextPrime(n *Expr) (*Expr, error) {
	if err := n.check(); err != nil {
		return nil, err
	}
	r, err := newBasic(n.eng)
	if err != nil {
		return nil, err
	}
	if err := call(n.eng, "ntheory_nextprime", uint64(r.ptr), uint64(n.ptr)); err != nil {
		r.Close()
		return nil, err
	}
	return r, nil
}

// Factorial returns n!.
func Factorial(eng Engine, n uint64) (*Expr, error) {
	return construct(eng, "ntheory_factorial", n)
}

// Fibonacci returns the nth Fibonacci number.
func Fibonacci(eng Engine, n uint64) (*Expr, error) {
	return construct(eng, "ntheory_fibonacci", n)
}

// Lucas returns the nth Lucas number.
func Lucas(eng Engine, n uint64) (*Expr, error) {
	return construct(eng, "ntheory_lucas", n)
}

// Binomial returns the binomial coefficient of n over k.
func Binomial(n *Expr, k uint64) (*Expr, error) {
	if err := n.check(); err != nil {
		return nil, err
	}
	r, err := newBasic(n.eng)
	if err != nil {
		return nil, err
	}
	if err := call(n.eng, "ntheory_binomial", uint64(r.ptr), uint64(n.ptr), k); err != nil {
		r.Close()
		return nil, err
	}
	return r, nil
}
