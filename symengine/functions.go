package symengine

// Elementary and special functions. Each call allocates a fresh native result
// and wraps it; the receiver is read-only input.

// Trigonometric and inverse-trigonometric.

func (e *Expr) Sin() (*Expr, error) { return e.unary("basic_sin") }
func (e *Expr) Cos() (*Expr, error) { return e.unary("basic_cos") }
func (e *Expr) Tan() (*Expr, error) { return e.unary("basic_tan") }
func (e *Expr) Asin() (*Expr, error) { return e.unary("basic_asin") }
func (e *Expr) Acos() (*Expr, error) { return e.unary("basic_acos") }
func (e *Expr) Atan() (*Expr, error) { return e.unary("basic_atan") }
func (e *Expr) Csc() (*Expr, error) { return e.unary("basic_csc") }
func (e *Expr) Sec() (*Expr, error) { return e.unary("basic_sec") }
func (e *Expr) Cot() (*Expr, error) { return e.unary("basic_cot") }

// Hyperbolic and inverse-hyperbolic.

func (e *Expr) Sinh() (*Expr, error) { return e.unary("basic_sinh") }
func (e *Expr) Cosh() (*Expr, error) { return e.unary("basic_cosh") }
func (e *Expr) Tanh() (*Expr, error) { return e.unary("basic_tanh") }
func (e *Expr) Asinh() (*Expr, error) { return e.unary("basic_asinh") }
func (e *Expr) Acosh() (*Expr, error) { return e.unary("basic_acosh") }
func (e *Expr) Atanh() (*Expr, error) { return e.unary("basic_atanh") }

// Exponential and logarithmic.

func (e *Expr) Exp() (*Expr, error) { return e.unary("basic_exp") }
func (e *Expr) Log() (*Expr, error) { return e.unary("basic_log") }
func (e *Expr) Sqrt() (*Expr, error) { return e.unary("basic_sqrt") }
func (e *Expr) Cbrt() (*Expr, error) { return e.unary("basic_cbrt") }

// Special functions.

func (e *Expr) Gamma() (*Expr, error) { return e.unary("basic_gamma") }
func (e *Expr) LogGamma() (*Expr, error) { return e.unary("basic_loggamma") }
func (e *Expr) Zeta() (*Expr, error) { return e.unary("basic_zeta") }
func (e *Expr) DirichletEta() (*Expr, error) { return e.unary("basic_dirichlet_eta") }
func (e *Expr) Erf() (*Expr, error) { return e.unary("basic_erf") }
func (e *Expr) Erfc() (*Expr, error) { return e.unary("basic_erfc") }
func (e *Expr) LambertW() (*Expr, error) { return e.unary("basic_lambertw") }

// Beta is the two-argument Euler beta function.
func (e *Expr) Beta(o *Expr) (*Expr, error) { return e.binary("basic_beta", o) }

// Polygamma is the polygamma function of order e evaluated at o.
func (e *Expr) Polygamma(o *Expr) (*Expr, error) { return e.binary("basic_polygamma", o) }

// Rounding and sign.

func (e *Expr) Floor() (*Expr, error) { return e.unary("basic_floor") }
func (e *Expr) Ceiling() (*Expr, error) { return e.unary("basic_ceiling") }
func (e *Expr) Sign() (*Expr, error) { return e.unary("basic_sign") }
