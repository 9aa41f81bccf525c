// Package enginetest provides an in-process stand-in for the native engine.
//
// The fake implements just enough of the cwrapper surface for the wrapper's
// plumbing and lifetime tests: values are plain strings composed structurally
// with no simplification, and every allocation and release is counted so
// tests can assert the exactly-one-release invariant. Behavior that depends
// on real symbolic computation belongs in the integration tests that run
// against an actual engine binary.
package enginetest

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Status codes mirrored from the cwrapper so failure injection can use them
// without an import cycle.
const (
	StatusOK           = 0
	StatusRuntimeError = 1
	StatusDomainError  = 4
	StatusParseError   = 5
)

type matrix struct {
	rows, cols int
	elems      []string
}

// Fake is a recording engine. The zero value is not usable; create with New.
type Fake struct {
	nextPtr uint32

	basics  map[uint32]string
	vecs    map[uint32][]string
	sets    map[uint32][]string
	maps    map[uint32][][2]string
	mats    map[uint32]*matrix
	cstrs   map[uint32]string // NewString allocations
	rstrs   map[uint32]string // native-rendered strings awaiting basic_str_free
	statics map[uint32]string // engine-owned strings that are never freed

	// BasicAllocs and BasicFrees count basic_new_heap / basic_free_heap
	// calls for leak assertions.
	BasicAllocs int
	BasicFrees  int

	// FailStatus makes the named symbols return the given status code.
	FailStatus map[string]int32

	// FailAllocsAfter makes basic_new_heap return a null handle once this
	// many basics have been allocated. Zero disables the limit.
	FailAllocsAfter int

	// Calls records every symbol invoked, in order.
	Calls []string
}

// New creates an empty fake engine.
func New() *Fake {
	return &Fake{
		nextPtr: 16, // arbitrary non-null start
		basics:  make(map[uint32]string),
		vecs:    make(map[uint32][]string),
		sets:    make(map[uint32][]string),
		maps:    make(map[uint32][][2]string),
		mats:    make(map[uint32]*matrix),
		cstrs:   make(map[uint32]string),
		rstrs:   make(map[uint32]string),
		statics: make(map[uint32]string),
	}
}

// LiveBasics returns the number of basics allocated but not yet freed.
func (f *Fake) LiveBasics() int { return len(f.basics) }

// LiveContainers returns the number of live vectors, sets, maps and matrices.
func (f *Fake) LiveContainers() int {
	return len(f.vecs) + len(f.sets) + len(f.maps) + len(f.mats)
}

// LiveStrings returns the number of unreleased C strings, both argument
// strings and native-rendered ones.
func (f *Fake) LiveStrings() int { return len(f.cstrs) + len(f.rstrs) }

// Leaks reports whether anything allocated through the fake is still live.
func (f *Fake) Leaks() bool {
	return f.LiveBasics()+f.LiveContainers()+f.LiveStrings() > 0
}

func (f *Fake) alloc() uint32 {
	p := f.nextPtr
	f.nextPtr += 16
	return p
}

// NewString implements symengine.Engine.
func (f *Fake) NewString(s string) (uint32, error) {
	p := f.alloc()
	f.cstrs[p] = s
	return p, nil
}

// FreeString implements symengine.Engine.
func (f *Fake) FreeString(ptr uint32) {
	delete(f.cstrs, ptr)
}

// ReadString implements symengine.Engine.
func (f *Fake) ReadString(ptr uint32) (string, error) {
	if s, ok := f.statics[ptr]; ok {
		return s, nil
	}
	if s, ok := f.rstrs[ptr]; ok {
		return s, nil
	}
	if s, ok := f.cstrs[ptr]; ok {
		return s, nil
	}
	return "", fmt.Errorf("enginetest: read of unknown string %#x", ptr)
}

// render allocates a native-rendered string the caller frees with
// basic_str_free.
func (f *Fake) render(s string) uint32 {
	p := f.alloc()
	f.rstrs[p] = s
	return p
}

// unaryNames maps one-input transformation symbols to their rendered
// function names.
var unaryNames = map[string]string{
	"basic_sin": "sin", "basic_cos": "cos", "basic_tan": "tan",
	"basic_asin": "asin", "basic_acos": "acos", "basic_atan": "atan",
	"basic_csc": "csc", "basic_sec": "sec", "basic_cot": "cot",
	"basic_sinh": "sinh", "basic_cosh": "cosh", "basic_tanh": "tanh",
	"basic_asinh": "asinh", "basic_acosh": "acosh", "basic_atanh": "atanh",
	"basic_exp": "exp", "basic_log": "log", "basic_sqrt": "sqrt", "basic_cbrt": "cbrt",
	"basic_gamma": "gamma", "basic_loggamma": "loggamma", "basic_zeta": "zeta",
	"basic_dirichlet_eta": "dirichlet_eta", "basic_erf": "erf", "basic_erfc": "erfc",
	"basic_lambertw": "lambertw", "basic_floor": "floor", "basic_ceiling": "ceiling",
	"basic_sign": "sign", "basic_expand": "expand", "basic_abs": "abs",
}

// binaryInfix maps two-input arithmetic symbols to their rendered operators.
var binaryInfix = map[string]string{
	"basic_add": " + ", "basic_sub": " - ", "basic_mul": "*",
	"basic_div": "/", "basic_pow": "**",
}

// binaryNames maps the remaining two-input symbols to function renderings.
var binaryNames = map[string]string{
	"basic_beta":          "beta",
	"basic_polygamma":     "polygamma",
	"basic_diff":          "Derivative",
	"ntheory_gcd":         "gcd",
	"ntheory_lcm":         "lcm",
	"ntheory_mod":         "mod",
	"ntheory_quotient":    "quotient",
	"ntheory_mod_inverse": "mod_inverse",
}

// constants maps constructor symbols to their rendered values.
var constants = map[string]string{
	"basic_const_zero": "0", "basic_const_one": "1", "basic_const_minus_one": "-1",
	"basic_const_I": "I", "basic_const_pi": "pi", "basic_const_E": "E",
	"basic_const_EulerGamma": "EulerGamma", "basic_const_Catalan": "Catalan",
	"basic_const_GoldenRatio": "GoldenRatio", "basic_const_infinity": "oo",
	"basic_const_neginfinity": "-oo", "basic_const_complex_infinity": "zoo",
	"basic_const_nan": "nan",
}

// Call implements symengine.Engine. Unknown symbols return an error so a
// typo in a wrapper call site fails loudly in tests.
func (f *Fake) Call(symbol string, args ...uint64) (uint64, error) {
	f.Calls = append(f.Calls, symbol)
	if code, ok := f.FailStatus[symbol]; ok {
		return uint64(uint32(code)), nil
	}

	switch symbol {
	case "symengine_version":
		// The real engine hands back a static buffer the caller never frees.
		p := f.alloc()
		f.statics[p] = "0.11.2-fake"
		return uint64(p), nil

	case "basic_new_heap":
		if f.FailAllocsAfter > 0 && f.BasicAllocs >= f.FailAllocsAfter {
			return 0, nil
		}
		f.BasicAllocs++
		p := f.alloc()
		f.basics[p] = ""
		return uint64(p), nil

	case "basic_free_heap":
		p := uint32(args[0])
		if _, ok := f.basics[p]; !ok {
			return 0, fmt.Errorf("enginetest: double free of basic %#x", p)
		}
		f.BasicFrees++
		delete(f.basics, p)
		return 0, nil

	case "basic_assign":
		f.basics[uint32(args[0])] = f.basics[uint32(args[1])]
		return StatusOK, nil

	case "basic_parse":
		text := strings.TrimSpace(f.cstrs[uint32(args[1])])
		if text == "" || strings.Count(text, "(") != strings.Count(text, ")") {
			return StatusParseError, nil
		}
		f.basics[uint32(args[0])] = text
		return StatusOK, nil

	case "symbol_set":
		f.basics[uint32(args[0])] = f.cstrs[uint32(args[1])]
		return StatusOK, nil

	case "integer_set_si":
		f.basics[uint32(args[0])] = strconv.FormatInt(int64(args[1]), 10)
		return StatusOK, nil

	case "integer_set_str":
		s := f.cstrs[uint32(args[1])]
		if !isDecimal(s) {
			return StatusParseError, nil
		}
		f.basics[uint32(args[0])] = s
		return StatusOK, nil

	case "rational_set_si":
		f.basics[uint32(args[0])] = fmt.Sprintf("%d/%d", int64(args[1]), int64(args[2]))
		return StatusOK, nil

	case "real_double_set_d":
		f.basics[uint32(args[0])] = strconv.FormatFloat(math.Float64frombits(args[1]), 'g', -1, 64)
		return StatusOK, nil

	case "basic_neg":
		f.basics[uint32(args[0])] = "-" + f.basics[uint32(args[1])]
		return StatusOK, nil

	case "basic_subs2":
		e, from, to := f.basics[uint32(args[1])], f.basics[uint32(args[2])], f.basics[uint32(args[3])]
		f.basics[uint32(args[0])] = strings.ReplaceAll(e, from, to)
		return StatusOK, nil

	case "basic_subs":
		e := f.basics[uint32(args[1])]
		for _, kv := range f.maps[uint32(args[2])] {
			e = strings.ReplaceAll(e, kv[0], kv[1])
		}
		f.basics[uint32(args[0])] = e
		return StatusOK, nil

	case "basic_evalf":
		f.basics[uint32(args[0])] = f.basics[uint32(args[1])]
		return StatusOK, nil

	case "basic_as_numer_denom":
		x := f.basics[uint32(args[2])]
		if n, d, ok := strings.Cut(x, "/"); ok {
			f.basics[uint32(args[0])], f.basics[uint32(args[1])] = n, d
		} else {
			f.basics[uint32(args[0])], f.basics[uint32(args[1])] = x, "1"
		}
		return StatusOK, nil

	case "basic_coeff":
		f.basics[uint32(args[0])] = fmt.Sprintf("coeff(%s, %s, %s)",
			f.basics[uint32(args[1])], f.basics[uint32(args[2])], f.basics[uint32(args[3])])
		return StatusOK, nil

	case "basic_eq":
		return boolWord(f.basics[uint32(args[0])] == f.basics[uint32(args[1])]), nil
	case "basic_neq":
		return boolWord(f.basics[uint32(args[0])] != f.basics[uint32(args[1])]), nil
	case "basic_has_symbol":
		return boolWord(strings.Contains(f.basics[uint32(args[0])], f.basics[uint32(args[1])])), nil
	case "number_is_zero":
		return boolWord(f.basics[uint32(args[0])] == "0"), nil
	case "number_is_negative":
		return boolWord(strings.HasPrefix(f.basics[uint32(args[0])], "-")), nil
	case "number_is_positive":
		s := f.basics[uint32(args[0])]
		return boolWord(s != "0" && !strings.HasPrefix(s, "-")), nil
	case "number_is_complex", "is_a_Complex":
		return boolWord(strings.Contains(f.basics[uint32(args[0])], "I")), nil
	case "is_a_Number", "is_a_Integer":
		_, err := strconv.ParseInt(f.basics[uint32(args[0])], 10, 64)
		return boolWord(err == nil), nil
	case "is_a_Rational":
		return boolWord(strings.Contains(f.basics[uint32(args[0])], "/")), nil
	case "is_a_Symbol":
		s := f.basics[uint32(args[0])]
		_, err := strconv.ParseFloat(s, 64)
		return boolWord(err != nil && !strings.ContainsAny(s, " ()+-*/")), nil
	case "is_a_RealDouble":
		return boolWord(strings.Contains(f.basics[uint32(args[0])], ".")), nil

	case "basic_str", "basic_str_latex", "basic_str_mathml",
		"basic_str_ccode", "basic_str_jscode", "basic_str_julia":
		return uint64(f.render(f.basics[uint32(args[0])])), nil

	case "basic_str_free":
		delete(f.rstrs, uint32(args[0]))
		return 0, nil

	case "ntheory_nextprime":
		f.basics[uint32(args[0])] = "nextprime(" + f.basics[uint32(args[1])] + ")"
		return StatusOK, nil
	case "ntheory_factorial":
		f.basics[uint32(args[0])] = fmt.Sprintf("factorial(%d)", args[1])
		return StatusOK, nil
	case "ntheory_fibonacci":
		f.basics[uint32(args[0])] = fmt.Sprintf("fibonacci(%d)", args[1])
		return StatusOK, nil
	case "ntheory_lucas":
		f.basics[uint32(args[0])] = fmt.Sprintf("lucas(%d)", args[1])
		return StatusOK, nil
	case "ntheory_binomial":
		f.basics[uint32(args[0])] = fmt.Sprintf("binomial(%s, %d)", f.basics[uint32(args[1])], args[2])
		return StatusOK, nil

	case "basic_free_symbols":
		syms := extractSymbols(f.basics[uint32(args[0])])
		f.sets[uint32(args[1])] = syms
		return StatusOK, nil

	case "basic_solve_poly":
		// The fake never solves anything: every input is "non-polynomial",
		// which the wrapper must surface as a valid empty result.
		f.sets[uint32(args[0])] = nil
		return StatusOK, nil

	case "vecbasic_new":
		p := f.alloc()
		f.vecs[p] = nil
		return uint64(p), nil
	case "vecbasic_free":
		delete(f.vecs, uint32(args[0]))
		return 0, nil
	case "vecbasic_push_back":
		p := uint32(args[0])
		f.vecs[p] = append(f.vecs[p], f.basics[uint32(args[1])])
		return StatusOK, nil
	case "vecbasic_size":
		return uint64(len(f.vecs[uint32(args[0])])), nil
	case "vecbasic_get":
		v := f.vecs[uint32(args[0])]
		i := int(args[1])
		if i < 0 || i >= len(v) {
			return StatusRuntimeError, nil
		}
		f.basics[uint32(args[2])] = v[i]
		return StatusOK, nil

	case "setbasic_new":
		p := f.alloc()
		f.sets[p] = nil
		return uint64(p), nil
	case "setbasic_free":
		delete(f.sets, uint32(args[0]))
		return 0, nil
	case "setbasic_insert":
		p := uint32(args[0])
		f.sets[p] = append(f.sets[p], f.basics[uint32(args[1])])
		return StatusOK, nil
	case "setbasic_size":
		return uint64(len(f.sets[uint32(args[0])])), nil
	case "setbasic_get":
		s := f.sets[uint32(args[0])]
		i := int(args[1])
		if i >= 0 && i < len(s) {
			f.basics[uint32(args[2])] = s[i]
		}
		return 0, nil

	case "mapbasicbasic_new":
		p := f.alloc()
		f.maps[p] = nil
		return uint64(p), nil
	case "mapbasicbasic_free":
		delete(f.maps, uint32(args[0]))
		return 0, nil
	case "mapbasicbasic_insert":
		p := uint32(args[0])
		f.maps[p] = append(f.maps[p], [2]string{f.basics[uint32(args[1])], f.basics[uint32(args[2])]})
		return 0, nil

	case "basic_add_vec":
		f.basics[uint32(args[0])] = strings.Join(f.vecs[uint32(args[1])], " + ")
		return StatusOK, nil
	case "basic_mul_vec":
		f.basics[uint32(args[0])] = strings.Join(f.vecs[uint32(args[1])], "*")
		return StatusOK, nil

	case "vecbasic_linsolve":
		// One rendered solution per symbol.
		syms := f.vecs[uint32(args[2])]
		sol := make([]string, len(syms))
		for i, s := range syms {
			sol[i] = "sol(" + s + ")"
		}
		f.vecs[uint32(args[0])] = sol
		return StatusOK, nil

	case "dense_matrix_new":
		p := f.alloc()
		f.mats[p] = &matrix{}
		return uint64(p), nil
	case "dense_matrix_new_rows_cols":
		p := f.alloc()
		r, c := int(args[0]), int(args[1])
		f.mats[p] = &matrix{rows: r, cols: c, elems: make([]string, r*c)}
		return uint64(p), nil
	case "dense_matrix_free":
		delete(f.mats, uint32(args[0]))
		return 0, nil
	case "dense_matrix_rows":
		return uint64(f.mats[uint32(args[0])].rows), nil
	case "dense_matrix_cols":
		return uint64(f.mats[uint32(args[0])].cols), nil
	case "dense_matrix_set_basic":
		m := f.mats[uint32(args[0])]
		m.elems[int(args[1])*m.cols+int(args[2])] = f.basics[uint32(args[3])]
		return StatusOK, nil
	case "dense_matrix_get_basic":
		m := f.mats[uint32(args[1])]
		f.basics[uint32(args[0])] = m.elems[int(args[2])*m.cols+int(args[3])]
		return StatusOK, nil
	case "dense_matrix_det":
		m := f.mats[uint32(args[1])]
		f.basics[uint32(args[0])] = "det([" + strings.Join(m.elems, ", ") + "])"
		return StatusOK, nil
	case "dense_matrix_transpose":
		src := f.mats[uint32(args[1])]
		dst := f.mats[uint32(args[0])]
		dst.rows, dst.cols = src.cols, src.rows
		dst.elems = make([]string, len(src.elems))
		for r := 0; r < src.rows; r++ {
			for c := 0; c < src.cols; c++ {
				dst.elems[c*dst.cols+r] = src.elems[r*src.cols+c]
			}
		}
		return StatusOK, nil
	case "dense_matrix_inv":
		src := f.mats[uint32(args[1])]
		dst := f.mats[uint32(args[0])]
		dst.rows, dst.cols = src.rows, src.cols
		dst.elems = make([]string, len(src.elems))
		for i := range dst.elems {
			dst.elems[i] = fmt.Sprintf("inv[%d]", i)
		}
		return StatusOK, nil
	case "dense_matrix_add_matrix":
		a, b := f.mats[uint32(args[1])], f.mats[uint32(args[2])]
		dst := f.mats[uint32(args[0])]
		dst.rows, dst.cols = a.rows, a.cols
		dst.elems = make([]string, len(a.elems))
		for i := range a.elems {
			dst.elems[i] = a.elems[i] + " + " + b.elems[i]
		}
		return StatusOK, nil
	case "dense_matrix_mul_matrix":
		a, b := f.mats[uint32(args[1])], f.mats[uint32(args[2])]
		dst := f.mats[uint32(args[0])]
		dst.rows, dst.cols = a.rows, b.cols
		dst.elems = make([]string, a.rows*b.cols)
		for r := 0; r < a.rows; r++ {
			for c := 0; c < b.cols; c++ {
				terms := make([]string, a.cols)
				for k := 0; k < a.cols; k++ {
					terms[k] = a.elems[r*a.cols+k] + "*" + b.elems[k*b.cols+c]
				}
				dst.elems[r*dst.cols+c] = strings.Join(terms, " + ")
			}
		}
		return StatusOK, nil
	case "dense_matrix_mul_scalar":
		src := f.mats[uint32(args[1])]
		dst := f.mats[uint32(args[0])]
		s := f.basics[uint32(args[2])]
		dst.rows, dst.cols = src.rows, src.cols
		dst.elems = make([]string, len(src.elems))
		for i, e := range src.elems {
			dst.elems[i] = s + "*" + e
		}
		return StatusOK, nil
	case "dense_matrix_str":
		m := f.mats[uint32(args[0])]
		return uint64(f.render("[" + strings.Join(m.elems, ", ") + "]")), nil
	}

	if v, ok := constants[symbol]; ok {
		f.basics[uint32(args[0])] = v
		return 0, nil
	}
	if name, ok := unaryNames[symbol]; ok {
		f.basics[uint32(args[0])] = name + "(" + f.basics[uint32(args[1])] + ")"
		return StatusOK, nil
	}
	if op, ok := binaryInfix[symbol]; ok {
		f.basics[uint32(args[0])] = f.basics[uint32(args[1])] + op + f.basics[uint32(args[2])]
		return StatusOK, nil
	}
	if name, ok := binaryNames[symbol]; ok {
		f.basics[uint32(args[0])] = fmt.Sprintf("%s(%s, %s)",
			name, f.basics[uint32(args[1])], f.basics[uint32(args[2])])
		return StatusOK, nil
	}

	return 0, fmt.Errorf("enginetest: unknown native symbol %q", symbol)
}

// extractSymbols pulls identifier-looking tokens out of a rendered
// expression, preserving first-occurrence order and skipping function names.
func extractSymbols(text string) []string {
	var out []string
	seen := map[string]bool{}
	i := 0
	for i < len(text) {
		if !isIdentStart(text[i]) {
			i++
			continue
		}
		j := i
		for j < len(text) && isIdentPart(text[j]) {
			j++
		}
		tok := text[i:j]
		// A token followed by '(' is a function name, not a symbol.
		if (j >= len(text) || text[j] != '(') && !seen[tok] {
			seen[tok] = true
			out = append(out, tok)
		}
		i = j
	}
	return out
}

func isIdentStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isIdentPart(b byte) bool {
	return isIdentStart(b) || (b >= '0' && b <= '9')
}

func isDecimal(s string) bool {
	if s == "" {
		return false
	}
	if s[0] == '-' || s[0] == '+' {
		s = s[1:]
	}
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func boolWord(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}
