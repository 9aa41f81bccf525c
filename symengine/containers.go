package symengine

// Transient container views over native collections. They exist only to move
// multiple values across the boundary within one wrapper call: created,
// unpacked into host-native slices, and released before the call returns.
// None of them is exposed to callers.

type vecBasic struct {
	eng Engine
	ptr Ptr
}

func newVecBasic(eng Engine) (*vecBasic, error) {
	ptr, err := eng.Call("vecbasic_new")
	if err != nil {
		return nil, err
	}
	if ptr == 0 {
		return nil, &AllocError{Op: "vecbasic_new"}
	}
	return &vecBasic{eng: eng, ptr: Ptr(ptr)}, nil
}

func (v *vecBasic) free() {
	v.eng.Call("vecbasic_free", uint64(v.ptr)) //nolint:errcheck // release cannot be retried
}

func (v *vecBasic) push(e *Expr) error {
	if err := e.check(); err != nil {
		return err
	}
	return call(v.eng, "vecbasic_push_back", uint64(v.ptr), uint64(e.ptr))
}

func (v *vecBasic) size() (int, error) {
	n, err := v.eng.Call("vecbasic_size", uint64(v.ptr))
	return int(n), err
}

func (v *vecBasic) get(i int) (*Expr, error) {
	r, err := newBasic(v.eng)
	if err != nil {
		return nil, err
	}
	if err := call(v.eng, "vecbasic_get", uint64(v.ptr), uint64(i), uint64(r.ptr)); err != nil {
		r.Close()
		return nil, err
	}
	return r, nil
}

// strings unpacks the whole vector into default text forms, releasing every
// intermediate handle.
func (v *vecBasic) strings() ([]string, error) {
	n, err := v.size()
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		e, err := v.get(i)
		if err != nil {
			return nil, err
		}
		s, err := e.Text()
		e.Close()
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

type setBasic struct {
	eng Engine
	ptr Ptr
}

func newSetBasic(eng Engine) (*setBasic, error) {
	ptr, err := eng.Call("setbasic_new")
	if err != nil {
		return nil, err
	}
	if ptr == 0 {
		return nil, &AllocError{Op: "setbasic_new"}
	}
	return &setBasic{eng: eng, ptr: Ptr(ptr)}, nil
}

func (s *setBasic) free() {
	s.eng.Call("setbasic_free", uint64(s.ptr)) //nolint:errcheck // release cannot be retried
}

func (s *setBasic) size() (int, error) {
	n, err := s.eng.Call("setbasic_size", uint64(s.ptr))
	return int(n), err
}

func (s *setBasic) get(i int) (*Expr, error) {
	r, err := newBasic(s.eng)
	if err != nil {
		return nil, err
	}
	// setbasic_get returns no status.
	if _, err := s.eng.Call("setbasic_get", uint64(s.ptr), uint64(i), uint64(r.ptr)); err != nil {
		r.Close()
		return nil, err
	}
	return r, nil
}

func (s *setBasic) strings() ([]string, error) {
	n, err := s.size()
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		e, err := s.get(i)
		if err != nil {
			return nil, err
		}
		text, err := e.Text()
		e.Close()
		if err != nil {
			return nil, err
		}
		out = append(out, text)
	}
	return out, nil
}

type mapBasicBasic struct {
	eng Engine
	ptr Ptr
}

func newMapBasicBasic(eng Engine) (*mapBasicBasic, error) {
	ptr, err := eng.Call("mapbasicbasic_new")
	if err != nil {
		return nil, err
	}
	if ptr == 0 {
		return nil, &AllocError{Op: "mapbasicbasic_new"}
	}
	return &mapBasicBasic{eng: eng, ptr: Ptr(ptr)}, nil
}

func (m *mapBasicBasic) free() {
	m.eng.Call("mapbasicbasic_free", uint64(m.ptr)) //nolint:errcheck // release cannot be retried
}

func (m *mapBasicBasic) insert(key, value *Expr) error {
	if err := key.check(); err != nil {
		return err
	}
	if err := value.check(); err != nil {
		return err
	}
	_, err := m.eng.Call("mapbasicbasic_insert", uint64(m.ptr), uint64(key.ptr), uint64(value.ptr))
	return err
}

// FreeSymbols returns the names of the free symbols of e, in the native set's
// iteration order. The order is engine-defined and in particular not sorted.
func (e *Expr) FreeSymbols() ([]string, error) {
	if err := e.check(); err != nil {
		return nil, err
	}
	set, err := newSetBasic(e.eng)
	if err != nil {
		return nil, err
	}
	defer set.free()
	if err := call(e.eng, "basic_free_symbols", uint64(e.ptr), uint64(set.ptr)); err != nil {
		return nil, err
	}
	return set.strings()
}

// SolvePoly solves e = 0 for sym as a polynomial. Solutions come back in the
// native set's iteration order, rendered as text. An empty slice is a valid
// outcome for non-polynomial or unsolved input, not an error.
func (e *Expr) SolvePoly(sym *Expr) ([]string, error) {
	if err := e.check(); err != nil {
		return nil, err
	}
	if err := sym.check(); err != nil {
		return nil, err
	}
	set, err := newSetBasic(e.eng)
	if err != nil {
		return nil, err
	}
	defer set.free()
	if err := call(e.eng, "basic_solve_poly", uint64(set.ptr), uint64(e.ptr), uint64(sym.ptr)); err != nil {
		return nil, err
	}
	return set.strings()
}

// Substitution is one from→to pair for SubsMap.
type Substitution struct {
	From *Expr
	To   *Expr
}

// SubsMap applies all pairs as a single simultaneous substitution through the
// native map, not sequentially: later pairs never see the results of earlier
// ones.
func (e *Expr) SubsMap(pairs []Substitution) (*Expr, error) {
	if err := e.check(); err != nil {
		return nil, err
	}
	m, err := newMapBasicBasic(e.eng)
	if err != nil {
		return nil, err
	}
	defer m.free()
	for _, p := range pairs {
		if err := m.insert(p.From, p.To); err != nil {
			return nil, err
		}
	}
	r, err := newBasic(e.eng)
	if err != nil {
		return nil, err
	}
	if err := call(e.eng, "basic_subs", uint64(r.ptr), uint64(e.ptr), uint64(m.ptr)); err != nil {
		r.Close()
		return nil, err
	}
	return r, nil
}

// buildVec packs exprs into a fresh native vector. The caller releases it.
func buildVec(eng Engine, exprs []*Expr) (*vecBasic, error) {
	v, err := newVecBasic(eng)
	if err != nil {
		return nil, err
	}
	for _, e := range exprs {
		if err := v.push(e); err != nil {
			v.free()
			return nil, err
		}
	}
	return v, nil
}

// AddVec sums all expressions in one native call.
func AddVec(eng Engine, exprs []*Expr) (*Expr, error) {
	return vecReduce(eng, "basic_add_vec", exprs)
}

// MulVec multiplies all expressions in one native call.
func MulVec(eng Engine, exprs []*Expr) (*Expr, error) {
	return vecReduce(eng, "basic_mul_vec", exprs)
}

func vecReduce(eng Engine, op string, exprs []*Expr) (*Expr, error) {
	v, err := buildVec(eng, exprs)
	if err != nil {
		return nil, err
	}
	defer v.free()
	r, err := newBasic(eng)
	if err != nil {
		return nil, err
	}
	if err := call(eng, op, uint64(r.ptr), uint64(v.ptr)); err != nil {
		r.Close()
		return nil, err
	}
	return r, nil
}

// LinSolve solves the linear system eqs = 0 for syms, returning one solution
// expression per symbol, rendered as text in symbol order.
func LinSolve(eng Engine, eqs, syms []*Expr) ([]string, error) {
	sys, err := buildVec(eng, eqs)
	if err != nil {
		return nil, err
	}
	defer sys.free()
	vars, err := buildVec(eng, syms)
	if err != nil {
		return nil, err
	}
	defer vars.free()
	sol, err := newVecBasic(eng)
	if err != nil {
		return nil, err
	}
	defer sol.free()
	if err := call(eng, "vecbasic_linsolve", uint64(sol.ptr), uint64(sys.ptr), uint64(vars.ptr)); err != nil {
		return nil, err
	}
	return sol.strings()
}
