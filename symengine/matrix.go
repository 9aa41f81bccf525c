package symengine

// Matrix is an owning handle over one native dense matrix: a rectangular grid
// of expressions addressed by (row, column), 0-indexed, row-major. Operations
// return new matrices and never mutate in place. Dimension contracts are
// checked host-side before the native call, so incompatible shapes surface as
// a ShapeError and never as an out-of-bounds native read.
type Matrix struct {
	eng    Engine
	ptr    Ptr
	rows   int
	cols   int
	closed bool
}

// NewMatrix builds a rows x cols matrix from a flat row-major element
// sequence. The element count must equal rows*cols; the elements are copied
// into the matrix and remain owned by the caller.
func NewMatrix(eng Engine, rows, cols int, elems []*Expr) (*Matrix, error) {
	if rows <= 0 || cols <= 0 || len(elems) != rows*cols {
		return nil, &ShapeError{Op: "dense_matrix_new_rows_cols", RowsA: rows, ColsA: cols}
	}
	ptr, err := eng.Call("dense_matrix_new_rows_cols", uint64(rows), uint64(cols))
	if err != nil {
		return nil, err
	}
	if ptr == 0 {
		return nil, &AllocError{Op: "dense_matrix_new_rows_cols"}
	}
	m := &Matrix{eng: eng, ptr: Ptr(ptr), rows: rows, cols: cols}
	for i, el := range elems {
		if err := el.check(); err != nil {
			m.Close()
			return nil, err
		}
		r, c := i/cols, i%cols
		if err := call(eng, "dense_matrix_set_basic", uint64(m.ptr), uint64(r), uint64(c), uint64(el.ptr)); err != nil {
			m.Close()
			return nil, err
		}
	}
	return m, nil
}

// newEmptyMatrix allocates a result matrix for a native transformation.
func newEmptyMatrix(eng Engine, rows, cols int) (*Matrix, error) {
	ptr, err := eng.Call("dense_matrix_new")
	if err != nil {
		return nil, err
	}
	if ptr == 0 {
		return nil, &AllocError{Op: "dense_matrix_new"}
	}
	return &Matrix{eng: eng, ptr: Ptr(ptr), rows: rows, cols: cols}, nil
}

// Close releases the native matrix. Only the first call reaches the engine.
func (m *Matrix) Close() error {
	if m == nil || m.closed {
		return nil
	}
	m.closed = true
	_, err := m.eng.Call("dense_matrix_free", uint64(m.ptr))
	return err
}

func (m *Matrix) check() error {
	if m == nil || m.closed {
		return ErrClosed
	}
	return nil
}

// Rows returns the row count.
func (m *Matrix) Rows() int { return m.rows }

// Cols returns the column count.
func (m *Matrix) Cols() int { return m.cols }

// Det returns the determinant as a scalar expression.
func (m *Matrix) Det() (*Expr, error) {
	if err := m.check(); err != nil {
		return nil, err
	}
	if m.rows != m.cols {
		return nil, &ShapeError{Op: "dense_matrix_det", RowsA: m.rows, ColsA: m.cols}
	}
	r, err := newBasic(m.eng)
	if err != nil {
		return nil, err
	}
	if err := call(m.eng, "dense_matrix_det", uint64(r.ptr), uint64(m.ptr)); err != nil {
		r.Close()
		return nil, err
	}
	return r, nil
}

// Mul returns the matrix product m * o. Requires m.Cols() == o.Rows().
func (m *Matrix) Mul(o *Matrix) (*Matrix, error) {
	if err := m.check(); err != nil {
		return nil, err
	}
	if err := o.check(); err != nil {
		return nil, err
	}
	if m.cols != o.rows {
		return nil, &ShapeError{Op: "dense_matrix_mul_matrix",
			RowsA: m.rows, ColsA: m.cols, RowsB: o.rows, ColsB: o.cols}
	}
	return m.transform("dense_matrix_mul_matrix", m.rows, o.cols, uint64(o.ptr))
}

// Inv returns the inverse. Requires a square matrix; the engine reports
// non-invertibility as a failure status.
func (m *Matrix) Inv() (*Matrix, error) {
	if err := m.check(); err != nil {
		return nil, err
	}
	if m.rows != m.cols {
		return nil, &ShapeError{Op: "dense_matrix_inv", RowsA: m.rows, ColsA: m.cols}
	}
	return m.transform("dense_matrix_inv", m.rows, m.cols)
}

// Transpose returns the transpose.
func (m *Matrix) Transpose() (*Matrix, error) {
	if err := m.check(); err != nil {
		return nil, err
	}
	return m.transform("dense_matrix_transpose", m.cols, m.rows)
}

// AddMatrix returns the elementwise sum m + o. Requires equal dimensions.
func (m *Matrix) AddMatrix(o *Matrix) (*Matrix, error) {
	if err := m.check(); err != nil {
		return nil, err
	}
	if err := o.check(); err != nil {
		return nil, err
	}
	if m.rows != o.rows || m.cols != o.cols {
		return nil, &ShapeError{Op: "dense_matrix_add_matrix",
			RowsA: m.rows, ColsA: m.cols, RowsB: o.rows, ColsB: o.cols}
	}
	return m.transform("dense_matrix_add_matrix", m.rows, m.cols, uint64(o.ptr))
}

// MulScalar returns m with every element multiplied by s.
func (m *Matrix) MulScalar(s *Expr) (*Matrix, error) {
	if err := m.check(); err != nil {
		return nil, err
	}
	if err := s.check(); err != nil {
		return nil, err
	}
	return m.transform("dense_matrix_mul_scalar", m.rows, m.cols, uint64(s.ptr))
}

// transform runs a native matrix operation into a fresh result matrix.
func (m *Matrix) transform(op string, rows, cols int, extra ...uint64) (*Matrix, error) {
	r, err := newEmptyMatrix(m.eng, rows, cols)
	if err != nil {
		return nil, err
	}
	args := append([]uint64{uint64(r.ptr), uint64(m.ptr)}, extra...)
	if err := call(m.eng, op, args...); err != nil {
		r.Close()
		return nil, err
	}
	return r, nil
}

// Get returns the element at (row, col) as a fresh expression handle.
func (m *Matrix) Get(row, col int) (*Expr, error) {
	if err := m.check(); err != nil {
		return nil, err
	}
	if row < 0 || row >= m.rows || col < 0 || col >= m.cols {
		return nil, &BoundsError{Row: row, Col: col, Rows: m.rows, Cols: m.cols}
	}
	r, err := newBasic(m.eng)
	if err != nil {
		return nil, err
	}
	if err := call(m.eng, "dense_matrix_get_basic", uint64(r.ptr), uint64(m.ptr), uint64(row), uint64(col)); err != nil {
		r.Close()
		return nil, err
	}
	return r, nil
}

// Text returns the native text rendering of the matrix.
func (m *Matrix) Text() (string, error) {
	if err := m.check(); err != nil {
		return "", err
	}
	ptr, err := m.eng.Call("dense_matrix_str", uint64(m.ptr))
	if err != nil {
		return "", err
	}
	if ptr == 0 {
		return "", &AllocError{Op: "dense_matrix_str"}
	}
	s, err := m.eng.ReadString(Ptr(ptr))
	m.eng.Call("basic_str_free", ptr) //nolint:errcheck // release of a native string cannot be retried
	return s, err
}
