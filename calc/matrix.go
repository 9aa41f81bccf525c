package calc

import (
	"context"
	"strconv"
	"strings"

	"github.com/symwasm/symwasm/symengine"
)

// Matrix entry points move whole matrices across the text boundary as three
// values: row count, column count, and a comma-separated element list in
// row-major order. The element count must equal rows*cols.

// parseMatrixArgs builds a matrix from one (rows, cols, csv) triple. The
// parsed elements are copied into the matrix, so they are released before
// returning.
func parseMatrixArgs(op string, eng symengine.Engine, rowsArg, colsArg, csvArg string) (*symengine.Matrix, error) {
	rows, err := parseIntArg(op, rowsArg)
	if err != nil {
		return nil, err
	}
	cols, err := parseIntArg(op, colsArg)
	if err != nil {
		return nil, err
	}

	fields := strings.Split(csvArg, ",")
	elems := make([]*symengine.Expr, 0, len(fields))
	closeAll := func() {
		for _, e := range elems {
			e.Close()
		}
	}
	for _, f := range fields {
		e, err := symengine.Parse(eng, strings.TrimSpace(f))
		if err != nil {
			closeAll()
			return nil, err
		}
		elems = append(elems, e)
	}

	m, err := symengine.NewMatrix(eng, rows, cols, elems)
	closeAll()
	if err != nil {
		return nil, err
	}
	return m, nil
}

func parseIntArg(op, s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, &ArgumentError{Name: op, Arg: s, Want: "integer", Err: err}
	}
	return n, nil
}

// matrixUnaryOp builds an entry point over one matrix triple.
func matrixUnaryOp(name string, fn func(*symengine.Matrix) (string, error)) Op {
	return Op{Name: name, Arity: 3, Category: "matrix", apply: func(ctx context.Context, eng symengine.Engine, args []string) (string, error) {
		m, err := parseMatrixArgs(name, eng, args[0], args[1], args[2])
		if err != nil {
			return "", err
		}
		defer m.Close()
		return fn(m)
	}}
}

// matrixBinaryOp builds an entry point over two matrix triples.
func matrixBinaryOp(name string, fn func(a, b *symengine.Matrix) (*symengine.Matrix, error)) Op {
	return Op{Name: name, Arity: 6, Category: "matrix", apply: func(ctx context.Context, eng symengine.Engine, args []string) (string, error) {
		a, err := parseMatrixArgs(name, eng, args[0], args[1], args[2])
		if err != nil {
			return "", err
		}
		defer a.Close()
		b, err := parseMatrixArgs(name, eng, args[3], args[4], args[5])
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

func matrixDet(m *symengine.Matrix) (string, error) {
	det, err := m.Det()
	if err != nil {
		return "", err
	}
	defer det.Close()
	return det.Text()
}

func matrixInv(m *symengine.Matrix) (string, error) {
	inv, err := m.Inv()
	if err != nil {
		return "", err
	}
	defer inv.Close()
	return inv.Text()
}

func matrixTranspose(m *symengine.Matrix) (string, error) {
	tr, err := m.Transpose()
	if err != nil {
		return "", err
	}
	defer tr.Close()
	return tr.Text()
}
