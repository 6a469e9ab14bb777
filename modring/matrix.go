package modring

import (
	"fmt"
	"io"
	"math/big"
)

// Matrix is a dense row-major matrix over Z_q. The flat backing slice
// keeps rows contiguous, which matters at the 512x512 preset.
type Matrix struct {
	rows, cols int
	data       []*big.Int
}

// NewMatrix allocates a zero rows x cols matrix.
func NewMatrix(rows, cols int) (*Matrix, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("modring: matrix dimensions must be positive (got %dx%d)", rows, cols)
	}
	data := make([]*big.Int, rows*cols)
	for i := range data {
		data[i] = new(big.Int)
	}
	return &Matrix{rows: rows, cols: cols, data: data}, nil
}

// RandomMatrix fills a fresh rows x cols matrix with uniform Z_q elements
// drawn from rnd.
func RandomMatrix(r *Ring, rows, cols int, rnd io.Reader) (*Matrix, error) {
	m, err := NewMatrix(rows, cols)
	if err != nil {
		return nil, err
	}
	for i := range m.data {
		x, err := r.RandomElement(rnd)
		if err != nil {
			return nil, err
		}
		m.data[i] = x
	}
	return m, nil
}

// Rows returns the row count.
func (m *Matrix) Rows() int { return m.rows }

// Cols returns the column count.
func (m *Matrix) Cols() int { return m.cols }

// At returns the entry at row i, column j.
func (m *Matrix) At(i, j int) *big.Int {
	return m.data[i*m.cols+j]
}

// SetAt stores a copy of x at row i, column j.
func (m *Matrix) SetAt(i, j int, x *big.Int) {
	m.data[i*m.cols+j].Set(x)
}

// Clone returns a deep copy of m.
func (m *Matrix) Clone() *Matrix {
	out := &Matrix{rows: m.rows, cols: m.cols, data: make([]*big.Int, len(m.data))}
	for i, x := range m.data {
		out.data[i] = new(big.Int).Set(x)
	}
	return out
}

// MatVecMod computes M*v over Z_q with entries reduced to canonical
// [0, q). Coefficients of v are lifted into Z_q before the products.
func MatVecMod(r *Ring, m *Matrix, v Vector) (Vector, error) {
	if m == nil {
		return nil, fmt.Errorf("modring: nil matrix")
	}
	if len(v) != m.cols {
		return nil, fmt.Errorf("modring: dimension mismatch: cols=%d vec=%d", m.cols, len(v))
	}
	lifted := make(Vector, len(v))
	for j := range v {
		lifted[j] = r.Reduce(v[j])
	}
	out := make(Vector, m.rows)
	tmp := new(big.Int)
	for i := 0; i < m.rows; i++ {
		acc := new(big.Int)
		row := m.data[i*m.cols : (i+1)*m.cols]
		for j := 0; j < m.cols; j++ {
			tmp.Mul(row[j], lifted[j])
			acc.Add(acc, tmp)
		}
		r.ReduceInto(acc)
		out[i] = acc
	}
	return out, nil
}
