// Package mat converts between row slices and gonum matrices
package mat

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

var (
	ErrColMismatch = errors.New("column size mismatch")
	ErrEmptyMatrix = errors.New("matrix must have at least one row and one column")
)

// NewDenseFromArray builds a row ordered dense matrix. Every row must have the same number of
// columns.
func NewDenseFromArray(x [][]float64) (*mat.Dense, error) {
	m := len(x)
	if m == 0 {
		return nil, ErrEmptyMatrix
	}

	n := len(x[0])
	for i, row := range x {
		if len(row) != n {
			return nil, fmt.Errorf("at row %d got %d columns, expected %d, %w", i, len(row), n, ErrColMismatch)
		}
	}
	if n == 0 {
		return nil, ErrEmptyMatrix
	}

	// flatten to row order
	data := make([]float64, 0, m*n)
	for _, row := range x {
		data = append(data, row...)
	}
	return mat.NewDense(m, n, data), nil
}

// NewColumn builds an N x 1 matrix from a copy of y
func NewColumn(y []float64) (*mat.Dense, error) {
	if len(y) == 0 {
		return nil, ErrEmptyMatrix
	}
	data := make([]float64, len(y))
	copy(data, y)
	return mat.NewDense(len(y), 1, data), nil
}

// Rows copies a matrix out into row slices
func Rows(x mat.Matrix) [][]float64 {
	if x == nil {
		return nil
	}
	m, _ := x.Dims()
	rows := make([][]float64, m)
	for i := 0; i < m; i++ {
		rows[i] = mat.Row(nil, i, x)
	}
	return rows
}
