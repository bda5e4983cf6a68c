// Package dataset generates synthetic regression observations for tests, benchmarks and examples
package dataset

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"gonum.org/v1/gonum/floats"
)

var (
	ErrSlopeLenMismatch = errors.New("number of slopes does not match number of columns")
	ErrColMismatch      = errors.New("row has a different number of columns")
	ErrPermutation      = errors.New("invalid column permutation")
)

type Series []float64

func (s Series) Add(src Series) Series {
	floats.Add(s, src)
	return s
}

func (s Series) AddConst(c float64) Series {
	floats.AddConst(c, s)
	return s
}

// GenerateRange returns n evenly spaced values starting at start
func GenerateRange(n int, start, step float64) Series {
	x := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		x = append(x, start+step*float64(i))
	}
	return Series(x)
}

func GenerateConstY(n int, val float64) Series {
	y := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		y = append(y, val)
	}
	return Series(y)
}

// GenerateNoise draws n normally distributed values scaled by noiseScale. A nil rng uses the
// package level source.
func GenerateNoise(n int, noiseScale float64, rng *rand.Rand) Series {
	y := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		var v float64
		if rng == nil {
			v = rand.NormFloat64()
		} else {
			v = rng.NormFloat64()
		}
		y = append(y, v*noiseScale)
	}
	return Series(y)
}

// GenerateLinearY evaluates intercept + sum(slopes[j]*x[i][j]) for every row
func GenerateLinearY(x [][]float64, intercept float64, slopes []float64) (Series, error) {
	y := make([]float64, 0, len(x))
	for i, row := range x {
		if len(row) != len(slopes) {
			return nil, fmt.Errorf("row %d has %d columns and got %d slopes, %w", i, len(row), len(slopes), ErrSlopeLenMismatch)
		}
		y = append(y, intercept+floats.Dot(row, slopes))
	}
	return Series(y), nil
}

// GenerateFactorialDesign returns the 2^m rows of a full factorial design with 0/1 levels. Every
// pair of columns has zero covariance.
func GenerateFactorialDesign(m int) [][]float64 {
	if m <= 0 {
		return nil
	}
	rows := 1 << m
	x := make([][]float64, rows)
	for i := 0; i < rows; i++ {
		row := make([]float64, m)
		for j := 0; j < m; j++ {
			row[j] = float64((i >> j) & 1)
		}
		x[i] = row
	}
	return x
}

// ShiftColumns returns a copy of x with shift[j] added to every value of column j
func ShiftColumns(x [][]float64, shift []float64) ([][]float64, error) {
	out := make([][]float64, len(x))
	for i, row := range x {
		if len(row) != len(shift) {
			return nil, fmt.Errorf("row %d has %d columns and got %d shifts, %w", i, len(row), len(shift), ErrColMismatch)
		}
		r := make([]float64, len(row))
		floats.AddTo(r, row, shift)
		out[i] = r
	}
	return out, nil
}

// PermuteColumns returns a copy of x where column j of the output is column perm[j] of the input
func PermuteColumns(x [][]float64, perm []int) ([][]float64, error) {
	seen := make([]bool, len(perm))
	for _, p := range perm {
		if p < 0 || p >= len(perm) || seen[p] {
			return nil, fmt.Errorf("%v, %w", perm, ErrPermutation)
		}
		seen[p] = true
	}

	out := make([][]float64, len(x))
	for i, row := range x {
		if len(row) != len(perm) {
			return nil, fmt.Errorf("row %d has %d columns and permutation has %d, %w", i, len(row), len(perm), ErrColMismatch)
		}
		r := make([]float64, len(row))
		for j, p := range perm {
			r[j] = row[p]
		}
		out[i] = r
	}
	return out, nil
}
