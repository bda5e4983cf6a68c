// Package stats holds diagnostics over the columns of a design matrix
package stats

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// CorrelatedPair is a pair of design matrix columns, ColA < ColB, with their Pearson correlation
type CorrelatedPair struct {
	ColA        int     `json:"column_a"`
	ColB        int     `json:"column_b"`
	Correlation float64 `json:"correlation"`
}

// CorrelatedPairs returns every pair of columns whose absolute correlation is strictly greater
// than the threshold. Pairs involving a constant column have an undefined correlation and are
// skipped.
func CorrelatedPairs(x mat.Matrix, threshold float64) []CorrelatedPair {
	if x == nil {
		return nil
	}
	m, n := x.Dims()
	if m < 2 || n < 2 {
		return nil
	}

	cols := make([][]float64, n)
	for j := 0; j < n; j++ {
		cols[j] = mat.Col(nil, j, x)
	}

	var pairs []CorrelatedPair
	for a := 0; a < n; a++ {
		for b := a + 1; b < n; b++ {
			corr := stat.Correlation(cols[a], cols[b], nil)
			if math.IsNaN(corr) || math.Abs(corr) <= threshold {
				continue
			}
			pairs = append(pairs, CorrelatedPair{
				ColA:        a,
				ColB:        b,
				Correlation: corr,
			})
		}
	}
	return pairs
}
