package linearmodel

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

var (
	ErrResLenMismatch   = errors.New("predicted and actual have different lengths")
	ErrNoScorableValues = errors.New("no predicted and actual pair without NaN")
)

// Scores tracks the fit scores
type Scores struct {
	MSE  float64 `json:"mean_squared_error"`
	MAPE float64 `json:"mean_average_percent_error"`
	R2   float64 `json:"r_squared"`
}

// NewScores calculates the fit scores given the predicted and actual input slice values
func NewScores(predicted, actual []float64) (*Scores, error) {
	p, a, err := scorablePairs(predicted, actual)
	if err != nil {
		return nil, err
	}
	return &Scores{
		MSE:  mse(p, a),
		MAPE: mape(p, a),
		R2:   rSquared(p, a),
	}, nil
}

// MSE computes the mean squared error, sum((y-yhat)^2)/n over the pairs without NaN. A score of 0
// is a perfect match.
func MSE(predicted, actual []float64) (float64, error) {
	p, a, err := scorablePairs(predicted, actual)
	if err != nil {
		return 0, err
	}
	return mse(p, a), nil
}

// MAPE calculates the mean average percent error, sum(abs((y-yhat)/y))/n over the pairs without
// NaN. Zero actual values add nothing to the sum.
func MAPE(predicted, actual []float64) (float64, error) {
	p, a, err := scorablePairs(predicted, actual)
	if err != nil {
		return 0, err
	}
	return mape(p, a), nil
}

// RSquared computes the r squared value between the predicted and actual where 1.0 means perfect
// fit and 0 represents no relationship
func RSquared(predicted, actual []float64) (float64, error) {
	p, a, err := scorablePairs(predicted, actual)
	if err != nil {
		return 0, err
	}
	return rSquared(p, a), nil
}

// scorablePairs drops every index where either side is NaN and fails when nothing is left
func scorablePairs(predicted, actual []float64) ([]float64, []float64, error) {
	if len(predicted) != len(actual) {
		return nil, nil, fmt.Errorf("expected %d, but got %d, %w", len(actual), len(predicted), ErrResLenMismatch)
	}
	p := make([]float64, 0, len(predicted))
	a := make([]float64, 0, len(actual))
	for i := range actual {
		if math.IsNaN(actual[i]) || math.IsNaN(predicted[i]) {
			continue
		}
		p = append(p, predicted[i])
		a = append(a, actual[i])
	}
	if len(a) == 0 {
		return nil, nil, fmt.Errorf("%d values scored, %w", len(actual), ErrNoScorableValues)
	}
	return p, a, nil
}

func mse(p, a []float64) float64 {
	var sum float64
	for i := range a {
		diff := a[i] - p[i]
		sum += diff * diff
	}
	return sum / float64(len(a))
}

func mape(p, a []float64) float64 {
	var sum float64
	for i := range a {
		if a[i] == 0 {
			continue
		}
		sum += math.Abs((a[i] - p[i]) / a[i])
	}
	return sum / float64(len(a))
}

// rSquared is only NaN for a zero residual against a constant actual series, a perfect fit
func rSquared(p, a []float64) float64 {
	r2 := stat.RSquaredFrom(p, a, nil)
	if math.IsNaN(r2) {
		return 1.0
	}
	return r2
}

func score(m Model, x, y mat.Matrix) (float64, error) {
	if x == nil {
		return 0.0, ErrNoDesignMatrix
	}
	if y == nil {
		return 0.0, ErrNoTargetMatrix
	}

	xm, _ := x.Dims()
	ym, _ := y.Dims()
	if xm != ym {
		return 0.0, fmt.Errorf("design matrix has %d rows and target has %d rows, %w", xm, ym, ErrTargetLenMismatch)
	}

	res, err := m.Predict(x)
	if err != nil {
		return 0.0, err
	}
	return RSquared(res, targetSlice(y))
}
