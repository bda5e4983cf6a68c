// Package linearmodel estimates ordinary least squares coefficients with the closed form
// covariance over variance method, for a single independent variable or for many independent
// variables where each slope is estimated on its own column.
package linearmodel

import (
	"gonum.org/v1/gonum/mat"
)

// Model is a fit-then-predict linear regression over a design matrix whose columns are the
// independent variables. The intercept is always estimated and never part of the design matrix.
type Model interface {
	Fit(x, y mat.Matrix) error
	Predict(x mat.Matrix) ([]float64, error)
	Score(x, y mat.Matrix) (float64, error)
	Intercept() float64
	Coef() []float64
}
