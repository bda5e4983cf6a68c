package linearmodel

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// SimpleCoefficients is the fit of a single independent variable, y ~ intercept + slope*x
type SimpleCoefficients struct {
	Intercept float64 `json:"intercept"`
	Slope     float64 `json:"slope"`
}

// Predict returns the estimated dependent value for a single independent value
func (c SimpleCoefficients) Predict(x float64) float64 {
	return c.Slope*x + c.Intercept
}

// EstimateSimple computes the least squares intercept and slope of y against x. The slope is the
// cross deviation of x and y divided by the deviation of x about its mean, and the intercept is
// back substituted through both means. An x with zero variance returns ErrDegenerateVariance and
// sums that leave the float64 range return ErrNumericOverflow.
func EstimateSimple(x, y []float64) (SimpleCoefficients, error) {
	if err := validateObservations(len(x), len(y)); err != nil {
		return SimpleCoefficients{}, err
	}
	if err := validateFinite("independent variable", x); err != nil {
		return SimpleCoefficients{}, err
	}
	if err := validateFinite("dependent variable", y); err != nil {
		return SimpleCoefficients{}, err
	}

	n := float64(len(x))
	xMean := stat.Mean(x, nil)
	yMean := stat.Mean(y, nil)

	crossDeviation := floats.Dot(x, y) - n*xMean*yMean
	xDeviation := floats.Dot(x, x) - n*xMean*xMean
	if !allFinite(crossDeviation, xDeviation) {
		return SimpleCoefficients{}, fmt.Errorf("deviation sums, %w", ErrNumericOverflow)
	}
	if degenerate(x, xDeviation) {
		return SimpleCoefficients{}, ErrDegenerateVariance
	}

	slope := crossDeviation / xDeviation
	intercept := yMean - slope*xMean
	if !allFinite(slope, intercept) {
		return SimpleCoefficients{}, fmt.Errorf("slope %v and intercept %v, %w", slope, intercept, ErrNumericOverflow)
	}
	return SimpleCoefficients{
		Intercept: intercept,
		Slope:     slope,
	}, nil
}

// PredictSimple evaluates the fit for every independent value, preserving input order
func PredictSimple(x []float64, c SimpleCoefficients) []float64 {
	res := make([]float64, len(x))
	floats.ScaleTo(res, c.Slope, x)
	floats.AddConst(c.Intercept, res)
	return res
}

// SimpleRegression fits a single column design matrix with EstimateSimple
type SimpleRegression struct {
	coef   SimpleCoefficients
	fitted bool
}

// NewSimpleRegression initializes a simple linear regression ready for fitting
func NewSimpleRegression() *SimpleRegression {
	return &SimpleRegression{}
}

// NewSimpleRegressionFromCoefficients initializes a simple linear regression from a previous fit
func NewSimpleRegressionFromCoefficients(c SimpleCoefficients) *SimpleRegression {
	return &SimpleRegression{coef: c, fitted: true}
}

// Fit the model according to the given training data. x must have exactly one column.
func (s *SimpleRegression) Fit(x, y mat.Matrix) error {
	if x == nil {
		return ErrNoTrainingMatrix
	}
	if y == nil {
		return ErrNoTargetMatrix
	}
	_, n := x.Dims()
	if n != 1 {
		return fmt.Errorf("got %d features in training matrix, but expected 1, %w", n, ErrFeatureLenMismatch)
	}

	coef, err := EstimateSimple(mat.Col(nil, 0, x), targetSlice(y))
	if err != nil {
		return err
	}
	s.coef = coef
	s.fitted = true
	return nil
}

// Predict using the simple regression model
func (s *SimpleRegression) Predict(x mat.Matrix) ([]float64, error) {
	if !s.fitted {
		return nil, ErrNotFitted
	}
	if x == nil {
		return nil, ErrNoDesignMatrix
	}
	_, n := x.Dims()
	if n != 1 {
		return nil, fmt.Errorf("got %d features in design matrix, but expected 1, %w", n, ErrFeatureLenMismatch)
	}
	return PredictSimple(mat.Col(nil, 0, x), s.coef), nil
}

// Score computes the coefficient of determination of the prediction
func (s *SimpleRegression) Score(x, y mat.Matrix) (float64, error) {
	return score(s, x, y)
}

// Intercept returns the fit intercept, 0.0 before fitting
func (s *SimpleRegression) Intercept() float64 {
	return s.coef.Intercept
}

// Coef returns the single slope as a one element slice
func (s *SimpleRegression) Coef() []float64 {
	return []float64{s.coef.Slope}
}

// Coefficients returns the fit intercept and slope
func (s *SimpleRegression) Coefficients() SimpleCoefficients {
	return s.coef
}
