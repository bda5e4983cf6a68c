package linearmodel

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync"

	"github.com/aouyang1/go-linreg/stats"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

const DefaultCorrelationThreshold = 0.5

var (
	ErrNegativeParallelization = errors.New("negative parallelization")
	ErrCorrelationThreshold    = errors.New("correlation threshold must be between 0 and 1")
)

// Coefficients is the fit of many independent variables, y ~ intercept + sum(slopes[j]*x[j])
type Coefficients struct {
	Intercept float64   `json:"intercept"`
	Slopes    []float64 `json:"slopes"`
}

// EstimateMultiple computes an intercept and one slope per column of x. Each slope is the simple
// regression slope of y against that column alone, there is no joint solve across columns, so the
// coefficients match the least squares fit only when the columns are mutually uncorrelated. The
// intercept is back substituted through the target mean and every column mean.
//
// Every column is evaluated before failing so the returned error names all columns with zero
// variance or sums beyond the float64 range. No coefficients are returned on error.
func EstimateMultiple(x mat.Matrix, y []float64) (Coefficients, error) {
	return estimateMultiple(x, y, 1)
}

func estimateMultiple(x mat.Matrix, y []float64, parallelization int) (Coefficients, error) {
	if x == nil {
		return Coefficients{}, ErrNoTrainingMatrix
	}
	m, n := x.Dims()
	if err := validateObservations(m, len(y)); err != nil {
		return Coefficients{}, err
	}
	if n == 0 {
		return Coefficients{}, ErrNoFeatures
	}
	if err := validateFinite("dependent variable", y); err != nil {
		return Coefficients{}, err
	}

	cols := make([][]float64, n)
	for j := 0; j < n; j++ {
		cols[j] = mat.Col(nil, j, x)
		if err := validateFinite(fmt.Sprintf("feature column %d", j), cols[j]); err != nil {
			return Coefficients{}, err
		}
	}

	yMean := stat.Mean(y, nil)
	xMeans := make([]float64, n)
	for j, col := range cols {
		xMeans[j] = stat.Mean(col, nil)
	}

	nObs := float64(m)
	slopes := make([]float64, n)
	colErrs := make([]error, n)
	estimateCol := func(j int) {
		col := cols[j]
		crossDeviation := floats.Dot(y, col) - nObs*yMean*xMeans[j]
		xDeviation := floats.Dot(col, col) - nObs*xMeans[j]*xMeans[j]
		if !allFinite(crossDeviation, xDeviation) {
			slopes[j] = math.NaN()
			colErrs[j] = fmt.Errorf("feature column %d deviation sums, %w", j, ErrNumericOverflow)
			return
		}
		if degenerate(col, xDeviation) {
			slopes[j] = math.NaN()
			colErrs[j] = fmt.Errorf("feature column %d, %w", j, ErrDegenerateVariance)
			return
		}
		slopes[j] = crossDeviation / xDeviation
		if !allFinite(slopes[j]) {
			colErrs[j] = fmt.Errorf("feature column %d slope %v, %w", j, slopes[j], ErrNumericOverflow)
		}
	}

	if parallelization <= 1 {
		for j := 0; j < n; j++ {
			estimateCol(j)
		}
	} else {
		// each goroutine only writes its own column slot
		sem := make(chan struct{}, parallelization)
		var wg sync.WaitGroup
		for j := 0; j < n; j++ {
			sem <- struct{}{}
			wg.Add(1)
			go func(j int) {
				defer func() {
					wg.Done()
					<-sem
				}()
				estimateCol(j)
			}(j)
		}
		wg.Wait()
	}

	if err := errors.Join(colErrs...); err != nil {
		return Coefficients{}, err
	}

	intercept := yMean - floats.Dot(slopes, xMeans)
	if !allFinite(intercept) {
		return Coefficients{}, fmt.Errorf("intercept %v, %w", intercept, ErrNumericOverflow)
	}
	return Coefficients{
		Intercept: intercept,
		Slopes:    slopes,
	}, nil
}

// PredictMultiple evaluates dot(x[i,:], slopes) + intercept for every row of x
func PredictMultiple(x mat.Matrix, c Coefficients) ([]float64, error) {
	if x == nil {
		return nil, ErrNoDesignMatrix
	}
	m, n := x.Dims()
	if n != len(c.Slopes) {
		return nil, fmt.Errorf("got %d features in design matrix, but expected %d, %w", n, len(c.Slopes), ErrFeatureLenMismatch)
	}
	if n == 0 {
		return nil, ErrNoFeatures
	}
	if m == 0 {
		return []float64{}, nil
	}

	var res mat.VecDense
	res.MulVec(x, mat.NewVecDense(n, c.Slopes))

	out := make([]float64, m)
	for i := 0; i < m; i++ {
		out[i] = res.AtVec(i)
	}
	floats.AddConst(c.Intercept, out)
	return out, nil
}

// MultipleOptions represents input options to run the multiple regression
type MultipleOptions struct {
	// Parallelization sets how many columns are estimated concurrently. 0 or 1 estimates serially.
	Parallelization int

	// CorrelationThreshold logs a warning for every pair of feature columns whose absolute
	// correlation exceeds it. 0 disables the check.
	CorrelationThreshold float64
}

// Validate runs basic validation on multiple regression options
func (o *MultipleOptions) Validate() (*MultipleOptions, error) {
	if o == nil {
		o = NewDefaultMultipleOptions()
	}

	if o.Parallelization < 0 {
		return nil, ErrNegativeParallelization
	}
	if o.CorrelationThreshold < 0 || o.CorrelationThreshold > 1 {
		return nil, fmt.Errorf("got %.3f, %w", o.CorrelationThreshold, ErrCorrelationThreshold)
	}
	return o, nil
}

// NewDefaultMultipleOptions returns a default set of multiple regression options
func NewDefaultMultipleOptions() *MultipleOptions {
	return &MultipleOptions{
		Parallelization:      1,
		CorrelationThreshold: DefaultCorrelationThreshold,
	}
}

// MultipleRegression fits a design matrix with one slope per column using EstimateMultiple
type MultipleRegression struct {
	opt    *MultipleOptions
	coef   Coefficients
	fitted bool
}

// NewMultipleRegression initializes a multiple linear regression ready for fitting
func NewMultipleRegression(opt *MultipleOptions) (*MultipleRegression, error) {
	opt, err := opt.Validate()
	if err != nil {
		return nil, err
	}
	return &MultipleRegression{
		opt: opt,
	}, nil
}

// NewMultipleRegressionFromCoefficients initializes a multiple linear regression from a previous fit
func NewMultipleRegressionFromCoefficients(c Coefficients, opt *MultipleOptions) (*MultipleRegression, error) {
	r, err := NewMultipleRegression(opt)
	if err != nil {
		return nil, err
	}
	if len(c.Slopes) == 0 {
		return nil, ErrNoFeatures
	}
	r.coef = copyCoefficients(c)
	r.fitted = true
	return r, nil
}

// Fit the model according to the given training data
func (r *MultipleRegression) Fit(x, y mat.Matrix) error {
	if r.opt == nil {
		return ErrNoOptions
	}
	if x == nil {
		return ErrNoTrainingMatrix
	}
	if y == nil {
		return ErrNoTargetMatrix
	}

	coef, err := estimateMultiple(x, targetSlice(y), r.opt.Parallelization)
	if err != nil {
		return err
	}

	if r.opt.CorrelationThreshold > 0 {
		for _, p := range stats.CorrelatedPairs(x, r.opt.CorrelationThreshold) {
			slog.Warn("correlated feature columns bias per column slopes",
				"column_a", p.ColA, "column_b", p.ColB, "correlation", p.Correlation)
		}
	}

	r.coef = coef
	r.fitted = true
	return nil
}

// Predict using the multiple regression model
func (r *MultipleRegression) Predict(x mat.Matrix) ([]float64, error) {
	if !r.fitted {
		return nil, ErrNotFitted
	}
	return PredictMultiple(x, r.coef)
}

// Score computes the coefficient of determination of the prediction
func (r *MultipleRegression) Score(x, y mat.Matrix) (float64, error) {
	return score(r, x, y)
}

// Intercept returns the fit intercept, 0.0 before fitting
func (r *MultipleRegression) Intercept() float64 {
	return r.coef.Intercept
}

// Coef returns a copy of the slopes in the same order as the training matrix columns
func (r *MultipleRegression) Coef() []float64 {
	c := make([]float64, len(r.coef.Slopes))
	copy(c, r.coef.Slopes)
	return c
}

// Coefficients returns a copy of the fit intercept and slopes
func (r *MultipleRegression) Coefficients() Coefficients {
	return copyCoefficients(r.coef)
}

func copyCoefficients(c Coefficients) Coefficients {
	slopes := make([]float64, len(c.Slopes))
	copy(slopes, c.Slopes)
	return Coefficients{Intercept: c.Intercept, Slopes: slopes}
}
