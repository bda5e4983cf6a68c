package linearmodel

import (
	"math"
	"testing"

	"github.com/aouyang1/go-linreg/dataset"
	mat_ "github.com/aouyang1/go-linreg/mat"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestEstimateSimple(t *testing.T) {
	tol := 1e-9
	testData := map[string]struct {
		x         []float64
		y         []float64
		intercept float64
		slope     float64
	}{
		"exact line through origin": {
			x:         []float64{1, 2, 3, 4, 5},
			y:         []float64{2, 4, 6, 8, 10},
			intercept: 0.0,
			slope:     2.0,
		},
		"noisy": {
			x:         []float64{1, 2, 3, 4, 5},
			y:         []float64{2, 3, 5, 4, 6},
			intercept: 1.3,
			slope:     0.9,
		},
		"negative slope with intercept": {
			x:         []float64{-2, 0, 1, 7},
			y:         []float64{13, 9, 7, -5},
			intercept: 9.0,
			slope:     -2.0,
		},
		"two points": {
			x:         []float64{0.5, 1.5},
			y:         []float64{1, 4},
			intercept: -0.5,
			slope:     3.0,
		},
		"decimal inputs": {
			x:         []float64{0.1, 0.2, 0.3, 0.4},
			y:         []float64{1.25, 1.5, 1.75, 2.0},
			intercept: 1.0,
			slope:     2.5,
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			c, err := EstimateSimple(td.x, td.y)
			require.Nil(t, err)
			assert.InDelta(t, td.intercept, c.Intercept, tol, "intercept")
			assert.InDelta(t, td.slope, c.Slope, tol, "slope")
		})
	}
}

func TestEstimateSimpleErrors(t *testing.T) {
	testData := map[string]struct {
		x   []float64
		y   []float64
		err error
	}{
		"length mismatch": {
			x:   []float64{1, 2, 3},
			y:   []float64{1, 2},
			err: ErrTargetLenMismatch,
		},
		"empty": {
			err: ErrInsufficientData,
		},
		"single observation": {
			x:   []float64{1},
			y:   []float64{2},
			err: ErrInsufficientData,
		},
		"degenerate variance": {
			x:   []float64{5, 5, 5, 5},
			y:   []float64{1, 2, 3, 4},
			err: ErrDegenerateVariance,
		},
		"degenerate decimal variance": {
			x:   []float64{0.1, 0.1, 0.1},
			y:   []float64{1, 2, 3},
			err: ErrDegenerateVariance,
		},
		"overflowing deviation sums": {
			x:   []float64{1e200, 2e200},
			y:   []float64{1, 2},
			err: ErrNumericOverflow,
		},
		"overflowing slope": {
			x:   []float64{0, 1e-160},
			y:   []float64{0, 1e200},
			err: ErrNumericOverflow,
		},
		"nan independent": {
			x:   []float64{1, math.NaN(), 3},
			y:   []float64{1, 2, 3},
			err: ErrInvalidValue,
		},
		"infinite dependent": {
			x:   []float64{1, 2, 3},
			y:   []float64{1, math.Inf(1), 3},
			err: ErrInvalidValue,
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			c, err := EstimateSimple(td.x, td.y)
			require.ErrorIs(t, err, td.err)
			assert.Equal(t, SimpleCoefficients{}, c)
		})
	}
}

func TestPredictSimple(t *testing.T) {
	c, err := EstimateSimple([]float64{1, 2, 3, 4, 5}, []float64{2, 4, 6, 8, 10})
	require.Nil(t, err)

	assert.InDeltaSlice(t, []float64{12.0}, PredictSimple([]float64{6}, c), 1e-9)
	assert.InDelta(t, 12.0, c.Predict(6), 1e-9)
	assert.Empty(t, PredictSimple(nil, c))

	c = SimpleCoefficients{Intercept: 1.5, Slope: -2}
	assert.Equal(t, []float64{1.5, -0.5, 5.5}, PredictSimple([]float64{0, 1, -2}, c))
}

func TestSimpleExactRecovery(t *testing.T) {
	x := dataset.GenerateRange(50, -10, 0.75)
	y := make([]float64, len(x))
	for i := range y {
		y[i] = -3.7 + 1.9*x[i]
	}

	c, err := EstimateSimple(x, y)
	require.Nil(t, err)
	assert.InEpsilon(t, -3.7, c.Intercept, 1e-9)
	assert.InEpsilon(t, 1.9, c.Slope, 1e-9)

	// predicting the training inputs reproduces the training targets
	assert.InDeltaSlice(t, y, PredictSimple(x, c), 1e-9)
}

func TestSimpleTranslationInvariance(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5}
	y := []float64{2, 3, 5, 4, 6}
	shift := 100.0

	c, err := EstimateSimple(x, y)
	require.Nil(t, err)

	shifted := dataset.GenerateConstY(len(x), shift).Add(x)
	cShift, err := EstimateSimple(shifted, y)
	require.Nil(t, err)

	assert.InDelta(t, c.Slope, cShift.Slope, 1e-9)
	assert.InDelta(t, c.Intercept-c.Slope*shift, cShift.Intercept, 1e-9)
}

func TestSimpleRegression(t *testing.T) {
	tol := 1e-9
	x := mat.NewDense(4, 1, []float64{-2, 0, 1, 7})
	y := mat.NewDense(4, 1, []float64{13, 9, 7, -5})

	model := NewSimpleRegression()
	testModel(t, model, x, y, 9.0, []float64{-2.0}, tol)
	assert.Equal(t, SimpleCoefficients{Intercept: model.Intercept(), Slope: model.Coef()[0]}, model.Coefficients())

	res, err := model.Predict(mat.NewDense(2, 1, []float64{3, -1}))
	require.Nil(t, err)
	assert.InDeltaSlice(t, []float64{3, 11}, res, tol)

	loaded := NewSimpleRegressionFromCoefficients(model.Coefficients())
	res, err = loaded.Predict(mat.NewDense(2, 1, []float64{3, -1}))
	require.Nil(t, err)
	assert.InDeltaSlice(t, []float64{3, 11}, res, tol)
}

func TestSimpleRegressionErrors(t *testing.T) {
	model := NewSimpleRegression()

	_, err := model.Predict(mat.NewDense(1, 1, []float64{1}))
	assert.ErrorIs(t, err, ErrNotFitted)

	assert.ErrorIs(t, model.Fit(nil, mat.NewDense(2, 1, nil)), ErrNoTrainingMatrix)
	assert.ErrorIs(t, model.Fit(mat.NewDense(2, 1, nil), nil), ErrNoTargetMatrix)

	x, err := mat_.NewDenseFromArray([][]float64{{1, 2}, {3, 4}})
	require.Nil(t, err)
	assert.ErrorIs(t, model.Fit(x, mat.NewDense(2, 1, []float64{1, 2})), ErrFeatureLenMismatch)

	err = model.Fit(mat.NewDense(3, 1, []float64{2, 2, 2}), mat.NewDense(3, 1, []float64{1, 2, 3}))
	assert.ErrorIs(t, err, ErrDegenerateVariance)

	require.Nil(t, model.Fit(mat.NewDense(2, 1, []float64{0, 1}), mat.NewDense(2, 1, []float64{1, 3})))
	_, err = model.Predict(x)
	assert.ErrorIs(t, err, ErrFeatureLenMismatch)
	_, err = model.Predict(nil)
	assert.ErrorIs(t, err, ErrNoDesignMatrix)

	_, err = model.Score(mat.NewDense(2, 1, []float64{0, 1}), mat.NewDense(3, 1, []float64{1, 3, 5}))
	assert.ErrorIs(t, err, ErrTargetLenMismatch)
}

func BenchmarkEstimateSimple(b *testing.B) {
	x := dataset.GenerateRange(10000, 0, 0.1)
	y := dataset.GenerateNoise(10000, 1.0, nil).Add(x)

	for b.Loop() {
		if _, err := EstimateSimple(x, y); err != nil {
			b.Fatal(err)
		}
	}
}
