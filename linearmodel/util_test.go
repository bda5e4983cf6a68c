package linearmodel

import (
	"testing"

	"github.com/aouyang1/go-linreg/dataset"
	mat_ "github.com/aouyang1/go-linreg/mat"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func testModel(t *testing.T, model Model, x, y mat.Matrix, intercept float64, coef []float64, tol float64) {
	err := model.Fit(x, y)
	require.Nil(t, err)

	assert.InDelta(t, intercept, model.Intercept(), tol, "intercept")

	c := model.Coef()
	assert.InDeltaSlice(t, coef, c, tol, "coefficients")

	r2, err := model.Score(x, y)
	require.Nil(t, err)
	assert.InDelta(t, 1.0, r2, tol, "score")
}

// generateBenchData builds a factorial design with nFeat uncorrelated columns and an exactly
// linear target
func generateBenchData(nFeat int) (mat.Matrix, mat.Matrix, error) {
	data := dataset.GenerateFactorialDesign(nFeat)

	slopes := dataset.GenerateRange(nFeat, 1.0, 0.5)
	y, err := dataset.GenerateLinearY(data, 3.0, slopes)
	if err != nil {
		return nil, nil, err
	}

	x, err := mat_.NewDenseFromArray(data)
	if err != nil {
		return nil, nil, err
	}
	yMx, err := mat_.NewColumn(y)
	if err != nil {
		return nil, nil, err
	}
	return x, yMx, nil
}

func TestValidateObservations(t *testing.T) {
	assert.Nil(t, validateObservations(2, 2))
	assert.ErrorIs(t, validateObservations(3, 2), ErrTargetLenMismatch)
	assert.ErrorIs(t, validateObservations(1, 1), ErrInsufficientData)
	assert.ErrorIs(t, validateObservations(0, 0), ErrInsufficientData)
}
