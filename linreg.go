// Package linreg fits ordinary least squares linear regressions on tabular observations and
// predicts from the fit coefficients. A single feature uses the simple estimator and many
// features use the per column multiple estimator from the linearmodel package.
package linreg

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/aouyang1/go-linreg/linearmodel"
	mat_ "github.com/aouyang1/go-linreg/mat"
	"github.com/go-echarts/go-echarts/v2/components"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

var (
	ErrFeatureLabelsLen = errors.New("number of feature labels does not match number of features")
	ErrNoTrainingData   = errors.New("regressor has no training data")
	ErrNoWeights        = errors.New("model has no feature weights")
)

// Regressor fits a linear regression and can be used to generate predictions
type Regressor struct {
	opt    *Options
	method string
	model  linearmodel.Model
	labels []string

	trainX   [][]float64
	trainY   []float64
	fitted   []float64
	residual []float64
	scores   *linearmodel.Scores
}

// New creates a new instance of a Regressor using the provided options. If no options are
// provided a default is used.
func New(opt *Options) (*Regressor, error) {
	opt, err := opt.Validate()
	if err != nil {
		return nil, err
	}
	return &Regressor{
		opt: opt,
	}, nil
}

// NewFromModel creates a Regressor from a pre-existing model generated by a previous call to
// Model(). The regressor can predict immediately, but has no training data to plot.
func NewFromModel(m Model) (*Regressor, error) {
	opt, err := m.Options.Validate()
	if err != nil {
		return nil, err
	}
	if len(m.Weights) == 0 {
		return nil, ErrNoWeights
	}

	labels := make([]string, 0, len(m.Weights))
	slopes := make([]float64, 0, len(m.Weights))
	for _, fw := range m.Weights {
		labels = append(labels, fw.Label)
		slopes = append(slopes, fw.Value)
	}

	r := &Regressor{
		opt:    opt,
		method: opt.resolveMethod(len(slopes)),
		labels: labels,
	}
	if m.Scores != nil {
		scores := *m.Scores
		r.scores = &scores
	}

	switch r.method {
	case MethodSimple:
		if len(slopes) != 1 {
			return nil, fmt.Errorf("simple model has %d weights, %w", len(slopes), linearmodel.ErrFeatureLenMismatch)
		}
		r.model = linearmodel.NewSimpleRegressionFromCoefficients(
			linearmodel.SimpleCoefficients{Intercept: m.Intercept, Slope: slopes[0]},
		)
	default:
		r.model, err = linearmodel.NewMultipleRegressionFromCoefficients(
			linearmodel.Coefficients{Intercept: m.Intercept, Slopes: slopes},
			opt.multipleOptions(),
		)
		if err != nil {
			return nil, fmt.Errorf("unable to load multiple regression, %w", err)
		}
	}
	return r, nil
}

// Fit estimates the intercept and slopes from x, one row per observation and one column per
// feature, against the target y
func (r *Regressor) Fit(x [][]float64, y []float64) error {
	if len(x) != len(y) {
		return fmt.Errorf("training data has %d rows and target has %d rows, %w", len(x), len(y), linearmodel.ErrTargetLenMismatch)
	}
	if len(x) < 2 {
		return fmt.Errorf("got %d observations, %w", len(x), linearmodel.ErrInsufficientData)
	}

	xMx, err := mat_.NewDenseFromArray(x)
	if err != nil {
		return fmt.Errorf("unable to create training matrix, %w", err)
	}
	yMx, err := mat_.NewColumn(y)
	if err != nil {
		return fmt.Errorf("unable to create target matrix, %w", err)
	}
	m, n := xMx.Dims()

	labels, err := r.featureLabels(n)
	if err != nil {
		return err
	}

	method := r.opt.resolveMethod(n)
	var model linearmodel.Model
	switch method {
	case MethodSimple:
		model = linearmodel.NewSimpleRegression()
	default:
		model, err = linearmodel.NewMultipleRegression(r.opt.multipleOptions())
		if err != nil {
			return fmt.Errorf("unable to initialize multiple regression, %w", err)
		}
	}

	if err := model.Fit(xMx, yMx); err != nil {
		return fmt.Errorf("unable to fit %s regression, %w", method, err)
	}

	fitted, err := model.Predict(xMx)
	if err != nil {
		return fmt.Errorf("unable to predict training data, %w", err)
	}
	residual := make([]float64, len(y))
	floats.SubTo(residual, y, fitted)

	scores, err := linearmodel.NewScores(fitted, y)
	if err != nil {
		return fmt.Errorf("unable to score fit, %w", err)
	}

	r.method = method
	r.model = model
	r.labels = labels
	r.trainX = mat_.Rows(xMx)
	r.trainY = mat.Col(nil, 0, yMx)
	r.fitted = fitted
	r.residual = residual
	r.scores = scores

	slog.Debug("fit linear regression",
		"method", method, "observations", m, "features", n, "r_squared", scores.R2)
	return nil
}

func (r *Regressor) featureLabels(n int) ([]string, error) {
	if len(r.opt.FeatureLabels) == 0 {
		labels := make([]string, n)
		for i := range labels {
			labels[i] = "x" + strconv.Itoa(i+1)
		}
		return labels, nil
	}
	if len(r.opt.FeatureLabels) != n {
		return nil, fmt.Errorf("got %d labels for %d features, %w", len(r.opt.FeatureLabels), n, ErrFeatureLabelsLen)
	}
	labels := make([]string, n)
	copy(labels, r.opt.FeatureLabels)
	return labels, nil
}

// Predict returns the estimated target for every row of x
func (r *Regressor) Predict(x [][]float64) ([]float64, error) {
	if r.model == nil {
		return nil, linearmodel.ErrNotFitted
	}
	if len(x) == 0 {
		return []float64{}, nil
	}
	xMx, err := mat_.NewDenseFromArray(x)
	if err != nil {
		return nil, fmt.Errorf("unable to create design matrix, %w", err)
	}
	return r.model.Predict(xMx)
}

// PredictValues returns the estimated target for each value of a single feature model
func (r *Regressor) PredictValues(x []float64) ([]float64, error) {
	if r.model == nil {
		return nil, linearmodel.ErrNotFitted
	}
	if len(x) == 0 {
		return []float64{}, nil
	}
	xMx, err := mat_.NewColumn(x)
	if err != nil {
		return nil, err
	}
	return r.model.Predict(xMx)
}

// Method returns the estimator used by the last fit or loaded model
func (r *Regressor) Method() string {
	return r.method
}

// Intercept returns the intercept of the fit
func (r *Regressor) Intercept() float64 {
	if r.model == nil {
		return 0.0
	}
	return r.model.Intercept()
}

// Coefficients returns every slope keyed by its feature label
func (r *Regressor) Coefficients() (map[string]float64, error) {
	if r.model == nil {
		return nil, linearmodel.ErrNotFitted
	}
	coef := r.model.Coef()
	if len(coef) != len(r.labels) {
		return nil, fmt.Errorf("got %d labels for %d coefficients, %w", len(r.labels), len(coef), ErrFeatureLabelsLen)
	}
	res := make(map[string]float64, len(coef))
	for i, c := range coef {
		res[r.labels[i]] = c
	}
	return res, nil
}

// Scores returns the fit scores against the training data, nil if never fit
func (r *Regressor) Scores() *linearmodel.Scores {
	if r.scores == nil {
		return nil
	}
	scores := *r.scores
	return &scores
}

// Residuals returns the difference between the training target and the fit
func (r *Regressor) Residuals() []float64 {
	res := make([]float64, len(r.residual))
	copy(res, r.residual)
	return res
}

// ModelEq returns a string representation of the fit model in the format of
// y ~ b + m1*x1 + m2*x2 + ...
func (r *Regressor) ModelEq() (string, error) {
	if r.model == nil {
		return "", linearmodel.ErrNotFitted
	}

	eq := "y ~ "
	eq += fmt.Sprintf("%.2f", r.model.Intercept())
	for i, w := range r.model.Coef() {
		eq += fmt.Sprintf("%+.2f*%s", w, r.labels[i])
	}
	return eq, nil
}

// Model generates a serializeable representation of the options, coefficients and fit scores.
// This can be used to initialize a new Regressor for immediate predictions skipping the fit.
func (r *Regressor) Model() (Model, error) {
	if r.model == nil {
		return Model{}, linearmodel.ErrNotFitted
	}

	coef := r.model.Coef()
	weights := make([]FeatureWeight, 0, len(coef))
	for i, c := range coef {
		weights = append(weights, FeatureWeight{Label: r.labels[i], Value: c})
	}

	opt := *r.opt
	opt.Method = r.method
	opt.FeatureLabels = make([]string, len(r.labels))
	copy(opt.FeatureLabels, r.labels)

	return Model{
		Options:   &opt,
		Intercept: r.model.Intercept(),
		Weights:   weights,
		Scores:    r.Scores(),
	}, nil
}

// TrainingData returns a copy of the observations and target used by the last fit
func (r *Regressor) TrainingData() ([][]float64, []float64) {
	x := make([][]float64, len(r.trainX))
	for i, row := range r.trainX {
		x[i] = make([]float64, len(row))
		copy(x[i], row)
	}
	y := make([]float64, len(r.trainY))
	copy(y, r.trainY)
	return x, y
}

// PlotFit uses the Apache Echarts library to render an html page showing the training target
// against the fit and the fit residual
func (r *Regressor) PlotFit(w io.Writer) error {
	if len(r.trainY) == 0 {
		return ErrNoTrainingData
	}

	page := components.NewPage()
	page.AddCharts(
		LineObservations(
			"Linear Regression Fit",
			[]string{"Actual", "Fit"},
			[][]float64{r.trainY, r.fitted},
		),
		LineObservations(
			"Fit Residual",
			[]string{"Residual"},
			[][]float64{r.residual},
		),
	)
	return page.Render(w)
}
