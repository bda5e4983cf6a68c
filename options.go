package linreg

import (
	"errors"
	"fmt"

	"github.com/aouyang1/go-linreg/linearmodel"
)

const (
	MethodAuto     = "auto"
	MethodSimple   = "simple"
	MethodMultiple = "multiple"
)

var ErrUnknownMethod = errors.New("unknown regression method")

// Options configures which estimator is used and how the fit features are labelled
type Options struct {
	// Method selects the estimator. auto uses the simple estimator for a single feature and the
	// multiple estimator otherwise.
	Method string `json:"method"`

	// FeatureLabels names each column of the training matrix. Defaults to x1, x2, ... when empty.
	FeatureLabels []string `json:"feature_labels"`

	// Parallelization sets how many columns the multiple estimator computes concurrently
	Parallelization int `json:"parallelization"`

	// CorrelationThreshold logs a warning for feature pairs correlated above it. 0 disables it.
	CorrelationThreshold float64 `json:"correlation_threshold"`
}

// NewDefaultOptions returns a set of default regression options
func NewDefaultOptions() *Options {
	return &Options{
		Method:               MethodAuto,
		Parallelization:      1,
		CorrelationThreshold: linearmodel.DefaultCorrelationThreshold,
	}
}

// Validate runs basic validation on the regression options
func (o *Options) Validate() (*Options, error) {
	if o == nil {
		o = NewDefaultOptions()
	}

	switch o.Method {
	case "":
		o.Method = MethodAuto
	case MethodAuto, MethodSimple, MethodMultiple:
	default:
		return nil, fmt.Errorf("%s, %w", o.Method, ErrUnknownMethod)
	}

	if _, err := o.multipleOptions().Validate(); err != nil {
		return nil, err
	}
	return o, nil
}

// resolveMethod picks the estimator for a training matrix with n feature columns
func (o *Options) resolveMethod(n int) string {
	if o.Method != MethodAuto {
		return o.Method
	}
	if n == 1 {
		return MethodSimple
	}
	return MethodMultiple
}

func (o *Options) multipleOptions() *linearmodel.MultipleOptions {
	return &linearmodel.MultipleOptions{
		Parallelization:      o.Parallelization,
		CorrelationThreshold: o.CorrelationThreshold,
	}
}
