package linearmodel

import (
	"errors"
)

var (
	ErrNoOptions          = errors.New("no initialized model options")
	ErrTargetLenMismatch  = errors.New("target length does not match training rows")
	ErrNoTrainingMatrix   = errors.New("no training matrix")
	ErrNoTargetMatrix     = errors.New("no target matrix")
	ErrNoDesignMatrix     = errors.New("no design matrix for inference")
	ErrFeatureLenMismatch = errors.New("number of features does not match number of model coefficients")
	ErrInsufficientData   = errors.New("at least 2 observations are required")
	ErrNoFeatures         = errors.New("design matrix has no feature columns")
	ErrInvalidValue       = errors.New("observation is NaN or infinite")
	ErrDegenerateVariance = errors.New("independent variable has zero variance")
	ErrNotFitted          = errors.New("model has not been fit")
	ErrNumericOverflow    = errors.New("sums exceed the float64 range")
)
