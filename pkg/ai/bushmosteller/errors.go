package bushmosteller

import (
	"github.com/pkg/errors"
)

var (
	ErrInvalidProbabilities = errors.New("probabilities must sum to 1")
	ErrInvalidConfig        = errors.New("invalid bush-mosteller configuration")
)

func newInvalidProbabilitiesError(left, right float64) error {
	return errors.Wrapf(ErrInvalidProbabilities, "got left=%v right=%v", left, right)
}

func newInvalidConfigError(format string, args ...any) error {
	return errors.Wrapf(ErrInvalidConfig, format, args...)
}
