package deviation

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput reports input that is not a usable real sample matrix:
	// a nil matrix, a negative dimension, a buffer that does not match the
	// declared shape, or ragged rows/columns.
	ErrInvalidInput = errors.New("deviation: invalid input")

	// ErrDegenerateInput reports input whose shape is valid but for which
	// the statistic is undefined.
	ErrDegenerateInput = errors.New("deviation: degenerate input")

	// ErrEmptySamples is returned when channels have no samples. It matches
	// both ErrDegenerateInput and ErrInvalidInput under errors.Is.
	ErrEmptySamples error = emptySamplesError{}
)

type emptySamplesError struct{}

func (emptySamplesError) Error() string { return "deviation: empty sample dimension" }

func (emptySamplesError) Is(target error) bool {
	return target == ErrDegenerateInput || target == ErrInvalidInput
}

// Operation tags used to prefix returned errors.
const (
	opAverageDeviation = "AverageDeviation"
	opSummarize        = "Summarize"
	opChannel          = "Channel"
	opNewDense         = "NewDense"
	opFromColumns      = "NewDenseFromColumns"
	opFromRows         = "NewDenseFromRows"
)

func deviationErrorf(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}
