package binding

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cwbudde/algo-avgdev/stats/deviation"
)

// Name is the function name reported in usage and error messages.
const Name = "adev"

// ErrUsage matches every *UsageError.
var ErrUsage = errors.New("binding: usage error")

// UsageError reports a call with the wrong number of arguments. Usage holds
// the help text the host would display.
type UsageError struct {
	Reason string
	Usage  string
}

func (e *UsageError) Error() string {
	return Name + ": " + e.Reason
}

// Is makes errors.Is(err, ErrUsage) true for any *UsageError.
func (e *UsageError) Is(target error) bool {
	return target == ErrUsage
}

// Usage returns the help text for the function.
func Usage() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(" " + Name + "\n")
	b.WriteString("     Calculates the average deviation of a distribution.\n")
	b.WriteString("\n")
	b.WriteString(" USAGE\n")
	b.WriteString("     adev = " + Name + "(input)\n")
	b.WriteString("\n")
	b.WriteString(" INPUT ARGUMENTS\n")
	b.WriteString("     input : input data         [nSamples x nChannels]\n")
	b.WriteString("\n")
	b.WriteString(" OUTPUT ARGUMENTS\n")
	b.WriteString("     adev  : average deviation  [1 x nChannels]\n")
	b.WriteString("\n")

	return b.String()
}

// Call invokes the function with host-style arguments. nargout is the
// number of outputs the caller requested (0 means the implicit answer).
//
// Exactly one input is consumed; extra inputs are ignored. On success the
// result holds one 1 x nChannels double array. On error no output is
// produced.
func Call(nargout int, args ...*Array) ([]*Array, error) {
	if len(args) < 1 {
		return nil, &UsageError{Reason: "not enough input arguments", Usage: Usage()}
	}
	if nargout < 0 || nargout > 1 {
		return nil, &UsageError{Reason: fmt.Sprintf("too many output arguments (%d)", nargout), Usage: Usage()}
	}

	input := args[0]
	if err := checkInput(input); err != nil {
		return nil, err
	}

	m, err := deviation.NewDense(input.M, input.N, input.Real)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", Name, err)
	}

	adev, err := deviation.AverageDeviation(m)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", Name, err)
	}

	return []*Array{NewDouble(1, len(adev), adev)}, nil
}

// checkInput enforces the real, dense, double-precision precondition.
func checkInput(a *Array) error {
	if a == nil || !a.IsNumeric() || a.Complex || a.Sparse || a.Class != Double {
		return fmt.Errorf("%w: %s requires a real input matrix of size [nSamples x nChannels], got %s",
			deviation.ErrInvalidInput, Name, a)
	}
	if a.M < 0 || a.N < 0 || deviation.ShapeOverflows(a.M, a.N) {
		return fmt.Errorf("%w: %s input declares invalid shape %dx%d",
			deviation.ErrInvalidInput, Name, a.M, a.N)
	}
	if len(a.Real) != a.M*a.N {
		return fmt.Errorf("%w: %s input declares %dx%d but holds %d values",
			deviation.ErrInvalidInput, Name, a.M, a.N, len(a.Real))
	}

	return nil
}
