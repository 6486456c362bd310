package deviation

import (
	"fmt"

	"github.com/cwbudde/algo-avgdev/internal/kernel"
	"github.com/cwbudde/algo-avgdev/internal/kernel/registry"
	"github.com/cwbudde/algo-avgdev/internal/parallel"
)

// Summary holds the per-channel values of one computation.
type Summary struct {
	Mean   float64 // first-pass mean the deviations are taken around
	AvgDev float64 // average absolute deviation
}

// AverageDeviation returns the average absolute deviation of each channel
// of m: a new slice of length m.Cols() whose element h belongs to column h.
//
// A matrix without channels yields an empty slice. A matrix with channels
// but no samples fails with ErrEmptySamples; no partial result is returned.
// NaN and Inf samples propagate arithmetically.
func AverageDeviation(m Matrix, opts ...Option) ([]float64, error) {
	adev, _, err := compute(opAverageDeviation, m, false, applyOptions(opts))
	if err != nil {
		return nil, err
	}

	return adev, nil
}

// Summarize is AverageDeviation that also reports each channel's mean.
func Summarize(m Matrix, opts ...Option) ([]Summary, error) {
	adev, means, err := compute(opSummarize, m, true, applyOptions(opts))
	if err != nil {
		return nil, err
	}

	out := make([]Summary, len(adev))
	for h := range out {
		out[h] = Summary{Mean: means[h], AvgDev: adev[h]}
	}

	return out, nil
}

// Channel returns the average absolute deviation of a single channel.
func Channel(samples []float64) (float64, error) {
	if len(samples) == 0 {
		return 0, deviationErrorf(opChannel, ErrEmptySamples)
	}

	_, adev := channelStats(kernel.Current(), samples)

	return adev, nil
}

// channelStats runs the two ordered passes over one channel.
func channelStats(k *registry.OpEntry, x []float64) (mean, adev float64) {
	n := float64(len(x))
	mean = k.Sum(x) / n
	adev = k.AbsDevSum(x, mean) / n

	return mean, adev
}

func validate(m Matrix) error {
	if m == nil {
		return fmt.Errorf("%w: nil matrix", ErrInvalidInput)
	}
	if d, ok := m.(*Dense); ok && d == nil {
		return fmt.Errorf("%w: nil matrix", ErrInvalidInput)
	}

	rows, cols := m.Rows(), m.Cols()
	if rows < 0 || cols < 0 {
		return fmt.Errorf("%w: negative shape %dx%d", ErrInvalidInput, rows, cols)
	}
	if ShapeOverflows(rows, cols) {
		return fmt.Errorf("%w: shape %dx%d overflows int", ErrInvalidInput, rows, cols)
	}
	if rows == 0 && cols > 0 {
		return ErrEmptySamples
	}

	return nil
}

func compute(op string, m Matrix, keepMeans bool, cfg config) (adev, means []float64, err error) {
	if err := validate(m); err != nil {
		return nil, nil, deviationErrorf(op, err)
	}

	rows, cols := m.Rows(), m.Cols()

	adev = make([]float64, cols)
	if keepMeans {
		means = make([]float64, cols)
	}
	if cols == 0 {
		return adev, means, nil
	}

	k := kernel.Current()
	view, contiguous := m.(ColumnView)

	run := func(start, end int) {
		var scratch []float64
		if !contiguous {
			scratch = make([]float64, rows)
		}

		for h := start; h < end; h++ {
			var col []float64
			if contiguous {
				col = view.Column(h)
			} else {
				for i := range scratch {
					scratch[i] = m.At(i, h)
				}
				col = scratch
			}

			mean, dev := channelStats(k, col)
			adev[h] = dev
			if keepMeans {
				means[h] = mean
			}
		}
	}

	workers := cfg.workers
	if rows*cols < cfg.parallelThreshold {
		workers = 1
	}
	parallel.For(cols, workers, run)

	return adev, means, nil
}
