package deviation

import (
	"fmt"
	"math"
)

// Matrix is a read-only rectangular table of samples: Rows() samples by
// Cols() channels. At must be safe for concurrent reads and may panic when
// an index is out of range.
type Matrix interface {
	Rows() int
	Cols() int
	At(i, h int) float64
}

// ColumnView is implemented by matrices that store each channel as a
// contiguous slice. The returned slice aliases the matrix storage and must
// not be modified.
type ColumnView interface {
	Column(h int) []float64
}

// Dense is a column-major sample matrix: element (i, h) is stored at
// offset i + h*rows.
type Dense struct {
	rows int
	cols int
	data []float64
}

// NewDense returns a rows x cols matrix backed by data, which is used
// without copying. A nil data slice allocates a zero-filled buffer.
func NewDense(rows, cols int, data []float64) (*Dense, error) {
	if rows < 0 || cols < 0 {
		return nil, deviationErrorf(opNewDense,
			fmt.Errorf("%w: negative shape %dx%d", ErrInvalidInput, rows, cols))
	}
	if ShapeOverflows(rows, cols) {
		return nil, deviationErrorf(opNewDense,
			fmt.Errorf("%w: shape %dx%d overflows int", ErrInvalidInput, rows, cols))
	}

	if data == nil {
		data = make([]float64, rows*cols)
	}

	if len(data) != rows*cols {
		return nil, deviationErrorf(opNewDense,
			fmt.Errorf("%w: %d values for shape %dx%d", ErrInvalidInput, len(data), rows, cols))
	}

	return &Dense{rows: rows, cols: cols, data: data}, nil
}

// ShapeOverflows reports whether rows*cols does not fit in an int. Both
// dimensions must be non-negative.
func ShapeOverflows(rows, cols int) bool {
	return rows != 0 && cols > math.MaxInt/rows
}

// NewDenseFromColumns copies equally long channels into a new matrix.
func NewDenseFromColumns(columns ...[]float64) (*Dense, error) {
	if len(columns) == 0 {
		return &Dense{}, nil
	}

	rows := len(columns[0])
	data := make([]float64, 0, rows*len(columns))

	for h, col := range columns {
		if len(col) != rows {
			return nil, deviationErrorf(opFromColumns,
				fmt.Errorf("%w: column %d has %d samples, want %d", ErrInvalidInput, h, len(col), rows))
		}
		data = append(data, col...)
	}

	return &Dense{rows: rows, cols: len(columns), data: data}, nil
}

// NewDenseFromRows copies row-major samples (one row per sample instant,
// one value per channel) into a new column-major matrix.
func NewDenseFromRows(rows [][]float64) (*Dense, error) {
	if len(rows) == 0 {
		return &Dense{}, nil
	}

	nRows, nCols := len(rows), len(rows[0])
	data := make([]float64, nRows*nCols)

	for i, row := range rows {
		if len(row) != nCols {
			return nil, deviationErrorf(opFromRows,
				fmt.Errorf("%w: row %d has %d values, want %d", ErrInvalidInput, i, len(row), nCols))
		}
		for h, v := range row {
			data[i+h*nRows] = v
		}
	}

	return &Dense{rows: nRows, cols: nCols, data: data}, nil
}

// Rows returns the number of samples per channel.
func (d *Dense) Rows() int { return d.rows }

// Cols returns the number of channels.
func (d *Dense) Cols() int { return d.cols }

// At returns sample i of channel h.
func (d *Dense) At(i, h int) float64 {
	d.checkIndex(i, h)
	return d.data[i+h*d.rows]
}

// Set stores v as sample i of channel h.
func (d *Dense) Set(i, h int, v float64) {
	d.checkIndex(i, h)
	d.data[i+h*d.rows] = v
}

// Column returns channel h as a slice aliasing the matrix storage.
func (d *Dense) Column(h int) []float64 {
	if h < 0 || h >= d.cols {
		panic(fmt.Sprintf("deviation: column %d out of range [0,%d)", h, d.cols))
	}
	start := h * d.rows

	return d.data[start : start+d.rows : start+d.rows]
}

// RawData returns the column-major backing buffer.
func (d *Dense) RawData() []float64 { return d.data }

func (d *Dense) checkIndex(i, h int) {
	if i < 0 || i >= d.rows || h < 0 || h >= d.cols {
		panic(fmt.Sprintf("deviation: index (%d,%d) out of range %dx%d", i, h, d.rows, d.cols))
	}
}
