package binding

import "fmt"

// Class identifies the element type of a host array.
type Class int

const (
	Unknown Class = iota
	Double
	Single
	Int8
	Int16
	Int32
	Int64
	Uint8
	Uint16
	Uint32
	Uint64
	Char
	Logical
	Cell
	Struct
	FunctionHandle
)

var classNames = [...]string{
	Unknown:        "unknown",
	Double:         "double",
	Single:         "single",
	Int8:           "int8",
	Int16:          "int16",
	Int32:          "int32",
	Int64:          "int64",
	Uint8:          "uint8",
	Uint16:         "uint16",
	Uint32:         "uint32",
	Uint64:         "uint64",
	Char:           "char",
	Logical:        "logical",
	Cell:           "cell",
	Struct:         "struct",
	FunctionHandle: "function_handle",
}

func (c Class) String() string {
	if c < 0 || int(c) >= len(classNames) {
		return fmt.Sprintf("Class(%d)", int(c))
	}
	return classNames[c]
}

// IsNumeric reports whether c is a floating-point or integer class.
func (c Class) IsNumeric() bool {
	return c >= Double && c <= Uint64
}

// Array is a host value. Real holds the column-major real part of Double
// arrays (M*N values); other classes carry no payload here because the
// computation never reads them.
type Array struct {
	Class   Class
	Complex bool
	Sparse  bool
	M, N    int
	Real    []float64
}

// NewDouble returns a real, dense m x n double array backed by data.
// A nil data slice allocates zeros.
func NewDouble(m, n int, data []float64) *Array {
	if data == nil && m > 0 && n > 0 {
		data = make([]float64, m*n)
	}
	return &Array{Class: Double, M: m, N: n, Real: data}
}

// IsNumeric reports whether the array holds numbers.
func (a *Array) IsNumeric() bool { return a.Class.IsNumeric() }

// String describes the array the way the host prints sizes, e.g.
// "5x2 double" or "3x3 sparse complex double".
func (a *Array) String() string {
	if a == nil {
		return "<nil>"
	}

	s := fmt.Sprintf("%dx%d ", a.M, a.N)
	if a.Sparse {
		s += "sparse "
	}
	if a.Complex {
		s += "complex "
	}

	return s + a.Class.String()
}
