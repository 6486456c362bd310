// Package binding adapts the average-deviation computation to a host
// environment that passes opaque, typed arrays and counts arguments.
//
// The host calling convention is one input array [nSamples x nChannels]
// stored column-major and one output array [1 x nChannels]:
//
//	out, err := binding.Call(1, binding.NewDouble(nSamples, nChannels, data))
//
// Call validates argument counts and the input's type before any
// computation and returns structured errors instead of printing: a
// *UsageError (matching ErrUsage) for wrong arity, and an error matching
// deviation.ErrInvalidInput for complex, sparse, non-numeric or non-double
// input. Presentation of Usage() is left to the caller.
package binding
