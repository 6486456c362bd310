package testutil

import (
	"math"
	"math/rand"
)

// DeterministicSine generates a sine channel.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// DeterministicNoise generates uniform noise in [-amplitude, amplitude)
// with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// DC generates a constant-valued channel.
func DC(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}
	return out
}

// Ramp generates start, start+step, start+2*step, ...
func Ramp(start, step float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = start + step*float64(i)
	}
	return out
}

// NoiseColumns returns cols channels of rows noise samples, each channel
// seeded with seed+h and scaled by a different power of ten so channels
// span a wide dynamic range.
func NoiseColumns(seed int64, rows, cols int) [][]float64 {
	out := make([][]float64, cols)
	for h := range out {
		out[h] = DeterministicNoise(seed+int64(h), math.Pow(10, float64(h%7-3)), rows)
	}
	return out
}
