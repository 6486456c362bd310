// Package deviation computes the average absolute deviation of every
// channel (column) of a sample matrix.
//
// For a channel x of n samples the statistic is
//
//	mean = (x[0] + ... + x[n-1]) / n
//	adev = (|x[0]-mean| + ... + |x[n-1]-mean|) / n
//
// Both sums are plain running sums accumulated from index 0 upward, so the
// result is reproducible bit for bit against a naive two-pass reference.
// Channels are independent and may be processed on several goroutines; the
// output does not depend on the worker count.
package deviation
