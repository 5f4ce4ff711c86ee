/*
* Entropy estimation module
* Copyright (C) 2025  Artem Stefankiv
*
* This program is free software: you can redistribute it and/or modify
* it under the terms of the GNU General Public License as published by
* the Free Software Foundation, either version 3 of the License, or
* (at your option) any later version.
*
* This program is distributed in the hope that it will be useful,
* but WITHOUT ANY WARRANTY; without even the implied warranty of
* MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
* GNU General Public License for more details.
*
* You should have received a copy of the GNU General Public License
* along with this program.  If not, see <http://www.gnu.org/licenses/>.
 */

// Package entropy estimates the Shannon entropy of byte slices in bits per
// byte using an approximate natural logarithm.
//
// The estimator keeps a 256 slot histogram on the stack, performs no I/O and
// does not allocate, so it can be called from hot paths and from any number
// of goroutines at once.
package entropy

import (
	"github.com/Gilah-EnE/entropy/internal/approxmath"
)

// MaxEntropy is log2(256), the entropy of a byte slice where every byte
// value is equally frequent.
const MaxEntropy float32 = 8.0

// LnFunc computes the natural logarithm of a positive argument. The estimator
// only ever calls it with values in (0, 2].
type LnFunc func(x float32) float32

// Estimator computes entropy with a configurable logarithm. The zero value
// uses the package's approximate logarithm.
type Estimator struct {
	ln LnFunc
}

// New returns an Estimator using ln. A nil ln selects the default
// approximation.
func New(ln LnFunc) Estimator {
	return Estimator{ln: ln}
}

func (e Estimator) logarithm() LnFunc {
	if e.ln == nil {
		return approxmath.Ln
	}
	return e.ln
}

// Entropy returns the Shannon entropy of data in bits per byte, in the range
// [0, MaxEntropy]. The result for an empty slice is NaN.
func (e Estimator) Entropy(data []byte) float32 {
	h := NewHistogram(data)
	return e.HistogramEntropy(&h)
}

// MetricEntropy returns Entropy(data) divided by len(data). For an empty
// slice the division is left unchecked and the result is not finite; callers
// must check the length themselves.
func (e Estimator) MetricEntropy(data []byte) float32 {
	return e.Entropy(data) / float32(len(data))
}

// HistogramEntropy reduces an already built histogram to bits per byte.
func (e Estimator) HistogramEntropy(h *Histogram) float32 {
	ln := e.logarithm()

	// Only the natural log is used in the loop, the sum is scaled to
	// base 2 once at the end.
	n := float32(h.Total())
	var sum float32
	for _, count := range h {
		// 0 * ln(0) would be NaN
		if count == 0 {
			continue
		}
		freq := float32(count)
		sum += freq * ln(freq/n)
	}

	// sum is never positive
	if sum < 0 {
		sum = -sum
	}
	return sum / (n * ln(2))
}

var defaultEstimator Estimator

// ShannonEntropy returns the approximate Shannon entropy of data in bits per
// byte.
func ShannonEntropy(data []byte) float32 {
	return defaultEstimator.Entropy(data)
}

// ShannonEntropyMetric returns the approximate Shannon entropy of data
// normalized by its length. It is not finite for an empty slice.
func ShannonEntropyMetric(data []byte) float32 {
	return defaultEstimator.MetricEntropy(data)
}
