/*
* Reference entropy module
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

package entropy

import (
	"errors"
	"fmt"
	"math"

	"github.com/montanaflynn/stats"
)

// ErrEmptyHistogram is returned when a histogram has no counted bytes.
var ErrEmptyHistogram = errors.New("histogram is empty")

// ReferenceEntropy computes the Shannon entropy of h in bits per byte with
// double precision and the exact logarithm. It is slower than the estimator
// and allocates, and is meant for measuring the estimator's error.
func ReferenceEntropy(h *Histogram) (float64, error) {
	if h.Total() == 0 {
		return math.NaN(), ErrEmptyHistogram
	}
	nats, err := stats.Entropy(stats.Float64Data(h.Float64s()))
	if err != nil {
		return math.NaN(), fmt.Errorf("reference entropy: %w", err)
	}
	return nats / math.Ln2, nil
}
