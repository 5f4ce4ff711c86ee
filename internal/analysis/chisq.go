/*
* Pearson chi-squared test module
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

package analysis

import (
	"math"

	"github.com/Gilah-EnE/entropy"
)

// ChiSquareCritical005 is the 0.05 critical value of the chi-squared
// distribution with 255 degrees of freedom.
const ChiSquareCritical005 = 293.2478

// ChiSquare computes Pearson's chi-squared statistic of h against a uniform
// distribution of byte values.
func ChiSquare(h *entropy.Histogram) (float64, error) {
	total := h.Total()
	if total == 0 {
		return math.NaN(), ErrEmptyInput
	}

	expected := float64(total) / entropy.AlphabetSize
	var chiSquare float64
	for _, count := range h {
		diff := float64(count) - expected
		chiSquare += diff * diff / expected
	}
	return chiSquare, nil
}
