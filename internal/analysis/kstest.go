/*
* Kolmogorov test module
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

type KSResult struct {
	// Statistic is the largest distance between the empirical and the
	// uniform cumulative distributions.
	Statistic float64 `json:"statistic"`
	// Position is the byte value at which Statistic was found.
	Position int  `json:"position"`
	Samples  uint `json:"samples"`

	Critical001 float64 `json:"critical_001"`
	Critical005 float64 `json:"critical_005"`
}

func KolmogorovSmirnov(h *entropy.Histogram) (KSResult, error) {
	total := h.Total()
	if total == 0 {
		return KSResult{}, ErrEmptyInput
	}

	n := float64(total)
	result := KSResult{Samples: total}

	var empiricalCumSum, theoreticalCumSum float64
	for i, count := range h {
		empiricalCumSum += float64(count) / n
		theoreticalCumSum += 1.0 / entropy.AlphabetSize

		diff := math.Abs(empiricalCumSum - theoreticalCumSum)
		if i == 0 || diff > result.Statistic {
			result.Statistic = diff
			result.Position = i
		}
	}

	result.Critical001 = 1.63 / math.Sqrt(n)
	result.Critical005 = 1.36 / math.Sqrt(n)
	return result, nil
}
