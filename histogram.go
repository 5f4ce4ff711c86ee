/*
* Byte histogram module
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

// AlphabetSize is the number of distinct symbols, one per 8-bit value.
const AlphabetSize = 256

// Histogram holds one occurrence counter per possible byte value.
// It is a plain array so it can live on the stack.
type Histogram [AlphabetSize]uint

// NewHistogram counts every byte of data. data is only read.
func NewHistogram(data []byte) Histogram {
	var h Histogram
	for _, b := range data {
		h[b]++
	}
	return h
}

// Total returns the sum of all counters, which equals the length of the
// counted input.
func (h *Histogram) Total() uint {
	var total uint
	for _, count := range h {
		total += count
	}
	return total
}

// Distinct returns the number of byte values seen at least once.
func (h *Histogram) Distinct() int {
	var distinct int
	for _, count := range h {
		if count != 0 {
			distinct++
		}
	}
	return distinct
}

// Float64s copies the counters into a freshly allocated slice.
func (h *Histogram) Float64s() []float64 {
	counts := make([]float64, AlphabetSize)
	for i, count := range h {
		counts[i] = float64(count)
	}
	return counts
}
