/*
* Autocorrelation test module
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
	"fmt"
	"math"

	"github.com/hashicorp/go-multierror"
	"github.com/montanaflynn/stats"
)

const maxLag = 50

// AutoCorrelation splits data into blocks of blockSize bytes and, for every
// block, averages the absolute autocorrelation over lags 1 to 49. It returns
// the standard deviation of those averages. A trailing partial block is
// ignored unless it is the only block.
//
// Errors from single lags do not stop the test, they are returned together
// with the value.
func AutoCorrelation(data []byte, blockSize int) (float64, error) {
	if blockSize <= 0 {
		return math.NaN(), ErrBlockSize
	}
	if len(data) == 0 {
		return math.NaN(), ErrEmptyInput
	}

	var errs *multierror.Error
	var totalAutocorr []float64

	for start := 0; start < len(data); start += blockSize {
		end := start + blockSize
		if end > len(data) {
			if start > 0 {
				break
			}
			end = len(data)
		}
		mean, err := blockAutoCorrelation(data[start:end])
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("block at %d: %w", start, err))
		}
		totalAutocorr = append(totalAutocorr, mean)
	}

	std, err := stats.StandardDeviation(totalAutocorr)
	if err != nil {
		errs = multierror.Append(errs, fmt.Errorf("standard deviation: %w", err))
		return 0, errs.ErrorOrNil()
	}
	return std, errs.ErrorOrNil()
}

func blockAutoCorrelation(block []byte) (float64, error) {
	inputMean := meanBytes(block)
	floatBuffer := make([]float64, len(block))
	for i, val := range block {
		floatBuffer[i] = float64(val) - inputMean
	}

	lags := min(len(floatBuffer), maxLag)
	if lags < 2 {
		return 0, nil
	}

	var errs *multierror.Error
	results := make([]float64, 0, lags-1)
	for lag := 1; lag < lags; lag++ {
		correlation, err := stats.Correlation(floatBuffer[lag:], floatBuffer[:len(floatBuffer)-lag])
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("lag %d: %w", lag, err))
			continue
		}
		results = append(results, math.Abs(correlation))
	}
	if len(results) == 0 {
		return 0, errs.ErrorOrNil()
	}
	return meanFloats(results), errs.ErrorOrNil()
}

func meanBytes(array []byte) float64 {
	var sum float64
	for _, value := range array {
		sum += float64(value)
	}
	return sum / float64(len(array))
}

func meanFloats(array []float64) float64 {
	var sum float64
	for _, value := range array {
		sum += value
	}
	return sum / float64(len(array))
}
