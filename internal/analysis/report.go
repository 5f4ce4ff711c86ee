/*
* Test battery and final verdict module
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

	"github.com/Gilah-EnE/entropy"
)

type Classification int

const (
	NoEncryption Classification = iota
	FullDiskEncryption
	KnownContainer
)

func (c Classification) String() string {
	switch c {
	case NoEncryption:
		return "no encryption"
	case FullDiskEncryption:
		return "encrypted or random data"
	case KnownContainer:
		return "known encryption container"
	default:
		return fmt.Sprintf("Classification(%d)", int(c))
	}
}

func (c Classification) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// Thresholds decide when a single test counts as positive, i.e. when the
// data looks random.
type Thresholds struct {
	Autocorrelation float64 `json:"autocorrelation"`
	KS              float64 `json:"ks"`
	ChiSquare       float64 `json:"chi_square"`
	Compression     float64 `json:"compression"`
	Signatures      float64 `json:"signatures"`
	Entropy         float64 `json:"entropy"`
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		Autocorrelation: 0.125,
		KS:              0.1,
		ChiSquare:       ChiSquareCritical005,
		Compression:     1.1,
		Signatures:      150.0,
		Entropy:         7.95,
	}
}

// PositiveTests is the number of positive tests, out of the five voting
// ones, from which data is classified as encrypted.
const PositiveTests = 4

type Options struct {
	BlockSize  int
	Estimator  entropy.Estimator
	Thresholds Thresholds
}

type Report struct {
	Size             int                `json:"size"`
	Distinct         int                `json:"distinct"`
	Entropy          float32            `json:"entropy"`
	MetricEntropy    float32            `json:"metric_entropy"`
	ReferenceEntropy float64            `json:"reference_entropy"`
	ChiSquare        float64            `json:"chi_square"`
	KS               KSResult           `json:"ks"`
	Autocorrelation  float64            `json:"autocorrelation"`
	Compression      float64            `json:"compression"`
	Compressors      map[string]float64 `json:"compressors,omitempty"`
	SignatureDensity float64            `json:"signature_density"`
	FileSignatures   map[string]int     `json:"file_signatures,omitempty"`
	Containers       map[string]int     `json:"containers"`
	Positive         int                `json:"positive"`
	Classification   Classification     `json:"classification"`
	Thresholds       Thresholds         `json:"thresholds"`
}

func CountTrueBools(bools ...bool) int {
	var trueCount int
	for _, b := range bools {
		if b {
			trueCount++
		}
	}
	return trueCount
}

// Verdict counts the positive tests of r and classifies the data. Any
// encryption container signature takes precedence over the statistics. The
// chi-squared statistic is reported but does not vote.
func Verdict(r Report, t Thresholds) (int, Classification) {
	positive := CountTrueBools(
		r.Autocorrelation <= t.Autocorrelation,
		r.KS.Statistic <= t.KS,
		r.Compression <= t.Compression,
		r.SignatureDensity <= t.Signatures,
		float64(r.Entropy) >= t.Entropy,
	)

	if sum(r.Containers) > 0 {
		return positive, KnownContainer
	}
	if positive >= PositiveTests {
		return positive, FullDiskEncryption
	}
	return positive, NoEncryption
}

// Run performs the whole test battery on data. Failures of individual tests
// are collected, the remaining tests still run.
func Run(data []byte, opts Options) (Report, error) {
	if len(data) == 0 {
		return Report{}, ErrEmptyInput
	}
	if opts.BlockSize <= 0 {
		return Report{}, ErrBlockSize
	}

	h := entropy.NewHistogram(data)
	r := Report{
		Size:       len(data),
		Distinct:   h.Distinct(),
		Entropy:    opts.Estimator.HistogramEntropy(&h),
		Thresholds: opts.Thresholds,
	}
	r.MetricEntropy = r.Entropy / float32(len(data))

	var errs *multierror.Error
	var err error

	if r.ReferenceEntropy, err = entropy.ReferenceEntropy(&h); err != nil {
		errs = multierror.Append(errs, err)
	}
	if r.ChiSquare, err = ChiSquare(&h); err != nil {
		errs = multierror.Append(errs, fmt.Errorf("chi-squared test: %w", err))
	}
	if r.KS, err = KolmogorovSmirnov(&h); err != nil {
		errs = multierror.Append(errs, fmt.Errorf("kolmogorov test: %w", err))
	}
	if r.Autocorrelation, err = AutoCorrelation(data, opts.BlockSize); err != nil {
		errs = multierror.Append(errs, fmt.Errorf("autocorrelation test: %w", err))
	}
	if r.Compression, r.Compressors, err = CompressionRatio(data); err != nil {
		errs = multierror.Append(errs, fmt.Errorf("compression test: %w", err))
	}

	scanner, err := NewSignatureScanner()
	if err != nil {
		errs = multierror.Append(errs, err)
		r.SignatureDensity = math.NaN()
	} else {
		if r.Containers, err = scanner.Containers(data, opts.BlockSize); err != nil {
			errs = multierror.Append(errs, fmt.Errorf("container signatures: %w", err))
		}
		if r.SignatureDensity, r.FileSignatures, err = scanner.FileSignatureDensity(data, opts.BlockSize); err != nil {
			errs = multierror.Append(errs, fmt.Errorf("file signatures: %w", err))
		}
	}

	r.Positive, r.Classification = Verdict(r, opts.Thresholds)
	return r, errs.ErrorOrNil()
}
