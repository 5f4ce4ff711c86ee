/*
* Compression test module
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
	"io"
	"math"

	"github.com/dsnet/compress/bzip2"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/ulikunitz/xz"
)

// countingWriter discards its input and remembers how much was written.
type countingWriter struct {
	n int64
}

func (w *countingWriter) Write(p []byte) (int, error) {
	w.n += int64(len(p))
	return len(p), nil
}

type compressor struct {
	name      string
	newWriter func(w io.Writer) (io.WriteCloser, error)
}

var compressors = []compressor{
	{"gzip", func(w io.Writer) (io.WriteCloser, error) {
		return gzip.NewWriterLevel(w, gzip.DefaultCompression)
	}},
	{"lz4", func(w io.Writer) (io.WriteCloser, error) {
		return lz4.NewWriter(w), nil
	}},
	{"bzip2", func(w io.Writer) (io.WriteCloser, error) {
		return bzip2.NewWriter(w, nil)
	}},
	{"zstd", func(w io.Writer) (io.WriteCloser, error) {
		return zstd.NewWriter(w)
	}},
	{"xz", func(w io.Writer) (io.WriteCloser, error) {
		return xz.NewWriter(w)
	}},
}

func compressedSize(c compressor, data []byte) (int64, error) {
	var counter countingWriter
	w, err := c.newWriter(&counter)
	if err != nil {
		return 0, fmt.Errorf("%s writer: %w", c.name, err)
	}
	if _, err := w.Write(data); err != nil {
		return 0, fmt.Errorf("%s write: %w", c.name, err)
	}
	if err := w.Close(); err != nil {
		return 0, fmt.Errorf("%s close: %w", c.name, err)
	}
	return counter.n, nil
}

// CompressionRatio returns the mean ratio of original to compressed size
// over gzip, lz4, bzip2, zstd and xz. Random data does not compress and
// stays close to 1.
func CompressionRatio(data []byte) (float64, map[string]float64, error) {
	if len(data) == 0 {
		return math.NaN(), nil, ErrEmptyInput
	}

	ratios := make(map[string]float64, len(compressors))
	var total float64
	for _, c := range compressors {
		size, err := compressedSize(c, data)
		if err != nil {
			return math.NaN(), nil, err
		}
		ratio := float64(len(data)) / float64(size)
		ratios[c.name] = ratio
		total += ratio
	}
	return total / float64(len(compressors)), ratios, nil
}
