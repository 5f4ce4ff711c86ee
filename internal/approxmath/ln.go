/*
* Approximate natural logarithm module
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

// Package approxmath provides single precision logarithms for the entropy
// estimator. Ln trades a small bounded error for speed and does not allocate.
package approxmath

import (
	"math"
)

const (
	ln2 float32 = math.Ln2

	exponentMask uint32 = 0x7f800000
	exponentBias        = 127
	mantissaBits        = 23

	// float32 machine epsilon
	epsilon float32 = 1.1920929e-07
)

// Remez polynomial coefficients for ln(m), m in [1, 2)
const (
	c0 float32 = -1.7417939
	c1 float32 = 2.8212026
	c2 float32 = -1.4699568
	c3 float32 = 0.44717955
	c4 float32 = -0.056570851
)

// Ln returns an approximation of the natural logarithm of x.
//
// The argument is split into a power of two and a mantissa in [1, 2). The
// power contributes exactly e*ln(2), the mantissa is evaluated with a fourth
// order polynomial. Arguments below one are inverted so the polynomial always
// sees the same range. Special values follow math.Log: Ln(0) = -Inf,
// Ln(x < 0) = NaN, Ln(NaN) = NaN and Ln(+Inf) = +Inf.
func Ln(x float32) float32 {
	switch {
	case math.IsNaN(float64(x)) || x < 0:
		return float32(math.NaN())
	case x == 0:
		return float32(math.Inf(-1))
	case math.IsInf(float64(x), 1):
		return x
	}

	diff := x - 1
	if diff < 0 {
		diff = -diff
	}
	if diff < epsilon {
		return 0
	}

	lessThanOne := x < 1
	working := x
	if lessThanOne {
		working = 1 / working
		// 1/x overflows for the smallest subnormals
		if math.IsInf(float64(working), 1) {
			return Exact(x)
		}
	}

	bits := math.Float32bits(working)
	exponent := int32((bits&exponentMask)>>mantissaBits) - exponentBias
	divisor := math.Float32frombits(bits & exponentMask)
	mantissa := working / divisor

	poly := c0 + (c1+(c2+(c3+c4*mantissa)*mantissa)*mantissa)*mantissa
	result := float32(exponent)*ln2 + poly
	if lessThanOne {
		return -result
	}
	return result
}

// Log2 returns an approximation of the base two logarithm of x.
func Log2(x float32) float32 {
	return Ln(x) / Ln(2)
}

// Exact is the natural logarithm evaluated in double precision and rounded
// to single precision.
func Exact(x float32) float32 {
	return float32(math.Log(float64(x)))
}
