package approxmath

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLnAccuracy(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 8))
	for i := 0; i < 100000; i++ {
		x := float32(math.Pow(10, rng.Float64()*60-30))
		exact := math.Log(float64(x))
		assert.InDelta(t, exact, float64(Ln(x)), 1e-3, "x=%v", x)
	}
}

func TestLnUnitInterval(t *testing.T) {
	// the estimator only evaluates count/n, which lies in (0, 1]
	for n := 1; n <= 512; n++ {
		for count := 1; count <= n; count += 1 + n/16 {
			x := float32(count) / float32(n)
			found := Ln(x)
			assert.LessOrEqual(t, found, float32(0), "x=%v", x)
			assert.InDelta(t, math.Log(float64(x)), float64(found), 1e-3, "x=%v", x)
		}
	}
}

func TestLnOne(t *testing.T) {
	assert.Equal(t, float32(0), Ln(1))
	assert.Equal(t, float32(0), Ln(math.Nextafter32(1, 0)))
}

func TestLnPowersOfTwo(t *testing.T) {
	for e := -20; e <= 20; e++ {
		x := float32(math.Ldexp(1, e))
		assert.InDelta(t, float64(e)*math.Ln2, float64(Ln(x)), 1e-4, "2^%d", e)
	}
}

func TestLnSpecialValues(t *testing.T) {
	assert.True(t, math.IsInf(float64(Ln(0)), -1))
	assert.True(t, math.IsNaN(float64(Ln(-1))))
	assert.True(t, math.IsNaN(float64(Ln(float32(math.NaN())))))
	assert.True(t, math.IsInf(float64(Ln(float32(math.Inf(1)))), 1))

	tiny := math.Float32frombits(1)
	assert.InDelta(t, math.Log(float64(tiny)), float64(Ln(tiny)), 1e-3)
}

func TestLog2(t *testing.T) {
	assert.InDelta(t, 8.0, float64(Log2(256)), 1e-3)
	assert.InDelta(t, -3.0, float64(Log2(0.125)), 1e-3)
	assert.Equal(t, float32(0), Log2(1))
}

func TestExact(t *testing.T) {
	assert.Equal(t, float32(math.Log(10)), Exact(10))
	assert.Equal(t, float32(0), Exact(1))
}

func BenchmarkLn(b *testing.B) {
	var sink float32
	for b.Loop() {
		sink += Ln(0.37)
	}
	_ = sink
}
