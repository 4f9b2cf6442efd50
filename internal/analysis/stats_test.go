package analysis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLinregressExactLine(t *testing.T) {
	x := []float64{0, 1, 2, 3, 4}
	y := []float64{3, 5, 7, 9, 11}

	reg := linregress(x, y)
	assert.InDelta(t, 2, reg.Slope, 1e-12)
	assert.InDelta(t, 3, reg.Intercept, 1e-12)
	assert.InDelta(t, 1, reg.R, 1e-12)
	assert.InDelta(t, 0, reg.StdErr, 1e-12)
	assert.InDelta(t, 0, reg.PValue, 1e-12)
}

func TestLinregressFlatResponse(t *testing.T) {
	x := []float64{0, 1, 2, 3}
	y := []float64{5, 5, 5, 5}

	reg := linregress(x, y)
	assert.InDelta(t, 0, reg.Slope, 1e-12)
	assert.InDelta(t, 0, reg.R, 1e-12)
	assert.InDelta(t, 1, reg.PValue, 1e-12)
}

func TestLinregressNoisy(t *testing.T) {
	x := []float64{0, 1, 2, 3, 4, 5, 6, 7}
	y := []float64{1.1, 2.9, 5.2, 6.8, 9.1, 10.9, 13.2, 14.8}

	reg := linregress(x, y)
	assert.InDelta(t, 2, reg.Slope, 0.1)
	assert.Greater(t, reg.R*reg.R, 0.99)
	assert.Less(t, reg.PValue, 0.001)
	assert.Greater(t, reg.StdErr, 0.0)
}

func TestNormCDF(t *testing.T) {
	assert.InDelta(t, 0.5, normCDF(0), 1e-12)
	assert.InDelta(t, 0.975, normCDF(1.959964), 1e-4)
	assert.InDelta(t, 0.025, normCDF(-1.959964), 1e-4)
}

func TestStudentTPValue(t *testing.T) {
	// Two-sided p for t=0 is 1 regardless of df.
	assert.InDelta(t, 1, studentTPValue(0, 10), 1e-9)
	// Large |t| drives p toward 0.
	assert.Less(t, studentTPValue(8, 10), 1e-4)
	// Symmetric in t.
	assert.InDelta(t, studentTPValue(2.5, 12), studentTPValue(-2.5, 12), 1e-12)
}

func TestSampleStd(t *testing.T) {
	assert.Equal(t, 0.0, sampleStd([]float64{4}))
	assert.InDelta(t, math.Sqrt(2.5), sampleStd([]float64{1, 2, 3, 4, 5}), 1e-12)
}

func TestPercentileSorted(t *testing.T) {
	sorted := []float64{1, 2, 3, 4}
	assert.InDelta(t, 1, percentileSorted(sorted, 0), 1e-12)
	assert.InDelta(t, 4, percentileSorted(sorted, 1), 1e-12)
	assert.InDelta(t, 2.5, percentileSorted(sorted, 0.5), 1e-12)
}
