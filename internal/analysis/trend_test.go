package analysis

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cashflow-forecast/internal/model"
)

func TestTrendAnalysisLinearGrowth(t *testing.T) {
	values := make([]float64, 12)
	for i := range values {
		values[i] = 1000 + 100*float64(i)
	}
	s := seriesFrom(model.MonthPeriod{Year: 2023, Month: time.January}, values)

	ts, err := TrendAnalysis(s, model.ColumnNetCashFlow)
	require.NoError(t, err)

	assert.InDelta(t, 100, ts.Slope, 1e-9)
	assert.InDelta(t, 1000, ts.Intercept, 1e-9)
	assert.InDelta(t, 1, ts.RSquared, 1e-12)
	assert.InDelta(t, 0, ts.PValue, 1e-12)
	assert.InDelta(t, 0, ts.StdErr, 1e-9)

	// (2100 - 1000) / 1000 * 100
	assert.InDelta(t, 110, ts.TotalChangePct, 1e-9)
	assert.InDelta(t, 10, ts.MonthlyGrowthPct, 1e-9)

	// A deterministic trend has a unit root as far as ADF is concerned.
	assert.False(t, ts.IsStationary)
	assert.Greater(t, ts.ADFPValue, 0.05)
}

func TestTrendAnalysisStationaryNoise(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	values := make([]float64, 60)
	for i := range values {
		values[i] = 1000 + rng.NormFloat64()*50
	}
	s := seriesFrom(model.MonthPeriod{Year: 2019, Month: time.January}, values)

	ts, err := TrendAnalysis(s, model.ColumnNetCashFlow)
	require.NoError(t, err)

	assert.True(t, ts.IsStationary)
	assert.Less(t, ts.ADFPValue, 0.05)
	assert.Negative(t, ts.ADFStat)
}

func TestTrendAnalysisZeroBaseline(t *testing.T) {
	s := seriesFrom(model.MonthPeriod{Year: 2023, Month: time.January}, []float64{0, 10, 20, 30})

	ts, err := TrendAnalysis(s, model.ColumnNetCashFlow)
	require.NoError(t, err)

	// An undefined baseline is reported as +Inf, never as 0.
	assert.True(t, math.IsInf(ts.TotalChangePct, 1))
	assert.True(t, math.IsInf(ts.MonthlyGrowthPct, 1))
}

func TestTrendAnalysisNeedsThreeObservations(t *testing.T) {
	s := seriesFrom(model.MonthPeriod{Year: 2023, Month: time.January}, []float64{1, 2})
	_, err := TrendAnalysis(s, model.ColumnNetCashFlow)
	var inputErr *model.InputError
	assert.ErrorAs(t, err, &inputErr)
}

func TestTrendAnalysisDecline(t *testing.T) {
	values := make([]float64, 24)
	for i := range values {
		values[i] = 5000 - 75*float64(i)
	}
	s := seriesFrom(model.MonthPeriod{Year: 2022, Month: time.January}, values)

	ts, err := TrendAnalysis(s, model.ColumnNetCashFlow)
	require.NoError(t, err)
	assert.InDelta(t, -75, ts.Slope, 1e-9)
	assert.Negative(t, ts.TotalChangePct)
}
