package forecast

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cashflow-forecast/internal/model"
)

func ensembleSeries(n int) *model.TimeSeries {
	pattern := []float64{120, -40, 80, -90, 30, -100, 60, -10, 50, -70, 20, -50}
	values := make([]float64, n)
	for i := range values {
		values[i] = 2000 + 15*float64(i) + pattern[i%12]
	}
	return seriesFrom(model.MonthPeriod{Year: 2020, Month: time.January}, values)
}

func TestEnsembleAveragesComponents(t *testing.T) {
	s := ensembleSeries(36)

	e := NewEnsemble(nil)
	res, err := e.Forecast(s, model.ColumnNetCashFlow, 12)
	require.NoError(t, err)

	assert.Equal(t, model.MethodEnsemble, res.Method)
	assert.Empty(t, res.Warnings)
	require.Equal(t, 12, res.Horizon())

	for i, entry := range res.Entries {
		require.Len(t, entry.Components, 3, "entry %d", i)
		sum := 0.0
		for _, m := range model.Methods() {
			v, ok := entry.Components[m]
			require.True(t, ok, "entry %d missing %s", i, m)
			sum += v
		}
		assert.InDelta(t, sum/3, entry.Forecast, 1e-9, "entry %d", i)
	}

	// Entries are contiguous months starting right after the history.
	p := s.Last().Period
	for _, entry := range res.Entries {
		p = p.Next()
		assert.True(t, entry.Period.Equal(p))
	}
}

func TestEnsembleFallsBackWhenSmoothingCannotFit(t *testing.T) {
	// 12 months < two seasonal cycles: exponential smoothing degrades to the
	// seasonal-naive result but the ensemble still answers.
	s := ensembleSeries(12)

	e := NewEnsemble(nil)
	res, err := e.Forecast(s, model.ColumnNetCashFlow, 6)
	require.NoError(t, err)

	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], string(model.MethodExponentialSmoothing))

	for _, entry := range res.Entries {
		assert.Equal(t,
			entry.Components[model.MethodSeasonalNaive],
			entry.Components[model.MethodExponentialSmoothing])
	}
}

func TestEnsembleInputValidation(t *testing.T) {
	e := NewEnsemble(nil)
	var inputErr *model.InputError

	_, err := e.Forecast(&model.TimeSeries{}, model.ColumnNetCashFlow, 6)
	assert.ErrorAs(t, err, &inputErr)

	_, err = e.Forecast(ensembleSeries(36), model.ColumnNetCashFlow, 0)
	assert.ErrorAs(t, err, &inputErr)
}

func TestConfidenceIntervalOrdering(t *testing.T) {
	s := ensembleSeries(36)
	e := NewEnsemble(nil)
	res, err := e.Forecast(s, model.ColumnNetCashFlow, 6)
	require.NoError(t, err)

	require.NoError(t, CalculateConfidenceIntervals(res, s, model.ColumnNetCashFlow))

	for i, entry := range res.Entries {
		require.True(t, entry.HasIntervals, "entry %d", i)
		assert.Less(t, entry.Lower95, entry.Lower80)
		assert.Less(t, entry.Lower80, entry.Forecast)
		assert.Less(t, entry.Forecast, entry.Upper80)
		assert.Less(t, entry.Upper80, entry.Upper95)

		// Constant width derived from the historical standard deviation.
		width80 := entry.Upper80 - entry.Lower80
		width95 := entry.Upper95 - entry.Lower95
		assert.InDelta(t, width80/width95, 1.28/1.96, 1e-9)
	}
}

func TestConfidenceIntervalsIdempotent(t *testing.T) {
	s := ensembleSeries(36)
	e := NewEnsemble(nil)
	res, err := e.Forecast(s, model.ColumnNetCashFlow, 3)
	require.NoError(t, err)

	require.NoError(t, CalculateConfidenceIntervals(res, s, model.ColumnNetCashFlow))
	first := make([]model.ForecastEntry, len(res.Entries))
	copy(first, res.Entries)

	require.NoError(t, CalculateConfidenceIntervals(res, s, model.ColumnNetCashFlow))
	for i := range res.Entries {
		assert.Equal(t, first[i].Lower80, res.Entries[i].Lower80)
		assert.Equal(t, first[i].Upper80, res.Entries[i].Upper80)
		assert.Equal(t, first[i].Lower95, res.Entries[i].Lower95)
		assert.Equal(t, first[i].Upper95, res.Entries[i].Upper95)
	}
}

func TestScenarioAnalysisDefaults(t *testing.T) {
	s := ensembleSeries(36)
	res, err := (&MovingAverage{}).Forecast(s, model.ColumnNetCashFlow, 3)
	require.NoError(t, err)

	ScenarioAnalysis(res, nil)
	for _, entry := range res.Entries {
		require.Len(t, entry.Scenarios, 3)
		assert.InDelta(t, entry.Forecast*0.8, entry.Scenarios["pessimistic"], 1e-9)
		assert.InDelta(t, entry.Forecast*1.2, entry.Scenarios["optimistic"], 1e-9)
		assert.InDelta(t, entry.Forecast*0.9, entry.Scenarios["conservative"], 1e-9)
	}
}

func TestScenarioAnalysisCustomMultipliers(t *testing.T) {
	s := ensembleSeries(36)
	res, err := (&MovingAverage{}).Forecast(s, model.ColumnNetCashFlow, 2)
	require.NoError(t, err)

	ScenarioAnalysis(res, map[string]float64{"stress": 0.5})
	for _, entry := range res.Entries {
		require.Len(t, entry.Scenarios, 1)
		assert.InDelta(t, entry.Forecast*0.5, entry.Scenarios["stress"], 1e-9)
	}
}
