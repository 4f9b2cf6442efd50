package forecast

import (
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"cashflow-forecast/internal/model"
)

// Ensemble runs the three model variants over the same series and averages
// their point forecasts position-by-position. The members have no data
// dependency on each other, so they run concurrently; correctness does not
// depend on that.
type Ensemble struct {
	// Window is the moving-average window (DefaultMovingAverageWindow if 0).
	Window int
	// Period is the exponential-smoothing seasonal period
	// (DefaultHoltWintersPeriod if 0).
	Period int

	Log *logrus.Logger
}

func NewEnsemble(log *logrus.Logger) *Ensemble {
	return &Ensemble{Log: log}
}

func (e *Ensemble) Method() model.Method { return model.MethodEnsemble }

// Forecast runs all three variants, applies the seasonal-naive fallback when
// exponential smoothing cannot be fitted, validates that the member results
// align, and averages them. Per-model forecasts are retained as components.
func (e *Ensemble) Forecast(s *model.TimeSeries, column string, horizon int) (*model.ForecastResult, error) {
	if err := checkForecastInput(s, horizon); err != nil {
		return nil, err
	}

	members := []Model{
		&MovingAverage{Window: e.Window},
		&SeasonalNaive{},
		&HoltWinters{Period: e.Period},
	}

	results := make([]*model.ForecastResult, len(members))
	errs := make([]error, len(members))
	var wg sync.WaitGroup
	for i, m := range members {
		wg.Add(1)
		go func(i int, m Model) {
			defer wg.Done()
			results[i], errs[i] = m.Forecast(s, column, horizon)
		}(i, m)
	}
	wg.Wait()

	var warnings []string
	for i, err := range errs {
		if err == nil {
			continue
		}
		var fitErr *model.ModelFittingError
		if !errors.As(err, &fitErr) {
			return nil, err
		}
		// Degraded mode: substitute the seasonal-naive result. Never silent.
		if e.Log != nil {
			e.Log.WithFields(logrus.Fields{
				"method": members[i].Method(),
				"column": column,
			}).Warnf("model fit failed, substituting seasonal naive: %v", fitErr.Err)
		}
		fallback, fbErr := (&SeasonalNaive{}).Forecast(s, column, horizon)
		if fbErr != nil {
			return nil, fmt.Errorf("fallback after %v: %w", fitErr, fbErr)
		}
		results[i] = fallback
		warnings = append(warnings,
			fmt.Sprintf("%s: seasonal-naive fallback used (%v)", members[i].Method(), fitErr.Err))
	}

	expected := futurePeriods(s, horizon)
	for i, r := range results {
		if r.Horizon() != horizon {
			return nil, &model.ConsistencyError{
				Msg: fmt.Sprintf("%s produced %d entries, expected %d", members[i].Method(), r.Horizon(), horizon),
			}
		}
		for j, entry := range r.Entries {
			if !entry.Period.Equal(expected[j]) {
				return nil, &model.ConsistencyError{
					Msg: fmt.Sprintf("%s entry %d targets %s, expected %s",
						members[i].Method(), j, entry.Period, expected[j]),
				}
			}
		}
	}

	out := &model.ForecastResult{Method: e.Method(), Column: column, Warnings: warnings}
	for j, p := range expected {
		components := make(map[model.Method]float64, len(members))
		sum := 0.0
		for i, r := range results {
			v := r.Entries[j].Forecast
			components[members[i].Method()] = v
			sum += v
		}
		out.Entries = append(out.Entries, model.ForecastEntry{
			Period:     p,
			Forecast:   sum / float64(len(members)),
			Components: components,
		})
	}
	return out, nil
}

// Confidence band z-scores for the two-sided 80% and 95% levels.
const (
	z80 = 1.28
	z95 = 1.96
)

// CalculateConfidenceIntervals enriches a forecast result with constant-width
// bands derived from the historical sample standard deviation of the column.
// The band width does not grow with the horizon — a deliberate
// normal-approximation simplification. Applying it twice overwrites the
// bounds with identical values.
func CalculateConfidenceIntervals(res *model.ForecastResult, s *model.TimeSeries, column string) error {
	values, err := s.Column(column)
	if err != nil {
		return err
	}
	std := sampleStdOf(values)
	for i := range res.Entries {
		e := &res.Entries[i]
		e.Lower80 = e.Forecast - z80*std
		e.Upper80 = e.Forecast + z80*std
		e.Lower95 = e.Forecast - z95*std
		e.Upper95 = e.Forecast + z95*std
		e.HasIntervals = true
	}
	return nil
}

// DefaultScenarios returns the standard scenario multipliers.
func DefaultScenarios() map[string]float64 {
	return map[string]float64{
		"pessimistic":  0.8,
		"optimistic":   1.2,
		"conservative": 0.9,
	}
}

// ScenarioAnalysis adds one scenario-adjusted forecast per named multiplier
// to every entry. A nil or empty map selects DefaultScenarios.
func ScenarioAnalysis(res *model.ForecastResult, scenarios map[string]float64) {
	if len(scenarios) == 0 {
		scenarios = DefaultScenarios()
	}
	for i := range res.Entries {
		e := &res.Entries[i]
		e.Scenarios = make(map[string]float64, len(scenarios))
		for name, mult := range scenarios {
			e.Scenarios[name] = e.Forecast * mult
		}
	}
}
