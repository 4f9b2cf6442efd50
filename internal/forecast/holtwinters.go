package forecast

import (
	"fmt"
	"math"

	"cashflow-forecast/internal/model"
)

// DefaultHoltWintersPeriod is the seasonal cycle length for monthly data.
const DefaultHoltWintersPeriod = 12

// HoltWinters fits an additive-trend, additive-seasonal exponential smoothing
// model to the full history and projects it forward. Smoothing parameters are
// chosen by a bounded grid search minimizing the one-step squared error, so
// fitting always terminates.
//
// Fitting failures (fewer than two full seasonal cycles, non-finite
// recursion) return a ModelFittingError; the caller owns the fallback policy.
type HoltWinters struct {
	Period int
}

func (m *HoltWinters) Method() model.Method { return model.MethodExponentialSmoothing }

// smoothingGrid is the candidate set for each of alpha, beta, gamma.
var smoothingGrid = []float64{0.05, 0.2, 0.35, 0.5, 0.65, 0.8, 0.95}

type hwState struct {
	level    float64
	trend    float64
	seasonal []float64
}

func (m *HoltWinters) Forecast(s *model.TimeSeries, column string, horizon int) (*model.ForecastResult, error) {
	if err := checkForecastInput(s, horizon); err != nil {
		return nil, err
	}
	values, err := s.Column(column)
	if err != nil {
		return nil, err
	}
	period := m.Period
	if period <= 0 {
		period = DefaultHoltWintersPeriod
	}
	if len(values) < 2*period {
		return nil, &model.ModelFittingError{
			Method: m.Method(),
			Err:    fmt.Errorf("need at least %d observations (2 seasonal cycles), got %d", 2*period, len(values)),
		}
	}

	best, err := fitHoltWinters(values, period)
	if err != nil {
		return nil, &model.ModelFittingError{Method: m.Method(), Err: err}
	}

	res := &model.ForecastResult{Method: m.Method(), Column: column}
	n := len(values)
	for h, p := range futurePeriods(s, horizon) {
		step := h + 1
		value := best.level + float64(step)*best.trend + best.seasonal[(n+h)%period]
		res.Entries = append(res.Entries, model.ForecastEntry{Period: p, Forecast: value})
	}
	return res, nil
}

// fitHoltWinters grid-searches the smoothing parameters and returns the final
// smoothing state of the best parameterization.
func fitHoltWinters(values []float64, period int) (*hwState, error) {
	var best *hwState
	bestSSE := math.Inf(1)
	for _, alpha := range smoothingGrid {
		for _, beta := range smoothingGrid {
			for _, gamma := range smoothingGrid {
				st, sse, ok := runHoltWinters(values, period, alpha, beta, gamma)
				if ok && sse < bestSSE {
					bestSSE = sse
					best = st
				}
			}
		}
	}
	if best == nil {
		return nil, fmt.Errorf("smoothing recursion did not converge for any parameterization")
	}
	return best, nil
}

// runHoltWinters runs the additive smoothing recursion once. Initial states
// come from the first two seasonal cycles: the level is the first-cycle mean,
// the trend the mean cycle-over-cycle change, the seasonal components the
// first-cycle deviations from the level.
func runHoltWinters(values []float64, period int, alpha, beta, gamma float64) (*hwState, float64, bool) {
	level := meanOf(values[:period])
	trend := (meanOf(values[period:2*period]) - level) / float64(period)
	seasonal := make([]float64, period)
	for i := 0; i < period; i++ {
		seasonal[i] = values[i] - level
	}

	sse := 0.0
	for t := period; t < len(values); t++ {
		si := seasonal[t%period]
		oneStep := level + trend + si
		e := values[t] - oneStep
		sse += e * e

		prevLevel := level
		level = alpha*(values[t]-si) + (1-alpha)*(level+trend)
		trend = beta*(level-prevLevel) + (1-beta)*trend
		seasonal[t%period] = gamma*(values[t]-level) + (1-gamma)*si

		if math.IsNaN(level) || math.IsInf(level, 0) ||
			math.IsNaN(trend) || math.IsInf(trend, 0) {
			return nil, 0, false
		}
	}
	if math.IsNaN(sse) || math.IsInf(sse, 0) {
		return nil, 0, false
	}
	return &hwState{level: level, trend: trend, seasonal: seasonal}, sse, true
}
