package forecast

import (
	"fmt"

	"cashflow-forecast/internal/model"
)

// DefaultMovingAverageWindow is the trailing window used when none is set.
const DefaultMovingAverageWindow = 3

// MovingAverage forecasts the last trailing simple moving average, repeated
// flat across the whole horizon.
//
// Policy for short series: a series with fewer observations than the window
// is an InputError; the window is never silently shrunk.
type MovingAverage struct {
	Window int
}

func (m *MovingAverage) Method() model.Method { return model.MethodMovingAverage }

func (m *MovingAverage) Forecast(s *model.TimeSeries, column string, horizon int) (*model.ForecastResult, error) {
	if err := checkForecastInput(s, horizon); err != nil {
		return nil, err
	}
	values, err := s.Column(column)
	if err != nil {
		return nil, err
	}
	window := m.Window
	if window <= 0 {
		window = DefaultMovingAverageWindow
	}
	if len(values) < window {
		return nil, &model.InputError{
			Msg: fmt.Sprintf("moving average needs at least %d observations, got %d", window, len(values)),
		}
	}

	last := meanOf(values[len(values)-window:])

	res := &model.ForecastResult{Method: m.Method(), Column: column}
	for _, p := range futurePeriods(s, horizon) {
		res.Entries = append(res.Entries, model.ForecastEntry{Period: p, Forecast: last})
	}
	return res, nil
}
