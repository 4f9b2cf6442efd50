package forecast

import (
	"fmt"
	"time"

	"cashflow-forecast/internal/model"
)

// SeasonalNaive reuses the value of the same calendar month one year prior.
// When the series does not reach back that far, it falls back to the
// historical mean of all observations sharing that calendar month. A calendar
// month with no history at all is an InputError.
type SeasonalNaive struct{}

func (m *SeasonalNaive) Method() model.Method { return model.MethodSeasonalNaive }

func (m *SeasonalNaive) Forecast(s *model.TimeSeries, column string, horizon int) (*model.ForecastResult, error) {
	if err := checkForecastInput(s, horizon); err != nil {
		return nil, err
	}
	// Validate the column up front so an unknown name fails before any
	// per-period lookups.
	if _, err := s.Column(column); err != nil {
		return nil, err
	}

	res := &model.ForecastResult{Method: m.Method(), Column: column}
	for _, p := range futurePeriods(s, horizon) {
		var value float64
		if obs, ok := s.At(p.AddMonths(-12)); ok {
			v, err := obs.Value(column)
			if err != nil {
				return nil, err
			}
			value = v
		} else {
			mm, ok, err := monthMean(s, column, p.Month)
			if err != nil {
				return nil, err
			}
			if !ok {
				return nil, &model.InputError{
					Msg: fmt.Sprintf("no historical observations for calendar month %s", p.Month),
				}
			}
			value = mm
		}
		res.Entries = append(res.Entries, model.ForecastEntry{Period: p, Forecast: value})
	}
	return res, nil
}

// monthMean pools every observation sharing the calendar month. The mean is
// a policy choice inherited from the source system; swap here for median or
// most-recent if that ever changes.
func monthMean(s *model.TimeSeries, column string, month time.Month) (float64, bool, error) {
	sum := 0.0
	count := 0
	for i := range s.Observations {
		if s.Observations[i].Period.Month != month {
			continue
		}
		v, err := s.Observations[i].Value(column)
		if err != nil {
			return 0, false, err
		}
		sum += v
		count++
	}
	if count == 0 {
		return 0, false, nil
	}
	return sum / float64(count), true, nil
}
