package forecast

import (
	"errors"
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"cashflow-forecast/internal/model"
)

// Model is a forecasting strategy. Every variant produces exactly `horizon`
// future monthly entries, chronologically contiguous starting the month after
// the series' last month.
type Model interface {
	Method() model.Method
	Forecast(s *model.TimeSeries, column string, horizon int) (*model.ForecastResult, error)
}

// NewModel builds a model variant by method name. Window applies to the
// moving average, period to exponential smoothing; zero values select the
// defaults.
func NewModel(method model.Method, window, period int) (Model, error) {
	switch method {
	case model.MethodMovingAverage:
		return &MovingAverage{Window: window}, nil
	case model.MethodSeasonalNaive:
		return &SeasonalNaive{}, nil
	case model.MethodExponentialSmoothing:
		return &HoltWinters{Period: period}, nil
	default:
		return nil, &model.InputError{Msg: fmt.Sprintf("unsupported forecast method %q", method)}
	}
}

// ForecastWithFallback runs one model and applies the degraded-mode policy:
// when exponential smoothing returns a ModelFittingError, the seasonal-naive
// result for the same column and horizon is substituted and the degradation
// is recorded as a warning. All other errors pass through.
func ForecastWithFallback(m Model, s *model.TimeSeries, column string, horizon int, log *logrus.Logger) (*model.ForecastResult, error) {
	res, err := m.Forecast(s, column, horizon)
	if err == nil {
		return res, nil
	}
	var fitErr *model.ModelFittingError
	if !errors.As(err, &fitErr) {
		return nil, err
	}
	if log != nil {
		log.WithFields(logrus.Fields{
			"method": m.Method(),
			"column": column,
		}).Warnf("model fit failed, falling back to seasonal naive: %v", fitErr.Err)
	}
	fallback, fbErr := (&SeasonalNaive{}).Forecast(s, column, horizon)
	if fbErr != nil {
		return nil, fmt.Errorf("fallback after %v: %w", fitErr, fbErr)
	}
	fallback.Warnings = append(fallback.Warnings,
		fmt.Sprintf("%s: seasonal-naive fallback used (%v)", m.Method(), fitErr.Err))
	return fallback, nil
}

// futurePeriods returns the h consecutive months immediately following the
// series' last observation.
func futurePeriods(s *model.TimeSeries, horizon int) []model.MonthPeriod {
	out := make([]model.MonthPeriod, horizon)
	p := s.Last().Period
	for i := 0; i < horizon; i++ {
		p = p.Next()
		out[i] = p
	}
	return out
}

func checkForecastInput(s *model.TimeSeries, horizon int) error {
	if s == nil || s.Len() == 0 {
		return &model.InputError{Msg: "time series is empty"}
	}
	if horizon < 1 {
		return &model.InputError{Msg: fmt.Sprintf("horizon must be >= 1, got %d", horizon)}
	}
	return nil
}

func meanOf(xs []float64) float64 {
	sum := 0.0
	for _, v := range xs {
		sum += v
	}
	return sum / float64(len(xs))
}

func sampleStdOf(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	m := meanOf(xs)
	ss := 0.0
	for _, v := range xs {
		d := v - m
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(xs)-1))
}
