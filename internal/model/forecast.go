package model

// Method identifies a forecasting strategy.
// Keep these values stable; they appear in CSV output and API responses.
type Method string

const (
	MethodMovingAverage        Method = "moving_average"
	MethodSeasonalNaive        Method = "seasonal_naive"
	MethodExponentialSmoothing Method = "exponential_smoothing"
	MethodEnsemble             Method = "ensemble"
)

// Methods lists the individual model variants (the ensemble excluded).
func Methods() []Method {
	return []Method{MethodMovingAverage, MethodSeasonalNaive, MethodExponentialSmoothing}
}

// ForecastEntry is one forecasted future month.
//
// Components is populated only by the ensemble (per-model point forecasts).
// The confidence bounds are present only after CalculateConfidenceIntervals,
// Scenarios only after ScenarioAnalysis.
type ForecastEntry struct {
	Period   MonthPeriod `json:"period"`
	Forecast float64     `json:"forecast"`

	Components map[Method]float64 `json:"components,omitempty"`

	HasIntervals bool    `json:"has_intervals,omitempty"`
	Lower80      float64 `json:"lower_80,omitempty"`
	Upper80      float64 `json:"upper_80,omitempty"`
	Lower95      float64 `json:"lower_95,omitempty"`
	Upper95      float64 `json:"upper_95,omitempty"`

	Scenarios map[string]float64 `json:"scenarios,omitempty"`
}

// ForecastResult is an ordered sequence of future-period entries produced by
// a forecasting call. It may be enriched in place by the confidence-interval
// and scenario post-processing steps; it is never re-entered into the engine.
type ForecastResult struct {
	Method  Method          `json:"method"`
	Column  string          `json:"column"`
	Entries []ForecastEntry `json:"entries"`

	// Warnings records degraded results, e.g. an exponential-smoothing fit
	// that fell back to seasonal-naive.
	Warnings []string `json:"warnings,omitempty"`
}

// Horizon returns the number of forecasted periods.
func (r *ForecastResult) Horizon() int { return len(r.Entries) }
