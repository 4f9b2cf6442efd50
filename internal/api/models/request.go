package models

import "cashflow-forecast/internal/model"

// AnalysisRequest carries a monthly series and the column to analyze.
// Used by the seasonality, trend, and decompose endpoints.
type AnalysisRequest struct {
	Observations []model.MonthlyObservation `json:"observations" binding:"required"`
	Column       string                     `json:"column,omitempty"` // default: net_cash_flow

	// Period applies to decomposition only (default: 12).
	Period int `json:"period,omitempty"`
}

// ForecastRequest carries a monthly series plus forecasting parameters.
type ForecastRequest struct {
	Observations []model.MonthlyObservation `json:"observations" binding:"required"`
	Column       string                     `json:"column,omitempty"`  // default: net_cash_flow
	Horizon      int                        `json:"horizon,omitempty"` // default: 12
	Method       string                     `json:"method,omitempty"`  // default: ensemble
	Options      ForecastOptions            `json:"options,omitempty"`
}

// ForecastOptions tunes the model variants and post-processing steps.
type ForecastOptions struct {
	MovingAverageWindow int `json:"moving_average_window,omitempty"`
	SeasonalPeriod      int `json:"seasonal_period,omitempty"`

	IncludeIntervals bool               `json:"include_intervals,omitempty"`
	IncludeScenarios bool               `json:"include_scenarios,omitempty"`
	Scenarios        map[string]float64 `json:"scenarios,omitempty"` // default set when empty
}
