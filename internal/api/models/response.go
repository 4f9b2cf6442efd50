package models

import (
	"encoding/json"
	"math"
	"time"

	"cashflow-forecast/internal/analysis"
	"cashflow-forecast/internal/model"
)

// JSONFloat renders non-finite diagnostics as null instead of failing to
// marshal (encoding/json rejects NaN and infinities).
type JSONFloat float64

func (f JSONFloat) MarshalJSON() ([]byte, error) {
	v := float64(f)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return []byte("null"), nil
	}
	return json.Marshal(v)
}

func toJSONFloats(xs []float64) []JSONFloat {
	out := make([]JSONFloat, len(xs))
	for i, v := range xs {
		out[i] = JSONFloat(v)
	}
	return out
}

// ForecastResponse wraps a forecast result.
type ForecastResponse struct {
	Status string                `json:"status"`
	Result *model.ForecastResult `json:"result"`
}

// SeasonalityResponse mirrors analysis.SeasonalStats with null-safe floats.
type SeasonalityResponse struct {
	Column                 string            `json:"column"`
	OverallMean            JSONFloat         `json:"overall_mean"`
	Months                 []MonthStatsEntry `json:"months"`
	PeakMonth              int               `json:"peak_month"`
	TroughMonth            int               `json:"trough_month"`
	SeasonalRange          JSONFloat         `json:"seasonal_range"`
	CoefficientOfVariation JSONFloat         `json:"coefficient_of_variation"`
}

type MonthStatsEntry struct {
	Month                int       `json:"month"`
	Mean                 JSONFloat `json:"mean"`
	Std                  JSONFloat `json:"std"`
	Min                  JSONFloat `json:"min"`
	Max                  JSONFloat `json:"max"`
	Count                int       `json:"count"`
	SeasonalIndex        JSONFloat `json:"seasonal_index"`
	SeasonalVariationPct JSONFloat `json:"seasonal_variation_pct"`
}

func NewSeasonalityResponse(st *analysis.SeasonalStats) SeasonalityResponse {
	resp := SeasonalityResponse{
		Column:                 st.Column,
		OverallMean:            JSONFloat(st.OverallMean),
		PeakMonth:              int(st.PeakMonth),
		TroughMonth:            int(st.TroughMonth),
		SeasonalRange:          JSONFloat(st.SeasonalRange),
		CoefficientOfVariation: JSONFloat(st.CoefficientOfVariation),
	}
	for _, ms := range st.Months {
		resp.Months = append(resp.Months, MonthStatsEntry{
			Month:                int(ms.Month),
			Mean:                 JSONFloat(ms.Mean),
			Std:                  JSONFloat(ms.Std),
			Min:                  JSONFloat(ms.Min),
			Max:                  JSONFloat(ms.Max),
			Count:                ms.Count,
			SeasonalIndex:        JSONFloat(ms.SeasonalIndex),
			SeasonalVariationPct: JSONFloat(ms.SeasonalVariationPct),
		})
	}
	return resp
}

// TrendResponse mirrors analysis.TrendStats with null-safe floats.
type TrendResponse struct {
	Column           string    `json:"column"`
	Slope            JSONFloat `json:"slope"`
	Intercept        JSONFloat `json:"intercept"`
	RSquared         JSONFloat `json:"r_squared"`
	PValue           JSONFloat `json:"p_value"`
	StdErr           JSONFloat `json:"std_err"`
	TotalChangePct   JSONFloat `json:"total_change_pct"`
	MonthlyGrowthPct JSONFloat `json:"monthly_growth_pct"`
	IsStationary     bool      `json:"is_stationary"`
	ADFStat          JSONFloat `json:"adf_stat"`
	ADFPValue        JSONFloat `json:"adf_p_value"`
	ADFLag           int       `json:"adf_lag"`
}

func NewTrendResponse(ts *analysis.TrendStats) TrendResponse {
	return TrendResponse{
		Column:           ts.Column,
		Slope:            JSONFloat(ts.Slope),
		Intercept:        JSONFloat(ts.Intercept),
		RSquared:         JSONFloat(ts.RSquared),
		PValue:           JSONFloat(ts.PValue),
		StdErr:           JSONFloat(ts.StdErr),
		TotalChangePct:   JSONFloat(ts.TotalChangePct),
		MonthlyGrowthPct: JSONFloat(ts.MonthlyGrowthPct),
		IsStationary:     ts.IsStationary,
		ADFStat:          JSONFloat(ts.ADFStat),
		ADFPValue:        JSONFloat(ts.ADFPValue),
		ADFLag:           ts.ADFLag,
	}
}

// DecomposeResponse mirrors analysis.Decomposition; the trend and residual
// slices carry nulls where the centered moving average is undefined.
type DecomposeResponse struct {
	Column   string      `json:"column"`
	Period   int         `json:"period"`
	Periods  []string    `json:"periods"`
	Observed []JSONFloat `json:"observed"`
	Trend    []JSONFloat `json:"trend"`
	Seasonal []JSONFloat `json:"seasonal"`
	Residual []JSONFloat `json:"residual"`
}

func NewDecomposeResponse(d *analysis.Decomposition, periods []model.MonthPeriod) DecomposeResponse {
	labels := make([]string, len(periods))
	for i, p := range periods {
		labels[i] = p.String()
	}
	return DecomposeResponse{
		Column:   d.Column,
		Period:   d.Period,
		Periods:  labels,
		Observed: toJSONFloats(d.Observed),
		Trend:    toJSONFloats(d.Trend),
		Seasonal: toJSONFloats(d.Seasonal),
		Residual: toJSONFloats(d.Residual),
	}
}

// MethodInfo describes a forecast method for discovery.
type MethodInfo struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Parameters  []ParameterInfo `json:"parameters,omitempty"`
}

// ParameterInfo describes a method parameter.
type ParameterInfo struct {
	Name        string      `json:"name"`
	Type        string      `json:"type"`
	Description string      `json:"description"`
	Default     interface{} `json:"default,omitempty"`
}

// MethodsResponse lists the available forecast methods.
type MethodsResponse struct {
	Methods []MethodInfo `json:"methods"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information.
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// HealthResponse is returned by the health endpoint.
type HealthResponse struct {
	Status string    `json:"status"`
	Time   time.Time `json:"time"`
}
