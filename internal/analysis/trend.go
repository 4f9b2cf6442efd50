package analysis

import (
	"fmt"
	"math"

	"cashflow-forecast/internal/model"
)

// TrendStats summarizes the long-run behavior of one column: an OLS line
// against the zero-based period index, percent change diagnostics, and an
// ADF stationarity verdict.
//
// TotalChangePct and MonthlyGrowthPct are +Inf when the first observation is
// exactly zero (undefined baseline); they are never silently reported as 0.
type TrendStats struct {
	Column string `json:"column"`

	Slope     float64 `json:"slope"`
	Intercept float64 `json:"intercept"`
	RSquared  float64 `json:"r_squared"`
	PValue    float64 `json:"p_value"`
	StdErr    float64 `json:"std_err"`

	TotalChangePct   float64 `json:"total_change_pct"`
	MonthlyGrowthPct float64 `json:"monthly_growth_pct"`

	IsStationary bool    `json:"is_stationary"`
	ADFStat      float64 `json:"adf_stat"`
	ADFPValue    float64 `json:"adf_p_value"`
	ADFLag       int     `json:"adf_lag"`
}

// stationarityAlpha is the significance level below which the ADF p-value
// declares the series stationary.
const stationarityAlpha = 0.05

// TrendAnalysis fits an OLS line of the column against period index 0..n-1
// and runs an ADF unit-root test. Requires at least 3 observations.
func TrendAnalysis(s *model.TimeSeries, column string) (*TrendStats, error) {
	values, err := s.Column(column)
	if err != nil {
		return nil, err
	}
	if len(values) < 3 {
		return nil, &model.InputError{
			Msg: fmt.Sprintf("trend analysis needs at least 3 observations, got %d", len(values)),
		}
	}

	x := make([]float64, len(values))
	for i := range x {
		x[i] = float64(i)
	}
	reg := linregress(x, values)

	ts := &TrendStats{
		Column:    column,
		Slope:     reg.Slope,
		Intercept: reg.Intercept,
		RSquared:  reg.R * reg.R,
		PValue:    reg.PValue,
		StdErr:    reg.StdErr,
	}

	start := values[0]
	end := values[len(values)-1]
	if start == 0 {
		ts.TotalChangePct = math.Inf(1)
		ts.MonthlyGrowthPct = math.Inf(1)
	} else {
		ts.TotalChangePct = (end - start) / math.Abs(start) * 100
		ts.MonthlyGrowthPct = reg.Slope / math.Abs(start) * 100
	}

	clean := values[:0:0]
	for _, v := range values {
		if !math.IsNaN(v) {
			clean = append(clean, v)
		}
	}
	adf, err := adfTest(clean)
	if err != nil {
		return nil, &model.InputError{Msg: fmt.Sprintf("stationarity test: %v", err)}
	}
	ts.ADFStat = adf.Stat
	ts.ADFPValue = adf.PValue
	ts.ADFLag = adf.Lag
	ts.IsStationary = adf.PValue < stationarityAlpha

	return ts, nil
}
