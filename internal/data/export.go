package data

import (
	"encoding/csv"
	"math"
	"os"
	"sort"
	"strconv"

	"cashflow-forecast/internal/analysis"
	"cashflow-forecast/internal/model"
)

// WriteMonthlyCSV exports the processed monthly series, KPIs included.
func WriteMonthlyCSV(path string, s *model.TimeSeries) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := append([]string{"period"}, model.Columns()...)
	if err := w.Write(header); err != nil {
		return err
	}
	for i := range s.Observations {
		o := &s.Observations[i]
		row := []string{o.Period.String()}
		for _, col := range model.Columns() {
			v, err := o.Value(col)
			if err != nil {
				return err
			}
			row = append(row, fmtFloat(v))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return w.Error()
}

// WriteSeasonalStatsCSV exports the per-calendar-month statistics.
func WriteSeasonalStatsCSV(path string, stats *analysis.SeasonalStats) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		"month", "mean", "std", "min", "max", "count",
		"seasonal_index", "seasonal_variation_pct",
	}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, ms := range stats.Months {
		row := []string{
			strconv.Itoa(int(ms.Month)),
			fmtFloat(ms.Mean),
			fmtFloat(ms.Std),
			fmtFloat(ms.Min),
			fmtFloat(ms.Max),
			strconv.Itoa(ms.Count),
			fmtFloat(ms.SeasonalIndex),
			fmtFloat(ms.SeasonalVariationPct),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return w.Error()
}

// WriteForecastCSV exports a forecast result, including whichever component,
// interval, and scenario columns the result carries.
func WriteForecastCSV(path string, res *model.ForecastResult) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{"period", "forecast", "method"}
	var components []model.Method
	var scenarios []string
	hasIntervals := false
	if len(res.Entries) > 0 {
		first := res.Entries[0]
		for m := range first.Components {
			components = append(components, m)
		}
		sort.Slice(components, func(i, j int) bool { return components[i] < components[j] })
		for name := range first.Scenarios {
			scenarios = append(scenarios, name)
		}
		sort.Strings(scenarios)
		hasIntervals = first.HasIntervals
	}
	for _, m := range components {
		header = append(header, string(m)+"_forecast")
	}
	if hasIntervals {
		header = append(header, "lower_80", "upper_80", "lower_95", "upper_95")
	}
	for _, name := range scenarios {
		header = append(header, name+"_forecast")
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, e := range res.Entries {
		row := []string{e.Period.String(), fmtFloat(e.Forecast), string(res.Method)}
		for _, m := range components {
			row = append(row, fmtFloat(e.Components[m]))
		}
		if hasIntervals {
			row = append(row, fmtFloat(e.Lower80), fmtFloat(e.Upper80), fmtFloat(e.Lower95), fmtFloat(e.Upper95))
		}
		for _, name := range scenarios {
			row = append(row, fmtFloat(e.Scenarios[name]))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return w.Error()
}

// fmtFloat renders a value for CSV; non-finite diagnostics become empty cells
// rather than invented numbers.
func fmtFloat(x float64) string {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return ""
	}
	return strconv.FormatFloat(x, 'f', 6, 64)
}
