package analysis

import (
	"math"
	"time"

	"cashflow-forecast/internal/model"
)

// MonthStats holds the pooled statistics for one calendar month, aggregated
// across every year in the series that contains that month.
type MonthStats struct {
	Month time.Month `json:"month"`
	Mean  float64    `json:"mean"`
	Std   float64    `json:"std"`
	Min   float64    `json:"min"`
	Max   float64    `json:"max"`
	Count int        `json:"count"`

	// SeasonalIndex is month mean / overall mean; >1 marks an above-average
	// month. SeasonalVariationPct is the same deviation expressed in percent.
	SeasonalIndex        float64 `json:"seasonal_index"`
	SeasonalVariationPct float64 `json:"seasonal_variation_pct"`
}

// SeasonalStats is the output of AnalyzeSeasonality: per-calendar-month
// statistics plus scalar summaries. Months lists only calendar months present
// in the series, ascending by month number.
type SeasonalStats struct {
	Column      string       `json:"column"`
	OverallMean float64      `json:"overall_mean"`
	Months      []MonthStats `json:"months"`

	PeakMonth     time.Month `json:"peak_month"`
	TroughMonth   time.Month `json:"trough_month"`
	SeasonalRange float64    `json:"seasonal_range"`

	// CoefficientOfVariation is mean(per-month std) / mean(per-month means).
	CoefficientOfVariation float64 `json:"coefficient_of_variation"`
}

// AnalyzeSeasonality groups observations by calendar month and computes the
// per-month statistics and seasonal index for the given column.
func AnalyzeSeasonality(s *model.TimeSeries, column string) (*SeasonalStats, error) {
	values, err := s.Column(column)
	if err != nil {
		return nil, err
	}

	byMonth := map[time.Month][]float64{}
	for i, obs := range s.Observations {
		byMonth[obs.Period.Month] = append(byMonth[obs.Period.Month], values[i])
	}

	overall := mean(values)
	out := &SeasonalStats{Column: column, OverallMean: overall}

	var meanOfMeans, meanOfStds float64
	first := true
	var peakMean, troughMean float64
	for m := time.January; m <= time.December; m++ {
		vals, ok := byMonth[m]
		if !ok {
			continue
		}
		ms := MonthStats{
			Month: m,
			Mean:  mean(vals),
			Std:   sampleStd(vals),
			Min:   minOf(vals),
			Max:   maxOf(vals),
			Count: len(vals),
		}
		ms.SeasonalIndex = ms.Mean / overall
		ms.SeasonalVariationPct = (ms.Mean - overall) / overall * 100
		out.Months = append(out.Months, ms)

		meanOfMeans += ms.Mean
		meanOfStds += ms.Std
		// Ties break toward the lower month number.
		if first || ms.Mean > peakMean {
			peakMean = ms.Mean
			out.PeakMonth = m
		}
		if first || ms.Mean < troughMean {
			troughMean = ms.Mean
			out.TroughMonth = m
		}
		first = false
	}

	nm := float64(len(out.Months))
	meanOfMeans /= nm
	meanOfStds /= nm
	out.SeasonalRange = peakMean - troughMean
	if meanOfMeans != 0 {
		out.CoefficientOfVariation = meanOfStds / meanOfMeans
	} else {
		out.CoefficientOfVariation = math.Inf(1)
	}
	return out, nil
}

func minOf(xs []float64) float64 {
	m := xs[0]
	for _, v := range xs[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

func maxOf(xs []float64) float64 {
	m := xs[0]
	for _, v := range xs[1:] {
		if v > m {
			m = v
		}
	}
	return m
}

// SeasonalIndexWeightedMean is the count-weighted average of the seasonal
// indexes; it equals 1 up to floating-point error and is exposed for
// reporting sanity checks.
func (st *SeasonalStats) SeasonalIndexWeightedMean() float64 {
	var num, den float64
	for _, ms := range st.Months {
		num += ms.SeasonalIndex * float64(ms.Count)
		den += float64(ms.Count)
	}
	if den == 0 {
		return math.NaN()
	}
	return num / den
}
