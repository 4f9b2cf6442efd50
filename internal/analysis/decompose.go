package analysis

import (
	"math"

	"cashflow-forecast/internal/model"
)

// Decomposition is a classical additive decomposition of a column into
// trend, seasonal, and residual components. All four slices are aligned
// index-for-index with the input series; the trend (and therefore the
// residual) is NaN-padded at the edges where the centered moving average is
// undefined.
type Decomposition struct {
	Column string `json:"column"`
	Period int    `json:"period"`

	Observed []float64 `json:"observed"`
	Trend    []float64 `json:"trend"`
	Seasonal []float64 `json:"seasonal"`
	Residual []float64 `json:"residual"`
}

// DefaultSeasonalPeriod is the periodicity of monthly business data.
const DefaultSeasonalPeriod = 12

// Decompose performs the additive decomposition with the given periodicity
// (DefaultSeasonalPeriod when period <= 0). A series shorter than two full
// cycles has the period reduced to max(1, n/2) so the decomposition stays
// defined.
func Decompose(s *model.TimeSeries, column string, period int) (*Decomposition, error) {
	values, err := s.Column(column)
	if err != nil {
		return nil, err
	}
	if period <= 0 {
		period = DefaultSeasonalPeriod
	}
	n := len(values)
	if n < 2*period {
		period = n / 2
		if period < 1 {
			period = 1
		}
	}

	d := &Decomposition{
		Column:   column,
		Period:   period,
		Observed: values,
		Trend:    make([]float64, n),
		Seasonal: make([]float64, n),
		Residual: make([]float64, n),
	}

	if period == 1 {
		// Degenerate periodicity: the trend is the series itself.
		copy(d.Trend, values)
		return d, nil
	}

	centeredMA(values, period, d.Trend)

	// Average the detrended values per position in the cycle, then center
	// them so the seasonal component sums to ~0 over one period.
	sums := make([]float64, period)
	counts := make([]int, period)
	for i := 0; i < n; i++ {
		if math.IsNaN(d.Trend[i]) {
			continue
		}
		pos := i % period
		sums[pos] += values[i] - d.Trend[i]
		counts[pos]++
	}
	avgs := make([]float64, period)
	var total float64
	for p := 0; p < period; p++ {
		if counts[p] > 0 {
			avgs[p] = sums[p] / float64(counts[p])
		}
		total += avgs[p]
	}
	grand := total / float64(period)
	for p := 0; p < period; p++ {
		avgs[p] -= grand
	}

	for i := 0; i < n; i++ {
		d.Seasonal[i] = avgs[i%period]
		if math.IsNaN(d.Trend[i]) {
			d.Residual[i] = math.NaN()
		} else {
			d.Residual[i] = values[i] - d.Trend[i] - d.Seasonal[i]
		}
	}
	return d, nil
}

// centeredMA writes the centered moving average of window `period` into out,
// NaN where undefined. Even periods use the standard 2xMA with half weights
// on the two outermost points.
func centeredMA(values []float64, period int, out []float64) {
	n := len(values)
	for i := range out {
		out[i] = math.NaN()
	}
	if period%2 == 1 {
		half := period / 2
		for i := half; i < n-half; i++ {
			sum := 0.0
			for j := i - half; j <= i+half; j++ {
				sum += values[j]
			}
			out[i] = sum / float64(period)
		}
		return
	}
	half := period / 2
	for i := half; i < n-half; i++ {
		sum := 0.5*values[i-half] + 0.5*values[i+half]
		for j := i - half + 1; j <= i+half-1; j++ {
			sum += values[j]
		}
		out[i] = sum / float64(period)
	}
}
