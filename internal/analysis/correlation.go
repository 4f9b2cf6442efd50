package analysis

import (
	"math"

	"cashflow-forecast/internal/model"
)

// CorrelationPair is a pair of columns whose Pearson correlation magnitude
// exceeds the strong-correlation threshold.
type CorrelationPair struct {
	Var1        string  `json:"var1"`
	Var2        string  `json:"var2"`
	Correlation float64 `json:"correlation"`
}

// CorrelationMatrix is a Pearson correlation matrix over the key cash-flow
// metrics, with the strongly correlated pairs pulled out for reporting.
type CorrelationMatrix struct {
	Columns     []string          `json:"columns"`
	Values      [][]float64       `json:"values"`
	StrongPairs []CorrelationPair `json:"strong_pairs"`
}

const strongCorrelationThreshold = 0.7

var correlationColumns = []string{
	model.ColumnCashInflow,
	model.ColumnCashOutflow,
	model.ColumnNetCashFlow,
	model.ColumnAccountsReceivable,
	model.ColumnAccountsPayable,
	model.ColumnDSO,
	model.ColumnDPO,
	model.ColumnCashCycle,
}

// CorrelationAnalysis computes the pairwise Pearson correlations between the
// key metrics of the series.
func CorrelationAnalysis(s *model.TimeSeries) (*CorrelationMatrix, error) {
	cols := correlationColumns
	data := make([][]float64, len(cols))
	for i, c := range cols {
		vals, err := s.Column(c)
		if err != nil {
			return nil, err
		}
		data[i] = vals
	}

	m := &CorrelationMatrix{Columns: cols, Values: make([][]float64, len(cols))}
	for i := range cols {
		m.Values[i] = make([]float64, len(cols))
		for j := range cols {
			m.Values[i][j] = pearson(data[i], data[j])
		}
	}
	for i := 0; i < len(cols); i++ {
		for j := i + 1; j < len(cols); j++ {
			r := m.Values[i][j]
			if !math.IsNaN(r) && math.Abs(r) > strongCorrelationThreshold {
				m.StrongPairs = append(m.StrongPairs, CorrelationPair{
					Var1: cols[i], Var2: cols[j], Correlation: r,
				})
			}
		}
	}
	return m, nil
}

func pearson(x, y []float64) float64 {
	mx := mean(x)
	my := mean(y)
	var sxx, syy, sxy float64
	for i := range x {
		dx := x[i] - mx
		dy := y[i] - my
		sxx += dx * dx
		syy += dy * dy
		sxy += dx * dy
	}
	if sxx == 0 || syy == 0 {
		return math.NaN()
	}
	return sxy / math.Sqrt(sxx*syy)
}
