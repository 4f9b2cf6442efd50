package model

import (
	"fmt"
	"sort"
	"time"
)

// MonthPeriod identifies a calendar month (year + month). It is the key of
// every monthly observation and of every forecasted period.
type MonthPeriod struct {
	Year  int
	Month time.Month
}

func (p MonthPeriod) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, int(p.Month))
}

// ParseMonthPeriod parses "YYYY-MM".
func ParseMonthPeriod(s string) (MonthPeriod, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return MonthPeriod{}, fmt.Errorf("invalid month period %q (expected YYYY-MM): %w", s, err)
	}
	return MonthPeriod{Year: t.Year(), Month: t.Month()}, nil
}

// MonthPeriodOf returns the period containing t.
func MonthPeriodOf(t time.Time) MonthPeriod {
	return MonthPeriod{Year: t.Year(), Month: t.Month()}
}

// AddMonths returns the period n months after p (n may be negative).
func (p MonthPeriod) AddMonths(n int) MonthPeriod {
	idx := p.Index() + n
	y := idx / 12
	m := idx % 12
	if m < 0 {
		m += 12
		y--
	}
	return MonthPeriod{Year: y, Month: time.Month(m + 1)}
}

func (p MonthPeriod) Next() MonthPeriod { return p.AddMonths(1) }

// Index maps the period onto a continuous month counter, so distances and
// ordering are simple integer arithmetic.
func (p MonthPeriod) Index() int { return p.Year*12 + int(p.Month) - 1 }

func (p MonthPeriod) Before(o MonthPeriod) bool { return p.Index() < o.Index() }

func (p MonthPeriod) Equal(o MonthPeriod) bool { return p.Index() == o.Index() }

// MarshalJSON/UnmarshalJSON keep the wire form as "YYYY-MM".
func (p MonthPeriod) MarshalJSON() ([]byte, error) {
	return []byte(`"` + p.String() + `"`), nil
}

func (p *MonthPeriod) UnmarshalJSON(b []byte) error {
	if len(b) < 2 || b[0] != '"' || b[len(b)-1] != '"' {
		return fmt.Errorf("invalid month period %s", string(b))
	}
	parsed, err := ParseMonthPeriod(string(b[1 : len(b)-1]))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// Column names accepted by the analysis and forecasting operations.
const (
	ColumnCashInflow         = "cash_inflow"
	ColumnCashOutflow        = "cash_outflow"
	ColumnNetCashFlow        = "net_cash_flow"
	ColumnAccountsReceivable = "accounts_receivable"
	ColumnAccountsPayable    = "accounts_payable"
	ColumnInventory          = "inventory"
	ColumnDSO                = "dso"
	ColumnDPO                = "dpo"
	ColumnDIO                = "dio"
	ColumnCashCycle          = "cash_cycle"
)

// Columns lists every column name in a stable order.
func Columns() []string {
	return []string{
		ColumnCashInflow,
		ColumnCashOutflow,
		ColumnNetCashFlow,
		ColumnAccountsReceivable,
		ColumnAccountsPayable,
		ColumnInventory,
		ColumnDSO,
		ColumnDPO,
		ColumnDIO,
		ColumnCashCycle,
	}
}

// MonthlyObservation is one month of aggregated cash-flow data.
// NetCashFlow is always CashInflow - CashOutflow; the KPI fields are derived
// and finite (division by zero clamps to 0 during derivation).
type MonthlyObservation struct {
	Period MonthPeriod `json:"period"`

	CashInflow         float64 `json:"cash_inflow"`
	CashOutflow        float64 `json:"cash_outflow"`
	NetCashFlow        float64 `json:"net_cash_flow"`
	AccountsReceivable float64 `json:"accounts_receivable"`
	AccountsPayable    float64 `json:"accounts_payable"`
	Inventory          float64 `json:"inventory"`

	DSO       float64 `json:"dso"`
	DPO       float64 `json:"dpo"`
	DIO       float64 `json:"dio"`
	CashCycle float64 `json:"cash_cycle"`
}

// Value returns the named column of the observation.
func (o *MonthlyObservation) Value(column string) (float64, error) {
	switch column {
	case ColumnCashInflow:
		return o.CashInflow, nil
	case ColumnCashOutflow:
		return o.CashOutflow, nil
	case ColumnNetCashFlow:
		return o.NetCashFlow, nil
	case ColumnAccountsReceivable:
		return o.AccountsReceivable, nil
	case ColumnAccountsPayable:
		return o.AccountsPayable, nil
	case ColumnInventory:
		return o.Inventory, nil
	case ColumnDSO:
		return o.DSO, nil
	case ColumnDPO:
		return o.DPO, nil
	case ColumnDIO:
		return o.DIO, nil
	case ColumnCashCycle:
		return o.CashCycle, nil
	default:
		return 0, &InputError{Msg: fmt.Sprintf("unknown column %q", column)}
	}
}

// TimeSeries is an ordered sequence of monthly observations, sorted strictly
// ascending by period. Components never mutate a series handed to them; they
// return new derived structures.
type TimeSeries struct {
	Observations []MonthlyObservation `json:"observations"`
}

// NewTimeSeries sorts the observations by period and rejects duplicates.
func NewTimeSeries(obs []MonthlyObservation) (*TimeSeries, error) {
	sorted := make([]MonthlyObservation, len(obs))
	copy(sorted, obs)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Period.Before(sorted[j].Period)
	})
	for i := 1; i < len(sorted); i++ {
		if sorted[i].Period.Equal(sorted[i-1].Period) {
			return nil, &InputError{Msg: fmt.Sprintf("duplicate month period %s", sorted[i].Period)}
		}
	}
	return &TimeSeries{Observations: sorted}, nil
}

func (s *TimeSeries) Len() int { return len(s.Observations) }

// Last returns the final observation. Callers must check Len first.
func (s *TimeSeries) Last() MonthlyObservation {
	return s.Observations[len(s.Observations)-1]
}

// Column extracts the named column as a slice aligned with Observations.
// Returns an InputError for an unknown column or an empty series.
func (s *TimeSeries) Column(column string) ([]float64, error) {
	if s == nil || len(s.Observations) == 0 {
		return nil, &InputError{Msg: "time series is empty"}
	}
	vals := make([]float64, len(s.Observations))
	for i := range s.Observations {
		v, err := s.Observations[i].Value(column)
		if err != nil {
			return nil, err
		}
		vals[i] = v
	}
	return vals, nil
}

// At returns the observation for the given period, if present.
func (s *TimeSeries) At(p MonthPeriod) (MonthlyObservation, bool) {
	// Series are small (tens to hundreds of months); linear scan is fine.
	for i := range s.Observations {
		if s.Observations[i].Period.Equal(p) {
			return s.Observations[i], true
		}
	}
	return MonthlyObservation{}, false
}
