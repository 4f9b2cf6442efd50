package data

import (
	"math"
	"sort"

	"github.com/shopspring/decimal"

	"cashflow-forecast/internal/model"
)

// CapOutliersIQR clips the three flow columns to [Q1-1.5*IQR, Q3+1.5*IQR].
// The input slice is not mutated; a clipped copy is returned. Balance-sheet
// levels are left untouched.
func CapOutliersIQR(records []model.DailyRecord) []model.DailyRecord {
	out := make([]model.DailyRecord, len(records))
	copy(out, records)
	if len(out) == 0 {
		return out
	}

	clip := func(get func(*model.DailyRecord) *float64) {
		vals := make([]float64, len(out))
		for i := range out {
			vals[i] = *get(&out[i])
		}
		sort.Float64s(vals)
		q1 := quantileSorted(vals, 0.25)
		q3 := quantileSorted(vals, 0.75)
		iqr := q3 - q1
		lower := q1 - 1.5*iqr
		upper := q3 + 1.5*iqr
		for i := range out {
			p := get(&out[i])
			if *p < lower {
				*p = lower
			}
			if *p > upper {
				*p = upper
			}
		}
	}

	clip(func(r *model.DailyRecord) *float64 { return &r.CashInflow })
	clip(func(r *model.DailyRecord) *float64 { return &r.CashOutflow })
	clip(func(r *model.DailyRecord) *float64 { return &r.NetCashFlow })
	return out
}

// quantileSorted interpolates linearly between order statistics.
func quantileSorted(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

type monthlyAccumulator struct {
	inflow  decimal.Decimal
	outflow decimal.Decimal
	ar      decimal.Decimal
	ap      decimal.Decimal
	inv     decimal.Decimal
	days    int
}

// AggregateMonthly rolls daily records up to monthly observations: flows are
// summed, balance-sheet fields averaged. Sums use decimal arithmetic so cent
// amounts accumulate exactly; net_cash_flow is re-derived as inflow - outflow
// after summation.
func AggregateMonthly(records []model.DailyRecord) (*model.TimeSeries, error) {
	if len(records) == 0 {
		return nil, &model.InputError{Msg: "no daily records to aggregate"}
	}

	acc := map[model.MonthPeriod]*monthlyAccumulator{}
	for _, rec := range records {
		p := model.MonthPeriodOf(rec.Date)
		a := acc[p]
		if a == nil {
			a = &monthlyAccumulator{}
			acc[p] = a
		}
		a.inflow = a.inflow.Add(decimal.NewFromFloat(rec.CashInflow))
		a.outflow = a.outflow.Add(decimal.NewFromFloat(rec.CashOutflow))
		a.ar = a.ar.Add(decimal.NewFromFloat(rec.AccountsReceivable))
		a.ap = a.ap.Add(decimal.NewFromFloat(rec.AccountsPayable))
		a.inv = a.inv.Add(decimal.NewFromFloat(rec.Inventory))
		a.days++
	}

	obs := make([]model.MonthlyObservation, 0, len(acc))
	for p, a := range acc {
		days := decimal.NewFromInt(int64(a.days))
		net := a.inflow.Sub(a.outflow)
		obs = append(obs, model.MonthlyObservation{
			Period:             p,
			CashInflow:         a.inflow.InexactFloat64(),
			CashOutflow:        a.outflow.InexactFloat64(),
			NetCashFlow:        net.InexactFloat64(),
			AccountsReceivable: a.ar.Div(days).InexactFloat64(),
			AccountsPayable:    a.ap.Div(days).InexactFloat64(),
			Inventory:          a.inv.Div(days).InexactFloat64(),
		})
	}
	return model.NewTimeSeries(obs)
}

// QuarterPeriod identifies a calendar quarter.
type QuarterPeriod struct {
	Year    int `json:"year"`
	Quarter int `json:"quarter"` // 1..4
}

// QuarterlyObservation mirrors MonthlyObservation at quarterly granularity.
// It feeds reporting only; the engine operates on monthly series.
type QuarterlyObservation struct {
	Period             QuarterPeriod `json:"period"`
	CashInflow         float64       `json:"cash_inflow"`
	CashOutflow        float64       `json:"cash_outflow"`
	NetCashFlow        float64       `json:"net_cash_flow"`
	AccountsReceivable float64       `json:"accounts_receivable"`
	AccountsPayable    float64       `json:"accounts_payable"`
	Inventory          float64       `json:"inventory"`
}

// AggregateQuarterly rolls daily records up to calendar quarters with the
// same sum/average split as AggregateMonthly.
func AggregateQuarterly(records []model.DailyRecord) ([]QuarterlyObservation, error) {
	if len(records) == 0 {
		return nil, &model.InputError{Msg: "no daily records to aggregate"}
	}

	acc := map[QuarterPeriod]*monthlyAccumulator{}
	for _, rec := range records {
		p := QuarterPeriod{Year: rec.Date.Year(), Quarter: (int(rec.Date.Month())-1)/3 + 1}
		a := acc[p]
		if a == nil {
			a = &monthlyAccumulator{}
			acc[p] = a
		}
		a.inflow = a.inflow.Add(decimal.NewFromFloat(rec.CashInflow))
		a.outflow = a.outflow.Add(decimal.NewFromFloat(rec.CashOutflow))
		a.ar = a.ar.Add(decimal.NewFromFloat(rec.AccountsReceivable))
		a.ap = a.ap.Add(decimal.NewFromFloat(rec.AccountsPayable))
		a.inv = a.inv.Add(decimal.NewFromFloat(rec.Inventory))
		a.days++
	}

	out := make([]QuarterlyObservation, 0, len(acc))
	for p, a := range acc {
		days := decimal.NewFromInt(int64(a.days))
		out = append(out, QuarterlyObservation{
			Period:             p,
			CashInflow:         a.inflow.InexactFloat64(),
			CashOutflow:        a.outflow.InexactFloat64(),
			NetCashFlow:        a.inflow.Sub(a.outflow).InexactFloat64(),
			AccountsReceivable: a.ar.Div(days).InexactFloat64(),
			AccountsPayable:    a.ap.Div(days).InexactFloat64(),
			Inventory:          a.inv.Div(days).InexactFloat64(),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Period.Year != out[j].Period.Year {
			return out[i].Period.Year < out[j].Period.Year
		}
		return out[i].Period.Quarter < out[j].Period.Quarter
	})
	return out, nil
}

// ComputeKPIs derives the working-capital KPIs on a copy of the series:
// DSO = AR/inflow*30, DPO = AP/outflow*30, DIO = inventory/outflow*30,
// cash_cycle = DSO + DIO - DPO. Division by zero would produce infinities;
// the invariant is that KPI fields are finite, so those clamp to 0.
func ComputeKPIs(s *model.TimeSeries) *model.TimeSeries {
	obs := make([]model.MonthlyObservation, len(s.Observations))
	copy(obs, s.Observations)
	for i := range obs {
		o := &obs[i]
		o.DSO = finiteOrZero(o.AccountsReceivable / o.CashInflow * 30)
		o.DPO = finiteOrZero(o.AccountsPayable / o.CashOutflow * 30)
		o.DIO = finiteOrZero(o.Inventory / o.CashOutflow * 30)
		o.CashCycle = finiteOrZero(o.DSO + o.DIO - o.DPO)
	}
	return &model.TimeSeries{Observations: obs}
}

func finiteOrZero(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
