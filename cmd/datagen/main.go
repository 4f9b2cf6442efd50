package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"cashflow-forecast/internal/model"
)

// Generates a synthetic daily cash-flow dataset with a linear trend, an
// annual sine cycle, weekend dips, year-end boosts, and Gaussian noise.
// Useful for exercising the analysis and forecast pipelines end to end.
func main() {
	out := flag.String("out", "data/sample_data.csv", "Output CSV path")
	start := flag.String("start", "2020-01-01", "First day (YYYY-MM-DD)")
	end := flag.String("end", "2023-12-31", "Last day (YYYY-MM-DD)")
	seed := flag.Int64("seed", 0, "Random seed (0 = time-based)")
	flag.Parse()

	startDate, err := time.Parse("2006-01-02", *start)
	if err != nil {
		panic(err)
	}
	endDate, err := time.Parse("2006-01-02", *end)
	if err != nil {
		panic(err)
	}
	if endDate.Before(startDate) {
		panic(fmt.Errorf("end %s is before start %s", *end, *start))
	}

	s := *seed
	if s == 0 {
		s = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(s))

	records := generate(startDate, endDate, rng)

	if err := os.MkdirAll(filepath.Dir(*out), 0o755); err != nil {
		panic(err)
	}
	if err := writeCSV(*out, records); err != nil {
		panic(err)
	}
	fmt.Printf("Wrote %d days to %s (seed %d)\n", len(records), *out, s)
}

func generate(start, end time.Time, rng *rand.Rand) []model.DailyRecord {
	var records []model.DailyRecord
	i := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		trend := 1000.0 + float64(i)*2
		seasonal := 500 * math.Sin(2*math.Pi*float64(d.YearDay())/365.25+math.Pi/2)
		weekly := 0.0
		if wd := d.Weekday(); wd == time.Saturday || wd == time.Sunday {
			weekly = -200
		}
		boost := 0.0
		switch d.Month() {
		case time.November, time.December:
			boost = 800
		case time.January, time.February:
			boost = -400
		}
		flow := trend + seasonal + weekly + rng.NormFloat64()*300 + boost

		inflow := math.Max(0, flow)
		outflow := math.Max(0, flow*0.8+rng.NormFloat64()*200)

		records = append(records, model.DailyRecord{
			Date:               d,
			CashInflow:         inflow,
			CashOutflow:        outflow,
			NetCashFlow:        inflow - outflow,
			AccountsReceivable: inflow * 1.2,
			AccountsPayable:    outflow * 33,
			Inventory:          outflow * 0.3,
		})
		i++
	}
	return records
}

func writeCSV(path string, records []model.DailyRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{
		"date", "cash_inflow", "cash_outflow", "net_cash_flow",
		"accounts_receivable", "accounts_payable", "inventory",
	}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, r := range records {
		row := []string{
			r.Date.Format("2006-01-02"),
			num(r.CashInflow),
			num(r.CashOutflow),
			num(r.NetCashFlow),
			num(r.AccountsReceivable),
			num(r.AccountsPayable),
			num(r.Inventory),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
