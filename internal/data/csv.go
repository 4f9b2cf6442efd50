package data

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strconv"
	"time"

	"cashflow-forecast/internal/model"
)

// Daily CSV schema. Column order in the file is free; the header names are
// required.
var dailyColumns = []string{
	"date",
	"cash_inflow",
	"cash_outflow",
	"net_cash_flow",
	"accounts_receivable",
	"accounts_payable",
	"inventory",
}

const dateLayout = "2006-01-02"

// LoadDailyCSV reads a daily cash-flow CSV and returns its records sorted by
// date. Rows with unparsable values are rejected with an error naming the
// line.
func LoadDailyCSV(path string) ([]model.DailyRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(rows) < 2 {
		return nil, &model.InputError{Msg: fmt.Sprintf("%s: no data rows", path)}
	}

	idx := map[string]int{}
	for i, name := range rows[0] {
		idx[name] = i
	}
	for _, name := range dailyColumns {
		if _, ok := idx[name]; !ok {
			return nil, &model.InputError{Msg: fmt.Sprintf("%s: missing column %q", path, name)}
		}
	}

	records := make([]model.DailyRecord, 0, len(rows)-1)
	for line, row := range rows[1:] {
		rec, err := parseDailyRow(row, idx)
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", path, line+2, err)
		}
		records = append(records, rec)
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].Date.Before(records[j].Date)
	})
	return records, nil
}

func parseDailyRow(row []string, idx map[string]int) (model.DailyRecord, error) {
	var rec model.DailyRecord
	date, err := time.Parse(dateLayout, row[idx["date"]])
	if err != nil {
		return rec, fmt.Errorf("invalid date %q", row[idx["date"]])
	}
	rec.Date = date

	fields := []struct {
		name string
		dst  *float64
	}{
		{"cash_inflow", &rec.CashInflow},
		{"cash_outflow", &rec.CashOutflow},
		{"net_cash_flow", &rec.NetCashFlow},
		{"accounts_receivable", &rec.AccountsReceivable},
		{"accounts_payable", &rec.AccountsPayable},
		{"inventory", &rec.Inventory},
	}
	for _, f := range fields {
		v, err := strconv.ParseFloat(row[idx[f.name]], 64)
		if err != nil {
			return rec, fmt.Errorf("invalid %s %q", f.name, row[idx[f.name]])
		}
		*f.dst = v
	}
	return rec, nil
}
