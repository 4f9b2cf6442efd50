package model

import "time"

// DailyRecord is one row of the daily cash-flow CSV consumed by the
// aggregation pipeline. Balance-sheet fields are point-in-time levels;
// flow fields are per-day amounts.
type DailyRecord struct {
	Date time.Time `json:"date"`

	CashInflow         float64 `json:"cash_inflow"`
	CashOutflow        float64 `json:"cash_outflow"`
	NetCashFlow        float64 `json:"net_cash_flow"`
	AccountsReceivable float64 `json:"accounts_receivable"`
	AccountsPayable    float64 `json:"accounts_payable"`
	Inventory          float64 `json:"inventory"`
}
