package eod

import "github.com/shopspring/decimal"

// quoteLine matches the JSON format written by the quotelog package.
type quoteLine struct {
	Time      string
	Program   string
	Action    string
	Quantity  string
	CPFCount  int
	Price     string
	Liminar   bool
	MessageID string
}

// aggRow holds aggregated quote statistics for one program.
type aggRow struct {
	Program       string
	Quotes        int
	Deals         int
	Counters      int
	TotalQuantity decimal.Decimal
	MinPrice      decimal.Decimal
	MaxPrice      decimal.Decimal
	priceSum      decimal.Decimal
	priced        int
}
