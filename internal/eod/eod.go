package eod

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

type eodSummarizer struct{}

func (s *eodSummarizer) SummarizeDay(t time.Time) (string, error) {
	inPath := quoteFile(t)
	if _, err := os.Stat(inPath); err != nil {
		return "", nil
	}
	f, err := os.Open(inPath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	aggs := map[string]*aggRow{}
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var ql quoteLine
		if err := json.Unmarshal(sc.Bytes(), &ql); err != nil {
			continue
		}
		row := aggs[ql.Program]
		if row == nil {
			row = &aggRow{Program: ql.Program}
			aggs[ql.Program] = row
		}
		switch ql.Action {
		case "PUBLISH_QUOTE":
			row.Quotes++
		case "ACCEPT_DEAL":
			row.Deals++
		case "COUNTER_OFFER":
			row.Counters++
		}
		if qty, err := decimal.NewFromString(ql.Quantity); err == nil {
			row.TotalQuantity = row.TotalQuantity.Add(qty)
		}
		if price, err := decimal.NewFromString(ql.Price); err == nil {
			if row.priced == 0 || price.LessThan(row.MinPrice) {
				row.MinPrice = price
			}
			if row.priced == 0 || price.GreaterThan(row.MaxPrice) {
				row.MaxPrice = price
			}
			row.priceSum = row.priceSum.Add(price)
			row.priced++
		}
	}
	if err := sc.Err(); err != nil {
		return "", err
	}
	if len(aggs) == 0 {
		return "", nil
	}

	keys := make([]string, 0, len(aggs))
	for k := range aggs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	outPath := eodCSVPath(t)
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return "", err
	}
	out, err := os.Create(outPath)
	if err != nil {
		return "", err
	}
	defer out.Close()

	w := csv.NewWriter(out)
	defer w.Flush()
	headers := []string{"program", "quotes", "deals", "counters", "total_qty_k", "min_price", "avg_price", "max_price"}
	if err := w.Write(headers); err != nil {
		return "", err
	}
	totalQty := decimal.Zero
	var totalQuotes, totalDeals, totalCounters int
	for _, k := range keys {
		r := aggs[k]
		minP, avgP, maxP := "", "", ""
		if r.priced > 0 {
			minP = r.MinPrice.StringFixed(2)
			avgP = r.priceSum.Div(decimal.NewFromInt(int64(r.priced))).StringFixed(2)
			maxP = r.MaxPrice.StringFixed(2)
		}
		rec := []string{r.Program, strconv.Itoa(r.Quotes), strconv.Itoa(r.Deals), strconv.Itoa(r.Counters), r.TotalQuantity.String(), minP, avgP, maxP}
		if err := w.Write(rec); err != nil {
			return "", err
		}
		totalQty = totalQty.Add(r.TotalQuantity)
		totalQuotes += r.Quotes
		totalDeals += r.Deals
		totalCounters += r.Counters
	}
	_ = w.Write([]string{"TOTAL", strconv.Itoa(totalQuotes), strconv.Itoa(totalDeals), strconv.Itoa(totalCounters), totalQty.String(), "", "", ""})
	return outPath, nil
}

func (s *eodSummarizer) SummarizeToday() (string, error) {
	return s.SummarizeDay(brtNow())
}

// ShouldRunNow reports whether yesterday's summary is missing while its
// quote log exists.
func (s *eodSummarizer) ShouldRunNow() (bool, string) {
	yesterday := brtNow().AddDate(0, 0, -1)
	outPath := eodCSVPath(yesterday)
	if _, err := os.Stat(quoteFile(yesterday)); err != nil {
		return false, outPath
	}
	if _, err := os.Stat(outPath); errors.Is(err, os.ErrNotExist) {
		return true, outPath
	}
	return false, outPath
}
