// Command quote prices a single proposal from the command line, without
// redis or an LLM. Useful for checking a price table by hand:
//
//	quote -table "15=20,30=18,50=16" -qty 50 -cpf 2 -accepted "17,17.5"
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/isaacbatst/felip-ai-sub001/internal/pricing"
	"github.com/isaacbatst/felip-ai-sub001/internal/quote"
	"github.com/isaacbatst/felip-ai-sub001/internal/types"
)

type output struct {
	Price         string       `json:"price,omitempty"`
	FailureReason string       `json:"failure_reason,omitempty"`
	Action        types.Action `json:"action"`
}

func main() {
	tableFlag := flag.String("table", "", "price table as qty=price pairs, e.g. \"15=20,30=18,50=16\"")
	qtyFlag := flag.String("qty", "", "requested quantity in thousands")
	cpfFlag := flag.Int("cpf", 1, "number of CPFs the quantity is split across")
	maxFlag := flag.String("max", "", "optional custom price ceiling")
	acceptedFlag := flag.String("accepted", "", "comma-separated prices the buyer stated")
	programFlag := flag.String("program", "SMILES", "program name for the rendered message")
	liminarFlag := flag.Bool("liminar", false, "quote as a liminar variant")
	thresholdFlag := flag.String("threshold", "", "counter-offer threshold (enables counter-offers)")
	flag.Parse()

	table, err := parseTable(*tableFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid -table: %v\n", err)
		os.Exit(1)
	}
	qty, err := decimal.NewFromString(*qtyFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid -qty: %v\n", err)
		os.Exit(1)
	}

	var maxPrice *decimal.Decimal
	if *maxFlag != "" {
		m, err := decimal.NewFromString(*maxFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid -max: %v\n", err)
			os.Exit(1)
		}
		maxPrice = &m
	}

	accepted, err := parsePrices(*acceptedFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid -accepted: %v\n", err)
		os.Exit(1)
	}

	result := pricing.Calculate(qty, *cpfFlag, table, maxPrice)
	if !result.OK() {
		printJSON(output{FailureReason: result.FailureReason, Action: types.Action{Kind: types.ActionSilent}})
		return
	}

	var settings *types.CounterOfferSettings
	if *thresholdFlag != "" {
		th, err := decimal.NewFromString(*thresholdFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid -threshold: %v\n", err)
			os.Exit(1)
		}
		settings = &types.CounterOfferSettings{IsEnabled: true, PriceThreshold: th}
	}

	decider := quote.NewDecider(quote.DefaultTemplates())
	action := decider.Decide(quote.Quote{
		ProgramName: *programFlag,
		Quantity:    qty,
		CPFCount:    *cpfFlag,
		Price:       result.Price,
		IsLiminar:   *liminarFlag,
	}, accepted, settings, true)

	printJSON(output{Price: result.Price.String(), Action: action})
}

func printJSON(o output) {
	b, _ := json.MarshalIndent(o, "", "  ")
	fmt.Println(string(b))
}

func parseTable(s string) (types.PriceTable, error) {
	if s == "" {
		return nil, fmt.Errorf("table is required")
	}
	table := types.PriceTable{}
	for _, pair := range strings.Split(s, ",") {
		k, v, ok := strings.Cut(strings.TrimSpace(pair), "=")
		if !ok {
			return nil, fmt.Errorf("expected qty=price, got %q", pair)
		}
		q, err := strconv.Atoi(k)
		if err != nil {
			return nil, err
		}
		p, err := decimal.NewFromString(v)
		if err != nil {
			return nil, err
		}
		table[q] = p
	}
	return table, nil
}

func parsePrices(s string) ([]decimal.Decimal, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	prices := make([]decimal.Decimal, 0, len(parts))
	for _, part := range parts {
		p, err := decimal.NewFromString(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		prices = append(prices, p)
	}
	return prices, nil
}
