package redisdata

import (
	"encoding/json"
	"sort"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/isaacbatst/felip-ai-sub001/internal/types"
)

type programRecord struct {
	Name        string `json:"name"`
	LiminarOfID *int64 `json:"liminar_of_id,omitempty"`
}

// parsePrograms decodes a catalog hash (field = program id, value = JSON
// record). Malformed entries are dropped. Results come back in id order
// so specificity ties in the resolver stay deterministic.
func parsePrograms(raw map[string]string) []types.Program {
	programs := make([]types.Program, 0, len(raw))
	for field, value := range raw {
		id, err := strconv.ParseInt(field, 10, 64)
		if err != nil {
			continue
		}
		var rec programRecord
		if err := json.Unmarshal([]byte(value), &rec); err != nil || rec.Name == "" {
			continue
		}
		programs = append(programs, types.Program{ID: id, Name: rec.Name, LiminarOfID: rec.LiminarOfID})
	}

	sort.Slice(programs, func(i, j int) bool { return programs[i].ID < programs[j].ID })
	return programs
}

// parsePriceTable decodes a price hash (field = quantity in thousands,
// value = unit price). Non-numeric quantities and unparseable prices are
// dropped.
func parsePriceTable(raw map[string]string) types.PriceTable {
	table := make(types.PriceTable, len(raw))
	for field, value := range raw {
		qty, err := strconv.Atoi(field)
		if err != nil || qty <= 0 {
			continue
		}
		price, err := decimal.NewFromString(value)
		if err != nil || price.Sign() <= 0 {
			continue
		}
		table[qty] = price
	}
	return table
}
