// Package openai extracts purchase proposals from chat text through the
// OpenAI chat-completions API.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/isaacbatst/felip-ai-sub001/internal/store"
	"github.com/isaacbatst/felip-ai-sub001/internal/trace"
	"github.com/isaacbatst/felip-ai-sub001/internal/types"
)

const defaultSystem = "Você analisa mensagens de grupos de compra e venda de milhas aéreas. " +
	"Extraia da mensagem a quantidade total ofertada (em milhares), o número de CPFs " +
	"e os preços que o vendedor já afirmou aceitar. Responda SOMENTE com JSON compacto."

const schema = `{"is_purchase":true,"quantity":"50","cpf_count":2,"accepted_prices":["18.5"]}`

type Parser struct {
	cfg *store.Config
}

func NewParser(cfg *store.Config) *Parser {
	return &Parser{cfg: cfg}
}

func (p *Parser) Parse(ctx context.Context, text string, programs []types.Program) (*types.PurchaseProposal, error) {
	ctx, span := trace.StartSpan(ctx, "openai-api-call")
	defer span.End()

	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, errors.New("OPENAI_API_KEY missing")
	}

	system := p.cfg.LLM.System
	if system == "" {
		system = defaultSystem
	}

	names := make([]string, 0, len(programs))
	for _, prog := range programs {
		names = append(names, prog.Name)
	}
	prompt := fmt.Sprintf("Programas conhecidos: %s\nSchema:%s\nMensagem:%s",
		strings.Join(names, ", "), schema, text)

	body := map[string]any{
		"model":       p.cfg.LLM.Model,
		"messages":    []map[string]string{{"role": "system", "content": system}, {"role": "user", "content": prompt}},
		"temperature": p.cfg.LLM.Temperature,
		"max_tokens":  p.cfg.LLM.MaxTokens,
	}
	bb, _ := json.Marshal(body)

	req, _ := http.NewRequestWithContext(ctx, "POST", "https://api.openai.com/v1/chat/completions", bytes.NewReader(bb))
	req.Header.Set("Authorization", "Bearer "+apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("openai http %d", resp.StatusCode)
	}

	var r struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		return nil, err
	}

	if len(r.Choices) == 0 {
		return nil, errors.New("no choices")
	}

	out := strings.TrimSpace(r.Choices[0].Message.Content)

	var extracted struct {
		IsPurchase     bool              `json:"is_purchase"`
		Quantity       decimal.Decimal   `json:"quantity"`
		CPFCount       int               `json:"cpf_count"`
		AcceptedPrices []decimal.Decimal `json:"accepted_prices"`
	}
	if err := json.Unmarshal([]byte(out), &extracted); err != nil {
		// an unparseable reply is treated as "no proposal", not a failure
		return nil, nil
	}

	if !extracted.IsPurchase || extracted.Quantity.Sign() <= 0 {
		return nil, nil
	}
	if extracted.CPFCount <= 0 {
		extracted.CPFCount = 1
	}

	return &types.PurchaseProposal{
		Quantity:       extracted.Quantity,
		CPFCount:       extracted.CPFCount,
		AcceptedPrices: extracted.AcceptedPrices,
	}, nil
}
