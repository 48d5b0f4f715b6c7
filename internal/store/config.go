package store

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/isaacbatst/felip-ai-sub001/internal/quote"
)

type Config struct {
	Mode string `yaml:"mode"` // DRY_RUN or LIVE

	Redis struct {
		Addr              string `yaml:"addr"`
		Password          string `yaml:"password"`
		DB                int    `yaml:"db"`
		QueueKey          string `yaml:"queue_key"`
		PopTimeoutSeconds int    `yaml:"pop_timeout_seconds"`
		CacheTTLSeconds   int    `yaml:"cache_ttl_seconds"`
	} `yaml:"redis"`

	LLM struct {
		Provider    string  `yaml:"provider"` // OPENAI or NONE
		Model       string  `yaml:"model"`
		MaxTokens   int     `yaml:"max_tokens"`
		Temperature float32 `yaml:"temperature"`
		System      string  `yaml:"system"`
	} `yaml:"llm"`

	Templates quote.Templates `yaml:"templates"`

	EOD struct {
		// cron expression for the daily quote summary
		Schedule string `yaml:"schedule"`
	} `yaml:"eod"`
}

func (c *Config) Validate() error {
	if c.Mode != "DRY_RUN" && c.Mode != "LIVE" {
		return fmt.Errorf("invalid mode '%s': must be 'DRY_RUN' or 'LIVE'", c.Mode)
	}
	if c.Redis.Addr == "" {
		return fmt.Errorf("redis.addr cannot be empty")
	}
	if c.LLM.Provider != "OPENAI" && c.LLM.Provider != "NONE" {
		return fmt.Errorf("invalid llm.provider '%s': must be 'OPENAI' or 'NONE'", c.LLM.Provider)
	}
	if c.Redis.CacheTTLSeconds < 0 {
		return fmt.Errorf("redis.cache_ttl_seconds must not be negative, got %d", c.Redis.CacheTTLSeconds)
	}
	return nil
}

func LoadConfig(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}

	if c.Mode == "" {
		c.Mode = "DRY_RUN"
	}
	if c.LLM.Provider == "" {
		c.LLM.Provider = "NONE"
	}
	if c.LLM.Model == "" {
		c.LLM.Model = "gpt-4o-mini"
	}
	if c.LLM.MaxTokens == 0 {
		c.LLM.MaxTokens = 300
	}
	if c.Redis.QueueKey == "" {
		c.Redis.QueueKey = "quotes:inbound"
	}
	if c.Redis.PopTimeoutSeconds == 0 {
		c.Redis.PopTimeoutSeconds = 5
	}
	if c.Redis.CacheTTLSeconds == 0 {
		c.Redis.CacheTTLSeconds = 300
	}
	if c.EOD.Schedule == "" {
		c.EOD.Schedule = "10 0 * * *"
	}
	applyTemplateDefaults(&c.Templates)

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &c, nil
}

func applyTemplateDefaults(t *quote.Templates) {
	def := quote.DefaultTemplates()
	if t.Quote == "" {
		t.Quote = def.Quote
	}
	if t.LiminarSuffix == "" {
		t.LiminarSuffix = def.LiminarSuffix
	}
	if t.DealGroup == "" {
		t.DealGroup = def.DealGroup
	}
	if t.CounterOffer == "" {
		t.CounterOffer = def.CounterOffer
	}
	if t.CallToAction == "" {
		t.CallToAction = def.CallToAction
	}
}
