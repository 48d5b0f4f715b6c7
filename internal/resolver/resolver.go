// Package resolver maps free chat text to a program id from the owner's
// catalog.
package resolver

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/isaacbatst/felip-ai-sub001/internal/fuzzy"
	"github.com/isaacbatst/felip-ai-sub001/internal/textnorm"
	"github.com/isaacbatst/felip-ai-sub001/internal/types"
)

const (
	liminarToken = "liminar"

	// keywords this short ("AA", "GOL") only ever match as exact
	// substrings; fuzzy confirmation would be pure noise for them
	maxExactOnlyKeywordLen = 3

	minFuzzyTokenLen      = 3
	keywordFuzzyThreshold = 0.8
)

// IsLiminar reports whether the program is a liminar variant, i.e. its
// normalized name carries the trigger token.
func IsLiminar(p types.Program) bool {
	return strings.Contains(textnorm.Normalize(p.Name), liminarToken)
}

// Keywords splits a catalog name on "/" and normalizes each piece.
// "AMERICAN AIRLINES / AA / AADVANTAGE" yields three keywords.
func Keywords(name string) []string {
	parts := strings.Split(name, "/")
	kws := make([]string, 0, len(parts))
	for _, part := range parts {
		if kw := textnorm.Normalize(part); kw != "" {
			kws = append(kws, kw)
		}
	}
	return kws
}

type candidate struct {
	program  types.Program
	keywords []string
	longest  int
	liminar  bool
}

// Resolve returns the id of the program the text refers to, or nil when no
// catalog entry matches. Matching runs in two passes: exact substring
// first over all candidates, then fuzzy confirmation. Liminar variants
// and normal programs never compete: the "liminar" token in the text
// decides which side is eligible.
func Resolve(text string, programs []types.Program) *int64 {
	if len(programs) == 0 {
		return nil
	}

	normalized := textnorm.Normalize(text)
	hasLiminarToken := strings.Contains(normalized, liminarToken)

	candidates := make([]candidate, 0, len(programs))
	for _, p := range programs {
		kws := Keywords(p.Name)
		longest := 0
		for _, kw := range kws {
			if n := utf8.RuneCountInString(kw); n > longest {
				longest = n
			}
		}
		candidates = append(candidates, candidate{
			program:  p,
			keywords: kws,
			longest:  longest,
			liminar:  IsLiminar(p),
		})
	}

	// Specificity ordering: "AZUL INTERLINE" must out-rank plain "AZUL"
	// when both appear in the text. Stable, so catalog order breaks ties.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].longest > candidates[j].longest
	})

	for _, c := range candidates {
		if c.liminar != hasLiminarToken {
			continue
		}
		for _, kw := range c.keywords {
			if strings.Contains(normalized, kw) {
				id := c.program.ID
				return &id
			}
		}
	}

	// Fuzzy confirmation only after exact matching failed for every
	// candidate.
	tokens := fuzzyTokens(normalized)
	if len(tokens) == 0 {
		return nil
	}

	for _, c := range candidates {
		if c.liminar != hasLiminarToken {
			continue
		}
		for _, kw := range c.keywords {
			if utf8.RuneCountInString(kw) <= maxExactOnlyKeywordLen {
				continue
			}
			if _, _, ok := fuzzy.FindBestMatch(kw, tokens, keywordFuzzyThreshold); ok {
				id := c.program.ID
				return &id
			}
		}
	}

	return nil
}

func fuzzyTokens(normalized string) []string {
	fields := strings.Fields(normalized)
	tokens := fields[:0]
	for _, f := range fields {
		if utf8.RuneCountInString(f) >= minFuzzyTokenLen {
			tokens = append(tokens, f)
		}
	}
	return tokens
}
