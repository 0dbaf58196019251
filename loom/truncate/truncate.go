// Package truncate shortens content to a platform's length budget
// without splitting tokens. Links count as a fixed placeholder length,
// the way link-shortening platforms bill them.
package truncate

import (
	"strings"
	"unicode"

	"github.com/kmorelli/activityloom/loom/textutil"
)

const ellipsis = "…"

// Config carries a platform's length budget. Budgets and offsets are in
// codepoints, never bytes.
type Config struct {
	// MaxLength is the total budget for the result.
	MaxLength int
	// PlaceholderLength is what any URL token costs, regardless of its
	// actual length.
	PlaceholderLength int
}

type token struct {
	sep  string // whitespace preceding the token, preserved on output
	text string
	url  bool
}

// Truncate fits content into cfg.MaxLength, counting each URL token as
// cfg.PlaceholderLength and every other token as its codepoint length
// plus one separating space. Tokens are kept whole or dropped; a
// truncated result ends in a single ellipsis that the budget accounts
// for. When includeLink is set and the result does not already contain
// permalink, " (permalink)" is appended and budgeted as the placeholder
// plus the literal parenthesis and space characters.
func Truncate(content, permalink string, cfg Config, includeLink bool) string {
	tokens := tokenize(content)

	// within budget untouched?
	if fits(tokens, cfg) {
		if !includeLink || permalink == "" || strings.Contains(content, permalink) {
			return content
		}
	}

	budget := cfg.MaxLength
	suffix := ""
	if includeLink && permalink != "" && !strings.Contains(content, permalink) {
		// space + parens around the placeholder-costed link
		budget -= cfg.PlaceholderLength + 3
		suffix = " (" + permalink + ")"
	}

	kept, truncated := fill(tokens, cfg, budget)

	// the first token's sep is the content's leading whitespace
	var b strings.Builder
	for _, t := range kept {
		b.WriteString(t.sep)
		b.WriteString(t.text)
	}
	if truncated {
		b.WriteString(ellipsis)
	}
	b.WriteString(suffix)
	return b.String()
}

// fill accumulates whole tokens left to right while they fit, reserving
// room for the ellipsis before finalizing a cut.
func fill(tokens []token, cfg Config, budget int) (kept []token, truncated bool) {
	total := 0
	costs := make([]int, 0, len(tokens))
	for i, t := range tokens {
		cost := textutil.Length(t.text)
		if t.url {
			cost = cfg.PlaceholderLength
		}
		if i > 0 {
			cost++ // separating space
		}
		if total+cost > budget {
			truncated = true
			break
		}
		total += cost
		costs = append(costs, cost)
		kept = append(kept, t)
	}
	if !truncated {
		return kept, false
	}
	// reserve one codepoint for the ellipsis
	for len(kept) > 0 && total+1 > budget {
		total -= costs[len(kept)-1]
		kept = kept[:len(kept)-1]
		costs = costs[:len(costs)-1]
	}
	return kept, true
}

func fits(tokens []token, cfg Config) bool {
	total := 0
	for i, t := range tokens {
		cost := textutil.Length(t.text)
		if t.url {
			cost = cfg.PlaceholderLength
		}
		if i > 0 {
			cost++
		}
		total += cost
	}
	return total <= cfg.MaxLength
}

// tokenize splits on whitespace, remembering each token's original
// leading whitespace so an untruncated prefix reassembles verbatim.
func tokenize(content string) []token {
	var tokens []token
	var sep, word strings.Builder
	flush := func() {
		if word.Len() > 0 {
			tokens = append(tokens, token{
				sep:  sep.String(),
				text: word.String(),
				url:  textutil.IsURL(word.String()),
			})
			sep.Reset()
			word.Reset()
		}
	}
	for _, r := range content {
		if unicode.IsSpace(r) {
			flush()
			sep.WriteRune(r)
		} else {
			word.WriteRune(r)
		}
	}
	flush()
	return tokens
}
