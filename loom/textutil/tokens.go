package textutil

import (
	"regexp"
	"sort"
	"strings"
)

// Token is one URL-shaped token found in text. Start and Length locate
// the token in codepoints. URL is the normalized form with an explicit
// scheme; permashortlinks and permashortcitations get "http://".
type Token struct {
	Start     int
	Length    int
	Text      string // the matched text, trailing punctuation trimmed
	URL       string
	Citation  bool // parenthesized permashortcitation
	Bare      bool // schemeless permashortlink, scheme was synthesized
	Truncated bool // token ends in an ellipsis and is probably incomplete
}

const trailingPunct = `.,;:!?'"`

var (
	schemeLinkRe = regexp.MustCompile(`https?://[^\s<>"]+`)
	bareLinkRe   = regexp.MustCompile(`(?:^|[\s(])((?:[a-zA-Z0-9][a-zA-Z0-9-]*\.)+[a-zA-Z]{2,}/[^\s<>")]*)`)
	// Permashortcitations are (DOMAIN PATH) or (DOMAIN/PATH) as the last
	// token, optionally followed by trailing punctuation.
	citationRe = regexp.MustCompile(`\(([^:\s)]+\.[^\s)]{2,})[ /]([^\s)]+)\)[.,;:!?'"]*$`)

	wholeSchemeRe = regexp.MustCompile(`^https?://\S+$`)
	wholeBareRe   = regexp.MustCompile(`^(?:[a-zA-Z0-9][a-zA-Z0-9-]*\.)+[a-zA-Z]{2,}/\S*$`)
)

// IsURL reports whether a whitespace-delimited token is URL-shaped:
// either a scheme-qualified URL or a bare host/path permashortlink.
// Wrapping parentheses and trailing punctuation are ignored.
func IsURL(token string) bool {
	tok := strings.TrimRight(token, trailingPunct)
	tok = strings.TrimPrefix(tok, "(")
	tok = strings.TrimSuffix(tok, ")")
	return wholeSchemeRe.MatchString(tok) || wholeBareRe.MatchString(tok)
}

func endsInEllipsis(s string) bool {
	return strings.HasSuffix(s, "...") || strings.HasSuffix(s, "…")
}

// trimToken strips trailing punctuation, plus an unbalanced closing
// parenthesis, from a matched URL token. A trailing three-dot ellipsis
// is part of the token, not punctuation, so it survives the trim and
// keeps the token flaggable as truncated.
func trimToken(tok string) string {
	tok = strings.TrimRight(tok, `,;:!?'"`)
	if !endsInEllipsis(tok) {
		tok = strings.TrimRight(tok, trailingPunct)
	}
	if strings.HasSuffix(tok, ")") && !strings.Contains(tok, "(") {
		tok = strings.TrimSuffix(tok, ")")
	}
	return tok
}

// FindURLTokens scans text for URL tokens: scheme-qualified URLs, bare
// host/path permashortlinks, and a trailing parenthesized
// permashortcitation. Tokens ending in an ellipsis are flagged truncated
// and citations never match them. The result is ordered by position and
// spans never overlap.
func FindURLTokens(text string) []Token {
	var tokens []Token

	type span struct{ start, end int }
	var taken []span
	overlaps := func(start, end int) bool {
		for _, s := range taken {
			if start < s.end && end > s.start {
				return true
			}
		}
		return false
	}

	// citation first so an embedded bare link doesn't shadow it
	if m := citationRe.FindStringSubmatchIndex(text); m != nil {
		host := text[m[2]:m[3]]
		path := text[m[4]:m[5]]
		if !endsInEllipsis(path) {
			start, end := m[0], m[5]+1 // through the closing paren
			taken = append(taken, span{start, end})
			tokens = append(tokens, Token{
				Start:    byteToRune(text, start),
				Length:   byteToRune(text, end) - byteToRune(text, start),
				Text:     text[start:end],
				URL:      "http://" + host + "/" + path,
				Citation: true,
			})
		}
	}

	for _, m := range schemeLinkRe.FindAllStringIndex(text, -1) {
		tok := trimToken(text[m[0]:m[1]])
		end := m[0] + len(tok)
		if tok == "" || overlaps(m[0], end) {
			continue
		}
		taken = append(taken, span{m[0], end})
		tokens = append(tokens, Token{
			Start:     byteToRune(text, m[0]),
			Length:    Length(tok),
			Text:      tok,
			URL:       tok,
			Truncated: endsInEllipsis(tok),
		})
	}

	for _, m := range bareLinkRe.FindAllStringSubmatchIndex(text, -1) {
		tok := trimToken(text[m[2]:m[3]])
		end := m[2] + len(tok)
		if tok == "" || overlaps(m[2], end) {
			continue
		}
		taken = append(taken, span{m[2], end})
		tokens = append(tokens, Token{
			Start:     byteToRune(text, m[2]),
			Length:    Length(tok),
			Text:      tok,
			URL:       "http://" + tok,
			Bare:      true,
			Truncated: endsInEllipsis(tok),
		})
	}

	sort.Slice(tokens, func(i, j int) bool { return tokens[i].Start < tokens[j].Start })
	return tokens
}
