// Package tickers pulls stock symbols out of free text.
package tickers

import (
	"regexp"
	"sort"
	"strings"
)

// MaxPerItem caps how many symbols a single item can carry.
const MaxPerItem = 10

// candidatePattern matches "$TSLA" or "TSLA" as a whole word.
var candidatePattern = regexp.MustCompile(`\$?\b[A-Z]{1,5}\b`)

var nonLetters = regexp.MustCompile(`[^A-Za-z]`)

// noise holds uppercase words that look like symbols but are jargon or
// ordinary English.
var noise = map[string]bool{
	"A": true, "AI": true, "AM": true, "AN": true, "ARE": true, "AS": true, "AT": true,
	"CEO": true, "CFO": true, "CPI": true, "DO": true, "EV": true, "FED": true, "FOR": true,
	"GDP": true, "HAS": true, "HOW": true, "IPO": true, "IS": true, "IT": true, "LOW": true,
	"NEW": true, "NO": true, "NOW": true, "ON": true, "OR": true, "OUT": true, "PM": true,
	"RSI": true, "SO": true, "THE": true, "TO": true, "TOP": true, "USA": true, "USD": true,
	"WSB": true, "YOLO": true,
}

// singleLetter lists the one-letter symbols that are real listings.
var singleLetter = map[string]bool{"C": true, "F": true, "T": true}

// companies maps lowercase company names to their symbol
var companies = []struct {
	name   string
	symbol string
}{
	{"apple", "AAPL"},
	{"amazon", "AMZN"},
	{"alphabet", "GOOGL"},
	{"google", "GOOGL"},
	{"microsoft", "MSFT"},
	{"meta", "META"},
	{"nvidia", "NVDA"},
	{"tesla", "TSLA"},
	{"netflix", "NFLX"},
	{"palantir", "PLTR"},
	{"coinbase", "COIN"},
	{"amd", "AMD"},
	{"intel", "INTC"},
}

// IsNoise reports whether symbol is in the noise set, ignoring case.
func IsNoise(symbol string) bool {
	return noise[strings.ToUpper(symbol)]
}

// Extract returns the sorted, deduplicated symbols mentioned in text, at most
// MaxPerItem of them.
func Extract(text string) []string {
	found := make(map[string]struct{})

	for _, match := range candidatePattern.FindAllString(text, -1) {
		token := strings.ToUpper(strings.TrimSpace(strings.TrimLeft(match, "$")))
		if token == "" || noise[token] {
			continue
		}
		if len(token) == 1 && !singleLetter[token] {
			continue
		}
		found[token] = struct{}{}
	}

	lowered := strings.ToLower(text)
	for _, c := range companies {
		if strings.Contains(lowered, c.name) {
			found[c.symbol] = struct{}{}
		}
	}

	out := make([]string, 0, len(found))
	for symbol := range found {
		out = append(out, symbol)
	}
	sort.Strings(out)
	if len(out) > MaxPerItem {
		out = out[:MaxPerItem]
	}
	return out
}

// Sanitize normalizes a user-supplied symbol. It returns "" when the value
// can't be a symbol: empty after stripping non-letters, longer than five
// letters, or a noise word.
func Sanitize(value string) string {
	token := strings.ToUpper(nonLetters.ReplaceAllString(value, ""))
	if token == "" || noise[token] || len(token) > 5 {
		return ""
	}
	return token
}
