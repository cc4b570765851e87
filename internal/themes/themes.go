// Package themes tags text with market themes by keyword membership.
package themes

import "strings"

// Theme names
const (
	AI       = "AI"
	Earnings = "Earnings"
	Rates    = "Rates"
	MergersA = "M&A"
	Crypto   = "Crypto"
	EV       = "EV"
	Labor    = "Labor"

	// Macro is the bucket narratives use for items that match no theme.
	Macro = "Macro"
)

// table is iterated in order; Classify's output follows it.
var table = []struct {
	name     string
	keywords []string
}{
	{AI, []string{"ai", "artificial intelligence", "chip", "semiconductor", "model", "gpu"}},
	{Earnings, []string{"earnings", "eps", "revenue", "guidance", "quarter", "forecast"}},
	{Rates, []string{"fed", "rates", "interest", "inflation", "cpi", "bond"}},
	{MergersA, []string{"acquire", "acquisition", "merger", "deal", "buyout"}},
	{Crypto, []string{"bitcoin", "ethereum", "crypto", "token", "blockchain"}},
	{EV, []string{"electric vehicle", "ev", "battery", "charging", "tesla"}},
	{Labor, []string{"strike", "layoff", "hiring", "workforce", "union"}},
}

// All returns every theme name in canonical order.
func All() []string {
	names := make([]string, len(table))
	for i, t := range table {
		names[i] = t.name
	}
	return names
}

// Classify returns the themes whose keywords occur anywhere in text. Matching
// is plain substring containment, so "ev" also fires inside "revenue".
func Classify(text string) []string {
	lowered := strings.ToLower(text)
	var out []string
	for _, t := range table {
		for _, kw := range t.keywords {
			if strings.Contains(lowered, kw) {
				out = append(out, t.name)
				break
			}
		}
	}
	return out
}
