// Package sentiment scores short financial text against a fixed weighted lexicon.
package sentiment

import (
	"math"
	"regexp"
	"strings"

	"stock-sentiment/internal/types"
)

const (
	intensity         = 1.35
	positiveThreshold = 0.18
	negativeThreshold = -0.18
	minNormalizer     = 2.4
	maxConfidence     = 0.99
	emptyConfidence   = 0.2
)

var tokenPattern = regexp.MustCompile(`[a-z][a-z\-']*`)

// Result is the outcome of scoring one text
type Result struct {
	Label      types.Label
	Score      float64 // [-1, 1]
	Confidence float64 // [0, 0.99]
}

// Analyzer holds the lexicon tables. It is read-only after construction and
// safe for concurrent use.
type Analyzer struct {
	positive    map[string]float64
	negative    map[string]float64
	intensifier map[string]bool
}

// NewAnalyzer creates an analyzer over the built-in lexicon
func NewAnalyzer() *Analyzer {
	return &Analyzer{
		positive:    loadPositiveWeights(),
		negative:    loadNegativeWeights(),
		intensifier: loadIntensifiers(),
	}
}

var defaultAnalyzer = NewAnalyzer()

// Analyze scores text with the built-in lexicon.
func Analyze(text string) Result {
	return defaultAnalyzer.Analyze(text)
}

// Analyze tokenizes text and returns its label, normalized score and confidence.
func (a *Analyzer) Analyze(text string) Result {
	tokens := Tokenize(text)
	if len(tokens) == 0 {
		return Result{Label: types.LabelNeutral, Score: 0, Confidence: emptyConfidence}
	}

	total := 0.0
	multiplier := 1.0
	for _, token := range tokens {
		if a.intensifier[token] {
			multiplier = intensity
			continue
		}
		total += a.weight(token) * multiplier
		multiplier = 1.0
	}

	// Short texts are damped by the floor, long ones by sqrt(n) so length alone
	// can't saturate the score.
	base := math.Max(minNormalizer, math.Sqrt(float64(len(tokens))+1.0))
	score := clamp(total/base, -1, 1)

	confidence := math.Min(maxConfidence, math.Abs(score)*1.45+math.Min(0.3, float64(len(tokens))/110.0))

	return Result{
		Label:      labelFor(score),
		Score:      types.Round(score, 4),
		Confidence: types.Round(confidence, 4),
	}
}

// weight returns the signed lexicon weight of token, 0 when unknown.
// Lookup is exact; inflected forms are separate entries or score nothing.
func (a *Analyzer) weight(token string) float64 {
	if w, ok := a.positive[token]; ok {
		return w
	}
	if w, ok := a.negative[token]; ok {
		return -w
	}
	return 0
}

// Tokenize lowercases text and returns its alphabetic words, keeping internal
// hyphens and apostrophes ("mega-cap", "nvidia's").
func Tokenize(text string) []string {
	return tokenPattern.FindAllString(strings.ToLower(text), -1)
}

func labelFor(score float64) types.Label {
	switch {
	case score >= positiveThreshold:
		return types.LabelPositive
	case score <= negativeThreshold:
		return types.LabelNegative
	default:
		return types.LabelNeutral
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
