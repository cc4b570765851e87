package sentiment

// Word weights for market-flavoured short text. Keys are lowercase tokens
// exactly as the tokenizer emits them.

func loadPositiveWeights() map[string]float64 {
	return map[string]float64{
		"beat":       1.4,
		"bull":       1.2,
		"bullish":    1.35,
		"buy":        1.0,
		"breakout":   1.25,
		"gain":       1.15,
		"growth":     1.1,
		"green":      0.8,
		"momentum":   0.95,
		"optimistic": 1.2,
		"outperform": 1.4,
		"profit":     1.3,
		"rally":      1.4,
		"record":     1.0,
		"rebound":    1.1,
		"recover":    1.0,
		"surge":      1.5,
		"upgrade":    1.25,
		"upside":     1.2,
		"win":        1.0,
	}
}

func loadNegativeWeights() map[string]float64 {
	return map[string]float64{
		"bankrupt":  1.7,
		"bear":      1.2,
		"bearish":   1.35,
		"crash":     1.65,
		"cut":       0.8,
		"decline":   1.15,
		"downgrade": 1.35,
		"drop":      1.1,
		"fear":      1.0,
		"loss":      1.25,
		"miss":      1.2,
		"missed":    1.2,
		"plunge":    1.65,
		"risk":      0.9,
		"sell":      1.15,
		"slump":     1.35,
		"volatile":  0.9,
		"warning":   0.95,
		"weak":      0.95,
	}
}

func loadIntensifiers() map[string]bool {
	words := []string{"very", "extremely", "strong", "massive", "huge", "major", "sharp"}
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[w] = true
	}
	return m
}
