package tickers

import (
	"reflect"
	"sort"
	"strings"
	"testing"
)

func TestExtractDollarAndBareSymbols(t *testing.T) {
	got := Extract("$TSLA and MSFT rally while CEO comments")
	want := []string{"MSFT", "TSLA"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestExtractCompanyNames(t *testing.T) {
	got := Extract("Nvidia and Apple lead while Intel lags")
	want := []string{"AAPL", "INTC", "NVDA"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestExtractSingleLetterAllowList(t *testing.T) {
	got := Extract("Buying F and T but not X or Y, also C")
	want := []string{"C", "F", "T"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestExtractIgnoresPartialWords(t *testing.T) {
	got := Extract("iPhone maker and ABCDEFG holdings")
	if len(got) != 0 {
		t.Errorf("Expected no symbols, got %v", got)
	}
}

func TestExtractNeverReturnsNoise(t *testing.T) {
	var b strings.Builder
	for word := range noise {
		b.WriteString(word + " $" + word + " " + strings.ToLower(word) + " ")
	}
	got := Extract(b.String())
	for _, symbol := range got {
		if IsNoise(symbol) {
			t.Errorf("Noise symbol %s leaked into output", symbol)
		}
	}
}

func TestExtractIsDeterministicAndCapped(t *testing.T) {
	text := "AAA BBB CCC DDD EEE FFF GGG HHH III JJJ KKK LLL $MMM AAA"
	first := Extract(text)
	second := Extract(text)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Expected identical results, got %v and %v", first, second)
	}
	if len(first) != MaxPerItem {
		t.Errorf("Expected %d symbols, got %d", MaxPerItem, len(first))
	}
	if !sort.StringsAreSorted(first) {
		t.Errorf("Expected sorted output, got %v", first)
	}
	seen := map[string]bool{}
	for _, s := range first {
		if seen[s] {
			t.Errorf("Duplicate symbol %s", s)
		}
		seen[s] = true
	}
	if first[0] != "AAA" || first[9] != "JJJ" {
		t.Errorf("Expected lexicographic top 10, got %v", first)
	}
}

func TestExtractFeedsBackIntoItself(t *testing.T) {
	first := Extract("Rotation into $MSFT and $AMZN, google too")
	again := Extract(strings.Join(first, " "))
	if !reflect.DeepEqual(first, again) {
		t.Errorf("Expected %v, got %v", first, again)
	}
}

func TestSanitize(t *testing.T) {
	cases := map[string]string{
		"aapl":    "AAPL",
		" $tsla ": "TSLA",
		"BRK.B":   "BRKB",
		"ceo":     "",
		"":        "",
		"123":     "",
		"TOOLONG": "",
	}
	for in, want := range cases {
		if got := Sanitize(in); got != want {
			t.Errorf("Sanitize(%q): expected %q, got %q", in, want, got)
		}
	}
}
