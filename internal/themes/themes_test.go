package themes

import (
	"reflect"
	"testing"
)

func TestClassifyMultipleThemesInTableOrder(t *testing.T) {
	got := Classify("Tesla cuts jobs as the Fed weighs interest rates; layoff fears grow")
	want := []string{Rates, EV, Labor}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestClassifySubstringMatch(t *testing.T) {
	// "interest" inside "disinterested", "ev" inside "revenue"
	got := Classify("Disinterested buyers ignore revenue")
	want := []string{Earnings, Rates, EV}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestClassifyNoTheme(t *testing.T) {
	if got := Classify("Shares were flat on Monday"); len(got) != 0 {
		t.Errorf("Expected no themes, got %v", got)
	}
	if got := Classify(""); len(got) != 0 {
		t.Errorf("Expected no themes for empty text, got %v", got)
	}
}

func TestClassifyCaseInsensitive(t *testing.T) {
	got := Classify("BITCOIN MERGER")
	want := []string{MergersA, Crypto}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestAllOrder(t *testing.T) {
	want := []string{"AI", "Earnings", "Rates", "M&A", "Crypto", "EV", "Labor"}
	if got := All(); !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}
