package types

import (
	"strconv"
	"strings"
)

// Round rounds v to the given number of decimal places using the exact
// binary value of v and ties-to-even, the same result Python's round()
// gives. math.Round(v*100)/100 disagrees on values like 0.285.
func Round(v float64, places int) float64 {
	f, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', places, 64), 64)
	if err != nil {
		return v
	}
	return f
}

// Number is a float that always encodes with a fractional part ("12.0",
// not "12") so the dashboard JSON stays byte-compatible with existing
// consumers.
type Number float64

// Num rounds v to 2dp and wraps it.
func Num(v float64) Number {
	return Number(Round(v, 2))
}

func (n Number) MarshalJSON() ([]byte, error) {
	s := strconv.FormatFloat(float64(n), 'f', -1, 64)
	if !strings.ContainsAny(s, ".eEN") {
		s += ".0"
	}
	return []byte(s), nil
}

func (n Number) Float() float64 {
	return float64(n)
}
