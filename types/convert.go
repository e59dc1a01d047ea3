package types

import (
	"math"
	"strconv"
	"strings"
)

// ToNumber converts a value for arithmetic: booleans are 0 or 1, null is 0,
// strings are parsed, everything else is NaN
func ToNumber(v Value) float64 {
	switch val := v.(type) {
	case NumValue:
		return val.Val
	case BoolValue:
		if val.Val {
			return 1
		}
		return 0
	case NullValue:
		return 0
	case StrValue:
		return ParseNumber(val.Value())
	}
	return math.NaN()
}

// ParseNumber converts numeric text; blank text is 0 and anything
// malformed is NaN
func ParseNumber(s string) float64 {
	s = strings.TrimSpace(s)
	switch s {
	case "":
		return 0
	case "Infinity", "+Infinity":
		return math.Inf(1)
	case "-Infinity":
		return math.Inf(-1)
	}
	// strconv also accepts spellings like "inf", "nan" and "1_0"
	lower := strings.ToLower(s)
	if strings.Contains(lower, "inf") || strings.Contains(lower, "nan") || strings.Contains(s, "_") {
		return math.NaN()
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return f
}

// ToString converts a value the way String(v) and template literals do
func ToString(v Value) string {
	if v == nil {
		return "undefined"
	}
	return v.String()
}
