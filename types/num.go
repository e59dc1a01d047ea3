package types

import (
	"math"
	"strconv"
	"strings"
)

// NumValue represents a number (IEEE 754 double)
type NumValue struct {
	Val float64
}

// NewNum creates a new NumValue
func NewNum(val float64) NumValue {
	return NumValue{Val: val}
}

// Type returns the type code for numbers
func (n NumValue) Type() TypeCode {
	return TYPE_NUMBER
}

// String renders the number the way console output does:
// integral values have no fraction, very large or small magnitudes use
// exponent notation with an explicit sign.
func (n NumValue) String() string {
	v := n.Val
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	case v == 0:
		return "0" // also -0
	}

	abs := math.Abs(v)
	if abs >= 1e21 || abs < 1e-6 {
		s := strconv.FormatFloat(v, 'e', -1, 64)
		mant, exp, _ := strings.Cut(s, "e")
		sign := exp[0]
		exp = strings.TrimLeft(exp[1:], "0")
		if exp == "" {
			exp = "0"
		}
		return mant + "e" + string(sign) + exp
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Equal checks strict equality; NaN is never equal to anything
func (n NumValue) Equal(other Value) bool {
	o, ok := other.(NumValue)
	if !ok {
		return false
	}
	return n.Val == o.Val
}

// Truthy returns false for 0 and NaN
func (n NumValue) Truthy() bool {
	return n.Val != 0 && !math.IsNaN(n.Val)
}

// IsNaN returns true if the number is NaN
func (n NumValue) IsNaN() bool {
	return math.IsNaN(n.Val)
}
