package types

import (
	"math"
	"testing"
)

func TestToNumber(t *testing.T) {
	tests := []struct {
		in   Value
		want float64
	}{
		{NewNum(42), 42},
		{NewBool(true), 1},
		{NewBool(false), 0},
		{Null, 0},
		{NewStr(""), 0},
		{NewStr("  12.5 "), 12.5},
		{NewStr("-Infinity"), math.Inf(-1)},
		{NewStr("1e3"), 1000},
	}
	for _, tt := range tests {
		if got := ToNumber(tt.in); got != tt.want {
			t.Errorf("ToNumber(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}

	for _, in := range []Value{Undefined, NewStr("abc"), NewStr("inf"), NewStr("1_0"), NewStr("NaN"), NewRecord()} {
		if got := ToNumber(in); !math.IsNaN(got) {
			t.Errorf("ToNumber(%v) = %v, want NaN", in, got)
		}
	}
}

func TestToString(t *testing.T) {
	tests := []struct {
		in   Value
		want string
	}{
		{nil, "undefined"},
		{Undefined, "undefined"},
		{Null, "null"},
		{NewNum(0.5), "0.5"},
		{NewStr("hi"), "hi"},
		{NewBool(true), "true"},
		{NewRecord(), "[object Object]"},
	}
	for _, tt := range tests {
		if got := ToString(tt.in); got != tt.want {
			t.Errorf("ToString(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
