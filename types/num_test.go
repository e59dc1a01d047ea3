package types

import (
	"math"
	"testing"
)

func nan() float64 { return math.NaN() }

func TestNumString(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{69, "69"},
		{-3, "-3"},
		{0.5, "0.5"},
		{10.0 / 3.0, "3.3333333333333335"},
		{math.Copysign(0, -1), "0"},
		{1e21, "1e+21"},
		{1.5e-7, "1.5e-7"},
		{0.000001, "0.000001"},
		{123456789012, "123456789012"},
		{math.Inf(1), "Infinity"},
		{math.Inf(-1), "-Infinity"},
		{nan(), "NaN"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := NewNum(tt.in).String(); got != tt.want {
				t.Errorf("NewNum(%v).String() = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestStrLen(t *testing.T) {
	if n := NewStr("Omkar").Len(); n != 5 {
		t.Errorf("expected 5, got %d", n)
	}
	if n := NewStr("😀").Len(); n != 2 {
		t.Errorf("astral characters count twice, got %d", n)
	}
}
