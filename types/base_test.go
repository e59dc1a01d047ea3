package types

import "testing"

func TestErrorCodes(t *testing.T) {
	tests := []struct {
		code  ErrorCode
		value int
		name  string
	}{
		{E_NONE, 0, "E_NONE"},
		{E_TYPE, 1, "TypeError"},
		{E_REFERENCE, 2, "ReferenceError"},
		{E_RANGE, 3, "RangeError"},
		{E_TICKS, 4, "TimeoutError"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if int(tt.code) != tt.value {
				t.Errorf("%s: expected value %d, got %d", tt.name, tt.value, int(tt.code))
			}
			if tt.code.String() != tt.name {
				t.Errorf("%s: String() returned %q, expected %q", tt.name, tt.code.String(), tt.name)
			}
			if tt.code != E_NONE {
				back, ok := ErrorFromString(tt.name)
				if !ok || back != tt.code {
					t.Errorf("ErrorFromString(%q) = %v, %v", tt.name, back, ok)
				}
			}
		})
	}
}

func TestStrictEquality(t *testing.T) {
	tests := []struct {
		name  string
		left  Value
		right Value
		want  bool
	}{
		{"same numbers", NewNum(10), NewNum(10), true},
		{"number vs numeric string", NewNum(10), NewStr("10"), false},
		{"different numbers", NewNum(10), NewNum(5), false},
		{"NaN", NewNum(nan()), NewNum(nan()), false},
		{"strings are case sensitive", NewStr("Admin"), NewStr("admin"), false},
		{"null vs undefined", Null, Undefined, false},
		{"undefined vs undefined", Undefined, Undefined, true},
		{"null vs null", Null, Null, true},
		{"bool vs number", NewBool(true), NewNum(1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.left.Equal(tt.right); got != tt.want {
				t.Errorf("%v === %v: got %v, want %v", tt.left, tt.right, got, tt.want)
			}
		})
	}
}

func TestRecordIdentity(t *testing.T) {
	a := NewRecord()
	b := NewRecord()
	if a.Equal(b) {
		t.Error("distinct records must not be strictly equal")
	}
	if !a.Equal(a) {
		t.Error("a record must be strictly equal to itself")
	}
}

func TestTruthy(t *testing.T) {
	falsy := []Value{NewNum(0), NewNum(nan()), NewStr(""), NewBool(false), Null, Undefined}
	for _, v := range falsy {
		if v.Truthy() {
			t.Errorf("%v should be falsy", v)
		}
	}
	truthy := []Value{NewNum(-1), NewStr("0"), NewBool(true), NewRecord()}
	for _, v := range truthy {
		if !v.Truthy() {
			t.Errorf("%v should be truthy", v)
		}
	}
}

func TestIsNullish(t *testing.T) {
	if !IsNullish(Null) || !IsNullish(Undefined) || !IsNullish(nil) {
		t.Error("null, undefined and nil are nullish")
	}
	if IsNullish(NewNum(0)) || IsNullish(NewStr("")) {
		t.Error("falsy scalars are not nullish")
	}
}
