package types

import "testing"

func TestInspect(t *testing.T) {
	profile := NewRecord()
	profile.Set("name", NewStr("Alex"))
	user := NewRecord()
	user.Set("profile", profile)
	user.Set("age", NewNum(28))
	user.Set("email", Null)

	tests := []struct {
		name string
		val  Value
		want string
	}{
		{"raw string", NewStr("Guest"), "Guest"},
		{"number", NewNum(15), "15"},
		{"undefined", Undefined, "undefined"},
		{"null", Null, "null"},
		{"empty record", NewRecord(), "{}"},
		{"nested record", user, "{ profile: { name: 'Alex' }, age: 28, email: null }"},
		{"builtin", NewBuiltin("log", nil), "[Function: log]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Inspect(tt.val); got != tt.want {
				t.Errorf("Inspect() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestInspectSelfReference(t *testing.T) {
	r := NewRecord()
	r.Set("self", r)
	want := "{ self: { self: { self: { self: [Object] } } } }"
	if got := Inspect(r); got != want {
		t.Errorf("Inspect() = %q, want %q", got, want)
	}
}

func TestRecordFieldOrder(t *testing.T) {
	r := NewRecord()
	r.Set("id", NewNum(1))
	r.Set("name", NewStr("Omkar"))
	r.Set("name", NewStr("Admin"))
	r.Set("address", NewStr("India"))

	keys := r.Keys()
	want := []string{"id", "name", "address"}
	if len(keys) != len(want) {
		t.Fatalf("expected %d keys, got %v", len(want), keys)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("key %d: expected %q, got %q", i, want[i], keys[i])
		}
	}
	if v, _ := r.Get("name"); !v.Equal(NewStr("Admin")) {
		t.Errorf("overwrite lost: got %v", v)
	}
}

func TestRepr(t *testing.T) {
	r := NewRecord()
	r.Set("name", NewStr("Alex"))
	tests := []struct {
		val  Value
		want string
	}{
		{NewStr("9"), "'9'"},
		{NewNum(9), "9"},
		{r, "{ name: 'Alex' }"},
		{Undefined, "undefined"},
	}
	for _, tt := range tests {
		if got := Repr(tt.val); got != tt.want {
			t.Errorf("Repr(%v) = %q, want %q", tt.val, got, tt.want)
		}
	}
}
