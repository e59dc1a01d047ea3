package types

import "testing"

func TestResultConstructors(t *testing.T) {
	t.Run("Ok", func(t *testing.T) {
		r := Ok(NewNum(42))
		if !r.IsNormal() {
			t.Error("Ok() should create normal result")
		}
		if !r.Val.Equal(NewNum(42)) {
			t.Errorf("Expected value 42, got %v", r.Val)
		}
	})

	t.Run("Err", func(t *testing.T) {
		r := Err(E_TYPE)
		if !r.IsError() {
			t.Error("Err() should create error result")
		}
		if r.Error != E_TYPE {
			t.Errorf("Expected E_TYPE, got %v", r.Error)
		}
		if r.Exc.Error() != "TypeError: Type mismatch" {
			t.Errorf("unexpected message %q", r.Exc.Error())
		}
	})

	t.Run("Throw", func(t *testing.T) {
		r := Throw(NewException(E_REFERENCE, "%s is not defined", "x"))
		if r.Error != E_REFERENCE {
			t.Errorf("Expected E_REFERENCE, got %v", r.Error)
		}
		if r.Exc.Error() != "ReferenceError: x is not defined" {
			t.Errorf("unexpected message %q", r.Exc.Error())
		}
	})

	t.Run("Return", func(t *testing.T) {
		r := Return(NewNum(69))
		if !r.IsReturn() {
			t.Error("Return() should create return result")
		}
		if r.IsNormal() || r.IsError() {
			t.Error("return result is neither normal nor error")
		}
	})
}
