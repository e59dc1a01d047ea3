package types

// BuiltinFunc is the Go signature of a host-provided function
type BuiltinFunc func(ctx *TaskContext, args []Value) Result

// BuiltinValue is a function implemented in Go (console.log and friends)
type BuiltinValue struct {
	Name string
	Fn   BuiltinFunc
}

// NewBuiltin wraps a Go function as a callable value
func NewBuiltin(name string, fn BuiltinFunc) *BuiltinValue {
	return &BuiltinValue{Name: name, Fn: fn}
}

func (b *BuiltinValue) Type() TypeCode { return TYPE_FUNC }
func (b *BuiltinValue) String() string { return "[Function: " + b.Name + "]" }
func (b *BuiltinValue) Truthy() bool   { return true }

func (b *BuiltinValue) Equal(other Value) bool {
	o, ok := other.(*BuiltinValue)
	return ok && o == b
}
