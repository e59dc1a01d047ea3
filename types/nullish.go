package types

// UndefinedValue is the Absent marker: a binding that was declared but
// never assigned, a missing record field, or the result of a short-circuited
// optional chain.
type UndefinedValue struct{}

// NullValue is the Empty marker: a binding explicitly assigned no value.
type NullValue struct{}

var (
	Undefined = UndefinedValue{}
	Null      = NullValue{}
)

func (v UndefinedValue) Type() TypeCode { return TYPE_UNDEFINED }
func (v UndefinedValue) String() string { return "undefined" }
func (v UndefinedValue) Truthy() bool   { return false }

func (v UndefinedValue) Equal(other Value) bool {
	_, ok := other.(UndefinedValue)
	return ok
}

func (v NullValue) Type() TypeCode { return TYPE_NULL }
func (v NullValue) String() string { return "null" }
func (v NullValue) Truthy() bool   { return false }

func (v NullValue) Equal(other Value) bool {
	_, ok := other.(NullValue)
	return ok
}
