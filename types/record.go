package types

// RecordValue is a mutable mapping from field name to value.
// Records are shared by reference: a const binding pins the reference,
// never the fields. Field order is insertion order.
type RecordValue struct {
	keys   []string
	fields map[string]Value
}

// NewRecord creates an empty record
func NewRecord() *RecordValue {
	return &RecordValue{fields: make(map[string]Value)}
}

// Len returns the number of fields
func (r *RecordValue) Len() int {
	return len(r.keys)
}

// Get returns the value of a field
func (r *RecordValue) Get(name string) (Value, bool) {
	v, ok := r.fields[name]
	return v, ok
}

// Set overwrites an existing field or inserts a new one at the end
func (r *RecordValue) Set(name string, v Value) {
	if _, ok := r.fields[name]; !ok {
		r.keys = append(r.keys, name)
	}
	r.fields[name] = v
}

// Has reports whether the field exists
func (r *RecordValue) Has(name string) bool {
	_, ok := r.fields[name]
	return ok
}

// Keys returns the field names in insertion order
func (r *RecordValue) Keys() []string {
	keys := make([]string, len(r.keys))
	copy(keys, r.keys)
	return keys
}

func (r *RecordValue) Type() TypeCode { return TYPE_RECORD }
func (r *RecordValue) Truthy() bool   { return true }

// String is what a record becomes inside a template literal
func (r *RecordValue) String() string { return "[object Object]" }

// Equal is reference identity
func (r *RecordValue) Equal(other Value) bool {
	o, ok := other.(*RecordValue)
	return ok && o == r
}
