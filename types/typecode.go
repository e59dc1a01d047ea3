package types

// TypeCode classifies runtime values
type TypeCode int

const (
	TYPE_UNDEFINED TypeCode = 0
	TYPE_NULL      TypeCode = 1
	TYPE_BOOL      TypeCode = 2
	TYPE_NUMBER    TypeCode = 3
	TYPE_STR       TypeCode = 4
	TYPE_RECORD    TypeCode = 5
	TYPE_FUNC      TypeCode = 6
)

// String returns the name of the type code
func (t TypeCode) String() string {
	switch t {
	case TYPE_UNDEFINED:
		return "undefined"
	case TYPE_NULL:
		return "null"
	case TYPE_BOOL:
		return "boolean"
	case TYPE_NUMBER:
		return "number"
	case TYPE_STR:
		return "string"
	case TYPE_RECORD:
		return "object"
	case TYPE_FUNC:
		return "function"
	default:
		return "unknown"
	}
}

// TypeOf returns what the typeof operator yields for a value of this type.
// null reports "object", as it always has.
func (t TypeCode) TypeOf() string {
	if t == TYPE_NULL {
		return "object"
	}
	return t.String()
}

// TypeCodeFromString parses a type code name
func TypeCodeFromString(s string) (TypeCode, bool) {
	switch s {
	case "undefined":
		return TYPE_UNDEFINED, true
	case "null":
		return TYPE_NULL, true
	case "boolean":
		return TYPE_BOOL, true
	case "number":
		return TYPE_NUMBER, true
	case "string":
		return TYPE_STR, true
	case "object":
		return TYPE_RECORD, true
	case "function":
		return TYPE_FUNC, true
	default:
		return TYPE_UNDEFINED, false
	}
}
