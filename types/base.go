package types

// ErrorCode identifies the class of a runtime exception
type ErrorCode int

const (
	E_NONE      ErrorCode = 0
	E_TYPE      ErrorCode = 1 // operation on a value of the wrong shape
	E_REFERENCE ErrorCode = 2 // name not bound in any enclosing scope
	E_RANGE     ErrorCode = 3 // call depth exceeded
	E_TICKS     ErrorCode = 4 // evaluation budget exhausted
)

// String returns the exception class name shown to script authors
func (e ErrorCode) String() string {
	switch e {
	case E_NONE:
		return "E_NONE"
	case E_TYPE:
		return "TypeError"
	case E_REFERENCE:
		return "ReferenceError"
	case E_RANGE:
		return "RangeError"
	case E_TICKS:
		return "TimeoutError"
	default:
		return "Error"
	}
}

// Message returns a generic message for an error code
func (e ErrorCode) Message() string {
	switch e {
	case E_NONE:
		return "No error"
	case E_TYPE:
		return "Type mismatch"
	case E_REFERENCE:
		return "Name is not defined"
	case E_RANGE:
		return "Maximum call stack size exceeded"
	case E_TICKS:
		return "Execution budget exhausted"
	default:
		return "Unknown error"
	}
}

// ErrorFromString converts an exception class name like "TypeError" to an ErrorCode
func ErrorFromString(s string) (ErrorCode, bool) {
	switch s {
	case "TypeError":
		return E_TYPE, true
	case "ReferenceError":
		return E_REFERENCE, true
	case "RangeError":
		return E_RANGE, true
	case "TimeoutError":
		return E_TICKS, true
	default:
		return E_NONE, false
	}
}

// Value is the interface all runtime values implement
type Value interface {
	Type() TypeCode
	String() string   // rendering used by template literals
	Equal(Value) bool // strict equality: same type and same value, no coercion
	Truthy() bool
}

// IsNullish reports whether v is undefined or null
func IsNullish(v Value) bool {
	switch v.(type) {
	case nil, UndefinedValue, NullValue:
		return true
	}
	return false
}
