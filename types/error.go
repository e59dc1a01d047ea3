package types

import "fmt"

// Exception carries a runtime error raised during evaluation
type Exception struct {
	Code    ErrorCode
	Message string
	Line    int
	Column  int
}

// NewException creates an exception with a formatted message
func NewException(code ErrorCode, format string, args ...interface{}) *Exception {
	return &Exception{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Error renders the exception as "TypeError: message"
func (e *Exception) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Code.Message()
	}
	return e.Code.String() + ": " + msg
}
