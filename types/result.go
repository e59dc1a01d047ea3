package types

// ControlFlow represents the control flow state of evaluation
type ControlFlow int

const (
	FlowNormal    ControlFlow = iota // Normal execution
	FlowReturn                       // Return statement
	FlowException                    // Runtime error being raised
)

// Result represents the outcome of evaluating an expression or statement.
// This unifies normal values, returns, and errors.
type Result struct {
	Val   Value       // The value (if Flow == FlowNormal or FlowReturn)
	Flow  ControlFlow // Control flow state
	Error ErrorCode   // Only set when Flow == FlowException
	Exc   *Exception  // Details, only set when Flow == FlowException
}

// Ok creates a Result for normal execution with a value
func Ok(v Value) Result {
	return Result{Val: v, Flow: FlowNormal}
}

// Return creates a Result for a return statement
func Return(v Value) Result {
	return Result{Val: v, Flow: FlowReturn}
}

// Err creates a Result for an error with the code's default message
func Err(e ErrorCode) Result {
	return Throw(&Exception{Code: e})
}

// Throw creates a Result carrying a detailed exception
func Throw(exc *Exception) Result {
	return Result{Flow: FlowException, Error: exc.Code, Exc: exc}
}

// IsNormal returns true if this is normal execution
func (r Result) IsNormal() bool {
	return r.Flow == FlowNormal
}

// IsReturn returns true if this is a return
func (r Result) IsReturn() bool {
	return r.Flow == FlowReturn
}

// IsError returns true if this is an error
func (r Result) IsError() bool {
	return r.Flow == FlowException
}
