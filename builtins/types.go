package builtins

import (
	"math"

	"primer/types"
)

// builtinString converts a value to its string form
// String(value) -> string
func builtinString(ctx *types.TaskContext, args []types.Value) types.Result {
	if len(args) == 0 {
		return types.Ok(types.NewStr(""))
	}
	return types.Ok(types.NewStr(types.ToString(args[0])))
}

// builtinNumber converts a value to a number; text that is not numeric
// gives NaN
// Number(value) -> number
func builtinNumber(ctx *types.TaskContext, args []types.Value) types.Result {
	if len(args) == 0 {
		return types.Ok(types.NewNum(0))
	}
	return types.Ok(types.NewNum(types.ToNumber(args[0])))
}

// builtinIsNaN reports whether the value coerces to NaN
// isNaN(value) -> boolean
func builtinIsNaN(ctx *types.TaskContext, args []types.Value) types.Result {
	return types.Ok(types.NewBool(math.IsNaN(numArg(args, 0))))
}
