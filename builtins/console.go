package builtins

import (
	"fmt"
	"strings"

	"primer/types"
)

// consoleLog prints its arguments on one line separated by spaces.
// Strings print raw; everything else prints as Inspect renders it.
// console.log(...args) -> undefined
func (r *Registry) consoleLog(ctx *types.TaskContext, args []types.Value) types.Result {
	parts := make([]string, len(args))
	for i, arg := range args {
		parts[i] = types.Inspect(arg)
	}
	if _, err := fmt.Fprintln(r.out, strings.Join(parts, " ")); err != nil {
		return types.Throw(types.NewException(types.E_TYPE, "console.log: %v", err))
	}
	return types.Ok(types.Undefined)
}
