package builtins

import (
	"math"
	"math/rand"

	"primer/types"
)

// newMath builds the Math record. Arguments are coerced with
// types.ToNumber and a missing argument is NaN, so these never throw.
func newMath() *types.RecordValue {
	m := types.NewRecord()
	m.Set("PI", types.NewNum(math.Pi))
	m.Set("abs", unary("abs", math.Abs))
	m.Set("ceil", unary("ceil", math.Ceil))
	m.Set("floor", unary("floor", math.Floor))
	m.Set("trunc", unary("trunc", math.Trunc))
	m.Set("sqrt", unary("sqrt", math.Sqrt))
	m.Set("round", unary("round", round))
	m.Set("pow", types.NewBuiltin("pow", builtinPow))
	m.Set("min", types.NewBuiltin("min", builtinMin))
	m.Set("max", types.NewBuiltin("max", builtinMax))
	m.Set("random", types.NewBuiltin("random", builtinRandom))
	return m
}

// unary wraps a one-argument float function
func unary(name string, fn func(float64) float64) *types.BuiltinValue {
	return types.NewBuiltin(name, func(ctx *types.TaskContext, args []types.Value) types.Result {
		return types.Ok(types.NewNum(fn(numArg(args, 0))))
	})
}

// round rounds half-way cases towards +Infinity
func round(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return f
	}
	return math.Floor(f + 0.5)
}

// builtinPow raises base to exponent
// Math.pow(base, exponent) -> number
func builtinPow(ctx *types.TaskContext, args []types.Value) types.Result {
	return types.Ok(types.NewNum(math.Pow(numArg(args, 0), numArg(args, 1))))
}

// builtinMin returns the smallest argument, Infinity when there are none
// Math.min(...values) -> number
func builtinMin(ctx *types.TaskContext, args []types.Value) types.Result {
	minFloat := math.Inf(1)
	for i := range args {
		f := numArg(args, i)
		if math.IsNaN(f) {
			return types.Ok(types.NewNum(math.NaN()))
		}
		if f < minFloat {
			minFloat = f
		}
	}
	return types.Ok(types.NewNum(minFloat))
}

// builtinMax returns the largest argument, -Infinity when there are none
// Math.max(...values) -> number
func builtinMax(ctx *types.TaskContext, args []types.Value) types.Result {
	maxFloat := math.Inf(-1)
	for i := range args {
		f := numArg(args, i)
		if math.IsNaN(f) {
			return types.Ok(types.NewNum(math.NaN()))
		}
		if f > maxFloat {
			maxFloat = f
		}
	}
	return types.Ok(types.NewNum(maxFloat))
}

// builtinRandom returns a number in [0, 1)
// Math.random() -> number
func builtinRandom(ctx *types.TaskContext, args []types.Value) types.Result {
	return types.Ok(types.NewNum(rand.Float64()))
}

// numArg returns argument i as a number, NaN when it is missing
func numArg(args []types.Value, i int) float64 {
	if i >= len(args) {
		return math.NaN()
	}
	return types.ToNumber(args[i])
}
