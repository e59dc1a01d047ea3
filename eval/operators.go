package eval

import (
	"math"
	"strings"

	"primer/parser"
	"primer/types"
)

// binaryOp applies a non-short-circuit binary operator. It reports false
// for an operator it does not implement.
func binaryOp(op parser.TokenType, left, right types.Value) (types.Value, bool) {
	switch op {
	// Arithmetic
	case parser.TOKEN_PLUS:
		return evalAdd(left, right), true
	case parser.TOKEN_MINUS:
		return types.NewNum(types.ToNumber(left) - types.ToNumber(right)), true
	case parser.TOKEN_STAR:
		return types.NewNum(types.ToNumber(left) * types.ToNumber(right)), true
	case parser.TOKEN_SLASH:
		// IEEE division: x/0 is an infinity, 0/0 is NaN
		return types.NewNum(types.ToNumber(left) / types.ToNumber(right)), true
	case parser.TOKEN_PERCENT:
		// The result takes the sign of the dividend
		return types.NewNum(math.Mod(types.ToNumber(left), types.ToNumber(right))), true

	// Comparison
	case parser.TOKEN_STRICT_EQ:
		return types.NewBool(left.Equal(right)), true
	case parser.TOKEN_STRICT_NE:
		return types.NewBool(!left.Equal(right)), true
	case parser.TOKEN_LT:
		return compare(left, right, func(c int) bool { return c < 0 }), true
	case parser.TOKEN_LE:
		return compare(left, right, func(c int) bool { return c <= 0 }), true
	case parser.TOKEN_GT:
		return compare(left, right, func(c int) bool { return c > 0 }), true
	case parser.TOKEN_GE:
		return compare(left, right, func(c int) bool { return c >= 0 }), true
	}
	return nil, false
}

// evalAdd adds numbers, or concatenates when either side is not a
// numeric primitive
func evalAdd(left, right types.Value) types.Value {
	if numericPrimitive(left) && numericPrimitive(right) {
		return types.NewNum(types.ToNumber(left) + types.ToNumber(right))
	}
	return types.NewStr(left.String() + right.String())
}

// numericPrimitive reports whether + treats v as a number
func numericPrimitive(v types.Value) bool {
	switch v.(type) {
	case types.NumValue, types.BoolValue, types.NullValue, types.UndefinedValue:
		return true
	}
	return false
}

// compare orders two strings lexically and anything else numerically.
// Any comparison involving NaN is false.
func compare(left, right types.Value, holds func(int) bool) types.Value {
	ls, lok := left.(types.StrValue)
	rs, rok := right.(types.StrValue)
	if lok && rok {
		return types.NewBool(holds(strings.Compare(ls.Value(), rs.Value())))
	}

	l, r := types.ToNumber(left), types.ToNumber(right)
	if math.IsNaN(l) || math.IsNaN(r) {
		return types.NewBool(false)
	}
	c := 0
	if l < r {
		c = -1
	} else if l > r {
		c = 1
	}
	return types.NewBool(holds(c))
}
