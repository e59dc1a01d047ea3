package types

import "strings"

// Inspect renders a value the way console.log prints a single argument:
// top-level strings are raw, strings nested in records are quoted.
func Inspect(v Value) string {
	if s, ok := v.(StrValue); ok {
		return s.Value()
	}
	var b strings.Builder
	inspect(&b, v, 0)
	return b.String()
}

// Repr renders a value with strings quoted at every level, so a string
// argument stays distinguishable from a number.
func Repr(v Value) string {
	var b strings.Builder
	inspect(&b, v, 0)
	return b.String()
}

// maxInspectDepth bounds nesting so self-referencing records terminate
const maxInspectDepth = 4

func inspect(b *strings.Builder, v Value, depth int) {
	switch val := v.(type) {
	case nil:
		b.WriteString("undefined")
	case StrValue:
		b.WriteString(val.Quoted())
	case *RecordValue:
		if val.Len() == 0 {
			b.WriteString("{}")
			return
		}
		if depth >= maxInspectDepth {
			b.WriteString("[Object]")
			return
		}
		b.WriteString("{ ")
		for i, k := range val.keys {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(k)
			b.WriteString(": ")
			inspect(b, val.fields[k], depth+1)
		}
		b.WriteString(" }")
	default:
		b.WriteString(v.String())
	}
}
