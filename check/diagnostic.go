package check

import (
	"fmt"
	"sort"
	"strings"

	"primer/parser"
)

// Kind classifies a diagnostic
type Kind string

const (
	// KindType covers values that do not conform to their declared type
	KindType Kind = "type"
	// KindScope covers unknown names, out-of-scope references and
	// rebinding of immutable names
	KindScope Kind = "scope"
)

// Diagnostic is one validation failure
type Diagnostic struct {
	Pos     parser.Position
	Kind    Kind
	Message string
}

func (d Diagnostic) Error() string {
	return fmt.Sprintf("%d:%d: %s error: %s", d.Pos.Line, d.Pos.Column, d.Kind, d.Message)
}

// Diagnostics is the sorted list of failures for one script. A non-empty
// list means nothing may execute.
type Diagnostics []Diagnostic

func (ds Diagnostics) Error() string {
	lines := make([]string, len(ds))
	for i, d := range ds {
		lines[i] = d.Error()
	}
	return strings.Join(lines, "\n")
}

// Err returns ds as an error, or nil when there are no diagnostics
func (ds Diagnostics) Err() error {
	if len(ds) == 0 {
		return nil
	}
	return ds
}

// sortDiagnostics orders by position; function bodies are checked after
// the statements that follow them, so raw order is not source order.
func sortDiagnostics(ds Diagnostics) {
	sort.SliceStable(ds, func(i, j int) bool {
		a, b := ds[i].Pos, ds[j].Pos
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Column < b.Column
	})
}

func typeErr(node parser.Node, format string, args ...interface{}) Diagnostic {
	return Diagnostic{Pos: node.Position(), Kind: KindType, Message: fmt.Sprintf(format, args...)}
}

func scopeErr(node parser.Node, format string, args ...interface{}) Diagnostic {
	return Diagnostic{Pos: node.Position(), Kind: KindScope, Message: fmt.Sprintf(format, args...)}
}
