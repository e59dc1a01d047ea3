package trace

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"primer/types"
)

// Tracer provides execution tracing for debugging
type Tracer struct {
	enabled bool
	filters []string
	writer  io.Writer
	mu      sync.Mutex
}

// Global tracer instance
var globalTracer *Tracer

// Init initializes the global tracer
func Init(enabled bool, filters []string, writer io.Writer) {
	if writer == nil {
		writer = os.Stderr
	}
	globalTracer = &Tracer{
		enabled: enabled,
		filters: filters,
		writer:  writer,
	}
}

// IsEnabled returns whether tracing is enabled
func IsEnabled() bool {
	if globalTracer == nil {
		return false
	}
	return globalTracer.enabled
}

// matchesFilter checks if a function name matches any of the filter patterns
func (t *Tracer) matchesFilter(fn string) bool {
	if len(t.filters) == 0 {
		return true // No filters = trace everything
	}

	for _, pattern := range t.filters {
		if matched, _ := filepath.Match(pattern, fn); matched {
			return true
		}
	}
	return false
}

func (t *Tracer) printf(fn string, format string, args ...interface{}) {
	if !t.enabled || !t.matchesFilter(fn) {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	fmt.Fprintf(t.writer, "[TRACE] "+format+"\n", args...)
}

// Statement logs a statement about to run inside fn
func (t *Tracer) Statement(fn string, line int, text string) {
	// Only the first line of a multi-line statement
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		text = text[:i]
	}
	if r := []rune(text); len(r) > 60 {
		text = string(r[:57]) + "..."
	}
	t.printf(fn, "STMT %s:%d %s", fn, line, text)
}

// Call logs a function call
func (t *Tracer) Call(fn string, args []types.Value) {
	argStrs := make([]string, len(args))
	for i, arg := range args {
		argStrs[i] = types.Repr(arg)
	}
	t.printf(fn, "CALL %s(%s)", fn, strings.Join(argStrs, ", "))
}

// Return logs a function's return value
func (t *Tracer) Return(fn string, result types.Value) {
	resultStr := "undefined"
	if result != nil {
		resultStr = types.Repr(result)
	}
	t.printf(fn, "RETURN %s => %s", fn, resultStr)
}

// Exception logs an exception leaving fn
func (t *Tracer) Exception(fn string, exc *types.Exception) {
	t.printf(fn, "EXCEPTION %s %s", fn, exc.Error())
}

// Global convenience functions

// Statement logs a statement using the global tracer
func Statement(fn string, line int, text string) {
	if globalTracer != nil {
		globalTracer.Statement(fn, line, text)
	}
}

// Call logs a function call using the global tracer
func Call(fn string, args []types.Value) {
	if globalTracer != nil {
		globalTracer.Call(fn, args)
	}
}

// Return logs a function return using the global tracer
func Return(fn string, result types.Value) {
	if globalTracer != nil {
		globalTracer.Return(fn, result)
	}
}

// Exception logs an exception using the global tracer
func Exception(fn string, exc *types.Exception) {
	if globalTracer != nil {
		globalTracer.Exception(fn, exc)
	}
}
