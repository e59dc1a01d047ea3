package types

// Default evaluation limits
const (
	DefaultMaxTicks int64 = 100000
	DefaultMaxDepth       = 512
)

// TaskContext holds the execution state of one script run:
// - Tick budget (runaway recursion protection)
// - Current call depth
type TaskContext struct {
	TicksRemaining int64
	Depth          int
	MaxDepth       int
}

// NewTaskContext creates a task context with default limits
func NewTaskContext() *TaskContext {
	return &TaskContext{
		TicksRemaining: DefaultMaxTicks,
		MaxDepth:       DefaultMaxDepth,
	}
}

// ConsumeTick decrements the tick count and returns true if ticks remain
func (ctx *TaskContext) ConsumeTick() bool {
	ctx.TicksRemaining--
	return ctx.TicksRemaining > 0
}

// Enter records a function call; it returns false when the depth limit is hit
func (ctx *TaskContext) Enter() bool {
	if ctx.Depth >= ctx.MaxDepth {
		return false
	}
	ctx.Depth++
	return true
}

// Leave records a function return
func (ctx *TaskContext) Leave() {
	if ctx.Depth > 0 {
		ctx.Depth--
	}
}
