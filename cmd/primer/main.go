package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"primer/check"
	"primer/eval"
	"primer/lessons"
	"primer/script"
	"primer/trace"
	"primer/types"
)

const usage = `usage: primer [flags] <command> [args]

commands:
  run FILE...      run scripts
  lesson [NAME]    run one lesson, or all of them in order
  check FILE...    validate scripts without running them
  eval EXPR        evaluate an expression and print its value
  repl             interactive session
  lessons          list lessons

flags:
`

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// cli carries the parsed global flags into each command
type cli struct {
	opts   script.Options
	color  bool
	stdout io.Writer
	stderr io.Writer
	log    *log.Logger
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("primer", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprint(stderr, usage)
		fs.PrintDefaults()
	}

	strict := fs.Bool("strict", false, "Reject reads of let bindings before definite assignment")
	looseRecords := fs.Bool("loose-records", false, "Allow assigning fields a record was not declared with")
	maxTicks := fs.Int64("max-ticks", types.DefaultMaxTicks, "Evaluation step budget per script")
	colorMode := fs.String("color", "auto", "Colour diagnostics: auto, always or never")

	// Trace flags
	traceEnabled := fs.Bool("trace", false, "Enable execution tracing")
	traceFilter := fs.String("trace-filter", "", "Trace filter pattern (glob, e.g., 'add' or 'get*')")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	logger := log.New(stderr, "primer: ", 0)
	color, err := useColor(*colorMode, stderr)
	if err != nil {
		logger.Print(err)
		return 2
	}

	if *traceEnabled {
		var filters []string
		if *traceFilter != "" {
			filters = strings.Split(*traceFilter, ",")
			for i := range filters {
				filters[i] = strings.TrimSpace(filters[i])
			}
		}
		trace.Init(true, filters, stderr)
	} else {
		trace.Init(false, nil, nil)
	}

	c := &cli{
		opts: script.Options{
			Stdout:            stdout,
			StrictAssignment:  *strict,
			ExtensibleRecords: *looseRecords,
			MaxTicks:          *maxTicks,
		},
		color:  color,
		stdout: stdout,
		stderr: stderr,
		log:    logger,
	}

	rest := fs.Args()
	if len(rest) == 0 {
		fs.Usage()
		return 2
	}
	cmd, cmdArgs := rest[0], rest[1:]

	switch cmd {
	case "run":
		return c.cmdRun(cmdArgs)
	case "lesson":
		return c.cmdLesson(cmdArgs)
	case "check":
		return c.cmdCheck(cmdArgs)
	case "eval":
		return c.cmdEval(cmdArgs)
	case "repl":
		return c.cmdRepl(cmdArgs)
	case "lessons":
		return c.cmdLessons(cmdArgs)
	default:
		logger.Printf("unknown command %q", cmd)
		fs.Usage()
		return 2
	}
}

func (c *cli) cmdRun(args []string) int {
	if len(args) == 0 {
		fmt.Fprintln(c.stderr, "usage: primer run FILE...")
		return 2
	}
	status := 0
	for _, path := range args {
		src, err := os.ReadFile(path)
		if err != nil {
			c.log.Print(err)
			status = 1
			continue
		}
		if err := script.Run(path, string(src), c.opts); err != nil {
			c.report(path, err)
			status = 1
		}
	}
	return status
}

func (c *cli) cmdLesson(args []string) int {
	var todo []lessons.Lesson
	switch len(args) {
	case 0:
		todo = lessons.List()
	case 1:
		l, ok := lessons.Get(args[0])
		if !ok {
			c.log.Printf("no lesson %q (see 'primer lessons')", args[0])
			return 2
		}
		todo = []lessons.Lesson{l}
	default:
		fmt.Fprintln(c.stderr, "usage: primer lesson [NAME]")
		return 2
	}

	for i, l := range todo {
		if len(todo) > 1 {
			if i > 0 {
				fmt.Fprintln(c.stdout)
			}
			fmt.Fprintf(c.stdout, "== %02d %s ==\n", l.Number, l.Title)
		}
		if err := script.Run(l.FileName(), l.Source, c.opts); err != nil {
			c.report(l.FileName(), err)
			return 1
		}
	}
	return 0
}

func (c *cli) cmdCheck(args []string) int {
	if len(args) == 0 {
		fmt.Fprintln(c.stderr, "usage: primer check FILE...")
		return 2
	}
	status := 0
	for _, path := range args {
		src, err := os.ReadFile(path)
		if err != nil {
			c.log.Print(err)
			status = 1
			continue
		}
		if _, err := script.Check(path, string(src), c.opts); err != nil {
			c.report(path, err)
			status = 1
		}
	}
	return status
}

func (c *cli) cmdEval(args []string) int {
	if len(args) != 1 {
		fmt.Fprintln(c.stderr, "usage: primer eval EXPR")
		return 2
	}
	v, err := script.Eval("<eval>", args[0], c.opts)
	if err != nil {
		c.report("<eval>", err)
		return 1
	}
	fmt.Fprintln(c.stdout, types.Inspect(v))
	return 0
}

func (c *cli) cmdLessons(args []string) int {
	if len(args) != 0 {
		fmt.Fprintln(c.stderr, "usage: primer lessons")
		return 2
	}
	for _, l := range lessons.List() {
		fmt.Fprintf(c.stdout, "%02d  %-14s %s\n", l.Number, l.Name, l.Title)
	}
	return 0
}

// report prints err to stderr. Every diagnostic gets its own line
// prefixed with name; runtime errors are followed by their call stack.
func (c *cli) report(name string, err error) {
	var diags check.Diagnostics
	var rt *eval.RuntimeError
	switch {
	case errors.As(err, &diags):
		for _, d := range diags {
			fmt.Fprintf(c.stderr, "%s:%s\n", name, c.red(d.Error()))
		}
	case errors.As(err, &rt):
		tb := rt.Traceback()
		fmt.Fprintf(c.stderr, "%s:%d:%d: %s\n", name, rt.Exc.Line, rt.Exc.Column, c.red(tb[0]))
		for _, line := range tb[1:] {
			fmt.Fprintln(c.stderr, line)
		}
	default:
		// syntax errors already carry the name
		fmt.Fprintln(c.stderr, c.red(err.Error()))
	}
}
