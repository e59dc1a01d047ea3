package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode"

	"github.com/peterh/liner"

	"primer/parser"
	"primer/script"
	"primer/types"
)

const (
	promptMain  = "> "
	promptCont  = "... "
	historyFile = ".primer_history"
)

var keywords = []string{
	"const", "else", "false", "function", "if", "let",
	"null", "return", "true", "typeof", "undefined",
}

func (c *cli) cmdRepl(args []string) int {
	if len(args) != 0 {
		fmt.Fprintln(c.stderr, "usage: primer repl")
		return 2
	}

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	session := script.NewSession(c.opts)
	ln.SetCompleter(func(line string) []string {
		return complete(line, session.Names())
	})

	fmt.Fprintln(c.stdout, "primer repl. Type :quit to exit.")
	for {
		src, ok := readByParseProbe(ln, promptMain, promptCont)
		if !ok {
			fmt.Fprintln(c.stdout)
			return 0
		}

		trimmed := strings.TrimSpace(src)
		if trimmed == "" {
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(src, "\n", " "))

		if strings.HasPrefix(trimmed, ":") {
			switch trimmed {
			case ":quit", ":q":
				return 0
			case ":names":
				fmt.Fprintln(c.stdout, strings.Join(session.Names(), " "))
			default:
				fmt.Fprintln(c.stdout, "unknown command. Type :quit to exit.")
			}
			continue
		}

		v, err := session.Eval(src)
		if err != nil {
			c.report("<repl>", fmt.Errorf("<repl>:%w", err))
			continue
		}
		fmt.Fprintln(c.stdout, c.dim(types.Inspect(v)))
	}
}

// readByParseProbe reads lines until the accumulated input parses or
// fails for a reason other than running out of input
func readByParseProbe(ln *liner.State, prompt, cont string) (string, bool) {
	var b strings.Builder

	for {
		p := prompt
		if b.Len() > 0 {
			p = cont
		}
		line, err := ln.Prompt(p)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			// ^C drops the pending entry
			b.Reset()
			continue
		}
		if err != nil {
			return "", false
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if strings.HasPrefix(strings.TrimSpace(src), ":") {
			return src, true
		}
		_, perr := parser.NewParser(src).ParseProgram()
		if perr != nil && parser.IsIncomplete(perr) {
			continue
		}
		return src, true
	}
}

// complete offers keywords and bound names for the identifier at the end
// of line
func complete(line string, names []string) []string {
	start := len(line)
	for start > 0 {
		r := rune(line[start-1])
		if r != '_' && r != '$' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			break
		}
		start--
	}
	prefix := line[start:]
	if prefix == "" {
		return nil
	}

	seen := make(map[string]bool)
	var out []string
	for _, group := range [][]string{names, keywords} {
		for _, w := range group {
			if strings.HasPrefix(w, prefix) && !seen[w] {
				seen[w] = true
				out = append(out, line[:start]+w)
			}
		}
	}
	sort.Strings(out)
	return out
}
