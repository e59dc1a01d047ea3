package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

// useColor resolves the -color flag. auto colours only when w is a
// terminal.
func useColor(mode string, w io.Writer) (bool, error) {
	switch mode {
	case "always":
		return true, nil
	case "never":
		return false, nil
	case "auto":
		f, ok := w.(*os.File)
		if !ok {
			return false, nil
		}
		return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()), nil
	default:
		return false, fmt.Errorf("invalid -color %q: want auto, always or never", mode)
	}
}

func (c *cli) red(s string) string {
	if !c.color {
		return s
	}
	return "\x1b[31m" + s + "\x1b[0m"
}

func (c *cli) dim(s string) string {
	if !c.color {
		return s
	}
	return "\x1b[90m" + s + "\x1b[0m"
}
