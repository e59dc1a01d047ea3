// Package lessons ships the course scripts with the binary
package lessons

import (
	"embed"
	"io/fs"
	"path"
	"sort"
	"strconv"
	"strings"
)

//go:embed scripts/*.primer
var scripts embed.FS

// Lesson is one embedded course script
type Lesson struct {
	Number int    // position in the course, from the file name prefix
	Name   string // file name without number and extension, e.g. "let-vs-const"
	Title  string // text of the leading // comment
	Source string
}

// FileName is the name scripts are reported under
func (l Lesson) FileName() string {
	return l.Name + ".primer"
}

// List returns every lesson in course order
func List() []Lesson {
	entries, err := fs.ReadDir(scripts, "scripts")
	if err != nil {
		// the directory is embedded; it cannot be missing
		panic(err)
	}

	var out []Lesson
	for _, entry := range entries {
		data, err := fs.ReadFile(scripts, path.Join("scripts", entry.Name()))
		if err != nil {
			panic(err)
		}
		out = append(out, parse(entry.Name(), string(data)))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out
}

// Get finds a lesson by name ("primitives") or number ("2" or "02")
func Get(key string) (Lesson, bool) {
	n, numErr := strconv.Atoi(key)
	for _, l := range List() {
		if l.Name == key || (numErr == nil && l.Number == n) {
			return l, true
		}
	}
	return Lesson{}, false
}

// parse splits "01-let-vs-const.primer" into number and name
func parse(file, source string) Lesson {
	base := strings.TrimSuffix(file, ".primer")
	l := Lesson{Name: base, Source: source}
	if prefix, name, ok := strings.Cut(base, "-"); ok {
		if n, err := strconv.Atoi(prefix); err == nil {
			l.Number, l.Name = n, name
		}
	}
	first, _, _ := strings.Cut(source, "\n")
	if title, ok := strings.CutPrefix(first, "// "); ok {
		l.Title = strings.TrimSpace(title)
	}
	return l
}
