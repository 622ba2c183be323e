package main

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	jpformatter "github.com/baditaflorin/go_jp_formatter"
)

// previewWidth is the display width of the text preview in verbose mode.
const previewWidth = 40

var (
	changedColor   = color.New(color.FgYellow, color.Bold)
	unchangedColor = color.New(color.FgGreen)
	detailColor    = color.New(color.FgHiBlack)
)

type reporter struct {
	mu      sync.Mutex
	out     io.Writer
	enabled bool
}

func newReporter(out io.Writer, enabled bool) *reporter {
	return &reporter{out: out, enabled: enabled}
}

// summary prints one line per input. Safe for concurrent use.
func (r *reporter) summary(name string, res jpformatter.Result) {
	if !r.enabled {
		return
	}

	status := unchangedColor.Sprint("unchanged")
	if res.Changed {
		status = changedColor.Sprint("changed")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintf(r.out, "%s: %s %d→%d runes, %d rules, %s\n",
		name, status, res.InputLength, res.OutputLength, len(res.Applied), res.Elapsed)
	if res.Changed {
		fmt.Fprintf(r.out, "  %s\n", detailColor.Sprint(preview(res.Text, previewWidth)))
	}
}

// preview returns the first line of text cut to width display cells.
func preview(text string, width int) string {
	if i := strings.IndexAny(text, "\r\n"); i >= 0 {
		text = text[:i]
	}
	if runewidth.StringWidth(text) <= width {
		return text
	}
	return runewidth.Truncate(text, width, "…")
}
