package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

type statusKind int

const (
	statusInfo statusKind = iota
	statusOK
	statusWarn
	statusError
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiCyan   = "\x1b[36m"
)

const (
	statusLabelWidth = 18
	statusIndent     = "  "
)

var statusKinds = map[statusKind]struct {
	label string
	color string
}{
	statusInfo:  {"INFO", ""},
	statusOK:    {"OK", ansiGreen},
	statusWarn:  {"WARN", ansiYellow},
	statusError: {"ERROR", ansiRed},
}

// statusBlock is a titled list of "label: [KIND] message" lines, as printed
// after a render and by doctor.
type statusBlock struct {
	colorize bool
	lines    []string
}

func newStatusBlock(title string, colorize bool) *statusBlock {
	heading := fmt.Sprintf("== %s ==", strings.TrimSpace(title))
	rule := strings.Repeat("-", len(heading))
	if colorize {
		heading, rule = ansiCyan+heading+ansiReset, ansiCyan+rule+ansiReset
	}
	return &statusBlock{colorize: colorize, lines: []string{heading, rule}}
}

func (b *statusBlock) add(label string, kind statusKind, message string) *statusBlock {
	b.lines = append(b.lines, renderStatusLine(label, kind, message, b.colorize))
	return b
}

func (b *statusBlock) write(w io.Writer) {
	for _, line := range b.lines {
		fmt.Fprintln(w, line)
	}
}

func renderStatusLine(label string, kind statusKind, message string, colorize bool) string {
	k, ok := statusKinds[kind]
	if !ok {
		k = statusKinds[statusInfo]
	}
	status := "[" + k.label + "]"
	if message != "" {
		status += " " + message
	}
	line := fmt.Sprintf("%s%-*s %s", statusIndent, statusLabelWidth, label+":", status)
	if colorize && k.color != "" {
		return k.color + line + ansiReset
	}
	return line
}

func shouldColorize(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
