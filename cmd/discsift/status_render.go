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
	statusError
)

const (
	ansiReset = "\x1b[0m"
	ansiRed   = "\x1b[31m"
	ansiGreen = "\x1b[32m"
	ansiBlue  = "\x1b[34m"
)

const statusLabelWidth = 20

var statusStyles = map[statusKind]struct {
	label string
	color string
}{
	statusInfo:  {"INFO", ansiBlue},
	statusOK:    {"OK", ansiGreen},
	statusError: {"ERROR", ansiRed},
}

// statusWriter prints aligned "label: [KIND] message" lines and section
// headers, coloured when the destination is a terminal.
type statusWriter struct {
	out      io.Writer
	colorize bool
}

func newStatusWriter(out io.Writer) *statusWriter {
	return &statusWriter{out: out, colorize: shouldColorize(out)}
}

func (w *statusWriter) section(title string) {
	line := fmt.Sprintf("== %s ==", strings.TrimSpace(title))
	rule := strings.Repeat("-", len(line))
	fmt.Fprintln(w.out, w.paint(ansiBlue, line))
	fmt.Fprintln(w.out, w.paint(ansiBlue, rule))
}

func (w *statusWriter) line(label string, kind statusKind, message string) {
	style := statusStyles[kind]
	text := fmt.Sprintf("  %-*s [%s]", statusLabelWidth, label+":", style.label)
	if message != "" {
		text += " " + message
	}
	fmt.Fprintln(w.out, w.paint(style.color, text))
}

func (w *statusWriter) blank() {
	fmt.Fprintln(w.out)
}

func (w *statusWriter) paint(color, text string) string {
	if !w.colorize || color == "" {
		return text
	}
	return color + text + ansiReset
}

func isTerminal(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func shouldColorize(writer io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isTerminal(writer)
}
