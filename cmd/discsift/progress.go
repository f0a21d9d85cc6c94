package main

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

// progressLine redraws a single status line on an interactive terminal.
// On other writers it stays silent; the log already records each phase.
type progressLine struct {
	mu          sync.Mutex
	out         io.Writer
	interactive bool
	width       int
}

func newProgressLine(out io.Writer, interactive bool) *progressLine {
	return &progressLine{out: out, interactive: interactive}
}

func (p *progressLine) ReportProgress(_ string, percent float64, status string) {
	if p == nil || !p.interactive {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	line := fmt.Sprintf("[%3.0f%%] %s", percent, strings.TrimSpace(status))
	pad := ""
	if p.width > len(line) {
		pad = strings.Repeat(" ", p.width-len(line))
	}
	fmt.Fprintf(p.out, "\r%s%s", line, pad)
	p.width = len(line)
}

// finish terminates the status line so later output starts on a fresh line.
func (p *progressLine) finish() {
	if p == nil || !p.interactive {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.width > 0 {
		fmt.Fprintln(p.out)
		p.width = 0
	}
}
