package cli

import (
	"fmt"
	"io"
)

// IO is the output side of a command: results go to stdout, warnings and
// errors to stderr.
type IO struct {
	out      io.Writer
	errOut   io.Writer
	warnings []string
	started  bool
}

// NewIO creates a new IO instance.
func NewIO(out, errOut io.Writer) *IO {
	return &IO{out: out, errOut: errOut}
}

// Out returns the stdout writer. Renderers bind to it to detect color support.
func (o *IO) Out() io.Writer {
	return o.out
}

// Warn records a non-fatal problem.
//
// Warnings are printed to stderr before the first stdout write and again by
// [IO.Finish], so they stay visible when output is piped through head or
// tail. They never change the exit code.
func (o *IO) Warn(msg string) {
	o.warnings = append(o.warnings, msg)
}

// Warnings returns the messages recorded so far.
func (o *IO) Warnings() []string {
	return append([]string(nil), o.warnings...)
}

// Println writes to stdout. On first call, any collected warnings
// are printed to stderr first.
func (o *IO) Println(a ...any) {
	o.flushWarningsStart()
	_, _ = fmt.Fprintln(o.out, a...)
}

// Printf writes formatted output to stdout. On first call, any collected
// warnings are printed to stderr first.
func (o *IO) Printf(format string, a ...any) {
	o.flushWarningsStart()
	_, _ = fmt.Fprintf(o.out, format, a...)
}

// ErrPrintln writes to stderr.
func (o *IO) ErrPrintln(a ...any) {
	_, _ = fmt.Fprintln(o.errOut, a...)
}

// Finish prints collected warnings to stderr. Warnings already shown before
// stdout output are repeated so they also appear after it.
func (o *IO) Finish() {
	for _, w := range o.warnings {
		_, _ = fmt.Fprintln(o.errOut, "warning:", w)
	}

	o.warnings = nil
	o.started = false
}

func (o *IO) flushWarningsStart() {
	if o.started {
		return
	}

	o.started = true

	for _, w := range o.warnings {
		_, _ = fmt.Fprintln(o.errOut, "warning:", w)
	}
}
