package main

import (
	"io"
	"time"

	"github.com/fatih/color"
)

type colorReporter struct {
	out     io.Writer
	info    *color.Color
	success *color.Color
	failure *color.Color
}

func (r *colorReporter) Executing(command string) {
	r.info.Fprintf(r.out, ">>> Executing: %s\n", command)
}

func (r *colorReporter) Success(output string, elapsed time.Duration) {
	seconds := int(elapsed.Seconds())
	r.success.Fprintf(r.out, "=== %ds elapsed - Successful command, start output =============\n", seconds)
	r.success.Fprintln(r.out, output)
	r.success.Fprintf(r.out, "=== %ds elapsed - Successful command, end output ===============\n", seconds)
}

func (r *colorReporter) Failure(output string, elapsed time.Duration) {
	seconds := int(elapsed.Seconds())
	r.failure.Fprintf(r.out, "=== %ds elapsed - Failed command, start output =============\n", seconds)
	r.failure.Fprintln(r.out, output)
	r.failure.Fprintf(r.out, "=== %ds elapsed - Failed command, end output ===============\n", seconds)
}

func (r *colorReporter) Retrying(elapsed time.Duration) {
	r.failure.Fprintf(r.out, ">>> %ds elapsed - Failed command, retrying...\n", int(elapsed.Seconds()))
	r.failure.Fprintln(r.out, ">>> No more output until result changes")
}

func newColorReporter(out io.Writer) *colorReporter {
	return &colorReporter{
		out:     out,
		info:    color.New(color.FgHiYellow),
		success: color.New(color.FgHiGreen),
		failure: color.New(color.FgHiRed),
	}
}
