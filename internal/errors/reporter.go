package errors

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Reporter renders a KernelError as the single diagnostic line the host
// prints to stderr (spec §6/§7): `ParseError at L:C: message` for lex/
// parse failures, `RuntimeError: message` for everything that happens
// during evaluation. Grounded on the teacher's cmd/kanso-cli use of
// color.Red/color.Green banners, simplified from the multi-line
// CompilerError frame kept by internal/errors/reporter.go in the
// teacher tree.
type Reporter struct {
	out     io.Writer
	colored bool
}

// NewReporter builds a Reporter writing to out, colorized per colored.
func NewReporter(out io.Writer, colored bool) *Reporter {
	return &Reporter{out: out, colored: colored}
}

// Report writes one diagnostic line for err and a trailing newline.
func (r *Reporter) Report(err *KernelError) {
	line := r.format(err)
	fmt.Fprintln(r.out, line)
}

func (r *Reporter) format(err *KernelError) string {
	var line string
	switch err.Kind {
	case LexError, ParseError:
		if err.HasPos {
			line = fmt.Sprintf("ParseError at %s: %s", err.Pos, err.Message)
		} else {
			line = fmt.Sprintf("ParseError: %s", err.Message)
		}
	default:
		line = fmt.Sprintf("RuntimeError: %s", err.Message)
	}
	if !r.colored {
		return line
	}
	return color.RedString("%s", line)
}

// Success prints a green confirmation line, mirroring the teacher CLI's
// color.Green success banner.
func Success(out io.Writer, colored bool, message string) {
	if colored {
		fmt.Fprintln(out, color.GreenString("%s", message))
		return
	}
	fmt.Fprintln(out, message)
}
