// Package output renders check results as colorized, human-readable text.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/jwalton/go-supportscolor"

	"github.com/vertti/shipcheck/pkg/check"
)

var (
	green  = "\033[32m"
	red    = "\033[31m"
	yellow = "\033[33m"
	cyan   = "\033[36m"
	bold   = "\033[1m"
	dim    = "\033[2m"
	reset  = "\033[0m"
)

func init() {
	if !supportscolor.Stdout().SupportsColor {
		green, red, yellow, cyan, bold, dim, reset = "", "", "", "", "", "", ""
	}
}

// Printer renders check results and the run summary to a writer.
type Printer struct {
	w io.Writer
}

// NewPrinter creates a Printer writing to w.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Section prints a section header.
func (p *Printer) Section(title string) {
	fmt.Fprintf(p.w, "\n%s%s==> %s%s\n", bold, cyan, title, reset)
}

// Skip prints a note for a section skipped because its precondition is
// absent. Skipped checks are not counted in the tally.
func (p *Printer) Skip(reason string) {
	fmt.Fprintf(p.w, "%sskipped: %s%s\n", dim, reason, reset)
}

// Result prints one result line plus indented details.
func (p *Printer) Result(r check.Result) {
	var color string
	switch r.Status {
	case check.StatusPass:
		color = green
	case check.StatusWarn:
		color = yellow
	case check.StatusFail:
		color = red
	}
	fmt.Fprintf(p.w, "%s[%s]%s %s: %s\n", color, r.Status, reset, r.Name, r.Message)

	// align details under the message, past "[XXXX] "
	indent := strings.Repeat(" ", len(r.Status)+3)
	for _, d := range r.Details {
		fmt.Fprintf(p.w, "%s%s%s%s\n", indent, dim, d, reset)
	}
}

// Summary prints the final tally and the readiness banner.
func (p *Printer) Summary(t check.Tally) {
	fmt.Fprintf(p.w, "\n%d passed, %d failed, %d warnings (%d checks)\n",
		t.Passed, t.Failed, t.Warned, t.Total())
	if t.Ready() {
		fmt.Fprintf(p.w, "%s%sready for deployment%s\n", bold, green, reset)
	} else {
		fmt.Fprintf(p.w, "%s%snot ready: fix the failed checks above%s\n", bold, red, reset)
	}
}
