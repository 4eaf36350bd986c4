// Package cliutil provides small output helpers shared by the CLI
// commands.
package cliutil

import (
	"fmt"
	"io"
	"os"
)

// fallback receives a diagnostic when a write fails. Swapped out in tests.
var fallback io.Writer = os.Stderr

// Writef writes formatted output to w. Usage text and stderr summaries
// have nowhere useful to propagate a write error, so a failed write is
// reported on the fallback writer instead of returned.
func Writef(w io.Writer, format string, args ...any) {
	if _, err := fmt.Fprintf(w, format, args...); err != nil {
		_, _ = fmt.Fprintf(fallback, "cliutil: write failed: %v\n", err)
	}
}
