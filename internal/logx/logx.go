// Package logx provides the diagnostic output surface used by the container
// package: opt-in verbosity lines for out-of-bounds drops and memory growth,
// plus the structured fatal-error path used by the cmd/ binaries.
package logx

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

// writer is the destination for opt-in diagnostic lines. Defaults to stderr.
var writer io.Writer = os.Stderr

// SetWriter redirects diagnostic output. Passing nil restores stderr.
func SetWriter(w io.Writer) {
	if w == nil {
		w = os.Stderr
	}
	writer = w
}

// Logf writes a formatted diagnostic line, prefixed the way voro++ prefixes
// its own stderr output.
func Logf(format string, args ...interface{}) {
	fmt.Fprintf(writer, "voro2d: "+format+"\n", args...)
}

// Fatalf logs a structured error via slog and terminates the process with
// the given status code. Used only at the cmd/ boundary; the core container
// package never calls this.
func Fatalf(code int, msg string, args ...any) {
	slog.Error(msg, args...)
	os.Exit(code)
}
