package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// ExitErr carries the exit code of a failed command together with its cause.
type ExitErr struct {
	Code  int
	Cause error
}

func (x ExitErr) Error() string { return x.Cause.Error() }

func (x ExitErr) Unwrap() error { return x.Cause }

// ExitCode returns the process exit code for err: 0 for nil, the code of an
// ExitErr, 1 otherwise.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var e ExitErr
	if errors.As(err, &e) {
		return e.Code
	}
	return 1
}

// PrintErr writes err to w in the form the CLI reports failures.
func PrintErr(w io.Writer, err error) {
	fmt.Fprintln(w, "Error:", err)
}

// ExitOnErr writes error to os.Stderr and calls os.Exit with the code from
// ExitCode. Does nothing if err is nil.
func ExitOnErr(err error) {
	if err != nil {
		PrintErr(os.Stderr, err)
		os.Exit(ExitCode(err))
	}
}
