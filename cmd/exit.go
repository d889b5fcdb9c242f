package cmd

import "errors"

// exitCodeError carries a process exit code through the cobra error path,
// so deferred cleanup (closing the device handle) runs before the process
// terminates instead of being skipped by a mid-function os.Exit.
type exitCodeError struct {
	code int
	err  error
}

func (e *exitCodeError) Error() string {
	return e.err.Error()
}

func (e *exitCodeError) Unwrap() error {
	return e.err
}

// exitCode maps a command error to the process exit code: the embedded
// code when one was attached, 1 otherwise.
func exitCode(err error) int {
	var ec *exitCodeError
	if errors.As(err, &ec) {
		return ec.code
	}
	return 1
}
