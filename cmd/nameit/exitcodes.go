package main

// Exit codes. Per-file failures never change the exit code; a batch that ran
// reports its outcomes and exits 0. Only setup-time problems are fatal.
const (
	ExitSuccess     = 0 // processing ran, outcomes reported per file
	ExitError       = 1 // unrecoverable setup failure (bad arguments, no network)
	ExitConfigError = 2 // configuration problem (unreadable config file)
)

// exitCodeError carries a specific exit code from run up to main.
type exitCodeError struct {
	code int
	err  error
}

func (e *exitCodeError) Error() string { return e.err.Error() }

func (e *exitCodeError) Unwrap() error { return e.err }
