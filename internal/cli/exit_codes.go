package cli

// Exit codes for the oasnotes CLI
// These codes let CI pipelines tell failure classes apart
const (
	// ExitSuccess indicates successful command execution
	ExitSuccess = 0

	// ExitFailure indicates a general failure (write, roll, interrupt)
	ExitFailure = 1

	// ExitUnhandledChange indicates the diff contained a change of unknown shape
	ExitUnhandledChange = 2

	// ExitInvalidArguments indicates invalid command arguments
	ExitInvalidArguments = 3

	// ExitLoadFailed indicates a spec document could not be loaded
	ExitLoadFailed = 4

	// ExitConfigError indicates invalid configuration
	ExitConfigError = 5
)
