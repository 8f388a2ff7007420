package errors

import "fmt"

// Common error messages for the oasnotes CLI.

// LoadFailed creates an error for a spec document that could not be loaded.
func LoadFailed(source string, err error) *CLIError {
	return &CLIError{
		Category: Load,
		Message:  fmt.Sprintf("could not load spec %s: %v", source, err),
		Remediation: []string{
			"Check that the file exists and is a YAML mapping",
			"Override the location with --previous / --current or previous_spec / current_spec in .oasnotes.yml",
		},
		Err: err,
	}
}

// GitBaselineFailed creates an error for a baseline that could not be read from git.
func GitBaselineFailed(ref string, err error) *CLIError {
	return &CLIError{
		Category: Load,
		Message:  fmt.Sprintf("could not read baseline at %s: %v", ref, err),
		Remediation: []string{
			"Verify the revision exists: git rev-parse " + ref,
			"Check that previous_spec is committed at that revision",
			"Set git_dir if the repository is not the working directory",
		},
		Err: err,
	}
}

// UnhandledChange creates an error for a diff entry the classifier cannot place.
func UnhandledChange(path string, err error) *CLIError {
	return &CLIError{
		Category: Classification,
		Message:  fmt.Sprintf("unhandled change at %s", path),
		Remediation: []string{
			"Only changes under components.schemas and paths are supported",
			"No notes were written and the spec files were left in place",
			"Run 'oasnotes diff --list' to inspect every classified change",
		},
		Err: err,
	}
}

// ConfigInvalid creates an error for configuration that failed validation.
func ConfigInvalid(err error) *CLIError {
	return WrapWithMessage(err, Configuration,
		"invalid configuration",
		"Run 'oasnotes config show' to see the effective configuration",
		"Check .oasnotes.yml and OASNOTES_* environment variables",
	)
}

// WriteFailed creates an error for a notes file that could not be written.
func WriteFailed(path string, err error) *CLIError {
	return WrapWithMessage(err, Runtime,
		fmt.Sprintf("could not write %s", path),
		"Check that the output directory is writable",
	)
}

// RollFailed creates an error for a failed state roll.
func RollFailed(err error) *CLIError {
	return WrapWithMessage(err, Runtime,
		"notes were written but the spec roll failed",
		"Move the current spec onto the previous spec path manually",
		"Or re-run with --no-roll and roll in a later step",
	)
}

