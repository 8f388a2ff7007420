// Package rollover advances the baseline spec after a successful run: the
// previous spec is deleted and the current spec takes its place, so the next
// run diffs against this run's snapshot.
package rollover

import (
	"errors"
	"fmt"
	"os"
)

// RollError reports which step of the roll failed.
type RollError struct {
	// Step is "delete" or "rename".
	Step string
	Path string
	Err  error
}

func (e *RollError) Error() string {
	return fmt.Sprintf("rolling spec (%s %s): %v", e.Step, e.Path, e.Err)
}

func (e *RollError) Unwrap() error {
	return e.Err
}

// Roll deletes previousPath and renames currentPath to previousPath.
// A missing previous file is tolerated. The two steps are not atomic
// together; a failure between them leaves only the current spec on disk.
func Roll(previousPath, currentPath string) error {
	if _, err := os.Stat(currentPath); err != nil {
		return &RollError{Step: "rename", Path: currentPath, Err: err}
	}

	if err := os.Remove(previousPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return &RollError{Step: "delete", Path: previousPath, Err: err}
	}

	if err := os.Rename(currentPath, previousPath); err != nil {
		return &RollError{Step: "rename", Path: currentPath, Err: err}
	}

	return nil
}
