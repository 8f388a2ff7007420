// Package release runs the release-notes pipeline: load both specs, diff,
// classify, render, write the notes file and roll the baseline forward.
package release

import (
	"context"
	"fmt"
	"io"

	"github.com/ariel-frischer/oasnotes/internal/classify"
	"github.com/ariel-frischer/oasnotes/internal/notes"
	"github.com/ariel-frischer/oasnotes/internal/openapi"
	"github.com/ariel-frischer/oasnotes/internal/output"
	"github.com/ariel-frischer/oasnotes/internal/rollover"
	"github.com/ariel-frischer/oasnotes/internal/specdiff"
)

// Options configures a pipeline run.
type Options struct {
	PreviousPath string
	CurrentPath  string
	OutputPath   string

	// IgnoredFields is passed to the classifier. Nil selects the default list.
	IgnoredFields []string

	// Roll replaces the previous spec with the current one after the notes
	// are written. It has no effect with BaselineRef or DryRun.
	Roll bool

	// BaselineRef loads the previous spec from a git revision in GitDir.
	BaselineRef string
	GitDir      string

	// DryRun renders notes without writing or rolling anything.
	DryRun bool

	// Out receives progress lines. Nil discards them.
	Out   io.Writer
	Debug output.DebugLogger
}

// Result describes a completed (or classification-aborted) run.
type Result struct {
	Previous        *openapi.Document
	Current         *openapi.Document
	Changes         []specdiff.Change
	Classifications []classify.Classification
	Buckets         *classify.Buckets
	Notes           string
	Written         bool
	Rolled          bool
}

// Ignored returns the classifications that were dropped as cosmetic.
func (r *Result) Ignored() []classify.Classification {
	var ignored []classify.Classification
	for _, c := range r.Classifications {
		if c.Outcome == classify.Ignored {
			ignored = append(ignored, c)
		}
	}
	return ignored
}

// WriteError reports a notes file that could not be written.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("writing notes %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// BaselineError reports a previous spec that could not be read from git.
type BaselineError struct {
	Ref string
	Err error
}

func (e *BaselineError) Error() string {
	return fmt.Sprintf("baseline %s: %v", e.Ref, e.Err)
}

func (e *BaselineError) Unwrap() error {
	return e.Err
}

// Run executes the pipeline. Any error aborts the run before the notes file
// is touched, except a roll failure, which happens after a successful write.
// When classification fails the partial Result is returned with the error.
func Run(ctx context.Context, opts Options) (*Result, error) {
	out := opts.Out
	if out == nil {
		out = io.Discard
	}
	logDebug := opts.Debug
	if logDebug == nil {
		logDebug = func(string, ...any) {}
	}

	output.PrintStep(out, fmt.Sprintf("Comparing %s → %s", previousLabel(opts), opts.CurrentPath))

	previous, current, err := loadDocuments(opts)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := &Result{Previous: previous, Current: current}
	result.Changes = specdiff.Diff(previous, current)
	logDebug("diff produced %d changes", len(result.Changes))

	buckets, classifications, err := classify.New(opts.IgnoredFields).ClassifyAll(result.Changes)
	result.Classifications = classifications
	for _, c := range result.Ignored() {
		output.PrintIgnored(out, c.Path(), c.Field)
	}
	if err != nil {
		return result, err
	}
	result.Buckets = buckets

	result.Notes, err = notes.RenderString(notes.Input{Buckets: buckets, Current: current, Previous: previous})
	if err != nil {
		return result, fmt.Errorf("rendering notes: %w", err)
	}

	if opts.DryRun {
		output.PrintSuccess(out, fmt.Sprintf("Rendered %s (dry run, nothing written)", entrySummary(buckets)))
		return result, nil
	}
	if err := ctx.Err(); err != nil {
		return result, err
	}

	if err := notes.WriteFile(opts.OutputPath, []byte(result.Notes)); err != nil {
		return result, &WriteError{Path: opts.OutputPath, Err: err}
	}
	result.Written = true
	logDebug("wrote %d bytes to %s", len(result.Notes), opts.OutputPath)

	if opts.Roll && opts.BaselineRef == "" {
		if err := rollover.Roll(opts.PreviousPath, opts.CurrentPath); err != nil {
			return result, err
		}
		result.Rolled = true
	}

	output.PrintSuccess(out, fmt.Sprintf("Wrote %s (%s%s)", opts.OutputPath, entrySummary(buckets), rollSummary(opts, result.Rolled)))
	return result, nil
}

func loadDocuments(opts Options) (*openapi.Document, *openapi.Document, error) {
	var (
		previous *openapi.Document
		err      error
	)
	if opts.BaselineRef != "" {
		previous, err = openapi.LoadFromGit(opts.GitDir, opts.BaselineRef, opts.PreviousPath)
		if err != nil {
			return nil, nil, &BaselineError{Ref: opts.BaselineRef, Err: err}
		}
	} else {
		previous, err = openapi.Load(opts.PreviousPath)
		if err != nil {
			return nil, nil, err
		}
	}

	current, err := openapi.Load(opts.CurrentPath)
	if err != nil {
		return nil, nil, err
	}
	return previous, current, nil
}

func previousLabel(opts Options) string {
	if opts.BaselineRef != "" {
		return opts.BaselineRef + ":" + opts.PreviousPath
	}
	return opts.PreviousPath
}

func entrySummary(b *classify.Buckets) string {
	n := b.Count()
	if n == 1 {
		return "1 entry"
	}
	return fmt.Sprintf("%d entries", n)
}

func rollSummary(opts Options, rolled bool) string {
	if rolled {
		return fmt.Sprintf(", %s rolled into %s", opts.CurrentPath, opts.PreviousPath)
	}
	return ", specs left in place"
}
