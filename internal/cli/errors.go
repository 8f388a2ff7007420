package cli

import (
	"context"
	"errors"

	"github.com/ariel-frischer/oasnotes/internal/classify"
	"github.com/ariel-frischer/oasnotes/internal/config"
	clierrors "github.com/ariel-frischer/oasnotes/internal/errors"
	"github.com/ariel-frischer/oasnotes/internal/openapi"
	"github.com/ariel-frischer/oasnotes/internal/release"
	"github.com/ariel-frischer/oasnotes/internal/rollover"
)

// configError marks an error raised while loading configuration.
type configError struct{ err error }

func (e *configError) Error() string { return e.err.Error() }
func (e *configError) Unwrap() error { return e.err }

// toCLIError maps pipeline and configuration errors to categorized CLI errors.
func toCLIError(err error) *clierrors.CLIError {
	if cliErr := clierrors.AsCLIError(err); cliErr != nil {
		return cliErr
	}

	var (
		cfgErr    *configError
		baseErr   *release.BaselineError
		loadErr   *openapi.LoadError
		unhandled *classify.UnhandledChangeError
		writeErr  *release.WriteError
		rollErr   *rollover.RollError
	)

	switch {
	case errors.As(err, &cfgErr):
		return clierrors.ConfigInvalid(cfgErr.err)
	case errors.As(err, &baseErr):
		return clierrors.GitBaselineFailed(baseErr.Ref, unwrapLoad(baseErr.Err))
	case errors.As(err, &loadErr):
		return clierrors.LoadFailed(loadErr.Source, loadErr.Err)
	case errors.As(err, &unhandled):
		return clierrors.UnhandledChange(unhandled.Path, err)
	case errors.As(err, &writeErr):
		return clierrors.WriteFailed(writeErr.Path, writeErr.Err)
	case errors.As(err, &rollErr):
		return clierrors.RollFailed(err)
	case errors.Is(err, context.Canceled):
		return clierrors.Wrap(err, clierrors.Runtime, "The run was interrupted before any file was written")
	case config.IsValidationError(err):
		return clierrors.ConfigInvalid(err)
	default:
		return clierrors.Wrap(err, clierrors.Runtime)
	}
}

func unwrapLoad(err error) error {
	var loadErr *openapi.LoadError
	if errors.As(err, &loadErr) {
		return loadErr.Err
	}
	return err
}
