package testutil

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"
	"time"
)

var (
	// binaryPath caches the built oasnotes binary path.
	binaryPath string
	buildOnce  sync.Once
	buildErr   error
)

// E2EEnv runs the built oasnotes binary inside an isolated project directory.
// OASNOTES_* variables from the caller's environment are never passed on.
type E2EEnv struct {
	t   *testing.T
	dir string
}

// CommandResult captures the result of running an oasnotes command.
type CommandResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
	Duration time.Duration
}

// NewE2EEnv builds oasnotes (once per test binary) and creates an empty
// project directory for it to run in.
func NewE2EEnv(t *testing.T) *E2EEnv {
	t.Helper()

	buildOnce.Do(func() {
		binaryPath, buildErr = buildBinary()
	})
	if buildErr != nil {
		t.Fatalf("building oasnotes: %v", buildErr)
	}

	return &E2EEnv{t: t, dir: t.TempDir()}
}

func buildBinary() (string, error) {
	_, currentFile, _, ok := runtime.Caller(0)
	if !ok {
		return "", fmt.Errorf("determining current file location")
	}
	repoRoot := filepath.Join(filepath.Dir(currentFile), "..", "..")

	tmpDir, err := os.MkdirTemp("", "oasnotes-build-*")
	if err != nil {
		return "", fmt.Errorf("creating temp dir for build: %w", err)
	}

	path := filepath.Join(tmpDir, "oasnotes")
	cmd := exec.Command("go", "build", "-o", path, "./cmd/oasnotes")
	cmd.Dir = repoRoot
	if out, err := cmd.CombinedOutput(); err != nil {
		return "", fmt.Errorf("%w\nOutput: %s", err, out)
	}
	return path, nil
}

// Dir returns the project directory commands run in.
func (e *E2EEnv) Dir() string {
	return e.dir
}

// Path returns name joined onto the project directory.
func (e *E2EEnv) Path(name string) string {
	return filepath.Join(e.dir, name)
}

// WriteFile writes content to name inside the project directory.
func (e *E2EEnv) WriteFile(name, content string) {
	e.t.Helper()
	path := e.Path(name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		e.t.Fatalf("creating directory for %s: %v", name, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		e.t.Fatalf("writing %s: %v", name, err)
	}
}

// ReadFile returns the content of name, failing the test if it is missing.
func (e *E2EEnv) ReadFile(name string) string {
	e.t.Helper()
	data, err := os.ReadFile(e.Path(name))
	if err != nil {
		e.t.Fatalf("reading %s: %v", name, err)
	}
	return string(data)
}

// Exists reports whether name exists in the project directory.
func (e *E2EEnv) Exists(name string) bool {
	_, err := os.Stat(e.Path(name))
	return err == nil
}

// Run executes oasnotes with args in the project directory.
func (e *E2EEnv) Run(args ...string) CommandResult {
	return e.RunWithEnv(nil, args...)
}

// RunWithEnv executes oasnotes with extra KEY=VALUE environment entries.
func (e *E2EEnv) RunWithEnv(env []string, args ...string) CommandResult {
	e.t.Helper()

	start := time.Now()
	cmd := exec.Command(binaryPath, args...)
	cmd.Dir = e.dir
	cmd.Env = append(isolatedEnv(e.dir), env...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := CommandResult{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(start),
	}

	var exitErr *exec.ExitError
	switch {
	case errors.As(err, &exitErr):
		result.ExitCode = exitErr.ExitCode()
	case err != nil:
		e.t.Fatalf("running oasnotes: %v", err)
	}
	return result
}

func isolatedEnv(home string) []string {
	env := []string{"HOME=" + home, "NO_COLOR=1"}
	for _, kv := range os.Environ() {
		key, _, _ := strings.Cut(kv, "=")
		if key == "HOME" || key == "NO_COLOR" || strings.HasPrefix(key, "OASNOTES_") {
			continue
		}
		env = append(env, kv)
	}
	return env
}
