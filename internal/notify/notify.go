// Package notify sends desktop notifications when a watched release-notes
// preview changes state between rendering and failing.
package notify

import (
	"context"
	"os"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/term"
)

// NotificationType represents the kind of notification event.
type NotificationType string

const (
	TypeSuccess NotificationType = "success"
	TypeFailure NotificationType = "failure"
)

// Notification is a single message for the OS notification system.
type Notification struct {
	Title            string
	Message          string
	NotificationType NotificationType
}

// dispatchTimeout bounds how long a sender may block the caller.
const dispatchTimeout = 5 * time.Second

// Handler dispatches preview state transitions to a Sender. Only changes in
// state produce a notification; repeated failures stay quiet. Sends run in
// the background, one at a time.
type Handler struct {
	sender  Sender
	enabled bool
	failing bool
	started bool
	logf    func(format string, args ...any)
	sends   errgroup.Group
}

// NewHandler returns a Handler using the platform sender. Notifications are
// suppressed in CI and in non-interactive sessions.
func NewHandler(enabled bool, logf func(format string, args ...any)) *Handler {
	return NewHandlerWithSender(enabled && !isCI() && isInteractive(), NewSender(), logf)
}

// NewHandlerWithSender creates a handler with a custom sender.
func NewHandlerWithSender(enabled bool, sender Sender, logf func(format string, args ...any)) *Handler {
	h := &Handler{sender: sender, enabled: enabled, logf: logf}
	h.sends.SetLimit(1)
	return h
}

// OnPreview records the outcome of one preview render. The first render
// only notifies on failure.
func (h *Handler) OnPreview(ctx context.Context, specPath string, err error) {
	failing := err != nil
	changed := failing != h.failing || (!h.started && failing)
	h.failing = failing
	h.started = true

	if !h.enabled || !changed || !h.sender.Available() {
		return
	}

	n := Notification{
		Title:            "oasnotes",
		Message:          "Release notes preview for " + specPath + " renders again",
		NotificationType: TypeSuccess,
	}
	if failing {
		n.Message = "Release notes preview for " + specPath + " failed: " + err.Error()
		n.NotificationType = TypeFailure
	}
	h.sends.Go(func() error {
		h.dispatch(context.WithoutCancel(ctx), n)
		return nil
	})
}

// Wait blocks until queued notifications have been sent.
func (h *Handler) Wait() {
	_ = h.sends.Wait()
}

// dispatch sends n, giving up after dispatchTimeout.
func (h *Handler) dispatch(ctx context.Context, n Notification) {
	ctx, cancel := context.WithTimeout(ctx, dispatchTimeout)
	defer cancel()

	if err := h.sender.Send(ctx, n); err != nil {
		h.debugf("notification failed: %v", err)
	}
}

func (h *Handler) debugf(format string, args ...any) {
	if h.logf != nil {
		h.logf(format, args...)
	}
}

// isCI checks for common CI environment variables.
func isCI() bool {
	ciVars := []string{
		"CI",
		"GITHUB_ACTIONS",
		"GITLAB_CI",
		"CIRCLECI",
		"JENKINS_URL",
		"BUILDKITE",
		"TF_BUILD", // Azure DevOps
		"BITBUCKET_PIPELINES",
		"CODEBUILD_BUILD_ID",
	}
	for _, v := range ciVars {
		if os.Getenv(v) != "" {
			return true
		}
	}
	return false
}

// isInteractive reports whether stdout or stderr is attached to a terminal.
func isInteractive() bool {
	return term.IsTerminal(int(os.Stdout.Fd())) || term.IsTerminal(int(os.Stderr.Fd()))
}
