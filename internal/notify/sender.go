package notify

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strconv"
)

// Sender delivers notifications to the OS notification system.
type Sender interface {
	Send(ctx context.Context, n Notification) error
	Available() bool
}

// NewSender returns the sender for the current OS, or a no-op sender on
// platforms without a supported notification tool.
func NewSender() Sender {
	switch runtime.GOOS {
	case "darwin":
		return &commandSender{tool: "osascript", args: darwinArgs}
	case "linux":
		return &commandSender{tool: "notify-send", args: linuxArgs}
	default:
		return noopSender{}
	}
}

// commandSender shells out to a notification tool found in PATH.
type commandSender struct {
	tool string
	args func(n Notification) []string
}

func (s *commandSender) Send(ctx context.Context, n Notification) error {
	cmd := exec.CommandContext(ctx, s.tool, s.args(n)...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("running %s: %w: %s", s.tool, err, out)
	}
	return nil
}

func (s *commandSender) Available() bool {
	_, err := exec.LookPath(s.tool)
	return err == nil
}

func linuxArgs(n Notification) []string {
	urgency := "normal"
	if n.NotificationType == TypeFailure {
		urgency = "critical"
	}
	return []string{"--app-name=oasnotes", "--urgency=" + urgency, n.Title, n.Message}
}

func darwinArgs(n Notification) []string {
	script := fmt.Sprintf("display notification %s with title %s", strconv.Quote(n.Message), strconv.Quote(n.Title))
	return []string{"-e", script}
}

type noopSender struct{}

func (noopSender) Send(context.Context, Notification) error { return nil }
func (noopSender) Available() bool                          { return false }
