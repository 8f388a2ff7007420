package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	color.NoColor = true
}

func TestPrintHelpers(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		print func(*bytes.Buffer)
		want  string
	}{
		"step": {
			print: func(b *bytes.Buffer) { PrintStep(b, "Comparing a → b") },
			want:  "→ Comparing a → b\n",
		},
		"success": {
			print: func(b *bytes.Buffer) { PrintSuccess(b, "Wrote RELEASE_NOTES.md") },
			want:  "✓ Wrote RELEASE_NOTES.md\n",
		},
		"ignored": {
			print: func(b *bytes.Buffer) { PrintIgnored(b, "root['x']['description']", "description") },
			want:  "  ignored description change at root['x']['description']\n",
		},
		"warning": {
			print: func(b *bytes.Buffer) { PrintWarning(b, "careful") },
			want:  "⚠ careful\n",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			tt.print(&buf)
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestPrintRule(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	PrintRule(&buf, "preview")
	out := buf.String()
	assert.Contains(t, out, " preview ")
	assert.True(t, strings.HasPrefix(out, "───"))
}

func TestNewDebugLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	assert.Nil(t, NewDebugLogger(&buf, false))

	logf := NewDebugLogger(&buf, true)
	require.NotNil(t, logf)
	logf("loaded %d schemas", 3)
	assert.Equal(t, "[debug] loaded 3 schemas\n", buf.String())
}

func TestGetTerminalWidth(t *testing.T) {
	t.Parallel()
	assert.Positive(t, GetTerminalWidth())
}
