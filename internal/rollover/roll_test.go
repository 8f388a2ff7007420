package rollover

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoll(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		writePrevious bool
		writeCurrent  bool
		wantErr       bool
		wantStep      string
	}{
		"replaces previous with current": {
			writePrevious: true,
			writeCurrent:  true,
		},
		"missing previous is tolerated": {
			writeCurrent: true,
		},
		"missing current fails before deleting previous": {
			writePrevious: true,
			wantErr:       true,
			wantStep:      "rename",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			previous := filepath.Join(dir, "openapi.yaml")
			current := filepath.Join(dir, "openapi_new.yaml")

			if tt.writePrevious {
				require.NoError(t, os.WriteFile(previous, []byte("version: old\n"), 0o644))
			}
			if tt.writeCurrent {
				require.NoError(t, os.WriteFile(current, []byte("version: new\n"), 0o644))
			}

			err := Roll(previous, current)
			if tt.wantErr {
				require.Error(t, err)
				var re *RollError
				require.True(t, errors.As(err, &re))
				assert.Equal(t, tt.wantStep, re.Step)

				if tt.writePrevious {
					data, readErr := os.ReadFile(previous)
					require.NoError(t, readErr)
					assert.Equal(t, "version: old\n", string(data), "previous must survive a failed roll")
				}
				return
			}

			require.NoError(t, err)
			data, err := os.ReadFile(previous)
			require.NoError(t, err)
			assert.Equal(t, "version: new\n", string(data))

			_, err = os.Stat(current)
			assert.True(t, os.IsNotExist(err), "current spec should have been renamed")
		})
	}
}
