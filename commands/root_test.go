package commands

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pomotrack/pomotrack/internal/core/model"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    model.SessionType
		wantErr bool
	}{
		{name: "work", input: "work", want: model.SessionWork},
		{name: "short alias", input: "short", want: model.SessionShortBreak},
		{name: "short wire name", input: "shortBreak", want: model.SessionShortBreak},
		{name: "long alias", input: "long", want: model.SessionLongBreak},
		{name: "long wire name", input: "longBreak", want: model.SessionLongBreak},
		{name: "unknown", input: "nap", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseMode(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	expanded := expandPath("~/.pomotrack/prefs.json")
	assert.Equal(t, filepath.Join(home, ".pomotrack", "prefs.json"), expanded)

	absolute := expandPath("/tmp/pomotrack.json")
	assert.Equal(t, "/tmp/pomotrack.json", absolute)

	assert.False(t, strings.Contains(expandPath("~/x"), "~"))
}

func TestEnsureDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "logs")
	require.NoError(t, ensureDir(dir))

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	// Idempotent on an existing directory
	assert.NoError(t, ensureDir(dir))
}
