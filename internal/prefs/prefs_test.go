package prefs

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	p := Default()
	assert.Equal(t, 50, p.SoundVolume)
	assert.Equal(t, ThemeDark, p.Theme)
}

func TestGainMapping(t *testing.T) {
	tests := []struct {
		name   string
		volume int
		gain   float64
	}{
		{name: "muted", volume: 0, gain: 0},
		{name: "default is unity", volume: 50, gain: 1.0},
		{name: "max doubles", volume: 100, gain: 2.0},
		{name: "quarter", volume: 25, gain: 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Prefs{SoundVolume: tt.volume}
			assert.InDelta(t, tt.gain, p.Gain(), 1e-9)
		})
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name       string
		input      Prefs
		wantVolume int
		wantTheme  string
	}{
		{name: "negative volume clamps", input: Prefs{SoundVolume: -10, Theme: ThemeLight}, wantVolume: 0, wantTheme: ThemeLight},
		{name: "over 100 clamps", input: Prefs{SoundVolume: 250, Theme: ThemeDark}, wantVolume: 100, wantTheme: ThemeDark},
		{name: "unknown theme falls back", input: Prefs{SoundVolume: 50, Theme: "sepia"}, wantVolume: 50, wantTheme: ThemeDark},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.input
			p.Normalize()
			assert.Equal(t, tt.wantVolume, p.SoundVolume)
			assert.Equal(t, tt.wantTheme, p.Theme)
		})
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	p, err := Load(filepath.Join(t.TempDir(), "prefs.json"))
	require.NoError(t, err)
	assert.Equal(t, Default(), p)
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "prefs.json")

	saved := Prefs{SoundVolume: 75, Theme: ThemeLight}
	require.NoError(t, Save(path, saved))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, saved, loaded)
}

func TestLoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestWatcherDeliversUpdates(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prefs.json")
	require.NoError(t, Save(path, Default()))

	w, err := NewWatcher(path)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, Save(path, Prefs{SoundVolume: 80, Theme: ThemeLight}))

	select {
	case p := <-w.Updates():
		assert.Equal(t, 80, p.SoundVolume)
		assert.Equal(t, ThemeLight, p.Theme)
	case <-time.After(2 * time.Second):
		t.Fatal("no preference update received")
	}
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prefs.json")
	require.NoError(t, Save(path, Default()))

	w, err := NewWatcher(path)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.json"), []byte("{}"), 0644))

	select {
	case <-w.Updates():
		t.Fatal("update delivered for an unrelated file")
	case <-time.After(200 * time.Millisecond):
	}
}
