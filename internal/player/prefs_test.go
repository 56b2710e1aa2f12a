package player

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrefsMissingFileYieldsDefaults(t *testing.T) {
	store := &PrefsStore{Path: filepath.Join(t.TempDir(), "prefs.json")}

	prefs, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, 0.7, prefs.Volume)
	assert.Nil(t, prefs.StyleID)
	assert.False(t, prefs.AutoMode)
}

func TestPrefsRoundTrip(t *testing.T) {
	store := &PrefsStore{Path: filepath.Join(t.TempDir(), "auralis", "prefs.json")}

	styleID := 4
	saved := Prefs{
		Volume:     0.35,
		StyleID:    &styleID,
		StyleName:  "Evening Chill",
		MixURL:     "https://cdn.example.com/chill.mp3",
		AutoMode:   true,
		Token:      "terminal-token",
		DeviceID:   "kiosk-17",
		TerminalID: 4,
	}
	require.NoError(t, store.Save(saved))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, saved, loaded)

	// atomic write leaves no temp file behind
	_, err = os.Stat(store.Path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestPrefsCorruptFileFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	store := &PrefsStore{Path: path}
	prefs, err := store.Load()
	assert.Error(t, err)
	assert.Equal(t, 0.7, prefs.Volume)
}
