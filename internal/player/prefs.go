package player

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Prefs is the subset of playback state that survives a process restart.
// Progress and play/pause are deliberately absent: they are recovered from
// the control plane's saved positions on next boot.
type Prefs struct {
	Volume    float64 `json:"volume"`
	StyleID   *int    `json:"style_id"`
	StyleName string  `json:"style_name"`
	MixURL    string  `json:"mix_url"`
	AutoMode  bool    `json:"auto_mode"`

	// pairing identity, written once after the code exchange
	Token      string `json:"token"`
	DeviceID   string `json:"device_id"`
	TerminalID int    `json:"terminal_id"`
}

// PrefsStore persists Prefs as a JSON file.
type PrefsStore struct {
	Path string
}

// Load reads prefs; a missing file yields defaults, not an error.
func (s *PrefsStore) Load() (Prefs, error) {
	prefs := Prefs{Volume: 0.7}
	data, err := os.ReadFile(s.Path)
	if os.IsNotExist(err) {
		return prefs, nil
	}
	if err != nil {
		return prefs, err
	}
	if err := json.Unmarshal(data, &prefs); err != nil {
		return Prefs{Volume: 0.7}, err
	}
	return prefs, nil
}

func (s *PrefsStore) Save(prefs Prefs) error {
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(prefs, "", "  ")
	if err != nil {
		return err
	}
	tmp := s.Path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, s.Path)
}
