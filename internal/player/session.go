package player

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/auralis-io/auralis/internal/model"
)

// Session ties the state machine to the control plane for one terminal
// process. It owns the style-switch sequence so manual switches, auto-mode
// switches and remote commands all go through the same path.
type Session struct {
	Player *Player
	Client *Client
	Prefs  *PrefsStore
	Log    zerolog.Logger
}

// SwitchStyle performs the full coordinated switch: persist the old style's
// progress as not-playing, change identity server-side, stop the old source,
// load the new mix, resume playback, and emit the CHANGE_STYLE audit event.
//
// The steps are sequenced on the caller's goroutine; stop-old and load-new
// must never overlap or two sources can be audible at once.
//
// resume controls the start offset: manual and remote switches resume from
// the style's saved position, auto-mode switches start from 0.
func (s *Session) SwitchStyle(ctx context.Context, styleID int, resume bool) error {
	prev := s.Player.Snapshot()

	// save the outgoing style's position, flagged not-playing; best effort
	if prev.StyleID != nil {
		if err := s.Client.SavePosition(ctx, int(prev.Progress), false); err != nil {
			s.Log.Warn().Err(err).Msg("could not persist outgoing style position")
		}
	}

	resp, err := s.Client.ChangeStyle(ctx, styleID)
	if err != nil {
		return fmt.Errorf("change style: %w", err)
	}
	if resp.Style.MixURL == nil || *resp.Style.MixURL == "" {
		return fmt.Errorf("style %d has no mix", styleID)
	}

	start := 0.0
	if resume {
		start = float64(resp.ResumePosition)
	}

	s.Player.SetStyle(resp.Style.ID, resp.Style.Name, *resp.Style.MixURL)
	s.Player.Stop()
	if err := s.Player.InitPlayer(*resp.Style.MixURL, start, prev.Volume); err != nil {
		return fmt.Errorf("load mix: %w", err)
	}
	if err := s.Player.TogglePlay(); err != nil {
		s.Log.Error().Err(err).Msg("could not start playback after switch")
	}

	s.emitStyleChange(ctx, prev, resp.Style.ID, resp.Style.Name)
	s.persistPrefs()
	return nil
}

func (s *Session) emitStyleChange(ctx context.Context, prev State, newID int, newName string) {
	payload := map[string]any{
		"to_style_id":   newID,
		"to_style_name": newName,
	}
	if prev.StyleID != nil {
		payload["from_style_id"] = *prev.StyleID
		payload["from_style_name"] = prev.StyleName
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return
	}
	details := string(raw)
	if err := s.Client.Activity(ctx, model.ActionChangeStyle, &details); err != nil {
		s.Log.Warn().Err(err).Msg("could not emit style change audit event")
	}
}

// persistPrefs writes the restart-surviving subset. Failures are logged and
// swallowed; prefs are a convenience, not a correctness requirement.
func (s *Session) persistPrefs() {
	if s.Prefs == nil {
		return
	}
	snap := s.Player.Snapshot()
	prefs, err := s.Prefs.Load()
	if err != nil {
		s.Log.Warn().Err(err).Msg("could not reload prefs before save")
	}
	prefs.Volume = snap.Volume
	prefs.StyleID = snap.StyleID
	prefs.StyleName = snap.StyleName
	prefs.MixURL = snap.MixURL
	prefs.AutoMode = snap.AutoMode
	if err := s.Prefs.Save(prefs); err != nil {
		s.Log.Warn().Err(err).Msg("could not save prefs")
	}
}
