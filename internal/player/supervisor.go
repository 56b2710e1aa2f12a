package player

import (
	"context"
	"time"
)

// DefaultSupervisorInterval is the auto-mode polling cadence.
const DefaultSupervisorInterval = 30 * time.Second

// Supervisor polls the program resolver while auto-mode is enabled and
// triggers a full style switch when the schedule says something else should
// be playing.
type Supervisor struct {
	Session  *Session
	Interval time.Duration
}

// Run polls immediately, then on the interval, until the context is
// cancelled. Cancellation stops resolver calls entirely; a torn-down
// supervisor makes no further requests.
func (s *Supervisor) Run(ctx context.Context) {
	interval := s.Interval
	if interval <= 0 {
		interval = DefaultSupervisorInterval
	}

	s.check(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.Session.Log.Debug().Msg("auto-mode supervisor stopped")
			return
		case <-ticker.C:
			s.check(ctx)
		}
	}
}

// check asks the resolver for the scheduled style and switches on mismatch.
// Auto-mode switches start the new mix from position 0. A "no program"
// answer leaves the active style untouched.
func (s *Supervisor) check(ctx context.Context) {
	snap := s.Session.Player.Snapshot()
	if !snap.AutoMode || snap.StyleID == nil {
		return
	}

	style, err := s.Session.Client.CurrentProgram(ctx)
	if err != nil {
		s.Session.Log.Warn().Err(err).Msg("program resolution failed")
		return
	}
	if style == nil || style.ID == *snap.StyleID {
		return
	}

	s.Session.Log.Info().
		Int("from", *snap.StyleID).
		Int("to", style.ID).
		Msg("schedule dictates a style change")

	if err := s.Session.SwitchStyle(ctx, style.ID, false); err != nil {
		s.Session.Log.Error().Err(err).Int("style", style.ID).Msg("scheduled switch failed")
	}
}
