package player

import (
	"context"
	"time"
)

// DefaultHeartbeatInterval is the cadence at which a playing terminal
// reports progress. The interval doubles as the retry mechanism: a failed
// heartbeat is dropped and the next tick tries again. At most one heartbeat
// is ever in flight.
const DefaultHeartbeatInterval = 10 * time.Second

// Heartbeat reports position and play-state to the control plane while
// playback is active.
type Heartbeat struct {
	Session  *Session
	Interval time.Duration
}

// Run loops until the context is cancelled. Nothing is sent while paused or
// before a style is selected, so the open play session on the server simply
// stops growing.
func (h *Heartbeat) Run(ctx context.Context) {
	interval := h.Interval
	if interval <= 0 {
		interval = DefaultHeartbeatInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			h.Session.Log.Debug().Msg("heartbeat loop stopped")
			return
		case <-ticker.C:
			h.tick(ctx)
		}
	}
}

func (h *Heartbeat) tick(ctx context.Context) {
	snap := h.Session.Player.Snapshot()
	if !snap.IsPlaying || snap.StyleID == nil {
		return
	}
	if err := h.Session.Client.SavePosition(ctx, int(snap.Progress), true); err != nil {
		// dropped; the fixed cadence itself is the retry
		h.Session.Log.Warn().Err(err).Msg("heartbeat failed")
	}
}
