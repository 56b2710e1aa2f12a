package player

import (
	"context"

	"github.com/auralis-io/auralis/internal/mqtt"
)

// Commands applies remote-control commands pushed from the admin API over
// MQTT. Every mutation goes through the same Session/Player paths as local
// actions, so remote and local control cannot diverge.
type Commands struct {
	Session *Session
}

// Listen subscribes to this terminal's command topic. The returned stop
// function disconnects the MQTT client.
func (c *Commands) Listen(ctx context.Context, brokerURL, clientID string, terminalID int) (func(), error) {
	client, err := mqtt.Subscribe(brokerURL, clientID, terminalID, func(cmd mqtt.Command) {
		c.apply(ctx, cmd)
	})
	if err != nil {
		return nil, err
	}
	return func() { client.Disconnect(250) }, nil
}

func (c *Commands) apply(ctx context.Context, cmd mqtt.Command) {
	log := c.Session.Log.With().Str("action", cmd.Action).Logger()

	switch cmd.Action {
	case mqtt.CmdChangeStyle:
		// remote switches resume from the style's saved position
		if err := c.Session.SwitchStyle(ctx, cmd.StyleID, true); err != nil {
			log.Error().Err(err).Int("style", cmd.StyleID).Msg("remote style change failed")
		}
	case mqtt.CmdSetVolume:
		c.Session.Player.SetVolume(float64(cmd.Volume) / 100)
		c.Session.persistPrefs()
	case mqtt.CmdSetAutoMode:
		c.Session.Player.SetAutoMode(cmd.Enabled)
		c.Session.persistPrefs()
	case mqtt.CmdStop:
		snap := c.Session.Player.Snapshot()
		c.Session.Player.Stop()
		if err := c.Session.Client.SavePosition(ctx, int(snap.Progress), false); err != nil {
			log.Warn().Err(err).Msg("could not persist position on remote stop")
		}
	default:
		log.Warn().Msg("unknown remote command")
	}
}
