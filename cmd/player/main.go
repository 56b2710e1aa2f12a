package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/auralis-io/auralis/internal/player"
)

func main() {
	// .env is optional; kiosk images set env vars in the service unit
	_ = godotenv.Load()

	env := LoadEnvironment()

	prefsStore := &player.PrefsStore{Path: env.PrefsPath}
	prefs, err := prefsStore.Load()
	if err != nil {
		log.Warn().Err(err).Msg("prefs unreadable, starting fresh")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	client := player.NewClient(env.ServerURL, prefs.Token)

	// first boot: exchange the pairing code for a terminal token
	if prefs.Token == "" {
		if env.PairingCode == "" {
			log.Fatal().Msg("not paired and PAIRING_CODE is not set")
		}
		resp, err := client.Pair(ctx, env.PairingCode, env.DeviceID)
		if err != nil {
			log.Fatal().Err(err).Msg("pairing failed")
		}
		prefs.Token = resp.Token
		prefs.DeviceID = env.DeviceID
		prefs.TerminalID = resp.Terminal.ID
		if err := prefsStore.Save(prefs); err != nil {
			log.Fatal().Err(err).Msg("could not persist pairing")
		}
		log.Info().Int("terminal", resp.Terminal.ID).Msg("paired")
	}

	out, err := player.StartMPV(env.MPVBinary, env.MPVSocket)
	if err != nil {
		log.Fatal().Err(err).Msg("could not start audio output")
	}
	defer out.Close()

	p := player.New(out, log.Logger)
	session := &player.Session{
		Player: p,
		Client: client,
		Prefs:  prefsStore,
		Log:    log.Logger,
	}

	p.SetVolume(prefs.Volume)
	p.SetAutoMode(prefs.AutoMode)

	// resume the last style from its saved position
	if prefs.StyleID != nil && prefs.MixURL != "" {
		position, err := client.Position(ctx, *prefs.StyleID)
		if err != nil {
			log.Warn().Err(err).Msg("could not fetch resume position, starting at 0")
		}
		p.SetStyle(*prefs.StyleID, prefs.StyleName, prefs.MixURL)
		if err := p.InitPlayer(prefs.MixURL, float64(position), prefs.Volume); err != nil {
			log.Error().Err(err).Msg("could not load last mix")
		} else if err := p.TogglePlay(); err != nil {
			log.Error().Err(err).Msg("could not resume playback")
		}
	}

	hb := &player.Heartbeat{Session: session}
	go hb.Run(ctx)

	sup := &player.Supervisor{Session: session}
	go sup.Run(ctx)

	if env.MQTTBrokerURL != "" {
		cmds := &player.Commands{Session: session}
		clientID := fmt.Sprintf("auralis-player-%d", prefs.TerminalID)
		stop, err := cmds.Listen(ctx, env.MQTTBrokerURL, clientID, prefs.TerminalID)
		if err != nil {
			log.Error().Err(err).Msg("mqtt connect failed, remote control disabled")
		} else {
			defer stop()
		}
	}

	log.Info().Str("server", env.ServerURL).Str("device", env.DeviceID).Msg("player running")
	<-ctx.Done()

	// save the final position before exit; the run context is already gone
	snap := p.Snapshot()
	if snap.StyleID != nil {
		saveCtx, saveCancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer saveCancel()
		if err := client.SavePosition(saveCtx, int(snap.Progress), false); err != nil {
			log.Warn().Err(err).Msg("could not save position on shutdown")
		}
	}
	log.Info().Msg("player stopped")
}
