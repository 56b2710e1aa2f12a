package player

import (
	"errors"
	"math"
	"sync"

	"github.com/rs/zerolog"
)

// ErrNoActiveMix is returned by TogglePlay when nothing has been loaded.
var ErrNoActiveMix = errors.New("no active mix")

// State is a snapshot of the logical playback state. Volume is logical
// [0,1]; the control plane stores 0-100.
type State struct {
	MixURL    string
	StyleID   *int
	StyleName string
	IsPlaying bool
	Volume    float64
	Progress  float64
	Duration  float64
	AutoMode  bool
}

// Player is the playback state machine. It drives the Output and is the
// single source of truth the UI and the background loops read.
//
// IsPlaying follows the output's own play/pause events, never the caller's
// intent, so a rejected play or a slow start cannot desynchronize the flag
// from the hardware.
type Player struct {
	mu  sync.Mutex
	out Output
	log zerolog.Logger

	state  State
	loaded bool

	// pendingSeek is the resume offset to apply when the current load
	// reports metadata. Applied at most once per load; playback start is
	// never blocked on it.
	pendingSeek *float64
}

func New(out Output, logger zerolog.Logger) *Player {
	p := &Player{
		out: out,
		log: logger,
		state: State{
			Volume: 0.7,
		},
	}
	out.SetHandler(p.handleEvent)
	return p
}

// InitPlayer loads a new source and applies the start offset once the source
// is seekable. The mix loops indefinitely; there is no end-of-track
// transition. Load failures leave the machine paused and are not retried
// here.
func (p *Player) InitPlayer(mixURL string, startPosition, volume float64) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.out.Load(mixURL); err != nil {
		p.log.Error().Err(err).Str("mix", mixURL).Msg("failed to load mix")
		p.state.IsPlaying = false
		return err
	}
	p.loaded = true
	p.state.MixURL = mixURL
	p.state.Progress = startPosition
	p.pendingSeek = nil
	if startPosition > 0 {
		offset := startPosition
		p.pendingSeek = &offset
	}

	p.applyVolume(volume)
	return nil
}

// TogglePlay flips play/pause on the output. With no source loaded it
// reports ErrNoActiveMix and does nothing. Safe against rapid
// double-invocation: the logical flag only moves on output events.
func (p *Player) TogglePlay() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.loaded {
		return ErrNoActiveMix
	}

	if p.state.IsPlaying {
		if err := p.out.Pause(); err != nil {
			p.log.Error().Err(err).Msg("pause failed")
			return err
		}
		return nil
	}

	if err := p.out.Play(); err != nil {
		// rejected play is non-fatal; the machine stays paused
		p.log.Error().Err(err).Msg("play rejected")
		return err
	}
	return nil
}

// SetStyle updates the logical style identity without touching playback.
// Style switches sequence identity change, stop, load and play explicitly.
func (p *Player) SetStyle(styleID int, name, mixURL string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	id := styleID
	p.state.StyleID = &id
	p.state.StyleName = name
	p.state.MixURL = mixURL
}

// SeekRelative moves by delta seconds, clamped to [0, duration]. Mixes loop,
// so duration is the underlying media length.
func (p *Player) SeekRelative(delta float64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.loaded {
		return
	}
	duration := p.state.Duration
	if d := p.out.Duration(); d > 0 {
		duration = d
	}
	target := p.state.Progress + delta
	target = math.Max(0, target)
	if duration > 0 {
		target = math.Min(target, duration)
	}
	if err := p.out.Seek(target); err != nil {
		p.log.Error().Err(err).Float64("target", target).Msg("seek failed")
		return
	}
	p.state.Progress = target
}

// Stop pauses and resets logical progress to 0. The loaded source is kept so
// an immediate resume avoids a reload; only the progress counter is logical
// state here.
func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.loaded {
		return
	}
	if err := p.out.Pause(); err != nil {
		p.log.Error().Err(err).Msg("pause failed during stop")
	}
	p.state.Progress = 0
	p.pendingSeek = nil
}

// SetVolume clamps to [0,1] and applies immediately.
func (p *Player) SetVolume(v float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.applyVolume(v)
}

func (p *Player) applyVolume(v float64) {
	v = math.Max(0, math.Min(1, v))
	p.state.Volume = v
	if err := p.out.SetVolume(v); err != nil {
		p.log.Error().Err(err).Msg("set volume failed")
	}
}

func (p *Player) SetAutoMode(enabled bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state.AutoMode = enabled
}

// Snapshot returns a copy of the current logical state.
func (p *Player) Snapshot() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	s := p.state
	if s.StyleID != nil {
		id := *s.StyleID
		s.StyleID = &id
	}
	return s
}

func (p *Player) handleEvent(ev Event) {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch ev.Kind {
	case EventPlaying:
		p.state.IsPlaying = true
	case EventPaused:
		p.state.IsPlaying = false
	case EventLoaded:
		if ev.Duration > 0 {
			p.state.Duration = ev.Duration
		}
		if p.pendingSeek != nil {
			offset := *p.pendingSeek
			p.pendingSeek = nil
			if err := p.out.Seek(offset); err != nil {
				p.log.Error().Err(err).Float64("offset", offset).Msg("resume seek failed")
			} else {
				p.state.Progress = offset
			}
		}
	case EventTick:
		p.state.Progress = ev.Position
		if ev.Duration > 0 {
			p.state.Duration = ev.Duration
		}
	}
}
