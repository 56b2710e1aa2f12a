// Package player implements the terminal-side playback engine: the audio
// output handle, the playback state machine, and the heartbeat and auto-mode
// loops that keep the control plane informed.
package player

// EventKind identifies a notification from the audio output.
type EventKind int

const (
	// EventPlaying fires when the output actually starts playing.
	EventPlaying EventKind = iota
	// EventPaused fires when the output actually pauses.
	EventPaused
	// EventLoaded fires once per load, when media metadata is available
	// and the source is seekable.
	EventLoaded
	// EventTick fires as playback time advances.
	EventTick
)

// Event is a notification from the audio output. Position and Duration are
// in seconds and only meaningful for EventLoaded and EventTick.
type Event struct {
	Kind     EventKind
	Position float64
	Duration float64
}

// Output is the one playable media handle a terminal process owns. Exactly
// one source is loaded at a time; loading replaces the previous source. Play
// may be called before metadata is available; implementations must accept
// that and report readiness through EventLoaded.
//
// The state machine holds the only reference to an Output. Nothing else in
// the process touches it.
type Output interface {
	// Load replaces the current source. Playback is loop-forever; the mix
	// has no end-of-track.
	Load(url string) error
	// Play starts playback asynchronously. A rejected play is reported as
	// an error here or simply by the absence of EventPlaying; it must not
	// panic or crash the handle.
	Play() error
	Pause() error
	// Seek jumps to an absolute position in seconds.
	Seek(seconds float64) error
	// SetVolume takes a logical volume in [0,1].
	SetVolume(v float64) error
	// Position and Duration report the last known values in seconds.
	Position() float64
	Duration() float64
	// SetHandler registers the event callback. Called once, before Load.
	SetHandler(fn func(Event))
	Close() error
}
