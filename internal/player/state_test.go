package player

import (
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeOutput records calls and lets tests feed events by hand. Nothing is
// emitted automatically, mirroring an output where play/pause confirmation
// arrives asynchronously.
type fakeOutput struct {
	mu      sync.Mutex
	handler func(Event)

	loads   []string
	seeks   []float64
	volumes []float64
	plays   int
	pauses  int

	position float64
	duration float64

	loadErr error
	playErr error
}

func (f *fakeOutput) Load(url string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.loadErr != nil {
		return f.loadErr
	}
	f.loads = append(f.loads, url)
	return nil
}

func (f *fakeOutput) Play() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.playErr != nil {
		return f.playErr
	}
	f.plays++
	return nil
}

func (f *fakeOutput) Pause() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pauses++
	return nil
}

func (f *fakeOutput) Seek(seconds float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seeks = append(f.seeks, seconds)
	f.position = seconds
	return nil
}

func (f *fakeOutput) SetVolume(v float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.volumes = append(f.volumes, v)
	return nil
}

func (f *fakeOutput) Position() float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.position
}

func (f *fakeOutput) Duration() float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.duration
}

func (f *fakeOutput) SetHandler(fn func(Event)) { f.handler = fn }

func (f *fakeOutput) Close() error { return nil }

func (f *fakeOutput) emit(ev Event) { f.handler(ev) }

func (f *fakeOutput) seekCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.seeks)
}

func newTestPlayer() (*Player, *fakeOutput) {
	out := &fakeOutput{}
	return New(out, zerolog.Nop()), out
}

func TestTogglePlayWithoutMix(t *testing.T) {
	p, out := newTestPlayer()

	err := p.TogglePlay()
	assert.ErrorIs(t, err, ErrNoActiveMix)
	assert.Zero(t, out.plays)
}

func TestIsPlayingFollowsOutputEvents(t *testing.T) {
	p, out := newTestPlayer()
	require.NoError(t, p.InitPlayer("https://cdn.example.com/calm.mp3", 0, 0.5))

	require.NoError(t, p.TogglePlay())
	// play was requested but the output has not confirmed yet
	assert.Equal(t, 1, out.plays)
	assert.False(t, p.Snapshot().IsPlaying)

	out.emit(Event{Kind: EventPlaying})
	assert.True(t, p.Snapshot().IsPlaying)

	require.NoError(t, p.TogglePlay())
	assert.Equal(t, 1, out.pauses)
	assert.True(t, p.Snapshot().IsPlaying, "flag must wait for the output")

	out.emit(Event{Kind: EventPaused})
	assert.False(t, p.Snapshot().IsPlaying)
}

func TestDeferredResumeSeekAppliesOnce(t *testing.T) {
	p, out := newTestPlayer()
	require.NoError(t, p.InitPlayer("https://cdn.example.com/jazz.mp3", 42, 0.7))

	assert.Zero(t, out.seekCount(), "seek must wait for metadata")

	out.emit(Event{Kind: EventLoaded, Duration: 300})
	require.Equal(t, 1, out.seekCount())
	assert.Equal(t, 42.0, out.seeks[0])

	snap := p.Snapshot()
	assert.Equal(t, 42.0, snap.Progress)
	assert.Equal(t, 300.0, snap.Duration)

	// a spurious second load event must not rewind
	out.emit(Event{Kind: EventLoaded, Duration: 300})
	assert.Equal(t, 1, out.seekCount())
}

func TestInitPlayerFromZeroSkipsSeek(t *testing.T) {
	p, out := newTestPlayer()
	require.NoError(t, p.InitPlayer("https://cdn.example.com/lofi.mp3", 0, 0.7))

	out.emit(Event{Kind: EventLoaded, Duration: 180})
	assert.Zero(t, out.seekCount())
}

func TestSeekRelativeClamps(t *testing.T) {
	p, out := newTestPlayer()
	require.NoError(t, p.InitPlayer("https://cdn.example.com/lofi.mp3", 0, 0.7))
	out.emit(Event{Kind: EventLoaded, Duration: 120})
	out.emit(Event{Kind: EventTick, Position: 10, Duration: 120})

	p.SeekRelative(-50)
	require.Equal(t, 1, out.seekCount())
	assert.Equal(t, 0.0, out.seeks[0])

	p.SeekRelative(500)
	require.Equal(t, 2, out.seekCount())
	assert.Equal(t, 120.0, out.seeks[1])
}

func TestStopKeepsLoadedSource(t *testing.T) {
	p, out := newTestPlayer()
	require.NoError(t, p.InitPlayer("https://cdn.example.com/lofi.mp3", 0, 0.7))
	require.NoError(t, p.TogglePlay())
	out.emit(Event{Kind: EventPlaying})
	out.emit(Event{Kind: EventTick, Position: 33, Duration: 120})

	p.Stop()
	out.emit(Event{Kind: EventPaused})

	snap := p.Snapshot()
	assert.False(t, snap.IsPlaying)
	assert.Equal(t, 0.0, snap.Progress)

	// resume without a reload
	require.NoError(t, p.TogglePlay())
	assert.Len(t, out.loads, 1)
}

func TestVolumeClamped(t *testing.T) {
	p, out := newTestPlayer()

	p.SetVolume(1.8)
	assert.Equal(t, 1.0, p.Snapshot().Volume)

	p.SetVolume(-0.3)
	assert.Equal(t, 0.0, p.Snapshot().Volume)

	assert.Equal(t, []float64{1, 0}, out.volumes)
}

func TestRejectedPlayLeavesMachinePaused(t *testing.T) {
	p, out := newTestPlayer()
	require.NoError(t, p.InitPlayer("https://cdn.example.com/lofi.mp3", 0, 0.7))

	out.playErr = assert.AnError
	assert.Error(t, p.TogglePlay())
	assert.False(t, p.Snapshot().IsPlaying)
}
