package player

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/auralis-io/auralis/internal/http/api/terminal/packets"
)

func autoModeSession(t *testing.T, cp *controlPlane) (*Session, *fakeOutput) {
	cp.addStyle(2, "Deep Focus", "https://cdn.example.com/deep-focus.mp3")
	cp.addStyle(3, "Morning Jazz", "https://cdn.example.com/jazz.mp3")

	session, out := newTestSession(t, cp)
	require.NoError(t, session.SwitchStyle(context.Background(), 2, false))
	session.Player.SetAutoMode(true)
	return session, out
}

func TestSupervisorSwitchesOnScheduleMismatch(t *testing.T) {
	cp := newControlPlane(t)
	session, out := autoModeSession(t, cp)

	name := "Morning Jazz"
	url := "https://cdn.example.com/jazz.mp3"
	cp.programStyle = &packets.StyleResponse{ID: 3, Name: name, MixURL: &url}

	sup := &Supervisor{Session: session}
	sup.check(context.Background())

	require.Len(t, cp.switches, 2)
	assert.Equal(t, 3, cp.switches[1].StyleID)
	assert.Equal(t, url, out.loads[len(out.loads)-1])

	// scheduled switches do not resume
	out.emit(Event{Kind: EventLoaded, Duration: 600})
	assert.Zero(t, out.seekCount())
}

func TestSupervisorKeepsMatchingStyle(t *testing.T) {
	cp := newControlPlane(t)
	session, _ := autoModeSession(t, cp)

	url := "https://cdn.example.com/deep-focus.mp3"
	cp.programStyle = &packets.StyleResponse{ID: 2, Name: "Deep Focus", MixURL: &url}

	sup := &Supervisor{Session: session}
	sup.check(context.Background())

	assert.Len(t, cp.switches, 1, "no switch when schedule agrees")
}

func TestSupervisorIgnoresEmptyProgram(t *testing.T) {
	cp := newControlPlane(t)
	session, _ := autoModeSession(t, cp)
	cp.programStyle = nil

	sup := &Supervisor{Session: session}
	sup.check(context.Background())

	assert.Len(t, cp.switches, 1)
	assert.Equal(t, 1, cp.programCount())
}

func TestSupervisorIdleWithAutoModeOff(t *testing.T) {
	cp := newControlPlane(t)
	session, _ := autoModeSession(t, cp)
	session.Player.SetAutoMode(false)

	sup := &Supervisor{Session: session}
	sup.check(context.Background())

	assert.Zero(t, cp.programCount())
}

func TestSupervisorStopsPollingAfterCancel(t *testing.T) {
	cp := newControlPlane(t)
	session, _ := autoModeSession(t, cp)

	url := "https://cdn.example.com/deep-focus.mp3"
	cp.programStyle = &packets.StyleResponse{ID: 2, Name: "Deep Focus", MixURL: &url}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		sup := &Supervisor{Session: session, Interval: 5 * time.Millisecond}
		sup.Run(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool { return cp.programCount() >= 2 },
		time.Second, time.Millisecond)

	cancel()
	<-done

	settled := cp.programCount()
	time.Sleep(25 * time.Millisecond)
	assert.Equal(t, settled, cp.programCount(), "cancelled supervisor must not poll")
}
