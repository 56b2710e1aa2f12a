package player

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/auralis-io/auralis/internal/http/api/terminal/packets"
)

// controlPlane is a minimal stub of the terminal API for loop and session
// tests. It records every request so tests can assert on the exact sequence.
type controlPlane struct {
	mu sync.Mutex

	heartbeats []packets.HeartbeatRequest
	switches   []packets.ChangeStyleRequest
	activities []packets.ActivityRequest
	programs   int

	programStyle   *packets.StyleResponse
	resumePosition int
	styles         map[int]packets.StyleResponse

	srv *httptest.Server
}

func newControlPlane(t *testing.T) *controlPlane {
	cp := &controlPlane{styles: map[int]packets.StyleResponse{}}
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/terminal/heartbeat", func(w http.ResponseWriter, r *http.Request) {
		var req packets.HeartbeatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		cp.mu.Lock()
		cp.heartbeats = append(cp.heartbeats, req)
		cp.mu.Unlock()
		writeJSON(w, packets.HeartbeatResponse{OK: true})
	})

	mux.HandleFunc("POST /api/terminal/style", func(w http.ResponseWriter, r *http.Request) {
		var req packets.ChangeStyleRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		cp.mu.Lock()
		cp.switches = append(cp.switches, req)
		style, ok := cp.styles[req.StyleID]
		resume := cp.resumePosition
		cp.mu.Unlock()
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "style not found"})
			return
		}
		writeJSON(w, packets.ChangeStyleResponse{
			Terminal:       packets.TerminalResponse{ID: 1, Name: "kiosk-1", CurrentStyleID: &req.StyleID},
			Style:          style,
			ResumePosition: resume,
		})
	})

	mux.HandleFunc("GET /api/terminal/program", func(w http.ResponseWriter, r *http.Request) {
		cp.mu.Lock()
		cp.programs++
		style := cp.programStyle
		cp.mu.Unlock()
		writeJSON(w, packets.ProgramResponse{Style: style})
	})

	mux.HandleFunc("POST /api/terminal/activity", func(w http.ResponseWriter, r *http.Request) {
		var req packets.ActivityRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		cp.mu.Lock()
		cp.activities = append(cp.activities, req)
		cp.mu.Unlock()
		writeJSON(w, map[string]bool{"ok": true})
	})

	cp.srv = httptest.NewServer(mux)
	t.Cleanup(cp.srv.Close)
	return cp
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func (cp *controlPlane) addStyle(id int, name, mixURL string) {
	cp.mu.Lock()
	defer cp.mu.Unlock()
	url := mixURL
	style := packets.StyleResponse{ID: id, Name: name}
	if mixURL != "" {
		style.MixURL = &url
	}
	cp.styles[id] = style
}

func (cp *controlPlane) heartbeatCount() int {
	cp.mu.Lock()
	defer cp.mu.Unlock()
	return len(cp.heartbeats)
}

func (cp *controlPlane) programCount() int {
	cp.mu.Lock()
	defer cp.mu.Unlock()
	return cp.programs
}

func newTestSession(t *testing.T, cp *controlPlane) (*Session, *fakeOutput) {
	player, out := newTestPlayer()
	return &Session{
		Player: player,
		Client: NewClient(cp.srv.URL, "test-token"),
		Log:    zerolog.Nop(),
	}, out
}

func TestSwitchStyleResumesSavedPosition(t *testing.T) {
	cp := newControlPlane(t)
	cp.addStyle(2, "Deep Focus", "https://cdn.example.com/deep-focus.mp3")
	cp.resumePosition = 42

	session, out := newTestSession(t, cp)

	require.NoError(t, session.SwitchStyle(context.Background(), 2, true))

	require.Len(t, out.loads, 1)
	assert.Equal(t, "https://cdn.example.com/deep-focus.mp3", out.loads[0])
	assert.Equal(t, 1, out.plays)

	// resume offset is deferred until the mix reports metadata
	out.emit(Event{Kind: EventLoaded, Duration: 600})
	require.Equal(t, 1, out.seekCount())
	assert.Equal(t, 42.0, out.seeks[0])

	snap := session.Player.Snapshot()
	require.NotNil(t, snap.StyleID)
	assert.Equal(t, 2, *snap.StyleID)
	assert.Equal(t, "Deep Focus", snap.StyleName)
}

func TestSwitchStyleSavesOutgoingPosition(t *testing.T) {
	cp := newControlPlane(t)
	cp.addStyle(2, "Deep Focus", "https://cdn.example.com/deep-focus.mp3")
	cp.addStyle(3, "Morning Jazz", "https://cdn.example.com/jazz.mp3")

	session, out := newTestSession(t, cp)
	require.NoError(t, session.SwitchStyle(context.Background(), 2, true))
	out.emit(Event{Kind: EventPlaying})
	out.emit(Event{Kind: EventTick, Position: 87, Duration: 600})

	require.NoError(t, session.SwitchStyle(context.Background(), 3, true))

	require.Len(t, cp.heartbeats, 1)
	assert.Equal(t, 87, cp.heartbeats[0].Position)
	assert.False(t, cp.heartbeats[0].IsPlaying, "outgoing style is saved as not playing")

	require.Len(t, cp.activities, 1)
	assert.Equal(t, "CHANGE_STYLE", cp.activities[0].Action)
	require.NotNil(t, cp.activities[0].Details)
	assert.Contains(t, *cp.activities[0].Details, `"to_style_id":3`)
	assert.Contains(t, *cp.activities[0].Details, `"from_style_id":2`)
}

func TestSwitchStyleAutoModeStartsFromZero(t *testing.T) {
	cp := newControlPlane(t)
	cp.addStyle(2, "Deep Focus", "https://cdn.example.com/deep-focus.mp3")
	cp.resumePosition = 42

	session, out := newTestSession(t, cp)
	require.NoError(t, session.SwitchStyle(context.Background(), 2, false))

	out.emit(Event{Kind: EventLoaded, Duration: 600})
	assert.Zero(t, out.seekCount(), "auto-mode switches start at 0")
}

func TestSwitchStyleRejectsMixlessStyle(t *testing.T) {
	cp := newControlPlane(t)
	cp.addStyle(5, "Draft Style", "")

	session, out := newTestSession(t, cp)
	err := session.SwitchStyle(context.Background(), 5, true)
	require.Error(t, err)
	assert.Empty(t, out.loads)
	assert.Nil(t, session.Player.Snapshot().StyleID)
}
