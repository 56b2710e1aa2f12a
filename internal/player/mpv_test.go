package player

import (
	"bufio"
	"encoding/json"
	"net"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeIPCServer speaks just enough of the mpv JSON IPC protocol for the
// client: it acknowledges every command with "success" and lets tests push
// event lines at the connection.
type fakeIPCServer struct {
	ln    net.Listener
	conns chan net.Conn
}

func startFakeIPCServer(t *testing.T) (*fakeIPCServer, string) {
	t.Helper()
	socket := filepath.Join(t.TempDir(), "mpv.sock")
	ln, err := net.Listen("unix", socket)
	require.NoError(t, err)

	s := &fakeIPCServer{ln: ln, conns: make(chan net.Conn, 1)}
	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			s.conns <- conn
			go s.serve(conn)
		}
	}()
	t.Cleanup(func() { _ = ln.Close() })
	return s, socket
}

func (s *fakeIPCServer) serve(conn net.Conn) {
	scanner := bufio.NewScanner(conn)
	for scanner.Scan() {
		var req struct {
			RequestID int `json:"request_id"`
		}
		if json.Unmarshal(scanner.Bytes(), &req) != nil {
			continue
		}
		reply, _ := json.Marshal(map[string]any{
			"request_id": req.RequestID,
			"error":      "success",
		})
		_, _ = conn.Write(append(reply, '\n'))
	}
}

func writeLine(t *testing.T, conn net.Conn, line string) {
	t.Helper()
	_, err := conn.Write([]byte(line + "\n"))
	require.NoError(t, err)
}

func waitEvent(t *testing.T, events chan Event) Event {
	t.Helper()
	select {
	case ev := <-events:
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
		return Event{}
	}
}

func TestMPVForwardsPlaybackEvents(t *testing.T) {
	srv, socket := startFakeIPCServer(t)
	m, err := DialMPV(socket)
	require.NoError(t, err)
	defer m.Close()

	events := make(chan Event, 16)
	m.SetHandler(func(ev Event) { events <- ev })
	conn := <-srv.conns

	writeLine(t, conn, `{"event":"property-change","name":"pause","data":false}`)
	assert.Equal(t, EventPlaying, waitEvent(t, events).Kind)

	writeLine(t, conn, `{"event":"property-change","name":"pause","data":true}`)
	assert.Equal(t, EventPaused, waitEvent(t, events).Kind)

	writeLine(t, conn, `{"event":"property-change","name":"duration","data":300}`)
	writeLine(t, conn, `{"event":"property-change","name":"time-pos","data":12.5}`)
	tick := waitEvent(t, events)
	assert.Equal(t, EventTick, tick.Kind)
	assert.Equal(t, 12.5, tick.Position)
	assert.Equal(t, 300.0, tick.Duration)

	writeLine(t, conn, `{"event":"file-loaded"}`)
	loaded := waitEvent(t, events)
	assert.Equal(t, EventLoaded, loaded.Kind)
	assert.Equal(t, 300.0, loaded.Duration)

	assert.Equal(t, 12.5, m.Position())
	assert.Equal(t, 300.0, m.Duration())
}

// Close and a dropped connection race to the same shutdown path. Neither
// order may panic, and a second Close must stay safe.
func TestMPVCloseSafeOnConnectionLoss(t *testing.T) {
	srv, socket := startFakeIPCServer(t)
	m, err := DialMPV(socket)
	require.NoError(t, err)
	conn := <-srv.conns

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		_ = conn.Close()
	}()
	go func() {
		defer wg.Done()
		assert.NotPanics(t, func() { _ = m.Close() })
	}()
	wg.Wait()

	assert.NotPanics(t, func() { _ = m.Close() })
}
