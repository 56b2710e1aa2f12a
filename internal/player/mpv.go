package player

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"os/exec"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// MPV drives a long-lived mpv process over its JSON IPC socket. It is the
// production Output: one process, one loaded source, loop-forever playback.
//
// mpv accepts play before metadata is ready; readiness surfaces as the
// file-loaded event, which is forwarded as EventLoaded so the state machine
// can apply its deferred resume seek.
type MPV struct {
	mu      sync.Mutex
	conn    net.Conn
	reqID   int
	pending map[int]chan mpvResponse

	handler  func(Event)
	position float64
	duration float64

	events chan Event
	done   chan struct{}
	cmd    *exec.Cmd
}

type mpvResponse struct {
	Error string `json:"error"`
	Data  any    `json:"data"`
}

type mpvMessage struct {
	Event     string  `json:"event"`
	Name      string  `json:"name"`
	Data      any     `json:"data"`
	RequestID *int    `json:"request_id"`
	Error     string  `json:"error"`
	Reason    *string `json:"reason"`
}

// StartMPV launches mpv with its IPC server on socketPath and connects to
// it. The process is audio-only and idles until a mix is loaded.
func StartMPV(binary, socketPath string) (*MPV, error) {
	if binary == "" {
		binary = "mpv"
	}
	cmd := exec.Command(binary,
		"--idle=yes",
		"--no-video",
		"--no-terminal",
		"--input-ipc-server="+socketPath,
	)
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start mpv: %w", err)
	}

	m, err := DialMPV(socketPath)
	if err != nil {
		_ = cmd.Process.Kill()
		return nil, err
	}
	m.cmd = cmd
	return m, nil
}

// DialMPV connects to an already-running mpv IPC socket, retrying briefly
// while the socket appears.
func DialMPV(socketPath string) (*MPV, error) {
	var conn net.Conn
	var err error
	for attempt := 0; attempt < 20; attempt++ {
		conn, err = net.Dial("unix", socketPath)
		if err == nil {
			break
		}
		time.Sleep(250 * time.Millisecond)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to reach mpv socket %s: %w", socketPath, err)
	}

	m := &MPV{
		conn:    conn,
		pending: make(map[int]chan mpvResponse),
		events:  make(chan Event, 64),
		done:    make(chan struct{}),
	}
	go m.readLoop()
	go m.dispatchLoop()

	for i, prop := range []string{"time-pos", "duration", "pause"} {
		if _, err := m.command("observe_property", i+1, prop); err != nil {
			_ = m.Close()
			return nil, fmt.Errorf("failed to observe %s: %w", prop, err)
		}
	}
	return m, nil
}

func (m *MPV) SetHandler(fn func(Event)) {
	m.mu.Lock()
	m.handler = fn
	m.mu.Unlock()
}

func (m *MPV) Load(url string) error {
	// hold the new source paused; TogglePlay decides when sound starts
	if _, err := m.command("set_property", "pause", true); err != nil {
		return err
	}
	if _, err := m.command("loadfile", url, "replace"); err != nil {
		return err
	}
	_, err := m.command("set_property", "loop-file", "inf")
	return err
}

func (m *MPV) Play() error {
	_, err := m.command("set_property", "pause", false)
	return err
}

func (m *MPV) Pause() error {
	_, err := m.command("set_property", "pause", true)
	return err
}

func (m *MPV) Seek(seconds float64) error {
	_, err := m.command("set_property", "time-pos", seconds)
	return err
}

func (m *MPV) SetVolume(v float64) error {
	_, err := m.command("set_property", "volume", v*100)
	return err
}

func (m *MPV) Position() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.position
}

func (m *MPV) Duration() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.duration
}

func (m *MPV) Close() error {
	m.shutdown()
	m.mu.Lock()
	conn := m.conn
	m.mu.Unlock()

	var err error
	if conn != nil {
		err = conn.Close()
	}
	if m.cmd != nil && m.cmd.Process != nil {
		_ = m.cmd.Process.Kill()
		_ = m.cmd.Wait()
	}
	return err
}

// command sends one IPC command and waits for its reply. Replies arrive on
// the read loop's goroutine, so waiting here cannot deadlock.
func (m *MPV) command(args ...any) (mpvResponse, error) {
	m.mu.Lock()
	m.reqID++
	id := m.reqID
	ch := make(chan mpvResponse, 1)
	m.pending[id] = ch

	payload, err := json.Marshal(map[string]any{
		"command":    args,
		"request_id": id,
	})
	if err != nil {
		delete(m.pending, id)
		m.mu.Unlock()
		return mpvResponse{}, err
	}
	_, err = m.conn.Write(append(payload, '\n'))
	m.mu.Unlock()
	if err != nil {
		m.dropPending(id)
		return mpvResponse{}, fmt.Errorf("mpv write failed: %w", err)
	}

	select {
	case resp := <-ch:
		if resp.Error != "" && resp.Error != "success" {
			return resp, fmt.Errorf("mpv: %s", resp.Error)
		}
		return resp, nil
	case <-time.After(3 * time.Second):
		m.dropPending(id)
		return mpvResponse{}, fmt.Errorf("mpv command timed out")
	case <-m.done:
		return mpvResponse{}, fmt.Errorf("mpv connection closed")
	}
}

func (m *MPV) dropPending(id int) {
	m.mu.Lock()
	delete(m.pending, id)
	m.mu.Unlock()
}

func (m *MPV) readLoop() {
	scanner := bufio.NewScanner(m.conn)
	scanner.Buffer(make([]byte, 64*1024), 64*1024)
	for scanner.Scan() {
		var msg mpvMessage
		if err := json.Unmarshal(scanner.Bytes(), &msg); err != nil {
			log.Warn().Err(err).Msg("mpv: dropping unparseable IPC line")
			continue
		}

		if msg.RequestID != nil {
			m.mu.Lock()
			ch, ok := m.pending[*msg.RequestID]
			if ok {
				delete(m.pending, *msg.RequestID)
			}
			m.mu.Unlock()
			if ok {
				ch <- mpvResponse{Error: msg.Error, Data: msg.Data}
			}
			continue
		}

		m.handleIPCEvent(msg)
	}

	if m.shutdown() {
		log.Warn().Msg("mpv IPC connection lost")
	}
}

// shutdown closes the done channel exactly once, no matter how many of the
// read loop and Close race to it. Reports whether this call was the one
// that closed it.
func (m *MPV) shutdown() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	select {
	case <-m.done:
		return false
	default:
		close(m.done)
		return true
	}
}

func (m *MPV) handleIPCEvent(msg mpvMessage) {
	switch msg.Event {
	case "file-loaded":
		m.mu.Lock()
		dur := m.duration
		m.mu.Unlock()
		m.emit(Event{Kind: EventLoaded, Duration: dur})
	case "property-change":
		m.handlePropertyChange(msg)
	}
}

func (m *MPV) handlePropertyChange(msg mpvMessage) {
	switch msg.Name {
	case "pause":
		paused, ok := msg.Data.(bool)
		if !ok {
			return
		}
		if paused {
			m.emit(Event{Kind: EventPaused})
		} else {
			m.emit(Event{Kind: EventPlaying})
		}
	case "time-pos":
		pos, ok := msg.Data.(float64)
		if !ok {
			return
		}
		m.mu.Lock()
		m.position = pos
		dur := m.duration
		m.mu.Unlock()
		m.emit(Event{Kind: EventTick, Position: pos, Duration: dur})
	case "duration":
		dur, ok := msg.Data.(float64)
		if !ok {
			return
		}
		m.mu.Lock()
		m.duration = dur
		m.mu.Unlock()
	}
}

// emit queues an event for the dispatch goroutine. The queue is bounded; if
// a slow handler falls behind, ticks are dropped rather than blocking the
// IPC read loop.
func (m *MPV) emit(ev Event) {
	select {
	case m.events <- ev:
	default:
		log.Debug().Int("kind", int(ev.Kind)).Msg("mpv: event queue full, dropping")
	}
}

func (m *MPV) dispatchLoop() {
	for {
		select {
		case <-m.done:
			return
		case ev := <-m.events:
			m.mu.Lock()
			handler := m.handler
			m.mu.Unlock()
			if handler != nil {
				handler(ev)
			}
		}
	}
}
