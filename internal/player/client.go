package player

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/auralis-io/auralis/internal/http/api/terminal/packets"
)

// Client talks to the control plane's terminal API. Heartbeats and activity
// emissions are best-effort; the playback machine never blocks on them.
type Client struct {
	BaseURL string
	Token   string
	HTTP    *http.Client
}

func NewClient(baseURL, token string) *Client {
	return &Client{
		BaseURL: baseURL,
		Token:   token,
		HTTP:    &http.Client{Timeout: 8 * time.Second},
	}
}

// Pair exchanges a pairing code for a terminal token. Called once at first
// boot; the token is stored alongside prefs.
func (c *Client) Pair(ctx context.Context, code, deviceID string) (*packets.PairResponse, error) {
	var resp packets.PairResponse
	err := c.do(ctx, http.MethodPost, "/api/terminal/pair",
		packets.PairRequest{Code: code, DeviceID: deviceID}, &resp)
	if err != nil {
		return nil, err
	}
	c.Token = resp.Token
	return &resp, nil
}

// SavePosition is the heartbeat POST.
func (c *Client) SavePosition(ctx context.Context, position int, isPlaying bool) error {
	var resp packets.HeartbeatResponse
	return c.do(ctx, http.MethodPost, "/api/terminal/heartbeat",
		packets.HeartbeatRequest{Position: position, IsPlaying: isPlaying}, &resp)
}

// ChangeStyle makes styleID active and returns the style plus the resume
// position previously saved for it.
func (c *Client) ChangeStyle(ctx context.Context, styleID int) (*packets.ChangeStyleResponse, error) {
	var resp packets.ChangeStyleResponse
	err := c.do(ctx, http.MethodPost, "/api/terminal/style",
		packets.ChangeStyleRequest{StyleID: styleID}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Position fetches the saved resume position for one style, used at cold
// start before any heartbeat has gone out.
func (c *Client) Position(ctx context.Context, styleID int) (int, error) {
	var resp packets.PositionResponse
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/terminal/styles/%d/position", styleID), nil, &resp)
	if err != nil {
		return 0, err
	}
	return resp.Position, nil
}

// CurrentProgram asks the resolver which style should be playing now. A nil
// style means no schedule entry matches and the caller keeps what it has.
func (c *Client) CurrentProgram(ctx context.Context) (*packets.StyleResponse, error) {
	var resp packets.ProgramResponse
	err := c.do(ctx, http.MethodGet, "/api/terminal/program", nil, &resp)
	if err != nil {
		return nil, err
	}
	return resp.Style, nil
}

// Activity emits an audit event. Failures are the caller's to ignore.
func (c *Client) Activity(ctx context.Context, action string, details *string) error {
	var resp map[string]any
	return c.do(ctx, http.MethodPost, "/api/terminal/activity",
		packets.ActivityRequest{Action: action, Details: details}, &resp)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var apiErr struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		if apiErr.Error == "" {
			apiErr.Error = resp.Status
		}
		return fmt.Errorf("%s %s: %s", method, path, apiErr.Error)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
