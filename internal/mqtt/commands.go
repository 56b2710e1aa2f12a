// Package mqtt carries remote-control commands from the control plane to
// terminal players. One topic per terminal; payloads are small JSON commands.
package mqtt

import (
	"encoding/json"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog/log"
)

// Command actions understood by the player daemon.
const (
	CmdChangeStyle = "change_style"
	CmdSetVolume   = "set_volume"
	CmdSetAutoMode = "set_auto_mode"
	CmdStop        = "stop"
)

// Command is the wire format on terminal command topics.
type Command struct {
	Action   string `json:"action"`
	StyleID  int    `json:"style_id,omitempty"`
	Volume   int    `json:"volume,omitempty"`
	Enabled  bool   `json:"enabled,omitempty"`
	IssuedAt int64  `json:"issued_at"`
}

// CommandTopic returns the command topic for one terminal.
func CommandTopic(terminalID int) string {
	return fmt.Sprintf("terminal/%d/commands", terminalID)
}

// Publisher sends commands to terminals. A nil Publisher drops everything,
// so the API works when no broker is configured.
type Publisher struct {
	client mqtt.Client
}

// NewPublisher connects to the broker and returns a publisher.
func NewPublisher(brokerURL, clientID string) (*Publisher, error) {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(brokerURL)
	opts.SetClientID(clientID)
	opts.SetAutoReconnect(true)
	opts.OnConnect = func(mqtt.Client) {
		log.Info().Str("broker", brokerURL).Msg("connected to MQTT broker")
	}
	opts.OnConnectionLost = func(_ mqtt.Client, err error) {
		log.Warn().Err(err).Msg("MQTT connection lost")
	}

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("failed to connect to MQTT broker: %w", token.Error())
	}
	return &Publisher{client: client}, nil
}

// Send publishes a command to one terminal's topic at QoS 1.
func (p *Publisher) Send(terminalID int, cmd Command) error {
	if p == nil {
		return nil
	}
	cmd.IssuedAt = time.Now().Unix()
	payload, err := json.Marshal(cmd)
	if err != nil {
		return err
	}
	token := p.client.Publish(CommandTopic(terminalID), 1, false, payload)
	token.Wait()
	if token.Error() != nil {
		return fmt.Errorf("failed to publish command to terminal %d: %w", terminalID, token.Error())
	}
	return nil
}

// Close disconnects from the broker.
func (p *Publisher) Close() {
	if p == nil {
		return
	}
	p.client.Disconnect(250)
}

// Subscribe attaches a handler to one terminal's command topic and returns
// the connected client so the caller can disconnect on teardown.
func Subscribe(brokerURL, clientID string, terminalID int, handler func(Command)) (mqtt.Client, error) {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(brokerURL)
	opts.SetClientID(clientID)
	opts.SetAutoReconnect(true)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("failed to connect to MQTT broker: %w", token.Error())
	}

	topic := CommandTopic(terminalID)
	token := client.Subscribe(topic, 1, func(_ mqtt.Client, msg mqtt.Message) {
		var cmd Command
		if err := json.Unmarshal(msg.Payload(), &cmd); err != nil {
			log.Warn().Err(err).Str("topic", topic).Msg("dropping malformed command")
			return
		}
		handler(cmd)
	})
	if token.Wait() && token.Error() != nil {
		client.Disconnect(250)
		return nil, fmt.Errorf("failed to subscribe to %s: %w", topic, token.Error())
	}
	return client, nil
}
