// Package broadcast mirrors played frames to an MQTT broker so a remote
// display can follow the editor's playback.
package broadcast

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"
	"github.com/ivlev/asciimator/internal/animation"
	"github.com/ivlev/asciimator/internal/config"
)

const publishTimeout = 2 * time.Second

type client interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
	Disconnect(quiesce uint)
}

// Publisher sends frames as JSON messages to a topic.
type Publisher struct {
	client client
	topic  string
	qos    byte
}

// Message is the payload published for every frame.
type Message struct {
	Index   int      `json:"index"`
	Total   int      `json:"total"`
	Content []string `json:"content"`
}

// Connect dials the broker in cfg.
func Connect(cfg config.MqttConfig) (*Publisher, error) {
	options := mqtt.NewClientOptions().
		AddBroker(cfg.URL).
		SetClientID("asciimator-" + uuid.NewString()).
		SetUsername(cfg.Username).
		SetPassword(cfg.Password).
		SetKeepAlive(30 * time.Second).
		SetPingTimeout(5 * time.Second).
		SetConnectTimeout(5 * time.Second)
	c := mqtt.NewClient(options)

	token := c.Connect()
	if !token.WaitTimeout(10 * time.Second) {
		return nil, fmt.Errorf("connect %s: timed out", cfg.URL)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("connect %s: %w", cfg.URL, err)
	}
	log.Printf("[*] MQTT connected: %s -> %s", cfg.URL, cfg.Topic)

	return &Publisher{client: c, topic: cfg.Topic, qos: cfg.QoS}, nil
}

// Encode builds the message payload for a frame.
func Encode(index, total int, frame animation.Frame) ([]byte, error) {
	return json.Marshal(Message{Index: index, Total: total, Content: frame.Lines()})
}

// ShowFrame publishes the frame and waits for the broker to accept it.
func (p *Publisher) ShowFrame(index, total int, frame animation.Frame) error {
	payload, err := Encode(index, total, frame)
	if err != nil {
		return err
	}
	token := p.client.Publish(p.topic, p.qos, false, payload)
	if !token.WaitTimeout(publishTimeout) {
		return fmt.Errorf("publish to %s: timed out", p.topic)
	}
	return token.Error()
}

// Close disconnects from the broker.
func (p *Publisher) Close() {
	p.client.Disconnect(250)
}
