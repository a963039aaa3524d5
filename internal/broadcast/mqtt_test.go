package broadcast

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/ivlev/asciimator/internal/animation"
)

type fakeToken struct {
	mqtt.Token
	err     error
	timeout bool
}

func (t *fakeToken) Wait() bool                       { return !t.timeout }
func (t *fakeToken) WaitTimeout(d time.Duration) bool { return !t.timeout }
func (t *fakeToken) Error() error                     { return t.err }

type publish struct {
	topic   string
	qos     byte
	payload []byte
}

type fakeClient struct {
	published    []publish
	token        *fakeToken
	disconnected bool
}

func (c *fakeClient) Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token {
	c.published = append(c.published, publish{topic: topic, qos: qos, payload: payload.([]byte)})
	return c.token
}

func (c *fakeClient) Disconnect(quiesce uint) {
	c.disconnected = true
}

func TestShowFramePublishes(t *testing.T) {
	fc := &fakeClient{token: &fakeToken{}}
	p := &Publisher{client: fc, topic: "asciimator/frames", qos: 1}

	if err := p.ShowFrame(1, 2, animation.NewFrame("  o  ", " /|\\ ")); err != nil {
		t.Fatalf("ShowFrame failed: %v", err)
	}
	if len(fc.published) != 1 {
		t.Fatalf("Expected 1 publish, got %d", len(fc.published))
	}

	got := fc.published[0]
	if got.topic != "asciimator/frames" || got.qos != 1 {
		t.Errorf("Unexpected topic/qos: %s/%d", got.topic, got.qos)
	}
	var msg Message
	if err := json.Unmarshal(got.payload, &msg); err != nil {
		t.Fatalf("Payload is not JSON: %v", err)
	}
	want := Message{Index: 1, Total: 2, Content: []string{"  o  ", " /|\\ "}}
	if !reflect.DeepEqual(msg, want) {
		t.Errorf("Expected %+v, got %+v", want, msg)
	}

	p.Close()
	if !fc.disconnected {
		t.Error("Close should disconnect")
	}
}

func TestShowFrameErrors(t *testing.T) {
	errBroker := errors.New("not authorized")

	p := &Publisher{client: &fakeClient{token: &fakeToken{err: errBroker}}, topic: "t"}
	if err := p.ShowFrame(0, 1, animation.NewFrame("x")); !errors.Is(err, errBroker) {
		t.Errorf("Expected broker error, got %v", err)
	}

	p = &Publisher{client: &fakeClient{token: &fakeToken{timeout: true}}, topic: "t"}
	if err := p.ShowFrame(0, 1, animation.NewFrame("x")); err == nil {
		t.Error("Expected timeout error")
	}
}
