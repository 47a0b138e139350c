package mqtt

import (
	"fmt"
	"log"
	"sync"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/sweeney/pill-reminder/internal/logic"
)

// bufferCapacity bounds the messages held while the broker is unreachable.
const bufferCapacity = 100

const publishTimeout = 5 * time.Second

// RealPublisher publishes to an actual MQTT broker.
// Messages published while disconnected are buffered and replayed on
// reconnection.
type RealPublisher struct {
	client paho.Client
	topic  string

	mu  sync.Mutex
	buf *ringBuffer
}

// NewRealPublisher creates a publisher for the given broker and starts
// connecting in the background. It never blocks on an unreachable broker.
func NewRealPublisher(broker, clientID string) *RealPublisher {
	p := &RealPublisher{
		topic: Topic,
		buf:   newRingBuffer(bufferCapacity),
	}

	will, _ := FormatSystemPayload(SystemEvent{
		Event:  "SHUTDOWN",
		Reason: "MQTT_DISCONNECT",
	})

	opts := paho.NewClientOptions().
		AddBroker(broker).
		SetClientID(clientID).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(5*time.Second).
		SetWill(TopicSystem, string(will), 1, true).
		SetOnConnectHandler(func(paho.Client) {
			log.Printf("mqtt: connected to %s", broker)
			p.flush()
		}).
		SetConnectionLostHandler(func(_ paho.Client, err error) {
			log.Printf("mqtt: connection lost: %v", err)
		})

	p.client = paho.NewClient(opts)
	p.client.Connect()
	return p
}

// newPublisher wraps an existing client; used by tests.
func newPublisher(client paho.Client) *RealPublisher {
	return &RealPublisher{
		client: client,
		topic:  Topic,
		buf:    newRingBuffer(bufferCapacity),
	}
}

// Publish sends a pill box event to the MQTT broker.
func (p *RealPublisher) Publish(event logic.Event) error {
	payload, err := FormatPayload(event)
	if err != nil {
		return fmt.Errorf("format payload: %w", err)
	}

	// QoS 0 (at-most-once), not retained
	return p.send(bufferedMsg{topic: p.topic, payload: payload})
}

// PublishSystem sends a system lifecycle event to the MQTT broker.
func (p *RealPublisher) PublishSystem(event SystemEvent) error {
	payload, err := FormatSystemPayload(event)
	if err != nil {
		return fmt.Errorf("format system payload: %w", err)
	}

	// QoS 1 (at-least-once) for lifecycle events - we want to ensure delivery
	return p.send(bufferedMsg{topic: TopicSystem, payload: payload, qos: 1, retained: event.Retained})
}

// IsConnected reports whether the client currently holds a broker connection.
func (p *RealPublisher) IsConnected() bool {
	return p.client.IsConnected()
}

// Close disconnects from the broker.
func (p *RealPublisher) Close() error {
	p.client.Disconnect(1000) // 1 second timeout
	return nil
}

func (p *RealPublisher) send(msg bufferedMsg) error {
	p.mu.Lock()
	if !p.client.IsConnected() {
		p.buf.push(msg)
		p.mu.Unlock()
		return nil
	}
	p.mu.Unlock()
	return p.publish(msg)
}

// flush replays buffered messages in order.
func (p *RealPublisher) flush() {
	p.mu.Lock()
	pending, dropped := p.buf.drainAll()
	p.mu.Unlock()

	if dropped > 0 {
		log.Printf("mqtt: %d messages dropped while disconnected", dropped)
	}
	if len(pending) > 0 {
		log.Printf("mqtt: replaying %d buffered messages", len(pending))
	}
	for _, msg := range pending {
		if err := p.publish(msg); err != nil {
			log.Printf("mqtt: replay failed: %v", err)
		}
	}
}

// publish hands msg to the client without waiting for the broker. A token
// that has already completed reports its error directly; otherwise the
// outcome is logged once it settles.
func (p *RealPublisher) publish(msg bufferedMsg) error {
	token := p.client.Publish(msg.topic, msg.qos, msg.retained, msg.payload)
	select {
	case <-token.Done():
		if err := token.Error(); err != nil {
			return fmt.Errorf("publish: %w", err)
		}
		return nil
	default:
	}
	go awaitPublish(msg.topic, token)
	return nil
}

func awaitPublish(topic string, token paho.Token) {
	if !token.WaitTimeout(publishTimeout) {
		log.Printf("mqtt: publish to %s timed out", topic)
		return
	}
	if err := token.Error(); err != nil {
		log.Printf("mqtt: publish to %s: %v", topic, err)
	}
}
