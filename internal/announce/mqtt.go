package announce

import (
	"fmt"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
)

// MQTTPublisher publishes to a real broker.
type MQTTPublisher struct {
	client  paho.Client
	timeout time.Duration
}

// NewMQTTPublisher connects to broker. The client reconnects on its own after
// the first successful connection.
func NewMQTTPublisher(broker, clientID string) (*MQTTPublisher, error) {
	if clientID == "" {
		clientID = DefaultTopicPrefix
	}
	opts := paho.NewClientOptions().
		AddBroker(broker).
		SetClientID(clientID).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(5 * time.Second)

	client := paho.NewClient(opts)
	if err := connect(client, 10*time.Second); err != nil {
		return nil, err
	}
	return &MQTTPublisher{client: client, timeout: 5 * time.Second}, nil
}

// connect waits for the first connection. On failure the client is
// disconnected so its retry loop stops.
func connect(client paho.Client, timeout time.Duration) error {
	token := client.Connect()
	if !token.WaitTimeout(timeout) {
		client.Disconnect(0)
		return fmt.Errorf("connection timeout")
	}
	if err := token.Error(); err != nil {
		client.Disconnect(0)
		return fmt.Errorf("connect to broker: %w", err)
	}
	return nil
}

// Publish sends payload with QoS 1.
func (p *MQTTPublisher) Publish(topic string, payload []byte, retained bool) error {
	token := p.client.Publish(topic, 1, retained, payload)
	if !token.WaitTimeout(p.timeout) {
		return fmt.Errorf("publish %s: timeout", topic)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish %s: %w", topic, err)
	}
	return nil
}

// Close disconnects, waiting up to a second for in-flight messages.
func (p *MQTTPublisher) Close() error {
	p.client.Disconnect(1000)
	return nil
}
