package pubsub

import (
	"context"

	"cloud.google.com/go/pubsub"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// New connects to Cloud Pub/Sub for the given project.
func New(projectID string) PubSubClient {
	ctx := context.Background()
	psClient, err := pubsub.NewClient(ctx, projectID)
	if err != nil {
		log.Fatalf("Failed to create pubsub client: %v", err)
	}

	return &client{
		client:   psClient,
		teardown: func() { psClient.Close() },
	}
}

// SendMessage publishes an event on the topic named after its type. Payloads
// travel as msgpack.
func (c *client) SendMessage(topic EventType, data any) error {
	ctx := context.Background()
	payload, err := msgpack.Marshal(data)
	if err != nil {
		log.Error("Failed to encode event payload", "error", err, "topic", topic)
		return err
	}

	result := c.client.Topic(string(topic)).Publish(ctx, &pubsub.Message{Data: payload})
	serverID, err := result.Get(ctx)
	if err != nil {
		log.Error("Failed to publish event", "error", err, "topic", topic)
		return err
	}
	log.Info("Published event", "serverID", serverID, "topic", topic)
	return nil
}

// ProcessMessage decodes a received msgpack payload into returnValue.
func (c *client) ProcessMessage(data []byte, returnValue any) error {
	if err := msgpack.Unmarshal(data, returnValue); err != nil {
		log.Error("Failed to decode event payload", "error", err)
		return err
	}
	return nil
}
