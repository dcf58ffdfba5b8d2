package pubsub

import (
	"context"

	"cloud.google.com/go/pubsub"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// New connects to Google Cloud Pub/Sub. Each event type is published to the
// topic "<topicPrefix>-<event type>".
func New(projectID, topicPrefix string) PubSubClient {
	ctx := context.Background()
	pubSubC, err := pubsub.NewClient(ctx, projectID)
	if err != nil {
		log.Fatalf("Failed to create client: %v", err)
	}
	teardown := func() {
		if err := pubSubC.Close(); err != nil {
			log.Error("Failed to close pubsub client", "error", err)
		}
	}

	return &client{
		client:      pubSubC,
		topicPrefix: topicPrefix,
		teardown:    teardown,
	}
}

// TopicName returns the broker topic for an event type.
func TopicName(prefix string, topic EventType) string {
	if prefix == "" {
		return string(topic)
	}
	return prefix + "-" + string(topic)
}

func (c *client) SendMessage(topic EventType, data any) error {
	ctx := context.Background()
	msgpackData, err := msgpack.Marshal(data)
	if err != nil {
		log.Error("MessagePack marshal error", "error", err)
		return err
	}
	name := TopicName(c.topicPrefix, topic)
	result := c.client.Topic(name).Publish(ctx, &pubsub.Message{
		Data:       msgpackData,
		Attributes: map[string]string{"event": string(topic)},
	})
	serverID, err := result.Get(ctx)
	if err != nil {
		log.Error("Failed to publish message", "error", err, "topic", name)
		return err
	}
	log.Debug("Published message", "topic", name, "serverID", serverID)
	return nil
}

func (c *client) ProcessMessage(data []byte, returnValue any) error {
	return decode(data, returnValue)
}

func (c *client) Close() {
	c.teardown()
}

func decode(data []byte, returnValue any) error {
	if err := msgpack.Unmarshal(data, returnValue); err != nil {
		log.Error("MessagePack unmarshal error", "error", err)
		return err
	}
	return nil
}
