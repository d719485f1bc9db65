package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"cloud.google.com/go/pubsub"
	"google.golang.org/api/option"
)

// Broadcaster is the room broadcast collaborator. Delivery is fire-and-forget
// and at-most-once; room membership is managed by the subscriber side.
type Broadcaster interface {
	Publish(ctx context.Context, roomID, event string, payload interface{}) error
}

// envelope is the wire shape published to the room topic
type envelope struct {
	RoomID    string      `json:"room_id"`
	Event     string      `json:"event"`
	Payload   interface{} `json:"payload"`
	Timestamp time.Time   `json:"timestamp"`
}

// PubSubBroadcaster publishes room events to a Cloud Pub/Sub topic
type PubSubBroadcaster struct {
	client *pubsub.Client
	topic  *pubsub.Topic
}

// NewPubSubBroadcaster creates a broadcaster publishing to the given topic
func NewPubSubBroadcaster(projectID, topicName, credentialsFile string) (*PubSubBroadcaster, error) {
	ctx := context.Background()

	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	client, err := pubsub.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create pubsub client: %w", err)
	}

	log.Printf("[PubSub] Broadcaster initialized on topic: %s", topicName)
	return &PubSubBroadcaster{
		client: client,
		topic:  client.Topic(topicName),
	}, nil
}

// Publish sends one room event. Publish errors are returned but callers are
// expected to treat them as best-effort: a lost broadcast is an accepted
// degradation, never a reason to fail message delivery.
func (b *PubSubBroadcaster) Publish(ctx context.Context, roomID, event string, payload interface{}) error {
	data, err := json.Marshal(envelope{
		RoomID:    roomID,
		Event:     event,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal room event: %w", err)
	}

	result := b.topic.Publish(ctx, &pubsub.Message{
		Data: data,
		Attributes: map[string]string{
			"room_id": roomID,
			"event":   event,
		},
	})
	if _, err := result.Get(ctx); err != nil {
		return fmt.Errorf("failed to publish room event: %w", err)
	}
	return nil
}

// Close releases the underlying pubsub client
func (b *PubSubBroadcaster) Close() error {
	b.topic.Stop()
	return b.client.Close()
}

// NoopBroadcaster is used when no Pub/Sub project is configured
type NoopBroadcaster struct{}

func (NoopBroadcaster) Publish(ctx context.Context, roomID, event string, payload interface{}) error {
	return nil
}
