package worker

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"skillswap_22520060/internal/model"
	"skillswap_22520060/internal/queue"
)

func setupTestRedis(t *testing.T) *redis.Client {
	redisURL := os.Getenv("TEST_REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379"
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		t.Fatalf("Failed to parse Redis URL: %v", err)
	}

	// Use DB 1 for testing to avoid conflicts with dev data
	opts.DB = 1

	client := redis.NewClient(opts)

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis not available, skipping test: %v", err)
	}

	client.FlushDB(ctx)

	return client
}

func cleanupTestRedis(client *redis.Client) {
	ctx := context.Background()
	client.FlushDB(ctx)
	client.Close()
}

// TestNotificationRoundTrip publishes a domain event to the stream, consumes
// it through the group, and checks the handler turns it into the expected
// notification row.
func TestNotificationRoundTrip(t *testing.T) {
	client := setupTestRedis(t)
	defer cleanupTestRedis(client)

	ctx := context.Background()
	stream := queue.StreamNotifications
	group := "roundtrip_workers"

	publisher := queue.NewPublisher(client)
	consumer := queue.NewConsumer(client)
	if err := consumer.EnsureGroup(ctx, stream, group); err != nil {
		t.Fatalf("EnsureGroup failed: %v", err)
	}

	event := queue.NewSwapRequestEvent(queue.EventSwapRequestCreated, 1, 2, 10, "Python", "Spanish")
	if _, err := publisher.Publish(ctx, stream, event); err != nil {
		t.Fatalf("Publish failed: %v", err)
	}

	messages, err := consumer.Read(ctx, stream, group, "roundtrip_1", 10, 2*time.Second)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if len(messages) != 1 {
		t.Fatalf("got %d messages, want 1", len(messages))
	}

	got := messages[0].Event
	if got.Type != queue.EventSwapRequestCreated || got.RecipientID != 2 {
		t.Fatalf("event survived the stream wrong: %+v", got)
	}

	creator := &mockNotificationCreator{}
	handler := NewHandler(namedActor("Alice"), creator)
	if err := handler.HandleEvent(ctx, got); err != nil {
		t.Fatalf("HandleEvent failed: %v", err)
	}

	if len(creator.created) != 1 {
		t.Fatalf("got %d notifications, want 1", len(creator.created))
	}
	n := creator.created[0]
	if n.UserID != 2 {
		t.Errorf("notification recipient = %d, want 2", n.UserID)
	}
	if n.Type != model.NotificationTypeSwapRequest {
		t.Errorf("notification type = %q, want swap_request", n.Type)
	}
	if !strings.Contains(n.Body, "Alice") || !strings.Contains(n.Body, "Python") {
		t.Errorf("notification body = %q, want actor and skill mentioned", n.Body)
	}

	if err := consumer.Ack(ctx, stream, group, messages[0].ID); err != nil {
		t.Fatalf("Ack failed: %v", err)
	}

	// Nothing should be left pending for this consumer after the ack
	redisConsumer := consumer.(*queue.RedisConsumer)
	pending, err := redisConsumer.ReadPending(ctx, stream, group, "roundtrip_1", 10)
	if err != nil {
		t.Fatalf("ReadPending failed: %v", err)
	}
	if len(pending) != 0 {
		t.Errorf("got %d pending messages after ack, want 0", len(pending))
	}
}
