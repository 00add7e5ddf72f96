package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/aid4sure/VeganEcosystem/internal/infrastructure/config"
)

func TestTopicWithPrefix(t *testing.T) {
	tests := []struct {
		prefix, topic, want string
	}{
		{"", TopicGiftCardIssued, "gift-cards/issued"},
		{"vegan", TopicReservationCreated, "vegan/reservations/created"},
		{"/vegan/prod/", TopicReservationCancelled, "vegan/prod/reservations/cancelled"},
	}
	for _, tt := range tests {
		if got := TopicWithPrefix(tt.prefix, tt.topic); got != tt.want {
			t.Errorf("TopicWithPrefix(%q, %q) = %q, want %q", tt.prefix, tt.topic, got, tt.want)
		}
	}
}

func TestNewEventPublisherWithoutBroker(t *testing.T) {
	publisher := NewEventPublisher(config.Default())
	if _, ok := publisher.(NoopEventPublisher); !ok {
		t.Fatalf("publisher = %T, want NoopEventPublisher", publisher)
	}
	if err := publisher.Publish(context.Background(), TopicGiftCardIssued, nil); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	publisher.Close()

	// nil publisher 不应导致 panic
	publishEvent(context.Background(), nil, TopicGiftCardIssued, nil)
}

// blockingPublisher 在 release 关闭前阻塞每次发布
type blockingPublisher struct {
	started chan string
	release chan struct{}

	mu     sync.Mutex
	topics []string
	closed bool
}

func newBlockingPublisher() *blockingPublisher {
	return &blockingPublisher{started: make(chan string, 8), release: make(chan struct{})}
}

func (p *blockingPublisher) Publish(ctx context.Context, topic string, payload interface{}) error {
	p.started <- topic
	select {
	case <-p.release:
	case <-ctx.Done():
		return ctx.Err()
	}
	p.mu.Lock()
	p.topics = append(p.topics, topic)
	p.mu.Unlock()
	return nil
}

func (p *blockingPublisher) Close() {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()
}

func TestAsyncEventPublisherDoesNotWaitForBroker(t *testing.T) {
	ctx := context.Background()
	next := newBlockingPublisher()
	publisher := NewAsyncEventPublisher(next, 1, time.Minute)

	if err := publisher.Publish(ctx, TopicGiftCardIssued, nil); err != nil {
		t.Fatalf("first Publish: %v", err)
	}
	select {
	case <-next.started:
	case <-time.After(time.Second):
		t.Fatal("event was not handed to the broker")
	}

	// 下游阻塞时第二个事件进入队列，第三个因队列已满被丢弃
	if err := publisher.Publish(ctx, TopicGiftCardRedeemed, nil); err != nil {
		t.Fatalf("second Publish: %v", err)
	}
	if err := publisher.Publish(ctx, TopicReservationCreated, nil); err == nil {
		t.Fatal("expected a full queue to reject the event")
	}

	close(next.release)
	publisher.Close()

	next.mu.Lock()
	defer next.mu.Unlock()
	if len(next.topics) != 2 || next.topics[0] != TopicGiftCardIssued || next.topics[1] != TopicGiftCardRedeemed {
		t.Fatalf("published topics = %v", next.topics)
	}
	if !next.closed {
		t.Fatal("Close should close the downstream publisher")
	}
}

func TestAsyncEventPublisherRejectsAfterClose(t *testing.T) {
	publisher := NewAsyncEventPublisher(NoopEventPublisher{}, 4, time.Second)
	publisher.Close()
	publisher.Close()

	if err := publisher.Publish(context.Background(), TopicGiftCardIssued, nil); err == nil {
		t.Fatal("expected Publish after Close to fail")
	}
}

func TestAsyncEventPublisherTimesOutSlowBroker(t *testing.T) {
	next := newBlockingPublisher()
	publisher := NewAsyncEventPublisher(next, 4, 10*time.Millisecond)

	if err := publisher.Publish(context.Background(), TopicReservationCancelled, nil); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	// 不释放 release，发送协程应在超时后继续并允许 Close 返回
	done := make(chan struct{})
	go func() {
		publisher.Close()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Close blocked on a slow broker")
	}
}
