package evolution

import (
	"context"
	"fmt"
	"sync"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"

	"portfoliotracker/internal/domain"
)

// Feed opens push-based subscriptions to one portfolio's evolution
// document. Each subscription delivers whole-document replacement
// snapshots, never incremental diffs.
type Feed interface {
	Subscribe(ctx context.Context, portfolioID uuid.UUID) (*Subscription, error)
}

// Subscription is a lazy, unbounded, non-restartable snapshot sequence.
// Snapshots closes after Cancel with no further deliveries; a value on
// Errs means the underlying channel failed and the sequence is over.
type Subscription struct {
	Snapshots <-chan []byte
	Errs      <-chan error

	cancelOnce sync.Once
	cancel     func()
}

func (s *Subscription) Cancel() {
	s.cancelOnce.Do(s.cancel)
}

// DocumentKey is both the storage key and the pub/sub channel carrying a
// portfolio's evolution document.
func DocumentKey(portfolioID uuid.UUID) string {
	return "evolution:" + portfolioID.String()
}

type redisFeed struct {
	client *redis.Client
}

func NewRedisFeed(client *redis.Client) Feed {
	return redisFeed{client: client}
}

func (f redisFeed) Subscribe(ctx context.Context, portfolioID uuid.UUID) (*Subscription, error) {
	key := DocumentKey(portfolioID)

	subCtx, cancel := context.WithCancel(ctx)
	pubsub := f.client.Subscribe(subCtx, key)
	if _, err := pubsub.Receive(subCtx); err != nil {
		cancel()
		_ = pubsub.Close()
		return nil, fmt.Errorf("%w: failed to open evolution subscription for %s: %v", domain.ErrConnection, portfolioID, err)
	}

	snapshots := make(chan []byte)
	errs := make(chan error, 1)
	sub := &Subscription{
		Snapshots: snapshots,
		Errs:      errs,
		cancel: func() {
			cancel()
			_ = pubsub.Close()
		},
	}

	go func() {
		defer close(snapshots)

		// Current document first, then live updates.
		raw, err := f.client.Get(subCtx, key).Bytes()
		if err != nil && err != redis.Nil {
			if subCtx.Err() == nil {
				errs <- fmt.Errorf("%w: failed to read evolution document %s: %v", domain.ErrConnection, key, err)
			}
			return
		}
		if err == nil {
			select {
			case snapshots <- raw:
			case <-subCtx.Done():
				return
			}
		}

		ch := pubsub.Channel()
		for {
			select {
			case <-subCtx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					if subCtx.Err() == nil {
						errs <- fmt.Errorf("%w: evolution subscription %s closed", domain.ErrConnection, key)
					}
					return
				}
				select {
				case snapshots <- []byte(msg.Payload):
				case <-subCtx.Done():
					return
				}
			}
		}
	}()

	return sub, nil
}

// PublishDocument stores a raw evolution document and pushes it to every
// open subscription.
func PublishDocument(ctx context.Context, client *redis.Client, portfolioID uuid.UUID, raw []byte) error {
	key := DocumentKey(portfolioID)
	if err := client.Set(ctx, key, raw, 0).Err(); err != nil {
		return fmt.Errorf("failed to store evolution document %s: %w", key, err)
	}
	if err := client.Publish(ctx, key, raw).Err(); err != nil {
		return fmt.Errorf("failed to publish evolution document %s: %w", key, err)
	}
	return nil
}
