// Package eventbus provides an in-memory, topic keyed publish/subscribe channel
// shared by components that have no direct ownership relationship.
package eventbus

import (
	"context"
	"fmt"
	"sync"

	"storefront/internal/logger"

	"go.uber.org/zap"
)

// Topic names a stream of events on the bus.
type Topic string

// TopicReviewSubmitted carries a review.Review from the review form.
const TopicReviewSubmitted Topic = "review-submitted"

// Handler receives the payload published on a topic.
type Handler func(ctx context.Context, payload any)

type entry struct {
	id      uint64
	handler Handler
}

// Bus dispatches events synchronously, in subscription order, on the
// publisher's goroutine.
type Bus struct {
	mu       sync.RWMutex
	handlers map[Topic][]entry
	nextID   uint64
}

// New creates an empty Bus.
func New() *Bus {
	return &Bus{
		handlers: make(map[Topic][]entry),
	}
}

// Subscription is a handle for releasing a handler.
type Subscription struct {
	bus   *Bus
	topic Topic
	id    uint64
	once  sync.Once
}

// Subscribe registers handler for topic. The returned subscription must be
// released with Unsubscribe when the subscriber goes away.
func (b *Bus) Subscribe(topic Topic, handler Handler) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.handlers[topic] = append(b.handlers[topic], entry{id: id, handler: handler})

	return &Subscription{bus: b, topic: topic, id: id}
}

// Unsubscribe removes the handler. Calling it more than once is a no-op.
func (s *Subscription) Unsubscribe() {
	if s == nil {
		return
	}
	s.once.Do(func() {
		s.bus.remove(s.topic, s.id)
	})
}

func (b *Bus) remove(topic Topic, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	entries := b.handlers[topic]
	for i, e := range entries {
		if e.id == id {
			// copy so a Publish iterating the old slice is unaffected
			next := make([]entry, 0, len(entries)-1)
			next = append(next, entries[:i]...)
			next = append(next, entries[i+1:]...)
			b.handlers[topic] = next
			break
		}
	}
	if len(b.handlers[topic]) == 0 {
		delete(b.handlers, topic)
	}
}

// Publish delivers payload to every handler of topic. Publishing to a topic
// with no subscribers does nothing. A panicking handler is logged and skipped.
func (b *Bus) Publish(ctx context.Context, topic Topic, payload any) {
	b.mu.RLock()
	entries := b.handlers[topic]
	b.mu.RUnlock()

	for _, e := range entries {
		b.dispatch(ctx, topic, e.handler, payload)
	}
}

func (b *Bus) dispatch(ctx context.Context, topic Topic, h Handler, payload any) {
	defer func() {
		if r := recover(); r != nil {
			logger.FromCtx(ctx).Error("event handler panic",
				zap.String("topic", string(topic)),
				zap.String("panic", fmt.Sprint(r)),
			)
		}
	}()
	h(ctx, payload)
}

// HandlerCount returns the number of live handlers for topic.
func (b *Bus) HandlerCount(topic Topic) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.handlers[topic])
}
