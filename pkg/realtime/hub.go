package realtime

import (
	"encoding/json"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

const defaultBuffer = 256

// Subscriber receives the messages published on one topic.
type Subscriber struct {
	topic string
	send  chan []byte
}

// Topic returns the topic the subscriber listens on.
func (s *Subscriber) Topic() string {
	return s.topic
}

// Messages is closed once the subscriber is removed from the hub.
func (s *Subscriber) Messages() <-chan []byte {
	return s.send
}

// Hub fans JSON messages out to the subscribers of a topic.
type Hub struct {
	mu     sync.Mutex
	topics map[string]map[*Subscriber]struct{}
	buffer int
	logger *zap.Logger
}

// NewHub creates a hub. A buffer of zero uses the default of 256 messages per subscriber.
func NewHub(buffer int, logger *zap.Logger) *Hub {
	if buffer <= 0 {
		buffer = defaultBuffer
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{topics: make(map[string]map[*Subscriber]struct{}), buffer: buffer, logger: logger}
}

// Subscribe registers a new subscriber on topic.
func (h *Hub) Subscribe(topic string) *Subscriber {
	sub := &Subscriber{topic: topic, send: make(chan []byte, h.buffer)}
	h.mu.Lock()
	defer h.mu.Unlock()
	subs, ok := h.topics[topic]
	if !ok {
		subs = make(map[*Subscriber]struct{})
		h.topics[topic] = subs
	}
	subs[sub] = struct{}{}
	return sub
}

// Unsubscribe removes the subscriber and closes its channel. Calling it twice is harmless.
func (h *Hub) Unsubscribe(sub *Subscriber) {
	if sub == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.remove(sub)
}

func (h *Hub) remove(sub *Subscriber) {
	subs, ok := h.topics[sub.topic]
	if !ok {
		return
	}
	if _, ok := subs[sub]; !ok {
		return
	}
	delete(subs, sub)
	close(sub.send)
	if len(subs) == 0 {
		delete(h.topics, sub.topic)
	}
}

// Publish encodes v and hands it to every subscriber of topic. Subscribers whose buffer is full
// are dropped rather than blocking the publisher.
func (h *Hub) Publish(topic string, v interface{}) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s event: %w", topic, err)
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for sub := range h.topics[topic] {
		select {
		case sub.send <- payload:
		default:
			h.logger.Warn("dropping slow subscriber", zap.String("topic", topic))
			h.remove(sub)
		}
	}
	return nil
}

// Subscribers reports how many subscribers listen on topic.
func (h *Hub) Subscribers(topic string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.topics[topic])
}
