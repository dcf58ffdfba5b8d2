package pubsub

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

var _ PubSubClient = (*Loopback)(nil)

// NewLoopback creates a transport for running without a broker. Messages are
// encoded exactly as for Pub/Sub and handed to the subscribed handler on a
// separate goroutine.
func NewLoopback() *Loopback {
	return &Loopback{}
}

// Subscribe sets the handler that receives every message. A message sent
// before any handler is subscribed is dropped.
func (l *Loopback) Subscribe(h Handler) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.handler = h
}

func (l *Loopback) SendMessage(topic EventType, data any) error {
	msgpackData, err := msgpack.Marshal(data)
	if err != nil {
		log.Error("MessagePack marshal error", "error", err)
		return err
	}

	l.mu.RLock()
	h := l.handler
	l.mu.RUnlock()
	if h == nil {
		log.Warn("No subscriber for message, dropping it", "topic", topic)
		return nil
	}

	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		if err := h(context.Background(), msgpackData); err != nil {
			log.Error("Failed to handle message", "topic", topic, "error", err)
		}
	}()
	return nil
}

func (l *Loopback) ProcessMessage(data []byte, returnValue any) error {
	return decode(data, returnValue)
}

// Wait blocks until every delivered message has been handled.
func (l *Loopback) Wait() {
	l.wg.Wait()
}

// Close waits for in-flight messages.
func (l *Loopback) Close() {
	l.Wait()
}
