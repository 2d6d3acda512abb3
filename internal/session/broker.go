package session

import (
	"sync"

	"github.com/seantiz/abacus/internal/model"
)

// subscriberBufferSize is the channel buffer for each display subscriber.
// Updates are dropped if a subscriber falls this far behind.
const subscriberBufferSize = 64

// DisplayBroker fans out display updates per session to subscribers.
// It is safe for concurrent use.
//
// Closed sessions are retained as markers so that late subscribers receive a
// closed channel instead of blocking forever.
type DisplayBroker struct {
	mu     sync.Mutex
	topics map[string]*displayTopic
}

type displayTopic struct {
	subs   map[int]chan model.Display
	nextID int
	closed bool
}

// NewDisplayBroker creates a new display broker.
func NewDisplayBroker() *DisplayBroker {
	return &DisplayBroker{
		topics: make(map[string]*displayTopic),
	}
}

// Subscribe returns a channel that receives display updates for the given
// session and an unsubscribe function. If the session has been closed the
// returned channel is already closed.
func (b *DisplayBroker) Subscribe(sessionID string) (<-chan model.Display, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	t, ok := b.topics[sessionID]
	if !ok {
		t = &displayTopic{subs: make(map[int]chan model.Display)}
		b.topics[sessionID] = t
	}

	ch := make(chan model.Display, subscriberBufferSize)
	if t.closed {
		close(ch)
		return ch, func() {}
	}

	id := t.nextID
	t.nextID++
	t.subs[id] = ch
	openStreams.Inc()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			if _, ok := t.subs[id]; ok {
				delete(t.subs, id)
				openStreams.Dec()
			}
		})
	}
}

// Publish sends a display update to all subscribers of the given session.
// Updates are dropped for subscribers whose buffers are full.
func (b *DisplayBroker) Publish(sessionID string, d model.Display) {
	b.mu.Lock()
	defer b.mu.Unlock()

	t, ok := b.topics[sessionID]
	if !ok || t.closed {
		return
	}

	for _, ch := range t.subs {
		select {
		case ch <- d:
		default:
			// Slow subscriber.
		}
	}
}

// Close signals that no more updates will be published for the session.
// All subscriber channels are closed and future Subscribe calls return a
// closed channel.
func (b *DisplayBroker) Close(sessionID string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	t, ok := b.topics[sessionID]
	if !ok {
		b.topics[sessionID] = &displayTopic{subs: make(map[int]chan model.Display), closed: true}
		return
	}

	t.closed = true
	for id, ch := range t.subs {
		close(ch)
		delete(t.subs, id)
		openStreams.Dec()
	}
}
