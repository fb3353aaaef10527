package session

import (
	"sync"
	"time"
)

// Change is a session-change notification delivered to subscribers.
type Change struct {
	Type   EventType `json:"type"`
	UserID string    `json:"user_id"`
	At     time.Time `json:"at"`
}

// Broker fans session changes out to subscribers keyed by user id.
type Broker struct {
	mu     sync.Mutex
	nextID int
	subs   map[string]map[int]chan Change
	buffer int
}

func NewBroker(buffer int) *Broker {
	if buffer <= 0 {
		buffer = 8
	}
	return &Broker{
		subs:   make(map[string]map[int]chan Change),
		buffer: buffer,
	}
}

// Subscribe registers a listener for userID. The returned func unsubscribes
// and closes the channel; calling it more than once is safe.
func (b *Broker) Subscribe(userID string) (<-chan Change, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++

	ch := make(chan Change, b.buffer)
	if b.subs[userID] == nil {
		b.subs[userID] = make(map[int]chan Change)
	}
	b.subs[userID][id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			if byUser, ok := b.subs[userID]; ok {
				delete(byUser, id)
				if len(byUser) == 0 {
					delete(b.subs, userID)
				}
			}
			close(ch)
		})
	}
}

// Publish delivers change to every subscriber of its user. A subscriber
// whose buffer is full misses the change.
func (b *Broker) Publish(change Change) {
	if change.At.IsZero() {
		change.At = time.Now().UTC()
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	for _, ch := range b.subs[change.UserID] {
		select {
		case ch <- change:
		default:
		}
	}
}

func (b *Broker) Subscribers(userID string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs[userID])
}
