// internal/event/manager.go
package event

import (
	"sync"

	"github.com/bethropolis/tidemark/internal/logger"
)

// Handler defines the function signature for event subscribers.
// Returning true consumes the event and stops later handlers from seeing it.
type Handler func(e Event) bool

// SubscriptionID identifies a handler for Unsubscribe.
type SubscriptionID int

type subscription struct {
	id      SubscriptionID
	handler Handler
}

// Manager handles event subscriptions and dispatching.
type Manager struct {
	mu       sync.RWMutex
	handlers map[Type][]subscription
	nextID   SubscriptionID
}

// NewManager creates a new event manager.
func NewManager() *Manager {
	return &Manager{
		handlers: make(map[Type][]subscription),
	}
}

// Subscribe adds a handler function for a specific event type.
func (m *Manager) Subscribe(eventType Type, handler Handler) SubscriptionID {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	m.handlers[eventType] = append(m.handlers[eventType], subscription{id: m.nextID, handler: handler})
	logger.DebugTagf("event", "Event Manager: Handler %d subscribed to %v", m.nextID, eventType)
	return m.nextID
}

// Unsubscribe removes a handler. Unknown IDs are ignored.
func (m *Manager) Unsubscribe(id SubscriptionID) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for t, subs := range m.handlers {
		for i, s := range subs {
			if s.id != id {
				continue
			}
			out := make([]subscription, 0, len(subs)-1)
			out = append(out, subs[:i]...)
			m.handlers[t] = append(out, subs[i+1:]...)
			return
		}
	}
}

// Dispatch sends an event to the handlers registered for its type, in
// subscription order, until one consumes it.
func (m *Manager) Dispatch(eventType Type, data interface{}) {
	event := Event{
		Type: eventType,
		Data: data,
	}

	// Handlers may subscribe or unsubscribe while running, so iterate a copy.
	m.mu.RLock()
	subs := make([]subscription, len(m.handlers[eventType]))
	copy(subs, m.handlers[eventType])
	m.mu.RUnlock()

	if len(subs) == 0 {
		return
	}

	logger.DebugTagf("event", "Event Manager: Dispatching %v to %d handler(s)", eventType, len(subs))
	for _, s := range subs {
		if s.handler(event) {
			break
		}
	}
}
