package event

import (
	"reflect"
	"sync"
)

// Bus delivers typed events synchronously to their subscribers, in
// subscription order. Publishing happens on the caller's goroutine.
type Bus struct {
	mu       sync.Mutex // protects handlers only
	handlers map[reflect.Type][]*Subscription
}

// Subscription is the handle returned by Subscribe.
type Subscription struct {
	bus *Bus
	typ reflect.Type
	fn  any
}

// NewBus creates a bus with no subscribers.
func NewBus() *Bus {
	return &Bus{handlers: make(map[reflect.Type][]*Subscription)}
}

// Subscribe registers fn for events of type T.
func Subscribe[T any](b *Bus, fn func(T)) *Subscription {
	t := reflect.TypeOf((*T)(nil)).Elem()
	s := &Subscription{bus: b, typ: t, fn: fn}
	b.mu.Lock()
	b.handlers[t] = append(b.handlers[t], s)
	b.mu.Unlock()
	return s
}

// Publish hands ev to every subscriber of T and returns how many were called.
// Subscribers added or removed by a handler take effect on the next Publish.
func Publish[T any](b *Bus, ev T) int {
	t := reflect.TypeOf((*T)(nil)).Elem()
	b.mu.Lock()
	subs := append([]*Subscription(nil), b.handlers[t]...)
	b.mu.Unlock()

	for _, s := range subs {
		s.fn.(func(T))(ev)
	}
	return len(subs)
}

// Count returns the number of subscribers for T.
func Count[T any](b *Bus) int {
	t := reflect.TypeOf((*T)(nil)).Elem()
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.handlers[t])
}

// Unsubscribe removes the subscription. Calling it more than once is a no-op.
func (s *Subscription) Unsubscribe() {
	if s == nil || s.bus == nil {
		return
	}
	b := s.bus
	b.mu.Lock()
	defer b.mu.Unlock()
	subs := b.handlers[s.typ]
	for i, other := range subs {
		if other == s {
			b.handlers[s.typ] = append(subs[:i:i], subs[i+1:]...)
			break
		}
	}
	if len(b.handlers[s.typ]) == 0 {
		delete(b.handlers, s.typ)
	}
	s.bus = nil
}
