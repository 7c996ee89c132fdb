// Package event is a small multicast listener list.
package event

// Feed delivers a value to every subscribed listener in subscription order.
// Listeners are identified by the id Subscribe hands out, so they can be
// removed individually.
type Feed[T any] struct {
	nextID    uint64
	listeners []listener[T]
}

type listener[T any] struct {
	id uint64
	fn func(T)
}

// Subscribe registers fn and returns a function that removes it again.
// A nil fn is ignored.
func (f *Feed[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}
	f.nextID++
	id := f.nextID
	f.listeners = append(f.listeners, listener[T]{id: id, fn: fn})
	return func() { f.remove(id) }
}

func (f *Feed[T]) remove(id uint64) {
	for i, l := range f.listeners {
		if l.id == id {
			f.listeners = append(f.listeners[:i], f.listeners[i+1:]...)
			return
		}
	}
}

// Send invokes every listener with v. Listeners added or removed during Send
// take effect from the next Send.
func (f *Feed[T]) Send(v T) {
	snapshot := append([]listener[T](nil), f.listeners...)
	for _, l := range snapshot {
		l.fn(v)
	}
}

// Clear removes all listeners.
func (f *Feed[T]) Clear() {
	f.listeners = nil
}

// Len returns the number of registered listeners.
func (f *Feed[T]) Len() int {
	return len(f.listeners)
}
