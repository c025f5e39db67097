// Package signal models the ambient inputs every animation driver reads:
// the reduced-motion accessibility preference and document visibility.
//
// Nothing here is a singleton. A host builds one Env and hands it to every
// driver it mounts; tests build their own from Switches. All types are meant
// to be used from the single frame goroutine and are not safe for concurrent use.
package signal

// Subscription removes a registered callback. The zero value is a no-op, which
// is what every registration returns when the backing source is missing.
type Subscription struct {
	remove func()
}

// Remove unregisters the callback. Calling it more than once is harmless.
func (s Subscription) Remove() {
	if s.remove != nil {
		s.remove()
	}
}

// Environment is the injectable set of signals a driver depends on.
type Environment interface {
	CurrentReducedMotion() bool
	CurrentVisibility() bool
	OnReducedMotionChange(fn func(reduced bool)) Subscription
	OnVisibilityChange(fn func(visible bool)) Subscription
}

// Preference is a boolean source that can push changes.
type Preference interface {
	Get() bool
	OnChange(fn func(bool)) Subscription
}

type handler struct {
	id uint32
	fn func(bool)
}

// Broadcaster fans a boolean out to registered callbacks.
type Broadcaster struct {
	nextID   uint32
	handlers []handler
}

// Add registers fn and returns its removal handle.
func (b *Broadcaster) Add(fn func(bool)) Subscription {
	if fn == nil {
		return Subscription{}
	}
	b.nextID++
	id := b.nextID
	b.handlers = append(b.handlers, handler{id: id, fn: fn})
	return Subscription{remove: func() { b.remove(id) }}
}

func (b *Broadcaster) remove(id uint32) {
	for i, h := range b.handlers {
		if h.id == id {
			b.handlers = append(b.handlers[:i], b.handlers[i+1:]...)
			return
		}
	}
}

// Emit calls every handler registered at the time of the call.
func (b *Broadcaster) Emit(v bool) {
	if len(b.handlers) == 0 {
		return
	}
	snapshot := make([]handler, len(b.handlers))
	copy(snapshot, b.handlers)
	for _, h := range snapshot {
		h.fn(v)
	}
}

// Len reports how many handlers are registered.
func (b *Broadcaster) Len() int {
	return len(b.handlers)
}

// Switch is a settable Preference. Hosts use it to mirror platform state,
// tests use it to drive transitions.
type Switch struct {
	value bool
	subs  Broadcaster
}

// NewSwitch returns a Switch holding v.
func NewSwitch(v bool) *Switch {
	return &Switch{value: v}
}

func (s *Switch) Get() bool {
	return s.value
}

// Set stores v and notifies listeners if it changed.
func (s *Switch) Set(v bool) {
	if s.value == v {
		return
	}
	s.value = v
	s.subs.Emit(v)
}

func (s *Switch) OnChange(fn func(bool)) Subscription {
	return s.subs.Add(fn)
}

// Listeners reports the number of registered callbacks.
func (s *Switch) Listeners() int {
	return s.subs.Len()
}
