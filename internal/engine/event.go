package engine

// ListenerID identifies a registered callback so it can be removed later.
type ListenerID uint64

type listener[T any] struct {
	id ListenerID
	fn func(T)
}

// EventWithArg is a multi-cast event carrying one argument.
// Listeners run in registration order.
type EventWithArg[T any] struct {
	listeners []listener[T]
	nextID    ListenerID
}

// AddListener registers a callback and returns its ID (0 for a nil callback).
func (e *EventWithArg[T]) AddListener(callback func(T)) ListenerID {
	if callback == nil {
		return 0
	}
	e.nextID++
	e.listeners = append(e.listeners, listener[T]{id: e.nextID, fn: callback})
	return e.nextID
}

// RemoveListener unregisters the callback with the given ID.
func (e *EventWithArg[T]) RemoveListener(id ListenerID) {
	for i, l := range e.listeners {
		if l.id == id {
			e.listeners = append(e.listeners[:i], e.listeners[i+1:]...)
			return
		}
	}
}

func (e *EventWithArg[T]) RemoveAllListeners() {
	e.listeners = nil
}

// Invoke calls every listener. Listeners added during Invoke run on the next call.
func (e *EventWithArg[T]) Invoke(arg T) {
	snapshot := make([]listener[T], len(e.listeners))
	copy(snapshot, e.listeners)
	for _, l := range snapshot {
		l.fn(arg)
	}
}

func (e *EventWithArg[T]) GetListenerCount() int {
	return len(e.listeners)
}

// Event is an argument-less EventWithArg.
type Event struct {
	inner EventWithArg[struct{}]
}

func (e *Event) AddListener(callback func()) ListenerID {
	if callback == nil {
		return 0
	}
	return e.inner.AddListener(func(struct{}) { callback() })
}

func (e *Event) RemoveListener(id ListenerID) {
	e.inner.RemoveListener(id)
}

func (e *Event) RemoveAllListeners() {
	e.inner.RemoveAllListeners()
}

func (e *Event) Invoke() {
	e.inner.Invoke(struct{}{})
}

func (e *Event) GetListenerCount() int {
	return e.inner.GetListenerCount()
}
